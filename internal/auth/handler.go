package auth

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/Faisal-Ahmad-dotlabs/webseed-website/internal"
	"github.com/Faisal-Ahmad-dotlabs/webseed-website/internal/transport"
	"github.com/Faisal-Ahmad-dotlabs/webseed-website/internal/validation"
	"github.com/Faisal-Ahmad-dotlabs/webseed-website/pkg/logger"
)

// ActionResponse is the uniform success/failure envelope the portal forms
// consume: a single-line message plus an optional redirect target.
type ActionResponse struct {
	Success      bool   `json:"success"`
	Message      string `json:"message,omitempty"`
	RedirectPath string `json:"redirectPath,omitempty"`
	ResetToken   string `json:"resetToken,omitempty"`
	Email        string `json:"email,omitempty"`
}

type Handler struct {
	*transport.BaseHandler
	Service  ServiceAPI
	Sessions *SessionManager
}

func NewHandler(svc ServiceAPI, sessions *SessionManager) *Handler {
	lg := logger.LoggerWrapper()
	if lg == nil {
		lg = slog.Default()
	}
	return &Handler{
		BaseHandler: transport.NewBaseHandler(lg),
		Service:     svc,
		Sessions:    sessions,
	}
}

func (h *Handler) writeServiceError(w http.ResponseWriter, err error) {
	if _, ok := err.(validation.Error); ok {
		h.WriteError(w, http.StatusBadRequest, err.Error())
		return
	}
	h.HandleServiceError(w, err)
}

func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	var dto LoginDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if err := h.Service.Login(r.Context(), dto); err != nil {
		h.Logger.Error("login failed", "error", err)
		h.writeServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, ActionResponse{
		Success: true,
		Message: "OTP sent to your email",
		Email:   dto.Email,
	})
}

func (h *Handler) VerifyLoginOTP(w http.ResponseWriter, r *http.Request) {
	var dto VerifyOTPDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	result, err := h.Service.VerifyLoginOTP(r.Context(), dto)
	if err != nil {
		h.Logger.Error("login otp verification failed", "error", err)
		h.writeServiceError(w, err)
		return
	}

	if err := h.Sessions.Create(w, result.UserID, result.Email, result.Role, result.IsPasswordChanged); err != nil {
		h.Logger.Error("session creation failed", "error", err)
		h.WriteError(w, http.StatusInternalServerError, "internal server error")
		return
	}

	resp := ActionResponse{
		Success:      true,
		Message:      "Login successful",
		RedirectPath: "/dashboard",
	}
	if !result.IsPasswordChanged {
		resp.RedirectPath = "/change-password"
		resp.ResetToken = result.ResetToken
	}
	h.WriteJSON(w, http.StatusOK, resp)
}

func (h *Handler) ForgotPassword(w http.ResponseWriter, r *http.Request) {
	var dto ForgotPasswordDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if err := h.Service.ForgotPassword(r.Context(), dto); err != nil {
		h.Logger.Error("forgot password failed", "error", err)
		h.writeServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, ActionResponse{
		Success: true,
		Message: "OTP sent to your email",
	})
}

func (h *Handler) VerifyResetOTP(w http.ResponseWriter, r *http.Request) {
	var dto VerifyOTPDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	token, err := h.Service.VerifyResetOTP(r.Context(), dto)
	if err != nil {
		h.Logger.Error("reset otp verification failed", "error", err)
		h.writeServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, ActionResponse{
		Success:      true,
		Message:      "OTP verified successfully",
		RedirectPath: "/change-password",
		ResetToken:   token,
	})
}

func (h *Handler) ChangePassword(w http.ResponseWriter, r *http.Request) {
	var dto ChangePasswordDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if err := h.Service.ChangePassword(r.Context(), dto); err != nil {
		h.Logger.Error("change password failed", "error", err)
		h.writeServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, ActionResponse{
		Success:      true,
		Message:      "Password changed successfully",
		RedirectPath: "/login",
	})
}

func (h *Handler) ResendOTP(w http.ResponseWriter, r *http.Request) {
	var dto ResendOTPDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if err := h.Service.ResendOTP(r.Context(), dto); err != nil {
		h.Logger.Error("resend otp failed", "error", err)
		h.writeServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, ActionResponse{
		Success: true,
		Message: "OTP sent successfully",
	})
}

func (h *Handler) Logout(w http.ResponseWriter, r *http.Request) {
	h.Sessions.Destroy(w)
	h.WriteJSON(w, http.StatusOK, ActionResponse{
		Success:      true,
		RedirectPath: "/login",
	})
}

// Session lets the client cheaply probe whether it still holds a live
// session before rendering gated navigation.
func (h *Handler) Session(w http.ResponseWriter, r *http.Request) {
	h.WriteJSON(w, http.StatusOK, map[string]bool{
		"authenticated": h.Sessions.HasValidSession(r),
	})
}

// SessionMiddleware gates a route group on a live session and stores the
// claims in the request context.
func (h *Handler) SessionMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		claims, err := h.Sessions.RequireUser(r)
		if err != nil {
			h.Logger.Warn("unauthenticated request", "path", r.URL.Path)
			h.WriteError(w, http.StatusUnauthorized, "no valid session")
			return
		}

		ctx := ContextWithSession(r.Context(), claims)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// RequireAdmin gates admin-only routes. Must run after SessionMiddleware.
func (h *Handler) RequireAdmin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		claims, ok := SessionFromContext(r.Context())
		if !ok {
			h.WriteError(w, http.StatusUnauthorized, "no valid session")
			return
		}
		if !claims.IsAdmin() {
			h.Logger.Warn("admin route denied", "user_id", claims.UserID, "role", claims.Role)
			h.WriteError(w, internal.ErrAdminOnly.StatusCode, internal.ErrAdminOnly.Message)
			return
		}
		next.ServeHTTP(w, r)
	})
}
