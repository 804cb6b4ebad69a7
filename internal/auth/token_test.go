package auth

import (
	"net/http"
	"net/http/httptest"
	"time"

	"github.com/onsi/ginkgo/v2"
	"github.com/onsi/gomega"

	userDatamodel "github.com/Faisal-Ahmad-dotlabs/webseed-website/internal/core/datamodel/user"
)

var _ = ginkgo.Describe("TokenCodec", func() {
	var codec *TokenCodec

	ginkgo.BeforeEach(func() {
		codec = NewTokenCodec("test-session-secret-at-least-32-chars", time.Hour)
	})

	ginkgo.Describe("Encode and Decode", func() {
		ginkgo.It("should round-trip the session claims", func() {
			// Given
			token, err := codec.Encode(42, "user@example.com", userDatamodel.RoleAdmin, true)
			gomega.Expect(err).ToNot(gomega.HaveOccurred())

			// When
			claims := codec.Decode(token)

			// Then
			gomega.Expect(claims).ToNot(gomega.BeNil())
			gomega.Expect(claims.UserID).To(gomega.Equal(int64(42)))
			gomega.Expect(claims.Email).To(gomega.Equal("user@example.com"))
			gomega.Expect(claims.Role).To(gomega.Equal(userDatamodel.RoleAdmin))
			gomega.Expect(claims.IsPasswordChanged).To(gomega.BeTrue())
			gomega.Expect(claims.IsAdmin()).To(gomega.BeTrue())
			gomega.Expect(claims.Expired()).To(gomega.BeFalse())
			gomega.Expect(claims.ExpiresAt.Time).To(gomega.BeTemporally("~", time.Now().Add(time.Hour), time.Minute))
		})

		ginkgo.It("should return nil for a token signed with a different secret", func() {
			other := NewTokenCodec("another-secret-that-is-also-32-chars!", time.Hour)
			token, err := other.Encode(1, "user@example.com", userDatamodel.RoleUser, true)
			gomega.Expect(err).ToNot(gomega.HaveOccurred())

			gomega.Expect(codec.Decode(token)).To(gomega.BeNil())
		})

		ginkgo.It("should return nil for a corrupted token", func() {
			token, err := codec.Encode(1, "user@example.com", userDatamodel.RoleUser, true)
			gomega.Expect(err).ToNot(gomega.HaveOccurred())

			gomega.Expect(codec.Decode(token + "x")).To(gomega.BeNil())
			gomega.Expect(codec.Decode("not.a.token")).To(gomega.BeNil())
			gomega.Expect(codec.Decode("")).To(gomega.BeNil())
		})

		ginkgo.It("should decode an expired token but report it expired", func() {
			// Given a codec that issues already-expired tokens
			expiredCodec := NewTokenCodec("test-session-secret-at-least-32-chars", -time.Hour)
			token, err := expiredCodec.Encode(7, "user@example.com", userDatamodel.RoleUser, true)
			gomega.Expect(err).ToNot(gomega.HaveOccurred())

			// When
			claims := codec.Decode(token)

			// Then: signature still verifies, liveness is the caller's check
			gomega.Expect(claims).ToNot(gomega.BeNil())
			gomega.Expect(claims.UserID).To(gomega.Equal(int64(7)))
			gomega.Expect(claims.Expired()).To(gomega.BeTrue())
		})
	})
})

var _ = ginkgo.Describe("SessionManager", func() {
	var (
		codec    *TokenCodec
		sessions *SessionManager
	)

	ginkgo.BeforeEach(func() {
		codec = NewTokenCodec("test-session-secret-at-least-32-chars", time.Hour)
		sessions = NewSessionManager(codec, false)
	})

	newRequestWithSession := func(userID int64, role string) *http.Request {
		rec := httptest.NewRecorder()
		gomega.Expect(sessions.Create(rec, userID, "user@example.com", role, true)).To(gomega.Succeed())

		req := httptest.NewRequest(http.MethodGet, "/", nil)
		for _, c := range rec.Result().Cookies() {
			req.AddCookie(c)
		}
		return req
	}

	ginkgo.Describe("Create", func() {
		ginkgo.It("should set an HTTP-only session cookie whose expiry matches the token TTL", func() {
			// When
			rec := httptest.NewRecorder()
			gomega.Expect(sessions.Create(rec, 1, "user@example.com", userDatamodel.RoleUser, true)).To(gomega.Succeed())

			// Then
			cookies := rec.Result().Cookies()
			gomega.Expect(cookies).To(gomega.HaveLen(1))

			cookie := cookies[0]
			gomega.Expect(cookie.Name).To(gomega.Equal(SessionCookieName))
			gomega.Expect(cookie.HttpOnly).To(gomega.BeTrue())
			gomega.Expect(cookie.Path).To(gomega.Equal("/"))
			gomega.Expect(cookie.Expires).To(gomega.BeTemporally("~", time.Now().Add(time.Hour), time.Minute))

			claims := codec.Decode(cookie.Value)
			gomega.Expect(claims).ToNot(gomega.BeNil())
			gomega.Expect(claims.ExpiresAt.Time).To(gomega.BeTemporally("~", cookie.Expires, time.Minute))
		})
	})

	ginkgo.Describe("RequireUser", func() {
		ginkgo.It("should return the claims for a live session", func() {
			req := newRequestWithSession(9, userDatamodel.RoleUser)

			claims, err := sessions.RequireUser(req)
			gomega.Expect(err).ToNot(gomega.HaveOccurred())
			gomega.Expect(claims.UserID).To(gomega.Equal(int64(9)))
		})

		ginkgo.It("should reject a request without a cookie", func() {
			req := httptest.NewRequest(http.MethodGet, "/", nil)

			_, err := sessions.RequireUser(req)
			gomega.Expect(err).To(gomega.HaveOccurred())
		})

		ginkgo.It("should reject an expired session", func() {
			expired := NewSessionManager(NewTokenCodec("test-session-secret-at-least-32-chars", -time.Minute), false)
			rec := httptest.NewRecorder()
			gomega.Expect(expired.Create(rec, 1, "user@example.com", userDatamodel.RoleUser, true)).To(gomega.Succeed())

			req := httptest.NewRequest(http.MethodGet, "/", nil)
			for _, c := range rec.Result().Cookies() {
				req.AddCookie(c)
			}

			_, err := sessions.RequireUser(req)
			gomega.Expect(err).To(gomega.HaveOccurred())
			gomega.Expect(sessions.HasValidSession(req)).To(gomega.BeFalse())
			// the payload itself still decodes
			gomega.Expect(sessions.Verify(req)).ToNot(gomega.BeNil())
		})
	})

	ginkgo.Describe("Destroy", func() {
		ginkgo.It("should expire the cookie immediately", func() {
			rec := httptest.NewRecorder()
			sessions.Destroy(rec)

			cookies := rec.Result().Cookies()
			gomega.Expect(cookies).To(gomega.HaveLen(1))
			gomega.Expect(cookies[0].Value).To(gomega.BeEmpty())
			gomega.Expect(cookies[0].MaxAge).To(gomega.Equal(-1))
		})
	})
})
