package email

import "fmt"

// OTPEmailTemplate renders the HTML body for an OTP mail. The wording warns
// about the 5-minute validity window baked into the OTP store.
func OTPEmailTemplate(userName, otp, purpose string) string {
	heading := "Password Reset"
	if purpose == "login" {
		heading = "Login"
	}

	return fmt.Sprintf(`
  <div style="font-family: Arial, sans-serif; background-color: #f4f6fa; padding: 40px 20px;">
    <div style="max-width: 600px; margin: 0 auto; background-color: #ffffff; border-radius: 8px; box-shadow: 0 2px 8px rgba(0,0,0,0.05); padding: 30px;">
      <h2 style="text-align: center; color: #0d1f3c; margin-bottom: 10px;">WebSeed %s OTP</h2>
      <p style="text-align: center; color: #333333; font-size: 16px; margin-bottom: 8px;">
        Dear %s,
      </p>
      <p style="text-align: center; color: #333333; font-size: 16px; margin-bottom: 24px;">
        Your One-Time Password (OTP) for WebSeed %s is: <strong style="font-size: 24px; color: #0d1f3c;">%s</strong>
      </p>
      <p style="text-align: center; color: #999; font-size: 14px; margin-bottom: 24px;">
        This OTP is valid for 5 minutes. Do not share it with anyone.
      </p>
      <p style="text-align: center; font-size: 12px; color: #999; margin-top: 30px;">
        If you did not request this, please ignore this email.<br>
        Best Regards,<br><strong>DOT LABs Development Team - WebSeed</strong>
      </p>
    </div>
  </div>
`, heading, userName, purpose, otp)
}
