package services

import "fmt"

// verificationEmailBody renders the HTML email carrying a one-time code.
func verificationEmailBody(code string, ttlMinutes int) string {
	return fmt.Sprintf(`
    <div style="font-family: Arial, sans-serif; max-width: 600px; margin: 0 auto; padding: 20px; border: 1px solid #ddd; border-radius: 8px;">
      <h2 style="text-align: center;">Verification Code</h2>
      <p>Dear User,</p>
      <p>Your verification code is:</p>
      <div style="text-align: center; margin: 20px 0;">
        <span style="display: inline-block; font-size: 24px; font-weight: bold; padding: 10px 20px; border: 1px solid #4CAF50; border-radius: 5px;">%s</span>
      </div>
      <p>Please use this code to verify your email address. The code will expire in %d minutes.</p>
      <p>If you did not request this, please ignore this email.</p>
    </div>`, code, ttlMinutes)
}

// resetEmailBody renders the password-reset email carrying the reset link.
func resetEmailBody(resetURL string) string {
	return fmt.Sprintf(`
    <div style="font-family: Arial, sans-serif; max-width: 600px; margin: 0 auto; padding: 20px;">
      <h3>Password reset requested</h3>
      <p>We received a request to reset the password for your account.</p>
      <p>Follow this link to choose a new password: <a href="%s">%s</a></p>
      <p>If you have not requested this email, please ignore it.</p>
    </div>`, resetURL, resetURL)
}
