package email

import "fmt"

// Subjects and tags for the passcode emails sent by the OTP ledger.
const (
	SubjectOTPVerification  = "OTP For Verification"
	SubjectOTPPasswordReset = "OTP For Password Reset"

	TagOTPSignup        = "otp-signup"
	TagOTPPasswordReset = "otp-password-reset"
)

// OTPSignupMessage builds the signup verification email.
func OTPSignupMessage(toEmail, code string) SendEmailParams {
	return SendEmailParams{
		SendTo:   toEmail,
		Subject:  SubjectOTPVerification,
		BodyHTML: fmt.Sprintf("<p>Your verification code is: <b>%s</b></p><p>It expires in 10 minutes.</p>", code),
		Tag:      TagOTPSignup,
	}
}

// OTPPasswordResetMessage builds the password reset email.
func OTPPasswordResetMessage(toEmail, code string) SendEmailParams {
	return SendEmailParams{
		SendTo:   toEmail,
		Subject:  SubjectOTPPasswordReset,
		BodyHTML: fmt.Sprintf("<p>Your password reset code is: <b>%s</b></p><p>It expires in 10 minutes. If you did not request a reset, you can ignore this email.</p>", code),
		Tag:      TagOTPPasswordReset,
	}
}
