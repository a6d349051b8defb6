package notification

import "fmt"

// AccountVerificationMessage builds the email carrying a fresh
// verification token.
func AccountVerificationMessage(to, firstname, verifyURL string) Message {
	return Message{
		To:      to,
		Subject: "Account Verification",
		Text: fmt.Sprintf(
			"Hi %s,\n\nPlease verify your account by visiting the link below:\n\n%s\n\n"+
				"If you did not create this account, you can ignore this email.\n",
			firstname, verifyURL),
		HTML: fmt.Sprintf(`
			<p>Hi %s,</p>
			<p>Please verify your account by clicking the link below:</p>
			<p><a href="%s">%s</a></p>
			<p>If you did not create this account, you can ignore this email.</p>
		`, firstname, verifyURL, verifyURL),
	}
}

// PasswordResetMessage builds the email carrying a reset code.
func PasswordResetMessage(to, firstname, code string) Message {
	return Message{
		To:      to,
		Subject: "Password Reset",
		Text: fmt.Sprintf(
			"Hi %s,\n\nWe received a request to reset the password for your account.\n\n"+
				"Your reset code is: %s\n\n"+
				"If you did not request a password reset, you can ignore this email.\n",
			firstname, code),
		HTML: fmt.Sprintf(`
			<p>Hi %s,</p>
			<p>We received a request to reset the password for your account.</p>
			<p>Your reset code is: <strong>%s</strong></p>
			<p>If you did not request a password reset, you can ignore this email.</p>
		`, firstname, code),
	}
}

// WelcomeMessage is sent once an account has been verified.
func WelcomeMessage(to, firstname string) Message {
	return Message{
		To:      to,
		Subject: "Welcome",
		Text: fmt.Sprintf(
			"Hi %s,\n\nYour account has been verified. Welcome aboard!\n", firstname),
		HTML: fmt.Sprintf(`
			<p>Hi %s,</p>
			<p>Your account has been verified. Welcome aboard!</p>
		`, firstname),
	}
}
