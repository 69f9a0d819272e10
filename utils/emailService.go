package utils

import (
	"elearn/config"
	"fmt"
	"net/smtp"
	"strings"
)

// Generic Send Email
func SendEmail(to []string, subject string, htmlBody string) error {
	smtpHost := "smtp.gmail.com"
	smtpPort := "587"

	from := config.AppConfig.EmailSender
	password := config.AppConfig.Password

	// MIME basics
	msg := "MIME-version: 1.0;\nContent-Type: text/html; charset=\"UTF-8\";\n"
	msg += fmt.Sprintf("From: Elearn <%s>\r\n", from)
	msg += fmt.Sprintf("To: %s\r\n", strings.Join(to, ","))
	msg += fmt.Sprintf("Subject: %s\r\n\r\n", subject)
	msg += htmlBody

	auth := smtp.PlainAuth("", from, password, smtpHost)

	return smtp.SendMail(smtpHost+":"+smtpPort, auth, from, to, []byte(msg))
}

func getEmailTemplate(title string, bodyContent string) string {
	return fmt.Sprintf(`
	<!DOCTYPE html>
	<html>
	<head>
		<style>
			body { font-family: 'Helvetica Neue', Helvetica, Arial, sans-serif; background-color: #F6F6F6; margin: 0; padding: 0; }
			.container { max-width: 600px; margin: 40px auto; background: #FFFFFF; border-radius: 8px; overflow: hidden; box-shadow: 0 4px 15px rgba(0,0,0,0.05); }
			.header { background-color: #1B2A4A; padding: 30px; text-align: center; }
			.header h1 { color: #FFFFFF; margin: 0; font-size: 24px; letter-spacing: 1px; }
			.content { padding: 40px 30px; color: #1B2A4A; line-height: 1.6; }
			.footer { background-color: #F6F6F6; padding: 20px; text-align: center; font-size: 12px; color: #666666; border-top: 1px solid #E0E0E0; }
			.btn { display: inline-block; padding: 12px 24px; background-color: #3B82F6; color: #FFFFFF; text-decoration: none; border-radius: 4px; font-weight: bold; margin-top: 20px; }
		</style>
	</head>
	<body>
		<div class="container">
			<div class="header"><h1>%s</h1></div>
			<div class="content">%s</div>
			<div class="footer">You are receiving this email because you have an account on our platform.</div>
		</div>
	</body>
	</html>`, title, bodyContent)
}

// SendVerificationEmail mails the account activation link for a fresh signup.
func SendVerificationEmail(email, name, token string) error {
	link := fmt.Sprintf("%s/verify-email?token=%s", config.AppConfig.FrontendURL, token)
	body := fmt.Sprintf(`
		<h2>Welcome, %s!</h2>
		<p>Please confirm your email address to activate your account. The link is valid for 24 hours.</p>
		<a class="btn" href="%s">Verify Email</a>`, name, link)

	return SendEmail([]string{email}, "Verify your email address", getEmailTemplate("Email Verification", body))
}

// SendPasswordResetEmail mails a password reset link. The token expires after
// one hour.
func SendPasswordResetEmail(email, name, token string) error {
	link := fmt.Sprintf("%s/reset-password?token=%s", config.AppConfig.FrontendURL, token)
	body := fmt.Sprintf(`
		<h2>Hello, %s</h2>
		<p>We received a request to reset your password. If this was not you, you can safely ignore this email.</p>
		<a class="btn" href="%s">Reset Password</a>`, name, link)

	return SendEmail([]string{email}, "Reset your password", getEmailTemplate("Password Reset", body))
}
