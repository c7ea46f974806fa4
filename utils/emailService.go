package utils

import (
	"fmt"
	"log"
	"time"

	"github.com/sendgrid/sendgrid-go"
	"github.com/sendgrid/sendgrid-go/helpers/mail"
)

// Mailer sends transactional email through SendGrid
type Mailer struct {
	APIKey string
	Sender string
}

func NewMailer(apiKey, sender string) *Mailer {
	return &Mailer{APIKey: apiKey, Sender: sender}
}

func (m *Mailer) send(toEmail, toName, subject, htmlBody string) error {
	if m.APIKey == "" {
		log.Printf("SendGrid key not configured, skipping email to %s", toEmail)
		return nil
	}

	from := mail.NewEmail("Aimwell", m.Sender)
	to := mail.NewEmail(toName, toEmail)
	message := mail.NewSingleEmail(from, subject, to, "", htmlBody)

	client := sendgrid.NewSendClient(m.APIKey)
	resp, err := client.Send(message)
	if err != nil {
		log.Printf("Error sending email to %s: %v", toEmail, err)
		return err
	}
	if resp.StatusCode >= 400 {
		log.Printf("Failed to send email to %s, status %d: %s", toEmail, resp.StatusCode, resp.Body)
		return fmt.Errorf("sendgrid returned status %d", resp.StatusCode)
	}
	return nil
}

// SendEnrollmentEmail sends an email notification when user enrolls in a course
func (m *Mailer) SendEnrollmentEmail(email, userName, courseName string) error {
	body := fmt.Sprintf(`
		<html>
			<body style="font-family: Arial, sans-serif; background-color: #f4f4f4; padding: 20px;">
				<div style="max-width: 600px; margin: auto; background-color: #ffffff; border-radius: 8px; padding: 30px;">
					<h2 style="color: #333333; text-align: center;">Enrollment Successful!</h2>
					<p style="font-size: 16px; color: #555555;">Dear %s,</p>
					<p style="font-size: 16px; color: #555555;">You have successfully enrolled in:</p>
					<h3 style="text-align: center; color: #4CAF50; margin: 20px 0;">%s</h3>
					<p style="font-size: 14px; color: #666666;">You can now access all the course content. Complete every lesson and pass the quizzes to earn your certificate.</p>
					<p style="text-align: center; font-size: 12px; color: #bbbbbb; margin-top: 30px;">Aimwell Team</p>
				</div>
			</body>
		</html>
	`, userName, courseName)

	return m.send(email, userName, "Course Enrollment Confirmation - Aimwell", body)
}

// SendCertificateEmail sends certificate notification email
func (m *Mailer) SendCertificateEmail(email, userName, courseName, verificationCode string) error {
	body := fmt.Sprintf(`
		<html>
			<body style="font-family: Arial, sans-serif; background-color: #f4f4f4; padding: 20px;">
				<div style="max-width: 600px; margin: auto; background-color: #ffffff; border-radius: 8px; padding: 30px;">
					<h2 style="color: #333333; text-align: center;">Certificate of Completion</h2>
					<p style="font-size: 16px; color: #555555;">Dear %s,</p>
					<p style="font-size: 16px; color: #555555;">Congratulations on completing the course:</p>
					<h3 style="text-align: center; color: #4CAF50; margin: 20px 0;">%s</h3>
					<div style="background-color: #f8f9fa; border-radius: 8px; padding: 20px; margin: 20px 0; text-align: center;">
						<p style="font-size: 14px; color: #666666; margin-bottom: 10px;">Your verification code:</p>
						<h2 style="color: #2196F3; margin: 0;">%s</h2>
					</div>
					<p style="font-size: 14px; color: #666666;">Anyone can verify this certificate using the code above.</p>
					<p style="text-align: center; font-size: 12px; color: #bbbbbb; margin-top: 30px;">Aimwell Team</p>
				</div>
			</body>
		</html>
	`, userName, courseName, verificationCode)

	return m.send(email, userName, "Course Completion Certificate - Aimwell", body)
}

// SendSubscriptionExpiryReminder sends an email reminder before subscription expires
func (m *Mailer) SendSubscriptionExpiryReminder(email, name, plan string, expiresAt *time.Time) error {
	expiryStr := "soon"
	if expiresAt != nil {
		expiryStr = expiresAt.Format("January 2, 2006")
	}

	body := fmt.Sprintf(`
		<html>
			<body style="font-family: Arial, sans-serif; padding: 20px;">
				<div style="max-width: 600px; margin: 0 auto;">
					<h2 style="color: #2563eb;">Subscription Expiring Soon</h2>
					<p>Dear %s,</p>
					<p>Your <strong>%s</strong> subscription is expiring on <strong>%s</strong>.</p>
					<p>Renew before it expires to keep your premium courses and AI health plans.</p>
					<p style="font-size: 12px; color: #666;">This is an automated reminder from Aimwell.</p>
				</div>
			</body>
		</html>
	`, name, plan, expiryStr)

	return m.send(email, name, "Your Aimwell Subscription is Expiring Soon", body)
}

// SendSubscriptionExpiredEmail notifies the user their subscription has lapsed
func (m *Mailer) SendSubscriptionExpiredEmail(email, name, plan string) error {
	body := fmt.Sprintf(`
		<html>
			<body style="font-family: Arial, sans-serif; padding: 20px;">
				<div style="max-width: 600px; margin: 0 auto;">
					<h2 style="color: #dc2626;">Subscription Expired</h2>
					<p>Dear %s,</p>
					<p>Your <strong>%s</strong> subscription has expired. Premium content is now locked.</p>
					<p>You can renew at any time from the app.</p>
					<p style="font-size: 12px; color: #666;">This is an automated notification from Aimwell.</p>
				</div>
			</body>
		</html>
	`, name, plan)

	return m.send(email, name, "Your Aimwell Subscription Has Expired", body)
}
