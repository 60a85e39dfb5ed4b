package services

import (
	"fmt"

	"github.com/compliancedrone/pilot-platform/internal/config"
	"github.com/wneessen/go-mail"
)

// MailService sends transactional email over SMTP.
type MailService struct {
	cfg *config.Config
}

func NewMailService(cfg *config.Config) *MailService {
	return &MailService{cfg: cfg}
}

// SendNewsletterWelcome sends the welcome email to a new subscriber.
// Nothing is persisted; subscription state lives with the mail provider.
func (s *MailService) SendNewsletterWelcome(to string) error {
	msg := mail.NewMsg()
	if err := msg.From(s.cfg.SMTPFrom); err != nil {
		return fmt.Errorf("invalid sender address: %w", err)
	}
	if err := msg.To(to); err != nil {
		return fmt.Errorf("invalid recipient address: %w", err)
	}
	msg.Subject("Welcome to the ComplianceDrone Pilot Community!")
	msg.SetBodyString(mail.TypeTextPlain, newsletterWelcomeText)
	msg.AddAlternativeString(mail.TypeTextHTML, newsletterWelcomeHTML)

	client, err := mail.NewClient(s.cfg.SMTPHost,
		mail.WithPort(s.cfg.SMTPPort),
		mail.WithSMTPAuth(mail.SMTPAuthPlain),
		mail.WithUsername(s.cfg.SMTPUser),
		mail.WithPassword(s.cfg.SMTPPassword),
	)
	if err != nil {
		return fmt.Errorf("failed to create mail client: %w", err)
	}

	return client.DialAndSend(msg)
}

const newsletterWelcomeText = `Welcome to ComplianceDrone!

Thank you for joining our nationwide community of drone pilots!

You'll now receive the latest updates on:
- Solar Panel Inspections - Advanced thermal imaging techniques
- Electrical Infrastructure Monitoring - Best practices and safety protocols
- Drone Technology - Latest equipment and software updates
- Pilot Opportunities - Exclusive job openings and projects

Ready to start flying with us? Apply to become a certified pilot at
compliancedrone.com/pilot-registration and join our professional network
from coast to coast.

Stay safe and fly high!
The ComplianceDrone Team

ComplianceDrone - Professional Thermal Inspection Services
compliancedrone.com
`

const newsletterWelcomeHTML = `<div style="font-family: Arial, sans-serif; max-width: 600px; margin: 0 auto; padding: 20px;">
  <h2 style="color: #475569;">Welcome to ComplianceDrone!</h2>
  <p>Thank you for joining our nationwide community of drone pilots!</p>
  <p>You'll now receive the latest updates on:</p>
  <ul>
    <li><strong>Solar Panel Inspections</strong> - Advanced thermal imaging techniques</li>
    <li><strong>Electrical Infrastructure Monitoring</strong> - Best practices and safety protocols</li>
    <li><strong>Drone Technology</strong> - Latest equipment and software updates</li>
    <li><strong>Pilot Opportunities</strong> - Exclusive job openings and projects</li>
  </ul>
  <p>Ready to start flying with us? <a href="https://compliancedrone.com/pilot-registration" style="color: #475569;">Apply to become a certified pilot</a> and join our professional network from coast to coast.</p>
  <p>Stay safe and fly high!</p>
  <p><strong>The ComplianceDrone Team</strong></p>
  <hr style="margin: 30px 0; border: none; border-top: 1px solid #e2e8f0;">
  <p style="font-size: 12px; color: #64748b;">
    ComplianceDrone - Professional Thermal Inspection Services<br>
    <a href="https://compliancedrone.com">compliancedrone.com</a>
  </p>
</div>
`
