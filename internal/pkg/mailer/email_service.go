package mailer

import (
	"fmt"
	"os"

	"gopkg.in/gomail.v2"
)

type IEmailService interface {
	SendRenewalReminder(toEmail, serviceName, endDate string, daysRemaining int) error
	SendExpiredNotice(toEmail, serviceName, endDate string) error
}

type emailService struct {
	dialer       *gomail.Dialer
	senderEmail  string
	dashboardURL string
}

func NewEmailService(host string, port int, username, password, senderEmail string) IEmailService {
	d := gomail.NewDialer(host, port, username, password)

	return &emailService{
		dialer:       d,
		senderEmail:  senderEmail,
		dashboardURL: os.Getenv("FRONTEND_URL"),
	}
}

func (s *emailService) SendRenewalReminder(toEmail, serviceName, endDate string, daysRemaining int) error {
	m := gomail.NewMessage()
	m.SetHeader("From", s.senderEmail)
	m.SetHeader("To", toEmail)
	m.SetHeader("Subject", fmt.Sprintf("Renewal reminder: %s expires in %d days", serviceName, daysRemaining))

	body := fmt.Sprintf(`
		<div style="font-family: Arial, sans-serif; padding: 20px; color: #333;">
			<h2>Upcoming Renewal</h2>
			<p><strong>%s</strong> expires on <strong>%s</strong> (%d days from now).</p>
			<p>Review it on your dashboard:</p>
			<a href="%s/renewals" style="background-color: #007BFF; color: white; padding: 10px 20px; text-decoration: none; border-radius: 5px; display: inline-block;">Open Dashboard</a>
		</div>
	`, serviceName, endDate, daysRemaining, s.dashboardURL)

	m.SetBody("text/html", body)

	if err := s.dialer.DialAndSend(m); err != nil {
		fmt.Printf("[MAILER ERROR] Failed to send reminder to %s: %v\n", toEmail, err)
		return err
	}

	fmt.Printf("[MAILER] Reminder for %s sent to %s\n", serviceName, toEmail)
	return nil
}

func (s *emailService) SendExpiredNotice(toEmail, serviceName, endDate string) error {
	m := gomail.NewMessage()
	m.SetHeader("From", s.senderEmail)
	m.SetHeader("To", toEmail)
	m.SetHeader("Subject", fmt.Sprintf("%s has expired", serviceName))

	body := fmt.Sprintf(`
		<div style="font-family: Arial, sans-serif; padding: 20px; color: #333;">
			<h2>Renewal Expired</h2>
			<p><strong>%s</strong> expired on <strong>%s</strong>.</p>
			<p>Renew it now to avoid service interruption:</p>
			<a href="%s/renewals" style="background-color: #DC3545; color: white; padding: 10px 20px; text-decoration: none; border-radius: 5px; display: inline-block;">Renew Now</a>
		</div>
	`, serviceName, endDate, s.dashboardURL)

	m.SetBody("text/html", body)

	if err := s.dialer.DialAndSend(m); err != nil {
		fmt.Printf("[MAILER ERROR] Failed to send expired notice to %s: %v\n", toEmail, err)
		return err
	}

	fmt.Printf("[MAILER] Expired notice for %s sent to %s\n", serviceName, toEmail)
	return nil
}
