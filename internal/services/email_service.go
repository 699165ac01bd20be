package services

import (
	"fmt"
	"gopkg.in/gomail.v2"
)

type EmailService interface {
	SendOtpEmail(email, code string) error
	SendWelcomeEmail(email, fullName string) error
	SendEnrollmentConfirmation(email, courseTitle string) error
}

type emailService struct {
	dialer *gomail.Dialer
	from   string
}

func NewEmailService(smtpHost string, smtpPort int, smtpUser, smtpPassword, fromEmail string) EmailService {
	dialer := gomail.NewDialer(smtpHost, smtpPort, smtpUser, smtpPassword)
	return &emailService{
		dialer: dialer,
		from:   fromEmail,
	}
}

func (s *emailService) SendOtpEmail(email, code string) error {
	m := gomail.NewMessage()
	m.SetHeader("From", s.from)
	m.SetHeader("To", email)
	m.SetHeader("Subject", "Your verification code")

	body := fmt.Sprintf(`
		<h3>Sign-in verification</h3>
		<p>Your one-time code is: <strong>%s</strong></p>
		<p>The code expires in 10 minutes. If you did not try to sign in, you can ignore this email.</p>
	`, code)

	m.SetBody("text/html", body)

	if err := s.dialer.DialAndSend(m); err != nil {
		return fmt.Errorf("failed to send otp email: %w", err)
	}
	return nil
}

func (s *emailService) SendWelcomeEmail(email, fullName string) error {
	m := gomail.NewMessage()
	m.SetHeader("From", s.from)
	m.SetHeader("To", email)
	m.SetHeader("Subject", "Welcome to the university portal")

	body := fmt.Sprintf(`
		<h2>Welcome, %s!</h2>
		<p>Your portal account has been created.</p>
		<p>You can now sign in and manage your courses and enrollments.</p>
	`, fullName)

	m.SetBody("text/html", body)

	if err := s.dialer.DialAndSend(m); err != nil {
		return fmt.Errorf("failed to send welcome email: %w", err)
	}
	return nil
}

func (s *emailService) SendEnrollmentConfirmation(email, courseTitle string) error {
	m := gomail.NewMessage()
	m.SetHeader("From", s.from)
	m.SetHeader("To", email)
	m.SetHeader("Subject", "Enrollment confirmed")

	body := fmt.Sprintf(`
		<h3>Enrollment confirmed</h3>
		<p>Your enrollment in <strong>%s</strong> has been confirmed.</p>
	`, courseTitle)

	m.SetBody("text/html", body)

	if err := s.dialer.DialAndSend(m); err != nil {
		return fmt.Errorf("failed to send enrollment email: %w", err)
	}
	return nil
}
