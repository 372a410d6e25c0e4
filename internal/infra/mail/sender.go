package mail

import (
	"bytes"
	"fmt"
	// html/template so lead titles and names are escaped into the HTML body.
	"html/template"
	"path/filepath"

	"gopkg.in/gomail.v2"
)

func NewEmailSender(host string, port int, user, password, from string) *EmailSender {
	return &EmailSender{
		Host:        host,
		Port:        port,
		User:        user,
		Password:    password,
		From:        from,
		TemplateDir: "templates",
	}
}

func (s *EmailSender) SendNewLeadAlert(to, name, leadTitle, category, city string) error {
	body, err := s.renderTemplate("new_lead.html", NewLeadEmailData{
		Name:      name,
		LeadTitle: leadTitle,
		Category:  category,
		City:      city,
	})
	if err != nil {
		return err
	}
	subject := fmt.Sprintf("New %s lead in %s", category, city)
	return s.send(to, subject, body)
}

func (s *EmailSender) SendClaimConfirmation(to, name, leadTitle string) error {
	body, err := s.renderTemplate("claim_confirmation.html", ClaimConfirmationData{
		Name:      name,
		LeadTitle: leadTitle,
	})
	if err != nil {
		return err
	}
	return s.send(to, fmt.Sprintf("You claimed: %s", leadTitle), body)
}

func (s *EmailSender) SendOwnerNotice(to, leadTitle, contractorName string) error {
	body, err := s.renderTemplate("owner_notice.html", OwnerNoticeData{
		LeadTitle:      leadTitle,
		ContractorName: contractorName,
	})
	if err != nil {
		return err
	}
	return s.send(to, fmt.Sprintf("Lead claimed: %s", leadTitle), body)
}

func (s *EmailSender) SendWelcome(to, name, tierName string) error {
	body, err := s.renderTemplate("welcome.html", WelcomeEmailData{
		Name:     name,
		TierName: tierName,
	})
	if err != nil {
		return err
	}
	return s.send(to, fmt.Sprintf("Welcome to RenoXbert, %s!", name), body)
}

func (s *EmailSender) renderTemplate(name string, data interface{}) (string, error) {
	tmplPath := filepath.Join(s.TemplateDir, name)
	t, err := template.ParseFiles(tmplPath)
	if err != nil {
		return "", fmt.Errorf("failed to read email template: %w", err)
	}

	var body bytes.Buffer
	if err := t.Execute(&body, data); err != nil {
		return "", fmt.Errorf("failed to render email template: %w", err)
	}
	return body.String(), nil
}

func (s *EmailSender) send(to, subject, body string) error {
	m := gomail.NewMessage()
	m.SetHeader("From", s.From)
	m.SetHeader("To", to)
	m.SetHeader("Subject", subject)
	m.SetBody("text/html", body)

	d := gomail.NewDialer(s.Host, s.Port, s.User, s.Password)

	if err := d.DialAndSend(m); err != nil {
		return fmt.Errorf("failed to send SMTP email: %w", err)
	}
	return nil
}
