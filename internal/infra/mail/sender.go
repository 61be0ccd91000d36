package mail

import (
	"bytes"
	"fmt"
	"text/template"

	"gopkg.in/gomail.v2"
)

type EmailSender struct {
	Host     string
	Port     int
	User     string
	Password string
	From     string
	AlertTo  string
}

func NewEmailSender(host string, port int, user, password, alertTo string) *EmailSender {
	return &EmailSender{
		Host:     host,
		Port:     port,
		User:     user,
		Password: password,
		From:     user,
		AlertTo:  alertTo,
	}
}

const hotLeadAlertTemplate = `<html>
<body>
<p>A lead just reached the hot-lead threshold.</p>
<ul>
	<li>Phone number: {{.PhoneNumber}}</li>
	<li>Project: {{.ProjectName}}</li>
	<li>Distinct marketers: {{.DistinctMarketers}}</li>
</ul>
<p>Review it in the admin dashboard.</p>
</body>
</html>`

type hotLeadAlertData struct {
	PhoneNumber       string
	ProjectName       string
	DistinctMarketers int
}

// SendHotLeadAlert mails the sales-ops address when a dedup-key group turns
// hot.
func (s *EmailSender) SendHotLeadAlert(phoneNumber, projectName string, distinctMarketers int) error {
	t, err := template.New("hot_lead_alert").Parse(hotLeadAlertTemplate)
	if err != nil {
		return fmt.Errorf("parse alert template: %w", err)
	}

	var body bytes.Buffer
	err = t.Execute(&body, hotLeadAlertData{
		PhoneNumber:       phoneNumber,
		ProjectName:       projectName,
		DistinctMarketers: distinctMarketers,
	})
	if err != nil {
		return fmt.Errorf("render alert template: %w", err)
	}

	m := gomail.NewMessage()
	m.SetHeader("From", s.From)
	m.SetHeader("To", s.AlertTo)
	m.SetHeader("Subject", fmt.Sprintf("Hot lead: %s (%s)", phoneNumber, projectName))
	m.SetBody("text/html", body.String())

	d := gomail.NewDialer(s.Host, s.Port, s.User, s.Password)
	if err := d.DialAndSend(m); err != nil {
		return fmt.Errorf("send hot lead alert: %w", err)
	}

	return nil
}
