// Package mail sends transactional email over SMTP.
package mail

import (
	"bytes"
	"fmt"
	"html/template"

	gomail "github.com/go-mail/mail/v2"
)

const welcomeTemplate = `
{{define "subject"}}Welcome to Taskloop{{end}}

{{define "plainBody"}}Hi {{.Name}},

Your account is ready. Log in and start ticking things off.
{{end}}

{{define "htmlBody"}}<p>Hi {{.Name}},</p>
<p>Your account is ready. Log in and start ticking things off.</p>
{{end}}
`

// Mailer delivers mail through a single SMTP dialer.
type Mailer struct {
	dialer  *gomail.Dialer
	sender  string
	welcome *template.Template
}

func NewMailer(host string, port int, username, password, sender string) (*Mailer, error) {
	tmpl, err := template.New("welcome").Parse(welcomeTemplate)
	if err != nil {
		return nil, fmt.Errorf("parse welcome template: %w", err)
	}
	return &Mailer{
		dialer:  gomail.NewDialer(host, port, username, password),
		sender:  sender,
		welcome: tmpl,
	}, nil
}

// SendWelcome greets a freshly registered account. Transient SMTP failures
// are retried a few times before giving up.
func (m *Mailer) SendWelcome(to, name string) error {
	return m.send(to, m.welcome, struct{ Name string }{Name: name})
}

func (m *Mailer) send(to string, tmpl *template.Template, data any) error {
	var subject bytes.Buffer
	if err := tmpl.ExecuteTemplate(&subject, "subject", data); err != nil {
		return err
	}
	var plainBody bytes.Buffer
	if err := tmpl.ExecuteTemplate(&plainBody, "plainBody", data); err != nil {
		return err
	}
	var htmlBody bytes.Buffer
	if err := tmpl.ExecuteTemplate(&htmlBody, "htmlBody", data); err != nil {
		return err
	}

	msg := gomail.NewMessage()
	msg.SetHeader("To", to)
	msg.SetHeader("From", m.sender)
	msg.SetHeader("Subject", subject.String())
	msg.SetBody("text/plain", plainBody.String())
	msg.AddAlternative("text/html", htmlBody.String())

	var err error
	for i := 0; i < 3; i++ {
		err = m.dialer.DialAndSend(msg)
		if err == nil {
			break
		}
	}
	return err
}
