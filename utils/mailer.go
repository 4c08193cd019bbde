package utils

import (
	"bytes"
	"fmt"
	"html/template"
	"time"

	"gopkg.in/gomail.v2"

	"sitecrew/config"
	"sitecrew/models"
)

type EmailData struct {
	Subject   string
	To        []string
	Template  string
	Data      interface{}
	Year      int
	FromEmail string
}

// Embedded email templates
var emailTemplates = map[string]string{
	"invitation": `<!DOCTYPE html>
<html>
<head>
    <meta charset="UTF-8">
    <title>{{.Subject}}</title>
    <style>
        body { font-family: Arial, sans-serif; line-height: 1.6; color: #333; max-width: 600px; margin: 0 auto; padding: 20px; }
        .header { color: #2c3e50; border-bottom: 1px solid #eee; padding-bottom: 10px; }
        .content { margin: 20px 0; }
        .button { display: inline-block; padding: 10px 20px; background-color: #3498db; color: white; text-decoration: none; border-radius: 4px; }
        .footer { margin-top: 30px; font-size: 12px; color: #7f8c8d; text-align: center; }
    </style>
</head>
<body>
    <div class="header">
        <h2>You've been invited</h2>
    </div>

    <div class="content">
        <p>Hello,</p>
        <p>You've been invited to join an organization on SiteCrew as <strong>{{.Role}}</strong>.</p>

        <p style="text-align: center;">
            <a href="{{.JoinLink}}" class="button">Join your team</a>
        </p>

        <p>If you weren't expecting this invitation, you can safely ignore this email.</p>
    </div>

    <div class="footer">
        <p>© {{.Year}} SiteCrew. All rights reserved.</p>
    </div>
</body>
</html>`,
}

// InviteMailer delivers invitation notifications. Delivery is best effort:
// callers log failures and move on, no retry contract is offered.
type InviteMailer struct {
	dialer     *gomail.Dialer
	fromEmail  string
	appBaseURL string
}

func NewInviteMailer(cfg config.Config) *InviteMailer {
	return &InviteMailer{
		dialer:     gomail.NewDialer(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPUsername, cfg.SMTPPassword),
		fromEmail:  cfg.FromEmail,
		appBaseURL: cfg.AppBaseURL,
	}
}

func (im *InviteMailer) SendInvitationEmail(invitation *models.Invitation) error {
	data := EmailData{
		Subject:   "You've been invited to SiteCrew",
		To:        []string{invitation.Email},
		Template:  "invitation",
		Year:      time.Now().Year(),
		FromEmail: im.fromEmail,
		Data: struct {
			Subject  string
			Role     string
			JoinLink string
			Year     int
		}{
			Subject:  "You've been invited to SiteCrew",
			Role:     invitation.Role,
			JoinLink: fmt.Sprintf("%s/sign-in?invitation=%d", im.appBaseURL, invitation.ID),
			Year:     time.Now().Year(),
		},
	}

	return im.send(data)
}

func (im *InviteMailer) send(data EmailData) error {
	tmplContent, ok := emailTemplates[data.Template]
	if !ok {
		return fmt.Errorf("unknown email template: %s", data.Template)
	}

	tmpl, err := template.New("email").Parse(tmplContent)
	if err != nil {
		return fmt.Errorf("error parsing template: %v", err)
	}

	var body bytes.Buffer
	if err := tmpl.Execute(&body, data.Data); err != nil {
		return fmt.Errorf("error executing template: %v", err)
	}

	m := gomail.NewMessage()
	m.SetHeader("From", data.FromEmail)
	m.SetHeader("To", data.To...)
	m.SetHeader("Subject", data.Subject)
	m.SetBody("text/html", body.String())

	if err := im.dialer.DialAndSend(m); err != nil {
		return fmt.Errorf("error sending email: %v", err)
	}

	return nil
}
