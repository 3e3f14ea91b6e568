package services

import (
	"bytes"
	"fmt"
	"html/template"
	"net/smtp"
	"os"
	"time"

	"github.com/alphabatem/common/context"
	log "github.com/sirupsen/logrus"
)

type EmailService struct {
	context.DefaultService

	smtpHost     string
	smtpPort     string
	smtpUsername string
	smtpPassword string
	fromEmail    string
	fromName     string
	contactEmail string
	baseURL      string

	templates map[string]*template.Template
}

const EMAIL_SVC = "email_svc"

func (svc EmailService) Id() string {
	return EMAIL_SVC
}

func (svc *EmailService) Configure(ctx *context.Context) error {
	svc.smtpHost = os.Getenv("SMTP_HOST")
	svc.smtpPort = os.Getenv("SMTP_PORT")
	svc.smtpUsername = os.Getenv("SMTP_USERNAME")
	svc.smtpPassword = os.Getenv("SMTP_PASSWORD")
	svc.fromEmail = os.Getenv("FROM_EMAIL")
	svc.fromName = os.Getenv("FROM_NAME")
	svc.contactEmail = os.Getenv("CONTACT_EMAIL")
	svc.baseURL = os.Getenv("BASE_URL")

	// Set defaults if not provided
	if svc.smtpPort == "" {
		svc.smtpPort = "587"
	}
	if svc.fromName == "" {
		svc.fromName = "Harborview Realty"
	}
	if svc.fromEmail == "" {
		svc.fromEmail = "noreply@example.com"
	}
	if svc.contactEmail == "" {
		svc.contactEmail = "admin@example.com"
	}
	if svc.baseURL == "" {
		svc.baseURL = "http://localhost:8000"
	}

	svc.templates = make(map[string]*template.Template)

	return svc.DefaultService.Configure(ctx)
}

func (svc *EmailService) Start() error {
	err := svc.loadTemplates()
	if err != nil {
		log.WithError(err).Error("Failed to load email templates")
		// Don't fail startup, just log the error
	}

	return nil
}

const contactInquiryEmailHTML = `
<!DOCTYPE html>
<html>
<head>
    <meta charset="UTF-8">
    <title>New Contact Inquiry - {{.AppName}}</title>
    <style>
        body { font-family: Arial, sans-serif; line-height: 1.6; color: #333; }
        .container { max-width: 600px; margin: 0 auto; padding: 20px; }
        .header { background-color: #FF5722; color: white; padding: 20px; text-align: center; }
        .content { padding: 20px; background-color: #f9f9f9; }
        .label { color: #FF5722; font-size: 11px; text-transform: uppercase; letter-spacing: 2px; font-weight: bold; }
        .message { background-color: #ffffff; border-left: 4px solid #FF5722; padding: 20px; white-space: pre-wrap; }
        .footer { padding: 20px; text-align: center; color: #666; font-size: 12px; }
    </style>
</head>
<body>
    <div class="container">
        <div class="header">
            <h1>Contact Inquiry</h1>
        </div>
        <div class="content">
            <p class="label">From</p>
            <p>{{.Name}}</p>
            <p class="label">Email</p>
            <p><a href="mailto:{{.Email}}">{{.Email}}</a></p>
            <p class="label">Message</p>
            <div class="message">{{.Message}}</div>
        </div>
        <div class="footer">
            <p>&copy; {{.Year}} {{.AppName}}. All rights reserved.</p>
        </div>
    </div>
</body>
</html>
`

const passwordResetEmailHTML = `
<!DOCTYPE html>
<html>
<head>
    <meta charset="UTF-8">
    <title>Reset Your Password - {{.AppName}}</title>
    <style>
        body { font-family: Arial, sans-serif; line-height: 1.6; color: #333; }
        .container { max-width: 600px; margin: 0 auto; padding: 20px; }
        .header { background-color: #DC2626; color: white; padding: 20px; text-align: center; }
        .content { padding: 20px; background-color: #f9f9f9; }
        .code { font-size: 28px; font-weight: bold; letter-spacing: 6px; text-align: center; padding: 16px; background-color: #ffffff; }
        .footer { padding: 20px; text-align: center; color: #666; font-size: 12px; }
    </style>
</head>
<body>
    <div class="container">
        <div class="header">
            <h1>Password Reset</h1>
        </div>
        <div class="content">
            <h2>Hi {{.Name}},</h2>
            <p>We received a request to reset your {{.AppName}} password. Use this code to continue:</p>
            <div class="code">{{.Code}}</div>
            <p>The code expires in 1 hour. If you didn't request a reset, you can safely ignore this email.</p>
        </div>
        <div class="footer">
            <p>&copy; {{.Year}} {{.AppName}}. All rights reserved.</p>
        </div>
    </div>
</body>
</html>
`

type ContactInquiryEmailData struct {
	AppName string
	Name    string
	Email   string
	Message string
	Year    int
}

type PasswordResetEmailData struct {
	AppName string
	Name    string
	Code    string
	Year    int
}

func (svc *EmailService) loadTemplates() error {
	var err error

	svc.templates["contact_inquiry"], err = template.New("contact_inquiry").Parse(contactInquiryEmailHTML)
	if err != nil {
		return fmt.Errorf("failed to parse contact inquiry template: %v", err)
	}

	svc.templates["password_reset"], err = template.New("password_reset").Parse(passwordResetEmailHTML)
	if err != nil {
		return fmt.Errorf("failed to parse password reset template: %v", err)
	}

	return nil
}

// SendContactInquiryEmail forwards a contact-form submission to the site
// inbox with the sender set as reply-to.
func (svc *EmailService) SendContactInquiryEmail(name, email, message string) error {
	if svc.smtpHost == "" {
		log.Warn("SMTP not configured, skipping contact inquiry email")
		return nil
	}

	data := ContactInquiryEmailData{
		AppName: svc.fromName,
		Name:    name,
		Email:   email,
		Message: message,
		Year:    time.Now().Year(),
	}

	subject := fmt.Sprintf("New Contact: %s", name)
	return svc.sendTemplateEmail(svc.contactEmail, email, subject, "contact_inquiry", data)
}

func (svc *EmailService) SendPasswordResetEmail(email, name, code string) error {
	if svc.smtpHost == "" {
		log.Warn("SMTP not configured, skipping password reset email")
		return nil
	}

	data := PasswordResetEmailData{
		AppName: svc.fromName,
		Name:    name,
		Code:    code,
		Year:    time.Now().Year(),
	}

	subject := fmt.Sprintf("Reset Your Password - %s", svc.fromName)
	return svc.sendTemplateEmail(email, "", subject, "password_reset", data)
}

func (svc *EmailService) sendTemplateEmail(to, replyTo, subject, templateName string, data interface{}) error {
	tmpl, exists := svc.templates[templateName]
	if !exists {
		return fmt.Errorf("template %s not found", templateName)
	}

	var body bytes.Buffer
	err := tmpl.Execute(&body, data)
	if err != nil {
		return fmt.Errorf("failed to execute template: %v", err)
	}

	return svc.sendEmail(to, replyTo, subject, body.String())
}

func (svc *EmailService) sendEmail(to, replyTo, subject, body string) error {
	if svc.smtpHost == "" {
		return fmt.Errorf("SMTP not configured")
	}

	auth := smtp.PlainAuth("", svc.smtpUsername, svc.smtpPassword, svc.smtpHost)

	headers := fmt.Sprintf(
		"From: %s <%s>\r\n"+
			"To: %s\r\n"+
			"Subject: %s\r\n",
		svc.fromName, svc.fromEmail, to, subject)
	if replyTo != "" {
		headers += fmt.Sprintf("Reply-To: %s\r\n", replyTo)
	}
	headers += "MIME-Version: 1.0\r\n" +
		"Content-Type: text/html; charset=UTF-8\r\n"

	msg := []byte(headers + "\r\n" + body)

	err := smtp.SendMail(
		svc.smtpHost+":"+svc.smtpPort,
		auth,
		svc.fromEmail,
		[]string{to},
		msg,
	)

	if err != nil {
		log.WithError(err).WithFields(log.Fields{"to": to, "subject": subject}).Error("Failed to send email")
		return fmt.Errorf("failed to send email: %v", err)
	}

	log.WithFields(log.Fields{"to": to, "subject": subject}).Info("Email sent successfully")
	return nil
}
