package services

import (
	"bytes"
	"fmt"
	"html/template"
	"net/smtp"
	"os"

	"github.com/alphabatem/common/context"
	log "github.com/sirupsen/logrus"

	"github.com/alpenrent/alpenrent_api/dto"
	"github.com/alpenrent/alpenrent_api/model"
)

// EmailService sends the transactional mails around a booking: the
// confirmation to the customer and the notification to the back office.
type EmailService struct {
	context.DefaultService

	smtpHost     string
	smtpPort     string
	smtpUsername string
	smtpPassword string
	fromEmail    string
	fromName     string
	adminEmail   string
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
	svc.adminEmail = os.Getenv("ADMIN_EMAIL")
	svc.baseURL = os.Getenv("BASE_URL")

	if svc.smtpPort == "" {
		svc.smtpPort = "587"
	}
	if svc.fromName == "" {
		svc.fromName = "AlpenRent"
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

const bookingConfirmationHTML = `
<!DOCTYPE html>
<html>
<head>
    <meta charset="UTF-8">
    <title>Buchungsbestätigung - {{.AppName}}</title>
    <style>
        body { font-family: Arial, sans-serif; line-height: 1.6; color: #333; }
        .container { max-width: 600px; margin: 0 auto; padding: 20px; }
        .header { background-color: #1D4ED8; color: white; padding: 20px; text-align: center; }
        .content { padding: 20px; background-color: #f9f9f9; }
        .details { background-color: white; border: 1px solid #e5e5e5; padding: 15px; margin: 20px 0; }
        .details td { padding: 4px 12px 4px 0; }
        .total { font-size: 18px; font-weight: bold; }
        .footer { padding: 20px; text-align: center; color: #666; font-size: 12px; }
    </style>
</head>
<body>
    <div class="container">
        <div class="header">
            <h1>Ihre Buchung ist bestätigt</h1>
        </div>
        <div class="content">
            <h2>Guten Tag {{.FirstName}} {{.LastName}},</h2>
            <p>vielen Dank für Ihre Buchung bei {{.AppName}}. Hier die Details:</p>
            <div class="details">
                <table>
                    <tr><td>Buchungsnummer:</td><td>{{.ReservationID}}</td></tr>
                    <tr><td>Abholung:</td><td>{{.PickupDate}} um {{.PickupTime}} Uhr, {{.PickupAddress}}</td></tr>
                    <tr><td>Rückgabe:</td><td>{{.DropoffDate}} um {{.DropoffTime}} Uhr, {{.DropoffAddress}}</td></tr>
                    <tr><td>Mietdauer:</td><td>{{.Days}} Tag(e)</td></tr>
                    <tr><td class="total">Gesamtpreis:</td><td class="total">{{.Currency}} {{printf "%.2f" .Total}}</td></tr>
                </table>
            </div>
            <p>Bitte bringen Sie zur Abholung Ihren Führerausweis und eine Kreditkarte mit.</p>
            <p>Bei Fragen erreichen Sie uns jederzeit per Antwort auf diese E-Mail.</p>
        </div>
        <div class="footer">
            <p>&copy; 2026 {{.AppName}}. Alle Rechte vorbehalten.</p>
        </div>
    </div>
</body>
</html>
`

const adminNotificationHTML = `
<!DOCTYPE html>
<html>
<head>
    <meta charset="UTF-8">
    <title>Neue Buchung - {{.AppName}}</title>
    <style>
        body { font-family: Arial, sans-serif; line-height: 1.6; color: #333; }
        .container { max-width: 600px; margin: 0 auto; padding: 20px; }
        .header { background-color: #047857; color: white; padding: 20px; text-align: center; }
        .content { padding: 20px; background-color: #f9f9f9; }
        .details { background-color: white; border: 1px solid #e5e5e5; padding: 15px; margin: 20px 0; }
        .details td { padding: 4px 12px 4px 0; }
    </style>
</head>
<body>
    <div class="container">
        <div class="header">
            <h1>Neue Buchung eingegangen</h1>
        </div>
        <div class="content">
            <div class="details">
                <table>
                    <tr><td>Buchungsnummer:</td><td>{{.ReservationID}}</td></tr>
                    <tr><td>Kunde:</td><td>{{.FirstName}} {{.LastName}} ({{.Email}}, {{.Phone}})</td></tr>
                    <tr><td>Fahrzeug:</td><td>{{.CarID}}</td></tr>
                    <tr><td>Abholung:</td><td>{{.PickupDate}} {{.PickupTime}} — {{.PickupAddress}}</td></tr>
                    <tr><td>Rückgabe:</td><td>{{.DropoffDate}} {{.DropoffTime}} — {{.DropoffAddress}}</td></tr>
                    <tr><td>Gesamtpreis:</td><td>{{.Currency}} {{printf "%.2f" .Total}}</td></tr>
                </table>
            </div>
        </div>
    </div>
</body>
</html>
`

type bookingEmailData struct {
	AppName        string
	ReservationID  string
	FirstName      string
	LastName       string
	Email          string
	Phone          string
	CarID          string
	PickupDate     string
	PickupTime     string
	PickupAddress  string
	DropoffDate    string
	DropoffTime    string
	DropoffAddress string
	Days           int
	Total          float64
	Currency       string
}

func (svc *EmailService) loadTemplates() error {
	var err error

	svc.templates["booking_confirmation"], err = template.New("booking_confirmation").Parse(bookingConfirmationHTML)
	if err != nil {
		return fmt.Errorf("failed to parse booking confirmation template: %v", err)
	}

	svc.templates["admin_notification"], err = template.New("admin_notification").Parse(adminNotificationHTML)
	if err != nil {
		return fmt.Errorf("failed to parse admin notification template: %v", err)
	}

	return nil
}

// SendBookingConfirmation mails the customer their confirmation.
func (svc *EmailService) SendBookingConfirmation(res *model.Reservation, pricing dto.PricingBreakdown) error {
	subject := fmt.Sprintf("Ihre Buchung %s ist bestätigt", res.ID)
	return svc.sendTemplate(res.Email, subject, "booking_confirmation", svc.emailData(res, pricing))
}

// SendAdminNotification mails the back office about a new booking. A
// missing ADMIN_EMAIL disables the notification silently.
func (svc *EmailService) SendAdminNotification(res *model.Reservation, pricing dto.PricingBreakdown) error {
	if svc.adminEmail == "" {
		return nil
	}
	subject := fmt.Sprintf("Neue Buchung %s", res.ID)
	return svc.sendTemplate(svc.adminEmail, subject, "admin_notification", svc.emailData(res, pricing))
}

func (svc *EmailService) emailData(res *model.Reservation, pricing dto.PricingBreakdown) bookingEmailData {
	return bookingEmailData{
		AppName:        svc.fromName,
		ReservationID:  res.ID,
		FirstName:      res.FirstName,
		LastName:       res.LastName,
		Email:          res.Email,
		Phone:          res.Phone,
		CarID:          res.CarID,
		PickupDate:     res.PickupDate.Format("02.01.2006"),
		PickupTime:     res.PickupTime,
		PickupAddress:  res.PickupAddress,
		DropoffDate:    res.DropoffDate.Format("02.01.2006"),
		DropoffTime:    res.DropoffTime,
		DropoffAddress: res.DropoffAddress,
		Days:           pricing.Days,
		Total:          pricing.Total,
		Currency:       pricing.Currency,
	}
}

func (svc *EmailService) sendTemplate(to, subject, templateName string, data bookingEmailData) error {
	if svc.smtpHost == "" {
		log.WithField("to", to).Debug("SMTP not configured, skipping email")
		return nil
	}

	tmpl, ok := svc.templates[templateName]
	if !ok {
		return fmt.Errorf("template %s not loaded", templateName)
	}

	var body bytes.Buffer
	if err := tmpl.Execute(&body, data); err != nil {
		return fmt.Errorf("failed to render template %s: %v", templateName, err)
	}

	return svc.sendEmail(to, subject, body.String())
}

func (svc *EmailService) sendEmail(to, subject, htmlBody string) error {
	from := fmt.Sprintf("%s <%s>", svc.fromName, svc.fromEmail)

	msg := fmt.Sprintf("From: %s\r\n", from)
	msg += fmt.Sprintf("To: %s\r\n", to)
	msg += fmt.Sprintf("Subject: %s\r\n", subject)
	msg += "MIME-Version: 1.0\r\n"
	msg += "Content-Type: text/html; charset=UTF-8\r\n"
	msg += "\r\n"
	msg += htmlBody

	auth := smtp.PlainAuth("", svc.smtpUsername, svc.smtpPassword, svc.smtpHost)
	addr := fmt.Sprintf("%s:%s", svc.smtpHost, svc.smtpPort)

	if err := smtp.SendMail(addr, auth, svc.fromEmail, []string{to}, []byte(msg)); err != nil {
		return fmt.Errorf("failed to send email: %v", err)
	}

	log.WithField("to", to).WithField("subject", subject).Info("Email sent")
	return nil
}
