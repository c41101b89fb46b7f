package services

import (
	"bytes"
	"fmt"
	"html/template"
	"time"

	"github.com/alphabatem/common/context"
	log "github.com/sirupsen/logrus"

	"github.com/alpenrent/alpenrent_api/dto"
	"github.com/alpenrent/alpenrent_api/model"
)

// DocumentService renders the printable booking confirmation and stores
// it in the object store. The counter desk scans the embedded pickup
// code at handover.
type DocumentService struct {
	context.DefaultService

	minioSvc *MinIOService
	tmpl     *template.Template
}

const DOCUMENT_SVC = "document_svc"

func (svc DocumentService) Id() string {
	return DOCUMENT_SVC
}

func (svc *DocumentService) Start() error {
	svc.minioSvc = svc.Service(MINIO_SVC).(*MinIOService)

	tmpl, err := template.New("confirmation").Parse(confirmationDocumentHTML)
	if err != nil {
		return fmt.Errorf("failed to parse confirmation document template: %v", err)
	}
	svc.tmpl = tmpl
	return nil
}

const confirmationDocumentHTML = `
<!DOCTYPE html>
<html>
<head>
    <meta charset="UTF-8">
    <title>Buchungsbestätigung {{.ReservationID}}</title>
    <style>
        body { font-family: Arial, sans-serif; color: #111; margin: 40px; }
        h1 { font-size: 22px; border-bottom: 2px solid #1D4ED8; padding-bottom: 8px; }
        table { border-collapse: collapse; margin: 24px 0; }
        td { padding: 6px 16px 6px 0; vertical-align: top; }
        .label { color: #555; }
        .code { font-family: monospace; font-size: 16px; background: #f3f4f6; padding: 8px 12px; display: inline-block; }
        .total { font-size: 18px; font-weight: bold; }
    </style>
</head>
<body>
    <h1>AlpenRent — Buchungsbestätigung</h1>
    <table>
        <tr><td class="label">Buchungsnummer</td><td>{{.ReservationID}}</td></tr>
        <tr><td class="label">Kunde</td><td>{{.FirstName}} {{.LastName}}</td></tr>
        <tr><td class="label">Abholung</td><td>{{.PickupDate}} um {{.PickupTime}} Uhr<br>{{.PickupAddress}}</td></tr>
        <tr><td class="label">Rückgabe</td><td>{{.DropoffDate}} um {{.DropoffTime}} Uhr<br>{{.DropoffAddress}}</td></tr>
        <tr><td class="label">Mietdauer</td><td>{{.Days}} Tag(e)</td></tr>
        <tr><td class="label total">Gesamtpreis</td><td class="total">{{.Currency}} {{printf "%.2f" .Total}}</td></tr>
    </table>
    <p>Abholcode (bitte bei der Übergabe vorweisen):</p>
    <p class="code">{{.PickupCode}}</p>
    <p>Erstellt am {{.IssuedAt}}</p>
</body>
</html>
`

type confirmationDocumentData struct {
	ReservationID  string
	FirstName      string
	LastName       string
	PickupDate     string
	PickupTime     string
	PickupAddress  string
	DropoffDate    string
	DropoffTime    string
	DropoffAddress string
	Days           int
	Total          float64
	Currency       string
	PickupCode     string
	IssuedAt       string
}

// PublishConfirmation renders the confirmation document, uploads it and
// returns a presigned download URL valid for a week.
func (svc *DocumentService) PublishConfirmation(res *model.Reservation, pricing dto.PricingBreakdown) (string, error) {
	data := confirmationDocumentData{
		ReservationID:  res.ID,
		FirstName:      res.FirstName,
		LastName:       res.LastName,
		PickupDate:     res.PickupDate.Format("02.01.2006"),
		PickupTime:     res.PickupTime,
		PickupAddress:  res.PickupAddress,
		DropoffDate:    res.DropoffDate.Format("02.01.2006"),
		DropoffTime:    res.DropoffTime,
		DropoffAddress: res.DropoffAddress,
		Days:           pricing.Days,
		Total:          pricing.Total,
		Currency:       pricing.Currency,
		PickupCode:     PickupCode(res),
		IssuedAt:       time.Now().Format("02.01.2006 15:04"),
	}

	var body bytes.Buffer
	if err := svc.tmpl.Execute(&body, data); err != nil {
		return "", fmt.Errorf("failed to render confirmation document: %v", err)
	}

	objectName := fmt.Sprintf("confirmations/%s.html", res.ID)
	if _, err := svc.minioSvc.UploadFile(objectName, &body, int64(body.Len()), "text/html; charset=utf-8"); err != nil {
		return "", err
	}

	url, err := svc.minioSvc.GetFileURL(objectName, 7*24*time.Hour)
	if err != nil {
		// Upload succeeded; the object name is still useful.
		log.WithError(err).WithField("object", objectName).Warn("Failed to presign confirmation document")
		return objectName, nil
	}
	return url, nil
}

// PickupCode is the scannable payload printed on the confirmation.
func PickupCode(res *model.Reservation) string {
	return fmt.Sprintf("ALPENRENT:%s:%s", res.ID, res.PickupDate.Format("20060102"))
}
