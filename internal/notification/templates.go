package notification

import (
	"bytes"
	"fmt"
	"html/template"
	"strings"

	"diligencias/internal/domain"
	"diligencias/internal/schedule"
)

const appointmentEmailTemplate = `<!DOCTYPE html>
<html>
<body style="font-family: Arial, sans-serif; color: #1f2937;">
  <h2>{{.Heading}}</h2>
  <ul>
    <li>Solicitante: {{.Requester}}</li>
    <li>Data: {{.Date}}</li>
    <li>Horário: {{.Slot}} ({{.Period}})</li>
    <li>Endereço: {{.Address}}</li>
    {{- if .Notes}}
    <li>Observações: {{.Notes}}</li>
    {{- end}}
    {{- if .CancelledBy}}
    <li>Cancelado por: {{.CancelledBy}}</li>
    {{- end}}
  </ul>
</body>
</html>`

var appointmentEmailTmpl = template.Must(template.New("appointment_email").Parse(appointmentEmailTemplate))

type appointmentEmailData struct {
	Heading     string
	Requester   string
	Date        string
	Slot        string
	Period      string
	Address     string
	Notes       string
	CancelledBy string
}

func buildAppointmentEmail(evType string, a *domain.Appointment) (Email, error) {
	data := appointmentEmailData{
		Requester: a.RequesterName,
		Date:      BrazilianDate(a.Date),
		Slot:      a.Slot,
		Period:    PeriodLabel(a.Slot),
		Address:   FormatAddress(a),
		Notes:     a.Notes,
	}

	var subject string
	switch evType {
	case TypeAppointmentCreated:
		data.Heading = "Nova diligência agendada"
		subject = fmt.Sprintf("Nova diligência agendada - %s às %s", data.Date, a.Slot)
	case TypeAppointmentCancelled:
		data.Heading = "Diligência cancelada"
		data.CancelledBy = a.CancelledBy
		subject = fmt.Sprintf("Diligência cancelada - %s às %s", data.Date, a.Slot)
	default:
		return Email{}, fmt.Errorf("no email template for %s", evType)
	}

	var buf bytes.Buffer
	if err := appointmentEmailTmpl.Execute(&buf, data); err != nil {
		return Email{}, err
	}
	return Email{Subject: subject, HTML: buf.String()}, nil
}

// BrazilianDate turns 2024-06-10 into 10/06/2024.
func BrazilianDate(date string) string {
	parts := strings.Split(date, "-")
	if len(parts) != 3 {
		return date
	}
	return parts[2] + "/" + parts[1] + "/" + parts[0]
}

func PeriodLabel(slot string) string {
	if schedule.PeriodOf(schedule.Slot(slot)) == schedule.PeriodMorning {
		return "Manhã"
	}
	return "Tarde"
}

func FormatAddress(a *domain.Appointment) string {
	var b strings.Builder
	b.WriteString(a.Street)
	b.WriteString(", ")
	b.WriteString(a.Number)
	if a.Complement != "" {
		b.WriteString(" - ")
		b.WriteString(a.Complement)
	}
	fmt.Fprintf(&b, ", %s, %s/%s, CEP %s", a.District, a.City, a.State, a.CEP)
	return b.String()
}
