package receipt

import (
	"bytes"
	"fmt"
	"html/template"
	"math"
	"strings"
	"time"

	"diligencias/internal/domain"
	"diligencias/internal/notification"
)

const documentTemplate = `<!DOCTYPE html>
<html lang="pt-BR">
<head>
  <meta charset="utf-8">
  <title>Recibo {{.Number}}</title>
  <style>
    body { font-family: Helvetica, Arial, sans-serif; font-size: 13px; color: #1f2937; margin: 40px; }
    header { display: flex; justify-content: space-between; border-bottom: 2px solid #1a365d; padding-bottom: 16px; }
    h1 { text-align: center; color: #1a365d; text-transform: uppercase; letter-spacing: 2px; font-size: 18px; }
    h2 { font-size: 13px; color: #1a365d; border-bottom: 1px solid #e2e8f0; padding-bottom: 4px; }
    .label { color: #666; font-size: 11px; }
    .amount { font-size: 20px; font-weight: bold; color: #1a365d; }
    .signature { margin-top: 60px; text-align: center; }
    .signature .line { border-top: 1px solid #1f2937; width: 260px; margin: 0 auto 4px; }
    footer { margin-top: 40px; font-size: 10px; color: #666; text-align: center; }
  </style>
</head>
<body>
  <header>
    <strong>{{.Issuer}}</strong>
    <span>Recibo Nº {{.Number}}</span>
  </header>

  <h1>Recibo de Prestação de Serviço</h1>

  <h2>Dados do Cliente</h2>
  <p><span class="label">Cliente</span><br>{{.Client}}</p>
  <p><span class="label">Solicitante</span><br>{{.Requester}}</p>

  <h2>Dados da Diligência</h2>
  <p><span class="label">Data</span><br>{{.Date}} às {{.Slot}} ({{.Period}})</p>
  <p><span class="label">Endereço</span><br>{{.Address}}</p>

  <h2>Valor</h2>
  <p class="amount">{{.Amount}}</p>
  <p>{{.AmountInWords}}</p>

  <div class="signature">
    <div class="line"></div>
    {{.Issuer}}
  </div>

  <footer>Documento gerado em {{.GeneratedAt}}</footer>
</body>
</html>`

var documentTmpl = template.Must(template.New("receipt").Parse(documentTemplate))

type documentData struct {
	Issuer        string
	Client        string
	Number        string
	Requester     string
	Date          string
	Slot          string
	Period        string
	Address       string
	Amount        string
	AmountInWords string
	GeneratedAt   string
}

// Issuer names the parties printed on receipt documents.
type Issuer struct {
	Name   string
	Client string
}

func renderDocument(issuer Issuer, r *domain.Receipt, generatedAt time.Time) ([]byte, error) {
	a := r.Appointment
	if a == nil {
		return nil, fmt.Errorf("receipt %s has no appointment", r.ID)
	}

	data := documentData{
		Issuer:        issuer.Name,
		Client:        issuer.Client,
		Number:        ReceiptNumber(r.ID),
		Requester:     a.RequesterName,
		Date:          notification.BrazilianDate(a.Date),
		Slot:          a.Slot,
		Period:        notification.PeriodLabel(a.Slot),
		Address:       notification.FormatAddress(a),
		Amount:        FormatBRL(r.Amount),
		AmountInWords: AmountInWords(r.Amount),
		GeneratedAt:   generatedAt.Format("02/01/2006 15:04"),
	}

	var buf bytes.Buffer
	if err := documentTmpl.Execute(&buf, data); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// ReceiptNumber is the first eight characters of the id, upper-cased.
func ReceiptNumber(id string) string {
	compact := strings.ReplaceAll(id, "-", "")
	if len(compact) > 8 {
		compact = compact[:8]
	}
	return strings.ToUpper(compact)
}

// FormatBRL renders 1234.5 as "R$ 1.234,50".
func FormatBRL(v float64) string {
	cents := int64(math.Round(math.Abs(v) * 100))
	reais := cents / 100

	digits := fmt.Sprintf("%d", reais)
	var b strings.Builder
	for i, d := range digits {
		if i > 0 && (len(digits)-i)%3 == 0 {
			b.WriteByte('.')
		}
		b.WriteRune(d)
	}

	sign := ""
	if v < 0 {
		sign = "-"
	}
	return fmt.Sprintf("%sR$ %s,%02d", sign, b.String(), cents%100)
}

var (
	units     = []string{"", "um", "dois", "três", "quatro", "cinco", "seis", "sete", "oito", "nove"}
	teens     = []string{"dez", "onze", "doze", "treze", "quatorze", "quinze", "dezesseis", "dezessete", "dezoito", "dezenove"}
	tens      = []string{"", "", "vinte", "trinta", "quarenta", "cinquenta", "sessenta", "setenta", "oitenta", "noventa"}
	hundreds  = []string{"", "cento", "duzentos", "trezentos", "quatrocentos", "quinhentos", "seiscentos", "setecentos", "oitocentos", "novecentos"}
	maxInWord = int64(999999)
)

// AmountInWords spells a value in Brazilian Portuguese, e.g. 85.5 is
// "Oitenta e cinco reais e cinquenta centavos". Values of a million or more
// fall back to the numeric form.
func AmountInWords(v float64) string {
	cents := int64(math.Round(math.Abs(v) * 100))
	reais, rest := cents/100, cents%100
	if reais > maxInWord {
		return FormatBRL(v)
	}

	var out string
	switch {
	case reais == 0:
		out = "zero reais"
	case reais == 1:
		out = "um real"
	default:
		out = spellThousands(reais) + " reais"
	}

	if rest > 0 {
		suffix := " centavos"
		if rest == 1 {
			suffix = " centavo"
		}
		if reais == 0 {
			out = spellHundreds(rest) + suffix
		} else {
			out += " e " + spellHundreds(rest) + suffix
		}
	}
	return strings.ToUpper(out[:1]) + out[1:]
}

func spellThousands(n int64) string {
	thousands, rest := n/1000, n%1000
	var parts []string
	switch {
	case thousands == 1:
		parts = append(parts, "mil")
	case thousands > 1:
		parts = append(parts, spellHundreds(thousands)+" mil")
	}
	if rest > 0 {
		// "mil e cem", "mil e vinte", but "mil cento e dez"
		if thousands > 0 && (rest < 100 || rest%100 == 0) {
			parts = append(parts, "e")
		}
		parts = append(parts, spellHundreds(rest))
	}
	return strings.Join(parts, " ")
}

func spellHundreds(n int64) string {
	if n == 100 {
		return "cem"
	}
	c, d, u := n/100, (n%100)/10, n%10

	var parts []string
	if c > 0 {
		parts = append(parts, hundreds[c])
	}
	switch {
	case d == 1:
		parts = append(parts, teens[u])
	case d > 1:
		parts = append(parts, tens[d])
		if u > 0 {
			parts = append(parts, units[u])
		}
	case u > 0:
		parts = append(parts, units[u])
	}
	return strings.Join(parts, " e ")
}
