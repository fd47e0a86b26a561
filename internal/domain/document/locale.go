package document

import (
	"fmt"
	"strings"
)

type Locale string

const (
	LocaleES Locale = "es"
	LocalePT Locale = "pt"
	LocaleCA Locale = "ca"
)

func ParseLocale(s string) (Locale, error) {
	l := Locale(strings.ToLower(strings.TrimSpace(s)))
	if _, ok := tables[l]; ok {
		return l, nil
	}
	return "", fmt.Errorf("unsupported locale %q", s)
}

// texts is the per-locale string table. Format verbs take, in order:
// salutation (client name), distance (km), difficulty (factor), validity
// (days), budgetSubject (project, client), invoiceSubject (number),
// invoiceBody (first name, number), responseSubject (project), sumTax (percent).
type texts struct {
	budgetTitle  string
	invoiceTitle string

	salutation   string
	budgetIntro  string
	budgetHead   string
	servicesHead string
	noteLabel    string
	subtotal     string
	distance     string
	difficulty   string
	adjustment   string
	totalLabel   string
	observations string
	disclaimers  []string
	validity     string
	closing      string
	farewell     string

	budgetSubject   string
	invoiceSubject  string
	invoiceBody     string
	responseSubject string

	colDescription string
	colAmount      string
	sumSubtotal    string
	sumTax         string
	sumTotal       string

	taxIDLabel   string
	phoneLabel   string
	emailLabel   string
	paymentLabel string
	bankLabel    string
	ibanLabel    string
}

var tables = map[Locale]texts{
	LocaleES: {
		budgetTitle:  "Presupuesto",
		invoiceTitle: "Factura",

		salutation:   "Estimado/a %s,",
		budgetIntro:  "Tras nuestra visita técnica, le presentamos el presupuesto detallado para la obra solicitada.",
		budgetHead:   "PRESUPUESTO",
		servicesHead: "SERVICIOS INCLUIDOS",
		noteLabel:    "Nota",
		subtotal:     "Subtotal servicios",
		distance:     "Desplazamiento (%s km)",
		difficulty:   "Factor de complejidad (x%s)",
		adjustment:   "Ajuste",
		totalLabel:   "IMPORTE TOTAL",
		observations: "OBSERVACIONES:",
		disclaimers: []string{
			"Presupuesto elaborado tras visita técnica",
			"Materiales de calidad incluidos",
			"Garantía del trabajo realizado",
		},
		validity: "Validez: %d días",
		closing:  "Quedamos a su disposición para cualquier consulta o aclaración.",
		farewell: "Un cordial saludo.",

		budgetSubject:   "Presupuesto: %s - %s",
		invoiceSubject:  "Factura %s",
		invoiceBody:     "Buenas tardes %s,\n\nTe envío la factura %s.\n\nUn saludo.",
		responseSubject: "Re: Presupuesto - %s",

		colDescription: "DESCRIPCIÓN",
		colAmount:      "TOTAL",
		sumSubtotal:    "SUBTOTAL",
		sumTax:         "IVA %d%%",
		sumTotal:       "TOTAL",

		taxIDLabel:   "NIF",
		phoneLabel:   "Teléfono",
		emailLabel:   "Mail",
		paymentLabel: "Método de pago",
		bankLabel:    "Entidad",
		ibanLabel:    "IBAN",
	},
	LocalePT: {
		budgetTitle:  "Orçamento",
		invoiceTitle: "Fatura",

		salutation:   "Prezado(a) %s,",
		budgetIntro:  "Após a nossa visita técnica, apresentamos o orçamento detalhado para a obra solicitada.",
		budgetHead:   "ORÇAMENTO",
		servicesHead: "SERVIÇOS INCLUÍDOS",
		noteLabel:    "Nota",
		subtotal:     "Subtotal serviços",
		distance:     "Deslocamento (%s km)",
		difficulty:   "Fator de complexidade (x%s)",
		adjustment:   "Ajuste",
		totalLabel:   "VALOR TOTAL",
		observations: "OBSERVAÇÕES:",
		disclaimers: []string{
			"Orçamento elaborado após visita técnica",
			"Materiais de qualidade incluídos",
			"Garantia do trabalho realizado",
		},
		validity: "Validade: %d dias",
		closing:  "Ficamos à disposição para qualquer dúvida ou esclarecimento.",
		farewell: "Atenciosamente.",

		budgetSubject:   "Orçamento: %s - %s",
		invoiceSubject:  "Fatura %s",
		invoiceBody:     "Boa tarde %s,\n\nSegue em anexo a fatura %s.\n\nCumprimentos.",
		responseSubject: "Re: Orçamento - %s",

		colDescription: "DESCRIÇÃO",
		colAmount:      "TOTAL",
		sumSubtotal:    "SUBTOTAL",
		sumTax:         "IVA %d%%",
		sumTotal:       "TOTAL",

		taxIDLabel:   "NIF",
		phoneLabel:   "Telefone",
		emailLabel:   "Email",
		paymentLabel: "Forma de pagamento",
		bankLabel:    "Banco",
		ibanLabel:    "IBAN",
	},
	LocaleCA: {
		budgetTitle:  "Pressupost",
		invoiceTitle: "Factura",

		salutation:   "Benvolgut/da %s,",
		budgetIntro:  "Després de la nostra visita tècnica, li presentem el pressupost detallat per a l'obra sol·licitada.",
		budgetHead:   "PRESSUPOST",
		servicesHead: "SERVEIS INCLOSOS",
		noteLabel:    "Nota",
		subtotal:     "Subtotal serveis",
		distance:     "Desplaçament (%s km)",
		difficulty:   "Factor de complexitat (x%s)",
		adjustment:   "Ajust",
		totalLabel:   "IMPORT TOTAL",
		observations: "OBSERVACIONS:",
		disclaimers: []string{
			"Pressupost elaborat després de visita tècnica",
			"Materials de qualitat inclosos",
			"Garantia de la feina feta",
		},
		validity: "Validesa: %d dies",
		closing:  "Restem a la seva disposició per a qualsevol consulta o aclariment.",
		farewell: "Salutacions cordials.",

		budgetSubject:   "Pressupost: %s - %s",
		invoiceSubject:  "Factura %s",
		invoiceBody:     "Bona tarda %s,\n\nT'envio la factura %s.\n\nSalutacions.",
		responseSubject: "Re: Pressupost - %s",

		colDescription: "DESCRIPCIÓ",
		colAmount:      "TOTAL",
		sumSubtotal:    "SUB-TOTAL",
		sumTax:         "IVA %d%%",
		sumTotal:       "TOTAL",

		taxIDLabel:   "NIF",
		phoneLabel:   "Telèfon",
		emailLabel:   "Mail",
		paymentLabel: "Mètode de pagament",
		bankLabel:    "Entitat",
		ibanLabel:    "IBAN",
	},
}
