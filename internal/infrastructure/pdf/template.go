package pdf

import (
	"bytes"
	"fmt"
	"html/template"

	"obra_presupuestos/internal/domain/document"

	"github.com/shopspring/decimal"
)

var documentTemplate = template.Must(template.New("document").Funcs(template.FuncMap{
	"money": func(d *decimal.Decimal, symbol string) string {
		if d == nil {
			return ""
		}
		return document.FormatMoney(*d, symbol)
	},
	"indent": func(n int) template.CSS {
		return template.CSS(fmt.Sprintf("padding-left:%dpx", n*16))
	},
}).Parse(`<!DOCTYPE html>
<html lang="{{.Locale}}">
<head>
<meta charset="utf-8">
<title>{{.Title}} {{.Number}}</title>
<style>
  @page { size: A4; margin: 18mm 16mm; }
  body { font-family: Helvetica, Arial, sans-serif; font-size: 11pt; color: #222; }
  header { display: flex; justify-content: space-between; margin-bottom: 24px; }
  h1 { font-size: 18pt; margin: 0 0 4px 0; }
  .party p { margin: 0; }
  table { width: 100%; border-collapse: collapse; }
  th { text-align: left; border-bottom: 2px solid #222; padding: 6px 4px; }
  td { padding: 5px 4px; border-bottom: 1px solid #ddd; vertical-align: top; }
  td.amount, th.amount { text-align: right; white-space: nowrap; }
  tr.included td { color: #555; font-size: 10pt; border-bottom: none; }
  tr.summary td { font-weight: bold; border-bottom: none; }
  tr.total td { font-size: 13pt; border-top: 2px solid #222; }
  .notes, .payment { margin-top: 20px; font-size: 10pt; }
  .notes p, .payment p { margin: 2px 0; }
</style>
</head>
<body>
<header>
  <div class="party">
    <p><strong>{{.Issuer.Name}}</strong></p>
    {{with .Issuer.Address}}<p>{{.}}</p>{{end}}
    {{with .Issuer.TaxID}}<p>{{$.Labels.TaxID}}: {{.}}</p>{{end}}
    {{with .Issuer.Phone}}<p>{{$.Labels.Phone}}: {{.}}</p>{{end}}
    {{with .Issuer.Email}}<p>{{$.Labels.Email}}: {{.}}</p>{{end}}
  </div>
  <div class="party">
    <h1>{{.Title}}: {{.Number}}</h1>
    <p>{{.Date}}</p>
    <p><strong>{{.Client.Name}}</strong></p>
    {{with .Client.Email}}<p>{{.}}</p>{{end}}
    {{with .Client.Phone}}<p>{{.}}</p>{{end}}
  </div>
</header>
<table>
  <thead><tr><th>{{.Labels.Description}}</th><th class="amount">{{.Labels.Amount}}</th></tr></thead>
  <tbody>
  {{range .Lines}}
    <tr class="{{.Kind}}{{if .IsSummary}} summary{{end}}">
      <td style="{{indent .Indent}}">{{.Description}}</td>
      <td class="amount">{{money .Amount $.Currency}}</td>
    </tr>
  {{end}}
  </tbody>
</table>
{{if .Notes}}<div class="notes">{{range .Notes}}<p>{{.}}</p>{{end}}</div>{{end}}
{{if .Payment}}<div class="payment">{{range .Payment}}<p>{{.}}</p>{{end}}</div>{{end}}
</body>
</html>
`))

// RenderHTML produces the printable page for doc. Text is escaped by
// html/template.
func RenderHTML(doc document.Document) ([]byte, error) {
	var buf bytes.Buffer
	if err := documentTemplate.Execute(&buf, doc); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
