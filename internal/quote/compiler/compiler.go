package compiler

import (
	"bytes"
	"html/template"
	"strings"
	"time"

	"github.com/Iterio-app/Iterio-Platform-sub000/internal/quote/domain"
)

// Compiler turns a quote snapshot and a presentation snapshot into a fully
// self-contained HTML document. Compilation is pure: identical inputs plus
// an identical generatedAt produce byte-identical output.
type Compiler struct {
	tpl *template.Template
}

func New() *Compiler {
	funcs := template.FuncMap{
		"money":      formatMoney,
		"moneyValue": formatMoneyValue,
		"date":       formatDate,
		"gallery":    galleryView,
	}
	return &Compiler{
		tpl: template.Must(template.New("quote").Funcs(funcs).Parse(quoteHTMLTemplate)),
	}
}

// documentView is the fully resolved input handed to the template. All
// section decisions (presence, ordering, totals) are made here, not in the
// template.
type documentView struct {
	Quote        domain.QuoteData
	Presentation domain.PresentationConfig
	Logo         template.URL
	GeneratedAt  string
	Requirements []string
	Totals       []TotalLine
	ShowTotals   bool
}

// TotalLine is one aggregated totals row, a single currency's sum.
type TotalLine struct {
	Currency string
	Amount   float64
}

// Compile renders the document. Missing optional data never fails; every
// section guards on presence and is omitted entirely when empty.
func (c *Compiler) Compile(quote domain.QuoteData, presentation domain.PresentationConfig, generatedAt time.Time) (string, error) {
	presentation.PrimaryColor = sanitizeColor(presentation.PrimaryColor, "#1d4ed8")
	presentation.SecondaryColor = sanitizeColor(presentation.SecondaryColor, "#0f172a")
	presentation.FontFamily = sanitizeFont(presentation.FontFamily)
	quote.GlobalCurrency = strings.ToUpper(strings.TrimSpace(quote.GlobalCurrency))

	view := documentView{
		Quote:        quote,
		Presentation: presentation,
		Logo:         template.URL(strings.TrimSpace(presentation.LogoData)),
		GeneratedAt:  generatedAt.UTC().Format("02/01/2006 15:04"),
		Requirements: collectRequirements(quote.Flights),
		Totals:       AggregateTotals(quote),
	}
	view.ShowTotals = quote.ShowTotal && len(view.Totals) > 0

	var buf bytes.Buffer
	if err := c.tpl.Execute(&buf, view); err != nil {
		return "", err
	}
	return buf.String(), nil
}

// collectRequirements unions flight-level migratory requirement tags,
// de-duplicated in first-seen order.
func collectRequirements(flights []domain.Flight) []string {
	seen := make(map[string]struct{})
	var requirements []string
	for _, flight := range flights {
		for _, tag := range flight.Requirements {
			tag = strings.TrimSpace(tag)
			if tag == "" {
				continue
			}
			key := strings.ToLower(tag)
			if _, ok := seen[key]; ok {
				continue
			}
			seen[key] = struct{}{}
			requirements = append(requirements, tag)
		}
	}
	return requirements
}

// AggregateTotals groups every priced, price-visible accommodation,
// transfer, activity and cruise by effective currency. Flights are shown
// per-item only and never aggregated. Currencies whose sum is zero are
// dropped from the result.
func AggregateTotals(quote domain.QuoteData) []TotalLine {
	sums := make(map[string]float64)
	var order []string

	add := func(p domain.Price) {
		if p.Amount == nil || !p.ShowPrice {
			return
		}
		currency := p.EffectiveCurrency(quote.GlobalCurrency)
		if currency == "" {
			return
		}
		if _, ok := sums[currency]; !ok {
			order = append(order, currency)
		}
		sums[currency] += *p.Amount
	}

	for _, item := range quote.Accommodations {
		add(item.Price)
	}
	for _, item := range quote.Transfers {
		add(item.Price)
	}
	for _, item := range quote.Activities {
		add(item.Price)
	}
	for _, item := range quote.Cruises {
		add(item.Price)
	}

	lines := make([]TotalLine, 0, len(order))
	for _, currency := range order {
		if sums[currency] == 0 {
			continue
		}
		lines = append(lines, TotalLine{Currency: currency, Amount: sums[currency]})
	}
	return lines
}
