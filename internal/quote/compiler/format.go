package compiler

import (
	"fmt"
	"html/template"
	"regexp"
	"strings"
	"time"

	"github.com/Iterio-app/Iterio-Platform-sub000/internal/quote/domain"
)

var (
	hexColorPattern  = regexp.MustCompile(`^#[0-9a-fA-F]{6}$`)
	fontFamilyFilter = regexp.MustCompile(`^[A-Za-z0-9 \-]+$`)
)

var dateLayouts = []string{
	"2006-01-02",
	time.RFC3339,
	"02/01/2006",
}

// formatMoney renders an item price against the quote's global currency.
// A nil amount renders nothing; an explicit zero renders the no-decimals
// variant ("USD 0").
func formatMoney(p domain.Price, globalCurrency string) string {
	if p.Amount == nil {
		return ""
	}
	return formatMoneyValue(*p.Amount, p.EffectiveCurrency(globalCurrency))
}

// formatMoneyValue renders "USD 1,234.56"; zero renders "USD 0".
func formatMoneyValue(amount float64, currency string) string {
	currency = strings.ToUpper(strings.TrimSpace(currency))
	if currency == "" {
		currency = "USD"
	}
	if amount == 0 {
		return currency + " 0"
	}
	sign := ""
	if amount < 0 {
		sign = "-"
		amount = -amount
	}
	whole := fmt.Sprintf("%.2f", amount)
	parts := strings.SplitN(whole, ".", 2)
	return fmt.Sprintf("%s %s%s.%s", currency, sign, groupThousands(parts[0]), parts[1])
}

func groupThousands(digits string) string {
	if len(digits) <= 3 {
		return digits
	}
	var b strings.Builder
	lead := len(digits) % 3
	if lead > 0 {
		b.WriteString(digits[:lead])
	}
	for i := lead; i < len(digits); i += 3 {
		if b.Len() > 0 {
			b.WriteByte(',')
		}
		b.WriteString(digits[i : i+3])
	}
	return b.String()
}

// formatDate renders day/month/year. Unparsable input passes through
// verbatim rather than failing the compile.
func formatDate(raw string) string {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return ""
	}
	for _, layout := range dateLayouts {
		if parsed, err := time.Parse(layout, raw); err == nil {
			return parsed.Format("02/01/2006")
		}
	}
	return raw
}

func sanitizeColor(value, fallback string) string {
	trimmed := strings.TrimSpace(value)
	if hexColorPattern.MatchString(trimmed) {
		return trimmed
	}
	return fallback
}

func sanitizeFont(value string) string {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" || !fontFamilyFilter.MatchString(trimmed) {
		return "Helvetica"
	}
	return trimmed
}

const maxGalleryImages = 6

// gallery holds a capped image list plus its resolved layout class. Images
// are template.URL so inline data URIs survive template sanitization.
type gallery struct {
	Images []template.URL
	Class  string
}

// galleryView caps the image list and picks the layout: accommodations use
// a single vertical column, every other category a 1-3 column grid keyed
// on image count.
func galleryView(images []string, category string) gallery {
	capped := make([]template.URL, 0, maxGalleryImages)
	for _, img := range images {
		img = strings.TrimSpace(img)
		if img == "" {
			continue
		}
		capped = append(capped, template.URL(img))
		if len(capped) == maxGalleryImages {
			break
		}
	}

	class := "gallery-col"
	if category != "accommodation" {
		switch {
		case len(capped) <= 1:
			class = "gallery-grid-1"
		case len(capped) == 2:
			class = "gallery-grid-2"
		default:
			class = "gallery-grid-3"
		}
	}
	return gallery{Images: capped, Class: class}
}
