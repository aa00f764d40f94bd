package compiler

import (
	"strings"
	"testing"
	"time"

	"github.com/Iterio-app/Iterio-Platform-sub000/internal/quote/domain"
)

func amount(v float64) *float64 { return &v }

func baseQuote() domain.QuoteData {
	return domain.QuoteData{
		Destination:    domain.Destination{Country: "Spain", City: "Madrid", Year: 2026, Months: []string{"May", "June"}},
		Passengers:     domain.Passengers{Adults: 2},
		GlobalCurrency: "USD",
		ShowTotal:      true,
	}
}

func basePresentation() domain.PresentationConfig {
	return domain.PresentationConfig{
		PrimaryColor:   "#1a56db",
		SecondaryColor: "#0f172a",
		FontFamily:     "Helvetica",
		AgencyName:     "Iterio Travel",
		ValidityNotice: "Quote valid for 7 days.",
	}
}

func TestCompileIsDeterministic(t *testing.T) {
	c := New()
	quote := baseQuote()
	quote.Accommodations = []domain.Accommodation{{
		Price: domain.Price{Amount: amount(200), ShowPrice: true},
		Name:  "Hotel Gran Via",
	}}
	at := time.Date(2026, 5, 1, 10, 0, 0, 0, time.UTC)

	first, err := c.Compile(quote, basePresentation(), at)
	if err != nil {
		t.Fatalf("compile: %v", err)
	}
	second, err := c.Compile(quote, basePresentation(), at)
	if err != nil {
		t.Fatalf("compile: %v", err)
	}
	if first != second {
		t.Fatal("expected byte-identical output for identical inputs")
	}
}

func TestCompileOmitsEmptySections(t *testing.T) {
	c := New()
	html, err := c.Compile(baseQuote(), basePresentation(), time.Now())
	if err != nil {
		t.Fatalf("compile: %v", err)
	}
	for _, heading := range []string{"Flights", "Accommodations", "Transfers", "Activities", "Cruises"} {
		if strings.Contains(html, "<h2>"+heading+"</h2>") {
			t.Fatalf("expected %s section to be omitted", heading)
		}
	}
	if !strings.Contains(html, "Madrid, Spain") {
		t.Fatal("expected destination banner")
	}
	if !strings.Contains(html, "Quote valid for 7 days.") {
		t.Fatal("expected validity notice")
	}
	if !strings.Contains(html, "Iterio Travel") {
		t.Fatal("expected agency footer")
	}
}

func TestSingleCurrencyTotal(t *testing.T) {
	c := New()
	quote := baseQuote()
	quote.Accommodations = []domain.Accommodation{
		{Price: domain.Price{Amount: amount(200), ShowPrice: true}, Name: "A"},
		{Price: domain.Price{Amount: amount(150), ShowPrice: true}, Name: "B"},
	}

	totals := AggregateTotals(quote)
	if len(totals) != 1 {
		t.Fatalf("expected 1 total line, got %d", len(totals))
	}
	if got := formatMoneyValue(totals[0].Amount, totals[0].Currency); got != "USD 350.00" {
		t.Fatalf("expected \"USD 350.00\", got %q", got)
	}

	html, err := c.Compile(quote, basePresentation(), time.Now())
	if err != nil {
		t.Fatalf("compile: %v", err)
	}
	if !strings.Contains(html, "USD 350.00") {
		t.Fatal("expected rendered single total")
	}
}

func TestMultiCurrencyTotals(t *testing.T) {
	quote := baseQuote()
	quote.Accommodations = []domain.Accommodation{
		{Price: domain.Price{Amount: amount(80), ShowPrice: true, UseCustomCurrency: true, Currency: "EUR"}},
	}
	quote.Cruises = []domain.Cruise{
		{Price: domain.Price{Amount: amount(120), ShowPrice: true}},
	}

	totals := AggregateTotals(quote)
	if len(totals) != 2 {
		t.Fatalf("expected 2 total lines, got %d", len(totals))
	}
	sums := map[string]float64{}
	for _, line := range totals {
		sums[line.Currency] = line.Amount
	}
	if sums["EUR"] != 80 || sums["USD"] != 120 {
		t.Fatalf("unexpected aggregate mapping: %v", sums)
	}
}

func TestFlightsExcludedFromTotals(t *testing.T) {
	quote := baseQuote()
	quote.Flights = []domain.Flight{
		{Price: domain.Price{Amount: amount(999), ShowPrice: true}, Airline: "Iberia"},
	}
	if totals := AggregateTotals(quote); len(totals) != 0 {
		t.Fatalf("expected flights to be excluded from totals, got %v", totals)
	}
}

func TestTotalsOmittedWhenEmpty(t *testing.T) {
	c := New()
	quote := baseQuote()
	quote.ShowTotal = true

	html, err := c.Compile(quote, basePresentation(), time.Now())
	if err != nil {
		t.Fatalf("compile: %v", err)
	}
	if strings.Contains(html, `class="totals"`) {
		t.Fatal("expected totals block to be omitted with no priced items")
	}
}

func TestHiddenAndAbsentPricesSkipped(t *testing.T) {
	quote := baseQuote()
	quote.Transfers = []domain.Transfer{
		{Price: domain.Price{Amount: amount(50), ShowPrice: false}},
		{Price: domain.Price{Amount: nil, ShowPrice: true}},
		{Price: domain.Price{Amount: amount(30), ShowPrice: true}},
	}
	totals := AggregateTotals(quote)
	if len(totals) != 1 || totals[0].Amount != 30 {
		t.Fatalf("expected only the visible priced transfer, got %v", totals)
	}
}

func TestMoneyFormatting(t *testing.T) {
	cases := []struct {
		amount   float64
		currency string
		want     string
	}{
		{1234.56, "USD", "USD 1,234.56"},
		{1234567.891, "EUR", "EUR 1,234,567.89"},
		{0, "USD", "USD 0"},
		{999.5, "ars", "ARS 999.50"},
	}
	for _, tc := range cases {
		if got := formatMoneyValue(tc.amount, tc.currency); got != tc.want {
			t.Fatalf("formatMoneyValue(%v, %q) = %q, want %q", tc.amount, tc.currency, got, tc.want)
		}
	}
}

func TestDateFormatting(t *testing.T) {
	if got := formatDate("2026-05-20"); got != "20/05/2026" {
		t.Fatalf("expected parsed date, got %q", got)
	}
	if got := formatDate("late May, flexible"); got != "late May, flexible" {
		t.Fatalf("expected unparsable date to pass through, got %q", got)
	}
}

func TestRequirementsDeduplicated(t *testing.T) {
	quote := baseQuote()
	quote.Flights = []domain.Flight{
		{Requirements: []string{"Passport", "Visa"}},
		{Requirements: []string{"visa", "Vaccination card"}},
	}
	got := collectRequirements(quote.Flights)
	want := []string{"Passport", "Visa", "Vaccination card"}
	if len(got) != len(want) {
		t.Fatalf("expected %v, got %v", want, got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("expected %v, got %v", want, got)
		}
	}
}

func TestGalleryLayout(t *testing.T) {
	images := []string{"a.jpg", "b.jpg", "c.jpg", "d.jpg", "e.jpg", "f.jpg", "g.jpg"}

	g := galleryView(images, "accommodation")
	if len(g.Images) != maxGalleryImages {
		t.Fatalf("expected gallery capped at %d, got %d", maxGalleryImages, len(g.Images))
	}
	if g.Class != "gallery-col" {
		t.Fatalf("expected single column for accommodations, got %q", g.Class)
	}

	if g := galleryView(images[:1], "activity"); g.Class != "gallery-grid-1" {
		t.Fatalf("expected 1-column grid, got %q", g.Class)
	}
	if g := galleryView(images[:2], "activity"); g.Class != "gallery-grid-2" {
		t.Fatalf("expected 2-column grid, got %q", g.Class)
	}
	if g := galleryView(images[:5], "activity"); g.Class != "gallery-grid-3" {
		t.Fatalf("expected 3-column grid, got %q", g.Class)
	}
}
