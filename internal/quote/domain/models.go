package domain

import (
	"strings"
	"time"

	"github.com/bwmarrin/snowflake"
	"gorm.io/datatypes"
)

type QuoteStatus string

const (
	QuoteStatusDraft      QuoteStatus = "draft"
	QuoteStatusDocumented QuoteStatus = "documented"
)

// Quote is the persisted metadata record for a travel quote. The structured
// line-item data and the presentation snapshot arrive from the form layer
// and are stored as JSON; the pipeline only ever consumes an immutable
// snapshot per render.
type Quote struct {
	ID           snowflake.ID   `gorm:"primaryKey"`
	Status       QuoteStatus    `gorm:"type:text;not null;default:'draft'"`
	DocumentURL  *string        `gorm:"type:text"`
	Data         datatypes.JSON `gorm:"type:jsonb"`
	Presentation datatypes.JSON `gorm:"type:jsonb"`
	CreatedAt    time.Time      `gorm:"not null;default:CURRENT_TIMESTAMP"`
	UpdatedAt    time.Time      `gorm:"not null;default:CURRENT_TIMESTAMP"`
}

func (Quote) TableName() string { return "quotes" }

// QuoteData is the structured input describing a travel quote.
type QuoteData struct {
	Destination    Destination `json:"destination"`
	Passengers     Passengers  `json:"passengers"`
	GlobalCurrency string      `json:"globalCurrency"`

	Flights        []Flight        `json:"flights"`
	Accommodations []Accommodation `json:"accommodations"`
	Transfers      []Transfer      `json:"transfers"`
	Activities     []Activity      `json:"activities"`
	Cruises        []Cruise        `json:"cruises"`

	Observations string `json:"observations"`
	ShowTotal    bool   `json:"showTotal"`
}

type Destination struct {
	Country string   `json:"country"`
	City    string   `json:"city"`
	Year    int      `json:"year"`
	Months  []string `json:"months"`
}

type Passengers struct {
	Adults  int `json:"adults"`
	Minors  int `json:"minors"`
	Infants int `json:"infants"`
}

// Price carries the shared pricing fields of every line item. Amount is nil
// when no price was entered; an explicit zero is a deliberate "included at
// no charge" value and renders differently.
type Price struct {
	Amount            *float64 `json:"amount"`
	ShowPrice         bool     `json:"showPrice"`
	UseCustomCurrency bool     `json:"useCustomCurrency"`
	Currency          string   `json:"currency"`
	Notes             string   `json:"notes"`
}

// EffectiveCurrency resolves the item currency against the quote's global
// currency. Inherited currency is never stored back on the item.
func (p Price) EffectiveCurrency(globalCurrency string) string {
	if p.UseCustomCurrency && strings.TrimSpace(p.Currency) != "" {
		return strings.ToUpper(strings.TrimSpace(p.Currency))
	}
	return strings.ToUpper(strings.TrimSpace(globalCurrency))
}

type Flight struct {
	Price
	Airline       string   `json:"airline"`
	Origin        string   `json:"origin"`
	Destination   string   `json:"destination"`
	DepartureDate string   `json:"departureDate"`
	ReturnDate    string   `json:"returnDate"`
	Baggage       string   `json:"baggage"`
	Requirements  []string `json:"requirements"`
	Images        []string `json:"images"`
}

type Accommodation struct {
	Price
	Name     string   `json:"name"`
	City     string   `json:"city"`
	CheckIn  string   `json:"checkIn"`
	CheckOut string   `json:"checkOut"`
	RoomType string   `json:"roomType"`
	MealPlan string   `json:"mealPlan"`
	Images   []string `json:"images"`
}

type Transfer struct {
	Price
	Mode   string   `json:"mode"`
	From   string   `json:"from"`
	To     string   `json:"to"`
	Date   string   `json:"date"`
	Images []string `json:"images"`
}

type Activity struct {
	Price
	Name     string   `json:"name"`
	Date     string   `json:"date"`
	Duration string   `json:"duration"`
	Images   []string `json:"images"`
}

type Cruise struct {
	Price
	Line          string   `json:"line"`
	Ship          string   `json:"ship"`
	DeparturePort string   `json:"departurePort"`
	DepartureDate string   `json:"departureDate"`
	Duration      string   `json:"duration"`
	Cabin         string   `json:"cabin"`
	Images        []string `json:"images"`
}

// PresentationConfig is the branding snapshot applied during compilation.
type PresentationConfig struct {
	PrimaryColor   string `json:"primaryColor"`
	SecondaryColor string `json:"secondaryColor"`
	FontFamily     string `json:"fontFamily"`
	LogoData       string `json:"logoData"`

	AgencyName    string `json:"agencyName"`
	AgencyEmail   string `json:"agencyEmail"`
	AgencyPhone   string `json:"agencyPhone"`
	AgencyAddress string `json:"agencyAddress"`

	ValidityNotice string `json:"validityNotice"`
}
