package types

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
)

// VillageSettings is the typed shape of the per-village settings blob.
// Stored as jsonb so new knobs can ship without a migration, but decoded
// through this struct so shape drift fails loudly.
type VillageSettings struct {
	PrimaryColor   string  `json:"primary_color,omitempty"`
	SecondaryColor string  `json:"secondary_color,omitempty"`
	LogoPath       string  `json:"logo_path,omitempty"`
	HeroTagline    string  `json:"hero_tagline,omitempty"`
	ContactEmail   string  `json:"contact_email,omitempty"`
	ContactPhone   string  `json:"contact_phone,omitempty"`
	WhatsappNumber string  `json:"whatsapp_number,omitempty"`
	Social         *Social `json:"social,omitempty"`
	ShowStunting   bool    `json:"show_stunting,omitempty"`
}

// Value implements driver.Valuer.
func (s VillageSettings) Value() (driver.Value, error) {
	return json.Marshal(s)
}

// Scan implements sql.Scanner.
func (s *VillageSettings) Scan(src any) error {
	return scanJSON(src, s)
}

// Social groups the external profile URLs shown on village and SME pages.
type Social struct {
	Instagram string `json:"instagram,omitempty"`
	Facebook  string `json:"facebook,omitempty"`
	TikTok    string `json:"tiktok,omitempty"`
	YouTube   string `json:"youtube,omitempty"`
	Website   string `json:"website,omitempty"`
}

// Value implements driver.Valuer.
func (s Social) Value() (driver.Value, error) {
	return json.Marshal(s)
}

// Scan implements sql.Scanner.
func (s *Social) Scan(src any) error {
	return scanJSON(src, s)
}

// DayHours describes one day's opening window; a nil entry means closed.
type DayHours struct {
	Open  string `json:"open"`
	Close string `json:"close"`
}

// BusinessHours is the typed weekly schedule attached to an SME.
type BusinessHours struct {
	Monday    *DayHours `json:"monday,omitempty"`
	Tuesday   *DayHours `json:"tuesday,omitempty"`
	Wednesday *DayHours `json:"wednesday,omitempty"`
	Thursday  *DayHours `json:"thursday,omitempty"`
	Friday    *DayHours `json:"friday,omitempty"`
	Saturday  *DayHours `json:"saturday,omitempty"`
	Sunday    *DayHours `json:"sunday,omitempty"`
}

// Value implements driver.Valuer.
func (h BusinessHours) Value() (driver.Value, error) {
	return json.Marshal(h)
}

// Scan implements sql.Scanner.
func (h *BusinessHours) Scan(src any) error {
	return scanJSON(src, h)
}

// PlaceFields is the typed shape of the per-place custom fields blob.
type PlaceFields struct {
	TicketPrice  string `json:"ticket_price,omitempty"`
	OpeningHours string `json:"opening_hours,omitempty"`
	BestSeason   string `json:"best_season,omitempty"`
	Difficulty   string `json:"difficulty,omitempty"`
	ContactPhone string `json:"contact_phone,omitempty"`
}

// Value implements driver.Valuer.
func (f PlaceFields) Value() (driver.Value, error) {
	return json.Marshal(f)
}

// Scan implements sql.Scanner.
func (f *PlaceFields) Scan(src any) error {
	return scanJSON(src, f)
}

// PlaybackSettings holds the player configuration attached to a media asset.
type PlaybackSettings struct {
	Autoplay bool    `json:"autoplay"`
	Loop     bool    `json:"loop"`
	Muted    bool    `json:"muted"`
	Volume   float64 `json:"volume"`
}

// Value implements driver.Valuer.
func (p PlaybackSettings) Value() (driver.Value, error) {
	return json.Marshal(p)
}

// Scan implements sql.Scanner.
func (p *PlaybackSettings) Scan(src any) error {
	return scanJSON(src, p)
}

func scanJSON(src, dest any) error {
	switch value := src.(type) {
	case nil:
		return nil
	case []byte:
		if len(value) == 0 {
			return nil
		}
		return json.Unmarshal(value, dest)
	case string:
		if value == "" {
			return nil
		}
		return json.Unmarshal([]byte(value), dest)
	default:
		return fmt.Errorf("unsupported jsonb source type %T", src)
	}
}
