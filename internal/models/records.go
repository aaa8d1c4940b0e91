// internal/models/records.go
package models

import "time"

// HealthFacility is a hospital, PHC, CHC or clinic.
type HealthFacility struct {
	Name       string   `json:"name"`
	Type       string   `json:"type"`
	Address    string   `json:"address"`
	Pincode    string   `json:"pincode"`
	District   string   `json:"district"`
	State      string   `json:"state"`
	Phone      string   `json:"phone,omitempty"`
	Services   []string `json:"services"`
	DistanceKm *float64 `json:"distance_km,omitempty"`
	Latitude   *float64 `json:"latitude,omitempty"`
	Longitude  *float64 `json:"longitude,omitempty"`
}

// CommodityPrice is a single mandi quote.
type CommodityPrice struct {
	Commodity    string    `json:"commodity"`
	Variety      string    `json:"variety"`
	MarketName   string    `json:"market_name"`
	MandiID      string    `json:"mandi_id,omitempty"`
	PricePerUnit float64   `json:"price_per_unit"`
	Unit         string    `json:"unit"`
	Date         time.Time `json:"date"`
	District     string    `json:"district"`
	State        string    `json:"state"`
	Source       string    `json:"source"`
}

type SchemeInfo struct {
	SchemeName         string    `json:"scheme_name"`
	Description        string    `json:"description"`
	Eligibility        []string  `json:"eligibility"`
	Benefits           []string  `json:"benefits"`
	ApplicationProcess []string  `json:"application_process"`
	RequiredDocuments  []string  `json:"required_documents"`
	OfficialWebsite    string    `json:"official_website,omitempty"`
	Helpline           string    `json:"helpline,omitempty"`
	LastUpdated        time.Time `json:"last_updated"`
}

// PoliticalRepresentative is an MLA or MP.
type PoliticalRepresentative struct {
	Name          string            `json:"name"`
	Position      string            `json:"position"`
	Constituency  string            `json:"constituency"`
	Party         string            `json:"party,omitempty"`
	ContactInfo   map[string]string `json:"contact_info"`
	OfficeAddress string            `json:"office_address,omitempty"`
	Achievements  []string          `json:"achievements"`
	Source        string            `json:"source"`
}

type PincodeInfo struct {
	Pincode    string   `json:"pincode"`
	PostOffice string   `json:"post_office"`
	District   string   `json:"district"`
	State      string   `json:"state"`
	Region     string   `json:"region"`
	Division   string   `json:"division"`
	Circle     string   `json:"circle"`
	Taluk      string   `json:"taluk,omitempty"`
	Villages   []string `json:"villages"`
}

// FAQAnswer is a knowledge-base answer to a general question.
type FAQAnswer struct {
	Question string `json:"question,omitempty"`
	Answer   string `json:"answer"`
	Category string `json:"category"`
	Origin   string `json:"origin"`
}

// FallbackMessage is the canned reply used when no handler applies.
type FallbackMessage struct {
	Message     string   `json:"message"`
	Suggestions []string `json:"suggestions"`
}

// Float64Ptr is a helper for optional numeric fields.
func Float64Ptr(v float64) *float64 {
	return &v
}
