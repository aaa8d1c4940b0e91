package api

import (
	"encoding/json"
	"strconv"
	"strings"
	"time"

	"rural-assist/internal/models"
)

// flexFloat accepts numbers encoded either as JSON numbers or strings.
type flexFloat float64

func (f *flexFloat) UnmarshalJSON(b []byte) error {
	s := strings.Trim(string(b), `"`)
	if s == "" || s == "null" {
		*f = 0
		return nil
	}
	v, err := strconv.ParseFloat(strings.ReplaceAll(s, ",", ""), 64)
	if err != nil {
		return err
	}
	*f = flexFloat(v)
	return nil
}

type dataGovResponse[T any] struct {
	Records []T `json:"records"`
}

// --- ABDM ---

type abdmResponse struct {
	Facilities []abdmFacility `json:"facilities"`
}

type abdmFacility struct {
	Name      string     `json:"name"`
	Type      string     `json:"type"`
	Address   string     `json:"address"`
	District  string     `json:"district"`
	State     string     `json:"state"`
	Phone     string     `json:"phone"`
	Services  []string   `json:"services"`
	Latitude  *flexFloat `json:"latitude"`
	Longitude *flexFloat `json:"longitude"`
}

func (f abdmFacility) toModel(pincode string) models.HealthFacility {
	return models.HealthFacility{
		Name:      f.Name,
		Type:      f.Type,
		Address:   f.Address,
		Pincode:   pincode,
		District:  f.District,
		State:     f.State,
		Phone:     f.Phone,
		Services:  nonNil(f.Services),
		Latitude:  f.Latitude.ptr(),
		Longitude: f.Longitude.ptr(),
	}
}

func (f *flexFloat) ptr() *float64 {
	if f == nil {
		return nil
	}
	v := float64(*f)
	return &v
}

// --- data.gov.in ---

type facilityRecord struct {
	FacilityName  string `json:"facility_name"`
	FacilityType  string `json:"facility_type"`
	Address       string `json:"address"`
	Pincode       string `json:"pincode"`
	District      string `json:"district"`
	State         string `json:"state"`
	ContactNumber string `json:"contact_number"`
	Services      string `json:"services"`
}

func (r facilityRecord) toModel() models.HealthFacility {
	return models.HealthFacility{
		Name:     r.FacilityName,
		Type:     r.FacilityType,
		Address:  r.Address,
		Pincode:  r.Pincode,
		District: r.District,
		State:    r.State,
		Phone:    r.ContactNumber,
		Services: splitList(r.Services, ","),
	}
}

type priceRecord struct {
	Commodity string    `json:"commodity"`
	Variety   string    `json:"variety"`
	Market    string    `json:"market"`
	MandiID   string    `json:"mandi_id"`
	Price     flexFloat `json:"price"`
	Unit      string    `json:"unit"`
	Date      string    `json:"date"`
	District  string    `json:"district"`
	State     string    `json:"state"`
}

func (r priceRecord) toModel(commodity string, now time.Time) models.CommodityPrice {
	return models.CommodityPrice{
		Commodity:    or(r.Commodity, commodity),
		Variety:      or(r.Variety, "Common"),
		MarketName:   or(r.Market, "Unknown Market"),
		MandiID:      r.MandiID,
		PricePerUnit: float64(r.Price),
		Unit:         or(r.Unit, "kg"),
		Date:         parseDate(r.Date, now),
		District:     r.District,
		State:        r.State,
		Source:       "data.gov.in",
	}
}

type schemeRecord struct {
	SchemeName         string `json:"scheme_name"`
	Description        string `json:"description"`
	Eligibility        string `json:"eligibility"`
	Benefits           string `json:"benefits"`
	ApplicationProcess string `json:"application_process"`
	Documents          string `json:"documents"`
	Website            string `json:"website"`
	Helpline           string `json:"helpline"`
}

func (r schemeRecord) toModel(name string, now time.Time) *models.SchemeInfo {
	return &models.SchemeInfo{
		SchemeName:         or(r.SchemeName, name),
		Description:        r.Description,
		Eligibility:        splitList(r.Eligibility, ";"),
		Benefits:           splitList(r.Benefits, ";"),
		ApplicationProcess: splitList(r.ApplicationProcess, ";"),
		RequiredDocuments:  splitList(r.Documents, ";"),
		OfficialWebsite:    r.Website,
		Helpline:           r.Helpline,
		LastUpdated:        now,
	}
}

type pincodeRecord struct {
	PostOffice string `json:"post_office"`
	District   string `json:"district"`
	State      string `json:"state"`
	Region     string `json:"region"`
	Division   string `json:"division"`
	Circle     string `json:"circle"`
	Taluk      string `json:"taluk"`
}

func (r pincodeRecord) toModel(pincode string) *models.PincodeInfo {
	return &models.PincodeInfo{
		Pincode:    pincode,
		PostOffice: r.PostOffice,
		District:   r.District,
		State:      r.State,
		Region:     r.Region,
		Division:   r.Division,
		Circle:     r.Circle,
		Taluk:      r.Taluk,
		Villages:   []string{},
	}
}

// --- India Post ---

type postalResponse []struct {
	Status     string `json:"Status"`
	PostOffice []struct {
		Name     string `json:"Name"`
		District string `json:"District"`
		State    string `json:"State"`
		Region   string `json:"Region"`
		Division string `json:"Division"`
		Circle   string `json:"Circle"`
		Taluk    string `json:"Taluk"`
	} `json:"PostOffice"`
}

// toModel returns nil unless the first entry is a successful lookup.
func (p postalResponse) toModel(pincode string) *models.PincodeInfo {
	if len(p) == 0 || p[0].Status != "Success" || len(p[0].PostOffice) == 0 {
		return nil
	}
	offices := p[0].PostOffice
	first := offices[0]

	villages := make([]string, 0, len(offices))
	for _, o := range offices {
		villages = append(villages, o.Name)
	}

	return &models.PincodeInfo{
		Pincode:    pincode,
		PostOffice: first.Name,
		District:   first.District,
		State:      first.State,
		Region:     first.Region,
		Division:   first.Division,
		Circle:     first.Circle,
		Taluk:      first.Taluk,
		Villages:   villages,
	}
}

// UnmarshalJSON tolerates the service replying with an object instead of a list.
func (p *postalResponse) UnmarshalJSON(b []byte) error {
	type plain postalResponse
	if len(b) > 0 && b[0] != '[' {
		*p = nil
		return nil
	}
	return json.Unmarshal(b, (*plain)(p))
}

func splitList(s, sep string) []string {
	out := []string{}
	for _, part := range strings.Split(s, sep) {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

func parseDate(s string, def time.Time) time.Time {
	for _, layout := range []string{time.RFC3339, "2006-01-02T15:04:05", "2006-01-02", "02/01/2006"} {
		if t, err := time.Parse(layout, s); err == nil {
			return t
		}
	}
	return def
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}

func or(v, def string) string {
	if strings.TrimSpace(v) == "" {
		return def
	}
	return v
}
