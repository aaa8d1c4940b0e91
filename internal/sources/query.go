package sources

import (
	"fmt"
	"regexp"
	"strings"

	"rural-assist/internal/models"
)

var pincodeRe = regexp.MustCompile(`^[0-9]{6}$`)

// Location is the caller's place, merged from request context and question text.
type Location struct {
	Pincode   string   `json:"pincode,omitempty"`
	Village   string   `json:"village,omitempty"`
	District  string   `json:"district,omitempty"`
	State     string   `json:"state,omitempty"`
	Latitude  *float64 `json:"latitude,omitempty"`
	Longitude *float64 `json:"longitude,omitempty"`
}

// Query is one lookup against a data domain.
type Query struct {
	Domain     models.ResultType `json:"domain"`
	Location   Location          `json:"location"`
	SchemeName string            `json:"scheme_name,omitempty"`
	Commodity  string            `json:"commodity,omitempty"`
	Question   string            `json:"question,omitempty"`
}

// ValidPincode reports whether p is exactly six ASCII digits.
func ValidPincode(p string) bool {
	return pincodeRe.MatchString(p)
}

// Key identifies the query's data for caching. Queries that resolve to the
// same record share a key.
func (q Query) Key() string {
	norm := func(s string) string {
		return strings.ReplaceAll(strings.ToLower(strings.TrimSpace(s)), " ", "_")
	}

	switch q.Domain {
	case models.ResultSchemeInfo:
		return norm(q.SchemeName)
	case models.ResultPriceInfo:
		return fmt.Sprintf("%s:%s", norm(q.Commodity), norm(q.Location.State))
	case models.ResultPincodeInfo:
		return q.Location.Pincode
	case models.ResultPHCInfo:
		return fmt.Sprintf("%s:%s:%s", q.Location.Pincode, norm(q.Location.District), norm(q.Location.State))
	case models.ResultMLAInfo, models.ResultMPInfo:
		return norm(q.Location.District)
	default:
		return norm(q.Question)
	}
}

// ValidQuery reports whether the chain would attempt any tier for q.
func ValidQuery(q Query) bool {
	return q.Domain != models.ResultPincodeInfo || ValidPincode(q.Location.Pincode)
}
