// internal/models/intent.go
package models

// IntentName is drawn from a fixed closed set.
type IntentName string

const (
	IntentSurveyMLA      IntentName = "survey_mla_name"
	IntentSurveyMP       IntentName = "survey_mp_name"
	IntentOpinionMLA     IntentName = "opinion_mla"
	IntentOpinionMP      IntentName = "opinion_mp"
	IntentSchemeInfo     IntentName = "ask_scheme_info"
	IntentPHCLocation    IntentName = "ask_phc_location"
	IntentCommodityPrice IntentName = "ask_commodity_price"
	IntentPincodeHelp    IntentName = "ask_pincode_help"
	IntentGeneralFAQ     IntentName = "general_faq"
	IntentFallback       IntentName = "fallback_handoff"
)

// Entity keys produced by extraction or merged from context.
const (
	EntityPincode            = "pincode"
	EntityLocation           = "location"
	EntityCommodityName      = "commodity_name"
	EntitySchemeName         = "scheme_name"
	EntityRepresentativeName = "representative_name"
	EntityFacilityType       = "facility_type"
	EntityCommodity          = "commodity"
	EntityScheme             = "scheme"
	EntityPhone              = "phone"
	EntityVillage            = "village"
	EntityDistrict           = "district"
	EntityState              = "state"
	EntityLatitude           = "latitude"
	EntityLongitude          = "longitude"
)

// Entities holds extracted values keyed by entity type. An absent key means
// the value was not determined.
type Entities map[string]interface{}

// String returns the entity as a non-empty string, if present.
func (e Entities) String(key string) (string, bool) {
	v, ok := e[key]
	if !ok || v == nil {
		return "", false
	}
	s, ok := v.(string)
	if !ok || s == "" {
		return "", false
	}
	return s, true
}

// StringOr returns the entity value or def.
func (e Entities) StringOr(key, def string) string {
	if s, ok := e.String(key); ok {
		return s
	}
	return def
}

// Intent is the classified purpose of a question. It is not mutated after
// the classifier returns it.
type Intent struct {
	Name       IntentName `json:"name"`
	Confidence float64    `json:"confidence"`
	Entities   Entities   `json:"entities"`
}

// IntentSuggestion is a ranked candidate intent for ambiguous questions.
type IntentSuggestion struct {
	Intent      IntentName `json:"intent"`
	Score       float64    `json:"score"`
	Description string     `json:"description"`
}
