// internal/models/source.go
package models

import (
	"encoding/json"
	"fmt"
)

// Source tags which provider produced a DataSourceResult. It drives
// disclaimer insertion downstream and must be carried end-to-end.
type Source string

const (
	SourceAPI           Source = "api"
	SourceScraping      Source = "scraping"
	SourceMock          Source = "mock"
	SourceValidation    Source = "validation"
	SourceFallback      Source = "fallback"
	SourceKnowledgeBase Source = "knowledge_base"
	SourceError         Source = "error"
)

// ResultType names the kind of record carried in DataSourceResult.Data.
type ResultType string

const (
	ResultMLAInfo     ResultType = "mla_info"
	ResultMPInfo      ResultType = "mp_info"
	ResultSchemeInfo  ResultType = "scheme_info"
	ResultPHCInfo     ResultType = "phc_info"
	ResultPriceInfo   ResultType = "price_info"
	ResultPincodeInfo ResultType = "pincode_info"
	ResultFAQ         ResultType = "faq"
	ResultFallback    ResultType = "fallback"
	ResultError       ResultType = "error"
)

// DataSourceResult is what a resolution produced and who produced it.
//
// Data holds one of:
//   - *PoliticalRepresentative (mla_info, mp_info)
//   - *SchemeInfo (scheme_info)
//   - []HealthFacility (phc_info)
//   - []CommodityPrice (price_info)
//   - *PincodeInfo (pincode_info)
//   - *FAQAnswer (faq)
//   - *FallbackMessage (fallback)
//
// A nil Data is only valid with SourceValidation or SourceFallback.
type DataSourceResult struct {
	Type   ResultType  `json:"type"`
	Data   interface{} `json:"data"`
	Source Source      `json:"source"`
}

// HasData reports whether Data carries a usable record.
func (r DataSourceResult) HasData() bool {
	switch d := r.Data.(type) {
	case nil:
		return false
	case []HealthFacility:
		return len(d) > 0
	case []CommodityPrice:
		return len(d) > 0
	case *PoliticalRepresentative:
		return d != nil
	case *SchemeInfo:
		return d != nil
	case *PincodeInfo:
		return d != nil
	case *FAQAnswer:
		return d != nil
	case *FallbackMessage:
		return d != nil
	default:
		return true
	}
}

// UnmarshalJSON restores the typed Data payload from its Type tag.
func (r *DataSourceResult) UnmarshalJSON(b []byte) error {
	var raw struct {
		Type   ResultType      `json:"type"`
		Data   json.RawMessage `json:"data"`
		Source Source          `json:"source"`
	}
	if err := json.Unmarshal(b, &raw); err != nil {
		return err
	}
	r.Type = raw.Type
	r.Source = raw.Source
	r.Data = nil

	if len(raw.Data) == 0 || string(raw.Data) == "null" {
		return nil
	}

	data, err := DecodeData(raw.Type, raw.Data)
	if err != nil {
		return err
	}
	r.Data = data
	return nil
}

// DecodeData decodes a JSON payload into the record type registered for t.
func DecodeData(t ResultType, raw []byte) (interface{}, error) {
	switch t {
	case ResultMLAInfo, ResultMPInfo:
		var v PoliticalRepresentative
		return &v, json.Unmarshal(raw, &v)
	case ResultSchemeInfo:
		var v SchemeInfo
		return &v, json.Unmarshal(raw, &v)
	case ResultPHCInfo:
		var v []HealthFacility
		err := json.Unmarshal(raw, &v)
		return v, err
	case ResultPriceInfo:
		var v []CommodityPrice
		err := json.Unmarshal(raw, &v)
		return v, err
	case ResultPincodeInfo:
		var v PincodeInfo
		return &v, json.Unmarshal(raw, &v)
	case ResultFAQ:
		var v FAQAnswer
		return &v, json.Unmarshal(raw, &v)
	case ResultFallback:
		var v FallbackMessage
		return &v, json.Unmarshal(raw, &v)
	default:
		return nil, fmt.Errorf("unknown result type %q", t)
	}
}
