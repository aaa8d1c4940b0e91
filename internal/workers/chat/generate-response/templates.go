// internal/workers/chat/generate-response/templates.go
package generateresponse

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"regexp"
	"sort"
	"strings"

	"rural-assist/internal/common/errors"
	"rural-assist/internal/common/validation"
	"rural-assist/internal/models"
)

//go:embed templates.json
var defaultTemplates []byte

// Template keys.
const (
	KeyMLAInfo          = "mla_info"
	KeyMPInfo           = "mp_info"
	KeySchemeInfo       = "scheme_info"
	KeyHealthFacilities = "health_facilities"
	KeyNearestFacility  = "nearest_facility"
	KeyCommodityPrices  = "commodity_prices"
	KeyPincodeInfo      = "pincode_info"
	KeyGeneralFAQ       = "general_faq"
	KeyFallback         = "fallback"
)

// Suggestion categories.
const (
	SuggestAfterMLA     = "after_mla_info"
	SuggestAfterScheme  = "after_scheme_info"
	SuggestAfterHealth  = "after_health_info"
	SuggestAfterPincode = "after_pincode_info"
	SuggestCommodity    = "commodity"
	SuggestGeneral      = "general"
	SuggestError        = "error"
)

const (
	msgMockDisclaimer = "mock_disclaimer"
	msgTechnicalError = "technical_error"
)

// templateFields is the set of placeholders each formatter fills.
var templateFields = map[string][]string{
	KeyMLAInfo:          {"name", "constituency", "contact", "address", "party"},
	KeyMPInfo:           {"name", "constituency", "contact", "address", "party"},
	KeySchemeInfo:       {"scheme_name", "description", "benefits", "eligibility", "documents", "process"},
	KeyHealthFacilities: {"count", "facilities", "nearest"},
	KeyNearestFacility:  {"name", "phone"},
	KeyCommodityPrices:  {"commodity", "prices", "date"},
	KeyPincodeInfo:      {"pincode", "district", "state", "post_office", "region"},
	KeyGeneralFAQ:       {"answer", "website"},
	KeyFallback:         {},
}

var (
	requiredSuggestions = []string{SuggestAfterMLA, SuggestAfterScheme, SuggestAfterHealth, SuggestAfterPincode, SuggestCommodity, SuggestGeneral, SuggestError}
	requiredMessages    = []string{msgMockDisclaimer, msgTechnicalError}
)

var placeholderRe = regexp.MustCompile(`\{([a-z_]+)\}`)

const tableSchema = `{
	"type": "object",
	"required": ["languages"],
	"properties": {
		"version": {"type": "string"},
		"languages": {
			"type": "object",
			"required": ["english"],
			"minProperties": 1,
			"additionalProperties": {
				"type": "object",
				"required": ["templates", "messages"],
				"properties": {
					"templates": {
						"type": "object",
						"additionalProperties": {
							"type": "array",
							"minItems": 1,
							"items": {"type": "string", "minLength": 1}
						}
					},
					"not_found": {
						"type": "object",
						"additionalProperties": {"type": "string", "minLength": 1}
					},
					"suggestions": {
						"type": "object",
						"additionalProperties": {
							"type": "array",
							"items": {"type": "string", "minLength": 1}
						}
					},
					"messages": {
						"type": "object",
						"additionalProperties": {"type": "string", "minLength": 1}
					}
				}
			}
		}
	}
}`

type languageTable struct {
	Templates   map[string][]string `json:"templates"`
	NotFound    map[string]string   `json:"not_found"`
	Suggestions map[string][]string `json:"suggestions"`
	Messages    map[string]string   `json:"messages"`
}

type tableDocument struct {
	Version   string                            `json:"version"`
	Languages map[models.Language]languageTable `json:"languages"`
}

// TemplateTable holds phrasing per template key and language. It is
// read-only once loaded. Lookups for a language without an entry fall back
// to english.
type TemplateTable struct {
	version   string
	languages map[models.Language]languageTable
}

// DefaultTemplateTable loads the embedded table.
func DefaultTemplateTable() (*TemplateTable, error) {
	return LoadTemplateTable(defaultTemplates)
}

// LoadTemplateTable parses and validates a table document. The english
// entry must be complete and every placeholder must be one the formatter
// for its key supplies.
func LoadTemplateTable(raw []byte) (*TemplateTable, error) {
	var generic interface{}
	if err := json.Unmarshal(raw, &generic); err != nil {
		return nil, errors.NewTemplateValidationFailedError(fmt.Sprintf("decode: %v", err))
	}

	schema, err := validation.Compile(tableSchema)
	if err != nil {
		return nil, errors.NewInternalError(err)
	}
	if res := validation.Validate(schema, generic); !res.Valid {
		return nil, errors.NewTemplateValidationFailedError(strings.Join(res.GetErrorMessages(), "; "))
	}

	var doc tableDocument
	if err := json.Unmarshal(raw, &doc); err != nil {
		return nil, errors.NewTemplateValidationFailedError(fmt.Sprintf("decode: %v", err))
	}

	if err := checkTable(doc); err != nil {
		return nil, errors.NewTemplateValidationFailedError(err.Error())
	}
	return &TemplateTable{version: doc.Version, languages: doc.Languages}, nil
}

func checkTable(doc tableDocument) error {
	var problems []string

	for lang, lt := range doc.Languages {
		for key, templates := range lt.Templates {
			fields, ok := templateFields[key]
			if !ok {
				problems = append(problems, fmt.Sprintf("%s: unknown template key %q", lang, key))
				continue
			}
			for i, tmpl := range templates {
				for _, name := range Placeholders(tmpl) {
					if !contains(fields, name) {
						problems = append(problems, fmt.Sprintf("%s.%s[%d]: unknown placeholder {%s}", lang, key, i, name))
					}
				}
			}
		}
		for key := range lt.NotFound {
			if _, ok := templateFields[key]; !ok {
				problems = append(problems, fmt.Sprintf("%s: unknown not_found key %q", lang, key))
			}
		}
	}

	english := doc.Languages[models.LanguageEnglish]
	for key := range templateFields {
		if len(english.Templates[key]) == 0 {
			problems = append(problems, fmt.Sprintf("english: missing templates for %q", key))
		}
		if key != KeyNearestFacility && english.NotFound[key] == "" {
			problems = append(problems, fmt.Sprintf("english: missing not_found for %q", key))
		}
	}
	for _, cat := range requiredSuggestions {
		if len(english.Suggestions[cat]) == 0 {
			problems = append(problems, fmt.Sprintf("english: missing suggestions for %q", cat))
		}
	}
	for _, name := range requiredMessages {
		if english.Messages[name] == "" {
			problems = append(problems, fmt.Sprintf("english: missing message %q", name))
		}
	}

	if len(problems) == 0 {
		return nil
	}
	sort.Strings(problems)
	return fmt.Errorf("%s", strings.Join(problems, "; "))
}

// Placeholders lists the {name} placeholders in a template, in order.
func Placeholders(tmpl string) []string {
	matches := placeholderRe.FindAllStringSubmatch(tmpl, -1)
	out := make([]string, 0, len(matches))
	for _, m := range matches {
		out = append(out, m[1])
	}
	return out
}

// Render substitutes placeholders from values. Placeholders without a value
// are left as written.
func Render(tmpl string, values map[string]string) string {
	return placeholderRe.ReplaceAllStringFunc(tmpl, func(m string) string {
		if v, ok := values[m[1:len(m)-1]]; ok {
			return v
		}
		return m
	})
}

func (t *TemplateTable) Version() string { return t.version }

// Templates returns the phrasings for key, falling back to english.
func (t *TemplateTable) Templates(key string, lang models.Language) []string {
	if lt, ok := t.languages[lang]; ok && len(lt.Templates[key]) > 0 {
		return lt.Templates[key]
	}
	return t.languages[models.LanguageEnglish].Templates[key]
}

func (t *TemplateTable) NotFound(key string, lang models.Language) string {
	if lt, ok := t.languages[lang]; ok && lt.NotFound[key] != "" {
		return lt.NotFound[key]
	}
	return t.languages[models.LanguageEnglish].NotFound[key]
}

// Suggestions returns a copy of the category's prompts.
func (t *TemplateTable) Suggestions(category string, lang models.Language) []string {
	list := t.languages[models.LanguageEnglish].Suggestions[category]
	if lt, ok := t.languages[lang]; ok && len(lt.Suggestions[category]) > 0 {
		list = lt.Suggestions[category]
	}
	return append([]string(nil), list...)
}

func (t *TemplateTable) message(name string, lang models.Language) string {
	if lt, ok := t.languages[lang]; ok && lt.Messages[name] != "" {
		return lt.Messages[name]
	}
	return t.languages[models.LanguageEnglish].Messages[name]
}

// MockDisclaimer is appended to replies built from sample data.
func (t *TemplateTable) MockDisclaimer(lang models.Language) string {
	return t.message(msgMockDisclaimer, lang)
}

func (t *TemplateTable) TechnicalError(lang models.Language) string {
	return t.message(msgTechnicalError, lang)
}

// Languages lists the languages that have an entry, english first.
func (t *TemplateTable) Languages() []models.Language {
	out := make([]models.Language, 0, len(t.languages))
	for _, l := range models.SupportedLanguages {
		if _, ok := t.languages[l]; ok {
			out = append(out, l)
		}
	}
	return out
}

// Counts reports how many phrasings each language has per key.
func (t *TemplateTable) Counts() map[models.Language]map[string]int {
	out := make(map[models.Language]map[string]int, len(t.languages))
	for lang, lt := range t.languages {
		counts := make(map[string]int, len(lt.Templates))
		for key, templates := range lt.Templates {
			counts[key] = len(templates)
		}
		out[lang] = counts
	}
	return out
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}
