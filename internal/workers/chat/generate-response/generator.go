// internal/workers/chat/generate-response/generator.go
package generateresponse

import (
	"fmt"
	"math/rand"
	"strconv"
	"strings"
	"sync"
	"time"

	"rural-assist/internal/common/logger"
	"rural-assist/internal/models"
)

const (
	unknownValue      = "Unknown"
	notAvailableValue = "Not available"
	emergencyNumber   = "108"
	faqWebsite        = "india.gov.in"
	defaultProcess    = "Visit local office"
)

// Rand picks a template index. Implementations must be safe for
// concurrent use.
type Rand interface {
	Intn(n int) int
}

type lockedRand struct {
	mu  sync.Mutex
	src *rand.Rand
}

// NewRand returns a seeded Rand. A zero seed seeds from the clock.
func NewRand(seed int64) Rand {
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return &lockedRand{src: rand.New(rand.NewSource(seed))}
}

func (r *lockedRand) Intn(n int) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.src.Intn(n)
}

// Generator assembles localized replies from resolved data.
type Generator struct {
	table  *TemplateTable
	rnd    Rand
	now    func() time.Time
	logger logger.Logger
}

func NewGenerator(table *TemplateTable, rnd Rand, log logger.Logger) *Generator {
	return &Generator{
		table:  table,
		rnd:    rnd,
		now:    time.Now,
		logger: log.WithFields(map[string]interface{}{"component": "response-generator"}),
	}
}

// Table exposes the loaded templates.
func (g *Generator) Table() *TemplateTable {
	return g.table
}

// TemplateKey maps an intent to the template key of its formatter.
func TemplateKey(intent models.IntentName) string {
	switch intent {
	case models.IntentSurveyMLA, models.IntentOpinionMLA:
		return KeyMLAInfo
	case models.IntentSurveyMP, models.IntentOpinionMP:
		return KeyMPInfo
	case models.IntentSchemeInfo:
		return KeySchemeInfo
	case models.IntentPHCLocation:
		return KeyHealthFacilities
	case models.IntentCommodityPrice:
		return KeyCommodityPrices
	case models.IntentPincodeHelp:
		return KeyPincodeInfo
	case models.IntentGeneralFAQ:
		return KeyGeneralFAQ
	default:
		return KeyFallback
	}
}

// Generate never fails. Internal faults produce the technical-difficulties
// reply with the error source.
func (g *Generator) Generate(intent models.Intent, result models.DataSourceResult, lang models.Language, reqCtx map[string]interface{}) (resp models.Response) {
	lang = models.NormalizeLanguage(string(lang))

	defer func() {
		if r := recover(); r != nil {
			g.logger.Error("response generation panicked", map[string]interface{}{
				"intent": intent.Name,
				"panic":  fmt.Sprint(r),
			})
			resp = g.ErrorResponse(lang)
		}
	}()

	key := TemplateKey(intent.Name)
	var ok bool
	switch key {
	case KeyMLAInfo:
		resp, ok = g.representative(key, "MLA", result, lang)
	case KeyMPInfo:
		resp, ok = g.representative(key, "MP", result, lang)
	case KeySchemeInfo:
		resp, ok = g.scheme(result, lang)
	case KeyHealthFacilities:
		resp, ok = g.health(result, lang)
	case KeyCommodityPrices:
		resp, ok = g.prices(result, lang)
	case KeyPincodeInfo:
		resp, ok = g.pincode(result, lang)
	case KeyGeneralFAQ:
		resp, ok = g.faq(result, lang)
	default:
		resp, ok = g.fallback(result, lang), true
	}
	if !ok {
		resp = g.notFound(key, result, lang)
	}

	if resp.Source == models.SourceMock {
		resp.Message += "\n\n" + g.table.MockDisclaimer(lang)
	}
	return resp
}

// ErrorResponse is the reply used when assembly fails.
func (g *Generator) ErrorResponse(lang models.Language) models.Response {
	return models.Response{
		Message:     g.table.TechnicalError(lang),
		Source:      models.SourceError,
		Suggestions: g.table.Suggestions(SuggestError, lang),
		Metadata:    map[string]interface{}{"error": true},
	}
}

func (g *Generator) pick(key string, lang models.Language) string {
	templates := g.table.Templates(key, lang)
	if len(templates) == 0 {
		panic(fmt.Sprintf("no templates for %q", key))
	}
	if len(templates) == 1 {
		return templates[0]
	}
	return templates[g.rnd.Intn(len(templates))]
}

func (g *Generator) notFound(key string, result models.DataSourceResult, lang models.Language) models.Response {
	source := models.SourceFallback
	if result.Source == models.SourceValidation {
		source = models.SourceValidation
	}
	meta := map[string]interface{}{}
	if key == KeyHealthFacilities {
		meta["emergency_number"] = emergencyNumber
	}
	return models.Response{
		Message:     g.table.NotFound(key, lang),
		Source:      source,
		Suggestions: g.table.Suggestions(SuggestGeneral, lang),
		Metadata:    meta,
	}
}

func (g *Generator) representative(key, position string, result models.DataSourceResult, lang models.Language) (models.Response, bool) {
	rep, ok := result.Data.(*models.PoliticalRepresentative)
	if !ok || rep == nil {
		return models.Response{}, false
	}

	msg := Render(g.pick(key, lang), map[string]string{
		"name":         orDefault(rep.Name, unknownValue),
		"constituency": orDefault(rep.Constituency, unknownValue),
		"contact":      orDefault(rep.ContactInfo["phone"], notAvailableValue),
		"address":      orDefault(rep.OfficeAddress, notAvailableValue),
		"party":        orDefault(rep.Party, unknownValue),
	})

	return models.Response{
		Message:     msg,
		Source:      result.Source,
		Suggestions: g.table.Suggestions(SuggestAfterMLA, lang),
		Metadata: map[string]interface{}{
			"representative_type": position,
			"representative_name": rep.Name,
			"constituency":        rep.Constituency,
			"party":               rep.Party,
		},
	}, true
}

func (g *Generator) scheme(result models.DataSourceResult, lang models.Language) (models.Response, bool) {
	s, ok := result.Data.(*models.SchemeInfo)
	if !ok || s == nil {
		return models.Response{}, false
	}

	process := defaultProcess
	if len(s.ApplicationProcess) > 0 && s.ApplicationProcess[0] != "" {
		process = s.ApplicationProcess[0]
	}

	msg := Render(g.pick(KeySchemeInfo, lang), map[string]string{
		"scheme_name": orDefault(s.SchemeName, "Government Scheme"),
		"description": orDefault(s.Description, notAvailableValue),
		"benefits":    joinFirst(s.Benefits, 3),
		"eligibility": joinFirst(s.Eligibility, 2),
		"documents":   joinFirst(s.RequiredDocuments, 3),
		"process":     process,
	})

	return models.Response{
		Message:     msg,
		Source:      result.Source,
		Suggestions: g.table.Suggestions(SuggestAfterScheme, lang),
		Metadata: map[string]interface{}{
			"scheme_name":      s.SchemeName,
			"official_website": s.OfficialWebsite,
			"helpline":         s.Helpline,
		},
	}, true
}

func (g *Generator) health(result models.DataSourceResult, lang models.Language) (models.Response, bool) {
	facilities, ok := result.Data.([]models.HealthFacility)
	if !ok || len(facilities) == 0 {
		return models.Response{}, false
	}

	names := make([]string, 0, 3)
	for i := 0; i < len(facilities) && i < 3; i++ {
		names = append(names, orDefault(facilities[i].Name, unknownValue))
	}
	nearest := facilities[0]

	msg := Render(g.pick(KeyHealthFacilities, lang), map[string]string{
		"count":      strconv.Itoa(len(facilities)),
		"facilities": strings.Join(names, ", "),
		"nearest":    orDefault(nearest.Name, unknownValue),
	})
	msg += "\n\n" + Render(g.pick(KeyNearestFacility, lang), map[string]string{
		"name":  orDefault(nearest.Name, unknownValue),
		"phone": orDefault(nearest.Phone, notAvailableValue),
	})

	return models.Response{
		Message:     msg,
		Source:      result.Source,
		Suggestions: g.table.Suggestions(SuggestAfterHealth, lang),
		Metadata: map[string]interface{}{
			"facilities_count": len(facilities),
			"nearest_facility": nearest.Name,
			"emergency_number": emergencyNumber,
		},
	}, true
}

func (g *Generator) prices(result models.DataSourceResult, lang models.Language) (models.Response, bool) {
	prices, ok := result.Data.([]models.CommodityPrice)
	if !ok || len(prices) == 0 {
		return models.Response{}, false
	}

	parts := make([]string, 0, 3)
	for i := 0; i < len(prices) && i < 3; i++ {
		p := prices[i]
		parts = append(parts, fmt.Sprintf("%s: ₹%s/%s",
			orDefault(p.MarketName, "Unknown Market"),
			strconv.FormatFloat(p.PricePerUnit, 'f', -1, 64),
			orDefault(p.Unit, "kg")))
	}

	date := prices[0].Date
	if date.IsZero() {
		date = g.now()
	}
	commodity := orDefault(prices[0].Commodity, "commodity")
	day := date.Format("2006-01-02")

	msg := Render(g.pick(KeyCommodityPrices, lang), map[string]string{
		"commodity": commodity,
		"prices":    strings.Join(parts, ", "),
		"date":      day,
	})

	return models.Response{
		Message:     msg,
		Source:      result.Source,
		Suggestions: g.table.Suggestions(SuggestCommodity, lang),
		Metadata: map[string]interface{}{
			"commodity":    commodity,
			"prices_count": len(prices),
			"last_updated": day,
		},
	}, true
}

func (g *Generator) pincode(result models.DataSourceResult, lang models.Language) (models.Response, bool) {
	p, ok := result.Data.(*models.PincodeInfo)
	if !ok || p == nil {
		return models.Response{}, false
	}

	msg := Render(g.pick(KeyPincodeInfo, lang), map[string]string{
		"pincode":     orDefault(p.Pincode, unknownValue),
		"district":    orDefault(p.District, unknownValue),
		"state":       orDefault(p.State, unknownValue),
		"post_office": orDefault(p.PostOffice, unknownValue),
		"region":      orDefault(p.Region, unknownValue),
	})

	return models.Response{
		Message:     msg,
		Source:      result.Source,
		Suggestions: g.table.Suggestions(SuggestAfterPincode, lang),
		Metadata: map[string]interface{}{
			"pincode":  p.Pincode,
			"district": p.District,
			"state":    p.State,
		},
	}, true
}

func (g *Generator) faq(result models.DataSourceResult, lang models.Language) (models.Response, bool) {
	f, ok := result.Data.(*models.FAQAnswer)
	if !ok || f == nil || strings.TrimSpace(f.Answer) == "" {
		return models.Response{}, false
	}

	msg := Render(g.pick(KeyGeneralFAQ, lang), map[string]string{
		"answer":  f.Answer,
		"website": faqWebsite,
	})

	return models.Response{
		Message:     msg,
		Source:      result.Source,
		Suggestions: g.table.Suggestions(SuggestGeneral, lang),
		Metadata: map[string]interface{}{
			"category": orDefault(f.Category, "general"),
			"website":  faqWebsite,
		},
	}, true
}

// fallback uses the resolved canned message for english and a localized
// template otherwise.
func (g *Generator) fallback(result models.DataSourceResult, lang models.Language) models.Response {
	resp := models.Response{
		Message:     g.pick(KeyFallback, lang),
		Source:      models.SourceFallback,
		Suggestions: g.table.Suggestions(SuggestGeneral, lang),
		Metadata:    map[string]interface{}{"fallback_reason": "intent_not_handled"},
	}

	if fb, ok := result.Data.(*models.FallbackMessage); ok && fb != nil && lang == models.LanguageEnglish && fb.Message != "" {
		resp.Message = fb.Message
		if len(fb.Suggestions) > 0 {
			resp.Suggestions = append([]string(nil), fb.Suggestions...)
		}
	}
	return resp
}

func orDefault(v, def string) string {
	if strings.TrimSpace(v) == "" {
		return def
	}
	return v
}

func joinFirst(items []string, n int) string {
	if len(items) == 0 {
		return notAvailableValue
	}
	if len(items) > n {
		items = items[:n]
	}
	return strings.Join(items, ", ")
}
