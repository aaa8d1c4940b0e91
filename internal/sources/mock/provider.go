// Package mock is the last tier of the data source chain. It answers every
// domain from built-in sample data so a reply can always be assembled.
package mock

import (
	"context"
	"math"
	"strings"
	"sync"
	"time"
	"unicode"

	"rural-assist/internal/models"
	"rural-assist/internal/sources"
)

// Rand is the randomness the provider draws from. *rand.Rand satisfies it.
type Rand interface {
	Intn(n int) int
	Float64() float64
}

// Provider serves sample data. Safe for concurrent use.
type Provider struct {
	mu     sync.Mutex
	rnd    Rand
	now    func() time.Time
	prices map[string][]models.CommodityPrice
}

// New builds the provider and draws the commodity price table once.
func New(rnd Rand, now func() time.Time) *Provider {
	if now == nil {
		now = time.Now
	}
	p := &Provider{
		rnd:    rnd,
		now:    now,
		prices: make(map[string][]models.CommodityPrice, len(commodityBases)),
	}

	today := now()
	for _, c := range commodityBases {
		for _, state := range commodityStates {
			p.prices[c.name] = append(p.prices[c.name], models.CommodityPrice{
				Commodity:    c.name,
				Variety:      "Common",
				MarketName:   state + " Mandi",
				PricePerUnit: round2(c.price * (0.8 + 0.4*rnd.Float64())),
				Unit:         "quintal",
				Date:         today.AddDate(0, 0, -rnd.Intn(8)),
				District:     state + " District",
				State:        state,
				Source:       "mock_data",
			})
		}
	}
	return p
}

func (p *Provider) Name() models.Source { return models.SourceMock }

// Fetch dispatches on the query domain.
func (p *Provider) Fetch(_ context.Context, q sources.Query) sources.Outcome {
	switch q.Domain {
	case models.ResultPHCInfo:
		return sources.Success(p.HealthFacilities(q.Location))
	case models.ResultPriceInfo:
		return sources.Success(p.CommodityPrices(q.Commodity, q.Location))
	case models.ResultSchemeInfo:
		return sources.Success(p.Scheme(q.SchemeName))
	case models.ResultPincodeInfo:
		return sources.Success(p.Pincode(q.Location.Pincode))
	case models.ResultMLAInfo:
		return sources.Success(p.Representative("MLA", q.Location.District))
	case models.ResultMPInfo:
		return sources.Success(p.Representative("MP", q.Location.District))
	case models.ResultFAQ:
		return sources.Success(p.FAQ(q.Question))
	case models.ResultFallback:
		return sources.Success(p.Fallback())
	default:
		return sources.Failedf("no sample data for domain %q", q.Domain)
	}
}

func (p *Provider) HealthFacilities(loc sources.Location) []models.HealthFacility {
	for _, e := range facilityTable {
		if e.pincode == loc.Pincode {
			out := make([]models.HealthFacility, len(e.facilities))
			copy(out, e.facilities)
			return out
		}
	}

	pincode := or(loc.Pincode, "000000")
	district := or(loc.District, "Unknown District")
	state := or(loc.State, "Unknown State")
	return []models.HealthFacility{
		{
			Name:       "District Hospital",
			Type:       "Government Hospital",
			Address:    "District Hospital, " + district,
			Pincode:    pincode,
			District:   district,
			State:      state,
			Phone:      "1800-180-1104",
			Services:   []string{"Emergency", "OPD", "General Medicine"},
			DistanceKm: models.Float64Ptr(5.0),
		},
		{
			Name:       "Primary Health Centre",
			Type:       "PHC",
			Address:    "PHC, " + or(loc.Village, "Local Area"),
			Pincode:    pincode,
			District:   district,
			State:      state,
			Phone:      "108",
			Services:   []string{"OPD", "Vaccination", "Basic Treatment"},
			DistanceKm: models.Float64Ptr(2.0),
		},
	}
}

// CommodityPrices returns the sample quotes for commodity, narrowed to the
// caller's state when that state has quotes.
func (p *Provider) CommodityPrices(commodity string, loc sources.Location) []models.CommodityPrice {
	if prices, ok := p.prices[strings.ToLower(strings.TrimSpace(commodity))]; ok {
		if loc.State != "" {
			var inState []models.CommodityPrice
			for _, pr := range prices {
				if strings.EqualFold(pr.State, loc.State) {
					inState = append(inState, pr)
				}
			}
			if len(inState) > 0 {
				return inState
			}
		}
		out := make([]models.CommodityPrice, len(prices))
		copy(out, prices)
		return out
	}

	p.mu.Lock()
	base := 1000 + 4000*p.rnd.Float64()
	p.mu.Unlock()

	return []models.CommodityPrice{{
		Commodity:    commodity,
		Variety:      "Common",
		MarketName:   or(loc.State, "Local") + " Mandi",
		PricePerUnit: round2(base),
		Unit:         "quintal",
		Date:         p.now(),
		District:     or(loc.District, "Unknown District"),
		State:        or(loc.State, "Unknown State"),
		Source:       "mock_data",
	}}
}

// Scheme matches when either name contains the other.
func (p *Provider) Scheme(name string) *models.SchemeInfo {
	key := strings.ToLower(strings.TrimSpace(name))
	if key != "" {
		for _, e := range schemeTable {
			if strings.Contains(key, e.key) || strings.Contains(e.key, key) {
				s := e.scheme
				s.LastUpdated = p.now()
				return &s
			}
		}
	}

	return &models.SchemeInfo{
		SchemeName:         name + " Scheme",
		Description:        "The " + name + " scheme is a government initiative aimed at providing benefits to eligible citizens.",
		Eligibility:        []string{"Indian citizen", "Meet income criteria", "Age requirements as applicable"},
		Benefits:           []string{"Financial assistance", "Subsidies", "Support services"},
		ApplicationProcess: []string{"Visit local office", "Fill application form", "Submit documents", "Wait for approval"},
		RequiredDocuments:  []string{"Aadhaar Card", "Income Certificate", "Address Proof", "Bank Details"},
		OfficialWebsite:    "https://india.gov.in",
		Helpline:           "1800-111-555",
		LastUpdated:        p.now(),
	}
}

func (p *Provider) Pincode(pincode string) *models.PincodeInfo {
	if info, ok := pincodeTable[pincode]; ok {
		return &info
	}
	return &models.PincodeInfo{
		Pincode:    pincode,
		PostOffice: "Post Office " + pincode,
		District:   "Unknown District",
		State:      "Unknown State",
		Region:     "Unknown Region",
		Division:   "Unknown Division",
		Circle:     "Unknown Circle",
		Villages:   []string{"Village 1", "Village 2", "Village 3"},
	}
}

// Representative returns the MLA or MP for district.
func (p *Provider) Representative(position, district string) *models.PoliticalRepresentative {
	key := strings.ReplaceAll(strings.ToLower(strings.TrimSpace(district)), " ", "_")
	for _, rep := range representativeTable[key] {
		if rep.Position == position {
			r := rep
			return &r
		}
	}

	r := &models.PoliticalRepresentative{
		Position:     position,
		Constituency: or(district, "Unknown Constituency"),
		Party:        "Political Party",
		Source:       "mock_data",
	}
	if position == "MP" {
		r.Name = "Local MP"
		r.ContactInfo = map[string]string{"phone": "1800-XXX-XXXX", "email": "mp@example.com"}
		r.OfficeAddress = "Parliament House"
		r.Achievements = []string{"Policy advocacy", "Development projects"}
	} else {
		r.Name = "Local MLA"
		r.ContactInfo = map[string]string{"phone": "1800-XXX-XXXX", "email": "mla@example.com"}
		r.OfficeAddress = "Assembly Office"
		r.Achievements = []string{"Infrastructure development", "Public welfare programs"}
	}
	return r
}

// FAQ picks the entry whose key words best cover the question's words.
// The first entry wins a tie.
func (p *Provider) FAQ(question string) *models.FAQAnswer {
	words := make(map[string]bool)
	for _, w := range strings.FieldsFunc(strings.ToLower(question), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	}) {
		words[w] = true
	}

	best, bestScore := -1, 0.0
	for i, e := range faqTable {
		parts := strings.Split(e.key, "_")
		hits := 0
		for _, part := range parts {
			if words[part] {
				hits++
			}
		}
		if score := float64(hits) / float64(len(parts)); score > bestScore {
			best, bestScore = i, score
		}
	}

	if best < 0 {
		return &models.FAQAnswer{Answer: genericFAQAnswer, Category: "general", Origin: string(models.SourceFallback)}
	}
	faq := faqTable[best].faq
	faq.Origin = string(models.SourceKnowledgeBase)
	return &faq
}

// Fallback returns one of the canned apologies.
func (p *Provider) Fallback() *models.FallbackMessage {
	p.mu.Lock()
	i := p.rnd.Intn(len(fallbackMessages))
	p.mu.Unlock()

	return &models.FallbackMessage{
		Message:     fallbackMessages[i],
		Suggestions: append([]string(nil), FallbackSuggestions...),
	}
}

func or(v, def string) string {
	if strings.TrimSpace(v) == "" {
		return def
	}
	return v
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
