// internal/workers/chat/resolve-data/resolver.go
package resolvedata

import (
	"context"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"rural-assist/internal/common/logger"
	"rural-assist/internal/models"
	"rural-assist/internal/sources"
)

const (
	DefaultScheme    = "PMAY"
	DefaultCommodity = "wheat"
)

var questionPincodeRe = regexp.MustCompile(`(?:^|[^0-9])([0-9]{6})(?:[^0-9]|$)`)

// FAQAnswerer answers general questions. It must not fail.
type FAQAnswerer interface {
	Answer(ctx context.Context, question string) models.DataSourceResult
}

// FallbackSource supplies the canned reply for unhandled intents.
type FallbackSource interface {
	Fallback() *models.FallbackMessage
}

var intentDomains = map[models.IntentName]models.ResultType{
	models.IntentSurveyMLA:      models.ResultMLAInfo,
	models.IntentOpinionMLA:     models.ResultMLAInfo,
	models.IntentSurveyMP:       models.ResultMPInfo,
	models.IntentOpinionMP:      models.ResultMPInfo,
	models.IntentSchemeInfo:     models.ResultSchemeInfo,
	models.IntentPHCLocation:    models.ResultPHCInfo,
	models.IntentCommodityPrice: models.ResultPriceInfo,
	models.IntentPincodeHelp:    models.ResultPincodeInfo,
}

// DomainFor maps an intent to the data domain the chain serves. ok is false
// for intents the chain does not handle.
func DomainFor(intent models.IntentName) (models.ResultType, bool) {
	d, ok := intentDomains[intent]
	return d, ok
}

// Resolver turns a classified intent into a DataSourceResult.
type Resolver struct {
	chain    *sources.Chain
	kb       FAQAnswerer
	fallback FallbackSource
	cache    *Cache
	logger   logger.Logger
}

// NewResolver wires the resolver. cache may be nil.
func NewResolver(chain *sources.Chain, kb FAQAnswerer, fallback FallbackSource, cache *Cache, log logger.Logger) *Resolver {
	return &Resolver{
		chain:    chain,
		kb:       kb,
		fallback: fallback,
		cache:    cache,
		logger:   log.WithFields(map[string]interface{}{"component": "resolver"}),
	}
}

// Resolve never fails.
func (r *Resolver) Resolve(ctx context.Context, intent models.Intent, question string, reqCtx map[string]interface{}) models.DataSourceResult {
	domain, ok := DomainFor(intent.Name)
	if !ok {
		if intent.Name == models.IntentGeneralFAQ {
			return r.kb.Answer(ctx, question)
		}
		return models.DataSourceResult{
			Type:   models.ResultFallback,
			Data:   r.fallback.Fallback(),
			Source: models.SourceFallback,
		}
	}

	q := BuildQuery(domain, intent.Entities, question, reqCtx)

	var key string
	if r.cache != nil && sources.ValidQuery(q) {
		key = CacheKey(q)
		if cached, hit := r.cache.Get(ctx, key); hit {
			r.logger.Debug("data cache hit", map[string]interface{}{"key": key})
			return cached
		}
	}

	result := r.chain.Resolve(ctx, q)
	if key != "" {
		r.cache.Put(ctx, key, result)
	}
	return result
}

// BuildQuery reads entities first, then request context. The pincode may
// also come from a six-digit run in the question.
func BuildQuery(domain models.ResultType, entities models.Entities, question string, reqCtx map[string]interface{}) sources.Query {
	lookup := func(keys ...string) string {
		for _, k := range keys {
			if s := stringValue(entities[k]); s != "" {
				return s
			}
			if s := stringValue(reqCtx[k]); s != "" {
				return s
			}
		}
		return ""
	}

	loc := sources.Location{
		Pincode:   resolvePincode(lookup(models.EntityPincode), question),
		Village:   lookup(models.EntityVillage),
		District:  lookup(models.EntityDistrict, models.EntityLocation),
		State:     lookup(models.EntityState),
		Latitude:  floatValue(reqCtx, "lat", models.EntityLatitude),
		Longitude: floatValue(reqCtx, "long", models.EntityLongitude),
	}

	q := sources.Query{Domain: domain, Location: loc, Question: question}
	switch domain {
	case models.ResultSchemeInfo:
		q.SchemeName = lookup(models.EntitySchemeName, models.EntityScheme)
		if q.SchemeName == "" {
			q.SchemeName = DefaultScheme
		}
	case models.ResultPriceInfo:
		q.Commodity = lookup(models.EntityCommodityName, models.EntityCommodity)
		if q.Commodity == "" {
			q.Commodity = DefaultCommodity
		}
	}
	return q
}

func resolvePincode(given, question string) string {
	if sources.ValidPincode(given) {
		return given
	}
	if m := questionPincodeRe.FindStringSubmatch(question); m != nil {
		return m[1]
	}
	return given
}

func stringValue(v interface{}) string {
	switch t := v.(type) {
	case string:
		return strings.TrimSpace(t)
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	case int:
		return strconv.Itoa(t)
	case int64:
		return strconv.FormatInt(t, 10)
	case nil:
		return ""
	default:
		return strings.TrimSpace(fmt.Sprint(t))
	}
}

func floatValue(m map[string]interface{}, keys ...string) *float64 {
	for _, k := range keys {
		switch t := m[k].(type) {
		case float64:
			return models.Float64Ptr(t)
		case int:
			return models.Float64Ptr(float64(t))
		case string:
			if f, err := strconv.ParseFloat(strings.TrimSpace(t), 64); err == nil {
				return models.Float64Ptr(f)
			}
		}
	}
	return nil
}
