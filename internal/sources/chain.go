package sources

import (
	"context"
	"fmt"
	"time"

	"rural-assist/internal/common/logger"
	"rural-assist/internal/common/metrics"
	"rural-assist/internal/models"
)

// ErrPincodeRequired is the validation message for pincode lookups without a pincode.
const ErrPincodeRequired = "Please provide a valid 6-digit pincode"

// Chain tries the API tier, then the scraper tier, then the mock tier, and
// reports which one produced the data.
type Chain struct {
	tiers   []Provider
	final   Provider
	timeout time.Duration
	logger  logger.Logger
}

// NewChain builds a chain. api and scraper may be nil when disabled; final
// is the mock tier and is required. timeout bounds each network tier.
func NewChain(api, scraper, final Provider, timeout time.Duration, log logger.Logger) (*Chain, error) {
	if final == nil {
		return nil, fmt.Errorf("final provider is required")
	}
	c := &Chain{
		final:   final,
		timeout: timeout,
		logger:  log.WithFields(map[string]interface{}{"component": "source-chain"}),
	}
	for _, p := range []Provider{api, scraper} {
		if p != nil {
			c.tiers = append(c.tiers, p)
		}
	}
	return c, nil
}

// Resolve never fails: the final tier always answers.
func (c *Chain) Resolve(ctx context.Context, q Query) models.DataSourceResult {
	if !ValidQuery(q) {
		c.record(q.Domain, models.SourceValidation, "rejected")
		return models.DataSourceResult{Type: models.ResultError, Data: nil, Source: models.SourceValidation}
	}

	for _, tier := range c.tiers {
		if ctx.Err() != nil {
			break
		}

		out := c.attempt(ctx, tier, q, true)
		c.record(q.Domain, tier.Name(), out.Kind.String())

		switch out.Kind {
		case OutcomeSuccess:
			return models.DataSourceResult{Type: q.Domain, Data: out.Data, Source: tier.Name()}
		case OutcomeFailed:
			c.logger.Warn("data tier failed", map[string]interface{}{
				"domain": q.Domain,
				"tier":   tier.Name(),
				"error":  out.Err.Error(),
			})
		default:
			c.logger.Debug("data tier empty", map[string]interface{}{
				"domain": q.Domain,
				"tier":   tier.Name(),
			})
		}
	}

	out := c.attempt(context.WithoutCancel(ctx), c.final, q, false)
	c.record(q.Domain, c.final.Name(), out.Kind.String())
	if out.Kind != OutcomeSuccess {
		if out.Err != nil {
			c.logger.Error("final data tier produced nothing", map[string]interface{}{
				"domain": q.Domain,
				"error":  out.Err.Error(),
			})
		}
		return models.DataSourceResult{Type: q.Domain, Data: nil, Source: models.SourceFallback}
	}
	return models.DataSourceResult{Type: q.Domain, Data: out.Data, Source: c.final.Name()}
}

// attempt runs one provider, converting panics and deadline overruns into Failed.
func (c *Chain) attempt(ctx context.Context, p Provider, q Query, bounded bool) (out Outcome) {
	defer func() {
		if r := recover(); r != nil {
			out = Failedf("provider %s panicked: %v", p.Name(), r)
		}
	}()

	if bounded && c.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}

	out = p.Fetch(ctx, q)
	if out.Kind == OutcomeFailed && out.Err == nil {
		out.Err = fmt.Errorf("provider %s failed", p.Name())
	}
	if bounded && out.Kind == OutcomeSuccess && ctx.Err() != nil {
		return Failed(ctx.Err())
	}
	return out
}

func (c *Chain) record(domain models.ResultType, tier models.Source, outcome string) {
	metrics.DataTierOutcomes.WithLabelValues(string(domain), string(tier), outcome).Inc()
}
