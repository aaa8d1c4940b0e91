// Package api is the live-API tier of the data source chain: data.gov.in,
// the ABDM facility registry and the India Post pincode service.
package api

import (
	"context"
	stderrors "errors"
	"net"
	"net/url"
	"strings"
	"time"

	"github.com/sethvargo/go-retry"
	"github.com/sony/gobreaker"

	"rural-assist/internal/common/config"
	"rural-assist/internal/common/errors"
	commonhttp "rural-assist/internal/common/http"
	"rural-assist/internal/common/logger"
	"rural-assist/internal/common/ratelimit"
	"rural-assist/internal/models"
	"rural-assist/internal/sources"
)

// Rate-limit budgets are kept per data domain.
const (
	BudgetHealthFacilities = "health_facilities"
	BudgetCommodityPrices  = "commodity_prices"
	BudgetSchemeInfo       = "scheme_info"
	BudgetPincodeInfo      = "pincode_info"
)

// Upstreams, each behind its own circuit breaker.
const (
	UpstreamDataGov = "data_gov"
	UpstreamABDM    = "abdm"
	UpstreamPostal  = "postal"
)

const (
	recordLimit   = "20"
	maxFacilities = 10
	maxPrices     = 10
)

type Client struct {
	http       *commonhttp.Client
	limiter    *ratelimit.Limiter
	breakers   map[string]*gobreaker.CircuitBreaker
	cfg        config.SourcesConfig
	retryBase  time.Duration
	maxRetries uint64
	now        func() time.Time
	logger     logger.Logger
}

// Option configures a Client.
type Option func(*Client)

// WithRetryBase sets the first Fibonacci backoff step.
func WithRetryBase(d time.Duration) Option {
	return func(c *Client) { c.retryBase = d }
}

func WithClock(now func() time.Time) Option {
	return func(c *Client) { c.now = now }
}

func NewClient(cfg config.SourcesConfig, httpClient *commonhttp.Client, limiter *ratelimit.Limiter, log logger.Logger, opts ...Option) *Client {
	log = log.WithFields(map[string]interface{}{"tier": models.SourceAPI})

	c := &Client{
		http:      httpClient,
		limiter:   limiter,
		breakers:  make(map[string]*gobreaker.CircuitBreaker),
		cfg:       cfg,
		retryBase: 200 * time.Millisecond,
		now:       time.Now,
		logger:    log,
	}
	if cfg.MaxRetries > 0 {
		c.maxRetries = uint64(cfg.MaxRetries)
	}
	for _, opt := range opts {
		opt(c)
	}

	failures := cfg.Breaker.ConsecutiveFailures
	if failures == 0 {
		failures = 5
	}
	for _, name := range []string{UpstreamDataGov, UpstreamABDM, UpstreamPostal} {
		c.breakers[name] = gobreaker.NewCircuitBreaker(gobreaker.Settings{
			Name:        name,
			MaxRequests: cfg.Breaker.MaxRequests,
			Interval:    time.Duration(cfg.Breaker.Interval) * time.Millisecond,
			Timeout:     time.Duration(cfg.Breaker.OpenTimeout) * time.Millisecond,
			ReadyToTrip: func(counts gobreaker.Counts) bool {
				return counts.ConsecutiveFailures >= failures
			},
			IsSuccessful: func(err error) bool {
				return err == nil || stderrors.Is(err, context.Canceled)
			},
			OnStateChange: func(name string, from, to gobreaker.State) {
				log.Warn("circuit breaker state changed", map[string]interface{}{
					"upstream": name,
					"from":     from.String(),
					"to":       to.String(),
				})
			},
		})
	}
	return c
}

func (c *Client) Name() models.Source { return models.SourceAPI }

// Fetch implements sources.Provider. Representatives and FAQs have no live
// API and always come back Empty.
func (c *Client) Fetch(ctx context.Context, q sources.Query) sources.Outcome {
	switch q.Domain {
	case models.ResultPHCInfo:
		return outcome(c.HealthFacilities(ctx, q.Location))
	case models.ResultPriceInfo:
		return outcome(c.CommodityPrices(ctx, q.Commodity, q.Location))
	case models.ResultSchemeInfo:
		return outcome(c.Scheme(ctx, q.SchemeName))
	case models.ResultPincodeInfo:
		return outcome(c.Pincode(ctx, q.Location.Pincode))
	default:
		return sources.Empty()
	}
}

func outcome[T any](data T, err error) sources.Outcome {
	if err != nil {
		return sources.Failed(err)
	}
	return sources.Success(data)
}

// HealthFacilities merges ABDM results for the pincode with data.gov.in
// results for the district, deduplicated by name.
func (c *Client) HealthFacilities(ctx context.Context, loc sources.Location) ([]models.HealthFacility, error) {
	if err := c.wait(ctx, BudgetHealthFacilities); err != nil {
		return nil, err
	}

	var (
		merged   []models.HealthFacility
		attempts int
		lastErr  error
	)

	if loc.Pincode != "" {
		attempts++
		var resp abdmResponse
		err := c.get(ctx, UpstreamABDM, c.cfg.ABDM.BaseURL+"/api/facilities/search", url.Values{
			"pincode": {loc.Pincode},
			"limit":   {recordLimit},
		}, &resp)
		if err != nil {
			lastErr = err
		} else {
			for _, f := range resp.Facilities {
				merged = append(merged, f.toModel(loc.Pincode))
			}
		}
	}

	if c.cfg.DataGov.APIKey != "" && loc.District != "" {
		attempts++
		params := c.dataGovParams()
		params.Set("filters[district]", loc.District)
		if loc.State != "" {
			params.Set("filters[state]", loc.State)
		}
		var resp dataGovResponse[facilityRecord]
		err := c.get(ctx, UpstreamDataGov, c.cfg.DataGov.BaseURL+"/resource/health-facilities", params, &resp)
		if err != nil {
			lastErr = err
		} else {
			for _, r := range resp.Records {
				merged = append(merged, r.toModel())
			}
		}
	}

	if attempts > 0 && len(merged) == 0 && lastErr != nil {
		return nil, lastErr
	}
	return dedupeFacilities(merged, maxFacilities), nil
}

func (c *Client) CommodityPrices(ctx context.Context, commodity string, loc sources.Location) ([]models.CommodityPrice, error) {
	if c.cfg.DataGov.APIKey == "" || commodity == "" {
		return nil, nil
	}
	if err := c.wait(ctx, BudgetCommodityPrices); err != nil {
		return nil, err
	}

	params := c.dataGovParams()
	params.Set("filters[commodity]", commodity)
	if loc.State != "" {
		params.Set("filters[state]", loc.State)
	}

	var resp dataGovResponse[priceRecord]
	if err := c.get(ctx, UpstreamDataGov, c.cfg.DataGov.BaseURL+"/resource/commodity-prices", params, &resp); err != nil {
		return nil, err
	}

	var prices []models.CommodityPrice
	for _, r := range resp.Records {
		prices = append(prices, r.toModel(commodity, c.now()))
		if len(prices) == maxPrices {
			break
		}
	}
	return prices, nil
}

func (c *Client) Scheme(ctx context.Context, name string) (*models.SchemeInfo, error) {
	if c.cfg.DataGov.APIKey == "" || name == "" {
		return nil, nil
	}
	if err := c.wait(ctx, BudgetSchemeInfo); err != nil {
		return nil, err
	}

	params := c.dataGovParams()
	params.Set("q", name)

	var resp dataGovResponse[schemeRecord]
	if err := c.get(ctx, UpstreamDataGov, c.cfg.DataGov.BaseURL+"/resource/government-schemes", params, &resp); err != nil {
		return nil, err
	}
	if len(resp.Records) == 0 {
		return nil, nil
	}
	return resp.Records[0].toModel(name, c.now()), nil
}

// Pincode asks India Post first, then the data.gov.in directory.
func (c *Client) Pincode(ctx context.Context, pincode string) (*models.PincodeInfo, error) {
	if err := c.wait(ctx, BudgetPincodeInfo); err != nil {
		return nil, err
	}

	var postal postalResponse
	postalErr := c.get(ctx, UpstreamPostal, c.cfg.Postal.BaseURL+"/pincode/"+url.PathEscape(pincode), nil, &postal)
	if postalErr == nil {
		if info := postal.toModel(pincode); info != nil {
			return info, nil
		}
	}

	if c.cfg.DataGov.APIKey == "" {
		return nil, postalErr
	}

	params := c.dataGovParams()
	params.Set("filters[pincode]", pincode)
	var resp dataGovResponse[pincodeRecord]
	if err := c.get(ctx, UpstreamDataGov, c.cfg.DataGov.BaseURL+"/resource/pincode-directory", params, &resp); err != nil {
		return nil, err
	}
	if len(resp.Records) == 0 {
		return nil, nil
	}
	return resp.Records[0].toModel(pincode), nil
}

// HealthCheck queries the postal service with a known pincode.
func (c *Client) HealthCheck(ctx context.Context) error {
	var postal postalResponse
	return c.get(ctx, UpstreamPostal, c.cfg.Postal.BaseURL+"/pincode/110001", nil, &postal)
}

// BreakerState reports the circuit state of an upstream.
func (c *Client) BreakerState(upstream string) string {
	if cb, ok := c.breakers[upstream]; ok {
		return cb.State().String()
	}
	return "unknown"
}

func (c *Client) dataGovParams() url.Values {
	return url.Values{
		"api-key": {c.cfg.DataGov.APIKey},
		"format":  {"json"},
		"limit":   {recordLimit},
	}
}

func (c *Client) wait(ctx context.Context, budget string) error {
	if c.limiter == nil {
		return nil
	}
	if err := c.limiter.Wait(ctx, budget); err != nil {
		return errors.NewRateLimitedError(budget, err)
	}
	return nil
}

// get performs one GET through the upstream's breaker, retrying transient
// failures with Fibonacci backoff until ctx expires.
func (c *Client) get(ctx context.Context, upstream, rawURL string, params url.Values, out interface{}) error {
	cb := c.breakers[upstream]
	b := retry.WithMaxRetries(c.maxRetries, retry.NewFibonacci(c.retryBase))

	err := retry.Do(ctx, b, func(ctx context.Context) error {
		_, err := cb.Execute(func() (interface{}, error) {
			return nil, c.http.GetJSON(ctx, rawURL, params, out)
		})
		if err != nil && retryable(err) {
			c.logger.Debug("retrying upstream call", map[string]interface{}{
				"upstream": upstream,
				"error":    err.Error(),
			})
			return retry.RetryableError(err)
		}
		return err
	})
	if err == nil {
		return nil
	}

	if stderrors.Is(err, context.DeadlineExceeded) {
		return errors.NewUpstreamTimeoutError(upstream)
	}
	return errors.NewUpstreamUnavailableError(upstream, err)
}

func retryable(err error) bool {
	if stderrors.Is(err, gobreaker.ErrOpenState) || stderrors.Is(err, gobreaker.ErrTooManyRequests) {
		return false
	}
	if stderrors.Is(err, context.Canceled) || stderrors.Is(err, context.DeadlineExceeded) {
		return false
	}

	var se *commonhttp.StatusError
	if stderrors.As(err, &se) {
		return se.Retryable()
	}
	var ne net.Error
	if stderrors.As(err, &ne) {
		return true
	}
	return strings.Contains(err.Error(), "connection reset")
}

func dedupeFacilities(in []models.HealthFacility, limit int) []models.HealthFacility {
	seen := make(map[string]bool, len(in))
	out := make([]models.HealthFacility, 0, len(in))
	for _, f := range in {
		key := strings.ToLower(strings.TrimSpace(f.Name))
		if key == "" || seen[key] {
			continue
		}
		seen[key] = true
		out = append(out, f)
		if len(out) == limit {
			break
		}
	}
	return out
}
