package scraper

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"rural-assist/internal/common/config"
	"rural-assist/internal/common/errors"
	commonhttp "rural-assist/internal/common/http"
	"rural-assist/internal/common/logger"
	"rural-assist/internal/models"
	"rural-assist/internal/sources"
)

const priceGrid = `<html><body>
<table id="cphBody_GridPriceData">
  <tr><th>Sl</th><th>Variety</th><th>Market</th><th>District</th><th>Modal Price</th><th>Date</th></tr>
  <tr><td>1</td><td>Dara</td><td>Khanna</td><td>Ludhiana</td><td>2,275</td><td>01 Jun 2024</td></tr>
  <tr><td>2</td><td>Other</td><td>Rajpura</td><td>Patiala</td><td>2250</td><td>01 Jun 2024</td></tr>
  <tr><td>3</td><td>short row</td></tr>
  <tr><td>4</td><td>Other</td><td>Moga</td><td>Moga</td><td>NR</td><td>01 Jun 2024</td></tr>
</table>
</body></html>`

func newTestScraper(t *testing.T, handler http.HandlerFunc) (*Scraper, *string) {
	t.Helper()
	var gotUA string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotUA = r.Header.Get("User-Agent")
		handler(w, r)
	}))
	t.Cleanup(srv.Close)

	s := New(config.ScraperConfig{
		Enabled:      true,
		UserAgent:    "rural-assist-test",
		PMAYGURL:     srv.URL + "/pmayg",
		PMAYUURL:     srv.URL + "/pmayu",
		AgmarknetURL: srv.URL,
	}, commonhttp.NewClient(time.Second), logger.NewTestLogger(t))
	s.now = func() time.Time { return time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC) }
	return s, &gotUA
}

// ==========================
// Agmarknet
// ==========================

func TestCommodityPrices_ParsesGrid(t *testing.T) {
	s, ua := newTestScraper(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/SearchCmmMkt.aspx", r.URL.Path)
		assert.Equal(t, "wheat", r.URL.Query().Get("Tx_Commodity"))
		_, _ = w.Write([]byte(priceGrid))
	})

	got, err := s.CommodityPrices(context.Background(), "wheat", sources.Location{State: "Punjab"})
	require.NoError(t, err)

	require.Len(t, got, 2)
	assert.Equal(t, "Dara", got[0].Variety)
	assert.Equal(t, "Khanna", got[0].MarketName)
	assert.Equal(t, "Ludhiana", got[0].District)
	assert.Equal(t, 2275.0, got[0].PricePerUnit)
	assert.Equal(t, "quintal", got[0].Unit)
	assert.Equal(t, "Punjab", got[0].State)
	assert.Equal(t, "agmarknet.gov.in", got[0].Source)
	assert.Equal(t, "rural-assist-test", *ua)
}

func TestCommodityPrices_MissingTableIsEmpty(t *testing.T) {
	s, _ := newTestScraper(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`<html><body>No data</body></html>`))
	})

	out := s.Fetch(context.Background(), sources.Query{Domain: models.ResultPriceInfo, Commodity: "onion"})
	assert.Equal(t, sources.OutcomeEmpty, out.Kind)
}

func TestCommodityPrices_HTTPErrorFails(t *testing.T) {
	s, _ := newTestScraper(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	})

	_, err := s.CommodityPrices(context.Background(), "onion", sources.Location{})
	require.Error(t, err)
	assert.Equal(t, errors.ErrCodeScrapeFailed, errors.AsStandardError(err).Code)
}

// ==========================
// PMAY portals
// ==========================

func TestScheme_PMAYGraminDescription(t *testing.T) {
	s, _ := newTestScraper(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/pmayg/netiay/home.aspx", r.URL.Path)
		_, _ = w.Write([]byte(`<div class="scheme-description"> Housing for all rural families. </div>`))
	})

	got, err := s.Scheme(context.Background(), "PMAY")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "Pradhan Mantri Awas Yojana - Gramin", got.SchemeName)
	assert.Equal(t, "Housing for all rural families.", got.Description)
	assert.Equal(t, "1800-11-6446", got.Helpline)
	assert.Len(t, got.RequiredDocuments, 5)
}

func TestScheme_PMAYGraminDefaultDescription(t *testing.T) {
	s, _ := newTestScraper(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`<html></html>`))
	})

	got, err := s.Scheme(context.Background(), "rural housing")
	require.NoError(t, err)
	assert.Contains(t, got.Description, "pucca houses to all houseless")
}

func TestScheme_FallsBackToUrbanPortal(t *testing.T) {
	s, _ := newTestScraper(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/pmayu/" {
			_, _ = w.Write([]byte(`<html></html>`))
			return
		}
		w.WriteHeader(http.StatusInternalServerError)
	})

	got, err := s.Scheme(context.Background(), "pmay urban")
	require.NoError(t, err)
	assert.Equal(t, "Pradhan Mantri Awas Yojana - Urban", got.SchemeName)
	assert.Equal(t, "1800-11-3388", got.Helpline)
}

func TestScheme_BothPortalsDown(t *testing.T) {
	s, _ := newTestScraper(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	})

	out := s.Fetch(context.Background(), sources.Query{Domain: models.ResultSchemeInfo, SchemeName: "PMAY"})
	require.Equal(t, sources.OutcomeFailed, out.Kind)
	assert.Equal(t, errors.ErrCodeScrapeFailed, errors.AsStandardError(out.Err).Code)
}

func TestScheme_UnrelatedSchemeIsEmpty(t *testing.T) {
	called := false
	s, _ := newTestScraper(t, func(w http.ResponseWriter, r *http.Request) {
		called = true
	})

	out := s.Fetch(context.Background(), sources.Query{Domain: models.ResultSchemeInfo, SchemeName: "Jan Aushadhi"})
	assert.Equal(t, sources.OutcomeEmpty, out.Kind)
	assert.False(t, called)
}

func TestFetch_OtherDomainsAreEmpty(t *testing.T) {
	s, _ := newTestScraper(t, func(w http.ResponseWriter, r *http.Request) {})

	out := s.Fetch(context.Background(), sources.Query{Domain: models.ResultMLAInfo})
	assert.Equal(t, sources.OutcomeEmpty, out.Kind)
}
