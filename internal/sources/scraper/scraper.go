// Package scraper is the scraped-page tier of the data source chain. It reads
// the PMAY portals for housing schemes and Agmarknet for mandi prices.
package scraper

import (
	"bytes"
	"context"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"

	"rural-assist/internal/common/config"
	"rural-assist/internal/common/errors"
	commonhttp "rural-assist/internal/common/http"
	"rural-assist/internal/common/logger"
	"rural-assist/internal/models"
	"rural-assist/internal/sources"
)

const (
	priceTableSelector  = "#cphBody_GridPriceData"
	descriptionSelector = ".scheme-description"
	maxPriceRows        = 10
)

type Scraper struct {
	http   *commonhttp.Client
	cfg    config.ScraperConfig
	now    func() time.Time
	logger logger.Logger
}

func New(cfg config.ScraperConfig, httpClient *commonhttp.Client, log logger.Logger) *Scraper {
	if cfg.UserAgent != "" {
		httpClient = httpClient.WithUserAgent(cfg.UserAgent)
	}
	return &Scraper{
		http:   httpClient,
		cfg:    cfg,
		now:    time.Now,
		logger: log.WithFields(map[string]interface{}{"tier": models.SourceScraping}),
	}
}

func (s *Scraper) Name() models.Source { return models.SourceScraping }

// Fetch implements sources.Provider. Only schemes and prices have pages to read.
func (s *Scraper) Fetch(ctx context.Context, q sources.Query) sources.Outcome {
	switch q.Domain {
	case models.ResultSchemeInfo:
		info, err := s.Scheme(ctx, q.SchemeName)
		if err != nil {
			return sources.Failed(err)
		}
		return sources.Success(info)
	case models.ResultPriceInfo:
		prices, err := s.CommodityPrices(ctx, q.Commodity, q.Location)
		if err != nil {
			return sources.Failed(err)
		}
		return sources.Success(prices)
	default:
		return sources.Empty()
	}
}

// Scheme reads the housing portals. Names unrelated to housing yield nil.
func (s *Scraper) Scheme(ctx context.Context, name string) (*models.SchemeInfo, error) {
	lower := strings.ToLower(name)
	if !strings.Contains(lower, "pmay") && !strings.Contains(lower, "housing") {
		return nil, nil
	}

	info, gErr := s.pmayGramin(ctx)
	if gErr == nil {
		return info, nil
	}
	s.logger.Warn("PMAY-G page unavailable", map[string]interface{}{"error": gErr.Error()})

	info, uErr := s.pmayUrban(ctx)
	if uErr == nil {
		return info, nil
	}
	return nil, errors.NewScrapeFailedError("pmay", uErr)
}

func (s *Scraper) pmayGramin(ctx context.Context) (*models.SchemeInfo, error) {
	doc, err := s.document(ctx, strings.TrimRight(s.cfg.PMAYGURL, "/")+"/netiay/home.aspx", nil)
	if err != nil {
		return nil, err
	}

	description := strings.TrimSpace(doc.Find(descriptionSelector).First().Text())
	if description == "" {
		description = "Pradhan Mantri Awas Yojana - Gramin aims to provide pucca houses to all houseless and households living in kutcha and dilapidated houses by 2024."
	}

	return &models.SchemeInfo{
		SchemeName:  "Pradhan Mantri Awas Yojana - Gramin",
		Description: description,
		Eligibility: []string{
			"Houseless households",
			"Households living in kutcha houses",
			"Households living in dilapidated houses",
			"Below Poverty Line families",
		},
		Benefits: []string{
			"Financial assistance for house construction",
			"Technical support for construction",
			"Skill development training",
			"Access to institutional credit",
		},
		ApplicationProcess: []string{
			"Apply through Common Service Centers",
			"Submit required documents",
			"Verification by local authorities",
			"Approval and fund disbursement",
		},
		RequiredDocuments: []string{
			"Aadhaar Card",
			"Bank Account Details",
			"Income Certificate",
			"Caste Certificate (if applicable)",
			"Land ownership documents",
		},
		OfficialWebsite: s.cfg.PMAYGURL,
		Helpline:        "1800-11-6446",
		LastUpdated:     s.now(),
	}, nil
}

// pmayUrban only confirms the portal is reachable; its content is rendered client-side.
func (s *Scraper) pmayUrban(ctx context.Context) (*models.SchemeInfo, error) {
	if _, err := s.document(ctx, strings.TrimRight(s.cfg.PMAYUURL, "/")+"/", nil); err != nil {
		return nil, err
	}

	return &models.SchemeInfo{
		SchemeName:  "Pradhan Mantri Awas Yojana - Urban",
		Description: "PMAY-U aims to provide pucca houses to all eligible families in urban areas by 2024.",
		Eligibility: []string{
			"Economically Weaker Section (EWS)",
			"Low Income Group (LIG)",
			"Middle Income Group (MIG)",
			"First-time home buyers",
		},
		Benefits: []string{
			"Interest subsidy on home loans",
			"Direct financial assistance",
			"Partnership with private sector",
			"In-situ slum redevelopment",
		},
		ApplicationProcess: []string{
			"Apply online through PMAY-U portal",
			"Submit Aadhaar and income documents",
			"Verification by implementing agency",
			"Approval and subsidy disbursement",
		},
		RequiredDocuments: []string{
			"Aadhaar Card",
			"Income Proof",
			"Bank Account Details",
			"Property Documents",
			"Passport Size Photos",
		},
		OfficialWebsite: s.cfg.PMAYUURL,
		Helpline:        "1800-11-3388",
		LastUpdated:     s.now(),
	}, nil
}

// CommodityPrices reads the Agmarknet price grid.
func (s *Scraper) CommodityPrices(ctx context.Context, commodity string, loc sources.Location) ([]models.CommodityPrice, error) {
	if commodity == "" {
		return nil, nil
	}

	params := url.Values{"Tx_Commodity": {commodity}}
	if loc.State != "" {
		params.Set("Tx_State", loc.State)
	}

	doc, err := s.document(ctx, strings.TrimRight(s.cfg.AgmarknetURL, "/")+"/SearchCmmMkt.aspx", params)
	if err != nil {
		return nil, errors.NewScrapeFailedError("agmarknet", err)
	}

	now := s.now()
	var prices []models.CommodityPrice
	doc.Find(priceTableSelector).First().Find("tr").Each(func(i int, row *goquery.Selection) {
		if i == 0 || len(prices) == maxPriceRows {
			return
		}

		var cells []string
		row.Find("td").Each(func(_ int, td *goquery.Selection) {
			cells = append(cells, strings.TrimSpace(td.Text()))
		})
		if len(cells) < 6 {
			return
		}

		price, err := strconv.ParseFloat(strings.ReplaceAll(cells[4], ",", ""), 64)
		if err != nil {
			s.logger.Debug("skipping unparseable price row", map[string]interface{}{
				"row":   i,
				"value": cells[4],
			})
			return
		}

		prices = append(prices, models.CommodityPrice{
			Commodity:    commodity,
			Variety:      cells[1],
			MarketName:   cells[2],
			PricePerUnit: price,
			Unit:         "quintal",
			Date:         now,
			District:     cells[3],
			State:        loc.State,
			Source:       "agmarknet.gov.in",
		})
	})
	return prices, nil
}

func (s *Scraper) document(ctx context.Context, rawURL string, params url.Values) (*goquery.Document, error) {
	body, err := s.http.Get(ctx, rawURL, params)
	if err != nil {
		return nil, err
	}
	return goquery.NewDocumentFromReader(bytes.NewReader(body))
}
