// internal/bootstrap/bootstrap.go
package bootstrap

import (
	"context"
	"fmt"
	"math/rand"
	"time"

	"github.com/elastic/go-elasticsearch/v8"

	"rural-assist/internal/common/aws"
	"rural-assist/internal/common/camunda"
	"rural-assist/internal/common/config"
	"rural-assist/internal/common/database"
	commonhttp "rural-assist/internal/common/http"
	"rural-assist/internal/common/logger"
	"rural-assist/internal/common/metrics"
	"rural-assist/internal/common/observability"
	"rural-assist/internal/common/ratelimit"
	"rural-assist/internal/lexicon"
	"rural-assist/internal/sources"
	"rural-assist/internal/sources/api"
	"rural-assist/internal/sources/mock"
	"rural-assist/internal/sources/scraper"
	analyzesentiment "rural-assist/internal/workers/chat/analyze-sentiment"
	answerquestion "rural-assist/internal/workers/chat/answer-question"
	detectintent "rural-assist/internal/workers/chat/detect-intent"
	generateresponse "rural-assist/internal/workers/chat/generate-response"
	resolvedata "rural-assist/internal/workers/chat/resolve-data"
	searchfaq "rural-assist/internal/workers/knowledge/search-faq"
	submitsurvey "rural-assist/internal/workers/survey/submit-survey"
	surveystats "rural-assist/internal/workers/survey/survey-stats"
)

// Clients are the backing stores the components run on. Elasticsearch is
// optional; the knowledge base then answers from the mock FAQ table.
type Clients struct {
	Postgres      *database.PostgresClient
	Redis         *database.RedisClient
	Elasticsearch *database.ElasticsearchClient
	SNS           *aws.SNSClient
	SES           *aws.SESClient
}

// App holds every wired component. Handlers double as Zeebe job handlers.
type App struct {
	Config  *config.Config
	Clients Clients
	Lexicon *lexicon.Store
	Obs     *observability.Observability

	APIClient *api.Client
	Mock      *mock.Provider

	DetectIntent     *detectintent.Handler
	AnalyzeSentiment *analyzesentiment.Handler
	ResolveData      *resolvedata.Handler
	GenerateResponse *generateresponse.Handler
	AnswerQuestion   *answerquestion.Handler
	SearchFAQ        *searchfaq.Handler
	SubmitSurvey     *submitsurvey.Handler
	SurveyStats      *surveystats.Handler

	Orchestrator *answerquestion.Orchestrator

	logger logger.Logger
}

// Connect opens the backing stores named in cfg. Nothing is dialled until
// WaitReady or first use.
func Connect(ctx context.Context, cfg *config.Config, log logger.Logger) (Clients, error) {
	var c Clients

	pg, err := database.NewPostgres(cfg.Database.Postgres)
	if err != nil {
		return c, err
	}
	c.Postgres = pg
	c.Redis = database.NewRedis(cfg.Database.Redis)

	if cfg.Database.Elasticsearch.Enabled() {
		es, err := database.NewElasticsearch(cfg.Database.Elasticsearch)
		if err != nil {
			c.Close()
			return Clients{}, err
		}
		c.Elasticsearch = es
	}

	region := cfg.Integrations.AWS.Region
	if cfg.Integrations.AWS.SNS.Enabled {
		if c.SNS, err = aws.NewSNSClient(ctx, region); err != nil {
			c.Close()
			return Clients{}, fmt.Errorf("failed to create SNS client: %w", err)
		}
	}
	if cfg.Integrations.AWS.SES.Enabled {
		if c.SES, err = aws.NewSESClient(ctx, region); err != nil {
			c.Close()
			return Clients{}, fmt.Errorf("failed to create SES client: %w", err)
		}
	}

	log.Info("backing store clients created", map[string]interface{}{
		"elasticsearch": c.Elasticsearch != nil,
		"sns":           c.SNS != nil,
		"ses":           c.SES != nil,
	})
	return c, nil
}

// Pingers lists the configured stores for readiness checks.
func (c Clients) Pingers() []database.Pinger {
	var out []database.Pinger
	if c.Postgres != nil {
		out = append(out, c.Postgres)
	}
	if c.Redis != nil {
		out = append(out, c.Redis)
	}
	if c.Elasticsearch != nil {
		out = append(out, c.Elasticsearch)
	}
	return out
}

// WaitReady blocks until every store answers a ping.
func (c Clients) WaitReady(ctx context.Context, policy database.RetryPolicy, log logger.Logger) error {
	for _, p := range c.Pingers() {
		if err := database.WaitReady(ctx, p, policy, log); err != nil {
			return err
		}
	}
	return nil
}

func (c Clients) Close() {
	if c.Postgres != nil {
		_ = c.Postgres.Close()
	}
	if c.Redis != nil {
		_ = c.Redis.Close()
	}
}

// New wires the pipeline, the survey components and their job handlers.
func New(cfg *config.Config, clients Clients, obs *observability.Observability, log logger.Logger) (*App, error) {
	store, err := lexicon.New()
	if err != nil {
		return nil, fmt.Errorf("failed to build lexicon: %w", err)
	}
	if obs == nil {
		obs = observability.NewNoop()
	}

	a := &App{
		Config:  cfg,
		Clients: clients,
		Lexicon: store,
		Obs:     obs,
		logger:  log,
	}

	a.DetectIntent = detectintent.NewHandler(detectintent.ConfigFromApp(cfg), store, log)
	a.AnalyzeSentiment = analyzesentiment.NewHandler(analyzesentiment.ConfigFromApp(cfg), store, log)

	genCfg := generateresponse.ConfigFromApp(cfg)
	if a.GenerateResponse, err = generateresponse.NewHandler(genCfg, nil, log); err != nil {
		return nil, fmt.Errorf("failed to load response templates: %w", err)
	}

	a.Mock = mock.New(rand.New(rand.NewSource(seed(genCfg.RandomSeed))), time.Now)

	chain, err := a.buildChain()
	if err != nil {
		return nil, err
	}

	var es *elasticsearch.Client
	if clients.Elasticsearch != nil {
		es = clients.Elasticsearch.Client
	}
	a.SearchFAQ = searchfaq.NewHandler(searchfaq.ConfigFromApp(cfg), es, a.Mock, log)

	resolveCfg := resolvedata.ConfigFromApp(cfg)
	var cache *resolvedata.Cache
	if resolveCfg.CacheEnabled && clients.Redis != nil {
		cache = resolvedata.NewCache(clients.Redis.Client, resolveCfg.CacheTTL, log)
	}
	resolver := resolvedata.NewResolver(chain, a.SearchFAQ.KnowledgeBase(), a.Mock, cache, log)
	a.ResolveData = resolvedata.NewHandler(resolveCfg, resolver, log)

	answerCfg := answerquestion.ConfigFromApp(cfg)
	var sessions *answerquestion.SessionStore
	if clients.Redis != nil {
		sessions = answerquestion.NewSessionStore(clients.Redis.Client, answerCfg.SessionTTL)
	}
	a.Orchestrator = answerquestion.NewOrchestrator(
		answerCfg,
		a.DetectIntent.Classifier(),
		resolver,
		a.GenerateResponse.Generator(),
		a.Mock,
		sessions,
		obs,
		log,
	)
	a.AnswerQuestion = answerquestion.NewHandler(answerCfg, a.Orchestrator, log)

	surveyCfg := submitsurvey.ConfigFromApp(cfg)
	var notifier submitsurvey.Notifier
	if clients.SNS != nil || clients.SES != nil {
		notifier = submitsurvey.NewAlertNotifier(surveyCfg, clients.SNS, clients.SES, log)
	}
	if clients.Postgres != nil {
		a.SubmitSurvey = submitsurvey.NewHandler(
			surveyCfg,
			submitsurvey.NewStore(clients.Postgres.DB),
			a.AnalyzeSentiment.Analyzer(),
			notifier,
			log,
		)
		a.SurveyStats = surveystats.NewHandler(surveystats.ConfigFromApp(cfg), clients.Postgres.DB, log)
	}

	log.Info("components wired", map[string]interface{}{
		"intents":   len(store.Intents()),
		"languages": len(store.Languages()),
		"cache":     cache != nil,
		"sessions":  sessions != nil,
		"scraper":   cfg.Scraper.Enabled,
	})
	return a, nil
}

func (a *App) buildChain() (*sources.Chain, error) {
	cfg := a.Config

	limiter := ratelimit.New(cfg.Sources.RateLimitPerMinute,
		ratelimit.WithWaitHook(func(name string, _ time.Duration) {
			metrics.RateLimitWaits.WithLabelValues(name).Inc()
		}),
	)
	a.APIClient = api.NewClient(
		cfg.Sources,
		commonhttp.NewClient(config.GetDuration(cfg.Sources.Timeout)),
		limiter,
		a.logger,
	)

	var scrape sources.Provider
	if cfg.Scraper.Enabled {
		scrape = scraper.New(cfg.Scraper, commonhttp.NewClient(config.GetDuration(cfg.Scraper.Timeout)), a.logger)
	}

	chain, err := sources.NewChain(a.APIClient, scrape, a.Mock, config.GetDuration(cfg.Sources.Timeout), a.logger)
	if err != nil {
		return nil, fmt.Errorf("failed to build data source chain: %w", err)
	}
	return chain, nil
}

// JobHandlers maps each Zeebe job type to its handler. Survey job types
// are absent when no database is configured.
func (a *App) JobHandlers() map[string]camunda.JobHandler {
	handlers := map[string]camunda.JobHandler{
		detectintent.TaskType:     a.DetectIntent,
		analyzesentiment.TaskType: a.AnalyzeSentiment,
		resolvedata.TaskType:      a.ResolveData,
		generateresponse.TaskType: a.GenerateResponse,
		answerquestion.TaskType:   a.AnswerQuestion,
		searchfaq.TaskType:        a.SearchFAQ,
	}
	if a.SubmitSurvey != nil {
		handlers[submitsurvey.TaskType] = a.SubmitSurvey
	}
	if a.SurveyStats != nil {
		handlers[surveystats.TaskType] = a.SurveyStats
	}
	return handlers
}

// SupportedIntents lists the user-facing intents.
func (a *App) SupportedIntents() []answerquestion.IntentInfo {
	return answerquestion.SupportedIntents(a.Lexicon)
}

func seed(configured int64) int64 {
	if configured != 0 {
		return configured
	}
	return time.Now().UnixNano()
}
