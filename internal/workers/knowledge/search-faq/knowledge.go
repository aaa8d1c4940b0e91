// internal/workers/knowledge/search-faq/knowledge.go
package searchfaq

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/elastic/go-elasticsearch/v8"
	"github.com/elastic/go-elasticsearch/v8/esapi"

	"rural-assist/internal/common/errors"
	"rural-assist/internal/common/logger"
	"rural-assist/internal/common/metrics"
	"rural-assist/internal/models"
)

// OriginSearchIndex marks answers that came from the search index.
const OriginSearchIndex = "search_index"

// FAQSource answers from a static table. It must always return an answer.
type FAQSource interface {
	FAQ(question string) *models.FAQAnswer
}

// KnowledgeBase answers general questions from Elasticsearch and falls back
// to the static FAQ table when the index is missing, down, or has no match.
type KnowledgeBase struct {
	config   *Config
	es       *elasticsearch.Client
	fallback FAQSource
	logger   logger.Logger
}

// NewKnowledgeBase accepts a nil es client, in which case only the static
// table is used.
func NewKnowledgeBase(config *Config, es *elasticsearch.Client, fallback FAQSource, log logger.Logger) *KnowledgeBase {
	return &KnowledgeBase{
		config:   config,
		es:       es,
		fallback: fallback,
		logger:   log.WithFields(map[string]interface{}{"component": "knowledge-base"}),
	}
}

// Answer never fails. The result always carries the knowledge_base source.
func (k *KnowledgeBase) Answer(ctx context.Context, question string) models.DataSourceResult {
	if k.es != nil {
		answer, err := k.Search(ctx, question)
		switch {
		case err != nil:
			k.logger.Warn("faq search failed", map[string]interface{}{"error": err.Error()})
			metrics.DataTierOutcomes.WithLabelValues(string(models.ResultFAQ), OriginSearchIndex, "failed").Inc()
		case answer == nil:
			metrics.DataTierOutcomes.WithLabelValues(string(models.ResultFAQ), OriginSearchIndex, "empty").Inc()
		default:
			metrics.DataTierOutcomes.WithLabelValues(string(models.ResultFAQ), OriginSearchIndex, "success").Inc()
			return models.DataSourceResult{Type: models.ResultFAQ, Data: answer, Source: models.SourceKnowledgeBase}
		}
	}

	return models.DataSourceResult{
		Type:   models.ResultFAQ,
		Data:   k.fallback.FAQ(question),
		Source: models.SourceKnowledgeBase,
	}
}

// Search returns the best indexed answer, or nil when fewer than MinHits
// documents match.
func (k *KnowledgeBase) Search(ctx context.Context, question string) (*models.FAQAnswer, error) {
	if k.es == nil {
		return nil, nil
	}

	ctx, cancel := context.WithTimeout(ctx, k.config.Timeout)
	defer cancel()

	body, err := json.Marshal(buildQuery(question))
	if err != nil {
		return nil, errors.NewInternalError(err)
	}

	size := 1
	req := esapi.SearchRequest{
		Index: []string{k.config.Index},
		Body:  bytes.NewReader(body),
		Size:  &size,
	}

	res, err := req.Do(ctx, k.es)
	if err != nil {
		if ctx.Err() == context.DeadlineExceeded {
			return nil, errors.NewUpstreamTimeoutError("elasticsearch")
		}
		return nil, errors.NewSearchQueryFailedError(k.config.Index, err)
	}
	defer res.Body.Close()

	if res.IsError() {
		return nil, errors.NewSearchQueryFailedError(k.config.Index, fmt.Errorf("status %s", res.Status()))
	}

	var sr searchResponse
	if err := json.NewDecoder(res.Body).Decode(&sr); err != nil {
		return nil, errors.NewSearchQueryFailedError(k.config.Index, err)
	}

	if sr.Hits.Total.Value < k.config.MinHits || len(sr.Hits.Hits) == 0 {
		return nil, nil
	}

	doc := sr.Hits.Hits[0].Source
	if strings.TrimSpace(doc.Answer) == "" {
		return nil, nil
	}
	return &models.FAQAnswer{
		Question: doc.Question,
		Answer:   doc.Answer,
		Category: doc.Category,
		Origin:   OriginSearchIndex,
	}, nil
}

func buildQuery(question string) map[string]interface{} {
	return map[string]interface{}{
		"query": map[string]interface{}{
			"multi_match": map[string]interface{}{
				"query":  question,
				"fields": []string{"question^3", "keywords^2", "answer"},
				"type":   "best_fields",
			},
		},
	}
}
