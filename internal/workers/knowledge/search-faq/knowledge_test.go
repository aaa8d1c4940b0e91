package searchfaq

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/elastic/go-elasticsearch/v8"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"rural-assist/internal/common/logger"
	"rural-assist/internal/models"
)

// ==========================
// Test Helper Functions
// ==========================

type staticFAQ struct{}

func (staticFAQ) FAQ(question string) *models.FAQAnswer {
	return &models.FAQAnswer{Question: question, Answer: "static answer", Category: "general", Origin: "fallback"}
}

type fakeES struct {
	srv      *httptest.Server
	requests atomic.Int32
	lastBody atomic.Value
}

func newFakeES(t *testing.T, status int, body string) *fakeES {
	f := &fakeES{}
	f.srv = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		f.requests.Add(1)
		raw, _ := io.ReadAll(r.Body)
		f.lastBody.Store(string(raw))

		w.Header().Set("X-Elastic-Product", "Elasticsearch")
		w.Header().Set("Content-Type", "application/json")
		if !strings.HasSuffix(r.URL.Path, "/faq/_search") {
			w.WriteHeader(http.StatusNotFound)
			_, _ = w.Write([]byte(`{"error":"no such index"}`))
			return
		}
		w.WriteHeader(status)
		_, _ = w.Write([]byte(body))
	}))
	t.Cleanup(f.srv.Close)
	return f
}

func (f *fakeES) client(t *testing.T) *elasticsearch.Client {
	es, err := elasticsearch.NewClient(elasticsearch.Config{Addresses: []string{f.srv.URL}})
	require.NoError(t, err)
	return es
}

const oneHit = `{
	"took": 3,
	"hits": {
		"total": {"value": 1, "relation": "eq"},
		"max_score": 4.2,
		"hits": [{
			"_index": "faq",
			"_score": 4.2,
			"_source": {
				"question": "How do I get a caste certificate?",
				"answer": "Apply at the tehsil office or online through the state e-district portal.",
				"category": "certificates"
			}
		}]
	}
}`

const noHits = `{"took": 1, "hits": {"total": {"value": 0, "relation": "eq"}, "max_score": null, "hits": []}}`

// ==========================
// Search
// ==========================

func TestKnowledgeBase_Answer_FromIndex(t *testing.T) {
	es := newFakeES(t, http.StatusOK, oneHit)
	kb := NewKnowledgeBase(LoadConfig(), es.client(t), staticFAQ{}, logger.NewTestLogger(t))

	result := kb.Answer(context.Background(), "caste certificate kaise banaye")

	assert.Equal(t, models.ResultFAQ, result.Type)
	assert.Equal(t, models.SourceKnowledgeBase, result.Source)
	answer, ok := result.Data.(*models.FAQAnswer)
	require.True(t, ok)
	assert.Equal(t, "certificates", answer.Category)
	assert.Equal(t, OriginSearchIndex, answer.Origin)

	var sent map[string]interface{}
	require.NoError(t, json.Unmarshal([]byte(es.lastBody.Load().(string)), &sent))
	match := sent["query"].(map[string]interface{})["multi_match"].(map[string]interface{})
	assert.Equal(t, "caste certificate kaise banaye", match["query"])
}

func TestKnowledgeBase_Answer_FallsBack(t *testing.T) {
	tests := []struct {
		name   string
		status int
		body   string
	}{
		{"no hits", http.StatusOK, noHits},
		{"server error", http.StatusInternalServerError, `{"error":"boom"}`},
		{"malformed body", http.StatusOK, `{"hits":`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			es := newFakeES(t, tt.status, tt.body)
			kb := NewKnowledgeBase(LoadConfig(), es.client(t), staticFAQ{}, logger.NewTestLogger(t))

			result := kb.Answer(context.Background(), "what is this")

			assert.Equal(t, models.SourceKnowledgeBase, result.Source)
			answer := result.Data.(*models.FAQAnswer)
			assert.Equal(t, "static answer", answer.Answer)
			assert.Equal(t, int32(1), es.requests.Load())
		})
	}
}

func TestKnowledgeBase_Answer_WithoutIndex(t *testing.T) {
	kb := NewKnowledgeBase(LoadConfig(), nil, staticFAQ{}, logger.NewTestLogger(t))

	result := kb.Answer(context.Background(), "anything")

	assert.Equal(t, models.SourceKnowledgeBase, result.Source)
	assert.Equal(t, "static answer", result.Data.(*models.FAQAnswer).Answer)
}

func TestKnowledgeBase_Search_MinHits(t *testing.T) {
	es := newFakeES(t, http.StatusOK, oneHit)
	cfg := LoadConfig()
	cfg.MinHits = 2
	kb := NewKnowledgeBase(cfg, es.client(t), staticFAQ{}, logger.NewTestLogger(t))

	answer, err := kb.Search(context.Background(), "caste certificate")

	require.NoError(t, err)
	assert.Nil(t, answer)
}

func TestKnowledgeBase_Search_Error(t *testing.T) {
	es := newFakeES(t, http.StatusBadRequest, `{"error":"bad query"}`)
	kb := NewKnowledgeBase(LoadConfig(), es.client(t), staticFAQ{}, logger.NewTestLogger(t))

	_, err := kb.Search(context.Background(), "x")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "SEARCH_QUERY_FAILED")
}

// ==========================
// Handler
// ==========================

func TestHandler_Execute(t *testing.T) {
	h := NewHandler(LoadConfig(), nil, staticFAQ{}, logger.NewTestLogger(t))

	out, err := h.Execute(context.Background(), &Input{Question: "How to apply for ration card?"})
	require.NoError(t, err)
	assert.Equal(t, models.ResultFAQ, out.Result.Type)

	_, err = h.Execute(context.Background(), &Input{Question: "  "})
	assert.Error(t, err)
}
