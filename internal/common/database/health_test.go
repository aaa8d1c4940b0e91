package database

import (
	"context"
	stderrors "errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"rural-assist/internal/common/config"
	"rural-assist/internal/common/logger"
)

// ==========================
// Test Helper Functions
// ==========================

type flakyPinger struct {
	failures int32
	calls    int32
}

func (f *flakyPinger) Name() string { return "flaky" }

func (f *flakyPinger) Ping(context.Context) error {
	n := atomic.AddInt32(&f.calls, 1)
	if n <= f.failures {
		return stderrors.New("connection refused")
	}
	return nil
}

func fastPolicy(attempts uint64) RetryPolicy {
	return RetryPolicy{Attempts: attempts, Base: time.Millisecond}
}

func newESServer(t *testing.T, status int) *httptest.Server {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-Elastic-Product", "Elasticsearch")
		w.WriteHeader(status)
	}))
	t.Cleanup(srv.Close)
	return srv
}

// ==========================
// WaitReady
// ==========================

func TestWaitReady(t *testing.T) {
	tests := []struct {
		name      string
		failures  int32
		attempts  uint64
		wantErr   bool
		wantCalls int32
	}{
		{"ready at once", 0, 3, false, 1},
		{"ready after retries", 2, 3, false, 3},
		{"never ready", 10, 2, true, 3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := &flakyPinger{failures: tt.failures}

			err := WaitReady(context.Background(), p, fastPolicy(tt.attempts), logger.NewTestLogger(t))

			if tt.wantErr {
				require.Error(t, err)
				assert.Contains(t, err.Error(), "flaky not ready")
			} else {
				require.NoError(t, err)
			}
			assert.Equal(t, tt.wantCalls, atomic.LoadInt32(&p.calls))
		})
	}
}

// ==========================
// Clients
// ==========================

func TestRedisClient_Ping(t *testing.T) {
	mr := miniredis.RunT(t)
	c := NewRedis(config.RedisConfig{Address: mr.Addr()})
	defer c.Close()

	assert.NoError(t, c.Ping(context.Background()))

	mr.Close()
	assert.Error(t, c.Ping(context.Background()))
}

func TestPostgresClient_Ping(t *testing.T) {
	db, mock, err := sqlmock.New(sqlmock.MonitorPingsOption(true))
	require.NoError(t, err)
	c := NewPostgresFromDB(db)
	defer c.Close()

	mock.ExpectPing()
	assert.NoError(t, c.Ping(context.Background()))

	mock.ExpectPing().WillReturnError(stderrors.New("too many clients"))
	err = c.Ping(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "postgres ping failed")
}

func TestElasticsearchClient_Ping(t *testing.T) {
	ok, err := NewElasticsearch(config.ElasticsearchConfig{URL: newESServer(t, http.StatusOK).URL})
	require.NoError(t, err)
	assert.NoError(t, ok.Ping(context.Background()))

	down, err := NewElasticsearch(config.ElasticsearchConfig{Addresses: []string{newESServer(t, http.StatusServiceUnavailable).URL}})
	require.NoError(t, err)
	assert.Error(t, down.Ping(context.Background()))
}

// ==========================
// CheckAll
// ==========================

func TestCheckAll(t *testing.T) {
	mr := miniredis.RunT(t)
	redisOK := NewRedis(config.RedisConfig{Address: mr.Addr()})
	defer redisOK.Close()

	status, healthy := CheckAll(context.Background(), time.Second, redisOK, &flakyPinger{})
	assert.True(t, healthy)
	assert.Equal(t, map[string]string{"redis": "ok", "flaky": "ok"}, status)

	status, healthy = CheckAll(context.Background(), time.Second, redisOK, &flakyPinger{failures: 1})
	assert.False(t, healthy)
	assert.Equal(t, "connection refused", status["flaky"])
	assert.Equal(t, "ok", status["redis"])
}

func TestNames(t *testing.T) {
	mr := miniredis.RunT(t)
	r := NewRedis(config.RedisConfig{Address: mr.Addr()})
	defer r.Close()

	assert.Equal(t, []string{"flaky", "redis"}, Names(r, nil, &flakyPinger{}))
}
