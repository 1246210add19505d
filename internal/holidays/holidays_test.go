package holidays

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"diligencias/internal/cache"
	"diligencias/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

var santaCatarina = []domain.Holiday{{Date: "08-11", Name: "Dia de Santa Catarina", Type: domain.HolidayState}}

func brasilAPI(t *testing.T, hits *int32) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(hits, 1)
		w.Header().Set("Content-Type", "application/json")
		switch r.URL.Path {
		case "/2024":
			_, _ = w.Write([]byte(`[
				{"date":"2024-01-01","name":"Confraternização mundial","type":"national"},
				{"date":"2024-09-07","name":"Independência do Brasil","type":"national"}
			]`))
		case "/2025":
			_, _ = w.Write([]byte(`[{"date":"2025-01-01","name":"Confraternização mundial","type":"national"}]`))
		default:
			w.WriteHeader(http.StatusInternalServerError)
		}
	}))
	t.Cleanup(srv.Close)
	return srv
}

func TestProvider_YearMergesStateHolidays(t *testing.T) {
	var hits int32
	srv := brasilAPI(t, &hits)
	p := NewProvider(srv.URL+"/", santaCatarina, cache.NewMemory(), time.Second, zap.NewNop())

	list := p.Year(context.Background(), 2024)
	require.Len(t, list, 3)
	assert.Equal(t, "2024-01-01", list[0].Date)
	assert.Equal(t, domain.Holiday{Date: "2024-08-11", Name: "Dia de Santa Catarina", Type: domain.HolidayState}, list[1])
	assert.Equal(t, domain.HolidayNational, list[2].Type)

	// second call is served from the cache
	p.Year(context.Background(), 2024)
	assert.Equal(t, int32(1), atomic.LoadInt32(&hits))
}

func TestProvider_SourceFailureFallsBackToState(t *testing.T) {
	var hits int32
	srv := brasilAPI(t, &hits)
	p := NewProvider(srv.URL, santaCatarina, cache.NewMemory(), time.Second, zap.NewNop())

	list := p.Year(context.Background(), 2030)
	require.Len(t, list, 1)
	assert.Equal(t, "2030-08-11", list[0].Date)

	// failures are not cached
	p.Year(context.Background(), 2030)
	assert.Equal(t, int32(2), atomic.LoadInt32(&hits))
}

func TestProvider_BetweenSpansYears(t *testing.T) {
	var hits int32
	srv := brasilAPI(t, &hits)
	p := NewProvider(srv.URL, santaCatarina, nil, time.Second, zap.NewNop())

	list, err := p.Between(context.Background(), "2024-12-29", "2025-02-01")
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "2025-01-01", list[0].Date)
}

func TestProvider_On(t *testing.T) {
	var hits int32
	srv := brasilAPI(t, &hits)
	p := NewProvider(srv.URL, santaCatarina, nil, time.Second, zap.NewNop())

	h, err := p.On(context.Background(), "2024-09-07")
	require.NoError(t, err)
	require.NotNil(t, h)
	assert.Equal(t, "Independência do Brasil", h.Name)

	h, err = p.On(context.Background(), "2024-09-06")
	require.NoError(t, err)
	assert.Nil(t, h)

	_, err = p.On(context.Background(), "junk")
	assert.Error(t, err)
}
