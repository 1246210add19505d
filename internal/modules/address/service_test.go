package address

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"diligencias/internal/cache"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newViaCEP(t *testing.T, hits *int32) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(hits, 1)
		w.Header().Set("Content-Type", "application/json")
		switch r.URL.Path {
		case "/88010000/json/":
			_, _ = w.Write([]byte(`{"cep":"88010-000","logradouro":"Rua Felipe Schmidt","complemento":"","bairro":"Centro","localidade":"Florianópolis","uf":"SC"}`))
		case "/99999999/json/":
			_, _ = w.Write([]byte(`{"erro": "true"}`))
		case "/11111111/json/":
			w.WriteHeader(http.StatusServiceUnavailable)
		default:
			w.WriteHeader(http.StatusBadRequest)
		}
	}))
	t.Cleanup(srv.Close)
	return srv
}

func TestService_Lookup(t *testing.T) {
	var hits int32
	srv := newViaCEP(t, &hits)
	svc := NewService(srv.URL, cache.NewMemory(), time.Second, zap.NewNop())
	ctx := context.Background()

	a, err := svc.Lookup(ctx, "88010-000")
	require.NoError(t, err)
	assert.Equal(t, "88010-000", a.CEP)
	assert.Equal(t, "Rua Felipe Schmidt", a.Street)
	assert.Equal(t, "Florianópolis", a.City)
	assert.Equal(t, "SC", a.State)

	_, err = svc.Lookup(ctx, "88010000")
	require.NoError(t, err)
	assert.Equal(t, int32(1), atomic.LoadInt32(&hits))

	_, err = svc.Lookup(ctx, "99999-999")
	assert.ErrorIs(t, err, ErrCEPNotFound)

	_, err = svc.Lookup(ctx, "11111-111")
	assert.ErrorIs(t, err, ErrUpstream)

	_, err = svc.Lookup(ctx, "8801")
	assert.ErrorIs(t, err, ErrInvalidCEP)
	_, err = svc.Lookup(ctx, "88010-00a")
	assert.ErrorIs(t, err, ErrInvalidCEP)
}

func TestHandler_Lookup(t *testing.T) {
	gin.SetMode(gin.TestMode)
	var hits int32
	srv := newViaCEP(t, &hits)
	router := gin.New()
	NewHandler(NewService(srv.URL, nil, time.Second, zap.NewNop())).RegisterRoutes(router.Group("/api/v1"))

	cases := map[string]int{
		"/api/v1/cep/88010-000": http.StatusOK,
		"/api/v1/cep/99999999":  http.StatusNotFound,
		"/api/v1/cep/11111111":  http.StatusBadGateway,
		"/api/v1/cep/123":       http.StatusBadRequest,
	}
	for path, want := range cases {
		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, path, nil))
		assert.Equal(t, want, w.Code, path)
	}
}
