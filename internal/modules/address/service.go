package address

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"diligencias/internal/cache"

	"go.uber.org/zap"
)

const cacheTTL = 7 * 24 * time.Hour

// Service resolves a CEP into street, district, city and state via ViaCEP.
// Successful lookups are cached; addresses rarely move.
type Service struct {
	endpoint   string
	httpClient *http.Client
	cache      cache.Cache
	log        *zap.Logger
}

func NewService(endpoint string, c cache.Cache, timeout time.Duration, log *zap.Logger) *Service {
	if c == nil {
		c = cache.NewNoop()
	}
	return &Service{
		endpoint:   strings.TrimRight(endpoint, "/"),
		httpClient: &http.Client{Timeout: timeout},
		cache:      c,
		log:        log,
	}
}

func (s *Service) Lookup(ctx context.Context, raw string) (*Address, error) {
	digits := onlyDigits(raw)
	if len(digits) != 8 {
		return nil, ErrInvalidCEP
	}

	key := "cep:" + digits
	if cached, ok, err := s.cache.Get(ctx, key); err == nil && ok {
		var a Address
		if err := json.Unmarshal(cached, &a); err == nil {
			return &a, nil
		}
	}

	a, err := s.fetch(ctx, digits)
	if err != nil {
		if !errors.Is(err, ErrCEPNotFound) {
			s.log.Warn("viacep lookup failed", zap.String("cep", digits), zap.Error(err))
		}
		return nil, err
	}

	if b, err := json.Marshal(a); err == nil {
		if err := s.cache.Set(ctx, key, b, cacheTTL); err != nil {
			s.log.Warn("cep cache write failed", zap.String("key", key), zap.Error(err))
		}
	}
	return a, nil
}

func (s *Service) fetch(ctx context.Context, digits string) (*Address, error) {
	url := fmt.Sprintf("%s/%s/json/", s.endpoint, digits)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("viacep create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUpstream, err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusBadRequest || resp.StatusCode == http.StatusNotFound:
		return nil, ErrCEPNotFound
	case resp.StatusCode != http.StatusOK:
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		return nil, fmt.Errorf("%w: status=%d body=%s", ErrUpstream, resp.StatusCode, strings.TrimSpace(string(body)))
	}

	var out viaCEPResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, fmt.Errorf("%w: decode: %v", ErrUpstream, err)
	}
	// ViaCEP answers 200 with {"erro": true} (older versions "true") for unknown codes
	if out.Erro != nil && out.Erro != false {
		return nil, ErrCEPNotFound
	}

	return &Address{
		CEP:        digits[:5] + "-" + digits[5:],
		Street:     out.Logradouro,
		Complement: out.Complemento,
		District:   out.Bairro,
		City:       out.Localidade,
		State:      strings.ToUpper(out.UF),
	}, nil
}

func onlyDigits(s string) string {
	var b strings.Builder
	for _, r := range s {
		switch {
		case r >= '0' && r <= '9':
			b.WriteRune(r)
		case r == '-' || r == '.' || r == ' ':
		default:
			return ""
		}
	}
	return b.String()
}
