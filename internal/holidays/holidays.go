package holidays

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"sort"
	"strconv"
	"strings"
	"time"

	"diligencias/internal/cache"
	"diligencias/internal/domain"
	"diligencias/internal/schedule"

	"go.uber.org/zap"
)

const cacheTTL = 24 * time.Hour

// Provider merges national holidays from BrasilAPI with the configured state
// holidays. National holidays are cached per year; a failing source yields
// only the state holidays.
type Provider struct {
	endpoint   string
	httpClient *http.Client
	cache      cache.Cache
	state      []domain.Holiday
	log        *zap.Logger
}

// NewProvider takes state holidays dated "MM-DD".
func NewProvider(endpoint string, state []domain.Holiday, c cache.Cache, timeout time.Duration, log *zap.Logger) *Provider {
	if c == nil {
		c = cache.NewNoop()
	}
	return &Provider{
		endpoint:   strings.TrimRight(endpoint, "/"),
		httpClient: &http.Client{Timeout: timeout},
		cache:      c,
		state:      state,
		log:        log,
	}
}

// Year lists the holidays of a calendar year sorted by date.
func (p *Provider) Year(ctx context.Context, year int) []domain.Holiday {
	national, err := p.national(ctx, year)
	if err != nil {
		p.log.Warn("holiday source unavailable", zap.Int("year", year), zap.Error(err))
		national = nil
	}

	out := make([]domain.Holiday, 0, len(national)+len(p.state))
	out = append(out, national...)
	for _, h := range p.state {
		out = append(out, domain.Holiday{
			Date: fmt.Sprintf("%04d-%s", year, h.Date),
			Name: h.Name,
			Type: domain.HolidayState,
		})
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Date < out[j].Date })
	return out
}

// Between lists the holidays falling in from..to inclusive.
func (p *Provider) Between(ctx context.Context, from, to string) ([]domain.Holiday, error) {
	years, err := schedule.YearsBetween(from, to)
	if err != nil {
		return nil, err
	}
	out := make([]domain.Holiday, 0)
	for _, y := range years {
		for _, h := range p.Year(ctx, y) {
			if h.Date >= from && h.Date <= to {
				out = append(out, h)
			}
		}
	}
	return out, nil
}

// On returns the holiday on date, or nil.
func (p *Provider) On(ctx context.Context, date string) (*domain.Holiday, error) {
	year, err := strconv.Atoi(date[:min(4, len(date))])
	if err != nil || !schedule.ValidDate(date) {
		return nil, schedule.ErrInvalidDate
	}
	for _, h := range p.Year(ctx, year) {
		if h.Date == date {
			return &h, nil
		}
	}
	return nil, nil
}

func (p *Provider) national(ctx context.Context, year int) ([]domain.Holiday, error) {
	key := "holidays:" + strconv.Itoa(year)
	if raw, ok, err := p.cache.Get(ctx, key); err == nil && ok {
		var cached []domain.Holiday
		if err := json.Unmarshal(raw, &cached); err == nil {
			return cached, nil
		}
	} else if err != nil {
		p.log.Warn("holiday cache read failed", zap.String("key", key), zap.Error(err))
	}

	list, err := p.fetch(ctx, year)
	if err != nil {
		return nil, err
	}

	if raw, err := json.Marshal(list); err == nil {
		if err := p.cache.Set(ctx, key, raw, cacheTTL); err != nil {
			p.log.Warn("holiday cache write failed", zap.String("key", key), zap.Error(err))
		}
	}
	return list, nil
}

type brasilAPIHoliday struct {
	Date string `json:"date"`
	Name string `json:"name"`
	Type string `json:"type"`
}

func (p *Provider) fetch(ctx context.Context, year int) ([]domain.Holiday, error) {
	url := fmt.Sprintf("%s/%d", p.endpoint, year)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("holidays create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := p.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("holidays request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		return nil, fmt.Errorf("holidays fetch failed: status=%d body=%s", resp.StatusCode, strings.TrimSpace(string(body)))
	}

	var raw []brasilAPIHoliday
	if err := json.NewDecoder(resp.Body).Decode(&raw); err != nil {
		return nil, fmt.Errorf("holidays decode response: %w", err)
	}

	out := make([]domain.Holiday, 0, len(raw))
	for _, h := range raw {
		if !schedule.ValidDate(h.Date) {
			continue
		}
		out = append(out, domain.Holiday{Date: h.Date, Name: h.Name, Type: domain.HolidayNational})
	}
	return out, nil
}
