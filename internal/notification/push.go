package notification

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"go.uber.org/zap"
)

const (
	expoChunkSize = 100
	expoChannelID = "diligencias"
)

// Push is a message for every registered device.
type Push struct {
	Title string
	Body  string
	Data  map[string]any
}

// TokenStore holds the registered Expo push tokens.
type TokenStore interface {
	ListTokens(ctx context.Context) ([]string, error)
	Delete(ctx context.Context, tokens ...string) error
}

// ExpoPusher sends push notifications through the Expo push API and prunes
// tokens Expo reports as no longer registered.
type ExpoPusher struct {
	endpoint   string
	tokens     TokenStore
	httpClient *http.Client
	log        *zap.Logger
}

func NewExpoPusher(endpoint string, tokens TokenStore, timeout time.Duration, log *zap.Logger) *ExpoPusher {
	return &ExpoPusher{
		endpoint:   endpoint,
		tokens:     tokens,
		httpClient: &http.Client{Timeout: timeout},
		log:        log,
	}
}

type expoMessage struct {
	To        string         `json:"to"`
	Title     string         `json:"title"`
	Body      string         `json:"body"`
	Data      map[string]any `json:"data,omitempty"`
	Sound     string         `json:"sound"`
	Priority  string         `json:"priority"`
	ChannelID string         `json:"channelId"`
}

type expoTicket struct {
	Status  string `json:"status"`
	Message string `json:"message"`
	Details struct {
		Error string `json:"error"`
	} `json:"details"`
}

type expoResponse struct {
	Data []expoTicket `json:"data"`
}

func (p *ExpoPusher) Push(ctx context.Context, msg Push) error {
	tokens, err := p.tokens.ListTokens(ctx)
	if err != nil {
		return fmt.Errorf("list push tokens: %w", err)
	}
	if len(tokens) == 0 {
		return nil
	}

	var (
		stale []string
		errs  []error
	)
	for start := 0; start < len(tokens); start += expoChunkSize {
		end := min(start+expoChunkSize, len(tokens))
		chunk := tokens[start:end]

		dead, err := p.sendChunk(ctx, chunk, msg)
		if err != nil {
			errs = append(errs, err)
			continue
		}
		stale = append(stale, dead...)
	}

	if len(stale) > 0 {
		if err := p.tokens.Delete(ctx, stale...); err != nil {
			errs = append(errs, fmt.Errorf("delete stale tokens: %w", err))
		} else {
			p.log.Info("removed unregistered push tokens", zap.Int("count", len(stale)))
		}
	}
	return errors.Join(errs...)
}

// sendChunk returns the tokens Expo rejected as DeviceNotRegistered.
func (p *ExpoPusher) sendChunk(ctx context.Context, tokens []string, msg Push) ([]string, error) {
	batch := make([]expoMessage, len(tokens))
	for i, t := range tokens {
		batch[i] = expoMessage{
			To:        t,
			Title:     msg.Title,
			Body:      msg.Body,
			Data:      msg.Data,
			Sound:     "default",
			Priority:  "high",
			ChannelID: expoChannelID,
		}
	}

	raw, err := json.Marshal(batch)
	if err != nil {
		return nil, fmt.Errorf("expo marshal payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, p.endpoint, bytes.NewReader(raw))
	if err != nil {
		return nil, fmt.Errorf("expo create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("Content-Type", "application/json")

	resp, err := p.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("expo request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return nil, fmt.Errorf("expo send failed: status=%d body=%s", resp.StatusCode, strings.TrimSpace(string(body)))
	}

	var out expoResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, fmt.Errorf("expo decode response: %w", err)
	}

	stale := make([]string, 0)
	for i, ticket := range out.Data {
		if i >= len(tokens) {
			break
		}
		if ticket.Status == "error" {
			if ticket.Details.Error == "DeviceNotRegistered" {
				stale = append(stale, tokens[i])
				continue
			}
			p.log.Warn("expo rejected push", zap.String("error", ticket.Details.Error), zap.String("message", ticket.Message))
		}
	}
	return stale, nil
}
