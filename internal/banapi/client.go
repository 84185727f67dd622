package banapi

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/cenkalti/backoff/v4"
	"go.uber.org/zap"
)

var (
	// ErrNotFound means the service answered but holds no data for the player.
	ErrNotFound = errors.New("ban lookup: player not found")
	// ErrUnavailable means every attempt failed with a transient error.
	ErrUnavailable = errors.New("ban lookup: service unavailable")
	// ErrMalformed means the response body is not a JSON object.
	ErrMalformed = errors.New("ban lookup: malformed response")
)

const maxBodyBytes = 1 << 20

type Result struct {
	Banned       bool
	Nickname     string
	PeriodMonths int
	// PeriodKnown is false when the service reported a non-integer period.
	PeriodKnown bool
	Region      string
}

//go:generate mockgen -source=client.go -destination=mocks/mock_lookuper.go -package=mocks Lookuper
type Lookuper interface {
	Lookup(ctx context.Context, playerID string) (Result, error)
}

type Options struct {
	BaseURL    string
	Timeout    time.Duration
	Attempts   int
	RetryDelay time.Duration
	HTTPClient *http.Client
}

type Client struct {
	baseURL  string
	timeout  time.Duration
	attempts int
	delay    time.Duration
	http     *http.Client
	logger   *zap.Logger
}

func New(opts Options, logger *zap.Logger) *Client {
	if opts.Timeout <= 0 {
		opts.Timeout = 10 * time.Second
	}
	if opts.Attempts <= 0 {
		opts.Attempts = 1
	}
	if opts.RetryDelay < 0 {
		opts.RetryDelay = 0
	}
	if opts.HTTPClient == nil {
		opts.HTTPClient = &http.Client{}
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Client{
		baseURL:  strings.TrimRight(opts.BaseURL, "/"),
		timeout:  opts.Timeout,
		attempts: opts.Attempts,
		delay:    opts.RetryDelay,
		http:     opts.HTTPClient,
		logger:   logger,
	}
}

// Lookup queries the ban status of playerID. The caller validates that the
// identifier is numeric. Transient failures are retried with a fixed delay;
// ErrNotFound and ErrMalformed are returned immediately.
func (c *Client) Lookup(ctx context.Context, playerID string) (Result, error) {
	endpoint := c.baseURL + "/check_ban/check_ban/" + url.PathEscape(playerID)

	var (
		result  Result
		attempt int
	)
	operation := func() error {
		attempt++
		res, err := c.fetch(ctx, endpoint)
		if err != nil {
			if errors.Is(err, ErrNotFound) || errors.Is(err, ErrMalformed) {
				return backoff.Permanent(err)
			}
			return err
		}
		result = res
		return nil
	}

	policy := backoff.WithContext(
		backoff.WithMaxRetries(backoff.NewConstantBackOff(c.delay), uint64(c.attempts-1)),
		ctx,
	)
	notify := func(err error, wait time.Duration) {
		c.logger.Warn("ban lookup attempt failed",
			zap.String("player_id", playerID),
			zap.Int("attempt", attempt),
			zap.Int("max_attempts", c.attempts),
			zap.Duration("retry_in", wait),
			zap.Error(err),
		)
	}

	err := backoff.RetryNotify(operation, policy, notify)
	switch {
	case err == nil:
		return result, nil
	case errors.Is(err, ErrNotFound), errors.Is(err, ErrMalformed):
		return Result{}, err
	default:
		c.logger.Error("ban lookup gave up",
			zap.String("player_id", playerID),
			zap.Int("attempts", attempt),
			zap.Error(err),
		)
		return Result{}, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
}

func (c *Client) fetch(ctx context.Context, endpoint string) (Result, error) {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return Result{}, err
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return Result{}, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return Result{}, err
	}
	if resp.StatusCode != http.StatusOK {
		return Result{}, fmt.Errorf("unexpected http status %d", resp.StatusCode)
	}
	return parse(body)
}

type envelope struct {
	Status json.RawMessage `json:"status"`
	Data   json.RawMessage `json:"data"`
}

func parse(body []byte) (Result, error) {
	var env envelope
	if err := json.Unmarshal(body, &env); err != nil {
		return Result{}, fmt.Errorf("%w: %v", ErrMalformed, err)
	}
	if !isStatusOK(env.Status) {
		return Result{}, ErrNotFound
	}
	var data map[string]json.RawMessage
	if err := json.Unmarshal(env.Data, &data); err != nil || len(data) == 0 {
		return Result{}, ErrNotFound
	}

	result := Result{
		Banned:      truthy(data["is_banned"]),
		Nickname:    text(data["nickname"]),
		Region:      text(data["region"]),
		PeriodKnown: true,
	}
	if raw, ok := data["period"]; ok {
		result.PeriodMonths, result.PeriodKnown = integer(raw)
	}
	return result, nil
}

// isStatusOK reports whether status is the JSON number 200, in any
// numeric spelling. Strings and booleans never match.
func isStatusOK(raw json.RawMessage) bool {
	var n json.Number
	if err := json.Unmarshal(raw, &n); err != nil || strings.HasPrefix(strings.TrimSpace(string(raw)), `"`) {
		return false
	}
	f, err := n.Float64()
	return err == nil && f == http.StatusOK
}

// integer accepts JSON integers only, so 6 parses but 6.5, "6" and null do not.
func integer(raw json.RawMessage) (int, bool) {
	s := strings.TrimSpace(string(raw))
	if s == "" {
		return 0, false
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, false
	}
	return n, true
}

func truthy(raw json.RawMessage) bool {
	s := strings.TrimSpace(string(raw))
	switch s {
	case "", "null", "false", "0", `"0"`, `""`:
		return false
	case "true":
		return true
	}
	if unquoted, err := strconv.Unquote(s); err == nil {
		s = unquoted
	}
	if n, err := strconv.ParseFloat(s, 64); err == nil {
		return n != 0
	}
	return strings.EqualFold(s, "true")
}

func text(raw json.RawMessage) string {
	if len(raw) == 0 {
		return ""
	}
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return s
	}
	if strings.TrimSpace(string(raw)) == "null" {
		return ""
	}
	return strings.TrimSpace(string(raw))
}
