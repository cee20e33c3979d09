package storage

import (
	"context"
	"fmt"
	"net/url"
	"strconv"
	"strings"
	"time"

	sonic "github.com/bytedance/sonic"
	crerr "github.com/cockroachdb/errors"
	"github.com/hjwoodall/prediction-league/internal/domain/submission"
	"github.com/hjwoodall/prediction-league/internal/platform/logging"
	"github.com/hjwoodall/prediction-league/internal/platform/resilience"
	"github.com/valyala/bytebufferpool"
	"github.com/valyala/fasthttp"
)

var errStorageTransient = crerr.New("submission storage transient failure")

// ClientConfig configures the remote raw-submission store client.
type ClientConfig struct {
	BaseURL        string
	Token          string
	Timeout        time.Duration
	MaxRetries     int
	Logger         *logging.Logger
	CircuitBreaker resilience.CircuitBreakerConfig
}

// Client reads raw submission blobs from the remote text store. The store
// is read-only from the pipeline's perspective: one JSON index per
// season/gameweek plus one blob per submission.
type Client struct {
	http           *fasthttp.Client
	baseURL        string
	token          string
	timeout        time.Duration
	maxRetries     int
	logger         *logging.Logger
	breaker        *resilience.CircuitBreaker
	circuitEnabled bool
}

func NewClient(cfg ClientConfig) *Client {
	logger := cfg.Logger
	if logger == nil {
		logger = logging.Default()
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 15 * time.Second
	}
	if cfg.MaxRetries < 0 {
		cfg.MaxRetries = 0
	}
	breakerCfg := resilience.NormalizeCircuitBreakerConfig(cfg.CircuitBreaker)

	return &Client{
		http: &fasthttp.Client{
			ReadTimeout:  timeout,
			WriteTimeout: timeout,
		},
		baseURL:        strings.TrimRight(strings.TrimSpace(cfg.BaseURL), "/"),
		token:          strings.TrimSpace(cfg.Token),
		timeout:        timeout,
		maxRetries:     cfg.MaxRetries,
		logger:         logger,
		breaker:        resilience.NewCircuitBreaker(breakerCfg.FailureThreshold, breakerCfg.OpenTimeout, breakerCfg.HalfOpenMaxReq),
		circuitEnabled: breakerCfg.Enabled,
	}
}

type indexEntry struct {
	Name         string    `json:"name"`
	LastModified time.Time `json:"last_modified"`
	Size         int64     `json:"size"`
}

func (c *Client) List(ctx context.Context, season string, gameweek int) ([]submission.Descriptor, error) {
	body, err := c.get(ctx, c.indexURI(season, gameweek))
	if err != nil {
		return nil, err
	}

	var entries []indexEntry
	if err := sonic.Unmarshal(body, &entries); err != nil {
		return nil, fmt.Errorf("decode submission index: %w", err)
	}

	out := make([]submission.Descriptor, 0, len(entries))
	for _, entry := range entries {
		if strings.TrimSpace(entry.Name) == "" {
			continue
		}
		out = append(out, submission.Descriptor{
			Name:         entry.Name,
			LastModified: entry.LastModified,
			Size:         entry.Size,
		})
	}
	return out, nil
}

func (c *Client) Download(ctx context.Context, name string) ([]byte, error) {
	if strings.TrimSpace(name) == "" {
		return nil, fmt.Errorf("blob name is required")
	}

	return c.get(ctx, c.blobURI(name))
}

// indexURI and blobURI assemble request URIs in a pooled buffer; every List
// plus per-submission Download in a run goes through here.
func (c *Client) indexURI(season string, gameweek int) string {
	buf := bytebufferpool.Get()
	defer bytebufferpool.Put(buf)

	buf.WriteString(c.baseURL)
	buf.WriteString("/index.json?season=")
	buf.WriteString(url.QueryEscape(season))
	buf.WriteString("&gameweek=")
	buf.B = strconv.AppendInt(buf.B, int64(gameweek), 10)

	return buf.String()
}

func (c *Client) blobURI(name string) string {
	buf := bytebufferpool.Get()
	defer bytebufferpool.Put(buf)

	buf.WriteString(c.baseURL)
	buf.WriteString("/blobs")
	for _, segment := range strings.Split(name, "/") {
		buf.WriteString("/")
		buf.WriteString(url.PathEscape(segment))
	}

	return buf.String()
}

func (c *Client) get(ctx context.Context, uri string) ([]byte, error) {
	if c.circuitEnabled {
		if err := c.breaker.Allow(); err != nil {
			c.logger.WarnContext(ctx, "storage circuit breaker rejected request", "state", c.breaker.State())
			return nil, fmt.Errorf("submission storage is temporarily unavailable: %w", err)
		}
	}

	var lastErr error
	for attempt := 0; attempt <= c.maxRetries; attempt++ {
		if err := ctx.Err(); err != nil {
			c.recordFailure()
			return nil, err
		}
		if attempt > 0 {
			backoff := time.Duration(attempt) * 500 * time.Millisecond
			select {
			case <-ctx.Done():
				c.recordFailure()
				return nil, ctx.Err()
			case <-time.After(backoff):
			}
		}

		body, err := c.doGet(uri)
		if err == nil {
			c.recordSuccess()
			return body, nil
		}

		lastErr = err
		if !crerr.Is(err, errStorageTransient) {
			c.recordFailure()
			return nil, err
		}
		c.logger.WarnContext(ctx, "storage request failed, retrying",
			"attempt", attempt+1,
			"error", err,
		)
	}

	c.recordFailure()
	return nil, fmt.Errorf("storage request exhausted retries: %w", lastErr)
}

func (c *Client) doGet(uri string) ([]byte, error) {
	req := fasthttp.AcquireRequest()
	resp := fasthttp.AcquireResponse()
	defer fasthttp.ReleaseRequest(req)
	defer fasthttp.ReleaseResponse(resp)

	req.SetRequestURI(uri)
	req.Header.SetMethod(fasthttp.MethodGet)
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	if err := c.http.DoTimeout(req, resp, c.timeout); err != nil {
		return nil, crerr.Mark(fmt.Errorf("storage request: %w", err), errStorageTransient)
	}

	status := resp.StatusCode()
	switch {
	case status == fasthttp.StatusOK:
		// resp.Body() is only valid until release; copy it out.
		return append([]byte(nil), resp.Body()...), nil
	case status == fasthttp.StatusNotFound:
		return nil, fmt.Errorf("storage object not found: %s", uri)
	case status >= 500 || status == fasthttp.StatusTooManyRequests:
		return nil, crerr.Mark(fmt.Errorf("storage returned status %d", status), errStorageTransient)
	default:
		return nil, fmt.Errorf("storage returned status %d", status)
	}
}

func (c *Client) recordSuccess() {
	if c.circuitEnabled {
		c.breaker.RecordSuccess()
	}
}

func (c *Client) recordFailure() {
	if c.circuitEnabled {
		c.breaker.RecordFailure()
	}
}
