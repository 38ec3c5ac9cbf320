// Package spiderfoot provides a client for the SpiderFoot scan engine's
// HTTP API: starting scans, polling status, and pulling raw events for
// the analysis pipeline.
package spiderfoot

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"
	"golang.org/x/time/rate"

	"github.com/osintment/osintment/pkg/defaults"
	"github.com/osintment/osintment/pkg/duration"
	"github.com/osintment/osintment/pkg/finding"
	"github.com/osintment/osintment/pkg/httpclient"
	"github.com/osintment/osintment/pkg/iohelper"
	"github.com/osintment/osintment/pkg/jsonutil"
)

var (
	// ErrScanFailed indicates the engine reported the scan as errored
	// or aborted.
	ErrScanFailed = errors.New("spiderfoot: scan failed")

	// ErrEmptyResponse indicates the engine returned a response with
	// no usable payload.
	ErrEmptyResponse = errors.New("spiderfoot: empty response")
)

// Status is the engine-reported scan state.
type Status string

const (
	StatusCreated  Status = "CREATED"
	StatusStarting Status = "STARTING"
	StatusRunning  Status = "RUNNING"
	StatusFinished Status = "FINISHED"
	StatusAborted  Status = "ABORTED"
	StatusErrored  Status = "ERROR-FAILED"
)

// Terminal reports whether the scan has stopped, successfully or not.
func (s Status) Terminal() bool {
	str := string(s)
	return strings.Contains(str, "FINISHED") ||
		strings.Contains(str, "ABORTED") ||
		strings.Contains(str, "ERROR")
}

// Succeeded reports whether the scan finished cleanly.
func (s Status) Succeeded() bool {
	return strings.Contains(string(s), "FINISHED")
}

// ScanInfo describes one scan known to the engine.
type ScanInfo struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Target   string `json:"target"`
	Status   Status `json:"status"`
	Started  string `json:"started,omitempty"`
	Finished string `json:"finished,omitempty"`
}

// LogEntry is one engine-side log line for a scan.
type LogEntry struct {
	Generated string `json:"generated"`
	Component string `json:"component"`
	Type      string `json:"type"`
	Message   string `json:"message"`
}

// ModuleInfo describes one engine module.
type ModuleInfo struct {
	Description string `json:"descr"`
	Type        string `json:"type"`
}

// Config configures a Client.
type Config struct {
	// BaseURL is the engine root, e.g. "http://127.0.0.1:5001".
	BaseURL string

	// APIKey enables bearer authentication when non-empty.
	APIKey string

	// Timeout is the per-request timeout (default duration.HTTPAPI).
	Timeout time.Duration

	// RequestsPerMinute throttles API calls (default 60).
	RequestsPerMinute int

	// Logger receives request diagnostics. Nil means slog.Default().
	Logger *slog.Logger
}

// Client talks to one SpiderFoot engine instance. Safe for concurrent
// use.
type Client struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
	limiter    *rate.Limiter
	logger     *slog.Logger
}

// NewClient validates the configuration and creates a client.
func NewClient(cfg Config) (*Client, error) {
	base := strings.TrimRight(cfg.BaseURL, "/")
	u, err := url.Parse(base)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return nil, fmt.Errorf("spiderfoot: invalid base URL %q", cfg.BaseURL)
	}

	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = duration.HTTPAPI
	}
	rpm := cfg.RequestsPerMinute
	if rpm <= 0 {
		rpm = 60
	}
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	return &Client{
		baseURL:    base,
		apiKey:     cfg.APIKey,
		httpClient: httpclient.New(httpclient.Config{Timeout: timeout}),
		limiter:    rate.NewLimiter(rate.Every(time.Minute/time.Duration(rpm)), rpm),
		logger:     logger,
	}, nil
}

// StartScanRequest describes a new scan.
type StartScanRequest struct {
	// Target is the scan subject: a domain, IP, netblock or email.
	Target string

	// Name labels the scan; empty derives one from the target and
	// the current time.
	Name string

	// Modules restricts the scan to specific engine modules. Nil
	// means every module the engine offers, filtered by TypeFilter.
	Modules []string

	// TypeFilter selects a module class ("all", "passive"). Empty
	// means "all".
	TypeFilter string
}

// StartScan creates a new scan and returns the engine-assigned scan ID.
func (c *Client) StartScan(ctx context.Context, req StartScanRequest) (string, error) {
	if req.Target == "" {
		return "", errors.New("spiderfoot: empty scan target")
	}

	name := req.Name
	if name == "" {
		name = fmt.Sprintf("Scan_%s_%s", req.Target, time.Now().Format("20060102_150405"))
	}
	typeFilter := req.TypeFilter
	if typeFilter == "" {
		typeFilter = "all"
	}

	modules := req.Modules
	if modules == nil {
		all, err := c.Modules(ctx)
		if err != nil {
			return "", fmt.Errorf("spiderfoot: list modules: %w", err)
		}
		for mod, info := range all {
			if typeFilter == "passive" && info.Type != "passive" {
				continue
			}
			modules = append(modules, mod)
		}
	}

	form := url.Values{
		"scanname":   {name},
		"scantarget": {req.Target},
		"modulelist": {strings.Join(modules, ",")},
		"typelist":   {typeFilter},
	}

	body, err := c.post(ctx, form)
	if err != nil {
		return "", err
	}

	// The engine answers with a JSON array whose first element is the
	// scan ID.
	var reply []string
	if err := jsonutil.Unmarshal(body, &reply); err != nil {
		return "", fmt.Errorf("spiderfoot: decode start reply: %w", err)
	}
	if len(reply) == 0 || reply[0] == "" {
		return "", ErrEmptyResponse
	}

	c.logger.Info("scan started", "scan_id", reply[0], "target", req.Target)
	return reply[0], nil
}

// ScanStatus fetches the current state of a scan.
func (c *Client) ScanStatus(ctx context.Context, scanID string) (ScanInfo, error) {
	body, err := c.get(ctx, url.Values{"q": {"scanstatus"}, "id": {scanID}})
	if err != nil {
		return ScanInfo{}, err
	}

	var infos []ScanInfo
	if err := jsonutil.Unmarshal(body, &infos); err != nil {
		return ScanInfo{}, fmt.Errorf("spiderfoot: decode status: %w", err)
	}
	if len(infos) == 0 {
		return ScanInfo{}, fmt.Errorf("%w: no status for scan %s", ErrEmptyResponse, scanID)
	}
	return infos[0], nil
}

// WaitForScan polls the scan until it reaches a terminal state or ctx
// expires. A finished scan returns its final info; an aborted or errored
// scan returns ErrScanFailed.
func (c *Client) WaitForScan(ctx context.Context, scanID string, pollInterval time.Duration) (ScanInfo, error) {
	if pollInterval <= 0 {
		pollInterval = duration.StreamSlow
	}

	ticker := time.NewTicker(pollInterval)
	defer ticker.Stop()

	for {
		info, err := c.ScanStatus(ctx, scanID)
		if err != nil {
			return ScanInfo{}, err
		}
		if info.Status.Terminal() {
			if !info.Status.Succeeded() {
				return info, fmt.Errorf("%w: scan %s ended with status %s", ErrScanFailed, scanID, info.Status)
			}
			return info, nil
		}

		c.logger.Debug("scan in progress", "scan_id", scanID, "status", info.Status)

		select {
		case <-ticker.C:
		case <-ctx.Done():
			return info, ctx.Err()
		}
	}
}

// Results fetches the raw events of a scan as finding records.
func (c *Client) Results(ctx context.Context, scanID string) ([]finding.Record, error) {
	body, err := c.get(ctx, url.Values{"q": {"scanresults"}, "id": {scanID}})
	if err != nil {
		return nil, err
	}

	var records []finding.Record
	if err := jsonutil.Unmarshal(body, &records); err != nil {
		return nil, fmt.Errorf("spiderfoot: decode results: %w", err)
	}
	return records, nil
}

// ScanLogs fetches the engine-side log for a scan.
func (c *Client) ScanLogs(ctx context.Context, scanID string) ([]LogEntry, error) {
	body, err := c.get(ctx, url.Values{"q": {"scanlogs"}, "id": {scanID}})
	if err != nil {
		return nil, err
	}

	var entries []LogEntry
	if err := jsonutil.Unmarshal(body, &entries); err != nil {
		return nil, fmt.Errorf("spiderfoot: decode logs: %w", err)
	}
	return entries, nil
}

// ScanSummary fetches per-event-type counts for a scan.
func (c *Client) ScanSummary(ctx context.Context, scanID string) (map[string]int, error) {
	body, err := c.get(ctx, url.Values{"q": {"scansummary"}, "id": {scanID}})
	if err != nil {
		return nil, err
	}

	var summary map[string]int
	if err := jsonutil.Unmarshal(body, &summary); err != nil {
		return nil, fmt.Errorf("spiderfoot: decode summary: %w", err)
	}
	return summary, nil
}

// Modules fetches the engine's module catalog.
func (c *Client) Modules(ctx context.Context) (map[string]ModuleInfo, error) {
	body, err := c.get(ctx, url.Values{"q": {"modules"}})
	if err != nil {
		return nil, err
	}

	var modules map[string]ModuleInfo
	if err := jsonutil.Unmarshal(body, &modules); err != nil {
		return nil, fmt.Errorf("spiderfoot: decode modules: %w", err)
	}
	return modules, nil
}

// ListScans fetches every scan the engine knows about.
func (c *Client) ListScans(ctx context.Context) ([]ScanInfo, error) {
	body, err := c.get(ctx, url.Values{"q": {"scanlist"}})
	if err != nil {
		return nil, err
	}

	var infos []ScanInfo
	if err := jsonutil.Unmarshal(body, &infos); err != nil {
		return nil, fmt.Errorf("spiderfoot: decode scan list: %w", err)
	}
	return infos, nil
}

// DeleteScan removes a scan and its data from the engine.
func (c *Client) DeleteScan(ctx context.Context, scanID string) error {
	_, err := c.get(ctx, url.Values{"q": {"scandelete"}, "id": {scanID}})
	return err
}

// Export fetches the engine's own export of a scan in the given format
// ("json", "csv", "gexf") as raw bytes.
func (c *Client) Export(ctx context.Context, scanID, format string) ([]byte, error) {
	return c.get(ctx, url.Values{"q": {"scanexport"}, "id": {scanID}, "format": {format}})
}

// ScanData bundles everything the report pipeline needs from one scan.
type ScanData struct {
	Records []finding.Record
	Logs    []LogEntry
	Summary map[string]int
}

// FetchAll pulls results, logs and the summary of a scan concurrently.
// The first failing fetch cancels the others.
func (c *Client) FetchAll(ctx context.Context, scanID string) (ScanData, error) {
	var data ScanData

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		records, err := c.Results(ctx, scanID)
		data.Records = records
		return err
	})
	g.Go(func() error {
		logs, err := c.ScanLogs(ctx, scanID)
		data.Logs = logs
		return err
	})
	g.Go(func() error {
		summary, err := c.ScanSummary(ctx, scanID)
		data.Summary = summary
		return err
	})

	if err := g.Wait(); err != nil {
		return ScanData{}, err
	}
	return data, nil
}

func (c *Client) get(ctx context.Context, params url.Values) ([]byte, error) {
	return c.do(ctx, http.MethodGet, params, "")
}

func (c *Client) post(ctx context.Context, form url.Values) ([]byte, error) {
	return c.do(ctx, http.MethodPost, nil, form.Encode())
}

func (c *Client) do(ctx context.Context, method string, params url.Values, form string) ([]byte, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, err
	}

	endpoint := c.baseURL + "/api"
	if len(params) > 0 {
		endpoint += "?" + params.Encode()
	}

	var bodyReader *strings.Reader
	if form != "" {
		bodyReader = strings.NewReader(form)
	} else {
		bodyReader = strings.NewReader("")
	}

	req, err := http.NewRequestWithContext(ctx, method, endpoint, bodyReader)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", defaults.UAMinimal)
	if form != "" {
		req.Header.Set("Content-Type", defaults.ContentTypeForm)
	}
	if c.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.apiKey)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, redactAPIKey(err, c.apiKey)
	}
	defer iohelper.DrainAndClose(resp.Body)

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("spiderfoot: API error: %d", resp.StatusCode)
	}

	return iohelper.ReadBody(resp.Body, iohelper.LargeMaxBodySize)
}

// redactAPIKey removes the API key from error messages to prevent
// leakage in logs.
func redactAPIKey(err error, key string) error {
	if err == nil || key == "" {
		return err
	}
	return errors.New(strings.ReplaceAll(err.Error(), key, "[REDACTED]"))
}
