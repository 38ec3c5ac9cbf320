// Command osintment runs an OSINT scan against a SpiderFoot engine and
// renders the results as professional report artifacts.
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	"github.com/google/uuid"

	"github.com/osintment/osintment/pkg/analysis"
	"github.com/osintment/osintment/pkg/config"
	"github.com/osintment/osintment/pkg/defaults"
	"github.com/osintment/osintment/pkg/output"
	"github.com/osintment/osintment/pkg/output/dispatcher"
	"github.com/osintment/osintment/pkg/report"
	"github.com/osintment/osintment/pkg/spiderfoot"
	"github.com/osintment/osintment/pkg/ui"
)

func main() {
	cfg, err := config.ParseFlags()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(defaults.ExitUserError)
	}

	logger := newLogger(cfg)
	os.Exit(run(cfg, logger))
}

func newLogger(cfg *config.Config) *slog.Logger {
	level := slog.LevelInfo
	switch strings.ToLower(cfg.LogLevel) {
	case "debug":
		level = slog.LevelDebug
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	}
	if cfg.Verbose {
		level = slog.LevelDebug
	}
	if cfg.Silent {
		level = slog.LevelError
	}
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
}

func run(cfg *config.Config, logger *slog.Logger) int {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if !cfg.Silent {
		ui.PrintBanner(os.Stderr, cfg.NoColor)
	}

	client, err := spiderfoot.NewClient(spiderfoot.Config{
		BaseURL:           cfg.EngineURL,
		APIKey:            cfg.EngineAPIKey,
		RequestsPerMinute: defaults.EngineRequestsPerMinute,
		Logger:            logger,
	})
	if err != nil {
		logger.Error("engine client setup failed", "error", err)
		return defaults.ExitUserError
	}

	if cfg.ManagementMode() {
		return runManagement(ctx, cfg, client, os.Stdout, logger)
	}

	scanID, target, code := resolveScan(ctx, cfg, client, logger)
	if code != defaults.ExitSuccess {
		return code
	}

	logger.Info("fetching scan data", "scan_id", scanID)
	data, err := client.FetchAll(ctx, scanID)
	if err != nil {
		logger.Error("fetching scan data failed", "scan_id", scanID, "error", err)
		return defaults.ExitNetworkError
	}

	classified, diags, err := analysis.Classify(data.Records, logger)
	if err != nil {
		logger.Error("classification failed", "error", err)
		return defaults.ExitInternalError
	}
	if len(diags.Skipped) > 0 {
		logger.Warn("skipped malformed records", "count", len(diags.Skipped))
	}

	stats, err := analysis.Aggregate(classified, cfg.TopN)
	if err != nil {
		logger.Error("aggregation failed", "error", err)
		return defaults.ExitInternalError
	}

	doc := report.Build(classified, stats, report.BuildInfo{
		Target: target,
		ScanID: scanID,
		Meta: report.Meta{
			Company: cfg.Company,
			Author:  cfg.Author,
		},
	})

	formats := make([]dispatcher.Format, 0, len(cfg.FormatList()))
	for _, f := range cfg.FormatList() {
		format := dispatcher.Format(f)
		if !format.IsValid() {
			logger.Error("unknown output format", "format", f)
			return defaults.ExitUserError
		}
		formats = append(formats, format)
	}

	artifacts, err := output.WriteArtifacts(doc, output.Config{
		OutputDir: cfg.OutputDir,
		Formats:   formats,
		Title:     cfg.Title,
		ExcelCSV:  cfg.ExcelCSV,
		Logger:    logger,
	})
	if err != nil {
		logger.Error("writing artifacts failed", "error", err)
		return defaults.ExitInternalError
	}

	if !cfg.Silent {
		ui.PrintSummary(os.Stdout, doc, artifacts, ui.Options{NoColor: cfg.NoColor})
	}

	for _, art := range artifacts {
		if art.Err != nil {
			return defaults.ExitInternalError
		}
	}
	return defaults.ExitSuccess
}

// runManagement dispatches the engine management modes that bypass the
// report pipeline.
func runManagement(ctx context.Context, cfg *config.Config, client *spiderfoot.Client, w io.Writer, logger *slog.Logger) int {
	switch {
	case cfg.List:
		return runList(ctx, client, w, logger)
	case cfg.Status:
		return runStatus(ctx, client, cfg.ScanID, w, logger)
	case cfg.Delete:
		return runDelete(ctx, client, cfg.ScanID, logger)
	default:
		return runExport(ctx, cfg, client, w, logger)
	}
}

// runList prints every scan the engine knows about, one per line.
func runList(ctx context.Context, client *spiderfoot.Client, w io.Writer, logger *slog.Logger) int {
	infos, err := client.ListScans(ctx)
	if err != nil {
		logger.Error("listing scans failed", "error", err)
		return defaults.ExitNetworkError
	}
	if len(infos) == 0 {
		fmt.Fprintln(w, "no scans on the engine")
		return defaults.ExitSuccess
	}

	fmt.Fprintf(w, "%-38s %-28s %-14s %s\n", "SCAN ID", "TARGET", "STATUS", "STARTED")
	for _, info := range infos {
		fmt.Fprintf(w, "%-38s %-28s %-14s %s\n", info.ID, info.Target, info.Status, info.Started)
	}
	return defaults.ExitSuccess
}

// runStatus prints the state of one scan.
func runStatus(ctx context.Context, client *spiderfoot.Client, scanID string, w io.Writer, logger *slog.Logger) int {
	info, err := client.ScanStatus(ctx, scanID)
	if err != nil {
		logger.Error("scan lookup failed", "scan_id", scanID, "error", err)
		return defaults.ExitNetworkError
	}

	fmt.Fprintf(w, "Scan ID:  %s\n", info.ID)
	fmt.Fprintf(w, "Name:     %s\n", info.Name)
	fmt.Fprintf(w, "Target:   %s\n", info.Target)
	fmt.Fprintf(w, "Status:   %s\n", info.Status)
	if info.Started != "" {
		fmt.Fprintf(w, "Started:  %s\n", info.Started)
	}
	if info.Finished != "" {
		fmt.Fprintf(w, "Finished: %s\n", info.Finished)
	}
	if info.Status.Terminal() && !info.Status.Succeeded() {
		return defaults.ExitScanFailed
	}
	return defaults.ExitSuccess
}

// runDelete removes one scan and its data from the engine.
func runDelete(ctx context.Context, client *spiderfoot.Client, scanID string, logger *slog.Logger) int {
	if err := client.DeleteScan(ctx, scanID); err != nil {
		logger.Error("deleting scan failed", "scan_id", scanID, "error", err)
		return defaults.ExitNetworkError
	}
	logger.Info("scan deleted", "scan_id", scanID)
	return defaults.ExitSuccess
}

// runExport writes the engine's own export of a scan into the output
// directory, bypassing the report pipeline entirely.
func runExport(ctx context.Context, cfg *config.Config, client *spiderfoot.Client, w io.Writer, logger *slog.Logger) int {
	data, err := client.Export(ctx, cfg.ScanID, cfg.ExportFormat)
	if err != nil {
		logger.Error("export failed", "scan_id", cfg.ScanID, "error", err)
		return defaults.ExitNetworkError
	}

	if err := os.MkdirAll(cfg.OutputDir, 0o755); err != nil {
		logger.Error("creating output directory failed", "error", err)
		return defaults.ExitInternalError
	}
	path := filepath.Join(cfg.OutputDir,
		fmt.Sprintf("osint_export_%s.%s", cfg.ScanID, cfg.ExportFormat))
	if err := os.WriteFile(path, data, 0o644); err != nil {
		logger.Error("writing export failed", "path", path, "error", err)
		return defaults.ExitInternalError
	}

	fmt.Fprintln(w, path)
	return defaults.ExitSuccess
}

// resolveScan returns the scan to report on: either an existing scan ID
// from the configuration, or a new scan started against the target and
// waited on until it finishes.
func resolveScan(ctx context.Context, cfg *config.Config, client *spiderfoot.Client, logger *slog.Logger) (scanID, target string, code int) {
	if cfg.ScanID != "" {
		info, err := client.ScanStatus(ctx, cfg.ScanID)
		if err != nil {
			logger.Error("scan lookup failed", "scan_id", cfg.ScanID, "error", err)
			return "", "", defaults.ExitNetworkError
		}
		target = info.Target
		if target == "" {
			target = cfg.ScanID
		}
		return cfg.ScanID, target, defaults.ExitSuccess
	}

	name := cfg.ScanName
	if name == "" {
		name = fmt.Sprintf("%s_%s_%s", defaults.ToolName, cfg.Target, uuid.NewString()[:8])
	}

	logger.Info("starting scan", "target", cfg.Target, "type", cfg.ScanType)
	scanID, err := client.StartScan(ctx, spiderfoot.StartScanRequest{
		Target:     cfg.Target,
		Name:       name,
		Modules:    cfg.ModuleList(),
		TypeFilter: cfg.ScanType,
	})
	if err != nil {
		logger.Error("starting scan failed", "error", err)
		return "", "", defaults.ExitNetworkError
	}

	waitCtx := ctx
	if cfg.Timeout > 0 {
		var cancel context.CancelFunc
		waitCtx, cancel = context.WithTimeout(ctx, cfg.Timeout)
		defer cancel()
	}

	started := time.Now()
	info, err := client.WaitForScan(waitCtx, scanID, cfg.Poll)
	switch {
	case errors.Is(err, spiderfoot.ErrScanFailed):
		logger.Error("scan did not finish cleanly", "scan_id", scanID, "status", info.Status)
		return "", "", defaults.ExitScanFailed
	case err != nil:
		logger.Error("waiting for scan failed", "scan_id", scanID, "error", err)
		return "", "", defaults.ExitNetworkError
	}

	logger.Info("scan finished", "scan_id", scanID, "elapsed", time.Since(started).Round(time.Second))
	return scanID, cfg.Target, defaults.ExitSuccess
}
