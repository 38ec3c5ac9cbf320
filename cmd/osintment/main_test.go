package main

import (
	"bytes"
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"net/url"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/osintment/osintment/pkg/config"
	"github.com/osintment/osintment/pkg/defaults"
	"github.com/osintment/osintment/pkg/spiderfoot"
)

var quiet = slog.New(slog.NewTextHandler(io.Discard, nil))

func newEngineClient(t *testing.T, handler http.HandlerFunc) *spiderfoot.Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	client, err := spiderfoot.NewClient(spiderfoot.Config{BaseURL: srv.URL, Logger: quiet})
	require.NoError(t, err)
	return client
}

func TestRunList(t *testing.T) {
	client := newEngineClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "scanlist", r.URL.Query().Get("q"))
		w.Write([]byte(`[
			{"id":"scan-1","name":"nightly","target":"example.com","status":"FINISHED","started":"2026-03-14 09:00:00"},
			{"id":"scan-2","name":"adhoc","target":"example.org","status":"RUNNING"}
		]`))
	})

	var buf bytes.Buffer
	code := runList(context.Background(), client, &buf, quiet)
	assert.Equal(t, defaults.ExitSuccess, code)

	out := buf.String()
	assert.Contains(t, out, "SCAN ID")
	assert.Contains(t, out, "scan-1")
	assert.Contains(t, out, "example.com")
	assert.Contains(t, out, "FINISHED")
	assert.Contains(t, out, "scan-2")
}

func TestRunListEmpty(t *testing.T) {
	client := newEngineClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`[]`))
	})

	var buf bytes.Buffer
	code := runList(context.Background(), client, &buf, quiet)
	assert.Equal(t, defaults.ExitSuccess, code)
	assert.Contains(t, buf.String(), "no scans")
}

func TestRunListEngineDown(t *testing.T) {
	client := newEngineClient(t, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	})

	var buf bytes.Buffer
	code := runList(context.Background(), client, &buf, quiet)
	assert.Equal(t, defaults.ExitNetworkError, code)
}

func TestRunStatus(t *testing.T) {
	client := newEngineClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "scanstatus", r.URL.Query().Get("q"))
		assert.Equal(t, "scan-1", r.URL.Query().Get("id"))
		w.Write([]byte(`[{"id":"scan-1","name":"nightly","target":"example.com","status":"FINISHED","started":"2026-03-14 09:00:00","finished":"2026-03-14 09:42:10"}]`))
	})

	var buf bytes.Buffer
	code := runStatus(context.Background(), client, "scan-1", &buf, quiet)
	assert.Equal(t, defaults.ExitSuccess, code)

	out := buf.String()
	assert.Contains(t, out, "scan-1")
	assert.Contains(t, out, "example.com")
	assert.Contains(t, out, "FINISHED")
	assert.Contains(t, out, "Finished: 2026-03-14 09:42:10")
}

func TestRunStatusAbortedScan(t *testing.T) {
	client := newEngineClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`[{"id":"scan-1","status":"ABORTED"}]`))
	})

	var buf bytes.Buffer
	code := runStatus(context.Background(), client, "scan-1", &buf, quiet)
	assert.Equal(t, defaults.ExitScanFailed, code)
	assert.Contains(t, buf.String(), "ABORTED")
}

func TestRunDelete(t *testing.T) {
	var gotQuery url.Values
	client := newEngineClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.Query()
		w.Write([]byte(`[]`))
	})

	code := runDelete(context.Background(), client, "scan-9", quiet)
	assert.Equal(t, defaults.ExitSuccess, code)
	assert.Equal(t, "scandelete", gotQuery.Get("q"))
	assert.Equal(t, "scan-9", gotQuery.Get("id"))
}

func TestRunExport(t *testing.T) {
	client := newEngineClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "scanexport", r.URL.Query().Get("q"))
		assert.Equal(t, "gexf", r.URL.Query().Get("format"))
		w.Write([]byte(`<gexf/>`))
	})

	dir := t.TempDir()
	cfg := &config.Config{ScanID: "scan-1", ExportFormat: "gexf", OutputDir: dir}

	var buf bytes.Buffer
	code := runExport(context.Background(), cfg, client, &buf, quiet)
	assert.Equal(t, defaults.ExitSuccess, code)

	path := filepath.Join(dir, "osint_export_scan-1.gexf")
	assert.Contains(t, buf.String(), path)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, []byte(`<gexf/>`), data)
}

func TestRunManagementDispatch(t *testing.T) {
	client := newEngineClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`[]`))
	})

	var buf bytes.Buffer
	code := runManagement(context.Background(), &config.Config{List: true}, client, &buf, quiet)
	assert.Equal(t, defaults.ExitSuccess, code)
	assert.Contains(t, buf.String(), "no scans")
}
