package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/osintment/osintment/pkg/defaults"
)

func TestParseArgsDefaults(t *testing.T) {
	t.Setenv(EnvEngineURL, "")
	t.Setenv(EnvCompanyName, "")
	t.Setenv(EnvReportAuthor, "")
	t.Setenv(EnvOutputDir, "")

	cfg, err := ParseArgs([]string{"-target", "example.com"})
	require.NoError(t, err)

	assert.Equal(t, "example.com", cfg.Target)
	assert.Equal(t, defaults.EngineURL, cfg.EngineURL)
	assert.Equal(t, defaults.OutputDir, cfg.OutputDir)
	assert.Equal(t, defaults.CompanyName, cfg.Company)
	assert.Equal(t, defaults.ReportAuthor, cfg.Author)
	assert.Equal(t, defaults.TopCategories, cfg.TopN)
	assert.Equal(t, []string{"html", "pdf", "json"}, cfg.FormatList())
	assert.Nil(t, cfg.ModuleList())
}

func TestParseArgsFlags(t *testing.T) {
	cfg, err := ParseArgs([]string{
		"-t", "example.com",
		"-engine", "http://engine:5001",
		"-f", "json,csv",
		"-modules", "sfp_dnsresolve, sfp_whois",
		"-top", "3",
		"-poll", "2s",
	})
	require.NoError(t, err)

	assert.Equal(t, "http://engine:5001", cfg.EngineURL)
	assert.Equal(t, []string{"json", "csv"}, cfg.FormatList())
	assert.Equal(t, []string{"sfp_dnsresolve", "sfp_whois"}, cfg.ModuleList())
	assert.Equal(t, 3, cfg.TopN)
	assert.Equal(t, 2*time.Second, cfg.Poll)
}

func TestParseArgsEnvironment(t *testing.T) {
	t.Setenv(EnvEngineURL, "http://env-engine:5001")
	t.Setenv(EnvCompanyName, "Env Corp")

	cfg, err := ParseArgs([]string{"-target", "example.com"})
	require.NoError(t, err)

	assert.Equal(t, "http://env-engine:5001", cfg.EngineURL)
	assert.Equal(t, "Env Corp", cfg.Company)
}

func TestFlagsBeatEnvironment(t *testing.T) {
	t.Setenv(EnvEngineURL, "http://env-engine:5001")

	cfg, err := ParseArgs([]string{"-target", "example.com", "-engine", "http://flag-engine:5001"})
	require.NoError(t, err)
	assert.Equal(t, "http://flag-engine:5001", cfg.EngineURL)
}

func TestConfigFileMerge(t *testing.T) {
	path := filepath.Join(t.TempDir(), "osintment.yaml")
	require.NoError(t, os.WriteFile(path, []byte(
		"engine_url: http://file-engine:5001\ncompany: File Corp\ntop_n: 7\n"), 0o644))

	cfg, err := ParseArgs([]string{"-target", "example.com", "-config", path})
	require.NoError(t, err)

	assert.Equal(t, "http://file-engine:5001", cfg.EngineURL)
	assert.Equal(t, "File Corp", cfg.Company)
	assert.Equal(t, 7, cfg.TopN)
}

func TestFlagsBeatConfigFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "osintment.yaml")
	require.NoError(t, os.WriteFile(path, []byte(
		"engine_url: http://file-engine:5001\n"), 0o644))

	cfg, err := ParseArgs([]string{
		"-target", "example.com",
		"-config", path,
		"-engine", "http://flag-engine:5001",
	})
	require.NoError(t, err)
	assert.Equal(t, "http://flag-engine:5001", cfg.EngineURL)
}

func TestConfigFileInvalid(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.yaml")
	require.NoError(t, os.WriteFile(path, []byte("engine_url: [unclosed"), 0o644))

	_, err := ParseArgs([]string{"-target", "example.com", "-config", path})
	assert.ErrorIs(t, err, ErrInvalidConfig)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		args    []string
		wantErr error
	}{
		{"no target", []string{}, ErrMissingRequired},
		{"target and scan id", []string{"-target", "a.com", "-scan-id", "s1"}, ErrInvalidConfig},
		{"bad scan type", []string{"-target", "a.com", "-scan-type", "wild"}, ErrInvalidConfig},
		{"empty formats", []string{"-target", "a.com", "-f", " , "}, ErrMissingRequired},
		{"zero top", []string{"-target", "a.com", "-top", "0"}, ErrInvalidConfig},
		{"verbose and silent", []string{"-target", "a.com", "-v", "-s"}, ErrInvalidConfig},
		{"scan id alone ok", []string{"-scan-id", "s1"}, nil},
		{"list alone ok", []string{"-list"}, nil},
		{"status with scan id ok", []string{"-status", "-scan-id", "s1"}, nil},
		{"delete with scan id ok", []string{"-delete", "-scan-id", "s1"}, nil},
		{"export with scan id ok", []string{"-export", "gexf", "-scan-id", "s1"}, nil},
		{"status without scan id", []string{"-status"}, ErrMissingRequired},
		{"delete without scan id", []string{"-delete"}, ErrMissingRequired},
		{"list with target", []string{"-list", "-target", "a.com"}, ErrInvalidConfig},
		{"two management modes", []string{"-list", "-delete", "-scan-id", "s1"}, ErrInvalidConfig},
		{"bad export format", []string{"-export", "docx", "-scan-id", "s1"}, ErrInvalidConfig},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseArgs(tt.args)
			if tt.wantErr == nil {
				assert.NoError(t, err)
			} else {
				assert.ErrorIs(t, err, tt.wantErr)
			}
		})
	}
}
