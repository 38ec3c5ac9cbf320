// Package config assembles the CLI configuration from defaults,
// environment variables, an optional YAML file and command-line flags,
// in that order of precedence (flags win).
package config

import (
	"flag"
	"fmt"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/osintment/osintment/pkg/defaults"
	"github.com/osintment/osintment/pkg/duration"
)

// Environment variable names. These match the names the original
// deployments already use.
const (
	EnvEngineURL    = "SPIDERFOOT_URL"
	EnvEngineAPIKey = "SPIDERFOOT_API_KEY"
	EnvOutputDir    = "REPORT_OUTPUT_DIR"
	EnvCompanyName  = "COMPANY_NAME"
	EnvReportAuthor = "REPORT_AUTHOR"
	EnvLogLevel     = "LOG_LEVEL"
)

// Config holds all CLI configuration options.
type Config struct {
	// Engine settings
	EngineURL    string `yaml:"engine_url"`
	EngineAPIKey string `yaml:"engine_api_key"`

	// Scan settings
	Target   string        `yaml:"target"`
	ScanID   string        `yaml:"scan_id"`   // report an existing scan instead of starting one
	ScanName string        `yaml:"scan_name"` // label for a new scan
	ScanType string        `yaml:"scan_type"` // "all" or "passive"
	Modules  string        `yaml:"modules"`   // comma-separated engine modules (empty = all)
	Poll     time.Duration `yaml:"poll"`      // status poll interval
	Timeout  time.Duration `yaml:"timeout"`   // overall scan wait budget

	// Report settings
	OutputDir string `yaml:"output_dir"`
	Formats   string `yaml:"formats"` // comma-separated: html,pdf,json,csv,txt
	Title     string `yaml:"title"`
	Company   string `yaml:"company"`
	Author    string `yaml:"author"`
	TopN      int    `yaml:"top_n"`
	ExcelCSV  bool   `yaml:"excel_csv"`

	// Engine management modes. At most one may be set; each bypasses
	// the report pipeline.
	List         bool   `yaml:"-"` // list all scans on the engine
	Status       bool   `yaml:"-"` // show the state of one scan
	Delete       bool   `yaml:"-"` // remove one scan from the engine
	ExportFormat string `yaml:"-"` // engine-native export: json, csv, gexf

	// Output settings
	Verbose  bool   `yaml:"verbose"`
	Silent   bool   `yaml:"silent"`
	NoColor  bool   `yaml:"no_color"`
	LogLevel string `yaml:"log_level"`

	// ConfigFile is the YAML file the rest of this struct was merged
	// from, empty when none was given.
	ConfigFile string `yaml:"-"`
}

// FormatList splits the comma-separated format string.
func (c *Config) FormatList() []string {
	var out []string
	for _, f := range strings.Split(c.Formats, ",") {
		f = strings.TrimSpace(strings.ToLower(f))
		if f != "" {
			out = append(out, f)
		}
	}
	return out
}

// ModuleList splits the comma-separated module string. Nil means all
// modules.
func (c *Config) ModuleList() []string {
	if strings.TrimSpace(c.Modules) == "" {
		return nil
	}
	var out []string
	for _, m := range strings.Split(c.Modules, ",") {
		m = strings.TrimSpace(m)
		if m != "" {
			out = append(out, m)
		}
	}
	return out
}

// fromEnv builds the starting configuration from package defaults
// overlaid with environment variables.
func fromEnv() *Config {
	return &Config{
		EngineURL:    envOr(EnvEngineURL, defaults.EngineURL),
		EngineAPIKey: os.Getenv(EnvEngineAPIKey),
		ScanType:     "all",
		Poll:         duration.StreamSlow,
		Timeout:      duration.ContextMax,
		OutputDir:    envOr(EnvOutputDir, defaults.OutputDir),
		Formats:      defaults.ReportFormats,
		Company:      envOr(EnvCompanyName, defaults.CompanyName),
		Author:       envOr(EnvReportAuthor, defaults.ReportAuthor),
		TopN:         defaults.TopCategories,
		LogLevel:     envOr(EnvLogLevel, "info"),
	}
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// ParseFlags parses os.Args and returns the merged configuration.
func ParseFlags() (*Config, error) {
	return ParseArgs(os.Args[1:])
}

// ParseArgs parses the given arguments. Precedence, lowest to highest:
// built-in defaults, environment, YAML config file, flags.
func ParseArgs(args []string) (*Config, error) {
	cfg := fromEnv()

	fs := flag.NewFlagSet(defaults.ToolName, flag.ContinueOnError)

	// === TARGET ===
	fs.StringVar(&cfg.Target, "target", cfg.Target, "Scan target: domain, IP, netblock or email")
	fs.StringVar(&cfg.Target, "t", cfg.Target, "Scan target (alias)")
	fs.StringVar(&cfg.ScanID, "scan-id", cfg.ScanID, "Report an existing scan instead of starting one")

	// === ENGINE MANAGEMENT ===
	fs.BoolVar(&cfg.List, "list", cfg.List, "List all scans on the engine")
	fs.BoolVar(&cfg.Status, "status", cfg.Status, "Show the state of the scan given by -scan-id")
	fs.BoolVar(&cfg.Delete, "delete", cfg.Delete, "Delete the scan given by -scan-id")
	fs.StringVar(&cfg.ExportFormat, "export", cfg.ExportFormat, "Write the engine's own export of -scan-id: json, csv, gexf")

	// === ENGINE ===
	fs.StringVar(&cfg.EngineURL, "engine", cfg.EngineURL, "SpiderFoot engine URL")
	fs.StringVar(&cfg.EngineAPIKey, "api-key", cfg.EngineAPIKey, "Engine API key")
	fs.StringVar(&cfg.ScanName, "scan-name", cfg.ScanName, "Label for the new scan")
	fs.StringVar(&cfg.ScanType, "scan-type", cfg.ScanType, "Module class: all, passive")
	fs.StringVar(&cfg.Modules, "modules", cfg.Modules, "Comma-separated engine modules (empty = all)")
	fs.DurationVar(&cfg.Poll, "poll", cfg.Poll, "Scan status poll interval")
	fs.DurationVar(&cfg.Timeout, "timeout", cfg.Timeout, "Overall scan wait budget")

	// === REPORT ===
	fs.StringVar(&cfg.OutputDir, "output", cfg.OutputDir, "Report artifact directory")
	fs.StringVar(&cfg.OutputDir, "o", cfg.OutputDir, "Report directory (alias)")
	fs.StringVar(&cfg.Formats, "formats", cfg.Formats, "Comma-separated formats: html,pdf,json,csv,txt")
	fs.StringVar(&cfg.Formats, "f", cfg.Formats, "Formats (alias)")
	fs.StringVar(&cfg.Title, "title", cfg.Title, "Report title override")
	fs.StringVar(&cfg.Company, "company", cfg.Company, "Company name on reports")
	fs.StringVar(&cfg.Author, "author", cfg.Author, "Report author")
	fs.IntVar(&cfg.TopN, "top", cfg.TopN, "Ranked categories in the executive summary")
	fs.BoolVar(&cfg.ExcelCSV, "excel-csv", cfg.ExcelCSV, "Write CSV with a UTF-8 BOM for Excel")

	// === OUTPUT ===
	fs.BoolVar(&cfg.Verbose, "verbose", cfg.Verbose, "Verbose output")
	fs.BoolVar(&cfg.Verbose, "v", cfg.Verbose, "Verbose (alias)")
	fs.BoolVar(&cfg.Silent, "silent", cfg.Silent, "Silent mode - errors only")
	fs.BoolVar(&cfg.Silent, "s", cfg.Silent, "Silent (alias)")
	fs.BoolVar(&cfg.NoColor, "no-color", cfg.NoColor, "Disable colored output")
	fs.StringVar(&cfg.LogLevel, "log-level", cfg.LogLevel, "Log level: debug, info, warn, error")
	fs.StringVar(&cfg.ConfigFile, "config", "", "YAML configuration file")

	if err := fs.Parse(args); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}

	// Merge the YAML file under any flags the user set explicitly.
	if cfg.ConfigFile != "" {
		if err := mergeFile(cfg, fs); err != nil {
			return nil, err
		}
	}

	return cfg, cfg.Validate()
}

// mergeFile loads the YAML file and re-applies explicitly set flags on
// top, so the file never overrides the command line.
func mergeFile(cfg *Config, fs *flag.FlagSet) error {
	data, err := os.ReadFile(cfg.ConfigFile)
	if err != nil {
		return fmt.Errorf("%w: read %s: %v", ErrInvalidConfig, cfg.ConfigFile, err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("%w: parse %s: %v", ErrInvalidConfig, cfg.ConfigFile, err)
	}

	set := make(map[string]bool)
	fs.Visit(func(f *flag.Flag) { set[f.Name] = true })

	// Re-parse only flags the user passed; they win over the file.
	var reapply []string
	fs.VisitAll(func(f *flag.Flag) {
		if set[f.Name] {
			reapply = append(reapply, "-"+f.Name+"="+f.Value.String())
		}
	})
	if len(reapply) > 0 {
		if err := fs.Parse(reapply); err != nil {
			return fmt.Errorf("%w: %v", ErrInvalidConfig, err)
		}
	}
	return nil
}

// ManagementMode reports whether an engine management flag was set,
// bypassing the report pipeline.
func (c *Config) ManagementMode() bool {
	return c.List || c.Status || c.Delete || c.ExportFormat != ""
}

// Validate checks the merged configuration for completeness.
func (c *Config) Validate() error {
	if c.Verbose && c.Silent {
		return fmt.Errorf("%w: verbose and silent are mutually exclusive", ErrInvalidConfig)
	}

	if c.ManagementMode() {
		return c.validateManagement()
	}

	if c.Target == "" && c.ScanID == "" {
		return fmt.Errorf("%w: target or scan-id", ErrMissingRequired)
	}
	if c.Target != "" && c.ScanID != "" {
		return fmt.Errorf("%w: target and scan-id are mutually exclusive", ErrInvalidConfig)
	}
	if c.ScanType != "all" && c.ScanType != "passive" {
		return fmt.Errorf("%w: unknown scan type %q", ErrInvalidConfig, c.ScanType)
	}
	if len(c.FormatList()) == 0 {
		return fmt.Errorf("%w: formats", ErrMissingRequired)
	}
	if c.TopN <= 0 {
		return fmt.Errorf("%w: top must be positive", ErrInvalidConfig)
	}
	return nil
}

// validateManagement checks the engine management flags: at most one
// mode, and every mode except -list names a scan.
func (c *Config) validateManagement() error {
	modes := 0
	for _, set := range []bool{c.List, c.Status, c.Delete, c.ExportFormat != ""} {
		if set {
			modes++
		}
	}
	if modes > 1 {
		return fmt.Errorf("%w: choose one of -list, -status, -delete, -export", ErrInvalidConfig)
	}
	if c.Target != "" {
		return fmt.Errorf("%w: target cannot be combined with engine management flags", ErrInvalidConfig)
	}
	if !c.List && c.ScanID == "" {
		return fmt.Errorf("%w: scan-id", ErrMissingRequired)
	}
	if c.ExportFormat != "" {
		switch c.ExportFormat {
		case "json", "csv", "gexf":
		default:
			return fmt.Errorf("%w: unknown export format %q", ErrInvalidConfig, c.ExportFormat)
		}
	}
	return nil
}
