package contract

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/akbargherbal/git-viz-sub001/schema"
)

// Default values for configuration.
const (
	DefaultResultLimit    = 25
	MaxResultLimit        = 1000
	DefaultPrecision      = 1
	DefaultServeCacheSize = 16
	DefaultServeAddr      = ":8090"
)

// DefaultFetchTimeout bounds how long a snapshot load waits for all
// document fetches before giving up.
const DefaultFetchTimeout = 2 * time.Minute

// DateOnlyFormat is the calendar day representation used for activity
// buckets and the --date filter.
const DateOnlyFormat = "2006-01-02"

// DateTimeFormat is the default date time representation.
var DateTimeFormat = time.RFC3339

// Config holds the runtime configuration for a snapshot build.
// This struct remains the "final, validated" config.
type Config struct {
	SourcePath string            // Resolved document directory or URL base
	SourceKind schema.SourceKind // How SourcePath should be fetched

	ResultLimit int
	Precision   int
	Output      schema.OutputMode
	OutputFile  string
	Width       int // Terminal width override (0 = auto-detect)

	FilterDate string // Restrict activity rows to one UTC day when set
	FilterDir  string // Restrict activity rows to one directory subtree when set
	TreeDepth  int    // Maximum tree depth to render (0 = unlimited)

	FetchTimeout time.Duration
	ShowProgress bool

	CacheBackend   schema.DatabaseBackend
	CacheDBConnect string // Please use env var as this is plaintext

	RunsBackend   schema.DatabaseBackend
	RunsDBConnect string // Please use env var as this is plaintext

	ExportRepo   string   // Git repository root to export documents from
	ExportOut    string   // Directory that receives exported documents
	ExportFilter string   // Repo-relative path prefix that scopes the export
	Excludes     []string // Path patterns skipped during export

	ServeAddr      string
	ServeCacheSize int

	UseEmojis bool // Enable emojis in output headers
	UseColors bool // Enable colored labels in table output
}

// ConfigRawInput holds the raw inputs from all sources (flags, env, config file).
// Viper unmarshals into this struct.
type ConfigRawInput struct {
	// This is set manually from positional args, so no tag
	SourcePathStr string

	// This is set manually from the export command's positional arg, so no tag
	ExportRepoStr string

	// --- Fields from rootCmd.PersistentFlags() ---
	OutputFile     string `mapstructure:"output-file"`
	Limit          int    `mapstructure:"limit"`
	Precision      int    `mapstructure:"precision"`
	Output         string `mapstructure:"output"`
	Width          int    `mapstructure:"width"`
	Timeout        string `mapstructure:"timeout"`
	Progress       bool   `mapstructure:"progress"`
	CacheBackend   string `mapstructure:"cache-backend"`
	CacheDBConnect string `mapstructure:"cache-db-connect"`
	RunsBackend    string `mapstructure:"runs-backend"`
	RunsDBConnect  string `mapstructure:"runs-db-connect"`
	Emoji          string `mapstructure:"emoji"`
	Color          string `mapstructure:"color"`

	// --- Fields from activityCmd.Flags() ---
	Date string `mapstructure:"date"`
	Dir  string `mapstructure:"dir"`

	// --- Fields from treeCmd.Flags() ---
	Depth int `mapstructure:"depth"`

	// --- Fields from exportCmd.Flags() ---
	ExportOut string `mapstructure:"export-out"`
	Filter    string `mapstructure:"filter"`
	Exclude   string `mapstructure:"exclude"`

	// --- Fields from serveCmd.Flags() ---
	Addr      string `mapstructure:"addr"`
	CacheSize int    `mapstructure:"cache-size"`
}

// ProfileConfig holds profiling settings.
type ProfileConfig struct {
	Enabled bool
	Prefix  string
}

// Clone returns a deep copy of the Config struct.
func (c *Config) Clone() *Config {
	clone := *c
	if c.Excludes != nil {
		clone.Excludes = make([]string, len(c.Excludes))
		copy(clone.Excludes, c.Excludes)
	}
	return &clone
}

// ProcessAndValidate performs all complex parsing and validation on the raw inputs
// and updates the final Config struct.
func ProcessAndValidate(ctx context.Context, cfg *Config, client GitClient, input *ConfigRawInput) error {
	// All validation functions read from 'input' and populate 'cfg'.
	if err := validateSimpleInputs(cfg, input); err != nil {
		return err
	}
	if err := processFilters(cfg, input); err != nil {
		return err
	}
	if err := processServeOptions(cfg, input); err != nil {
		return err
	}
	if err := resolveSource(cfg, input); err != nil {
		return err
	}
	if err := resolveExportRepo(ctx, cfg, client, input); err != nil {
		return err
	}
	return nil
}

// ValidateDatabaseConnectionString validates the format of database connection strings
// for MySQL and PostgreSQL backends. The flag name is included in error messages so
// the user knows which of the cache and runs settings is at fault.
func ValidateDatabaseConnectionString(flag string, backend schema.DatabaseBackend, connStr string) error {
	switch backend {
	case schema.SQLiteBackend, schema.NoneBackend:
		return nil
	case schema.MySQLBackend:
		if connStr == "" {
			return fmt.Errorf("%s is required when using %s backend", flag, backend)
		}
		if !strings.Contains(connStr, "@tcp(") {
			return fmt.Errorf("MySQL connection string must contain '@tcp(' for host:port specification")
		}
		if !strings.Contains(connStr, "/") {
			return fmt.Errorf("MySQL connection string must contain '/' followed by database name")
		}
	case schema.PostgreSQLBackend:
		if connStr == "" {
			return fmt.Errorf("%s is required when using %s backend", flag, backend)
		}
		if !strings.Contains(connStr, "host=") {
			return fmt.Errorf("PostgreSQL connection string must contain 'host=' parameter")
		}
		if !strings.Contains(connStr, "dbname=") {
			return fmt.Errorf("PostgreSQL connection string must contain 'dbname=' parameter")
		}
	}
	return nil
}

// validateBackendConfigs validates document cache and run store backend configurations.
func validateBackendConfigs(cfg *Config, input *ConfigRawInput) error {
	// --- Cache Backend Validation ---
	cfg.CacheBackend = schema.DatabaseBackend(strings.ToLower(input.CacheBackend))
	if _, ok := schema.ValidDatabaseBackends[cfg.CacheBackend]; !ok {
		return fmt.Errorf("invalid cache backend '%s'. must be sqlite, mysql, postgresql, none", input.CacheBackend)
	}
	cfg.CacheDBConnect = input.CacheDBConnect
	if err := ValidateDatabaseConnectionString("cache-db-connect", cfg.CacheBackend, cfg.CacheDBConnect); err != nil {
		return err
	}

	// --- Runs Backend Validation ---
	cfg.RunsBackend = schema.DatabaseBackend(strings.ToLower(input.RunsBackend))
	if cfg.RunsBackend != "" {
		if _, ok := schema.ValidDatabaseBackends[cfg.RunsBackend]; !ok {
			return fmt.Errorf("invalid runs backend '%s'. must be sqlite, mysql, postgresql, none", input.RunsBackend)
		}
		cfg.RunsDBConnect = input.RunsDBConnect
		if err := ValidateDatabaseConnectionString("runs-db-connect", cfg.RunsBackend, cfg.RunsDBConnect); err != nil {
			return err
		}

		// Validate that document caching and run tracking use different databases
		if cfg.CacheBackend == cfg.RunsBackend && cfg.CacheBackend != schema.NoneBackend {
			// For SQLite, resolve to actual file paths to catch default path conflicts
			if cfg.CacheBackend == schema.SQLiteBackend {
				cacheDBPath := cfg.CacheDBConnect
				if cacheDBPath == "" {
					cacheDBPath = GetCacheDBFilePath()
				}
				runsDBPath := cfg.RunsDBConnect
				if runsDBPath == "" {
					runsDBPath = GetRunsDBFilePath()
				}
				if cacheDBPath == runsDBPath {
					return fmt.Errorf("document cache and run tracking must use different SQLite database files. Both resolve to %q", cacheDBPath)
				}
			}
		}
	}

	return nil
}

// validateSimpleInputs processes and validates all non-path related fields.
func validateSimpleInputs(cfg *Config, input *ConfigRawInput) error {
	// --- 0. Transfer simple non-validated fields from input -> cfg ---
	cfg.OutputFile = input.OutputFile
	cfg.Width = input.Width
	cfg.ShowProgress = input.Progress

	// Parse emoji flag
	emojis, err := ParseBoolString(input.Emoji)
	if err != nil {
		return fmt.Errorf("invalid --emoji value: %w", err)
	}
	cfg.UseEmojis = emojis

	// Parse color flag
	colors, err := ParseBoolString(input.Color)
	if err != nil {
		return fmt.Errorf("invalid --color value: %w", err)
	}
	cfg.UseColors = colors

	// --- 1. ResultLimit Validation ---
	if input.Limit <= 0 || input.Limit > MaxResultLimit {
		return fmt.Errorf("limit must be greater than 0 and cannot exceed %d (received %d)", MaxResultLimit, input.Limit)
	}
	cfg.ResultLimit = input.Limit

	// --- 2. Precision and Output Validation ---
	if input.Precision < 1 || input.Precision > 2 {
		return fmt.Errorf("precision must be 1 or 2 (received %d)", input.Precision)
	}
	cfg.Precision = input.Precision

	cfg.Output = schema.OutputMode(strings.ToLower(input.Output))
	if _, ok := schema.ValidOutputModes[cfg.Output]; !ok {
		return fmt.Errorf("invalid output format '%s'. must be text, csv, json, parquet", cfg.Output)
	}

	// --- 3. Fetch Timeout Validation ---
	if input.Timeout != "" {
		timeout, err := ParseHumanDuration(input.Timeout)
		if err != nil {
			return fmt.Errorf("invalid timeout: %w", err)
		}
		cfg.FetchTimeout = timeout
	} else {
		cfg.FetchTimeout = DefaultFetchTimeout
	}

	// --- 4. Backend Validation ---
	if err := validateBackendConfigs(cfg, input); err != nil {
		return err
	}

	// --- 5. Excludes Processing ---
	defaults := []string{
		"Cargo.lock", "go.sum", "package-lock.json", "yarn.lock", "pnpm-lock.yaml", "composer.lock", "uv.lock",
		".min.js", ".min.css",
		".jpg", ".jpeg", ".png", ".gif", ".svg", ".ico", ".mp4", ".mov", ".webm", ".mp3", ".ogg", ".pdf", ".webp",
		".DS_Store",
		"dist/", "build/", "out/", "target/", "bin/",
	}
	cfg.Excludes = defaults // Set defaults first

	if input.Exclude != "" {
		parts := strings.SplitSeq(input.Exclude, ",")
		for p := range parts {
			trimmedP := strings.TrimSpace(p)
			if trimmedP != "" {
				cfg.Excludes = append(cfg.Excludes, trimmedP)
			}
		}
	}

	return nil
}

// processFilters handles the activity day filter, the directory filter
// and the tree depth limit.
func processFilters(cfg *Config, input *ConfigRawInput) error {
	// --- Process Date Filter ---
	if raw := strings.TrimSpace(input.Date); raw != "" {
		day, err := ParseDayFilter(raw)
		if err != nil {
			return err
		}
		cfg.FilterDate = day
	}

	// --- Process Directory Filter ---
	cfg.FilterDir = schema.NormalizeDirPath(strings.TrimSpace(input.Dir))

	// --- Process Tree Depth ---
	if input.Depth < 0 {
		return fmt.Errorf("depth cannot be negative (received %d)", input.Depth)
	}
	cfg.TreeDepth = input.Depth

	return nil
}

// ParseDayFilter normalizes a day filter value: a calendar day in YYYY-MM-DD
// form or a relative phrase like "2 weeks ago", which resolves against the
// current UTC time. The MCP tools accept the same values as the --date flag.
func ParseDayFilter(raw string) (string, error) {
	t, err := time.Parse(DateOnlyFormat, raw)
	if err == nil {
		return t.Format(DateOnlyFormat), nil
	}
	rel, relErr := ParseRelativeTime(raw, time.Now().UTC())
	if relErr != nil {
		return "", fmt.Errorf("invalid date filter '%s'. Expected YYYY-MM-DD or 'N [units] ago': %v", raw, err)
	}
	return rel.UTC().Format(DateOnlyFormat), nil
}

// processServeOptions handles the HTTP server address and snapshot cache size.
func processServeOptions(cfg *Config, input *ConfigRawInput) error {
	cfg.ServeAddr = strings.TrimSpace(input.Addr)
	if cfg.ServeAddr == "" {
		cfg.ServeAddr = DefaultServeAddr
	}

	if input.CacheSize < 0 {
		return fmt.Errorf("cache-size cannot be negative (received %d)", input.CacheSize)
	}
	cfg.ServeCacheSize = input.CacheSize
	if cfg.ServeCacheSize == 0 {
		cfg.ServeCacheSize = DefaultServeCacheSize
	}

	return nil
}

// resolveSource resolves the document source path from the positional arg.
func resolveSource(cfg *Config, input *ConfigRawInput) error {
	return ResolveSource(cfg, input.SourcePathStr)
}

// ResolveSource sets the source path and kind from one raw value. HTTP URLs
// pass through untouched apart from a trailing slash trim; everything else
// must be a readable directory. The serve surface resolves per-request
// sources through the same rules.
func ResolveSource(cfg *Config, raw string) error {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		raw = "."
	}

	if strings.HasPrefix(raw, "http://") || strings.HasPrefix(raw, "https://") {
		cfg.SourceKind = schema.HTTPSource
		cfg.SourcePath = strings.TrimRight(raw, "/")
		return nil
	}

	absPath, err := filepath.Abs(raw)
	if err != nil {
		return err
	}
	absPath = filepath.Clean(absPath)

	info, err := os.Stat(absPath)
	if err != nil {
		return fmt.Errorf("source path %q is not accessible: %w", raw, err)
	}
	if !info.IsDir() {
		return fmt.Errorf("source path %q must be a directory containing the exported documents", raw)
	}

	cfg.SourceKind = schema.FileSource
	cfg.SourcePath = absPath
	return nil
}

// ProcessProfilingConfig handles the profiling flag and sets up profiling configuration.
func ProcessProfilingConfig(profile *ProfileConfig, profilePrefix string) error {
	if profilePrefix != "" {
		profile.Enabled = true
		profile.Prefix = profilePrefix
	}
	return nil
}

// resolveExportRepo resolves the Git repository root for the export command
// and normalizes the export scoping filter against it. It is a no-op for
// commands that never set an export repository.
func resolveExportRepo(ctx context.Context, cfg *Config, client GitClient, input *ConfigRawInput) error {
	searchPath := strings.TrimSpace(input.ExportRepoStr)
	if searchPath == "" {
		return nil
	}

	absSearchPath, err := filepath.Abs(searchPath)
	if err != nil {
		return err
	}
	absSearchPath = filepath.Clean(absSearchPath)

	info, statErr := os.Stat(absSearchPath)
	gitContextPath := absSearchPath
	if statErr == nil && !info.IsDir() {
		gitContextPath = filepath.Dir(absSearchPath)
	}

	gitRoot, err := client.GetRepoRoot(ctx, gitContextPath)
	if err != nil {
		return err
	}
	cfg.ExportRepo = gitRoot

	cfg.ExportOut = strings.TrimSpace(input.ExportOut)
	if cfg.ExportOut == "" {
		cfg.ExportOut = "."
	}

	if filter := strings.TrimSpace(input.Filter); filter != "" {
		normalized, err := NormalizeRelPath(gitRoot, filter)
		if err != nil {
			return fmt.Errorf("invalid export filter: %w", err)
		}
		if normalized == "." {
			normalized = ""
		}
		cfg.ExportFilter = normalized
	}

	return nil
}
