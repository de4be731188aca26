package contract

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/akbargherbal/git-viz-sub001/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProcessAndValidate(t *testing.T) {
	tests := []struct {
		name        string
		input       *ConfigRawInput
		expectError bool
		setupMock   func(*MockGitClient, string) // Pass the expected working directory
		check       func(*testing.T, *Config)
	}{
		{
			name: "valid minimal config",
			input: &ConfigRawInput{
				Limit:         10,
				Precision:     1,
				Output:        "text",
				SourcePathStr: ".",
			},
			expectError: false,
			check: func(t *testing.T, cfg *Config) {
				assert.Equal(t, schema.FileSource, cfg.SourceKind)
				assert.True(t, filepath.IsAbs(cfg.SourcePath), "file sources resolve to absolute paths")
				assert.Equal(t, 10, cfg.ResultLimit)
				assert.Equal(t, DefaultFetchTimeout, cfg.FetchTimeout)
				assert.Equal(t, DefaultServeAddr, cfg.ServeAddr)
				assert.Equal(t, DefaultServeCacheSize, cfg.ServeCacheSize)
			},
		},
		{
			name: "http source trims trailing slash",
			input: &ConfigRawInput{
				Limit:         10,
				Precision:     1,
				Output:        "text",
				SourcePathStr: "https://example.com/exports/",
			},
			expectError: false,
			check: func(t *testing.T, cfg *Config) {
				assert.Equal(t, schema.HTTPSource, cfg.SourceKind)
				assert.Equal(t, "https://example.com/exports", cfg.SourcePath)
			},
		},
		{
			name: "invalid limit (zero)",
			input: &ConfigRawInput{
				Limit:         0,
				Precision:     1,
				Output:        "text",
				SourcePathStr: ".",
			},
			expectError: true,
		},
		{
			name: "invalid limit (negative)",
			input: &ConfigRawInput{
				Limit:         -1,
				Precision:     1,
				Output:        "text",
				SourcePathStr: ".",
			},
			expectError: true,
		},
		{
			name: "invalid limit (too large)",
			input: &ConfigRawInput{
				Limit:         1001,
				Precision:     1,
				Output:        "text",
				SourcePathStr: ".",
			},
			expectError: true,
		},
		{
			name: "invalid precision (zero)",
			input: &ConfigRawInput{
				Limit:         10,
				Precision:     0,
				Output:        "text",
				SourcePathStr: ".",
			},
			expectError: true,
		},
		{
			name: "invalid precision (too high)",
			input: &ConfigRawInput{
				Limit:         10,
				Precision:     3,
				Output:        "text",
				SourcePathStr: ".",
			},
			expectError: true,
		},
		{
			name: "invalid output format",
			input: &ConfigRawInput{
				Limit:         10,
				Precision:     1,
				Output:        "invalid_format",
				SourcePathStr: ".",
			},
			expectError: true,
		},
		{
			name: "parquet output format",
			input: &ConfigRawInput{
				Limit:         10,
				Precision:     1,
				Output:        "parquet",
				SourcePathStr: ".",
			},
			expectError: false,
			check: func(t *testing.T, cfg *Config) {
				assert.Equal(t, schema.ParquetOut, cfg.Output)
			},
		},
		{
			name: "invalid cache backend",
			input: &ConfigRawInput{
				Limit:         10,
				Precision:     1,
				Output:        "text",
				SourcePathStr: ".",
				CacheBackend:  "invalid_backend",
			},
			expectError: true,
		},
		{
			name: "mysql backend without connection string",
			input: &ConfigRawInput{
				Limit:         10,
				Precision:     1,
				Output:        "text",
				SourcePathStr: ".",
				CacheBackend:  string(schema.MySQLBackend),
			},
			expectError: true,
		},
		{
			name: "postgresql backend without connection string",
			input: &ConfigRawInput{
				Limit:         10,
				Precision:     1,
				Output:        "text",
				SourcePathStr: ".",
				CacheBackend:  string(schema.PostgreSQLBackend),
			},
			expectError: true,
		},
		{
			name: "mysql backend with connection string",
			input: &ConfigRawInput{
				Limit:          10,
				Precision:      1,
				Output:         "text",
				SourcePathStr:  ".",
				CacheBackend:   string(schema.MySQLBackend),
				CacheDBConnect: "user:pass@tcp(localhost:3306)/gitviz",
			},
			expectError: false,
		},
		{
			name: "none backend",
			input: &ConfigRawInput{
				Limit:         10,
				Precision:     1,
				Output:        "text",
				SourcePathStr: ".",
				CacheBackend:  string(schema.NoneBackend),
			},
			expectError: false,
		},
		{
			name: "runs backend duplicating the cache sqlite file",
			input: &ConfigRawInput{
				Limit:          10,
				Precision:      1,
				Output:         "text",
				SourcePathStr:  ".",
				CacheBackend:   string(schema.SQLiteBackend),
				CacheDBConnect: "/tmp/gitviz_shared.db",
				RunsBackend:    string(schema.SQLiteBackend),
				RunsDBConnect:  "/tmp/gitviz_shared.db",
			},
			expectError: true,
		},
		{
			name: "runs backend with distinct sqlite file",
			input: &ConfigRawInput{
				Limit:          10,
				Precision:      1,
				Output:         "text",
				SourcePathStr:  ".",
				CacheBackend:   string(schema.SQLiteBackend),
				RunsBackend:    string(schema.SQLiteBackend),
				CacheDBConnect: "/tmp/gitviz_cache.db",
				RunsDBConnect:  "/tmp/gitviz_runs.db",
			},
			expectError: false,
			check: func(t *testing.T, cfg *Config) {
				assert.Equal(t, schema.SQLiteBackend, cfg.RunsBackend)
				assert.Equal(t, "/tmp/gitviz_runs.db", cfg.RunsDBConnect)
			},
		},
		{
			name: "absolute date filter",
			input: &ConfigRawInput{
				Limit:         10,
				Precision:     1,
				Output:        "text",
				SourcePathStr: ".",
				Date:          "2024-03-05",
			},
			expectError: false,
			check: func(t *testing.T, cfg *Config) {
				assert.Equal(t, "2024-03-05", cfg.FilterDate)
			},
		},
		{
			name: "relative date filter",
			input: &ConfigRawInput{
				Limit:         10,
				Precision:     1,
				Output:        "text",
				SourcePathStr: ".",
				Date:          "2 days ago",
			},
			expectError: false,
			check: func(t *testing.T, cfg *Config) {
				assert.NotEmpty(t, cfg.FilterDate)
				_, err := time.Parse(DateOnlyFormat, cfg.FilterDate)
				assert.NoError(t, err, "relative dates should resolve to YYYY-MM-DD")
			},
		},
		{
			name: "invalid date filter",
			input: &ConfigRawInput{
				Limit:         10,
				Precision:     1,
				Output:        "text",
				SourcePathStr: ".",
				Date:          "next tuesday",
			},
			expectError: true,
		},
		{
			name: "directory filter trims trailing slash",
			input: &ConfigRawInput{
				Limit:         10,
				Precision:     1,
				Output:        "text",
				SourcePathStr: ".",
				Dir:           "src/app/",
			},
			expectError: false,
			check: func(t *testing.T, cfg *Config) {
				assert.Equal(t, "src/app", cfg.FilterDir)
			},
		},
		{
			name: "negative tree depth",
			input: &ConfigRawInput{
				Limit:         10,
				Precision:     1,
				Output:        "text",
				SourcePathStr: ".",
				Depth:         -2,
			},
			expectError: true,
		},
		{
			name: "human readable timeout",
			input: &ConfigRawInput{
				Limit:         10,
				Precision:     1,
				Output:        "text",
				SourcePathStr: ".",
				Timeout:       "1 minute",
			},
			expectError: false,
			check: func(t *testing.T, cfg *Config) {
				assert.Equal(t, time.Minute, cfg.FetchTimeout)
			},
		},
		{
			name: "invalid timeout",
			input: &ConfigRawInput{
				Limit:         10,
				Precision:     1,
				Output:        "text",
				SourcePathStr: ".",
				Timeout:       "whenever",
			},
			expectError: true,
		},
		{
			name: "export repo resolution",
			input: &ConfigRawInput{
				Limit:         10,
				Precision:     1,
				Output:        "text",
				SourcePathStr: ".",
				ExportRepoStr: ".",
				Filter:        "src/",
			},
			expectError: false,
			setupMock: func(mock *MockGitClient, workDir string) {
				ctx := context.Background()
				mock.On("GetRepoRoot", ctx, workDir).Return("/mock/repo/root", nil)
			},
			check: func(t *testing.T, cfg *Config) {
				assert.Equal(t, "/mock/repo/root", cfg.ExportRepo)
				assert.Equal(t, ".", cfg.ExportOut)
				assert.Equal(t, "src", cfg.ExportFilter)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockClient := new(MockGitClient)

			// Dynamically determine the expected working directory
			workDir, err := filepath.Abs(".")
			require.NoError(t, err)

			if tt.setupMock != nil {
				tt.setupMock(mockClient, workDir)
			}

			// Set defaults for fields every invocation needs
			if tt.input.CacheBackend == "" {
				tt.input.CacheBackend = string(schema.SQLiteBackend)
			}
			if tt.input.Emoji == "" {
				tt.input.Emoji = "no"
			}
			if tt.input.Color == "" {
				tt.input.Color = "yes"
			}

			cfg := &Config{}
			ctx := context.Background()
			err = ProcessAndValidate(ctx, cfg, mockClient, tt.input)

			if tt.expectError {
				assert.Error(t, err, "contract.ProcessAndValidate should return an error for %s", tt.name)
			} else {
				require.NoError(t, err, "contract.ProcessAndValidate should not return an error for %s", tt.name)
				if tt.check != nil {
					tt.check(t, cfg)
				}
			}

			mockClient.AssertExpectations(t)
		})
	}
}

// TestResolveSourceRejectsFiles covers the filesystem shapes the table test
// above cannot express with fixed paths.
func TestResolveSourceRejectsFiles(t *testing.T) {
	tempDir := t.TempDir()
	tempFile := filepath.Join(tempDir, "lifecycle.json")
	require.NoError(t, os.WriteFile(tempFile, []byte("{}"), 0o644))

	baseInput := func(source string) *ConfigRawInput {
		return &ConfigRawInput{
			Limit:         10,
			Precision:     1,
			Output:        "text",
			Emoji:         "no",
			Color:         "no",
			CacheBackend:  string(schema.SQLiteBackend),
			SourcePathStr: source,
		}
	}

	t.Run("directory is accepted", func(t *testing.T) {
		cfg := &Config{}
		err := ProcessAndValidate(context.Background(), cfg, new(MockGitClient), baseInput(tempDir))
		require.NoError(t, err)
		assert.Equal(t, tempDir, cfg.SourcePath)
	})

	t.Run("plain file is rejected", func(t *testing.T) {
		cfg := &Config{}
		err := ProcessAndValidate(context.Background(), cfg, new(MockGitClient), baseInput(tempFile))
		assert.Error(t, err)
	})

	t.Run("missing path is rejected", func(t *testing.T) {
		cfg := &Config{}
		err := ProcessAndValidate(context.Background(), cfg, new(MockGitClient), baseInput(filepath.Join(tempDir, "nope")))
		assert.Error(t, err)
	})
}

func TestConfigClone(t *testing.T) {
	cfg := &Config{
		SourcePath:  "/tmp/exports",
		SourceKind:  schema.FileSource,
		ResultLimit: 25,
		Excludes:    []string{"vendor/", "*.min.js"},
	}

	clone := cfg.Clone()
	require.NotSame(t, cfg, clone)
	assert.Equal(t, cfg, clone)

	// Mutating the clone's slice must not leak back into the original.
	clone.Excludes[0] = "dist/"
	assert.Equal(t, "vendor/", cfg.Excludes[0])
}

func TestValidateDatabaseConnectionString(t *testing.T) {
	tests := []struct {
		name        string
		backend     schema.DatabaseBackend
		connStr     string
		expectError bool
	}{
		{"sqlite allows empty", schema.SQLiteBackend, "", false},
		{"none allows empty", schema.NoneBackend, "", false},
		{"mysql requires value", schema.MySQLBackend, "", true},
		{"mysql requires tcp host", schema.MySQLBackend, "user:pass/dbname", true},
		{"mysql well formed", schema.MySQLBackend, "user:pass@tcp(localhost:3306)/gitviz", false},
		{"postgres requires value", schema.PostgreSQLBackend, "", true},
		{"postgres requires host", schema.PostgreSQLBackend, "dbname=gitviz", true},
		{"postgres requires dbname", schema.PostgreSQLBackend, "host=localhost", true},
		{"postgres well formed", schema.PostgreSQLBackend, "host=localhost dbname=gitviz", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateDatabaseConnectionString("cache-db-connect", tt.backend, tt.connStr)
			if tt.expectError {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
