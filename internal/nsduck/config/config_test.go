package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/nsqlite/nsduck/binding"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func Test_validateEngine(t *testing.T) {
	tests := []struct {
		name    string
		engine  string
		wantErr bool
	}{
		{
			name:    "duckdb",
			engine:  "duckdb",
			wantErr: false,
		},
		{
			name:    "sqlite3",
			engine:  "sqlite3",
			wantErr: false,
		},
		{
			name:    "unknown engine",
			engine:  "postgres",
			wantErr: true,
		},
		{
			name:    "empty string",
			engine:  "",
			wantErr: true,
		},
		{
			name:    "case sensitive",
			engine:  "DuckDB",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validateEngine(tt.engine)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func Test_validatePath(t *testing.T) {
	assert.NoError(t, validatePath(":memory:"))
	assert.NoError(t, validatePath("./data/test.db"))
	assert.Error(t, validatePath(""))
	assert.Error(t, validatePath("   "))
}

func writeFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "options.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func Test_loadOptionsFile(t *testing.T) {
	tests := []struct {
		name     string
		content  string
		expected binding.Options
		wantErr  bool
	}{
		{
			name:     "scalar values",
			content:  "threads: 4\naccess_mode: read_only\nenable_progress_bar: false\n",
			expected: binding.Options{"threads": "4", "access_mode": "read_only", "enable_progress_bar": "false"},
		},
		{
			name:     "empty file",
			content:  "",
			expected: binding.Options{},
		},
		{
			name:     "null value",
			content:  "max_memory:\n",
			expected: binding.Options{"max_memory": ""},
		},
		{
			name:    "nested mapping",
			content: "threads:\n  value: 4\n",
			wantErr: true,
		},
		{
			name:    "sequence value",
			content: "threads: [1, 2]\n",
			wantErr: true,
		},
		{
			name:    "not a mapping",
			content: "- threads\n",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := loadOptionsFile(writeFile(t, tt.content))

			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
				assert.Equal(t, tt.expected, result)
			}
		})
	}

	t.Run("missing file", func(t *testing.T) {
		_, err := loadOptionsFile(filepath.Join(t.TempDir(), "missing.yaml"))
		assert.Error(t, err)
	})
}

func Test_mergeOptions(t *testing.T) {
	merged := mergeOptions(
		map[string]string{"threads": "4", "access_mode": "read_only"},
		map[string]string{"threads": "8"},
	)
	assert.Equal(t, binding.Options{"threads": "8", "access_mode": "read_only"}, merged)
	assert.Equal(t, binding.Options{}, mergeOptions(nil, nil))
}

func TestFinalize(t *testing.T) {
	t.Run("FlagsOverrideFile", func(t *testing.T) {
		cfg := Config{
			Path:        ":memory:",
			Engine:      "duckdb",
			Options:     map[string]string{"threads": "2"},
			OptionsFile: writeFile(t, "threads: 4\nmax_memory: 1GB\n"),
		}
		require.NoError(t, cfg.finalize())
		assert.Equal(t, binding.Options{"threads": "2", "max_memory": "1GB"}, cfg.EngineOptions)
	})

	t.Run("InvalidEngine", func(t *testing.T) {
		cfg := Config{Path: ":memory:", Engine: "mysql"}
		assert.Error(t, cfg.finalize())
	})
}
