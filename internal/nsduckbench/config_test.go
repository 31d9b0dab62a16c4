package nsduckbench

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func Test_validateEngines(t *testing.T) {
	tests := []struct {
		name    string
		engines []string
		wantErr bool
	}{
		{
			name:    "both engines",
			engines: []string{"duckdb", "sqlite3"},
			wantErr: false,
		},
		{
			name:    "single engine",
			engines: []string{"sqlite3"},
			wantErr: false,
		},
		{
			name:    "unknown engine",
			engines: []string{"duckdb", "mysql"},
			wantErr: true,
		},
		{
			name:    "no engines",
			engines: nil,
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validateEngines(tt.engines)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func Test_validatePositive(t *testing.T) {
	assert.NoError(t, validatePositive("workers", 1))
	assert.Error(t, validatePositive("workers", 0))
	assert.Error(t, validatePositive("workers", -3))
}

func TestConfigValidate(t *testing.T) {
	valid := Config{
		Engines:  []string{"duckdb"},
		Sessions: 2,
		Workers:  4,
		Inserts:  10,
		Reads:    10,
		Series:   10,
	}
	assert.NoError(t, valid.validate())

	invalid := valid
	invalid.Sessions = 0
	assert.ErrorContains(t, invalid.validate(), "sessions")
}
