package envstruct_test

import (
	"errors"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/raceprep/raceprep/internal/envstruct"
)

type testConfig struct {
	Addr    string        `env:"TEST_ADDR" envDefault:"localhost:0"`
	Secret  string        `env:"TEST_SECRET"`
	Retries int           `env:"TEST_RETRIES" envDefault:"3"`
	Debug   bool          `env:"TEST_DEBUG" envDefault:"false"`
	Timeout time.Duration `env:"TEST_TIMEOUT" envDefault:"60s"`
}

func TestPopulate(t *testing.T) {
	tests := []struct {
		name      string
		v         any
		lookupEnv func(string) (string, bool)
		want      any
		wantErr   error
	}{
		{
			name:      "nil",
			v:         nil,
			lookupEnv: func(_ string) (string, bool) { return "", false },
			want:      nil,
			wantErr:   envstruct.ErrInvalidValue,
		},
		{
			name:      "not pointer",
			v:         struct{}{},
			lookupEnv: func(_ string) (string, bool) { return "", false },
			want:      nil,
			wantErr:   envstruct.ErrInvalidValue,
		},
		{
			name:      "empty struct",
			v:         &struct{}{},
			lookupEnv: func(_ string) (string, bool) { return "", false },
			want:      &struct{}{},
			wantErr:   nil,
		},
		{
			name:      "missing required env",
			v:         &testConfig{},
			lookupEnv: func(_ string) (string, bool) { return "", false },
			want:      nil,
			wantErr:   envstruct.ErrEnvNotSet,
		},
		{
			name: "defaults with required env set",
			v:    &testConfig{},
			lookupEnv: func(name string) (string, bool) {
				if name == "TEST_SECRET" {
					return "hunter2", true
				}
				return "", false
			},
			want: &testConfig{
				Addr:    "localhost:0",
				Secret:  "hunter2",
				Retries: 3,
				Debug:   false,
				Timeout: 60 * time.Second,
			},
			wantErr: nil,
		},
		{
			name: "environment overrides defaults",
			v:    &testConfig{},
			lookupEnv: func(name string) (string, bool) {
				values := map[string]string{
					"TEST_ADDR":    "0.0.0.0:8080",
					"TEST_SECRET":  "whsec_123",
					"TEST_RETRIES": "5",
					"TEST_DEBUG":   "true",
					"TEST_TIMEOUT": "1m30s",
				}
				v, ok := values[name]
				return v, ok
			},
			want: &testConfig{
				Addr:    "0.0.0.0:8080",
				Secret:  "whsec_123",
				Retries: 5,
				Debug:   true,
				Timeout: 90 * time.Second,
			},
			wantErr: nil,
		},
		{
			name: "invalid int",
			v:    &testConfig{},
			lookupEnv: func(name string) (string, bool) {
				if name == "TEST_RETRIES" {
					return "many", true
				}
				if name == "TEST_SECRET" {
					return "x", true
				}
				return "", false
			},
			want:    nil,
			wantErr: envstruct.ErrInvalidValue,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := envstruct.Populate(tt.v, tt.lookupEnv)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("Populate() error = %v, want %v", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("Populate() unexpected error: %v", err)
			}
			if diff := cmp.Diff(tt.want, tt.v); diff != "" {
				t.Errorf("Populate() mismatch (-want +got):\n%s", diff)
			}
		})
	}
}
