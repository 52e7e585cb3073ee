package types

import (
	"errors"
	"testing"
)

func TestConfigValidate(t *testing.T) {
	tests := []struct {
		name    string
		config  Config
		wantErr error
	}{
		{
			name:    "empty board dir returns ErrBoardDirEmpty",
			config:  Config{BoardDir: ""},
			wantErr: ErrBoardDirEmpty,
		},
		{
			name:    "unknown adapter returns ErrAdapterUnknown",
			config:  Config{BoardDir: "/tmp/.kanban", Adapters: []string{"ralph", "jira"}},
			wantErr: ErrAdapterUnknown,
		},
		{
			name:    "unknown log level returns ErrLogLevelUnknown",
			config:  Config{BoardDir: "/tmp/.kanban", LogLevel: "trace"},
			wantErr: ErrLogLevelUnknown,
		},
		{
			name:    "unknown log format returns ErrLogFormatUnknown",
			config:  Config{BoardDir: "/tmp/.kanban", LogFormat: "xml"},
			wantErr: ErrLogFormatUnknown,
		},
		{
			name:    "minimal config",
			config:  Config{BoardDir: "/tmp/.kanban"},
			wantErr: nil,
		},
		{
			name: "full config",
			config: Config{
				BoardDir:  "/tmp/.kanban",
				Author:    "alice",
				Lock:      true,
				Adapters:  []string{AdapterRalph, AdapterSpecops, AdapterSpecArtifact},
				LogLevel:  "debug",
				LogFormat: "json",
			},
			wantErr: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.config.Validate()
			if tt.wantErr == nil {
				if err != nil {
					t.Fatalf("expected nil error, got %v", err)
				}
				return
			}
			if err == nil {
				t.Fatalf("expected error %v, got nil", tt.wantErr)
			}
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("expected error %v, got %v", tt.wantErr, err)
			}
		})
	}
}
