package types

import "errors"

// Config holds the settings a board store and its callers run with.
type Config struct {
	BoardDir  string   `json:"board_dir" yaml:"board_dir"`
	Author    string   `json:"author" yaml:"author"`
	Lock      bool     `json:"lock" yaml:"lock"`
	Adapters  []string `json:"adapters" yaml:"adapters"`
	LogLevel  string   `json:"log_level" yaml:"log_level"`
	LogFormat string   `json:"log_format" yaml:"log_format"`
}

// Enrichment adapter names.
const (
	AdapterRalph        = "ralph"
	AdapterSpecops      = "specops"
	AdapterSpecArtifact = "specArtifact"
)

// Config validation errors.
var (
	ErrBoardDirEmpty    = errors.New("board directory must not be empty")
	ErrAdapterUnknown   = errors.New("unknown adapter")
	ErrLogLevelUnknown  = errors.New("unknown log level")
	ErrLogFormatUnknown = errors.New("unknown log format")
)

var knownAdapters = map[string]bool{
	AdapterRalph:        true,
	AdapterSpecops:      true,
	AdapterSpecArtifact: true,
}

var knownLogLevels = map[string]bool{
	"":        true,
	"debug":   true,
	"info":    true,
	"warn":    true,
	"warning": true,
	"error":   true,
}

var knownLogFormats = map[string]bool{
	"":       true,
	"text":   true,
	"json":   true,
	"logfmt": true,
}

// Validate checks that the Config is well-formed. It returns a sentinel
// error from this package on failure.
func (c Config) Validate() error {
	if c.BoardDir == "" {
		return ErrBoardDirEmpty
	}
	for _, a := range c.Adapters {
		if !knownAdapters[a] {
			return ErrAdapterUnknown
		}
	}
	if !knownLogLevels[c.LogLevel] {
		return ErrLogLevelUnknown
	}
	if !knownLogFormats[c.LogFormat] {
		return ErrLogFormatUnknown
	}
	return nil
}
