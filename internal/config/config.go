package config

import (
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/spf13/pflag"
)

// Output formats.
const (
	FormatText = "text"
	FormatJSON = "json"
)

// DefaultSamples is the number of reads used to measure each reader's cost.
const DefaultSamples = 100_000

// ErrVersionRequested is returned by ParseArgs after printing version
// information; the caller should exit successfully.
var ErrVersionRequested = errors.New("version requested")

// CustomAttribute represents a user-defined span attribute with an expression
type CustomAttribute struct {
	Name       string
	Expression string
}

// Config holds the parsed command-line configuration
type Config struct {
	// AllowMonotonic lets the wall-clock reader use a monotonic clock
	AllowMonotonic bool
	// Hold is how long to wait before re-measuring for a spanning fit.
	// Zero means a single calibration set.
	Hold time.Duration
	// Samples is the number of reads per reader cost measurement
	Samples int
	// Format is the report format (text or json)
	Format string
	// Textfile is the Prometheus textfile path, empty to skip
	Textfile string
	// ExportOTEL enables span export over OTLP/HTTP
	ExportOTEL bool
	// TraceID is a 32 hex char trace ID, or any string to hash into one
	TraceID string
	// LogLevel is a logrus level name
	LogLevel string
	// CustomAttributes are user-defined span attributes
	CustomAttributes []CustomAttribute
}

// ParseArgs parses command-line arguments and returns a Config.
// Defaults come from env; flags override them. Usage and version output go
// to out.
func ParseArgs(args []string, env *EnvConfig, out io.Writer, version, commit, date string) (*Config, error) {
	if len(args) == 0 {
		return nil, fmt.Errorf("no arguments provided")
	}
	if env == nil {
		env = &EnvConfig{}
	}

	programName := args[0]
	fs := pflag.NewFlagSet(programName, pflag.ContinueOnError)
	fs.SetOutput(out)
	fs.Usage = func() {
		fmt.Fprintf(out, "Usage: %s [flags]\n\nCalibrates the approximate clock against the wall clock and reports the result.\n\nFlags:\n", programName)
		fs.PrintDefaults()
	}

	cfg := &Config{}
	var attrs []string
	var showVersion bool

	fs.BoolVarP(&cfg.AllowMonotonic, "monotonic", "m", env.Monotonic, "allow a monotonic wall clock")
	fs.DurationVarP(&cfg.Hold, "hold", "H", 0, "wait this long, then re-measure and fit across both calibration sets")
	fs.IntVarP(&cfg.Samples, "samples", "n", DefaultSamples, "reads per reader cost measurement")
	fs.StringVarP(&cfg.Format, "format", "f", env.Format, "report format: text or json")
	fs.StringVar(&cfg.Textfile, "textfile", env.Textfile, "write calibration gauges to this Prometheus textfile")
	fs.BoolVar(&cfg.ExportOTEL, "otel", false, "export calibration spans over OTLP/HTTP")
	fs.StringVarP(&cfg.TraceID, "trace-id", "t", "", "trace ID: 32 hex chars, other strings are hashed")
	fs.StringArrayVarP(&attrs, "attribute", "a", nil, "extra span attribute as name=expression (repeatable)")
	fs.StringVar(&cfg.LogLevel, "log-level", env.LogLevel, "log level")
	fs.BoolVarP(&showVersion, "version", "v", false, "print version and exit")

	if err := fs.Parse(args[1:]); err != nil {
		return nil, err
	}

	if showVersion {
		fmt.Fprintf(out, "%s %s (commit: %s, built: %s)\n", programName, version, commit, date)
		return nil, ErrVersionRequested
	}

	if fs.NArg() > 0 {
		return nil, fmt.Errorf("unexpected arguments: %s", strings.Join(fs.Args(), " "))
	}

	if cfg.Format == "" {
		cfg.Format = FormatText
	}
	if cfg.Format != FormatText && cfg.Format != FormatJSON {
		return nil, fmt.Errorf("invalid format %q: must be %s or %s", cfg.Format, FormatText, FormatJSON)
	}
	if cfg.Samples <= 0 {
		return nil, fmt.Errorf("--samples must be positive, got %d", cfg.Samples)
	}
	if cfg.Hold < 0 {
		return nil, fmt.Errorf("--hold must not be negative, got %v", cfg.Hold)
	}
	if cfg.LogLevel == "" {
		cfg.LogLevel = "info"
	}

	for _, raw := range attrs {
		attr, err := ParseCustomAttribute(raw)
		if err != nil {
			return nil, err
		}
		cfg.CustomAttributes = append(cfg.CustomAttributes, attr)
	}

	return cfg, nil
}

// ParseCustomAttribute parses a name=expression pair. Only the first '='
// separates the name, so expressions may contain '=='.
func ParseCustomAttribute(raw string) (CustomAttribute, error) {
	name, expression, found := strings.Cut(raw, "=")
	if !found {
		return CustomAttribute{}, fmt.Errorf("invalid attribute %q: expected name=expression", raw)
	}
	name = strings.TrimSpace(name)
	if name == "" {
		return CustomAttribute{}, fmt.Errorf("invalid attribute %q: name is empty", raw)
	}
	if strings.TrimSpace(expression) == "" {
		return CustomAttribute{}, fmt.Errorf("invalid attribute %q: expression is empty", raw)
	}
	return CustomAttribute{Name: name, Expression: expression}, nil
}
