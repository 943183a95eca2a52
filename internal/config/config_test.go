package config

import (
	"bytes"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/attribute"
)

const testTraceID = "a1b2c3d4e5f6a1b2c3d4e5f6a1b2c3d4"

func parse(t *testing.T, args ...string) (*Config, error) {
	t.Helper()
	var out bytes.Buffer
	return ParseArgs(append([]string{"clockcal"}, args...), nil, &out, "v1.2.3", "abc123", "2026-01-01")
}

func TestParseArgs_Defaults(t *testing.T) {
	cfg, err := parse(t)

	require.NoError(t, err)
	assert.False(t, cfg.AllowMonotonic)
	assert.Zero(t, cfg.Hold)
	assert.Equal(t, DefaultSamples, cfg.Samples)
	assert.Equal(t, FormatText, cfg.Format)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.False(t, cfg.ExportOTEL)
	assert.Empty(t, cfg.TraceID)
	assert.Empty(t, cfg.CustomAttributes)
}

func TestParseArgs_AllFlags(t *testing.T) {
	cfg, err := parse(t,
		"--monotonic",
		"--hold", "250ms",
		"--samples", "500",
		"--format", "json",
		"--textfile", "/tmp/clock.prom",
		"--otel",
		"--trace-id", testTraceID,
		"--log-level", "debug",
	)

	require.NoError(t, err)
	assert.True(t, cfg.AllowMonotonic)
	assert.Equal(t, 250*time.Millisecond, cfg.Hold)
	assert.Equal(t, 500, cfg.Samples)
	assert.Equal(t, FormatJSON, cfg.Format)
	assert.Equal(t, "/tmp/clock.prom", cfg.Textfile)
	assert.True(t, cfg.ExportOTEL)
	assert.Equal(t, testTraceID, cfg.TraceID)
	assert.Equal(t, "debug", cfg.LogLevel)
}

func TestParseArgs_ShortForms(t *testing.T) {
	cfg, err := parse(t, "-m", "-H", "1s", "-n", "10", "-f", "json", "-t", "abc123")

	require.NoError(t, err)
	assert.True(t, cfg.AllowMonotonic)
	assert.Equal(t, time.Second, cfg.Hold)
	assert.Equal(t, 10, cfg.Samples)
	assert.Equal(t, FormatJSON, cfg.Format)
	assert.Equal(t, "abc123", cfg.TraceID)
}

func TestParseArgs_EnvDefaults(t *testing.T) {
	env := &EnvConfig{Format: FormatJSON, LogLevel: "warn", Monotonic: true, Textfile: "/var/lib/node/clock.prom"}
	var out bytes.Buffer

	cfg, err := ParseArgs([]string{"clockcal"}, env, &out, "", "", "")
	require.NoError(t, err)
	assert.Equal(t, FormatJSON, cfg.Format)
	assert.Equal(t, "warn", cfg.LogLevel)
	assert.True(t, cfg.AllowMonotonic)
	assert.Equal(t, "/var/lib/node/clock.prom", cfg.Textfile)

	// Flags win over the environment.
	cfg, err = ParseArgs([]string{"clockcal", "-f", "text", "--monotonic=false"}, env, &out, "", "", "")
	require.NoError(t, err)
	assert.Equal(t, FormatText, cfg.Format)
	assert.False(t, cfg.AllowMonotonic)
}

func TestParseArgs_MultipleCustomAttributes(t *testing.T) {
	cfg, err := parse(t,
		"-a", `host=env["HOSTNAME"]`,
		"--attribute", `check=unit == "cycles"`,
	)

	require.NoError(t, err)
	require.Len(t, cfg.CustomAttributes, 2)
	assert.Equal(t, "host", cfg.CustomAttributes[0].Name)
	assert.Equal(t, `env["HOSTNAME"]`, cfg.CustomAttributes[0].Expression)
	assert.Equal(t, "check", cfg.CustomAttributes[1].Name)
	assert.Equal(t, `unit == "cycles"`, cfg.CustomAttributes[1].Expression)
}

func TestParseArgs_Errors(t *testing.T) {
	tests := []struct {
		name    string
		args    []string
		wantErr string
	}{
		{name: "bad format", args: []string{"-f", "yaml"}, wantErr: "invalid format"},
		{name: "zero samples", args: []string{"-n", "0"}, wantErr: "--samples must be positive"},
		{name: "negative hold", args: []string{"-H", "-1s"}, wantErr: "--hold must not be negative"},
		{name: "stray argument", args: []string{"extra"}, wantErr: "unexpected arguments: extra"},
		{name: "attribute without equals", args: []string{"-a", "invalid_no_equals"}, wantErr: "expected name=expression"},
		{name: "unknown flag", args: []string{"--bogus"}, wantErr: "unknown flag"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg, err := parse(t, tt.args...)
			require.Error(t, err)
			assert.Nil(t, cfg)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestParseArgs_NoArguments(t *testing.T) {
	_, err := ParseArgs(nil, nil, &bytes.Buffer{}, "", "", "")
	assert.Error(t, err)
}

func TestParseArgs_Version(t *testing.T) {
	var out bytes.Buffer
	cfg, err := ParseArgs([]string{"clockcal", "--version"}, nil, &out, "v1.2.3", "abc123", "2026-01-01")

	assert.ErrorIs(t, err, ErrVersionRequested)
	assert.Nil(t, cfg)
	assert.Equal(t, "clockcal v1.2.3 (commit: abc123, built: 2026-01-01)\n", out.String())
}

func TestParseCustomAttribute(t *testing.T) {
	tests := []struct {
		raw     string
		want    CustomAttribute
		wantErr bool
	}{
		{raw: "foo=bar", want: CustomAttribute{Name: "foo", Expression: "bar"}},
		{raw: `check=foo=="bar"`, want: CustomAttribute{Name: "check", Expression: `foo=="bar"`}},
		{raw: " spaced =rate", want: CustomAttribute{Name: "spaced", Expression: "rate"}},
		{raw: "=value", wantErr: true},
		{raw: "name=", wantErr: true},
		{raw: "name=   ", wantErr: true},
		{raw: "noequals", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			got, err := ParseCustomAttribute(tt.raw)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseEnvConfig(t *testing.T) {
	t.Setenv("CLOCKCAL_FORMAT", "json")
	t.Setenv("CLOCKCAL_MONOTONIC", "true")
	t.Setenv("CLOCKCAL_TEXTFILE", "/tmp/x.prom")

	cfg, err := ParseEnvConfig()
	require.NoError(t, err)
	assert.Equal(t, "json", cfg.Format)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.True(t, cfg.Monotonic)
	assert.Equal(t, "/tmp/x.prom", cfg.Textfile)
}

func TestParseEnvConfig_InvalidBool(t *testing.T) {
	t.Setenv("CLOCKCAL_MONOTONIC", "sometimes")

	_, err := ParseEnvConfig()
	assert.Error(t, err)
}

func TestOTELConfig_GetEndpoint(t *testing.T) {
	tests := []struct {
		name string
		cfg  OTELConfig
		want string
	}{
		{name: "default", cfg: OTELConfig{}, want: DefaultOTLPEndpoint},
		{name: "exporter endpoint", cfg: OTELConfig{ExporterEndpoint: "collector:4318"}, want: "collector:4318"},
		{name: "traces endpoint wins", cfg: OTELConfig{ExporterEndpoint: "a:1", TracesEndpoint: "b:2"}, want: "b:2"},
		{name: "scheme stripped", cfg: OTELConfig{ExporterEndpoint: "http://collector:4318/"}, want: "collector:4318"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.cfg.GetEndpoint())
		})
	}
}

func TestParseOTELConfig_ResourceAttributes(t *testing.T) {
	t.Setenv("OTEL_SERVICE_NAME", "calibrator")
	t.Setenv("OTEL_RESOURCE_ATTRIBUTES", "team=perf,deployment.environment=staging")

	cfg, err := ParseOTELConfig()
	require.NoError(t, err)
	assert.Equal(t, "calibrator", cfg.ServiceName)
	assert.Equal(t, []attribute.KeyValue{
		attribute.String("deployment.environment", "staging"),
		attribute.String("team", "perf"),
	}, cfg.ResourceAttributeList())
}

func TestOTELConfig_NoResourceAttributes(t *testing.T) {
	cfg := &OTELConfig{}
	assert.Nil(t, cfg.ResourceAttributeList())
}
