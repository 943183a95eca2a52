package attributes

import (
	"crypto/sha256"
	"encoding/hex"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolveTraceID_Empty(t *testing.T) {
	traceID, warnings := ResolveTraceID("")

	assert.False(t, traceID.IsValid())
	assert.Empty(t, warnings)
}

func TestResolveTraceID_ValidHex(t *testing.T) {
	raw := "a1b2c3d4e5f6a1b2c3d4e5f6a1b2c3d4"

	traceID, warnings := ResolveTraceID(raw)

	assert.Equal(t, raw, traceID.String())
	assert.Empty(t, warnings)
}

func TestResolveTraceID_Hashed(t *testing.T) {
	tests := []string{
		"abc123",
		"zzzzzzzzzzzzzzzzzzzzzzzzzzzzzzzz", // right length, not hex
		"A1B2C3D4E5F6A1B2C3D4E5F6A1B2C3D4E5", // too long
	}

	for _, raw := range tests {
		t.Run(raw, func(t *testing.T) {
			traceID, warnings := ResolveTraceID(raw)

			hash := sha256.Sum256([]byte(raw))
			assert.Equal(t, hex.EncodeToString(hash[:16]), traceID.String())
			assert.True(t, traceID.IsValid())
			require.Len(t, warnings, 2)
			assert.Equal(t, raw, warnings[0].Value.AsString())
		})
	}
}

func TestResolveTraceID_Deterministic(t *testing.T) {
	first, _ := ResolveTraceID("run-42")
	second, _ := ResolveTraceID("run-42")

	assert.Equal(t, first, second)
}
