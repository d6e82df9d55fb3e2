package console

import (
	"bytes"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"statuswatch/types"
)

func TestPrinterEmitRendersIncident(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	inc, err := types.NewIncident("openai", "API - Chat Completions", "Degraded performance",
		"2025-11-03T14:32:00Z", time.Date(2025, 11, 3, 14, 32, 0, 0, time.UTC), "", "")
	require.NoError(t, err)

	p.Emit(inc)

	out := buf.String()
	assert.Contains(t, out, "2025-11-03 14:32:00")
	assert.Contains(t, out, "openai")
	assert.Contains(t, out, "API - Chat Completions")
	assert.Contains(t, out, "Degraded performance")
}

func TestPrinterFallsBackToRawTimestamp(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	inc, err := types.NewIncident("bolna", "Voice Service", "Investigating",
		"sometime on Monday", time.Time{}, "", "")
	require.NoError(t, err)

	p.Emit(inc)
	assert.Contains(t, buf.String(), "sometime on Monday")
}

func TestPrinterUnknownTime(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	inc, err := types.NewIncident("bolna", "API", "Resolved", "", time.Time{}, "", "")
	require.NoError(t, err)

	p.Emit(inc)
	assert.Contains(t, buf.String(), "unknown time")
}

func TestBannerListsProviders(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	p.Banner([]string{"openai", "claude"}, 15*time.Second)

	out := buf.String()
	assert.Contains(t, out, "2 provider(s)")
	assert.Contains(t, out, "openai")
	assert.Contains(t, out, "claude")
}
