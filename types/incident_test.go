package types

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewIncidentValid(t *testing.T) {
	at := time.Date(2025, 11, 3, 14, 32, 0, 0, time.UTC)
	inc, err := NewIncident("openai", "Chat Completions", "Degraded performance", "2025-11-03T14:32:00Z", at,
		"Elevated error rates", "https://status.openai.com/incidents/abc")
	require.NoError(t, err)

	assert.Equal(t, "openai", inc.Provider)
	assert.Equal(t, "Chat Completions", inc.Service)
	assert.Equal(t, "Degraded performance", inc.Status)
	assert.Equal(t, "2025-11-03T14:32:00Z", inc.Timestamp)
	assert.Equal(t, at, inc.At)
	assert.Equal(t, "Elevated error rates", inc.Description)
	assert.Equal(t, "https://status.openai.com/incidents/abc", inc.Link)
}

func TestNewIncidentTrimsFields(t *testing.T) {
	inc, err := NewIncident("  claude ", " API\n", "\tResolved ", "", time.Time{}, "", "")
	require.NoError(t, err)

	assert.Equal(t, "claude", inc.Provider)
	assert.Equal(t, "API", inc.Service)
	assert.Equal(t, "Resolved", inc.Status)
}

func TestNewIncidentRejectsBlankRequiredFields(t *testing.T) {
	cases := []struct {
		name                      string
		provider, service, status string
	}{
		{"empty provider", "", "API", "down"},
		{"whitespace provider", "   ", "API", "down"},
		{"empty service", "openai", "", "down"},
		{"whitespace service", "openai", "\t\n", "down"},
		{"empty status", "openai", "API", ""},
		{"whitespace status", "openai", "API", "  "},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := NewIncident(tc.provider, tc.service, tc.status, "now", time.Time{}, "", "")
			require.Error(t, err)
			assert.True(t, errors.Is(err, ErrInvalidIncident))
		})
	}
}

func TestDedupeKeyDeterministic(t *testing.T) {
	a, err := NewIncident("bolna", "Voice Service", "Investigating", "Mon, 03 Nov 2025 14:32:00 GMT", time.Time{}, "", "")
	require.NoError(t, err)
	b, err := NewIncident("bolna", "Voice Service", "Investigating", "Mon, 03 Nov 2025 14:32:00 GMT", time.Time{}, "", "")
	require.NoError(t, err)

	// Structural equality of inputs, not identity of values.
	assert.Equal(t, a.DedupeKey(), b.DedupeKey())
	assert.Equal(t, a.DedupeKey(), a.DedupeKey())
}

func TestDedupeKeyVariesWithInputs(t *testing.T) {
	base, err := NewIncident("bolna", "Voice Service", "Investigating", "t1", time.Time{}, "", "")
	require.NoError(t, err)

	changedTimestamp, err := NewIncident("bolna", "Voice Service", "Investigating", "t2", time.Time{}, "", "")
	require.NoError(t, err)
	changedStatus, err := NewIncident("bolna", "Voice Service", "Resolved", "t1", time.Time{}, "", "")
	require.NoError(t, err)
	changedProvider, err := NewIncident("claude", "Voice Service", "Investigating", "t1", time.Time{}, "", "")
	require.NoError(t, err)

	assert.NotEqual(t, base.DedupeKey(), changedTimestamp.DedupeKey())
	assert.NotEqual(t, base.DedupeKey(), changedStatus.DedupeKey())
	assert.NotEqual(t, base.DedupeKey(), changedProvider.DedupeKey())
}

func TestDedupeKeyIgnoresOptionalFields(t *testing.T) {
	a, err := NewIncident("claude", "API", "Monitoring", "t1", time.Time{}, "", "")
	require.NoError(t, err)

	b, err := NewIncident("claude", "API", "Monitoring", "t1", time.Time{},
		"extra detail", "https://status.example.com/incidents/abc")
	require.NoError(t, err)

	assert.Equal(t, a.DedupeKey(), b.DedupeKey())
}
