package types

import (
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"strings"
	"time"
)

// ErrInvalidIncident indicates a construction attempt with an empty
// required field. The offending raw item should be dropped, not retried.
var ErrInvalidIncident = errors.New("invalid incident")

// Incident is one normalized service/status update from a provider.
// Values are never mutated after construction; an update is a new Incident.
type Incident struct {
	Provider    string    `json:"provider"`
	Service     string    `json:"service"`
	Status      string    `json:"status"`
	Timestamp   string    `json:"timestamp"`
	At          time.Time `json:"at,omitempty"`
	Description string    `json:"description,omitempty"`
	Link        string    `json:"link,omitempty"`
}

// NewIncident validates and builds an Incident. Provider, service and
// status must be non-blank; timestamp is kept as provider-supplied text
// and parsedAt may be zero when the text had no recognizable instant.
// Description and link are optional and may be empty.
func NewIncident(provider, service, status, timestamp string, parsedAt time.Time, description, link string) (Incident, error) {
	if strings.TrimSpace(provider) == "" {
		return Incident{}, fmt.Errorf("%w: empty provider", ErrInvalidIncident)
	}
	if strings.TrimSpace(service) == "" {
		return Incident{}, fmt.Errorf("%w: empty service", ErrInvalidIncident)
	}
	if strings.TrimSpace(status) == "" {
		return Incident{}, fmt.Errorf("%w: empty status", ErrInvalidIncident)
	}
	return Incident{
		Provider:    strings.TrimSpace(provider),
		Service:     strings.TrimSpace(service),
		Status:      strings.TrimSpace(status),
		Timestamp:   timestamp,
		At:          parsedAt,
		Description: description,
		Link:        link,
	}, nil
}

// DedupeKey derives a stable identity from provider, service, status and
// timestamp. Two incidents with equal keys are the same event.
func (i Incident) DedupeKey() string {
	hash := sha256.Sum256([]byte(i.Provider + "\x00" + i.Service + "\x00" + i.Status + "\x00" + i.Timestamp))
	return hex.EncodeToString(hash[:])[:16]
}

// Candidate is a service/status pair recovered by one extraction strategy,
// before it is tagged with provider and item metadata.
type Candidate struct {
	Service string
	Status  string
}

// RawItem is one fetched item from a provider, discarded after extraction.
// Feed-based providers fill the entry fields; structured providers carry
// the decoded JSON object in Payload.
type RawItem struct {
	ID          string
	Title       string
	Link        string
	Published   string
	PublishedAt time.Time
	Description string
	Payload     map[string]any
}
