package adapters

import (
	"context"
	"fmt"
	"log"
	"strings"
	"sync"
	"time"

	"statuswatch/extract"
	"statuswatch/fetch"
	"statuswatch/types"
)

// StructuredConfig declares a JSON-API provider in the statuspage proxy
// shape: a list endpoint for incidents and a summary endpoint that maps
// component ids to display names.
type StructuredConfig struct {
	Name          string
	IncidentsURL  string
	ComponentsURL string
	// IncidentsKey is the array field holding incidents in the list payload.
	IncidentsKey string
	// TitleField, CreatedField and LinkField name the incident-level
	// metadata fields on each incident object.
	TitleField   string
	CreatedField string
	LinkField    string
	// Rules locate the affected-components array inside one incident.
	Rules extract.StructuredRules
}

// StructuredAdapter polls a JSON incidents API. Extraction is the
// structured-payload strategy only; JSON sources are structurally
// reliable so there is no fallback chain, just a secondary call that
// resolves component ids to human-readable names.
type StructuredAdapter struct {
	cfg     StructuredConfig
	fetcher fetch.JSONFetcher

	mu         sync.Mutex
	components map[string]string
}

// NewStructuredAdapter builds a structured adapter over the given fetcher.
func NewStructuredAdapter(cfg StructuredConfig, fetcher fetch.JSONFetcher) *StructuredAdapter {
	return &StructuredAdapter{cfg: cfg, fetcher: fetcher}
}

// Name returns the provider identifier.
func (a *StructuredAdapter) Name() string { return a.cfg.Name }

// FetchLatest retrieves up to limit incidents in API order. Each raw item
// carries the decoded incident object as its payload.
func (a *StructuredAdapter) FetchLatest(ctx context.Context, limit int) ([]types.RawItem, error) {
	payload, err := a.fetcher.FetchJSON(ctx, a.cfg.IncidentsURL)
	if err != nil {
		return nil, fmt.Errorf("fetch incidents for %s: %w", a.cfg.Name, err)
	}

	list, ok := payload[a.cfg.IncidentsKey].([]any)
	if !ok {
		return nil, &fetch.Error{Kind: fetch.KindMalformed, URL: a.cfg.IncidentsURL,
			Err: fmt.Errorf("missing %q array", a.cfg.IncidentsKey)}
	}

	if limit > 0 && limit < len(list) {
		list = list[:limit]
	}

	items := make([]types.RawItem, 0, len(list))
	for _, elem := range list {
		obj, ok := elem.(map[string]any)
		if !ok {
			continue
		}
		created, _ := obj[a.cfg.CreatedField].(string)
		title, _ := obj[a.cfg.TitleField].(string)
		link, _ := obj[a.cfg.LinkField].(string)
		id, _ := obj["id"].(string)

		var createdAt time.Time
		if t, err := time.Parse(time.RFC3339, created); err == nil {
			createdAt = t
		}

		items = append(items, types.RawItem{
			ID:          id,
			Title:       title,
			Link:        link,
			Published:   created,
			PublishedAt: createdAt,
			Payload:     obj,
		})
	}
	return items, nil
}

// Extract runs the structured-payload strategy over the item's JSON
// payload and resolves component ids through the cached component map.
// A candidate without its own status text inherits the incident title.
func (a *StructuredAdapter) Extract(ctx context.Context, item types.RawItem) ([]types.Incident, error) {
	candidates, err := extract.Structured(item.Payload, a.cfg.Rules)
	if err != nil {
		return nil, err
	}

	incidents := make([]types.Incident, 0, len(candidates))
	for _, c := range candidates {
		status := c.Status
		if status == "" {
			status = item.Title
		}
		description := item.Title
		if description == strings.TrimSpace(status) {
			description = ""
		}
		inc, err := types.NewIncident(a.cfg.Name, a.resolve(ctx, c.Service), status, item.Published, item.PublishedAt, description, item.Link)
		if err != nil {
			log.Printf("%s: dropping candidate from incident %q: %v", a.cfg.Name, item.ID, err)
			continue
		}
		incidents = append(incidents, inc)
	}
	return incidents, nil
}

// resolve maps a component id to its display name, loading the component
// map on first use and refreshing it once on a miss. An id the provider
// never names resolves to itself.
func (a *StructuredAdapter) resolve(ctx context.Context, componentID string) string {
	a.mu.Lock()
	defer a.mu.Unlock()

	if a.components == nil {
		a.components = a.loadComponents(ctx)
	}
	if name, ok := a.components[componentID]; ok {
		return name
	}

	// Cache miss: the provider may have added components since load.
	a.components = a.loadComponents(ctx)
	if name, ok := a.components[componentID]; ok {
		return name
	}
	return componentID
}

// loadComponents fetches the summary endpoint and flattens its
// group/component structure into an id -> "Group - Component" map. A
// failed fetch leaves an empty map so the next miss retries.
func (a *StructuredAdapter) loadComponents(ctx context.Context) map[string]string {
	components := make(map[string]string)

	payload, err := a.fetcher.FetchJSON(ctx, a.cfg.ComponentsURL)
	if err != nil {
		log.Printf("%s: component map fetch failed: %v", a.cfg.Name, err)
		return components
	}

	summary, _ := payload["summary"].(map[string]any)
	structure, _ := summary["structure"].(map[string]any)
	items, _ := structure["items"].([]any)

	for _, elem := range items {
		obj, ok := elem.(map[string]any)
		if !ok {
			continue
		}
		group, _ := obj["group"].(map[string]any)
		groupName, _ := group["name"].(string)
		comps, _ := group["components"].([]any)
		for _, c := range comps {
			comp, ok := c.(map[string]any)
			if !ok {
				continue
			}
			id, _ := comp["component_id"].(string)
			name, _ := comp["name"].(string)
			if id == "" || name == "" {
				continue
			}
			if groupName != "" {
				name = groupName + " - " + name
			}
			components[id] = name
		}
	}
	return components
}
