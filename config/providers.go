package config

import (
	"statuswatch/adapters"
	"statuswatch/extract"
)

// ProviderPreset declares one built-in provider. Exactly one of Feed or
// Structured is set.
type ProviderPreset struct {
	Key        string
	Feed       *adapters.FeedConfig
	Structured *adapters.StructuredConfig
}

// ProviderPresets returns the providers the monitor watches out of the
// box. Keyword rule order is significant: the first matching rule wins.
func ProviderPresets() []ProviderPreset {
	return []ProviderPreset{
		{
			Key: "openai",
			Structured: &adapters.StructuredConfig{
				Name:          "openai",
				IncidentsURL:  "https://status.openai.com/api/v2/incidents.json",
				ComponentsURL: "https://status.openai.com/proxy/status.openai.com",
				IncidentsKey:  "incidents",
				TitleField:    "name",
				CreatedField:  "created_at",
				LinkField:     "shortlink",
				Rules: extract.StructuredRules{
					Path:        []string{"components"},
					IDField:     "id",
					StatusField: "status",
				},
			},
		},
		{
			Key: "claude",
			Feed: &adapters.FeedConfig{
				Name:          "claude",
				FeedURL:       "https://status.claude.com/history.rss",
				DetailVariant: extract.VariantStatuspage,
				KeywordRules: []extract.KeywordRule{
					{Keyword: "api", Service: "Claude API"},
					{Keyword: "claude.ai", Service: "claude.ai"},
					{Keyword: "web", Service: "claude.ai"},
					{Keyword: "platform", Service: "platform.claude.com"},
					{Keyword: "console", Service: "Console"},
				},
			},
		},
		{
			Key: "bolna",
			Feed: &adapters.FeedConfig{
				Name:          "bolna",
				FeedURL:       "https://status.bolna.ai/feed.rss",
				DetailVariant: extract.VariantBetterstack,
				KeywordRules: []extract.KeywordRule{
					{Keyword: "twilio", Service: "Twilio"},
					{Keyword: "voice", Service: "Voice Service"},
					{Keyword: "api", Service: "API"},
					{Keyword: "webhook", Service: "Webhooks"},
				},
			},
		},
	}
}
