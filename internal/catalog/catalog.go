// Package catalog fetches paper records from the arXiv public API. The
// engine itself never talks to the catalog; callers assemble the returned
// text into prompts.
package catalog

import "context"

// Paper is one catalog record, already flattened for the API and UI.
type Paper struct {
	Title      string   `json:"title"`
	Authors    []string `json:"authors"`
	Summary    string   `json:"summary"`
	Categories []string `json:"categories"`
	PDF        string   `json:"pdf,omitempty"`
	Published  string   `json:"published,omitempty"`
	Updated    string   `json:"updated,omitempty"`
}

// Client searches the paper catalog by topic.
type Client interface {
	Search(ctx context.Context, topic string, maxResults int) ([]Paper, error)
}
