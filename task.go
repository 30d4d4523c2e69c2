package newsrank

import "context"

// Engine names used in source rows.
const (
	EngineBrowser = "edge"
	EngineHTTP    = "http"
)

// Task is one page to fetch and the parser to apply to it.
type Task struct {
	ID         string `json:"task_id"`
	URL        string `json:"url"`
	ParserName string `json:"parser_name"`
	Action     string `json:"action_name"`
	FilterName string `json:"filter_name"`
	Engine     string `json:"engine"`
}

// SourceRow is one operator-configured source before keyword expansion.
type SourceRow struct {
	BaseURL    string
	Enabled    bool
	ParserName string
	Action     string
	SearchName string
	FilterName string
	Engine     string
}

// SourceReader reads the operator's source table.
type SourceReader interface {
	ReadSources(ctx context.Context) ([]SourceRow, error)
}

// NoKeywordSet disables keyword expansion for a source row.
const NoKeywordSet = "NONE"

// KeywordSets holds the search keyword lists used to expand source rows.
type KeywordSets struct {
	// Mapping redirects a search name to the name of a list or combination.
	Mapping map[string]string
	// Lists are plain keyword lists.
	Lists map[string][]string
	// Combinations concatenate other lists, dropping repeated keywords.
	Combinations map[string][]string
}

// Resolve returns the keywords for a search name, or nil when the row
// should not be expanded.
func (s *KeywordSets) Resolve(name string) []string {
	if name == "" || name == NoKeywordSet {
		return nil
	}
	if mapped, ok := s.Mapping[name]; ok {
		name = mapped
	}
	if name == "" || name == NoKeywordSet {
		return nil
	}

	if sources, ok := s.Combinations[name]; ok {
		var out []string
		seen := make(map[string]bool)
		for _, src := range sources {
			for _, kw := range s.Lists[src] {
				if seen[kw] {
					continue
				}
				seen[kw] = true
				out = append(out, kw)
			}
		}
		return out
	}

	return s.Lists[name]
}
