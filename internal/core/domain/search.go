package domain

// QueryOptions configures a search.
type QueryOptions struct {
	// Kind restricts results to a single media kind.
	// Empty means all kinds.
	Kind FileKind

	// Limit is the maximum number of results. Zero means the
	// service default.
	Limit int
}

// QueryResult is a single ranked search hit.
type QueryResult struct {
	// File is the matched file.
	File FileSummary `json:"file"`

	// Chunk is the best-scoring chunk, nil for filename-only matches.
	Chunk *Chunk `json:"chunk,omitempty"`

	// Score is the relevance score. Coverage (distinct query terms
	// present) dominates raw term frequency.
	Score float64 `json:"score"`

	// Snippet is a short text window around the match.
	Snippet string `json:"snippet"`
}
