package services

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"unicode"

	"github.com/mediadex/mediadex/internal/core/domain"
	"github.com/mediadex/mediadex/internal/core/ports/driven"
	"github.com/mediadex/mediadex/internal/core/ports/driving"
	"github.com/mediadex/mediadex/internal/index"
	"github.com/mediadex/mediadex/internal/logger"
)

// Ensure SearchService implements the interface.
var _ driving.SearchService = (*SearchService)(nil)

const (
	// DefaultSearchLimit caps result counts when the caller does not.
	DefaultSearchLimit = 20

	// snippetRadius is the rune window either side of the first match.
	snippetRadius = 100

	// nameMatchWeight keeps filename-only hits below any content hit.
	// A content hit scores at least 1.0; a filename match on every
	// query term stays below it.
	nameMatchWeight = 0.1
)

// SearchService answers keyword queries over the index.
// Coverage ranks above frequency: a chunk containing more distinct
// query terms always outranks one with fewer, however often a single
// term repeats.
type SearchService struct {
	fileStore driven.FileStore
	index     driven.SearchIndex
}

// NewSearchService creates a new search service.
func NewSearchService(fileStore driven.FileStore, searchIndex driven.SearchIndex) *SearchService {
	return &SearchService{
		fileStore: fileStore,
		index:     searchIndex,
	}
}

// chunkMatch accumulates per-chunk term statistics for one query.
type chunkMatch struct {
	distinct int
	freq     int
}

// fileMatch is a candidate result before ranking.
type fileMatch struct {
	record     *domain.FileRecord
	chunkIndex int
	match      chunkMatch
	nameHits   int
}

// Search returns ranked results for the query.
func (s *SearchService) Search(ctx context.Context, query string, opts domain.QueryOptions) ([]domain.QueryResult, error) {
	terms := index.Normalize(query)
	if len(terms) == 0 {
		return []domain.QueryResult{}, nil
	}
	terms = dedupe(terms)

	limit := opts.Limit
	if limit <= 0 {
		limit = DefaultSearchLimit
	}

	chunkHits := make(map[string]map[int]*chunkMatch) // hash -> chunk index -> stats
	nameHits := make(map[string]int)                  // hash -> distinct name terms

	for _, term := range terms {
		postings, err := s.index.Lookup(ctx, term)
		if err != nil {
			return nil, fmt.Errorf("looking up %q: %w", term, err)
		}
		for _, p := range postings {
			byChunk, ok := chunkHits[p.FileHash]
			if !ok {
				byChunk = make(map[int]*chunkMatch)
				chunkHits[p.FileHash] = byChunk
			}
			m, ok := byChunk[p.ChunkIndex]
			if !ok {
				m = &chunkMatch{}
				byChunk[p.ChunkIndex] = m
			}
			m.distinct++
			m.freq += p.Frequency
		}

		hashes, err := s.index.LookupName(ctx, term)
		if err != nil {
			return nil, fmt.Errorf("looking up name %q: %w", term, err)
		}
		for _, h := range hashes {
			nameHits[h]++
		}
	}

	candidates, err := s.collect(ctx, chunkHits, nameHits, opts.Kind)
	if err != nil {
		return nil, err
	}

	sort.Slice(candidates, func(i, j int) bool {
		si, sj := score(candidates[i]), score(candidates[j])
		if si != sj {
			return si > sj
		}
		if !candidates[i].record.UploadedAt.Equal(candidates[j].record.UploadedAt) {
			return candidates[i].record.UploadedAt.After(candidates[j].record.UploadedAt)
		}
		return candidates[i].record.Hash < candidates[j].record.Hash
	})
	if len(candidates) > limit {
		candidates = candidates[:limit]
	}

	results, err := s.materialise(ctx, candidates, terms)
	if err != nil {
		return nil, err
	}

	logger.Debug("Search %q matched %d files", query, len(results))
	return results, nil
}

// collect resolves candidate hashes to records, merging content and
// filename matches and applying the kind filter before ranking.
func (s *SearchService) collect(ctx context.Context, chunkHits map[string]map[int]*chunkMatch, nameHits map[string]int, kind domain.FileKind) ([]fileMatch, error) {
	hashes := make(map[string]struct{}, len(chunkHits)+len(nameHits))
	for h := range chunkHits {
		hashes[h] = struct{}{}
	}
	for h := range nameHits {
		hashes[h] = struct{}{}
	}

	candidates := make([]fileMatch, 0, len(hashes))
	for hash := range hashes {
		record, err := s.fileStore.Get(ctx, hash)
		if err != nil {
			// The index can briefly trail a delete.
			logger.Debug("Indexed hash %s has no record: %v", shortHash(hash), err)
			continue
		}
		if kind != "" && record.Kind != kind {
			continue
		}

		candidate := fileMatch{record: record, chunkIndex: -1, nameHits: nameHits[hash]}
		for idx, m := range chunkHits[hash] {
			if candidate.chunkIndex == -1 || better(*m, candidate.match) ||
				(*m == candidate.match && idx < candidate.chunkIndex) {
				candidate.chunkIndex = idx
				candidate.match = *m
			}
		}
		candidates = append(candidates, candidate)
	}
	return candidates, nil
}

// better reports whether a beats b, coverage first.
func better(a, b chunkMatch) bool {
	if a.distinct != b.distinct {
		return a.distinct > b.distinct
	}
	return a.freq > b.freq
}

// score folds a candidate's statistics into one ranking value.
// Only distinct-term coverage and filename matches contribute. Raw
// term frequency selects the best chunk within a file but never ranks
// one file above another: equal-coverage files tie on score and the
// sort falls through to recency.
func score(c fileMatch) float64 {
	return float64(c.match.distinct) + nameMatchWeight*float64(c.nameHits)
}

// materialise loads chunk text and builds snippets for the final
// ranked slice.
func (s *SearchService) materialise(ctx context.Context, candidates []fileMatch, terms []string) ([]domain.QueryResult, error) {
	results := make([]domain.QueryResult, 0, len(candidates))
	for _, c := range candidates {
		chunks, err := s.fileStore.GetChunks(ctx, c.record.Hash)
		if err != nil {
			return nil, fmt.Errorf("loading chunks for %s: %w", shortHash(c.record.Hash), err)
		}

		result := domain.QueryResult{
			File:  c.record.Summary(len(chunks)),
			Score: score(c),
		}

		if c.chunkIndex >= 0 && c.chunkIndex < len(chunks) {
			chunk := chunks[c.chunkIndex]
			result.Chunk = &chunk
			result.Snippet = snippet(chunk.Text, terms)
		} else {
			result.Snippet = c.record.Name
		}
		results = append(results, result)
	}
	return results, nil
}

// snippet returns a window of text around the first query term found,
// with ellipses marking truncation.
func snippet(text string, terms []string) string {
	runes := []rune(text)

	// Lower rune by rune so offsets stay aligned with the original
	// text; full case folding can change rune counts.
	lower := strings.Map(unicode.ToLower, text)

	matchStart := -1
	for _, term := range terms {
		if i := strings.Index(lower, term); i >= 0 {
			// Convert the byte offset to a rune offset.
			pos := len([]rune(lower[:i]))
			if matchStart == -1 || pos < matchStart {
				matchStart = pos
			}
		}
	}
	if matchStart == -1 {
		matchStart = 0
	}

	start := matchStart - snippetRadius
	if start < 0 {
		start = 0
	}
	end := matchStart + snippetRadius
	if end > len(runes) {
		end = len(runes)
	}

	out := string(runes[start:end])
	if start > 0 {
		out = "..." + out
	}
	if end < len(runes) {
		out += "..."
	}
	return out
}

// dedupe removes repeated query terms while preserving order.
func dedupe(terms []string) []string {
	seen := make(map[string]struct{}, len(terms))
	out := terms[:0]
	for _, t := range terms {
		if _, ok := seen[t]; ok {
			continue
		}
		seen[t] = struct{}{}
		out = append(out, t)
	}
	return out
}
