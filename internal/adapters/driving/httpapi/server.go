// Package httpapi exposes the services over HTTP.
//
// The surface is a small JSON API: multipart uploads, library listing
// and deletion, keyword search and index rebuild. Uploads are bounded
// by a weighted semaphore so a burst of large files cannot exhaust
// memory with concurrent extractions.
package httpapi

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/semaphore"

	"github.com/mediadex/mediadex/internal/core/domain"
	"github.com/mediadex/mediadex/internal/core/ports/driving"
	"github.com/mediadex/mediadex/internal/logger"
)

// defaultMaxConcurrentIngests bounds simultaneous extraction work.
const defaultMaxConcurrentIngests = 4

// Server is the HTTP transport over the driving services.
type Server struct {
	ingest  driving.IngestService
	library driving.LibraryService
	search  driving.SearchService

	maxUploadBytes int64
	ingestSem      *semaphore.Weighted
	startedAt      time.Time
}

// Option configures the server.
type Option func(*Server)

// WithUploadLimit overrides the per-request body size limit.
func WithUploadLimit(n int64) Option {
	return func(s *Server) {
		if n > 0 {
			s.maxUploadBytes = n
		}
	}
}

// WithMaxConcurrentIngests overrides the ingest concurrency bound.
func WithMaxConcurrentIngests(n int64) Option {
	return func(s *Server) {
		if n > 0 {
			s.ingestSem = semaphore.NewWeighted(n)
		}
	}
}

// NewServer creates a server over the given services.
func NewServer(ingest driving.IngestService, library driving.LibraryService, search driving.SearchService, opts ...Option) *Server {
	s := &Server{
		ingest:         ingest,
		library:        library,
		search:         search,
		maxUploadBytes: 100 << 20,
		ingestSem:      semaphore.NewWeighted(defaultMaxConcurrentIngests),
		startedAt:      time.Now(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Handler builds the route table.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("POST /upload/{kind}", s.handleUpload)
	mux.HandleFunc("GET /search", s.handleSearch)
	mux.HandleFunc("GET /files", s.handleList)
	mux.HandleFunc("GET /files/{hash}", s.handleGet)
	mux.HandleFunc("DELETE /files/{hash}", s.handleDelete)
	mux.HandleFunc("POST /reindex", s.handleReindex)
	mux.HandleFunc("GET /api/status", s.handleStatus)
	return s.withRequestID(mux)
}

// withRequestID tags every request with an ID for log correlation.
func (s *Server) withRequestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := uuid.NewString()
		w.Header().Set("X-Request-ID", id)
		logger.Debug("[%s] %s %s", id[:8], r.Method, r.URL.Path)
		next.ServeHTTP(w, r)
	})
}

func (s *Server) handleUpload(w http.ResponseWriter, r *http.Request) {
	kind, err := domain.ParseFileKind(r.PathValue("kind"))
	if err != nil {
		writeError(w, err)
		return
	}

	if err := s.ingestSem.Acquire(r.Context(), 1); err != nil {
		writeError(w, err)
		return
	}
	defer s.ingestSem.Release(1)

	r.Body = http.MaxBytesReader(w, r.Body, s.maxUploadBytes)
	if err := r.ParseMultipartForm(32 << 20); err != nil {
		writeError(w, fmt.Errorf("%w: %v", domain.ErrInvalidInput, err))
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		writeError(w, fmt.Errorf("%w: missing file field", domain.ErrInvalidInput))
		return
	}
	defer file.Close()

	content, err := io.ReadAll(file)
	if err != nil {
		writeError(w, fmt.Errorf("reading upload: %w", err))
		return
	}

	summary, err := s.ingest.Ingest(r.Context(), kind, header.Filename, content)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, summary)
}

func (s *Server) handleSearch(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	opts := domain.QueryOptions{}
	if kindParam := q.Get("kind"); kindParam != "" {
		kind, err := domain.ParseFileKind(kindParam)
		if err != nil {
			writeError(w, err)
			return
		}
		opts.Kind = kind
	}
	if limitParam := q.Get("limit"); limitParam != "" {
		limit, err := strconv.Atoi(limitParam)
		if err != nil || limit < 0 {
			writeError(w, fmt.Errorf("%w: bad limit", domain.ErrInvalidInput))
			return
		}
		opts.Limit = limit
	}

	results, err := s.search.Search(r.Context(), q.Get("q"), opts)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"query":   q.Get("q"),
		"count":   len(results),
		"results": results,
	})
}

func (s *Server) handleList(w http.ResponseWriter, r *http.Request) {
	var kind domain.FileKind
	if kindParam := r.URL.Query().Get("kind"); kindParam != "" {
		parsed, err := domain.ParseFileKind(kindParam)
		if err != nil {
			writeError(w, err)
			return
		}
		kind = parsed
	}

	summaries, err := s.library.List(r.Context(), kind)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"count": len(summaries),
		"files": summaries,
	})
}

func (s *Server) handleGet(w http.ResponseWriter, r *http.Request) {
	detail, err := s.library.Get(r.Context(), r.PathValue("hash"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, detail)
}

func (s *Server) handleDelete(w http.ResponseWriter, r *http.Request) {
	if err := s.library.Delete(r.Context(), r.PathValue("hash")); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleReindex(w http.ResponseWriter, r *http.Request) {
	if err := s.library.Reindex(r.Context()); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"status": "reindexed"})
}

func (s *Server) handleStatus(w http.ResponseWriter, r *http.Request) {
	summaries, err := s.library.List(r.Context(), "")
	if err != nil {
		writeError(w, err)
		return
	}

	counts := map[domain.FileKind]int{}
	for _, f := range summaries {
		counts[f.Kind]++
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"status":         "ok",
		"files":          len(summaries),
		"files_by_kind":  counts,
		"uptime_seconds": int(time.Since(s.startedAt).Seconds()),
	})
}

// writeJSON encodes v as the response body.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logger.Warn("Encoding response: %v", err)
	}
}

// writeError maps domain errors onto HTTP status codes.
func writeError(w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, domain.ErrNotFound):
		status = http.StatusNotFound
	case errors.Is(err, domain.ErrUnsupportedKind), errors.Is(err, domain.ErrInvalidInput):
		status = http.StatusBadRequest
	case errors.Is(err, domain.ErrOversizeInput):
		status = http.StatusRequestEntityTooLarge
	}

	if status == http.StatusInternalServerError {
		logger.Error("Request failed: %v", err)
	}
	writeJSON(w, status, map[string]string{"error": err.Error()})
}
