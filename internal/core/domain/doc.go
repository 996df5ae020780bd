// Package domain defines the core business entities for mediadex.
//
// This package is part of the hexagonal architecture's innermost layer.
// It has NO external dependencies and defines the fundamental types:
//
//   - FileRecord: An ingested media file keyed by content hash
//   - ExtractionResult: Text and metadata pulled out of a file
//   - Chunk: A searchable unit of extracted text
//   - QueryResult: A ranked search hit with snippet
//
// # Architectural Position
//
// Domain is at the centre of the hexagon. It may only import
// the Go standard library. All other packages depend on domain,
// never the reverse.
//
// # Import Rules
//
//   - Can Import: Standard library only
//   - Cannot Import: Any internal/ package, any external dependency
package domain
