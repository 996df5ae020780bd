// Package driven defines the interfaces that core calls OUT to infrastructure.
//
// These are the "driven" or "secondary" ports in hexagonal architecture.
// Core services depend on these interfaces, and infrastructure adapters
// implement them.
//
// # Required Interfaces
//
//   - Extractor: Converts raw media bytes into text and metadata
//   - ExtractorRegistry: Selects the appropriate extractor per file
//   - Chunker: Splits extracted text into bounded searchable units
//   - FileStore: Durable file/chunk metadata persistence
//   - BlobStore: Content-addressed raw byte storage
//   - SearchIndex: Rebuildable term -> (file, chunk) mapping
//
// # Optional Interfaces
//
// These can be absent - the application degrades gracefully:
//
//   - Transcriber: Speech-to-text for audio/video. Without it,
//     audio/video extraction records metadata only (status=partial).
//
// # Import Rules
//
//   - Can Import: domain package only
//   - Cannot Import: Any adapter or extractor package
package driven
