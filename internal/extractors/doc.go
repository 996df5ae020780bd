// Package extractors provides implementations of the Extractor
// interface for the supported media kinds. Document extractors dispatch
// further by filename extension (plain text, PDF, DOCX); video and
// audio extractors read container metadata and delegate speech-to-text
// to an injected Transcriber.
//
// Extractors are registered with the Registry at startup.
package extractors
