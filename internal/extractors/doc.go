// Package extractors turns raw file and web content into plain text.
//
// Each extractor handles a set of MIME types. The Registry picks the
// highest-priority extractor for a source's MIME type:
//
//   - plaintext: text/plain and source code, fallback priority
//   - markdown: Markdown with formatting stripped
//   - html: HTML with tags, scripts and styles removed
//   - pdf: PDF text layer
//   - docx: Word documents
//
// Every failure is reported as a *domain.ExtractionError.
package extractors
