// Package loader discovers source files under a root directory and extracts
// their text into documents.
//
// Extraction is format-specific: markdown and HTML are reduced to readable
// prose, everything else recognized is treated as plain text. The extractor
// for each extension is resolved once when the Loader is constructed, not per
// file. Per-file failures (unreadable files, invalid encodings, formats that
// need an external converter) are recoverable: the file is skipped and
// reported, and the load continues.
package loader
