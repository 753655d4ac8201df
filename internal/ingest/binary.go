// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 DocPack Contributors

package ingest

import (
	"bytes"
	"path"
	"strings"
)

// binarySampleSize is how many leading bytes content sniffing inspects.
const binarySampleSize = 8192

// binaryExtensions are extensions that always mark a file as binary without
// looking at its content.
var binaryExtensions = map[string]struct{}{
	// Images
	".png": {}, ".jpg": {}, ".jpeg": {}, ".gif": {}, ".bmp": {},
	".ico": {}, ".webp": {}, ".svg": {}, ".tiff": {},
	// Documents
	".pdf": {}, ".doc": {}, ".docx": {}, ".xls": {}, ".xlsx": {},
	".ppt": {}, ".pptx": {}, ".odt": {}, ".ods": {},
	// Archives
	".zip": {}, ".tar": {}, ".gz": {}, ".rar": {}, ".7z": {}, ".bz2": {}, ".xz": {},
	// Executables
	".exe": {}, ".dll": {}, ".so": {}, ".dylib": {}, ".bin": {},
	// Media
	".mp3": {}, ".mp4": {}, ".avi": {}, ".mov": {}, ".wav": {},
	".flac": {}, ".mkv": {}, ".webm": {},
	// Compiled
	".pyc": {}, ".pyo": {}, ".class": {}, ".o": {}, ".obj": {}, ".wasm": {},
	// Fonts
	".ttf": {}, ".otf": {}, ".woff": {}, ".woff2": {}, ".eot": {},
	// Other
	".db": {}, ".sqlite": {}, ".sqlite3": {}, ".docpack": {},
}

// IsBinaryExtension reports whether the path's extension marks it as binary.
func IsBinaryExtension(p string) bool {
	_, ok := binaryExtensions[strings.ToLower(path.Ext(p))]
	return ok
}

// IsBinaryContent sniffs raw bytes for binary content: any NUL in the first
// 8 KiB, or more than 30% of sampled bytes outside printable ASCII plus
// tab/LF/CR. Empty content is text.
func IsBinaryContent(content []byte) bool {
	if len(content) == 0 {
		return false
	}

	sample := content
	if len(sample) > binarySampleSize {
		sample = sample[:binarySampleSize]
	}

	if bytes.IndexByte(sample, 0) >= 0 {
		return true
	}

	nonText := 0
	for _, b := range sample {
		if (b < 32 || b > 126) && b != '\t' && b != '\n' && b != '\r' {
			nonText++
		}
	}
	return float64(nonText)/float64(len(sample)) > 0.30
}

// DetectBinary classifies a file by extension first, then by content.
func DetectBinary(p string, content []byte) bool {
	if IsBinaryExtension(p) {
		return true
	}
	return IsBinaryContent(content)
}
