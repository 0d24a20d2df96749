// Copyright 2025 The Sidekick Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package rag implements the retrieval index: text chunking, document
// extraction, embedding storage and similarity search.
package rag

import "strings"

// sentence terminators, in the order they are probed. "\n\n" marks a
// paragraph break, which counts as a boundary too.
var chunkTerminators = []string{". ", "! ", "? ", "\n\n"}

// ChunkText splits text into windows of at most size bytes with the given
// overlap between consecutive windows. A window ending mid-sentence is cut
// back to the last sentence terminator, but only when that terminator lies
// past the window midpoint; otherwise short sentences would produce
// degenerate slivers. Overlap is clamped below size so every window
// advances.
func ChunkText(text string, size, overlap int) []string {
	if text == "" {
		return nil
	}
	if size <= 0 {
		return []string{text}
	}
	if overlap >= size {
		overlap = size - 1
	}
	if overlap < 0 {
		overlap = 0
	}

	var chunks []string
	start := 0
	for start < len(text) {
		end := start + size
		if end >= len(text) {
			chunks = append(chunks, text[start:])
			break
		}

		window := text[start:end]
		cut := -1
		for _, term := range chunkTerminators {
			if idx := strings.LastIndex(window, term); idx >= 0 {
				boundary := idx + len(term)
				if boundary > size/2 && boundary > cut {
					cut = boundary
				}
			}
		}
		if cut > 0 {
			end = start + cut
		}

		chunks = append(chunks, text[start:end])

		next := end - overlap
		if next <= start {
			// Overlap swallowed the whole advance; skip it for this
			// window so the loop terminates.
			next = end
		}
		start = next
	}

	return chunks
}
