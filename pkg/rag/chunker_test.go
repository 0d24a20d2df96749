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

package rag

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestChunkTextEmpty(t *testing.T) {
	assert.Nil(t, ChunkText("", 100, 10))
}

func TestChunkTextShorterThanWindow(t *testing.T) {
	chunks := ChunkText("hello world", 100, 10)
	require.Len(t, chunks, 1)
	assert.Equal(t, "hello world", chunks[0])
}

func TestChunkTextCoversWholeInput(t *testing.T) {
	text := strings.Repeat("abcdefghij", 100)
	chunks := ChunkText(text, 128, 16)
	require.NotEmpty(t, chunks)

	// Reassembling from the first chunk plus the non-overlapping tail of
	// each subsequent chunk must reproduce the input exactly.
	var sb strings.Builder
	sb.WriteString(chunks[0])
	for _, chunk := range chunks[1:] {
		sb.WriteString(chunk[16:])
	}
	assert.Equal(t, text, sb.String())
}

func TestChunkTextSentenceBoundary(t *testing.T) {
	// The terminator sits past the window midpoint, so the first chunk
	// must end right after "sentence. ".
	text := "This is the first sentence. And here the second one keeps going for a while longer."
	chunks := ChunkText(text, 40, 0)
	require.GreaterOrEqual(t, len(chunks), 2)
	assert.Equal(t, "This is the first sentence. ", chunks[0])
}

func TestChunkTextEarlyTerminatorIgnored(t *testing.T) {
	// Terminator before the midpoint must not shrink the window.
	text := "Hi. " + strings.Repeat("x", 200)
	chunks := ChunkText(text, 100, 0)
	require.NotEmpty(t, chunks)
	assert.Len(t, chunks[0], 100)
}

func TestChunkTextOverlapClamped(t *testing.T) {
	// Overlap >= size would stall the scan without clamping.
	text := strings.Repeat("z", 500)
	chunks := ChunkText(text, 10, 10)
	require.NotEmpty(t, chunks)

	total := 0
	for _, chunk := range chunks {
		assert.LessOrEqual(t, len(chunk), 10)
		total += len(chunk)
	}
	assert.Greater(t, total, len(text)-1)
}

func TestChunkTextTerminates(t *testing.T) {
	// Sentence cuts combined with a large overlap must still advance.
	text := strings.Repeat("One two three. ", 100)
	chunks := ChunkText(text, 30, 25)
	require.NotEmpty(t, chunks)
	assert.Less(t, len(chunks), len(text))
}

func TestChunkTextThreeChunks(t *testing.T) {
	text := strings.Repeat("a", 250)
	chunks := ChunkText(text, 100, 0)
	require.Len(t, chunks, 3)
	assert.Equal(t, 100, len(chunks[0]))
	assert.Equal(t, 100, len(chunks[1]))
	assert.Equal(t, 50, len(chunks[2]))
}
