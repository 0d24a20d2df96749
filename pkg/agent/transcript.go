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

package agent

import (
	"sync"

	"github.com/sidekick-dev/sidekick/pkg/llms"
)

// Transcript is the append-only conversation history of one session.
// Messages are never rewritten or dropped; the system message, when
// present, is always first.
type Transcript struct {
	mu       sync.RWMutex
	messages []llms.Message
}

func NewTranscript() *Transcript {
	return &Transcript{}
}

// Append adds a message to the end of the transcript.
func (t *Transcript) Append(role llms.Role, content string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.messages = append(t.messages, llms.NewMessage(role, content))
}

// SetSystem installs the system message if none exists yet. The system
// message is fixed for the life of the transcript.
func (t *Transcript) SetSystem(content string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if len(t.messages) > 0 && t.messages[0].Role == llms.RoleSystem {
		return
	}
	t.messages = append([]llms.Message{llms.NewMessage(llms.RoleSystem, content)}, t.messages...)
}

// Messages returns a snapshot of the transcript.
func (t *Transcript) Messages() []llms.Message {
	t.mu.RLock()
	defer t.mu.RUnlock()
	snapshot := make([]llms.Message, len(t.messages))
	copy(snapshot, t.messages)
	return snapshot
}

// Len returns the number of messages.
func (t *Transcript) Len() int {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return len(t.messages)
}
