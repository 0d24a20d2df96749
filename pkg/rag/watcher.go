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
	"context"
	"fmt"
	"io/fs"
	"log/slog"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

const watchDebounce = 500 * time.Millisecond

// Watcher reindexes files under a directory when they change. Write
// bursts from editors are debounced per path.
type Watcher struct {
	indexer *Indexer
	watcher *fsnotify.Watcher
	root    string

	mu      sync.Mutex
	pending map[string]*time.Timer

	done chan struct{}
	once sync.Once
}

// NewWatcher starts watching root and its subdirectories.
func NewWatcher(indexer *Indexer, root string) (*Watcher, error) {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create file watcher: %w", err)
	}

	w := &Watcher{
		indexer: indexer,
		watcher: fsw,
		root:    root,
		pending: make(map[string]*time.Timer),
		done:    make(chan struct{}),
	}

	err = filepath.WalkDir(root, func(path string, d fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			return walkErr
		}
		if d.IsDir() {
			return fsw.Add(path)
		}
		return nil
	})
	if err != nil {
		fsw.Close()
		return nil, fmt.Errorf("failed to watch %s: %w", root, err)
	}

	go w.loop()
	slog.Info("Watching for document changes", "path", root)
	return w, nil
}

func (w *Watcher) loop() {
	for {
		select {
		case <-w.done:
			return
		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			w.handleEvent(event)
		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			slog.Warn("File watcher error", "error", err)
		}
	}
}

func (w *Watcher) handleEvent(event fsnotify.Event) {
	if event.Op&(fsnotify.Create|fsnotify.Write) == 0 {
		return
	}
	if event.Op&fsnotify.Create != 0 {
		// New directories need an explicit watch.
		if err := w.watcher.Add(event.Name); err == nil {
			slog.Debug("Watching new path", "path", event.Name)
		}
	}
	if !IsIndexable(event.Name) {
		return
	}

	w.mu.Lock()
	defer w.mu.Unlock()
	if timer, ok := w.pending[event.Name]; ok {
		timer.Stop()
	}
	path := event.Name
	w.pending[path] = time.AfterFunc(watchDebounce, func() {
		w.mu.Lock()
		delete(w.pending, path)
		w.mu.Unlock()

		if _, err := w.indexer.IndexFile(context.Background(), path); err != nil {
			slog.Warn("Failed to reindex changed file", "path", path, "error", err)
		}
	})
}

// Close stops the watcher. Pending debounce timers are cancelled.
func (w *Watcher) Close() error {
	var err error
	w.once.Do(func() {
		close(w.done)
		w.mu.Lock()
		for _, timer := range w.pending {
			timer.Stop()
		}
		w.pending = map[string]*time.Timer{}
		w.mu.Unlock()
		err = w.watcher.Close()
	})
	return err
}
