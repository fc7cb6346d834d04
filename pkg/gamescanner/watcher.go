// CouchDeck Core
// Copyright (c) 2026 The CouchDeck Project Contributors.
// SPDX-License-Identifier: GPL-3.0-or-later
//
// This file is part of CouchDeck Core.
//
// CouchDeck Core is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// CouchDeck Core is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with CouchDeck Core.  If not, see <http://www.gnu.org/licenses/>.

package gamescanner

import (
	"fmt"
	"sync/atomic"

	"github.com/fsnotify/fsnotify"
	"github.com/rs/zerolog/log"
)

// Watcher flags the scanned game list as stale when anything is created,
// removed or renamed inside a watched root folder. It never triggers a
// rescan itself; the caller polls Stale and decides when to scan.
//
// Watching operates on the real filesystem only.
type Watcher struct {
	watcher *fsnotify.Watcher
	done    chan struct{}
	stale   atomic.Bool
}

// NewWatcher starts watching the given root folders. Roots that cannot be
// watched are logged and skipped.
func NewWatcher(roots []string) (*Watcher, error) {
	fsWatcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create watcher: %w", err)
	}

	w := &Watcher{
		watcher: fsWatcher,
		done:    make(chan struct{}),
	}

	for _, root := range roots {
		if err := fsWatcher.Add(root); err != nil {
			log.Warn().Err(err).Msgf("cannot watch folder: %s", root)
		}
	}

	go w.loop()
	return w, nil
}

func (w *Watcher) loop() {
	for {
		select {
		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			if event.Op&(fsnotify.Create|fsnotify.Remove|fsnotify.Rename) != 0 {
				log.Debug().Msgf("game folder changed: %s", event.Name)
				w.stale.Store(true)
			}
		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			log.Warn().Err(err).Msg("watcher error")
		case <-w.done:
			return
		}
	}
}

// Stale reports whether a watched folder has changed since the last Reset.
func (w *Watcher) Stale() bool {
	return w.stale.Load()
}

// Reset clears the stale flag, typically right after a scan.
func (w *Watcher) Reset() {
	w.stale.Store(false)
}

// Close stops watching. Safe to call once.
func (w *Watcher) Close() error {
	close(w.done)
	if err := w.watcher.Close(); err != nil {
		return fmt.Errorf("failed to close watcher: %w", err)
	}
	return nil
}
