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

// Package gamescanner walks configured root folders for game executables,
// scores candidates to pick the real game binary among installer and
// redistributable noise, and persists the result as a snapshot.
package gamescanner

import (
	"errors"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/CouchDeckProject/couchdeck-core/pkg/config"
	"github.com/CouchDeckProject/couchdeck-core/pkg/database/gamedb"
	"github.com/CouchDeckProject/couchdeck-core/pkg/games"
	"github.com/jonboulle/clockwork"
	"github.com/rs/zerolog/log"
	"github.com/spf13/afero"
)

// maxScanDepth bounds recursion below a game's install folder. Large
// installs can hold thousands of unrelated executables in deep
// redistributable trees; going deeper costs scan time without improving
// match quality.
const maxScanDepth = 3

// Status is passed to the progress callback after each root folder
// completes, so the caller can repaint between roots during a long scan.
type Status struct {
	Root  string
	Step  int
	Total int
	Found int
}

type ProgressFunc func(Status)

// Scanner is the game discovery engine. It is designed for a
// single-threaded poll-driven caller and is not safe for concurrent use.
type Scanner struct {
	fs       afero.Fs
	cfg      *config.Instance
	store    *gamedb.Store
	clock    clockwork.Clock
	resolver ShortcutResolver
	weights  Weights
	games    []games.Record
}

func New(fs afero.Fs, cfg *config.Instance, store *gamedb.Store, clock clockwork.Clock) *Scanner {
	if clock == nil {
		clock = clockwork.NewRealClock()
	}
	return &Scanner{
		fs:       fs,
		cfg:      cfg,
		store:    store,
		clock:    clock,
		resolver: NewShortcutResolver(fs),
		weights:  DefaultWeights,
	}
}

// SetResolver replaces the shortcut resolver.
func (s *Scanner) SetResolver(resolver ShortcutResolver) {
	s.resolver = resolver
}

// Scan walks the configured root folders and returns the ordered game list.
// Missing or unreadable roots are logged and skipped, never fatal. The
// result replaces the persisted snapshot; play statistics from the previous
// snapshot carry over to records with matching IDs. The returned slice is
// owned by the caller.
func (s *Scanner) Scan(progress ProgressFunc) []games.Record {
	roots := s.cfg.ScanFolders()
	claimed := make(map[string]struct{})
	found := make([]games.Record, 0)

	for i, root := range roots {
		records, err := s.scanRoot(root, claimed)
		if err != nil {
			log.Warn().Err(err).Msgf("skipping unreadable folder: %s", root)
		} else {
			found = append(found, records...)
		}

		if progress != nil {
			progress(Status{
				Root:  root,
				Step:  i + 1,
				Total: len(roots),
				Found: len(found),
			})
		}
	}

	s.mergePlayStats(found)
	games.Sort(found, games.ParseSortMode(s.cfg.Sorting()))

	s.games = append([]games.Record(nil), found...)
	s.persist()

	log.Info().Msgf("scan found %d games in %d folders", len(found), len(roots))
	return found
}

// scanRoot discovers games under one root folder: resolved shortcuts first,
// then one best-scored executable per immediate subdirectory, then loose
// executables in the root itself. claimed tracks paths already taken by an
// earlier step or root so no path is ever claimed twice.
func (s *Scanner) scanRoot(root string, claimed map[string]struct{}) ([]games.Record, error) {
	entries, err := afero.ReadDir(s.fs, root)
	if err != nil {
		return nil, err
	}

	var records []games.Record

	// shortcuts placed directly in the root
	for _, entry := range entries {
		if entry.IsDir() || !isShortcutFile(entry) {
			continue
		}

		path := filepath.Join(root, entry.Name())
		target, err := s.resolver.Resolve(path)
		if err != nil {
			log.Debug().Err(err).Msgf("unresolvable shortcut: %s", path)
			continue
		}

		if !isExecutablePath(target) || shouldIgnore(target) {
			continue
		}
		if _, ok := claimed[target]; ok {
			continue
		}

		claimed[target] = struct{}{}
		name := CleanName(baseName(target))
		records = append(records, games.NewRecord(name, target, root, true))
	}

	// each immediate subdirectory is treated as one game's install folder
	for _, entry := range entries {
		if !entry.IsDir() || strings.HasPrefix(entry.Name(), ".") {
			continue
		}

		gameDir := filepath.Join(root, entry.Name())
		record, ok := s.findGameInFolder(gameDir, entry.Name(), root, claimed)
		if ok {
			records = append(records, record)
		}
	}

	// loose executables sitting directly in the root
	for _, entry := range entries {
		if entry.IsDir() || !entry.Mode().IsRegular() || !isExecutablePath(entry.Name()) {
			continue
		}

		path := filepath.Join(root, entry.Name())
		if shouldIgnore(path) {
			continue
		}
		if _, ok := claimed[path]; ok {
			continue
		}

		claimed[path] = struct{}{}
		name := CleanName(baseName(path))
		records = append(records, games.NewRecord(name, path, root, false))
	}

	return records, nil
}

type candidate struct {
	path  string
	depth int
	score int
}

// findGameInFolder enumerates executables up to maxScanDepth segments below
// gameDir and picks the single highest-scoring one. Candidates are walked
// in lexical order so score ties resolve to the first-encountered path on
// every scan.
func (s *Scanner) findGameInFolder(
	gameDir, folderName, root string,
	claimed map[string]struct{},
) (games.Record, bool) {
	var candidates []candidate

	err := afero.Walk(s.fs, gameDir, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			// permission errors skip the item, not the scan
			log.Debug().Err(err).Msgf("unreadable path: %s", path)
			return nil
		}

		rel, relErr := filepath.Rel(gameDir, path)
		if relErr != nil || rel == "." {
			return nil
		}
		depth := len(strings.Split(rel, string(filepath.Separator)))

		if info.IsDir() {
			if depth >= maxScanDepth {
				return filepath.SkipDir
			}
			return nil
		}

		if depth <= maxScanDepth && info.Mode().IsRegular() && isExecutablePath(path) {
			candidates = append(candidates, candidate{path: path, depth: depth})
		}
		return nil
	})
	if err != nil {
		log.Debug().Err(err).Msgf("failed walking game folder: %s", gameDir)
	}

	if len(candidates) == 0 {
		return games.Record{}, false
	}

	for i := range candidates {
		candidates[i].score = s.score(candidates[i].path, candidates[i].depth, folderName)
	}

	// stable sort keeps first-encountered order on equal scores
	sort.SliceStable(candidates, func(i, j int) bool {
		return candidates[i].score > candidates[j].score
	})

	best := candidates[0].path
	if _, ok := claimed[best]; ok {
		return games.Record{}, false
	}

	claimed[best] = struct{}{}
	return games.NewRecord(CleanName(folderName), best, root, false), true
}

// mergePlayStats carries play statistics from the previous snapshot over to
// freshly scanned records, matched by record ID.
func (s *Scanner) mergePlayStats(records []games.Record) {
	if s.store == nil {
		return
	}
	snapshot, ok := s.store.Load()
	if !ok {
		return
	}

	prev := make(map[string]games.Record, len(snapshot.Games))
	for _, r := range snapshot.Games {
		prev[r.ID] = r
	}

	for i := range records {
		if old, ok := prev[records[i].ID]; ok {
			records[i].LastPlayed = old.LastPlayed
			records[i].PlayCount = old.PlayCount
		}
	}
}

// LoadCached returns the previously persisted game list, ordered by the
// configured sort mode, or nil when no usable snapshot exists and the
// caller should scan instead.
func (s *Scanner) LoadCached() []games.Record {
	if s.store == nil {
		return nil
	}
	snapshot, ok := s.store.Load()
	if !ok {
		return nil
	}

	records := append([]games.Record(nil), snapshot.Games...)
	games.Sort(records, games.ParseSortMode(s.cfg.Sorting()))

	s.games = append([]games.Record(nil), records...)
	return records
}

// RecordPlayed stamps a record with the current time, increments its play
// count and persists immediately. A persistence failure is returned but the
// in-memory update stands, degrading to operation without persistence.
func (s *Scanner) RecordPlayed(record *games.Record) error {
	if record == nil {
		return errors.New("nil record")
	}

	now := s.clock.Now()
	record.LastPlayed = &now
	record.PlayCount++

	for i := range s.games {
		if s.games[i].ID == record.ID {
			s.games[i].LastPlayed = record.LastPlayed
			s.games[i].PlayCount = record.PlayCount
			break
		}
	}

	return s.persistErr()
}

// Search matches the engine's current game list against a query.
func (s *Scanner) Search(query string) []games.Record {
	return games.Search(s.games, query)
}

// Games returns a copy of the engine's current game list.
func (s *Scanner) Games() []games.Record {
	return append([]games.Record(nil), s.games...)
}

// RecentGames returns up to max records that have been played, most recent
// first.
func (s *Scanner) RecentGames(max int) []games.Record {
	var recent []games.Record
	for _, r := range s.games {
		if r.LastPlayed != nil {
			recent = append(recent, r)
		}
	}
	games.Sort(recent, games.SortRecent)
	if len(recent) > max {
		recent = recent[:max]
	}
	return recent
}

func (s *Scanner) persist() {
	if err := s.persistErr(); err != nil {
		log.Warn().Err(err).Msg("continuing without snapshot persistence")
	}
}

func (s *Scanner) persistErr() error {
	if s.store == nil {
		return nil
	}
	return s.store.Save(&gamedb.Snapshot{
		LastScan: s.clock.Now().UTC(),
		Games:    s.games,
	})
}
