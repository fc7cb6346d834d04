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

// Package gamedb persists the scanned game list as a JSON snapshot on disk.
// The snapshot is a full replacement written after every scan; it is a cache,
// not a source of truth, so every load failure degrades to "no snapshot" and
// the caller rescans.
package gamedb

import (
	"encoding/json"
	"fmt"
	"path/filepath"
	"time"

	"github.com/CouchDeckProject/couchdeck-core/pkg/games"
	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog/log"
	"github.com/spf13/afero"
)

const SchemaVersion = 1

// Snapshot is the persisted structure. Loading tolerates unknown extra
// fields and substitutes zero values for missing optional fields.
type Snapshot struct {
	LastScan      time.Time      `json:"last_scan"`
	Games         []games.Record `json:"games"          validate:"dive"`
	SchemaVersion int            `json:"schema_version" validate:"required"`
}

// Store reads and writes snapshots at a fixed path.
type Store struct {
	fs       afero.Fs
	validate *validator.Validate
	path     string
}

func NewStore(fs afero.Fs, path string) *Store {
	return &Store{
		fs:       fs,
		validate: validator.New(validator.WithRequiredStructEnabled()),
		path:     path,
	}
}

// Path returns the snapshot file location.
func (s *Store) Path() string {
	return s.path
}

// Save writes a full snapshot, replacing any existing one. The write goes
// through a temp file and rename so a crash never leaves a half-written
// snapshot behind.
func (s *Store) Save(snapshot *Snapshot) error {
	snapshot.SchemaVersion = SchemaVersion

	data, err := json.MarshalIndent(snapshot, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal snapshot: %w", err)
	}

	dir := filepath.Dir(s.path)
	if err := s.fs.MkdirAll(dir, 0o750); err != nil {
		return fmt.Errorf("failed to create snapshot directory: %w", err)
	}

	tmpPath := s.path + ".tmp"
	if err := afero.WriteFile(s.fs, tmpPath, data, 0o600); err != nil {
		return fmt.Errorf("failed to write snapshot: %w", err)
	}

	if err := s.fs.Rename(tmpPath, s.path); err != nil {
		return fmt.Errorf("failed to replace snapshot: %w", err)
	}

	log.Debug().Msgf("saved snapshot with %d games", len(snapshot.Games))
	return nil
}

// Load reads the snapshot from disk. It returns (nil, false) if the file is
// absent, unreadable or structurally invalid - all of which mean the caller
// should fall back to a fresh scan. It never returns an error.
func (s *Store) Load() (*Snapshot, bool) {
	data, err := afero.ReadFile(s.fs, s.path)
	if err != nil {
		log.Debug().Err(err).Msg("no readable snapshot")
		return nil, false
	}

	var snapshot Snapshot
	if err := json.Unmarshal(data, &snapshot); err != nil {
		log.Warn().Err(err).Msg("snapshot is not valid JSON, ignoring")
		return nil, false
	}

	if snapshot.SchemaVersion != SchemaVersion {
		log.Warn().Msgf(
			"snapshot schema mismatch: got %d, expecting %d",
			snapshot.SchemaVersion, SchemaVersion,
		)
		return nil, false
	}

	if err := s.validate.Struct(&snapshot); err != nil {
		log.Warn().Err(err).Msg("snapshot failed validation, ignoring")
		return nil, false
	}

	return &snapshot, true
}
