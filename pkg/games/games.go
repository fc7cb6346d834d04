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

// Package games defines the game record model shared between the scanner,
// the snapshot store and the presentation layer.
package games

import (
	"crypto/sha256"
	"encoding/base32"
	"fmt"
	"strings"
	"time"
)

// Record is a single discovered game. Path uniquely identifies a record
// within one scan and is immutable once created; only the play statistics
// are ever mutated after creation.
type Record struct {
	LastPlayed   *time.Time `json:"last_played,omitempty" validate:"omitempty"`
	ID           string     `json:"id"                    validate:"required"`
	Name         string     `json:"name"                  validate:"required"`
	Path         string     `json:"path"                  validate:"required"`
	SourceFolder string     `json:"source_folder"`
	PlayCount    int        `json:"play_count"            validate:"gte=0"`
	IsShortcut   bool       `json:"is_shortcut"`
}

// NewRecord creates a record for an executable path. The ID is derived from
// the path so that equal paths always produce equal IDs across scans.
func NewRecord(name, path, sourceFolder string, isShortcut bool) Record {
	return Record{
		ID:           RecordID(path),
		Name:         name,
		Path:         path,
		SourceFolder: sourceFolder,
		IsShortcut:   isShortcut,
	}
}

// RecordID creates a deterministic record ID from an executable path. The ID
// format is "game-{hash}" where hash is 8 lowercase base32 characters (40
// bits) derived from SHA-256.
//
// The path is normalized (lowercased, path separators unified) so the same
// install produces the same ID regardless of how the path was spelled,
// enabling cached entries to be correlated with freshly scanned ones.
func RecordID(path string) string {
	normalized := strings.ToLower(strings.ReplaceAll(path, "\\", "/"))

	hash := sha256.Sum256([]byte(normalized))

	encoded := base32.StdEncoding.WithPadding(base32.NoPadding).EncodeToString(hash[:5])
	encoded = strings.ToLower(encoded)

	return fmt.Sprintf("game-%s", encoded)
}
