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

package games

import (
	"sort"
	"strings"
)

// SortMode selects the display ordering of the game list.
type SortMode string

const (
	SortAlphabetical SortMode = "alphabetical"
	SortRecent       SortMode = "recent"
	SortFolder       SortMode = "folder"
	SortPlayCount    SortMode = "play_count"
)

// ParseSortMode converts a config string to a SortMode. Unknown values fall
// back to alphabetical rather than failing.
func ParseSortMode(s string) SortMode {
	mode := SortMode(strings.ToLower(strings.TrimSpace(s)))
	switch mode {
	case SortAlphabetical, SortRecent, SortFolder, SortPlayCount:
		return mode
	default:
		return SortAlphabetical
	}
}

// Sort orders records in place according to mode. It is a pure function of
// the record set and can be re-applied at any time without rescanning. The
// sort is stable so records that compare equal keep their scan order.
func Sort(records []Record, mode SortMode) {
	switch mode {
	case SortRecent:
		sort.SliceStable(records, func(i, j int) bool {
			// never-played records sort last
			a, b := records[i].LastPlayed, records[j].LastPlayed
			if a == nil {
				return false
			}
			if b == nil {
				return true
			}
			return a.After(*b)
		})
	case SortFolder:
		sort.SliceStable(records, func(i, j int) bool {
			if records[i].SourceFolder != records[j].SourceFolder {
				return records[i].SourceFolder < records[j].SourceFolder
			}
			return strings.ToLower(records[i].Name) < strings.ToLower(records[j].Name)
		})
	case SortPlayCount:
		sort.SliceStable(records, func(i, j int) bool {
			return records[i].PlayCount > records[j].PlayCount
		})
	case SortAlphabetical:
		fallthrough
	default:
		sort.SliceStable(records, func(i, j int) bool {
			return strings.ToLower(records[i].Name) < strings.ToLower(records[j].Name)
		})
	}
}
