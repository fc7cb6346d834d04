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

	"github.com/hbollon/go-edlib"
	"github.com/rs/zerolog/log"
)

// fuzzyThreshold is the minimum Jaro-Winkler similarity for a record to be
// included in fuzzy search results.
const fuzzyThreshold = 0.75

// Search returns records whose name contains query, case-insensitively,
// preserving the order of records. When no substring matches exist, results
// fall back to fuzzy name similarity so minor typos still find a game.
func Search(records []Record, query string) []Record {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil
	}

	queryLower := strings.ToLower(query)
	var matches []Record
	for _, r := range records {
		if strings.Contains(strings.ToLower(r.Name), queryLower) {
			matches = append(matches, r)
		}
	}
	if len(matches) > 0 {
		return matches
	}

	return fuzzySearch(records, queryLower)
}

func fuzzySearch(records []Record, queryLower string) []Record {
	type scored struct {
		record Record
		sim    float32
	}

	var candidates []scored
	for _, r := range records {
		sim, err := edlib.StringsSimilarity(queryLower, strings.ToLower(r.Name), edlib.JaroWinkler)
		if err != nil {
			log.Debug().Err(err).Msgf("similarity failed for: %s", r.Name)
			continue
		}
		if sim >= fuzzyThreshold {
			candidates = append(candidates, scored{record: r, sim: sim})
		}
	}

	sort.SliceStable(candidates, func(i, j int) bool {
		return candidates[i].sim > candidates[j].sim
	})

	results := make([]Record, 0, len(candidates))
	for _, c := range candidates {
		results = append(results, c.record)
	}
	return results
}
