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
	"errors"
	"testing"
	"time"

	"github.com/CouchDeckProject/couchdeck-core/pkg/config"
	"github.com/CouchDeckProject/couchdeck-core/pkg/database/gamedb"
	"github.com/CouchDeckProject/couchdeck-core/pkg/games"
	testhelpers "github.com/CouchDeckProject/couchdeck-core/pkg/testing/helpers"
	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	mb = 1024 * 1024
)

// fakeResolver maps shortcut paths to fixed targets.
type fakeResolver struct {
	targets map[string]string
}

func (r *fakeResolver) Resolve(path string) (string, error) {
	if target, ok := r.targets[path]; ok {
		return target, nil
	}
	return "", errors.New("unknown shortcut")
}

func testConfig(t *testing.T, folders []string, sorting string) *config.Instance {
	t.Helper()
	defaults := config.BaseDefaults
	defaults.Scanner.Folders = folders
	defaults.Scanner.Sorting = sorting
	cfg, err := config.NewConfig(t.TempDir(), defaults)
	require.NoError(t, err)
	return cfg
}

func newTestScanner(t *testing.T, h *testhelpers.FSHelper, folders []string) *Scanner {
	t.Helper()
	cfg := testConfig(t, folders, "alphabetical")
	store := gamedb.NewStore(h.Fs, "/data/games.json")
	return New(h.Fs, cfg, store, clockwork.NewFakeClockAt(
		time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)))
}

func pathsOf(records []games.Record) []string {
	out := make([]string, 0, len(records))
	for _, r := range records {
		out = append(out, r.Path)
	}
	return out
}

func TestScanPicksMainExecutable(t *testing.T) {
	t.Parallel()

	h := testhelpers.NewMemoryFS()
	require.NoError(t, h.AddGame("/games", "Hades", "Hades.exe", 12*mb))

	s := newTestScanner(t, h, []string{"/games"})
	records := s.Scan(nil)

	require.Len(t, records, 1)
	assert.Equal(t, "Hades", records[0].Name)
	assert.Equal(t, "/games/Hades/Hades.exe", records[0].Path)
	assert.Equal(t, "/games", records[0].SourceFolder)
	assert.False(t, records[0].IsShortcut)
}

func TestScanPrefersGameOverNoise(t *testing.T) {
	t.Parallel()

	// the real binary is buried one level down but matches the folder name;
	// the noise files carry negative tokens
	h := testhelpers.NewMemoryFS()
	require.NoError(t, h.WriteFileSized("/games/Celeste/bin/Celeste.exe", 14*mb))
	require.NoError(t, h.WriteFileSized("/games/Celeste/setup.exe", 60*mb))
	require.NoError(t, h.WriteFileSized("/games/Celeste/UnityCrashHandler.exe", 2*mb))

	s := newTestScanner(t, h, []string{"/games"})
	records := s.Scan(nil)

	require.Len(t, records, 1)
	assert.Equal(t, "/games/Celeste/bin/Celeste.exe", records[0].Path)
}

func TestScanDeterministic(t *testing.T) {
	t.Parallel()

	h := testhelpers.NewMemoryFS()
	require.NoError(t, h.AddGame("/games", "Hades", "Hades.exe", 12*mb))
	require.NoError(t, h.AddGame("/games", "Celeste", "Celeste.exe", 8*mb))
	require.NoError(t, h.AddLooseExe("/games", "DOOM.exe", 2*mb))

	first := newTestScanner(t, h, []string{"/games"}).Scan(nil)

	// cache cleared between runs
	require.NoError(t, h.Fs.Remove("/data/games.json"))
	second := newTestScanner(t, h, []string{"/games"}).Scan(nil)

	assert.Equal(t, pathsOf(first), pathsOf(second))
}

func TestScanNoDuplicateClaims(t *testing.T) {
	t.Parallel()

	h := testhelpers.NewMemoryFS()
	require.NoError(t, h.AddGame("/games", "Hades", "Hades.exe", 12*mb))
	require.NoError(t, h.AddShortcut("/games", "Hades.lnk"))

	s := newTestScanner(t, h, []string{"/games"})
	s.SetResolver(&fakeResolver{targets: map[string]string{
		"/games/Hades.lnk": "/games/Hades/Hades.exe",
	}})

	records := s.Scan(nil)

	require.Len(t, records, 1)
	// shortcut step runs first, so it wins the claim
	assert.True(t, records[0].IsShortcut)

	seen := make(map[string]bool)
	for _, r := range records {
		assert.False(t, seen[r.Path], "duplicate path: %s", r.Path)
		seen[r.Path] = true
	}
}

func TestScanDepthBound(t *testing.T) {
	t.Parallel()

	h := testhelpers.NewMemoryFS()
	// 4 segments below the game folder: never a candidate
	require.NoError(t, h.WriteFileSized(
		"/games/Deep/a/b/c/Deep.exe", 60*mb))

	s := newTestScanner(t, h, []string{"/games"})
	records := s.Scan(nil)
	assert.Empty(t, records)

	// exactly 3 segments down is still in range
	require.NoError(t, h.WriteFileSized(
		"/games/Shallow/a/b/Shallow.exe", 2*mb))
	records = s.Scan(nil)
	require.Len(t, records, 1)
	assert.Equal(t, "/games/Shallow/a/b/Shallow.exe", records[0].Path)
}

func TestScanSkipsMissingRoot(t *testing.T) {
	t.Parallel()

	h := testhelpers.NewMemoryFS()
	require.NoError(t, h.AddGame("/games", "Hades", "Hades.exe", 12*mb))

	s := newTestScanner(t, h, []string{"/nope", "/games"})
	records := s.Scan(nil)

	require.Len(t, records, 1)
	assert.Equal(t, "Hades", records[0].Name)
}

func TestScanLooseExecutables(t *testing.T) {
	t.Parallel()

	h := testhelpers.NewMemoryFS()
	require.NoError(t, h.AddLooseExe("/games", "DOOM.exe", 2*mb))
	require.NoError(t, h.AddLooseExe("/games", "dxsetup.exe", 2*mb))

	s := newTestScanner(t, h, []string{"/games"})
	records := s.Scan(nil)

	require.Len(t, records, 1)
	assert.Equal(t, "DOOM", records[0].Name)
}

func TestScanShortcuts(t *testing.T) {
	t.Parallel()

	h := testhelpers.NewMemoryFS()
	require.NoError(t, h.AddShortcut("/games", "Stardew_Valley.lnk"))
	require.NoError(t, h.AddShortcut("/games", "Uninstall Me.lnk"))
	require.NoError(t, h.AddShortcut("/games", "Notes.lnk"))

	s := newTestScanner(t, h, []string{"/games"})
	s.SetResolver(&fakeResolver{targets: map[string]string{
		"/games/Stardew_Valley.lnk": `C:\Install\Stardew_Valley\Stardew Valley.exe`,
		"/games/Uninstall Me.lnk":   `C:\Install\Thing\uninstall.exe`,
		"/games/Notes.lnk":          `C:\Docs\notes.txt`,
	}})

	records := s.Scan(nil)

	require.Len(t, records, 1)
	assert.True(t, records[0].IsShortcut)
	assert.Equal(t, "Stardew Valley", records[0].Name)
}

func TestScanProgressCallback(t *testing.T) {
	t.Parallel()

	h := testhelpers.NewMemoryFS()
	require.NoError(t, h.AddGame("/a", "One", "One.exe", 2*mb))
	require.NoError(t, h.AddGame("/b", "Two", "Two.exe", 2*mb))

	s := newTestScanner(t, h, []string{"/a", "/b"})

	var statuses []Status
	s.Scan(func(st Status) {
		statuses = append(statuses, st)
	})

	require.Len(t, statuses, 2)
	assert.Equal(t, "/a", statuses[0].Root)
	assert.Equal(t, 1, statuses[0].Step)
	assert.Equal(t, 2, statuses[0].Total)
	assert.Equal(t, "/b", statuses[1].Root)
	assert.Equal(t, 2, statuses[1].Found)
}

func TestCacheRoundTrip(t *testing.T) {
	t.Parallel()

	h := testhelpers.NewMemoryFS()
	require.NoError(t, h.AddGame("/games", "Hades", "Hades.exe", 12*mb))
	require.NoError(t, h.AddGame("/games", "Celeste", "Celeste.exe", 8*mb))

	s := newTestScanner(t, h, []string{"/games"})
	scanned := s.Scan(nil)
	require.Len(t, scanned, 2)

	require.NoError(t, s.RecordPlayed(&scanned[1]))
	require.NoError(t, s.RecordPlayed(&scanned[1]))

	// a fresh engine sees the same list with play stats intact
	s2 := newTestScanner(t, h, []string{"/games"})
	cached := s2.LoadCached()
	require.Len(t, cached, 2)
	assert.Equal(t, pathsOf(scanned), pathsOf(cached))

	var played *games.Record
	for i := range cached {
		if cached[i].ID == scanned[1].ID {
			played = &cached[i]
		}
	}
	require.NotNil(t, played)
	assert.Equal(t, 2, played.PlayCount)
	require.NotNil(t, played.LastPlayed)
}

func TestRescanKeepsPlayStats(t *testing.T) {
	t.Parallel()

	h := testhelpers.NewMemoryFS()
	require.NoError(t, h.AddGame("/games", "Hades", "Hades.exe", 12*mb))

	s := newTestScanner(t, h, []string{"/games"})
	records := s.Scan(nil)
	require.Len(t, records, 1)
	require.NoError(t, s.RecordPlayed(&records[0]))

	rescanned := s.Scan(nil)
	require.Len(t, rescanned, 1)
	assert.Equal(t, 1, rescanned[0].PlayCount)
	require.NotNil(t, rescanned[0].LastPlayed)
}

func TestLoadCachedMissing(t *testing.T) {
	t.Parallel()

	h := testhelpers.NewMemoryFS()
	s := newTestScanner(t, h, []string{"/games"})
	assert.Nil(t, s.LoadCached())
}

func TestSearchAndRecent(t *testing.T) {
	t.Parallel()

	h := testhelpers.NewMemoryFS()
	require.NoError(t, h.AddGame("/games", "Hades", "Hades.exe", 12*mb))
	require.NoError(t, h.AddGame("/games", "Celeste", "Celeste.exe", 8*mb))

	s := newTestScanner(t, h, []string{"/games"})
	records := s.Scan(nil)

	found := s.Search("had")
	require.Len(t, found, 1)
	assert.Equal(t, "Hades", found[0].Name)

	assert.Empty(t, s.RecentGames(10))

	for i := range records {
		if records[i].Name == "Celeste" {
			require.NoError(t, s.RecordPlayed(&records[i]))
		}
	}
	recent := s.RecentGames(10)
	require.Len(t, recent, 1)
	assert.Equal(t, "Celeste", recent[0].Name)
}

func TestScanSortingModes(t *testing.T) {
	t.Parallel()

	h := testhelpers.NewMemoryFS()
	require.NoError(t, h.AddGame("/games", "Zebra", "Zebra.exe", 2*mb))
	require.NoError(t, h.AddGame("/games", "Apple", "Apple.exe", 2*mb))

	cfg := testConfig(t, []string{"/games"}, "alphabetical")
	store := gamedb.NewStore(h.Fs, "/data/games.json")
	s := New(h.Fs, cfg, store, clockwork.NewFakeClock())

	records := s.Scan(nil)
	require.Len(t, records, 2)
	assert.Equal(t, "Apple", records[0].Name)

	// invalid mode falls back to alphabetical
	cfg.SetSorting("bogus")
	records = s.Scan(nil)
	assert.Equal(t, "Apple", records[0].Name)
}

func TestScanWithoutStore(t *testing.T) {
	t.Parallel()

	h := testhelpers.NewMemoryFS()
	require.NoError(t, h.AddGame("/games", "Hades", "Hades.exe", 12*mb))

	cfg := testConfig(t, []string{"/games"}, "alphabetical")
	s := New(h.Fs, cfg, nil, nil)

	// no persistence available, scanning still works
	records := s.Scan(nil)
	require.Len(t, records, 1)
	require.NoError(t, s.RecordPlayed(&records[0]))
	assert.Nil(t, s.LoadCached())
}
