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
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolveSymlink(t *testing.T) {
	t.Parallel()

	if runtime.GOOS == "windows" {
		t.Skip("symlink creation needs privileges on windows")
	}

	dir := t.TempDir()
	target := filepath.Join(dir, "Game.exe")
	require.NoError(t, os.WriteFile(target, []byte("x"), 0o600))
	link := filepath.Join(dir, "Game Link")
	require.NoError(t, os.Symlink(target, link))

	r := NewShortcutResolver(afero.NewOsFs())
	resolved, err := r.Resolve(link)
	require.NoError(t, err)
	assert.Equal(t, target, resolved)
}

func TestResolveRelativeSymlink(t *testing.T) {
	t.Parallel()

	if runtime.GOOS == "windows" {
		t.Skip("symlink creation needs privileges on windows")
	}

	dir := t.TempDir()
	require.NoError(t, os.WriteFile(
		filepath.Join(dir, "Game.exe"), []byte("x"), 0o600))
	link := filepath.Join(dir, "Game Link")
	require.NoError(t, os.Symlink("Game.exe", link))

	r := NewShortcutResolver(afero.NewOsFs())
	resolved, err := r.Resolve(link)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "Game.exe"), resolved)
}

func TestResolveUnsupported(t *testing.T) {
	t.Parallel()

	// memory filesystem has no symlinks; anything but .lnk must error
	r := NewShortcutResolver(afero.NewMemMapFs())
	_, err := r.Resolve("/games/whatever")
	assert.Error(t, err)
}

func TestResolveBrokenLnk(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	path := filepath.Join(dir, "broken.lnk")
	require.NoError(t, os.WriteFile(path, []byte("not a shortcut"), 0o600))

	r := NewShortcutResolver(afero.NewOsFs())
	_, err := r.Resolve(path)
	assert.Error(t, err)
}

func TestIsShortcutFile(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	lnkPath := filepath.Join(dir, "Game.LNK")
	require.NoError(t, os.WriteFile(lnkPath, []byte("x"), 0o600))
	exePath := filepath.Join(dir, "Game.exe")
	require.NoError(t, os.WriteFile(exePath, []byte("x"), 0o600))

	lnkInfo, err := os.Lstat(lnkPath)
	require.NoError(t, err)
	assert.True(t, isShortcutFile(lnkInfo))

	exeInfo, err := os.Lstat(exePath)
	require.NoError(t, err)
	assert.False(t, isShortcutFile(exeInfo))
}
