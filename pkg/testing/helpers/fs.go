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

// Package helpers provides utilities for filesystem mocking in tests.
package helpers

import (
	"bytes"
	"fmt"
	"path/filepath"

	"github.com/spf13/afero"
)

// FSHelper builds game folder trees on an afero filesystem for tests.
type FSHelper struct {
	Fs afero.Fs
}

// NewMemoryFS creates a new in-memory filesystem for testing.
func NewMemoryFS() *FSHelper {
	return &FSHelper{
		Fs: afero.NewMemMapFs(),
	}
}

// WriteFileSized writes a file of the given size in bytes, creating parent
// directories as needed.
func (h *FSHelper) WriteFileSized(path string, size int) error {
	if err := h.Fs.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create directory for %s: %w", path, err)
	}
	data := bytes.Repeat([]byte{0xAB}, size)
	if err := afero.WriteFile(h.Fs, path, data, 0o755); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	return nil
}

// AddGame creates a typical install under root: a folder holding one main
// executable of the given size plus the usual redistributable noise tree.
func (h *FSHelper) AddGame(root, folder, exe string, exeSize int) error {
	gameDir := filepath.Join(root, folder)

	if err := h.WriteFileSized(filepath.Join(gameDir, exe), exeSize); err != nil {
		return err
	}

	noise := []string{
		filepath.Join(gameDir, "UnityCrashHandler64.exe"),
		filepath.Join(gameDir, "_CommonRedist", "vcredist_x64.exe"),
		filepath.Join(gameDir, "Engine", "Extras", "Redist", "ue4prereqsetup_x64.exe"),
	}
	for _, p := range noise {
		if err := h.WriteFileSized(p, 512*1024); err != nil {
			return err
		}
	}
	return nil
}

// AddLooseExe drops a bare executable directly into root.
func (h *FSHelper) AddLooseExe(root, name string, size int) error {
	return h.WriteFileSized(filepath.Join(root, name), size)
}

// AddShortcut creates an empty .lnk file in root. Tests pair this with a
// fake resolver that maps the shortcut path to a target.
func (h *FSHelper) AddShortcut(root, name string) error {
	return h.WriteFileSized(filepath.Join(root, name), 64)
}
