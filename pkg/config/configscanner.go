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

package config

// Scanner configures game discovery.
type Scanner struct {
	Sorting string   `toml:"sorting,omitempty"`
	Folders []string `toml:"folders,omitempty,multiline"`
}

// ScanFolders returns the ordered list of root folders to scan for games.
func (c *Instance) ScanFolders() []string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	folders := make([]string, len(c.vals.Scanner.Folders))
	copy(folders, c.vals.Scanner.Folders)
	return folders
}

// SetScanFolders replaces the configured scan roots.
func (c *Instance) SetScanFolders(folders []string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.vals.Scanner.Folders = make([]string, len(folders))
	copy(c.vals.Scanner.Folders, folders)
}

// Sorting returns the raw configured sort mode string. Validation and
// fallback behavior live with the sort mode parser, not here.
func (c *Instance) Sorting() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.vals.Scanner.Sorting
}

// SetSorting stores a new sort mode string.
func (c *Instance) SetSorting(mode string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.vals.Scanner.Sorting = mode
}
