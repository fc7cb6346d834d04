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

package input

// Prompts are the display labels the UI shows for each logical action.
type Prompts struct {
	Confirm  string
	Back     string
	Options  string
	Rescan   string
	Navigate string
}

var controllerPrompts = Prompts{
	Confirm:  "✕",
	Back:     "○",
	Options:  "OPTIONS",
	Rescan:   "△",
	Navigate: "D-Pad/L-Stick",
}

var keyboardPrompts = Prompts{
	Confirm:  "Enter",
	Back:     "Esc",
	Options:  "Tab",
	Rescan:   "R",
	Navigate: "Arrow Keys",
}

// ButtonPrompts returns the glyph set matching the current connection
// state: controller glyphs while a controller is held, keyboard labels
// otherwise.
func (r *Router) ButtonPrompts() Prompts {
	if r.Connected() {
		return controllerPrompts
	}
	return keyboardPrompts
}
