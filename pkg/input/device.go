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

import "strings"

// Device is one opened game controller. Every hardware query can fail once
// the controller is unplugged; callers treat any error as a disconnect.
type Device interface {
	Name() string
	GUID() string
	NumButtons() (int, error)
	NumAxes() (int, error)
	NumHats() (int, error)
	// Hat returns the D-pad position on each axis as -1, 0 or 1.
	Hat(hat int) (x, y int, err error)
	// Axis returns a stick axis normalized to [-1, 1].
	Axis(axis int) (float64, error)
	Button(button int) (bool, error)
	Close()
}

// Opener enumerates attached controllers and opens the most suitable one.
type Opener interface {
	Open() (Device, bool)
}

// psIdentifiers mark a joystick name as a PlayStation controller across
// USB, Bluetooth and various OS/driver combinations.
var psIdentifiers = []string{
	"playstation",
	"ps4", "ps5",
	"dualshock", "dualsense",
	"wireless controller",
	"sony interactive entertainment",
	"sony computer entertainment",
	"cuh-zct",
	"cfi-zct",
	"054c:05c4",
	"054c:09cc",
	"054c:0ce6",
}

// IsPlayStationName reports whether a joystick name looks like a
// PlayStation controller.
func IsPlayStationName(name string) bool {
	lower := strings.ToLower(name)
	for _, id := range psIdentifiers {
		if strings.Contains(lower, id) {
			return true
		}
	}
	return false
}
