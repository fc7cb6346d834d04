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

import (
	"strings"

	"github.com/CouchDeckProject/couchdeck-core/pkg/config"
	"github.com/rs/zerolog/log"
)

// Scheme selects which physical button index table is active for a
// connected controller.
type Scheme int

const (
	SchemeUSB Scheme = iota
	SchemeBluetooth
)

func (s Scheme) String() string {
	if s == SchemeBluetooth {
		return "bluetooth"
	}
	return "usb"
}

// Layout maps symbolic PlayStation buttons to physical button indices. A
// Layout value is selected once per connection and never mutated; a
// reconnect picks a fresh one.
type Layout struct {
	Cross    int
	Circle   int
	Square   int
	Triangle int
	L1       int
	R1       int
	L2       int
	R2       int
	Share    int
	Options  int
	L3       int
	R3       int
	PS       int
	Touchpad int
}

// Typical DirectInput indices for a USB-connected DualShock 4.
var usbLayout = Layout{
	Cross:    0,
	Circle:   1,
	Square:   2,
	Triangle: 3,
	L1:       4,
	R1:       5,
	L2:       6,
	R2:       7,
	Share:    8,
	Options:  9,
	L3:       10,
	R3:       11,
	PS:       12,
	Touchpad: 13,
}

// Bluetooth swaps square/triangle and shifts the stick clicks; exact
// indices vary by driver and OS version, these match the common case.
var btLayout = Layout{
	Cross:    0,
	Circle:   1,
	Square:   3,
	Triangle: 2,
	L1:       4,
	R1:       5,
	L2:       6,
	R2:       7,
	Share:    8,
	Options:  9,
	L3:       11,
	R3:       12,
	PS:       10,
	Touchpad: 13,
}

// LayoutFor returns the read-only button table for a scheme.
func LayoutFor(scheme Scheme) Layout {
	if scheme == SchemeBluetooth {
		return btLayout
	}
	return usbLayout
}

// btProductID is the DualShock 4 Bluetooth product id as it appears in
// joystick GUIDs.
const btProductID = "09cc"

// expectedButtons is what a DualShock 4 normally reports; some Bluetooth
// stacks drop the touchpad button and report one fewer.
const expectedButtons = 14

// DetectScheme decides between the USB and Bluetooth button tables for a
// freshly opened device. A valid config override always wins; otherwise the
// GUID is checked for the Bluetooth product id, then the reported button
// count, and anything ambiguous defaults to USB.
func DetectScheme(cfg *config.Instance, dev Device) Scheme {
	switch cfg.ButtonMapping() {
	case config.MappingBluetooth:
		log.Info().Msg("using bluetooth button mapping from config")
		return SchemeBluetooth
	case config.MappingUSB:
		log.Info().Msg("using usb button mapping from config")
		return SchemeUSB
	}

	if strings.Contains(strings.ToLower(dev.GUID()), btProductID) {
		log.Info().Msg("detected bluetooth controller via guid")
		return SchemeBluetooth
	}

	if n, err := dev.NumButtons(); err == nil && n == expectedButtons-1 {
		log.Info().Msgf("detected possible bluetooth mode (%d buttons)", n)
		return SchemeBluetooth
	}

	return SchemeUSB
}
