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

import (
	"strings"
	"time"
)

const (
	DefaultDeadzone         = 0.3
	DefaultRepeatDelayMs    = 500
	DefaultRepeatIntervalMs = 150

	MappingUSB       = "usb"
	MappingBluetooth = "bluetooth"
)

// Input configures the input router.
type Input struct {
	ButtonMapping  string  `toml:"button_mapping,omitempty"`
	Deadzone       float64 `toml:"deadzone,omitempty"`
	RepeatDelay    int     `toml:"repeat_delay,omitempty"`
	RepeatInterval int     `toml:"repeat_interval,omitempty"`
}

// Deadzone returns the analog stick magnitude below which no directional
// action is emitted. Out-of-range values fall back to the default.
func (c *Instance) Deadzone() float64 {
	c.mu.RLock()
	defer c.mu.RUnlock()
	dz := c.vals.Input.Deadzone
	if dz <= 0 || dz >= 1 {
		return DefaultDeadzone
	}
	return dz
}

// RepeatDelay returns the hold duration before auto-repeat engages.
func (c *Instance) RepeatDelay() time.Duration {
	c.mu.RLock()
	defer c.mu.RUnlock()
	ms := c.vals.Input.RepeatDelay
	if ms <= 0 {
		ms = DefaultRepeatDelayMs
	}
	return time.Duration(ms) * time.Millisecond
}

// RepeatInterval returns the cadence between repeated actions while held.
func (c *Instance) RepeatInterval() time.Duration {
	c.mu.RLock()
	defer c.mu.RUnlock()
	ms := c.vals.Input.RepeatInterval
	if ms <= 0 {
		ms = DefaultRepeatIntervalMs
	}
	return time.Duration(ms) * time.Millisecond
}

// ButtonMapping returns the explicit button mapping override: MappingUSB,
// MappingBluetooth, or empty when unset. Any other configured value is
// treated as absent so auto-detection takes over.
func (c *Instance) ButtonMapping() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	switch strings.ToLower(strings.TrimSpace(c.vals.Input.ButtonMapping)) {
	case MappingUSB:
		return MappingUSB
	case MappingBluetooth, "bt":
		return MappingBluetooth
	default:
		return ""
	}
}

// SetButtonMapping stores an explicit mapping override.
func (c *Instance) SetButtonMapping(mapping string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.vals.Input.ButtonMapping = mapping
}
