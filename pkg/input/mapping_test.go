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
	"testing"

	"github.com/CouchDeckProject/couchdeck-core/pkg/config"
	"github.com/stretchr/testify/assert"
)

func TestDetectScheme(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		override string
		guid     string
		buttons  int
		want     Scheme
	}{
		{
			name:    "defaults to usb",
			guid:    "030000004c050000c405000000000000",
			buttons: 14,
			want:    SchemeUSB,
		},
		{
			name:    "bluetooth product id in guid",
			guid:    "050000004c05000009cc000000810000",
			buttons: 14,
			want:    SchemeBluetooth,
		},
		{
			name:    "thirteen buttons means bluetooth",
			guid:    "030000004c050000c405000000000000",
			buttons: 13,
			want:    SchemeBluetooth,
		},
		{
			// config override beats a guid that auto-detects as usb
			name:     "override wins over guid",
			override: "bluetooth",
			guid:     "030000004c050000c405000000000000",
			buttons:  14,
			want:     SchemeBluetooth,
		},
		{
			name:     "usb override wins over bluetooth guid",
			override: "usb",
			guid:     "050000004c05000009cc000000810000",
			buttons:  13,
			want:     SchemeUSB,
		},
		{
			name:     "bt shorthand accepted",
			override: "BT",
			guid:     "030000004c050000c405000000000000",
			buttons:  14,
			want:     SchemeBluetooth,
		},
		{
			name:     "invalid override falls back to auto-detect",
			override: "wireless",
			guid:     "030000004c050000c405000000000000",
			buttons:  14,
			want:     SchemeUSB,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			cfg := inputConfig(t, func(vals *config.Values) {
				vals.Input.ButtonMapping = tt.override
			})
			dev := newFakeDevice()
			dev.guid = tt.guid
			dev.buttons = tt.buttons

			assert.Equal(t, tt.want, DetectScheme(cfg, dev))
		})
	}
}

func TestLayoutFor(t *testing.T) {
	t.Parallel()

	assert.Equal(t, usbLayout, LayoutFor(SchemeUSB))
	assert.Equal(t, btLayout, LayoutFor(SchemeBluetooth))

	// the tables disagree exactly where bluetooth drivers shuffle indices
	assert.NotEqual(t, usbLayout.Triangle, btLayout.Triangle)
	assert.NotEqual(t, usbLayout.PS, btLayout.PS)
	assert.Equal(t, usbLayout.Cross, btLayout.Cross)
}

func TestIsPlayStationName(t *testing.T) {
	t.Parallel()

	assert.True(t, IsPlayStationName("Sony Interactive Entertainment Wireless Controller"))
	assert.True(t, IsPlayStationName("PS4 Controller"))
	assert.True(t, IsPlayStationName("DualSense Wireless Controller"))
	assert.False(t, IsPlayStationName("Xbox Series X Controller"))
	assert.False(t, IsPlayStationName(""))
}
