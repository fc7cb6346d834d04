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

import "strings"

// nameSuffixes are platform/architecture suffixes stripped from display
// names, checked in order against the end of the raw name.
var nameSuffixes = []string{
	"-Win64-Shipping", "-Win32-Shipping", "_x64", "_x86", "-x64", "-x86",
	"_64", "_32", " x64", " x86", "Win64", "Win32",
}

// CleanName turns a folder or executable name into a display name: strips
// known platform suffixes, converts underscores and hyphens to spaces and
// normalizes whitespace.
func CleanName(raw string) string {
	name := raw

	for _, suffix := range nameSuffixes {
		if len(name) >= len(suffix) &&
			strings.EqualFold(name[len(name)-len(suffix):], suffix) {
			name = name[:len(name)-len(suffix)]
		}
	}

	name = strings.ReplaceAll(name, "_", " ")
	name = strings.ReplaceAll(name, "-", " ")
	name = strings.Join(strings.Fields(name), " ")

	return name
}
