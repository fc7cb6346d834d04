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

//go:build !deadlock

// Package syncutil wraps the mutex primitives so a -tags=deadlock build can
// swap in deadlock detection repo-wide.
package syncutil

import "sync"

// DeadlockEnabled reports whether this build carries the deadlock detector.
const DeadlockEnabled = false

// Mutex is a mutual exclusion lock.
//
//nolint:gocritic // embedding sync.Mutex is intentional - this IS the wrapper
type Mutex struct {
	sync.Mutex
}

// RWMutex is a reader/writer mutual exclusion lock.
//
//nolint:gocritic // embedding sync.RWMutex is intentional - this IS the wrapper
type RWMutex struct {
	sync.RWMutex
}
