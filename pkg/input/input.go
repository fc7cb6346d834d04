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

// Package input normalizes controller and keyboard signals into one
// symbolic action stream with key-repeat semantics. The router is polled
// once per UI frame and returns at most one action per poll.
package input

import (
	"time"

	"github.com/CouchDeckProject/couchdeck-core/pkg/config"
	"github.com/jonboulle/clockwork"
	"github.com/rs/zerolog/log"
)

// Action is one symbolic navigation or command signal, independent of the
// physical source that produced it.
type Action int

const (
	ActionNone Action = iota
	ActionUp
	ActionDown
	ActionLeft
	ActionRight
	ActionConfirm
	ActionBack
	ActionOptions
	ActionRescan
)

var actionNames = map[Action]string{
	ActionNone:    "none",
	ActionUp:      "up",
	ActionDown:    "down",
	ActionLeft:    "left",
	ActionRight:   "right",
	ActionConfirm: "confirm",
	ActionBack:    "back",
	ActionOptions: "options",
	ActionRescan:  "rescan",
}

func (a Action) String() string {
	if name, ok := actionNames[a]; ok {
		return name
	}
	return "unknown"
}

const (
	axisLeftX = 0
	axisLeftY = 1
	dpadHat   = 0

	releasePollInterval = 10 * time.Millisecond
)

// Router owns at most one controller plus the keyboard and is the single
// entry point for per-frame input. It is not safe for concurrent use; the
// expected caller is one poll-driven UI loop.
type Router struct {
	cfg      *config.Instance
	opener   Opener
	keyboard Keyboard
	clock    clockwork.Clock

	device Device
	layout Layout
	name   string

	last       Action
	holdStart  time.Time
	lastRepeat time.Time
	triggered  bool
}

// NewRouter wires a router from a controller opener and a keyboard reader.
// A nil clock selects the wall clock. The first controller probe happens
// immediately.
func NewRouter(cfg *config.Instance, opener Opener, keyboard Keyboard, clock clockwork.Clock) *Router {
	if clock == nil {
		clock = clockwork.NewRealClock()
	}
	r := &Router{
		cfg:      cfg,
		opener:   opener,
		keyboard: keyboard,
		clock:    clock,
	}
	r.ProbeConnection()
	return r
}

// Connected reports whether a controller handle is currently held.
func (r *Router) Connected() bool {
	return r.device != nil
}

// DeviceName returns the display name of the connected controller, or ""
// when disconnected.
func (r *Router) DeviceName() string {
	return r.name
}

// ProbeConnection verifies the held controller handle with a lightweight
// capability query, or attempts to acquire one when none is held. It never
// re-enumerates a working handle, which avoids spurious
// disconnect/reconnect cycles.
func (r *Router) ProbeConnection() bool {
	if r.device != nil {
		if _, err := r.device.NumButtons(); err != nil {
			log.Info().Err(err).Msg("controller disconnected")
			r.disconnect()
			return false
		}
		return true
	}

	dev, ok := r.opener.Open()
	if !ok {
		return false
	}

	scheme := DetectScheme(r.cfg, dev)
	r.device = dev
	r.layout = LayoutFor(scheme)
	r.name = dev.Name()
	log.Info().Msgf("connected controller %q with %s mapping", r.name, scheme)
	return true
}

func (r *Router) disconnect() {
	if r.device != nil {
		r.device.Close()
	}
	r.device = nil
	r.name = ""
}

// Poll decodes the current raw input and applies repeat timing: a fresh
// press fires immediately, then nothing until the repeat delay elapses,
// then a steady cadence at the repeat interval while held.
func (r *Router) Poll() Action {
	action := r.readRaw()
	now := r.clock.Now()

	if action == ActionNone {
		r.last = ActionNone
		r.triggered = false
		return ActionNone
	}

	if action != r.last {
		r.last = action
		r.holdStart = now
		r.lastRepeat = now
		r.triggered = true
		return action
	}

	if !r.triggered {
		r.triggered = true
		return action
	}

	if now.Sub(r.holdStart) < r.cfg.RepeatDelay() {
		return ActionNone
	}
	if now.Sub(r.lastRepeat) >= r.cfg.RepeatInterval() {
		r.lastRepeat = now
		return action
	}
	return ActionNone
}

// WaitForRelease polls raw input, bypassing repeat logic, until everything
// is released. It prevents one physical press from being consumed by two
// different UI states. Callers should invoke it right after acting on a
// discrete button.
func (r *Router) WaitForRelease() {
	for r.readRaw() != ActionNone {
		r.clock.Sleep(releasePollInterval)
	}
	r.last = ActionNone
	r.triggered = false
}

// readRaw returns the highest-priority active input. The keyboard is
// always consulted first so analog drift or a stuck button can never lock
// out keyboard control. Within the controller path the order is hat, left
// stick, then discrete buttons; the first hit wins.
func (r *Router) readRaw() Action {
	if action := r.keyboard.Read(); action != ActionNone {
		return action
	}

	if r.device == nil {
		return ActionNone
	}

	action, err := r.readDevice()
	if err != nil {
		log.Info().Err(err).Msg("controller query failed, treating as disconnect")
		r.disconnect()
		return ActionNone
	}
	return action
}

func (r *Router) readDevice() (Action, error) {
	hats, err := r.device.NumHats()
	if err != nil {
		return ActionNone, err
	}
	if hats > 0 {
		x, y, err := r.device.Hat(dpadHat)
		if err != nil {
			return ActionNone, err
		}
		switch {
		case y == 1:
			return ActionUp, nil
		case y == -1:
			return ActionDown, nil
		case x == -1:
			return ActionLeft, nil
		case x == 1:
			return ActionRight, nil
		}
	}

	axes, err := r.device.NumAxes()
	if err != nil {
		return ActionNone, err
	}
	if axes >= 2 {
		x, err := r.device.Axis(axisLeftX)
		if err != nil {
			return ActionNone, err
		}
		y, err := r.device.Axis(axisLeftY)
		if err != nil {
			return ActionNone, err
		}

		deadzone := r.cfg.Deadzone()
		switch {
		case y < -deadzone:
			return ActionUp, nil
		case y > deadzone:
			return ActionDown, nil
		case x < -deadzone:
			return ActionLeft, nil
		case x > deadzone:
			return ActionRight, nil
		}
	}

	for _, check := range []struct {
		button int
		action Action
	}{
		{r.layout.Cross, ActionConfirm},
		{r.layout.Circle, ActionBack},
		{r.layout.Options, ActionOptions},
		{r.layout.Triangle, ActionRescan},
	} {
		pressed, err := r.device.Button(check.button)
		if err != nil {
			return ActionNone, err
		}
		if pressed {
			return check.action, nil
		}
	}

	return ActionNone, nil
}
