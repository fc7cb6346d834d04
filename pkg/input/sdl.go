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
	"errors"
	"fmt"

	"github.com/rs/zerolog/log"
	"github.com/veandco/go-sdl2/sdl"
)

var errDeviceDetached = errors.New("controller detached")

// InitSDL brings up the SDL joystick and event subsystems. Call once at
// startup, before opening a router with the SDL opener and keyboard.
func InitSDL() error {
	// expose DualShock 4 controllers through hidapi where available
	sdl.SetHint("SDL_JOYSTICK_HIDAPI_PS4", "1")
	// background polling keeps input alive when the window loses focus
	sdl.SetHint("SDL_JOYSTICK_ALLOW_BACKGROUND_EVENTS", "1")

	if err := sdl.Init(sdl.INIT_JOYSTICK | sdl.INIT_EVENTS); err != nil {
		return fmt.Errorf("failed to init sdl: %w", err)
	}
	return nil
}

// SDLOpener opens controllers through SDL's joystick API, preferring a
// PlayStation controller but falling back to the first attached device so
// generic pads still work.
type SDLOpener struct{}

func NewSDLOpener() *SDLOpener {
	return &SDLOpener{}
}

func (o *SDLOpener) Open() (Device, bool) {
	sdl.JoystickUpdate()

	count := sdl.NumJoysticks()
	if count == 0 {
		return nil, false
	}
	log.Debug().Msgf("detected %d controller(s)", count)

	fallback := -1
	for i := range count {
		name := sdl.JoystickNameForIndex(i)
		if IsPlayStationName(name) {
			if dev, ok := openIndex(i); ok {
				return dev, true
			}
			continue
		}
		if fallback < 0 {
			fallback = i
		}
	}

	if fallback >= 0 {
		if dev, ok := openIndex(fallback); ok {
			log.Info().Msgf("no playstation controller, using %q", dev.Name())
			return dev, true
		}
	}
	return nil, false
}

func openIndex(index int) (Device, bool) {
	joy := sdl.JoystickOpen(index)
	if joy == nil {
		log.Warn().Msgf("failed to open controller %d: %v", index, sdl.GetError())
		return nil, false
	}
	return &sdlDevice{joy: joy}, true
}

type sdlDevice struct {
	joy *sdl.Joystick
}

func (d *sdlDevice) Name() string {
	return d.joy.Name()
}

func (d *sdlDevice) GUID() string {
	return sdl.JoystickGetGUIDString(d.joy.GUID())
}

func (d *sdlDevice) NumButtons() (int, error) {
	if !d.joy.Attached() {
		return 0, errDeviceDetached
	}
	return d.joy.NumButtons(), nil
}

func (d *sdlDevice) NumAxes() (int, error) {
	if !d.joy.Attached() {
		return 0, errDeviceDetached
	}
	return d.joy.NumAxes(), nil
}

func (d *sdlDevice) NumHats() (int, error) {
	if !d.joy.Attached() {
		return 0, errDeviceDetached
	}
	return d.joy.NumHats(), nil
}

func (d *sdlDevice) Hat(hat int) (int, int, error) {
	if !d.joy.Attached() {
		return 0, 0, errDeviceDetached
	}

	var x, y int
	state := d.joy.Hat(hat)
	if state&sdl.HAT_UP != 0 {
		y = 1
	}
	if state&sdl.HAT_DOWN != 0 {
		y = -1
	}
	if state&sdl.HAT_LEFT != 0 {
		x = -1
	}
	if state&sdl.HAT_RIGHT != 0 {
		x = 1
	}
	return x, y, nil
}

func (d *sdlDevice) Axis(axis int) (float64, error) {
	if !d.joy.Attached() {
		return 0, errDeviceDetached
	}
	return float64(d.joy.Axis(axis)) / 32768.0, nil
}

func (d *sdlDevice) Button(button int) (bool, error) {
	if !d.joy.Attached() {
		return false, errDeviceDetached
	}
	if button >= d.joy.NumButtons() {
		return false, nil
	}
	return d.joy.Button(button) == 1, nil
}

func (d *sdlDevice) Close() {
	d.joy.Close()
}

// SDLKeyboard reads held keys from SDL's keyboard state array. Both the
// arrow keys and WASD navigate.
type SDLKeyboard struct{}

func NewSDLKeyboard() *SDLKeyboard {
	return &SDLKeyboard{}
}

var keyBindings = []struct {
	scancodes []sdl.Scancode
	action    Action
}{
	{[]sdl.Scancode{sdl.SCANCODE_UP, sdl.SCANCODE_W}, ActionUp},
	{[]sdl.Scancode{sdl.SCANCODE_DOWN, sdl.SCANCODE_S}, ActionDown},
	{[]sdl.Scancode{sdl.SCANCODE_LEFT, sdl.SCANCODE_A}, ActionLeft},
	{[]sdl.Scancode{sdl.SCANCODE_RIGHT, sdl.SCANCODE_D}, ActionRight},
	{[]sdl.Scancode{sdl.SCANCODE_RETURN, sdl.SCANCODE_SPACE}, ActionConfirm},
	{[]sdl.Scancode{sdl.SCANCODE_ESCAPE, sdl.SCANCODE_BACKSPACE}, ActionBack},
	{[]sdl.Scancode{sdl.SCANCODE_TAB, sdl.SCANCODE_O}, ActionOptions},
	{[]sdl.Scancode{sdl.SCANCODE_R}, ActionRescan},
}

func (k *SDLKeyboard) Read() Action {
	sdl.PumpEvents()
	state := sdl.GetKeyboardState()

	for _, binding := range keyBindings {
		for _, scancode := range binding.scancodes {
			if state[scancode] != 0 {
				return binding.action
			}
		}
	}
	return ActionNone
}
