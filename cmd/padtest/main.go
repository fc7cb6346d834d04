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

// Controller diagnostic for troubleshooting detection and button mapping,
// mainly for Bluetooth controllers whose indices vary by driver. It lists
// every attached device, then echoes live input from the preferred one.
package main

import (
	"flag"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/CouchDeckProject/couchdeck-core/pkg/config"
	"github.com/CouchDeckProject/couchdeck-core/pkg/input"
	"github.com/adrg/xdg"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

func printDevice(cfg *config.Instance, dev input.Device) {
	fmt.Printf("device: %s\n", dev.Name())
	fmt.Printf("  guid: %s\n", dev.GUID())
	if n, err := dev.NumButtons(); err == nil {
		fmt.Printf("  buttons: %d\n", n)
	}
	if n, err := dev.NumAxes(); err == nil {
		fmt.Printf("  axes: %d\n", n)
	}
	if n, err := dev.NumHats(); err == nil {
		fmt.Printf("  hats: %d\n", n)
	}
	if input.IsPlayStationName(dev.Name()) {
		fmt.Println("  type: playstation controller")
	} else {
		fmt.Println("  type: generic controller")
	}
	fmt.Printf("  mapping: %s\n", input.DetectScheme(cfg, dev))
}

func main() {
	if err := run(); err != nil {
		_, _ = fmt.Fprintf(os.Stderr, "Error: %s\n", err)
		os.Exit(1)
	}
}

func run() error {
	mapping := flag.String("mapping", "",
		"force button mapping: usb or bluetooth")
	duration := flag.Duration("duration", 30*time.Second,
		"how long to echo live input")
	flag.Parse()

	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stdout})

	if err := input.InitSDL(); err != nil {
		return err
	}

	cfg, err := config.NewConfig(
		filepath.Join(xdg.ConfigHome, config.AppName), config.BaseDefaults)
	if err != nil {
		return err
	}
	if *mapping != "" {
		cfg.SetButtonMapping(*mapping)
	}

	opener := input.NewSDLOpener()
	if dev, ok := opener.Open(); ok {
		printDevice(cfg, dev)
		dev.Close()
	}

	router := input.NewRouter(cfg, opener, input.NewSDLKeyboard(), nil)

	if !router.Connected() {
		fmt.Println("no controllers detected")
		fmt.Println()
		fmt.Println("troubleshooting:")
		fmt.Println("  usb: check the cable, some are charge-only")
		fmt.Println("  bluetooth: hold PS + Share until the light flashes, then pair")
		fmt.Println()
		fmt.Println("keyboard input will still be echoed")
	} else {
		fmt.Printf("connected: %s\n", router.DeviceName())
	}

	fmt.Printf("press buttons for %s, ctrl-c to quit\n", *duration)

	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM)

	ticker := time.NewTicker(16 * time.Millisecond)
	defer ticker.Stop()
	deadline := time.After(*duration)

	for {
		select {
		case <-sigs:
			return nil
		case <-deadline:
			fmt.Println("done")
			return nil
		case <-ticker.C:
			if action := router.Poll(); action != input.ActionNone {
				fmt.Printf("  %s\n", action)
			}
		}
	}
}
