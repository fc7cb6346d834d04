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
	"github.com/CouchDeckProject/couchdeck-core/pkg/database/gamedb"
	"github.com/CouchDeckProject/couchdeck-core/pkg/games"
	"github.com/CouchDeckProject/couchdeck-core/pkg/gamescanner"
	"github.com/CouchDeckProject/couchdeck-core/pkg/helpers"
	"github.com/CouchDeckProject/couchdeck-core/pkg/input"
	"github.com/adrg/xdg"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/afero"
)

const (
	pollInterval  = 16 * time.Millisecond
	probeInterval = 2 * time.Second
)

func main() {
	if err := run(); err != nil {
		_, _ = fmt.Fprintf(os.Stderr, "Error: %s\n", err)
		os.Exit(1)
	}
}

func run() error {
	showVersion := flag.Bool("version", false, "print version and exit")
	doScan := flag.Bool("scan", false, "force a rescan instead of using the cache")
	listOnly := flag.Bool("list", false, "print the game list and exit")
	searchQuery := flag.String("search", "", "print games matching a query and exit")
	debug := flag.Bool("debug", false, "enable debug logging")
	flag.Parse()

	if *showVersion {
		fmt.Printf("%s v%s\n", config.AppName, config.AppVersion)
		return nil
	}

	logDir := filepath.Join(xdg.StateHome, config.AppName)
	if err := helpers.InitLogging(logDir, nil); err != nil {
		return fmt.Errorf("failed to init logging: %w", err)
	}

	configDir := filepath.Join(xdg.ConfigHome, config.AppName)
	cfg, err := config.NewConfig(configDir, config.BaseDefaults)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	if *debug || cfg.IsDebugLogging() {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	} else {
		zerolog.SetGlobalLevel(zerolog.InfoLevel)
	}

	fs := afero.NewOsFs()
	dataDir := filepath.Join(xdg.DataHome, config.AppName)
	store := gamedb.NewStore(fs, filepath.Join(dataDir, config.SnapshotFile))
	engine := gamescanner.New(fs, cfg, store, nil)

	list := engine.LoadCached()
	if list == nil || *doScan {
		list = engine.Scan(func(status gamescanner.Status) {
			fmt.Printf("scanned %s (%d/%d), %d games so far\n",
				status.Root, status.Step, status.Total, status.Found)
		})
	}

	if *searchQuery != "" {
		printGames(engine.Search(*searchQuery))
		return nil
	}
	if *listOnly {
		printGames(list)
		return nil
	}

	return eventLoop(cfg, engine)
}

func printGames(list []games.Record) {
	for _, game := range list {
		fmt.Printf("%s\t%s\n", game.Name, game.Path)
	}
	fmt.Printf("%d game(s)\n", len(list))
}

// eventLoop is a headless stand-in for the presentation layer: it polls the
// router once per frame, moves a selection index over the game list and
// records plays on confirm. A real UI consumes the same surface.
func eventLoop(cfg *config.Instance, engine *gamescanner.Scanner) error {
	if err := input.InitSDL(); err != nil {
		return err
	}

	router := input.NewRouter(cfg, input.NewSDLOpener(), input.NewSDLKeyboard(), nil)

	watcher, err := gamescanner.NewWatcher(cfg.ScanFolders())
	if err != nil {
		return fmt.Errorf("failed to watch game folders: %w", err)
	}
	defer func() {
		if closeErr := watcher.Close(); closeErr != nil {
			log.Warn().Err(closeErr).Msg("failed to close watcher")
		}
	}()

	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM)

	ticker := time.NewTicker(pollInterval)
	defer ticker.Stop()
	probe := time.NewTicker(probeInterval)
	defer probe.Stop()

	list := engine.Games()
	selected := 0
	prompts := router.ButtonPrompts()
	fmt.Printf("ready: %d games, navigate with %s, %s to launch\n",
		len(list), prompts.Navigate, prompts.Confirm)

	for {
		select {
		case <-sigs:
			log.Info().Msg("shutting down")
			return nil
		case <-probe.C:
			router.ProbeConnection()
			if watcher.Stale() {
				log.Info().Msg("game folders changed, rescanning")
				list = engine.Scan(nil)
				selected = 0
				watcher.Reset()
			}
		case <-ticker.C:
			action := router.Poll()
			if action == input.ActionNone {
				continue
			}

			switch action {
			case input.ActionLeft, input.ActionUp:
				if selected > 0 {
					selected--
				}
			case input.ActionRight, input.ActionDown:
				if selected < len(list)-1 {
					selected++
				}
			case input.ActionConfirm:
				if selected < len(list) {
					game := list[selected]
					if err := engine.RecordPlayed(&game); err != nil {
						log.Warn().Err(err).Msg("failed to record play")
					}
					fmt.Printf("launch: %s\n", game.Path)
				}
				router.WaitForRelease()
			case input.ActionRescan:
				list = engine.Scan(nil)
				selected = 0
				watcher.Reset()
				router.WaitForRelease()
			case input.ActionBack, input.ActionOptions:
				router.WaitForRelease()
			}

			if selected < len(list) {
				fmt.Printf("[%d/%d] %s\n", selected+1, len(list), list[selected].Name)
			}
		}
	}
}
