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

import (
	"path/filepath"
	"strings"
)

// positiveTokens are name fragments that suggest an executable is the actual
// game binary.
var positiveTokens = []string{
	"game", "play", "start", "launch", "run", "main", "win64", "win32",
}

// negativeTokens identify installers, updaters, redistributables, anti-cheat
// runtimes and diagnostics. A single match marks a near-certain non-game
// binary, so the score penalty must not be recoverable by positive signals.
var negativeTokens = []string{
	"unins", "uninst", "uninstall", "setup", "install", "config",
	"crash", "report", "update", "patch", "bootstrap",
	"redist", "vcredist", "directx", "dotnet", "ue4prereq",
	"easyanticheat", "battleye", "dxsetup", "physx", "_commonredist",
	"support", "cleanup", "diagnostic", "repair", "verify",
}

// Weights are the scoring constants. The exact numbers are heuristic tuning;
// the contract is their relative ordering: a single negative token must
// outweigh any realistically achievable positive total.
type Weights struct {
	FolderNameMatch int
	ShallowDepth    int
	BinFolder       int
	PositiveToken   int
	SizeLarge       int
	SizeMedium      int
	SizeSmall       int
	NegativeToken   int
}

var DefaultWeights = Weights{
	FolderNameMatch: 50,
	ShallowDepth:    20,
	BinFolder:       15,
	PositiveToken:   10,
	SizeLarge:       30,
	SizeMedium:      20,
	SizeSmall:       10,
	NegativeToken:   -100,
}

const (
	sizeLargeBytes  = 50 * 1024 * 1024
	sizeMediumBytes = 10 * 1024 * 1024
	sizeSmallBytes  = 1 * 1024 * 1024
)

// baseName returns the file name without directory or extension. Both
// separator styles are handled; shortcut targets carry Windows paths even
// when the scan itself runs elsewhere.
func baseName(path string) string {
	name := path
	if segments := pathSegments(path); len(segments) > 0 {
		name = segments[len(segments)-1]
	}
	return strings.TrimSuffix(name, filepath.Ext(name))
}

// pathSegments splits a path on both separator styles.
func pathSegments(path string) []string {
	return strings.FieldsFunc(path, func(r rune) bool {
		return r == '/' || r == '\\'
	})
}

// score rates how likely an executable is to be the main game binary of the
// folder it was found in. depth is the number of path segments below the
// game folder (1 = directly inside it). Higher is better; anything with a
// negative-token hit ends up below every clean candidate.
func (s *Scanner) score(path string, depth int, folderName string) int {
	score := 0
	nameLower := strings.ToLower(baseName(path))
	pathLower := strings.ToLower(path)
	folderLower := strings.ToLower(folderName)

	if nameLower != "" && folderLower != "" &&
		(strings.Contains(folderLower, nameLower) || strings.Contains(nameLower, folderLower)) {
		score += s.weights.FolderNameMatch
	}

	if depth <= 2 {
		score += s.weights.ShallowDepth
	}

	for _, segment := range pathSegments(pathLower) {
		if segment == "bin" || segment == "binaries" {
			score += s.weights.BinFolder
			break
		}
	}

	for _, token := range positiveTokens {
		if strings.Contains(nameLower, token) {
			score += s.weights.PositiveToken
		}
	}

	// games tend to be large; a stat failure just contributes nothing
	if info, err := s.fs.Stat(path); err == nil {
		switch size := info.Size(); {
		case size > sizeLargeBytes:
			score += s.weights.SizeLarge
		case size > sizeMediumBytes:
			score += s.weights.SizeMedium
		case size > sizeSmallBytes:
			score += s.weights.SizeSmall
		}
	}

	for _, token := range negativeTokens {
		if strings.Contains(nameLower, token) || strings.Contains(pathLower, token) {
			score += s.weights.NegativeToken
		}
	}

	return score
}

// shouldIgnore applies the negative token set as a hard exclude. It is used
// for shortcut targets and loose executables, which are never scored.
func shouldIgnore(path string) bool {
	nameLower := strings.ToLower(baseName(path))
	pathLower := strings.ToLower(path)

	for _, token := range negativeTokens {
		if strings.Contains(nameLower, token) || strings.Contains(pathLower, token) {
			return true
		}
	}
	return false
}

var executableExts = []string{".exe"}

// isExecutablePath reports whether path ends in a recognized launchable
// extension.
func isExecutablePath(path string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	for _, e := range executableExts {
		if ext == e {
			return true
		}
	}
	return false
}
