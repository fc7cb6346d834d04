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
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	lnk "github.com/parsiya/golnk"
	"github.com/spf13/afero"
)

// ShortcutResolver resolves a shortcut file to its target path.
type ShortcutResolver interface {
	Resolve(path string) (string, error)
}

// shortcutResolver handles Windows .lnk files and OS symlinks. The .lnk
// parser reads from the OS filesystem directly; symlink resolution goes
// through the scanner's filesystem when it supports links.
type shortcutResolver struct {
	fs afero.Fs
}

func NewShortcutResolver(fs afero.Fs) ShortcutResolver {
	return &shortcutResolver{fs: fs}
}

func (r *shortcutResolver) Resolve(path string) (string, error) {
	if strings.EqualFold(filepath.Ext(path), ".lnk") {
		return resolveLnk(path)
	}

	if reader, ok := r.fs.(afero.LinkReader); ok {
		target, err := reader.ReadlinkIfPossible(path)
		if err != nil {
			return "", fmt.Errorf("failed to read link: %w", err)
		}
		if !filepath.IsAbs(target) {
			target = filepath.Join(filepath.Dir(path), target)
		}
		return target, nil
	}

	return "", errors.New("unsupported shortcut type")
}

func resolveLnk(path string) (string, error) {
	f, err := lnk.File(path)
	if err != nil {
		return "", fmt.Errorf("failed to parse lnk file: %w", err)
	}

	if f.LinkInfo.LocalBasePath != "" {
		return f.LinkInfo.LocalBasePath, nil
	}
	if f.LinkInfo.LocalBasePathUnicode != "" {
		return f.LinkInfo.LocalBasePathUnicode, nil
	}
	if f.StringData.RelativePath != "" {
		return filepath.Join(filepath.Dir(path), f.StringData.RelativePath), nil
	}

	return "", errors.New("lnk file has no resolvable target")
}

// isShortcutFile reports whether a directory entry looks like a shortcut:
// a .lnk file or a symlink.
func isShortcutFile(info os.FileInfo) bool {
	if strings.EqualFold(filepath.Ext(info.Name()), ".lnk") {
		return true
	}
	return info.Mode()&os.ModeSymlink != 0
}
