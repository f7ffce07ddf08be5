// SPDX-FileCopyrightText: © 2025 Medical Artificial Intelligence Lab
//
// SPDX-License-Identifier: Apache-2.0

package transfer

import (
	"os"
	"path/filepath"
	"testing"
)

func TestChooseLocalTarget(t *testing.T) {
	dir := t.TempDir()

	got, err := chooseLocalTarget("", "bundle.zip")
	if err != nil || got != "bundle.zip" {
		t.Fatalf("empty dst: got %q, %v", got, err)
	}

	got, err = chooseLocalTarget(dir, "bundle.zip")
	if err != nil || got != filepath.Join(dir, "bundle.zip") {
		t.Fatalf("existing dir: got %q, %v", got, err)
	}

	file := filepath.Join(dir, "renamed.zip")
	if err := os.WriteFile(file, nil, 0o644); err != nil {
		t.Fatalf("write failed: %v", err)
	}
	got, err = chooseLocalTarget(file, "bundle.zip")
	if err != nil || got != file {
		t.Fatalf("existing file: got %q, %v", got, err)
	}

	missing := filepath.Join(dir, "newdir")
	got, err = chooseLocalTarget(missing, "bundle.zip")
	if err != nil || got != filepath.Join(missing, "bundle.zip") {
		t.Fatalf("missing dst: got %q, %v", got, err)
	}
	if info, err := os.Stat(missing); err != nil || !info.IsDir() {
		t.Fatalf("expected %s created as a directory: %v", missing, err)
	}
}

func TestDirBaseForLocalTarget(t *testing.T) {
	if got := dirBaseForLocalTarget("bundle.zip"); got != "" {
		t.Fatalf("bare filename: got %q", got)
	}
	if got := dirBaseForLocalTarget(filepath.Join("out", "bundle.zip")); got != "out" {
		t.Fatalf("nested path: got %q", got)
	}
}
