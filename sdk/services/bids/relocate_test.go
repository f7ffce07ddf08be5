// SPDX-FileCopyrightText: © 2025 Medical Artificial Intelligence Lab
//
// SPDX-License-Identifier: Apache-2.0

package bids_test

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/mailab-io/webqc-cli-sdk/sdk/services/bids"
	"github.com/mailab-io/webqc-cli-sdk/sdk/services/inventory"
)

func mustWrite(t *testing.T, path string, size int) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir failed: %v", err)
	}
	if err := os.WriteFile(path, make([]byte, size), 0o644); err != nil {
		t.Fatalf("write failed: %v", err)
	}
}

func mustWriteJSON(t *testing.T, path string, v any) {
	t.Helper()
	data, err := json.Marshal(v)
	if err != nil {
		t.Fatalf("marshal failed: %v", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatalf("write failed: %v", err)
	}
}

func TestTargetPathGoldenFunctional(t *testing.T) {
	c := bids.Classification{Modality: "func", Suffix: "bold", Task: "rest"}
	got := bids.TargetPath("/out", "01", "baseline", c, ".xyz.gz")
	want := filepath.Join("/out", "sub-01", "ses-baseline", "func",
		"sub-01_ses-baseline_task-rest_bold.xyz.gz")
	if got != want {
		t.Fatalf("got %q, want %q", got, want)
	}
}

func TestTargetPathNoSession(t *testing.T) {
	c := bids.Classification{Modality: "anat", Suffix: "T1w"}
	got := bids.TargetPath("/out", "07", "", c, ".nii.gz")
	want := filepath.Join("/out", "sub-07", "anat", "sub-07_T1w.nii.gz")
	if got != want {
		t.Fatalf("got %q, want %q", got, want)
	}
}

func TestRelocateMovesPrimaryAndSidecars(t *testing.T) {
	staging := t.TempDir()
	out := t.TempDir()
	mustWrite(t, filepath.Join(staging, "series.nii.gz"), 100)
	mustWrite(t, filepath.Join(staging, "series.nii"), 10)
	mustWrite(t, filepath.Join(staging, "series.json"), 2)
	mustWrite(t, filepath.Join(staging, "series.bval"), 2)
	mustWrite(t, filepath.Join(staging, "series.bvec"), 2)

	assets, err := inventory.Scan(staging)
	if err != nil {
		t.Fatalf("scan failed: %v", err)
	}
	g := inventory.Group(assets)[0]
	c := bids.Classification{Modality: "dwi", Suffix: "dwi"}

	rep, err := bids.Relocate(g, c, out, "05", "")
	if err != nil {
		t.Fatalf("relocate failed: %v", err)
	}
	if len(rep.Relocated) != 4 {
		t.Fatalf("expected 4 moves, got %d: %+v", len(rep.Relocated), rep.Relocated)
	}
	for _, name := range []string{"sub-05_dwi.nii.gz", "sub-05_dwi.json", "sub-05_dwi.bval", "sub-05_dwi.bvec"} {
		if _, err := os.Stat(filepath.Join(out, "sub-05", "dwi", name)); err != nil {
			t.Fatalf("expected %s in dwi dir: %v", name, err)
		}
	}
	// the discarded smaller image is left where it was, not moved
	if _, err := os.Stat(filepath.Join(staging, "series.nii")); err != nil {
		t.Fatalf("discarded image must remain in staging: %v", err)
	}
	if _, err := os.Stat(filepath.Join(out, "sub-05", "dwi", "sub-05_dwi.nii")); err == nil {
		t.Fatal("discarded image must not be relocated")
	}
}

func TestRelocatePartialFailureIsNotRolledBack(t *testing.T) {
	staging := t.TempDir()
	out := t.TempDir()
	mustWrite(t, filepath.Join(staging, "series.nii.gz"), 100)
	mustWrite(t, filepath.Join(staging, "series.json"), 2)

	assets, err := inventory.Scan(staging)
	if err != nil {
		t.Fatalf("scan failed: %v", err)
	}
	g := inventory.Group(assets)[0]

	// sidecar vanishes between grouping and relocation
	if err := os.Remove(filepath.Join(staging, "series.json")); err != nil {
		t.Fatalf("remove failed: %v", err)
	}

	rep, err := bids.Relocate(g, bids.Classification{Modality: "anat", Suffix: "T1w"}, out, "01", "")
	if err != nil {
		t.Fatalf("per-file failures must not be fatal: %v", err)
	}
	if _, err := os.Stat(filepath.Join(out, "sub-01", "anat", "sub-01_T1w.nii.gz")); err != nil {
		t.Fatalf("primary must stay moved despite the sidecar failure: %v", err)
	}
	if len(rep.Relocated) != 1 {
		t.Fatalf("expected only the primary relocated, got %+v", rep.Relocated)
	}
	if len(rep.Failures) != 1 {
		t.Fatalf("expected one recorded failure, got %+v", rep.Failures)
	}
	if filepath.Base(rep.Failures[0].Source) != "series.json" {
		t.Fatalf("unexpected failure source %q", rep.Failures[0].Source)
	}
}

func TestRelocateUnclassifiedSkips(t *testing.T) {
	g := inventory.SeriesGroup{Stem: "mystery"}
	rep, err := bids.Relocate(g, bids.Classification{}, t.TempDir(), "01", "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(rep.Skipped) != 1 || rep.Skipped[0] != "mystery" {
		t.Fatalf("expected skipped stem, got %+v", rep.Skipped)
	}
}

func TestOrganizeEndToEnd(t *testing.T) {
	staging := t.TempDir()
	out := t.TempDir()

	// series1: two images, largest wins, sidecar says T1
	mustWrite(t, filepath.Join(staging, "series1.nii"), 500)
	mustWrite(t, filepath.Join(staging, "series1.nii.gz"), 50000)
	mustWriteJSON(t, filepath.Join(staging, "series1.json"), map[string]any{
		"SeriesDescription": "AX T1 MPRAGE",
		"ImageType":         []string{"ORIGINAL", "PRIMARY"},
	})
	// series2: no sidecar, classifiable only from the filename, and not
	mustWrite(t, filepath.Join(staging, "series2_localizer.nii.gz"), 300)

	rep, err := bids.Organize(staging, out, "07", "")
	if err != nil {
		t.Fatalf("organize failed: %v", err)
	}

	img := filepath.Join(out, "sub-07", "anat", "sub-07_T1w.nii.gz")
	info, err := os.Stat(img)
	if err != nil {
		t.Fatalf("expected relocated T1w image: %v", err)
	}
	if info.Size() != 50000 {
		t.Fatalf("expected the largest image as primary, got %d bytes", info.Size())
	}
	if _, err := os.Stat(filepath.Join(out, "sub-07", "anat", "sub-07_T1w.json")); err != nil {
		t.Fatalf("expected relocated sidecar: %v", err)
	}
	if len(rep.Skipped) != 1 || rep.Skipped[0] != "series2_localizer" {
		t.Fatalf("expected series2 skipped, got %+v", rep.Skipped)
	}
	if len(rep.Failures) != 0 {
		t.Fatalf("unexpected failures: %+v", rep.Failures)
	}
	// staging purged after the pass
	if _, err := os.Stat(staging); !os.IsNotExist(err) {
		t.Fatalf("expected staging purged, stat err = %v", err)
	}
}

func TestOrganizeWithSession(t *testing.T) {
	staging := t.TempDir()
	out := t.TempDir()
	mustWrite(t, filepath.Join(staging, "run1_task-nback_bold.nii.gz"), 100)

	if _, err := bids.Organize(staging, out, "01", "02"); err != nil {
		t.Fatalf("organize failed: %v", err)
	}
	want := filepath.Join(out, "sub-01", "ses-02", "func", "sub-01_ses-02_task-nback_bold.nii.gz")
	if _, err := os.Stat(want); err != nil {
		t.Fatalf("expected %s: %v", want, err)
	}
}

func TestWriteTopLevelFilesIdempotent(t *testing.T) {
	root := t.TempDir()
	if err := bids.WriteTopLevelFiles(root, "01"); err != nil {
		t.Fatalf("first write failed: %v", err)
	}
	readme := filepath.Join(root, "README")
	first, err := os.ReadFile(readme)
	if err != nil {
		t.Fatalf("expected README: %v", err)
	}
	if err := bids.WriteTopLevelFiles(root, "01"); err != nil {
		t.Fatalf("second write failed: %v", err)
	}
	second, _ := os.ReadFile(readme)
	if string(first) != string(second) {
		t.Fatal("top-level files must not be rewritten on re-run")
	}

	var desc map[string]any
	data, err := os.ReadFile(filepath.Join(root, "dataset_description.json"))
	if err != nil {
		t.Fatalf("expected dataset_description.json: %v", err)
	}
	if err := json.Unmarshal(data, &desc); err != nil {
		t.Fatalf("dataset description not valid JSON: %v", err)
	}
	if desc["BIDSVersion"] == "" || desc["BIDSVersion"] == nil {
		t.Fatalf("expected BIDSVersion, got %+v", desc)
	}
	if _, err := os.Stat(filepath.Join(root, "participants.tsv")); err != nil {
		t.Fatalf("expected participants.tsv: %v", err)
	}
}
