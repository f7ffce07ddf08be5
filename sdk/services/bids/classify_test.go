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

func group(primaryPath string) inventory.SeriesGroup {
	return inventory.SeriesGroup{
		Stem:    "s",
		Primary: inventory.Asset{Path: primaryPath, Kind: inventory.KindImage},
	}
}

func originalMeta(desc string) *bids.SidecarMeta {
	return &bids.SidecarMeta{
		SeriesDescription: desc,
		ImageType:         []string{"ORIGINAL", "PRIMARY"},
	}
}

func TestClassifyBySidecarDescription(t *testing.T) {
	cases := []struct {
		desc     string
		modality string
		suffix   string
	}{
		{"AX T1 MPRAGE", "anat", "T1w"},
		{"Sag T2 TSE", "anat", "T2w"},
		{"AX FLAIR", "anat", "FLAIR"},
		{"3D FLUID attenuated", "anat", "FLAIR"},
		{"DTI 64 directions", "dwi", "dwi"},
		{"resting state fMRI", "func", "bold"},
		{"pCASL perfusion", "perf", "asl"},
	}
	for _, c := range cases {
		got := bids.Classify(group("/tmp/series.nii.gz"), originalMeta(c.desc))
		if got.Modality != c.modality || got.Suffix != c.suffix {
			t.Fatalf("%q: got %s/%s, want %s/%s", c.desc, got.Modality, got.Suffix, c.modality, c.suffix)
		}
	}
}

func TestClassifyT1WithFlairLandsOnFlair(t *testing.T) {
	got := bids.Classify(group("/tmp/series.nii.gz"), originalMeta("T1 FLAIR"))
	if got.Suffix != "FLAIR" {
		t.Fatalf("expected FLAIR to win over T1, got %q", got.Suffix)
	}
}

func TestClassifyDerivedImageIsRejected(t *testing.T) {
	meta := &bids.SidecarMeta{
		SeriesDescription: "AX T1 MPRAGE",
		ImageType:         []string{"DERIVED", "SECONDARY"},
	}
	if got := bids.Classify(group("/tmp/t1.nii.gz"), meta); got.Classified() {
		t.Fatalf("derived image must stay unclassified, got %+v", got)
	}
}

func TestClassifyMissingImageTypeIsRejected(t *testing.T) {
	meta := &bids.SidecarMeta{SeriesDescription: "AX T1 MPRAGE"}
	if got := bids.Classify(group("/tmp/t1.nii.gz"), meta); got.Classified() {
		t.Fatalf("sidecar without ImageType must stay unclassified, got %+v", got)
	}
}

func TestClassifyPulseSequenceEPI(t *testing.T) {
	meta := &bids.SidecarMeta{
		SeriesDescription: "mystery series",
		ImageType:         []string{"ORIGINAL"},
		PulseSequenceName: "2D EPI",
	}
	got := bids.Classify(group("/tmp/series.nii.gz"), meta)
	if got.Modality != "func" || got.Suffix != "bold" {
		t.Fatalf("expected func/bold from pulse sequence, got %+v", got)
	}
	if got.Task != "rest" {
		t.Fatalf("expected default task rest, got %q", got.Task)
	}
}

func TestClassifyFilenameFallback(t *testing.T) {
	got := bids.Classify(group("/data/sub_task-motor_bold.nii.gz"), nil)
	if got.Modality != "func" || got.Suffix != "bold" {
		t.Fatalf("expected func/bold from filename, got %+v", got)
	}
	if got.Task != "motor" {
		t.Fatalf("expected task motor from filename, got %q", got.Task)
	}
}

func TestClassifyUnrecognizedIsUnclassified(t *testing.T) {
	if got := bids.Classify(group("/data/localizer.nii.gz"), nil); got.Classified() {
		t.Fatalf("expected unclassified, got %+v", got)
	}
}

func TestLoadMetaToleratesBrokenSidecar(t *testing.T) {
	dir := t.TempDir()
	img := filepath.Join(dir, "scan.nii.gz")
	sc := filepath.Join(dir, "scan.json")
	if err := os.WriteFile(sc, []byte("{not json"), 0o644); err != nil {
		t.Fatalf("write failed: %v", err)
	}
	g := inventory.SeriesGroup{
		Stem:     "scan",
		Primary:  inventory.Asset{Path: img, Stem: "scan", Kind: inventory.KindImage},
		Sidecars: []inventory.Asset{{Path: sc, Stem: "scan", Kind: inventory.KindJSON}},
	}
	if meta := bids.LoadMeta(g); meta != nil {
		t.Fatalf("expected nil meta for unparseable sidecar, got %+v", meta)
	}
}

func TestLoadMetaReadsFields(t *testing.T) {
	dir := t.TempDir()
	sc := filepath.Join(dir, "scan.json")
	data, _ := json.Marshal(map[string]any{
		"SeriesDescription": "AX T1",
		"ImageType":         []string{"ORIGINAL"},
	})
	if err := os.WriteFile(sc, data, 0o644); err != nil {
		t.Fatalf("write failed: %v", err)
	}
	g := inventory.SeriesGroup{
		Stem:     "scan",
		Sidecars: []inventory.Asset{{Path: sc, Stem: "scan", Kind: inventory.KindJSON}},
	}
	meta := bids.LoadMeta(g)
	if meta == nil || meta.SeriesDescription != "AX T1" {
		t.Fatalf("unexpected meta %+v", meta)
	}
}
