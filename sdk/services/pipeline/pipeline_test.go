// SPDX-FileCopyrightText: © 2025 Medical Artificial Intelligence Lab
//
// SPDX-License-Identifier: Apache-2.0

package pipeline_test

import (
	"archive/zip"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/mailab-io/webqc-cli-sdk/sdk/config"
	"github.com/mailab-io/webqc-cli-sdk/sdk/services/pipeline"
)

func TestPrepareBundle(t *testing.T) {
	staging := t.TempDir()
	work := t.TempDir()

	if err := os.WriteFile(filepath.Join(staging, "series1.nii.gz"), make([]byte, 2048), 0o644); err != nil {
		t.Fatalf("write failed: %v", err)
	}
	sidecar, _ := json.Marshal(map[string]any{
		"SeriesDescription": "Sag T1 MPRAGE",
		"ImageType":         []string{"ORIGINAL", "PRIMARY"},
	})
	if err := os.WriteFile(filepath.Join(staging, "series1.json"), sidecar, 0o644); err != nil {
		t.Fatalf("write failed: %v", err)
	}

	bundle, rep, err := pipeline.PrepareBundle(staging, work, "01", "baseline")
	if err != nil {
		t.Fatalf("prepare failed: %v", err)
	}
	if len(rep.Relocated) != 2 {
		t.Fatalf("expected image and sidecar relocated, got %+v", rep.Relocated)
	}

	zr, err := zip.OpenReader(bundle)
	if err != nil {
		t.Fatalf("bundle is not a readable zip: %v", err)
	}
	defer zr.Close()

	names := map[string]bool{}
	for _, f := range zr.File {
		names[f.Name] = true
	}
	for _, want := range []string{
		"sub-01/ses-baseline/anat/sub-01_ses-baseline_T1w.nii.gz",
		"sub-01/ses-baseline/anat/sub-01_ses-baseline_T1w.json",
		"dataset_description.json",
		"README",
	} {
		if !names[want] {
			t.Fatalf("bundle missing %s, has %v", want, names)
		}
	}
}

func TestNewRequiresServerConfig(t *testing.T) {
	if _, err := pipeline.New(context.Background(), config.Config{}); err == nil {
		t.Fatal("expected error without server base URL")
	}
}
