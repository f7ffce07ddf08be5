// SPDX-FileCopyrightText: © 2025 Medical Artificial Intelligence Lab
//
// SPDX-License-Identifier: Apache-2.0

package utils_test

import (
	"testing"

	"github.com/mailab-io/webqc-cli-sdk/sdk/utils"
)

func TestTranslateModality(t *testing.T) {
	cases := map[string]string{
		"t1":        "T1w",
		"t1w":       "T1w",
		"T1w":       "T1w",
		"t2":        "T2w",
		"flair":     "flair",
		"dti":       "dwi",
		"fmri":      "bold",
		"func":      "bold",
		"asl":       "asl",
		"perfusion": "asl",
		"spect":     "",
	}
	for in, want := range cases {
		if got := utils.TranslateModality(in); got != want {
			t.Fatalf("TranslateModality(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestParsePath(t *testing.T) {
	p, err := utils.ParsePath("s3://datalake/01/abc123/bids_dataset.zip")
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}
	if p.Scheme != "s3" || p.Host != "datalake" || p.Filename != "bids_dataset.zip" {
		t.Fatalf("unexpected parse %+v", p)
	}

	dir, err := utils.ParsePath("s3://datalake/01/abc123/")
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}
	if dir.Filename != "" {
		t.Fatalf("expected no filename for directory path, got %q", dir.Filename)
	}

	if _, err := utils.ParsePath("no-scheme/path"); err == nil {
		t.Fatal("expected error for scheme-less path")
	}
}
