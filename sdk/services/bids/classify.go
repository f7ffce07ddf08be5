// SPDX-FileCopyrightText: © 2025 Medical Artificial Intelligence Lab
//
// SPDX-License-Identifier: Apache-2.0

package bids

import (
	"encoding/json"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/mailab-io/webqc-cli-sdk/sdk/services/inventory"
)

// signal is what one rule looks at: the lowercased descriptive text plus
// the pulse sequence name when a sidecar supplied one.
type signal struct {
	text     string
	pulseSeq string
}

type rule struct {
	match  func(s signal) bool
	result Classification
}

func contains(s signal, subs ...string) bool {
	for _, sub := range subs {
		if strings.Contains(s.text, sub) {
			return true
		}
	}
	return false
}

// Rules are evaluated in order and the first match wins. Order matters
// because the substrings overlap: a description carrying both "t1" and
// "flair" must land on FLAIR, so the T1 rule excludes flair.
var rules = []rule{
	{
		match:  func(s signal) bool { return contains(s, "t1") && !contains(s, "flair") },
		result: Classification{Modality: "anat", Suffix: "T1w"},
	},
	{
		match:  func(s signal) bool { return contains(s, "t2") },
		result: Classification{Modality: "anat", Suffix: "T2w"},
	},
	{
		match:  func(s signal) bool { return contains(s, "flair", "fluid") },
		result: Classification{Modality: "anat", Suffix: "FLAIR"},
	},
	{
		match:  func(s signal) bool { return contains(s, "dwi", "dti") },
		result: Classification{Modality: "dwi", Suffix: "dwi"},
	},
	{
		match: func(s signal) bool {
			return contains(s, "bold", "fmri", "functional", "activation") ||
				strings.Contains(s.pulseSeq, "epi")
		},
		result: Classification{Modality: "func", Suffix: "bold"},
	},
	{
		match:  func(s signal) bool { return contains(s, "asl", "perfusion") },
		result: Classification{Modality: "perf", Suffix: "asl"},
	},
}

var taskPattern = regexp.MustCompile(`task-([a-zA-Z0-9]+)`)

// LoadMeta parses the group's JSON sidecar. A missing or unparseable
// sidecar is not an error: classification falls back to the filename.
func LoadMeta(g inventory.SeriesGroup) *SidecarMeta {
	sc, ok := g.JSONSidecar()
	if !ok {
		return nil
	}
	data, err := os.ReadFile(sc.Path)
	if err != nil {
		return nil
	}
	var meta SidecarMeta
	if err := json.Unmarshal(data, &meta); err != nil {
		return nil
	}
	return &meta
}

// Classify decides the group's modality. Pure function: callers log the
// skip/discard decisions.
//
// With a parseable sidecar, ImageType must carry an "original" marker;
// derived/secondary images are never relocated. The descriptive text is
// then SeriesDescription+ProtocolName, or the primary filename when no
// sidecar is available.
func Classify(g inventory.SeriesGroup, meta *SidecarMeta) Classification {
	var s signal
	if meta != nil {
		if !hasOriginalMarker(meta.ImageType) {
			return Classification{}
		}
		s.text = strings.ToLower(meta.SeriesDescription + " " + meta.ProtocolName)
		s.pulseSeq = strings.ToLower(meta.PulseSequenceName)
	} else {
		s.text = strings.ToLower(filepath.Base(g.Primary.Path))
	}

	for _, r := range rules {
		if r.match(s) {
			c := r.result
			if c.Modality == "func" {
				c.Task = taskName(g.Primary.Path)
			}
			return c
		}
	}
	return Classification{}
}

func hasOriginalMarker(imageType []string) bool {
	for _, t := range imageType {
		if strings.Contains(strings.ToLower(t), "original") {
			return true
		}
	}
	return false
}

// taskName extracts a task-<name> token from the primary filename,
// defaulting to "rest".
func taskName(path string) string {
	m := taskPattern.FindStringSubmatch(strings.ToLower(filepath.Base(path)))
	if m == nil {
		return "rest"
	}
	return m[1]
}
