// SPDX-FileCopyrightText: © 2025 Medical Artificial Intelligence Lab
//
// SPDX-License-Identifier: Apache-2.0

package inventory

import "strings"

// Kind classifies a file by its recognized extension.
type Kind int

const (
	KindOther Kind = iota
	KindImage      // .nii / .nii.gz
	KindJSON
	KindBval
	KindBvec
)

// Asset is one file found in the staging area. Immutable once enumerated.
type Asset struct {
	Path      string
	SizeBytes int64
	Stem      string // filename with every recognized extension stripped
	Kind      Kind
}

// Ext returns the recognized extension of the asset, compound ones intact
// (".nii.gz" is never truncated to ".gz").
func (a Asset) Ext() string {
	name := baseName(a.Path)
	return name[len(a.Stem):]
}

// SeriesGroup collects all assets sharing a stem: one acquisition.
// Primary is the retained image artifact; Discarded holds the other image
// candidates, which are neither moved nor deleted.
type SeriesGroup struct {
	Stem      string
	Primary   Asset
	Discarded []Asset
	Sidecars  []Asset
}

// JSONSidecar returns the group's JSON sidecar, if any.
func (g SeriesGroup) JSONSidecar() (Asset, bool) {
	for _, s := range g.Sidecars {
		if s.Kind == KindJSON {
			return s, true
		}
	}
	return Asset{}, false
}

// Recognized extensions, longest first so compound ones win.
var knownExts = []struct {
	suffix string
	kind   Kind
}{
	{".nii.gz", KindImage},
	{".nii", KindImage},
	{".json", KindJSON},
	{".bval", KindBval},
	{".bvec", KindBvec},
}

// splitName strips every recognized extension from name and reports the
// matched kind. Unrecognized files keep their full name as stem.
func splitName(name string) (stem string, kind Kind) {
	lower := strings.ToLower(name)
	for _, e := range knownExts {
		if strings.HasSuffix(lower, e.suffix) {
			return name[:len(name)-len(e.suffix)], e.kind
		}
	}
	return name, KindOther
}

func baseName(path string) string {
	if i := strings.LastIndexAny(path, `/\`); i >= 0 {
		return path[i+1:]
	}
	return path
}
