// SPDX-FileCopyrightText: © 2025 Medical Artificial Intelligence Lab
//
// SPDX-License-Identifier: Apache-2.0

package bids

// Classification assigns a series group to a modality folder and canonical
// filename suffix. The zero value means unclassified: the group is reported
// and skipped, never relocated.
type Classification struct {
	Modality string // anat, dwi, func, perf
	Suffix   string // T1w, T2w, FLAIR, dwi, bold, asl
	Task     string // functional runs only, default "rest"
}

func (c Classification) Classified() bool {
	return c.Suffix != ""
}

// SidecarMeta is the subset of sidecar fields the classifier reads.
type SidecarMeta struct {
	SeriesDescription string   `json:"SeriesDescription"`
	ProtocolName      string   `json:"ProtocolName"`
	ImageType         []string `json:"ImageType"`
	PulseSequenceName string   `json:"PulseSequenceName"`
}

// MoveFailure records one file that could not be moved. Moves are not
// rolled back: a group can end up partially relocated, matching the
// long-standing pipeline behavior that partial results stay usable.
type MoveFailure struct {
	Source string
	Target string
	Err    error
}

// Relocation records one file that was moved into the BIDS tree.
type Relocation struct {
	Source string
	Target string
}

// Report summarizes one Organize pass over a staging area.
type Report struct {
	Relocated []Relocation
	Skipped   []string // stems left behind as unclassifiable
	Failures  []MoveFailure
}
