// SPDX-FileCopyrightText: © 2025 Medical Artificial Intelligence Lab
//
// SPDX-License-Identifier: Apache-2.0

package bids

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/mailab-io/webqc-cli-sdk/sdk/services/inventory"
)

// TargetDir computes <root>/sub-<subject>[/ses-<session>]/<modality>.
func TargetDir(root, subject, session string, c Classification) string {
	dir := filepath.Join(root, "sub-"+subject)
	if session != "" {
		dir = filepath.Join(dir, "ses-"+session)
	}
	return filepath.Join(dir, c.Modality)
}

// TargetBase computes the filename without extension:
// sub-<subject>[_ses-<session>][_task-<task>]_<suffix>.
// Pure function of its inputs, so re-runs produce identical names.
func TargetBase(subject, session string, c Classification) string {
	base := "sub-" + subject
	if session != "" {
		base += "_ses-" + session
	}
	if c.Modality == "func" {
		task := c.Task
		if task == "" {
			task = "rest"
		}
		base += "_task-" + task
	}
	return base + "_" + c.Suffix
}

// TargetPath computes the full target path for a primary artifact. The
// extension is the original compound extension, preserved verbatim.
func TargetPath(root, subject, session string, c Classification, ext string) string {
	return filepath.Join(TargetDir(root, subject, session, c), TargetBase(subject, session, c)+ext)
}

// Relocate moves the group's primary artifact and recognized sidecars into
// the BIDS tree. Failure to create the target directory is returned as an
// error (nothing was moved); individual move failures are collected in the
// report and the rest of the group is still attempted, without rollback.
func Relocate(g inventory.SeriesGroup, c Classification, root, subject, session string) (Report, error) {
	var rep Report
	if !c.Classified() {
		rep.Skipped = append(rep.Skipped, g.Stem)
		return rep, nil
	}

	dir := TargetDir(root, subject, session, c)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return rep, fmt.Errorf("cannot create %s: %w", dir, err)
	}

	base := TargetBase(subject, session, c)

	move := func(src, dst string) {
		if err := moveFile(src, dst); err != nil {
			rep.Failures = append(rep.Failures, MoveFailure{Source: src, Target: dst, Err: err})
			return
		}
		rep.Relocated = append(rep.Relocated, Relocation{Source: src, Target: dst})
	}

	move(g.Primary.Path, filepath.Join(dir, base+g.Primary.Ext()))

	for _, sc := range g.Sidecars {
		switch sc.Kind {
		case inventory.KindJSON, inventory.KindBval, inventory.KindBvec:
			move(sc.Path, filepath.Join(dir, base+sc.Ext()))
		}
	}
	return rep, nil
}

// moveFile renames, falling back to a streamed copy+remove for
// cross-volume moves. Image volumes can be very large, so the copy
// never buffers the whole file.
func moveFile(src, dst string) error {
	if err := os.Rename(src, dst); err == nil {
		return nil
	}
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	out, err := os.Create(dst)
	if err != nil {
		in.Close()
		return err
	}
	_, cerr := io.Copy(out, in)
	in.Close()
	if err := out.Close(); err != nil && cerr == nil {
		cerr = err
	}
	if cerr != nil {
		return cerr
	}
	return os.Remove(src)
}
