// SPDX-FileCopyrightText: © 2025 Medical Artificial Intelligence Lab
//
// SPDX-License-Identifier: Apache-2.0

package bids

import (
	"os"

	"github.com/mailab-io/webqc-cli-sdk/sdk/services/inventory"
	"github.com/mailab-io/webqc-cli-sdk/sdk/utils"
)

// Organize runs the whole triage pass: scan the staging area, group by
// stem, classify each group, relocate classified groups under outRoot,
// then purge the staging area. One pass, no feedback between stages.
//
// An unreadable staging root or an uncreatable target directory aborts
// the run; everything else is reported in the Report and processing
// continues.
func Organize(stagingDir, outRoot, subject, session string) (Report, error) {
	assets, err := inventory.Scan(stagingDir)
	if err != nil {
		return Report{}, err
	}
	groups := inventory.Group(assets)

	var rep Report
	for _, g := range groups {
		class := Classify(g, LoadMeta(g))
		if !class.Classified() {
			utils.Warnf("Skipping series %s: no classifiable signal", g.Stem)
			rep.Skipped = append(rep.Skipped, g.Stem)
			continue
		}

		gr, err := Relocate(g, class, outRoot, subject, session)
		if err != nil {
			return rep, err
		}
		for _, mv := range gr.Relocated {
			utils.Infof("Moved %s -> %s", mv.Source, mv.Target)
		}
		for _, f := range gr.Failures {
			utils.Warnf("Failed to move %s: %v", f.Source, f.Err)
		}
		rep.Relocated = append(rep.Relocated, gr.Relocated...)
		rep.Failures = append(rep.Failures, gr.Failures...)
	}

	// staging purge is best effort
	if err := os.RemoveAll(stagingDir); err != nil {
		utils.Warnf("Failed to purge staging area %s: %v", stagingDir, err)
	}
	return rep, nil
}
