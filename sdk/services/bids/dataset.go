// SPDX-FileCopyrightText: © 2025 Medical Artificial Intelligence Lab
//
// SPDX-License-Identifier: Apache-2.0

package bids

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"
)

const readmeContent = `# BIDS Dataset

This dataset was automatically generated by the WebQC pipeline.

**Contents**:
- Anat: T1w, T2w, FLAIR
- DWI: Diffusion Weighted Imaging
- Func: BOLD/fMRI scans
- Perf: ASL perfusion

Please see the official [BIDS documentation](https://bids.neuroimaging.io) for details.
`

// WriteTopLevelFiles writes the fixed BIDS boilerplate at the dataset root.
// Each file is written only if missing, so re-runs are no-ops.
func WriteTopLevelFiles(bidsRoot, subject string) error {
	if err := writeJSONOnce(filepath.Join(bidsRoot, "dataset_description.json"), map[string]any{
		"Name":        "WebQC dataset",
		"BIDSVersion": "1.6.0",
		"License":     "CC0",
		"DatasetType": "raw",
	}); err != nil {
		return err
	}

	if err := writeOnce(filepath.Join(bidsRoot, "README"), readmeContent); err != nil {
		return err
	}

	changes := fmt.Sprintf("1.0.0 %s\n  - Initial BIDS conversion\n", time.Now().Format("2006-01-02"))
	if err := writeOnce(filepath.Join(bidsRoot, "CHANGES"), changes); err != nil {
		return err
	}

	tsv := fmt.Sprintf("participant_id\tage\tsex\nsub-%s\tN/A\tN/A\n", subject)
	if err := writeOnce(filepath.Join(bidsRoot, "participants.tsv"), tsv); err != nil {
		return err
	}

	return writeJSONOnce(filepath.Join(bidsRoot, "participants.json"), map[string]any{
		"participant_id": map[string]any{"Description": "Unique ID"},
		"age":            map[string]any{"Description": "Age in years"},
		"sex":            map[string]any{"Description": "Biological sex"},
	})
}

func writeOnce(path, content string) error {
	if _, err := os.Stat(path); err == nil {
		return nil
	}
	return os.WriteFile(path, []byte(content), 0o644)
}

func writeJSONOnce(path string, v any) error {
	if _, err := os.Stat(path); err == nil {
		return nil
	}
	data, err := json.MarshalIndent(v, "", "    ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}
