// SPDX-FileCopyrightText: © 2025 Medical Artificial Intelligence Lab
//
// SPDX-License-Identifier: Apache-2.0

package qcjob

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/mailab-io/webqc-cli-sdk/sdk/utils"
)

// Fetch downloads the result archive for a completed job into destDir and
// extracts it. The archive is fully validated before the first file is
// written out of it: a corrupt payload leaves no partial extraction behind.
func (s *JobService) Fetch(ctx context.Context, jobID, destDir string) (*FetchResult, error) {
	if err := os.MkdirAll(destDir, 0o755); err != nil {
		return nil, fmt.Errorf("cannot create %s: %w", destDir, err)
	}

	archivePath := filepath.Join(destDir, "qc_results.zip")
	url := s.http.BuildURL("download", jobID, nil)
	if status, err := s.http.DownloadTo(ctx, url, archivePath); err != nil {
		return nil, fmt.Errorf("download failed (status %d): %w", status, err)
	}

	if err := utils.ValidateZip(archivePath); err != nil {
		_ = os.Remove(archivePath)
		return nil, &CorruptPayload{JobID: jobID, Err: err}
	}

	resultDir := filepath.Join(destDir, "qc_results")
	if err := os.MkdirAll(resultDir, 0o755); err != nil {
		return nil, fmt.Errorf("cannot create %s: %w", resultDir, err)
	}
	if err := utils.Unzip(archivePath, resultDir); err != nil {
		return nil, fmt.Errorf("extraction failed: %w", err)
	}

	return &FetchResult{ArchivePath: archivePath, ResultDir: resultDir}, nil
}
