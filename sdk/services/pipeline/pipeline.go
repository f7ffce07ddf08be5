// SPDX-FileCopyrightText: © 2025 Medical Artificial Intelligence Lab
//
// SPDX-License-Identifier: Apache-2.0

package pipeline

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/mailab-io/webqc-cli-sdk/sdk/config"
	"github.com/mailab-io/webqc-cli-sdk/sdk/services/bids"
	"github.com/mailab-io/webqc-cli-sdk/sdk/services/qcjob"
	"github.com/mailab-io/webqc-cli-sdk/sdk/utils"
)

// Pipeline composes the local triage pass with the remote job lifecycle:
// organize the staging area into BIDS, zip it, then submit, wait and fetch.
type Pipeline struct {
	jobs *qcjob.JobService
}

func New(ctx context.Context, conf config.Config) (*Pipeline, error) {
	js, err := qcjob.NewJobService(ctx, conf)
	if err != nil {
		return nil, err
	}
	return &Pipeline{jobs: js}, nil
}

// PrepareBundle triages the staging area into a BIDS tree under workDir,
// writes the dataset boilerplate, and zips the result. Returns the bundle
// path and the triage report.
func PrepareBundle(stagingDir, workDir, subject, session string) (string, bids.Report, error) {
	bidsRoot := filepath.Join(workDir, "bids_output")
	if err := os.MkdirAll(bidsRoot, 0o755); err != nil {
		return "", bids.Report{}, fmt.Errorf("cannot create output root: %w", err)
	}

	rep, err := bids.Organize(stagingDir, bidsRoot, subject, session)
	if err != nil {
		return "", rep, err
	}
	if err := bids.WriteTopLevelFiles(bidsRoot, subject); err != nil {
		return "", rep, fmt.Errorf("failed to write dataset files: %w", err)
	}

	bundlePath := filepath.Join(workDir, "bids_dataset.zip")
	if err := utils.ZipDirectory(bidsRoot, bundlePath); err != nil {
		return "", rep, err
	}
	return bundlePath, rep, nil
}

// Run executes the remote half end to end and returns the terminal job
// plus the fetched results. Unset poll knobs fall back to the configured
// interval and attempt budget.
func (p *Pipeline) Run(ctx context.Context, req qcjob.SubmitRequest, opts qcjob.ExecuteOptions) (qcjob.Job, *qcjob.FetchResult, error) {
	if opts.Poll.Interval == 0 && opts.Poll.MaxAttempts == 0 {
		opts.Poll = qcjob.DefaultPollOptions()
	}
	return p.jobs.Execute(ctx, req, opts)
}
