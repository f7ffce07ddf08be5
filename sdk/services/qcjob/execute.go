// SPDX-FileCopyrightText: © 2025 Medical Artificial Intelligence Lab
//
// SPDX-License-Identifier: Apache-2.0

package qcjob

import (
	"context"
	"errors"

	"github.com/mailab-io/webqc-cli-sdk/sdk/utils"
)

// ExecuteOptions bundles the wait-loop knobs with the destination for
// fetched results.
type ExecuteOptions struct {
	Poll    PollOptions
	DestDir string
}

// Execute drives one job through its whole lifecycle: submit, wait for a
// terminal status, fetch the results, clean up the remote side.
//
// Cleanup runs after a successful fetch and when the job is abandoned
// (explicit remote failure, corrupt payload, cancellation). It does NOT
// run on timeout: the remote side may still be working, so the job is
// left orphaned for the server's own expiry to collect.
func (s *JobService) Execute(ctx context.Context, req SubmitRequest, opts ExecuteOptions) (Job, *FetchResult, error) {
	job, err := s.Submit(ctx, req)
	if err != nil {
		return job, nil, err
	}

	job, err = s.Wait(ctx, job, opts.Poll)
	if err != nil {
		if errors.Is(err, ErrTimedOut) {
			return job, nil, err
		}
		s.cleanupBestEffort(ctx, job.ID)
		return job, nil, err
	}

	res, err := s.Fetch(ctx, job.ID, opts.DestDir)
	if err != nil {
		s.cleanupBestEffort(ctx, job.ID)
		return job, nil, err
	}

	s.cleanupBestEffort(ctx, job.ID)
	return job, res, nil
}

func (s *JobService) cleanupBestEffort(ctx context.Context, jobID string) {
	// cancellation must still let the delete go out
	if ctx.Err() != nil {
		ctx = context.WithoutCancel(ctx)
	}
	if err := s.Cleanup(ctx, jobID); err != nil {
		utils.Warnf("Cleanup of job %s failed: %v", jobID, err)
	}
}
