// SPDX-FileCopyrightText: © 2025 Medical Artificial Intelligence Lab
//
// SPDX-License-Identifier: Apache-2.0

package qcjob

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
)

// StatusResponse is one observation of the remote job's state.
type StatusResponse struct {
	Status string `json:"status"`
	Error  string `json:"error"`
}

// Poll performs one GET /job-status/{id} observation.
func (s *JobService) Poll(ctx context.Context, jobID string) (StatusResponse, error) {
	url := s.http.BuildURL("job-status", jobID, nil)
	b, status, err := s.http.Do(ctx, "GET", url, nil)
	if err != nil {
		return StatusResponse{}, fmt.Errorf("status request failed (status %d): %w", status, err)
	}
	var sr StatusResponse
	if err := json.Unmarshal(b, &sr); err != nil {
		return StatusResponse{}, fmt.Errorf("invalid status response: %w", err)
	}
	return sr, nil
}

// Wait polls the job on a fixed interval until it is observed Complete or
// Failed, the attempt budget runs out, or ctx is cancelled.
//
// A failed poll tick is a missed observation, not a job failure: it is
// logged and the next tick proceeds. Exhausting the budget yields
// StatusTimedOut with ErrTimedOut; the remote job is left untouched.
func (s *JobService) Wait(ctx context.Context, job Job, opts PollOptions) (Job, error) {
	opts = opts.withDefaults()

	for job.Attempts < opts.MaxAttempts {
		if err := opts.Sleep(ctx, opts.Interval); err != nil {
			return job, err
		}
		job.Attempts++

		sr, err := s.Poll(ctx, job.ID)
		if err != nil {
			if ctx.Err() != nil {
				return job, ctx.Err()
			}
			log.Printf("Poll %d/%d for job %s failed: %v\n", job.Attempts, opts.MaxAttempts, job.ID, err)
			continue
		}

		switch sr.Status {
		case "complete":
			job.Status = StatusComplete
			if opts.OnStatus != nil {
				opts.OnStatus(job)
			}
			return job, nil
		case "failed":
			job.Status = StatusFailed
			if opts.OnStatus != nil {
				opts.OnStatus(job)
			}
			return job, &RemoteFailure{JobID: job.ID, Detail: sr.Error}
		default:
			job.Status = StatusRunning
			if opts.OnStatus != nil {
				opts.OnStatus(job)
			}
		}
	}

	job.Status = StatusTimedOut
	return job, ErrTimedOut
}

// Watch runs Wait in the background and returns a channel that resolves
// to the terminal result, so callers embedded in a server are not blocked.
func (s *JobService) Watch(ctx context.Context, job Job, opts PollOptions) <-chan Result {
	ch := make(chan Result, 1)
	go func() {
		j, err := s.Wait(ctx, job, opts)
		ch <- Result{Job: j, Err: err}
	}()
	return ch
}
