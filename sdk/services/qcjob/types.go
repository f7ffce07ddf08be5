// SPDX-FileCopyrightText: © 2025 Medical Artificial Intelligence Lab
//
// SPDX-License-Identifier: Apache-2.0

package qcjob

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/mailab-io/webqc-cli-sdk/sdk/utils"
)

// Status is the local view of a remote job's lifecycle:
// Submitted, Running, then one of Complete, Failed or TimedOut.
type Status string

const (
	StatusSubmitted Status = "submitted"
	StatusRunning   Status = "running"
	StatusComplete  Status = "complete"
	StatusFailed    Status = "failed"
	StatusTimedOut  Status = "timed_out"
)

// Job is one unit of remote processing. The ID is opaque and
// server-assigned; it is the only key needed to address the job.
type Job struct {
	ID          string
	Status      Status
	SubmittedAt time.Time
	Attempts    int
}

// SubmitRequest carries the bundle plus the processing parameters the
// server expects in the submit form.
type SubmitRequest struct {
	BundlePath       string   `json:"bundle_path"`
	ParticipantLabel string   `json:"participant_label"`
	SessionID        string   `json:"session_id"`
	Modalities       []string `json:"modalities"`
	NProcs           int      `json:"n_procs"`
	MemGB            int      `json:"mem_gb"`
}

// PollOptions controls the wait loop. Interval times MaxAttempts is the hard
// wall-clock timeout. Sleep is injectable so tests can run without real
// delays; the default waits on a timer or context cancellation.
type PollOptions struct {
	Interval    time.Duration
	MaxAttempts int

	// OnStatus is invoked after every successful status observation.
	OnStatus func(Job)

	Sleep func(ctx context.Context, d time.Duration) error
}

// DefaultPollOptions reads interval and attempt budget from the active
// environment (viper), falling back to 10s × 120 attempts.
func DefaultPollOptions() PollOptions {
	return PollOptions{
		Interval:    time.Duration(utils.PollIntervalSeconds()) * time.Second,
		MaxAttempts: utils.MaxAttempts(),
	}
}

func (o PollOptions) withDefaults() PollOptions {
	if o.Interval <= 0 {
		o.Interval = 10 * time.Second
	}
	if o.MaxAttempts <= 0 {
		o.MaxAttempts = 120
	}
	if o.Sleep == nil {
		o.Sleep = sleepCtx
	}
	return o
}

func sleepCtx(ctx context.Context, d time.Duration) error {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}

// FetchResult points at the downloaded archive and its extracted tree.
type FetchResult struct {
	ArchivePath string
	ResultDir   string
}

// Result resolves a Watch future.
type Result struct {
	Job Job
	Err error
}

// ErrTimedOut marks a job whose remote status never reached a terminal
// state within the attempt budget. The remote job is left alone: it may
// still be working, so no cleanup is attempted. Callers can offer a retry.
var ErrTimedOut = errors.New("attempt budget exhausted before the job finished")

// RemoteFailure is the server explicitly reporting the job as failed,
// with whatever detail it provided. Distinct from a timeout: resubmitting
// without inspection is unlikely to help.
type RemoteFailure struct {
	JobID  string
	Detail string
}

func (e *RemoteFailure) Error() string {
	if e.Detail == "" {
		return fmt.Sprintf("job %s failed remotely", e.JobID)
	}
	return fmt.Sprintf("job %s failed remotely: %s", e.JobID, e.Detail)
}

// CorruptPayload is a completed job whose downloaded archive failed the
// integrity check. Distinct from a transport error; nothing was extracted.
type CorruptPayload struct {
	JobID string
	Err   error
}

func (e *CorruptPayload) Error() string {
	return fmt.Sprintf("job %s: downloaded payload failed validation: %v", e.JobID, e.Err)
}

func (e *CorruptPayload) Unwrap() error { return e.Err }
