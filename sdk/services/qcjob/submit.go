// SPDX-FileCopyrightText: © 2025 Medical Artificial Intelligence Lab
//
// SPDX-License-Identifier: Apache-2.0

package qcjob

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"
)

// Submit posts the bundle to /submit-job and returns the server-assigned
// job. A non-success response is fatal for this attempt: submission is
// never retried automatically.
func (s *JobService) Submit(ctx context.Context, req SubmitRequest) (Job, error) {
	if req.BundlePath == "" {
		return Job{}, errors.New("bundle path not specified")
	}
	if req.ParticipantLabel == "" {
		return Job{}, errors.New("participant label not specified")
	}

	fields := map[string]string{
		"participant_label": req.ParticipantLabel,
		"session_id":        req.SessionID,
		"modalities":        strings.Join(req.Modalities, " "),
		"n_procs":           strconv.Itoa(req.NProcs),
		"mem_gb":            strconv.Itoa(req.MemGB),
	}

	url := s.http.BuildURL("submit-job", "", nil)
	b, status, err := s.http.DoMultipart(ctx, url, fields, "bids_zip", req.BundlePath)
	if err != nil {
		return Job{}, fmt.Errorf("submission failed (status %d): %w", status, err)
	}

	var m struct {
		JobID string `json:"job_id"`
	}
	if err := json.Unmarshal(b, &m); err != nil {
		return Job{}, fmt.Errorf("invalid submit response: %w", err)
	}
	if m.JobID == "" {
		return Job{}, errors.New("submit response carried no job_id")
	}

	return Job{
		ID:          m.JobID,
		Status:      StatusSubmitted,
		SubmittedAt: time.Now(),
	}, nil
}
