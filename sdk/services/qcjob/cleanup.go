// SPDX-FileCopyrightText: © 2025 Medical Artificial Intelligence Lab
//
// SPDX-License-Identifier: Apache-2.0

package qcjob

import (
	"context"
	"fmt"
)

// Cleanup issues a best-effort DELETE /delete-job/{id}. Any response from
// the server counts as "cleanup attempted"; the returned error is only for
// callers that want to log it, never to escalate.
func (s *JobService) Cleanup(ctx context.Context, jobID string) error {
	url := s.http.BuildURL("delete-job", jobID, nil)
	if _, status, err := s.http.Do(ctx, "DELETE", url, nil); err != nil && status == 0 {
		return fmt.Errorf("cleanup request failed: %w", err)
	}
	return nil
}
