// SPDX-FileCopyrightText: © 2025 Medical Artificial Intelligence Lab
//
// SPDX-License-Identifier: Apache-2.0

package transfer

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/mailab-io/webqc-cli-sdk/sdk/utils"
)

// PushBundle uploads a local bundle (file or directory) to
// s3://<bucket>/<participant>/<bundle-id>/... so converted datasets and
// fetched QC results survive the ephemeral staging area.
func (s *TransferService) PushBundle(ctx context.Context, req PushRequest) (*PushResult, error) {
	if req.Input == "" {
		return nil, errors.New("missing required input file or directory")
	}
	if req.Participant == "" {
		return nil, errors.New("participant is required")
	}

	bucket := req.Bucket
	if bucket == "" {
		bucket = "datalake"
	}

	st, err := os.Stat(req.Input)
	if err != nil {
		return nil, fmt.Errorf("cannot access input: %w", err)
	}

	bundleID := utils.UUIDv4NoDash()
	prefix := fmt.Sprintf("%s/%s", req.Participant, bundleID)

	if st.IsDir() {
		pp := &utils.ParsedPath{Scheme: "s3", Host: bucket, Path: prefix}
		_, files, err := utils.UploadS3Dir(s.s3, ctx, pp, req.Input, req.Verbose)
		if err != nil {
			return nil, err
		}
		return &PushResult{
			BundleID: bundleID,
			Location: fmt.Sprintf("s3://%s/%s/", bucket, prefix),
			Files:    files,
		}, nil
	}

	key := prefix + "/" + st.Name()
	_, files, err := utils.UploadS3File(s.s3, ctx, bucket, key, req.Input, req.Verbose)
	if err != nil {
		return nil, err
	}
	return &PushResult{
		BundleID: bundleID,
		Location: fmt.Sprintf("s3://%s/%s", bucket, key),
		Files:    files,
	}, nil
}
