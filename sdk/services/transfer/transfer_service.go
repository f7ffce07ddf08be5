// SPDX-FileCopyrightText: © 2025 Medical Artificial Intelligence Lab
//
// SPDX-License-Identifier: Apache-2.0

package transfer

import (
	"context"

	"github.com/mailab-io/webqc-cli-sdk/sdk/config"

	"fmt"
)

// TransferService moves BIDS bundles and QC results between the local
// filesystem and the datalake.
type TransferService struct {
	s3 *config.S3Client
}

func NewTransferService(ctx context.Context, conf config.Config) (*TransferService, error) {
	s3c, err := config.NewS3Client(ctx, conf.S3)
	if err != nil {
		return nil, fmt.Errorf("S3 init failed: %w", err)
	}
	return &TransferService{s3: s3c}, nil
}
