// SPDX-FileCopyrightText: © 2025 Medical Artificial Intelligence Lab
//
// SPDX-License-Identifier: Apache-2.0

package qcjob

import (
	"context"
	"errors"

	"github.com/mailab-io/webqc-cli-sdk/sdk/config"
)

type JobService struct {
	http config.ServerHTTP
}

func NewJobService(_ context.Context, conf config.Config) (*JobService, error) {
	if conf.Server.BaseURL == "" {
		return nil, errors.New("invalid server config")
	}
	return &JobService{
		http: config.NewServerHTTP(nil, conf.Server),
	}, nil
}
