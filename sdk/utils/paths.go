// SPDX-FileCopyrightText: © 2025 Medical Artificial Intelligence Lab
//
// SPDX-License-Identifier: Apache-2.0

package utils

import (
	"fmt"
	"net/url"
	"path"
	"strings"
)

// ParsedPath is a decomposed remote location: s3://bucket/key or http(s)://host/path.
type ParsedPath struct {
	Scheme   string
	Host     string // bucket for s3
	Path     string
	Filename string
}

func ParsePath(raw string) (*ParsedPath, error) {
	u, err := url.Parse(raw)
	if err != nil {
		return nil, fmt.Errorf("invalid path %q: %w", raw, err)
	}
	if u.Scheme == "" {
		return nil, fmt.Errorf("path %q has no scheme", raw)
	}
	fn := ""
	if !strings.HasSuffix(u.Path, "/") {
		fn = path.Base(u.Path)
	}
	return &ParsedPath{
		Scheme:   u.Scheme,
		Host:     u.Host,
		Path:     u.Path,
		Filename: fn,
	}, nil
}
