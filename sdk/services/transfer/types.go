// SPDX-FileCopyrightText: © 2025 Medical Artificial Intelligence Lab
//
// SPDX-License-Identifier: Apache-2.0

package transfer

type PushRequest struct {
	Participant string
	Input       string // local file or directory (required)
	Verbose     bool
	// Optional bucket override (default = "datalake")
	Bucket string
}

type PushResult struct {
	BundleID string
	Location string // s3:// location of the pushed bundle
	Files    []map[string]interface{}
}

// -------- Fetch --------

type FetchRequest struct {
	Location    string // s3:// or http(s):// source
	Destination string
	Verbose     bool
}

type DownloadInfo struct {
	Filename string `json:"filename" yaml:"filename"`
	Size     int64  `json:"size"     yaml:"size"`
	Path     string `json:"path"     yaml:"path"`
}
