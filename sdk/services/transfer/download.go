// SPDX-FileCopyrightText: © 2025 Medical Artificial Intelligence Lab
//
// SPDX-License-Identifier: Apache-2.0

package transfer

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"

	"github.com/mailab-io/webqc-cli-sdk/sdk/utils"
)

// FetchBundle downloads a bundle from an s3:// or http(s):// location.
// Per-file errors skip the file rather than failing the whole fetch.
func (s *TransferService) FetchBundle(ctx context.Context, req FetchRequest) ([]DownloadInfo, error) {
	if req.Location == "" {
		return nil, errors.New("you must specify a source location")
	}

	pp, err := utils.ParsePath(req.Location)
	if err != nil {
		return nil, err
	}

	target, err := chooseLocalTarget(req.Destination, pp.Filename)
	if err != nil {
		return nil, err
	}

	var out []DownloadInfo
	switch pp.Scheme {
	case "s3":
		key := strings.TrimPrefix(pp.Path, "/")
		if strings.HasSuffix(key, "/") {
			// Directory: errors inside skip files, never fail the batch.
			if derr := utils.DownloadS3FileOrDir(s.s3, ctx, pp, target, req.Verbose); derr != nil {
				return out, nil
			}
			files, lerr := s.s3.ListFilesAll(ctx, pp.Host, key)
			if lerr != nil {
				return out, nil
			}
			base := dirBaseForLocalTarget(target)
			for _, f := range files {
				local := filepath.Join(base, strings.TrimPrefix(f.Path, key))
				if st, err := os.Stat(local); err == nil && !st.IsDir() {
					out = append(out, DownloadInfo{
						Filename: filepath.Base(local),
						Size:     st.Size(),
						Path:     local,
					})
				}
			}
			return out, nil
		}
		if ferr := utils.DownloadS3FileOrDir(s.s3, ctx, pp, target, req.Verbose); ferr != nil {
			return out, nil
		}

	case "http", "https":
		if herr := utils.DownloadHTTPFile(req.Location, target); herr != nil {
			return out, nil
		}

	default:
		return nil, errors.New("unsupported scheme: " + pp.Scheme)
	}

	if st, err := os.Stat(target); err == nil && !st.IsDir() {
		out = append(out, DownloadInfo{
			Filename: filepath.Base(target),
			Size:     st.Size(),
			Path:     target,
		})
	}
	return out, nil
}

// --- helpers ---

// chooseLocalTarget:
// - empty dst: filename in the cwd
// - dst exists and is a directory: dst/filename
// - dst exists and is a file: dst
// - dst missing: create directory dst and use dst/filename
func chooseLocalTarget(dst, filename string) (string, error) {
	if dst == "" {
		return filename, nil
	}
	info, statErr := os.Stat(dst)
	if statErr == nil {
		if info.IsDir() {
			return filepath.Join(dst, filename), nil
		}
		return dst, nil
	}
	if os.IsNotExist(statErr) {
		if mkErr := os.MkdirAll(dst, 0o755); mkErr != nil {
			return "", mkErr
		}
		return filepath.Join(dst, filename), nil
	}
	return "", statErr
}

func dirBaseForLocalTarget(localPath string) string {
	clean := filepath.Clean(localPath)
	parent := filepath.Dir(clean)
	if parent == "." || parent == string(os.PathSeparator) {
		return ""
	}
	return parent
}
