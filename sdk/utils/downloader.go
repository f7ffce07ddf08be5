// SPDX-FileCopyrightText: © 2025 Medical Artificial Intelligence Lab
//
// SPDX-License-Identifier: Apache-2.0

package utils

import (
	"context"

	"github.com/mailab-io/webqc-cli-sdk/sdk/config"

	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	s3types "github.com/aws/aws-sdk-go-v2/service/s3/types"
)

/* ------------ HTTP (single-line progress) ------------ */

func DownloadHTTPFile(url string, destination string) error {
	resp, err := http.Get(url)
	if err != nil {
		return err
	}
	defer func(Body io.ReadCloser) { _ = Body.Close() }(resp.Body)

	out, err := os.Create(destination)
	if err != nil {
		return err
	}
	defer out.Close()

	gp := &globalProgress{}
	if resp.ContentLength > 0 {
		gp.totalKnown = true
		gp.totalBytes = resp.ContentLength
	}

	buf := make([]byte, 1024*128) // 128KB
	for {
		n, readErr := resp.Body.Read(buf)
		if n > 0 {
			if _, werr := out.Write(buf[:n]); werr != nil {
				return werr
			}
			gp.add(int64(n))
			gp.render(false)
		}
		if readErr != nil {
			if readErr == io.EOF {
				break
			}
			return readErr
		}
	}
	gp.done()
	return nil
}

/* ------------ S3: file or directory (with continuation token) ------------ */

func DownloadS3FileOrDir(
	s3Client *config.S3Client,
	ctx context.Context,
	parsedPath *ParsedPath,
	localPath string,
	verbose bool,
) error {

	bucket := parsedPath.Host
	// normalize: some bundles record a leading "/" in the key
	path := strings.TrimPrefix(parsedPath.Path, "/")

	// Directory?
	if strings.HasSuffix(path, "/") {
		localBase := cleanLocalPath(localPath)

		var totalFiles int
		var totalBytes int64
		var totalsKnown bool

		// Totals are needed for the global percentage, compute them when we can.
		all, err := s3Client.ListFilesAll(ctx, bucket, path)
		if err != nil {
			Warnf("Listing failed, proceeding without totals: %v", err)
			Infof("Preparing download s3://%s/%s → %s", bucket, path, displayPath(localBase))
		} else {
			totalFiles = len(all)
			for _, f := range all {
				totalBytes += f.Size
			}
			totalsKnown = totalFiles > 0 && totalBytes > 0
			if verbose {
				Infof("Preparing download s3://%s/%s → %s (%d files, %s)",
					bucket, path, displayPath(localBase), totalFiles, humanBytes(totalBytes))
			} else {
				Infof("Preparing download s3://%s/%s → %s", bucket, path, displayPath(localBase))
			}
		}

		pageSize := int32(1000)
		var idx int

		// Global progress only when non-verbose; verbose keeps per-file detail.
		var gp *globalProgress
		if !verbose {
			gp = &globalProgress{
				totalKnown: totalsKnown,
				totalBytes: totalBytes,
			}
		}

		err = s3Client.WalkPrefix(ctx, bucket, path, pageSize, func(obj s3types.Object) error {
			idx++
			key := aws.ToString(obj.Key)
			relativePath := strings.TrimPrefix(key, path)
			targetPath := filepath.Join(localBase, relativePath)

			if err := os.MkdirAll(filepath.Dir(targetPath), 0o755); err != nil {
				return fmt.Errorf("failed to create local directory: %w", err)
			}

			if verbose {
				if totalFiles > 0 {
					fmt.Fprintf(os.Stderr, "   [%d/%d] %s\n", idx, totalFiles, relativePath)
				} else {
					fmt.Fprintf(os.Stderr, "   [%d] %s\n", idx, relativePath)
				}
				if err := s3Client.DownloadFileWithProgress(ctx, bucket, key, targetPath, perFileHook("      └─ ")); err != nil {
					return fmt.Errorf("failed to download file: %w", err)
				}
			} else {
				if err := s3Client.DownloadFileWithProgress(ctx, bucket, key, targetPath, globalHook(gp)); err != nil {
					return fmt.Errorf("failed to download file: %w", err)
				}
			}

			return nil
		})
		if err != nil {
			return err
		}
		if !verbose && gp != nil {
			gp.done()
		}
		return nil
	}

	// Single file
	key := path
	Infof("Preparing download s3://%s/%s → %s", bucket, key, displayPath(localPath))
	if verbose {
		if err := s3Client.DownloadFileWithProgress(ctx, bucket, key, localPath, perFileHook("   ")); err != nil {
			return fmt.Errorf("S3 download failed: %w", err)
		}
		return nil
	}

	gp := &globalProgress{}
	hook := globalHook(gp)
	onStart := hook.OnStart
	hook.OnStart = func(k string, total int64) {
		if total > 0 {
			gp.totalKnown = true
			gp.totalBytes = total
		}
		if onStart != nil {
			onStart(k, total)
		}
	}
	if err := s3Client.DownloadFileWithProgress(ctx, bucket, key, localPath, hook); err != nil {
		return fmt.Errorf("S3 download failed: %w", err)
	}
	gp.done()
	return nil
}

/* ------------ hooks ------------ */

// perFileHook prints size, a percentage line, and a done line with the
// given indentation prefix.
func perFileHook(prefix string) *config.ProgressHook {
	return &config.ProgressHook{
		OnStart: func(k string, total int64) {
			if total > 0 {
				fmt.Fprintf(os.Stderr, "%ssize: %s\n", prefix, humanBytes(total))
			}
		},
		OnProgress: func(k string, written, total int64) {
			if total <= 0 {
				return
			}
			pct := float64(written) / float64(total) * 100
			fmt.Fprintf(os.Stderr, "\r%sdownloading: %6.2f%%", prefix, pct)
		},
		OnDone: func(k string, total int64, took time.Duration) {
			if total > 0 {
				fmt.Fprintf(os.Stderr, "\r%sdone:        100.00%% in %s\n", prefix, took.Truncate(100*time.Millisecond))
			} else {
				fmt.Fprintf(os.Stderr, "%sdone in %s\n", prefix, took.Truncate(100*time.Millisecond))
			}
		},
	}
}

// globalHook feeds one file's progress into the shared single-line renderer.
func globalHook(gp *globalProgress) *config.ProgressHook {
	var prevWritten int64
	return &config.ProgressHook{
		OnProgress: func(k string, written, total int64) {
			delta := written - prevWritten
			if delta > 0 && gp != nil {
				gp.add(delta)
				gp.render(false)
			}
			prevWritten = written
		},
		OnDone: func(k string, total int64, took time.Duration) {
			// rounding can leave a remainder, count the whole file
			if total > prevWritten && gp != nil {
				gp.add(total - prevWritten)
				gp.render(true)
			}
		},
	}
}

/* ------------ helpers ------------ */

// Drop the last segment from the local path so files under an S3 "folder"
// land without the root prefix.
func cleanLocalPath(path string) string {
	clean := filepath.Clean(path)
	parts := strings.Split(clean, string(os.PathSeparator))
	if len(parts) == 1 {
		return ""
	}
	return filepath.Join(parts[:len(parts)-1]...)
}

// print empty folders as "." instead of an empty string
func displayPath(p string) string {
	if p == "" {
		return "."
	}
	return p
}
