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
	"time"

	"github.com/aws/aws-sdk-go-v2/feature/s3/manager"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

/* ------------ SINGLE FILE ------------ */

func UploadS3File(client *config.S3Client, ctx context.Context, bucket, key, localPath string, verbose bool) (map[string]interface{}, []map[string]interface{}, error) {
	file, err := os.Open(localPath)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open local file: %w", err)
	}
	defer file.Close()

	// Detect content-type
	header := make([]byte, 512)
	n, _ := file.Read(header)
	contentType := http.DetectContentType(header[:n])
	if _, err := file.Seek(0, io.SeekStart); err != nil {
		return nil, nil, fmt.Errorf("seek error: %w", err)
	}

	Infof("Preparing upload %s → s3://%s/%s", displayPath(localPath), bucket, key)

	var hook *config.ProgressHook
	var gp *globalProgress
	if verbose {
		hook = uploadFileHook("   ")
	} else {
		st, statErr := file.Stat()
		gp = &globalProgress{}
		if statErr == nil && st.Size() > 0 {
			gp.totalKnown = true
			gp.totalBytes = st.Size()
		}
		hook = globalHook(gp)
	}

	output, err := client.UploadFileWithProgress(ctx, bucket, key, file, hook)
	if err != nil {
		return nil, nil, fmt.Errorf("upload error: %w", err)
	}
	if gp != nil {
		gp.done()
	}

	result := normalizeUploadResult(output)

	info, err := os.Stat(localPath)
	if err != nil {
		return result, nil, nil // response is fine even without file info
	}

	files := []map[string]interface{}{
		{
			"path":          "",
			"name":          info.Name(),
			"content_type":  contentType,
			"last_modified": info.ModTime().UTC().Format(http.TimeFormat),
			"size":          info.Size(),
		},
	}

	return result, files, nil
}

/* ------------ DIRECTORY ------------ */

func UploadS3Dir(client *config.S3Client, ctx context.Context, parsedPath *ParsedPath, localPath string, verbose bool) ([]map[string]interface{}, []map[string]interface{}, error) {
	bucket := parsedPath.Host
	prefix := parsedPath.Path

	// Enumerate local files up front for [i/N] display and totals.
	var localFiles []string
	var totalBytes int64
	err := filepath.Walk(localPath, func(path string, info os.FileInfo, walkErr error) error {
		if walkErr != nil {
			return fmt.Errorf("walk error: %w", walkErr)
		}
		if info.IsDir() {
			return nil
		}
		localFiles = append(localFiles, path)
		totalBytes += info.Size()
		return nil
	})
	if err != nil {
		return nil, nil, fmt.Errorf("failed to enumerate local directory: %w", err)
	}

	total := len(localFiles)
	if verbose {
		Infof("Preparing upload directory %s → s3://%s/%s (%d files, %s)",
			displayPath(localPath), bucket, prefix, total, humanBytes(totalBytes))
	} else {
		Infof("Preparing upload directory %s → s3://%s/%s", displayPath(localPath), bucket, prefix)
	}

	var results []map[string]interface{}
	var fileInfos []map[string]interface{}

	var gp *globalProgress
	if !verbose {
		gp = &globalProgress{
			totalKnown: totalBytes > 0,
			totalBytes: totalBytes,
		}
	}

	for i, path := range localFiles {
		info, err := os.Stat(path)
		if err != nil {
			return nil, nil, fmt.Errorf("stat error on %s: %w", path, err)
		}
		relPath, err := filepath.Rel(localPath, path)
		if err != nil {
			return nil, nil, fmt.Errorf("relative path error: %w", err)
		}
		s3Key := filepath.ToSlash(filepath.Join(prefix, relPath))

		file, err := os.Open(path)
		if err != nil {
			return nil, nil, fmt.Errorf("open file error: %w", err)
		}

		// MIME
		header := make([]byte, 512)
		n, _ := file.Read(header)
		contentType := http.DetectContentType(header[:n])
		if _, err := file.Seek(0, io.SeekStart); err != nil {
			_ = file.Close()
			return nil, nil, fmt.Errorf("seek error: %w", err)
		}

		var hook *config.ProgressHook
		if verbose {
			fmt.Fprintf(os.Stderr, "   [%d/%d] %s → s3://%s/%s\n", i+1, total, relPath, bucket, s3Key)
			hook = uploadFileHook("      └─ ")
		} else {
			hook = globalHook(gp)
		}

		out, upErr := client.UploadFileWithProgress(ctx, bucket, s3Key, file, hook)
		_ = file.Close()
		if upErr != nil {
			return nil, nil, fmt.Errorf("upload error (%s): %w", path, upErr)
		}
		results = append(results, normalizeUploadResult(out))

		dirPath := filepath.Dir(relPath)
		normalizedPath := info.Name()
		if dirPath != "." {
			normalizedPath = filepath.ToSlash(dirPath + "/" + info.Name())
		}
		fileInfos = append(fileInfos, map[string]interface{}{
			"path":          normalizedPath,
			"name":          info.Name(),
			"content_type":  contentType,
			"last_modified": info.ModTime().UTC().Format(http.TimeFormat),
			"size":          info.Size(),
		})
	}

	if !verbose && gp != nil {
		gp.done()
	}
	return results, fileInfos, nil
}

/* ------------ helpers ------------ */

func uploadFileHook(prefix string) *config.ProgressHook {
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
			fmt.Fprintf(os.Stderr, "\r%suploading: %6.2f%%", prefix, pct)
		},
		OnDone: func(k string, total int64, took time.Duration) {
			if total > 0 {
				fmt.Fprintf(os.Stderr, "\r%sdone:      100.00%% in %s\n", prefix, took.Truncate(100*time.Millisecond))
			} else {
				fmt.Fprintf(os.Stderr, "%sdone in %s\n", prefix, took.Truncate(100*time.Millisecond))
			}
		},
	}
}

func normalizeUploadResult(output interface{}) map[string]interface{} {
	result := map[string]interface{}{}
	switch v := output.(type) {
	case *s3.PutObjectOutput:
		if v.ETag != nil {
			result["etag"] = *v.ETag
		}
		if v.VersionId != nil {
			result["version_id"] = *v.VersionId
		}
	case *manager.UploadOutput:
		result["location"] = v.Location
		result["upload_id"] = v.UploadID
	}
	return result
}
