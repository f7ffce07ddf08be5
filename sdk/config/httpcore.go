// SPDX-FileCopyrightText: © 2025 Medical Artificial Intelligence Lab
//
// SPDX-License-Identifier: Apache-2.0

package config

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"os"
	"path/filepath"
)

// ServerHTTP is the one seam between the services and the QC server.
// Services hold the interface so tests can swap in a fake.
type ServerHTTP interface {
	BuildURL(resource, id string, params map[string]string) string
	Do(ctx context.Context, method, url string, data []byte) ([]byte, int, error)
	DoMultipart(ctx context.Context, url string, fields map[string]string, fileField, filePath string) ([]byte, int, error)
	DownloadTo(ctx context.Context, url, dest string) (int, error)
}

type serverHTTP struct {
	httpClient   *http.Client
	serverConfig ServerConfig
}

func NewServerHTTP(httpClient *http.Client, serverConfig ServerConfig) ServerHTTP {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	return &serverHTTP{httpClient: httpClient, serverConfig: serverConfig}
}

func (s *serverHTTP) BuildURL(resource, id string, params map[string]string) string {
	base := s.serverConfig.BaseURL + "/" + resource
	if id != "" {
		base += "/" + id
	}
	first := true
	for k, v := range params {
		if v == "" {
			continue
		}
		if first {
			base += "?"
			first = false
		} else {
			base += "&"
		}
		base += fmt.Sprintf("%s=%s", k, v)
	}
	return base
}

func (s *serverHTTP) Do(ctx context.Context, method, url string, data []byte) ([]byte, int, error) {
	var body io.Reader
	if data != nil {
		body = bytes.NewReader(data)
	}
	req, err := http.NewRequestWithContext(ctx, method, url, body)
	if err != nil {
		return nil, 0, err
	}
	if data != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	s.authorize(req)

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return nil, 0, err
	}
	defer resp.Body.Close()

	b, rerr := io.ReadAll(resp.Body)
	if resp.StatusCode != 200 {
		return b, resp.StatusCode, fmt.Errorf("server responded with: %s%s", resp.Status, detailSuffix(b))
	}
	return b, resp.StatusCode, rerr
}

// DoMultipart streams filePath as a multipart file part named fileField,
// with fields as plain form values.
func (s *serverHTTP) DoMultipart(ctx context.Context, url string, fields map[string]string, fileField, filePath string) ([]byte, int, error) {
	f, err := os.Open(filePath)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to open %s: %w", filePath, err)
	}
	defer f.Close()

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	for k, v := range fields {
		if err := mw.WriteField(k, v); err != nil {
			return nil, 0, err
		}
	}
	part, err := mw.CreateFormFile(fileField, filepath.Base(filePath))
	if err != nil {
		return nil, 0, err
	}
	if _, err := io.Copy(part, f); err != nil {
		return nil, 0, fmt.Errorf("failed to read %s: %w", filePath, err)
	}
	if err := mw.Close(); err != nil {
		return nil, 0, err
	}

	req, err := http.NewRequestWithContext(ctx, "POST", url, &buf)
	if err != nil {
		return nil, 0, err
	}
	req.Header.Set("Content-Type", mw.FormDataContentType())
	s.authorize(req)

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return nil, 0, err
	}
	defer resp.Body.Close()

	b, rerr := io.ReadAll(resp.Body)
	if resp.StatusCode != 200 {
		return b, resp.StatusCode, fmt.Errorf("server responded with: %s%s", resp.Status, detailSuffix(b))
	}
	return b, resp.StatusCode, rerr
}

// DownloadTo streams a GET response straight to dest instead of buffering
// it in memory; result archives can be large.
func (s *serverHTTP) DownloadTo(ctx context.Context, url, dest string) (int, error) {
	req, err := http.NewRequestWithContext(ctx, "GET", url, nil)
	if err != nil {
		return 0, err
	}
	s.authorize(req)

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return 0, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != 200 {
		b, _ := io.ReadAll(resp.Body)
		return resp.StatusCode, fmt.Errorf("server responded with: %s%s", resp.Status, detailSuffix(b))
	}

	out, err := os.Create(dest)
	if err != nil {
		return resp.StatusCode, err
	}
	defer out.Close()
	if _, err := io.Copy(out, resp.Body); err != nil {
		return resp.StatusCode, fmt.Errorf("failed to write %s: %w", dest, err)
	}
	return resp.StatusCode, nil
}

func (s *serverHTTP) authorize(req *http.Request) {
	if tok := s.serverConfig.AccessToken; tok != "" {
		req.Header.Set("Authorization", "Bearer "+tok)
	}
}

// detailSuffix pulls the server-provided detail text out of an error body,
// when there is one.
func detailSuffix(b []byte) string {
	var m map[string]any
	if json.Unmarshal(b, &m) == nil {
		if msg, ok := m["detail"].(string); ok && msg != "" {
			return " - " + msg
		}
		if msg, ok := m["message"].(string); ok && msg != "" {
			return " - " + msg
		}
	}
	return ""
}
