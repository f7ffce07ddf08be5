// SPDX-FileCopyrightText: © 2025 Medical Artificial Intelligence Lab
//
// SPDX-License-Identifier: Apache-2.0

package transfer_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/mailab-io/webqc-cli-sdk/sdk/config"
	"github.com/mailab-io/webqc-cli-sdk/sdk/services/transfer"
)

func TestPushAndFetchBundle(t *testing.T) {
	accessKey := os.Getenv("AWS_ACCESS_KEY_ID")
	secretKey := os.Getenv("AWS_SECRET_ACCESS_KEY")
	endpoint := os.Getenv("AWS_ENDPOINT_URL")
	bucket := os.Getenv("S3_BUCKET")

	if accessKey == "" || secretKey == "" || endpoint == "" || bucket == "" {
		t.Skip("Missing env vars (AWS_ACCESS_KEY_ID, AWS_SECRET_ACCESS_KEY, AWS_ENDPOINT_URL, S3_BUCKET), skipping integration test.")
	}

	cfg := config.Config{
		S3: config.S3Config{
			AccessKey:   accessKey,
			SecretKey:   secretKey,
			Region:      os.Getenv("AWS_REGION"),
			EndpointURL: endpoint,
		},
	}

	ctx := context.Background()

	svc, err := transfer.NewTransferService(ctx, cfg)
	if err != nil {
		t.Fatalf("failed to init sdk: %v", err)
	}

	src := filepath.Join(t.TempDir(), "bids_dataset.zip")
	if err := os.WriteFile(src, []byte("bundle payload"), 0o644); err != nil {
		t.Fatalf("write failed: %v", err)
	}

	pushed, err := svc.PushBundle(ctx, transfer.PushRequest{
		Participant: "test",
		Input:       src,
		Bucket:      bucket,
	})
	if err != nil {
		t.Fatalf("push failed: %v", err)
	}
	if pushed.BundleID == "" || pushed.Location == "" {
		t.Fatalf("unexpected push result %+v", pushed)
	}

	dest := t.TempDir()
	infos, err := svc.FetchBundle(ctx, transfer.FetchRequest{
		Location:    pushed.Location,
		Destination: dest,
	})
	if err != nil {
		t.Fatalf("fetch failed: %v", err)
	}
	if len(infos) != 1 {
		t.Fatalf("expected one downloaded file, got %d", len(infos))
	}
	data, err := os.ReadFile(infos[0].Path)
	if err != nil {
		t.Fatalf("expected downloaded file: %v", err)
	}
	if string(data) != "bundle payload" {
		t.Fatalf("round trip corrupted content: %q", data)
	}
}

func TestPushBundleValidatesRequest(t *testing.T) {
	svc := &transfer.TransferService{}
	if _, err := svc.PushBundle(context.Background(), transfer.PushRequest{Participant: "01"}); err == nil {
		t.Fatal("expected error without input")
	}
	if _, err := svc.PushBundle(context.Background(), transfer.PushRequest{Input: "/tmp/x.zip"}); err == nil {
		t.Fatal("expected error without participant")
	}
}
