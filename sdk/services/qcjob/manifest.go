// SPDX-FileCopyrightText: © 2025 Medical Artificial Intelligence Lab
//
// SPDX-License-Identifier: Apache-2.0

package qcjob

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/mailab-io/webqc-cli-sdk/sdk/utils"

	"sigs.k8s.io/yaml"
)

// LoadSubmitRequest reads submission parameters from a YAML manifest.
// Modality tokens are canonicalized ("t1" becomes "T1w"); an unsupported token
// is an error rather than something the server should reject later.
func LoadSubmitRequest(path string) (SubmitRequest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return SubmitRequest{}, fmt.Errorf("failed to read manifest: %w", err)
	}
	jsonBytes, err := yaml.YAMLToJSON(data)
	if err != nil {
		return SubmitRequest{}, fmt.Errorf("yaml to json failed: %w", err)
	}
	var req SubmitRequest
	if err := json.Unmarshal(jsonBytes, &req); err != nil {
		return SubmitRequest{}, fmt.Errorf("failed to parse manifest: %w", err)
	}

	for i, m := range req.Modalities {
		canonical := utils.TranslateModality(strings.ToLower(m))
		if canonical == "" {
			return SubmitRequest{}, fmt.Errorf("unsupported modality %q", m)
		}
		req.Modalities[i] = canonical
	}
	return req, nil
}
