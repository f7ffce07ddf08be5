// SPDX-FileCopyrightText: © 2025 Medical Artificial Intelligence Lab
//
// SPDX-License-Identifier: Apache-2.0

package config

// Config carries everything the SDK needs; no viper/INI in here,
// population happens in sdk/utils.
type Config struct {
	Server ServerConfig
	S3     S3Config
}

// ServerConfig points at the WebQC processing server.
type ServerConfig struct {
	BaseURL     string
	AccessToken string
}

// S3Config holds datalake credentials for bundle push/pull.
type S3Config struct {
	AccessKey   string
	SecretKey   string
	AccessToken string
	Region      string
	EndpointURL string
}
