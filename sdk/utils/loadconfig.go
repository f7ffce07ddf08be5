// SPDX-FileCopyrightText: © 2025 Medical Artificial Intelligence Lab
//
// SPDX-License-Identifier: Apache-2.0

package utils

import (
	"github.com/spf13/viper"

	"github.com/mailab-io/webqc-cli-sdk/sdk/config"
)

// LoadConfig resolves the active environment (ini file plus env overrides)
// and assembles the SDK config from it. The optional argument selects a
// named environment section.
func LoadConfig(optionalEnv ...string) (config.Config, error) {
	if err := RegisterIniCfgWithViper(optionalEnv...); err != nil {
		return config.Config{}, err
	}

	return config.Config{
		Server: config.ServerConfig{
			BaseURL:     viper.GetString(WebqcEndpoint),
			AccessToken: viper.GetString(WebqcAccessToken),
		},
		S3: config.S3Config{
			AccessKey:   viper.GetString(AwsAccessKeyID),
			SecretKey:   viper.GetString(AwsSecretAccessKey),
			AccessToken: viper.GetString(AwsSessionToken),
			Region:      viper.GetString(AwsRegion),
			EndpointURL: viper.GetString(AwsEndpointURL),
		},
	}, nil
}
