// SPDX-FileCopyrightText: © 2025 Medical Artificial Intelligence Lab
//
// SPDX-License-Identifier: Apache-2.0

package utils

const (
	IniName            = ".webqc.ini"
	IniSource          = "ini_source"
	CurrentEnvironment = "current_environment"
	UpdatedEnvKey      = "updated_environment"

	WebqcName        = "webqc_name"
	WebqcEndpoint    = "webqc_endpoint"
	WebqcAccessToken = "webqc_access_token"

	PollIntervalSec = "webqc_poll_interval_sec"
	MaxPollAttempts = "webqc_max_poll_attempts"
	NProcs          = "webqc_n_procs"
	MemGB           = "webqc_mem_gb"

	AwsAccessKeyID     = "aws_access_key_id"
	AwsSecretAccessKey = "aws_secret_access_key"
	AwsSessionToken    = "aws_session_token"
	AwsRegion          = "aws_region"
	AwsEndpointURL     = "aws_endpoint_url"
	S3Bucket           = "s3_bucket"
)

// Modality tokens the server accepts in the submit form.
var Modalities = map[string][]string{
	"T1w":   {"t1w", "t1"},
	"T2w":   {"t2w", "t2"},
	"flair": {"flair"},
	"dwi":   {"dwi", "dti"},
	"bold":  {"bold", "fmri", "func"},
	"asl":   {"asl", "perfusion"},
}
