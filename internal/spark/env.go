/*
Copyright 2026 The PaaSTA Authors.

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

    https://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/

package spark

import (
	"os"
	"path/filepath"

	"github.com/go-ini/ini"
	"go.uber.org/zap"

	"github.com/kkellyy/paasta/pkg/common"
)

// AWSCredentials returns the access key pair forwarded into the driver
// container, taken from the process environment or, failing that, from the
// default profile of the shared credentials file. Executors talking to S3
// need these; a launch without them only warns, since not every job touches
// AWS.
func AWSCredentials(logger *zap.SugaredLogger) map[string]string {
	accessKey := os.Getenv(common.EnvAWSAccessKeyID)
	secretKey := os.Getenv(common.EnvAWSSecretAccessKey)

	if accessKey == "" || secretKey == "" {
		accessKey, secretKey = sharedCredentials(logger)
	}
	if accessKey == "" || secretKey == "" {
		logger.Warn("no AWS credentials found in environment or shared credentials file")
		return map[string]string{}
	}
	return map[string]string{
		common.EnvAWSAccessKeyID:     accessKey,
		common.EnvAWSSecretAccessKey: secretKey,
	}
}

func sharedCredentials(logger *zap.SugaredLogger) (string, string) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", ""
	}
	path := filepath.Join(home, ".aws", "credentials")

	cfg, err := ini.Load(path)
	if err != nil {
		logger.Debugw("no shared AWS credentials file", "path", path, "error", err)
		return "", ""
	}
	section := cfg.Section("default")
	return section.Key("aws_access_key_id").String(), section.Key("aws_secret_access_key").String()
}
