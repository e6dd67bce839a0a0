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

package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/kkellyy/paasta/cmd/paasta/sparkrun"
	"github.com/kkellyy/paasta/cmd/paasta/version"
)

func NewCommand(logger *zap.SugaredLogger) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "paasta",
		Short: "paasta is the command-line tool for working with the PaaSTA platform",
		Long: `paasta is the command-line tool for working with the PaaSTA platform.
It supports launching Spark jobs on PaaSTA clusters.`,
		SilenceUsage: true,
	}

	cmd.AddCommand(sparkrun.NewCommand(logger))
	cmd.AddCommand(version.NewCommand())

	return cmd
}

func newLogger() *zap.SugaredLogger {
	config := zap.NewDevelopmentConfig()
	config.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	config.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
	logger, err := config.Build()
	if err != nil {
		logger = zap.NewNop()
	}
	return logger.Sugar()
}

func main() {
	logger := newLogger()
	defer logger.Sync()

	if err := NewCommand(logger).Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", err)
		os.Exit(1)
	}
}
