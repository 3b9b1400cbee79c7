package main

import (
	"fmt"

	"github.com/sandevgo/calbot/internal/config"
	"github.com/sandevgo/calbot/pkg/env"
	"github.com/sandevgo/calbot/pkg/log"
	"github.com/spf13/cobra"
)

var envCmd = &cobra.Command{
	Use:   "env",
	Short: "Print the effective configuration",
	Long:  `Loads the runtime .env and prints the resulting settings with credentials masked.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, flushLog := setupLogger(cmd.Context())
		defer flushLog()

		if err := initEnv(ctx, config.GetRuntimePath()); err != nil {
			log.FromCtx(ctx).Warn().Err(err).Msg("continuing without .env")
		}

		out, err := env.MarshalEnv(config.NewAppConfig(ctx), env.MaskSecrets())
		if err != nil {
			return err
		}
		fmt.Fprint(cmd.OutOrStdout(), out)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(envCmd)
}
