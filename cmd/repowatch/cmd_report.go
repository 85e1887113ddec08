package main

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/user/repowatch/internal/report"
)

var reportNotify bool

func init() {
	reportCmd.Flags().BoolVar(&reportNotify, "notify", false, "deliver the report on configured channels")
	rootCmd.AddCommand(reportCmd)
}

var reportCmd = &cobra.Command{
	Use:   "report <type>",
	Short: "Generate one report now",
	Long: "Generate one report immediately and print it to stdout.\n" +
		"Types: " + report.TypeGitHub + ", " + report.TypeHackerNews + ".",
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := loadConfig()
		setupLogging(cfg)

		gen, _, err := buildPipeline(cfg)
		if err != nil {
			return err
		}

		ctx := context.Background()
		rep, err := gen.Run(ctx, strings.ToLower(args[0]))
		if err != nil {
			return fmt.Errorf("generate report: %w", err)
		}

		fmt.Fprintf(os.Stdout, "# %s\n\n%s\n", rep.Title, rep.Content)

		if reportNotify {
			if err := buildNotifiers(cfg).Notify(ctx, rep); err != nil {
				return err
			}
		}
		return nil
	},
}
