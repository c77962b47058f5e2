package cmd

import (
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"go.uber.org/zap"

	"benchreport/internal/banner"
	"benchreport/internal/cli"
	"benchreport/internal/config"
	"benchreport/internal/logging"
	"benchreport/internal/tui/browse"
)

var (
	cfgFile string

	v      = config.New()
	logger *zap.Logger
)

var rootCmd = &cobra.Command{
	Use:   "benchreport <results-root>",
	Short: "benchreport - Benchmark log analysis",
	Long: `
benchreport parses the CPU summaries, wrk outputs and request-count series
of a benchmark campaign laid out as <root>/<scenario>/<run>/ and produces:

  summary_results.csv    one row per run
  cpu_busy.png           IPS vs WAF CPU busy
  throughput.png         requests/sec
  latency_p50_p90.png    latency percentiles
  combined_summary.png   the three charts stacked
  report.html            tables, charts and missing inputs`,
	Args:          cobra.ExactArgs(1),
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if err := config.ReadFile(v, cfgFile); err != nil {
			return err
		}
		var err error
		logger, err = logging.New(v.GetBool("verbose"))
		return err
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logger != nil {
			_ = logger.Sync()
		}
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load(v, args[0])
		if err != nil {
			return err
		}
		_, err = cli.Run(cfg, logger, cmd.OutOrStdout())
		return err
	},
}

var viewCmd = &cobra.Command{
	Use:   "view <results-root>",
	Short: "Browse the collected runs in the terminal",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load(v, args[0])
		if err != nil {
			return err
		}
		res, err := cli.Collect(cfg, logger)
		if err != nil {
			return err
		}

		p := tea.NewProgram(browse.New(res.Table, len(res.Missing)), tea.WithAltScreen())
		if _, err := p.Run(); err != nil {
			return fmt.Errorf("error running viewer: %w", err)
		}
		return nil
	},
}

func Execute() {
	// Custom Help with Banner
	rootCmd.SetHelpFunc(func(cmd *cobra.Command, args []string) {
		fmt.Println(banner.GetString())
		cmd.Usage()
	})

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.AddCommand(viewCmd)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is $HOME/.benchreport.yaml)")
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "Debug logging")
	rootCmd.PersistentFlags().Bool("all-scenarios", false, "Accept every directory under the root as a scenario")

	rootCmd.Flags().StringP("out", "o", "", "Output directory (default <root>/analysis_output)")
	rootCmd.Flags().Bool("inline-images", false, "Embed the charts in report.html")
	rootCmd.Flags().Int("dpi", 96, "Chart resolution")

	bind(rootCmd.PersistentFlags().Lookup("verbose"), "verbose")
	bind(rootCmd.PersistentFlags().Lookup("all-scenarios"), "all_scenarios")
	bind(rootCmd.Flags().Lookup("out"), "out")
	bind(rootCmd.Flags().Lookup("inline-images"), "inline_images")
	bind(rootCmd.Flags().Lookup("dpi"), "chart.dpi")
}

func bind(flag *pflag.Flag, key string) {
	cobra.CheckErr(v.BindPFlag(key, flag))
}
