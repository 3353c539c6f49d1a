package main

import (
	"fmt"
	"os"

	"github.com/charmbracelet/log"
	"github.com/k0kubun/pp/v3"
	"github.com/spf13/cobra"

	"github.com/yurifrl/ynabel/pkg/config"
	"github.com/yurifrl/ynabel/pkg/executors"
	"github.com/yurifrl/ynabel/pkg/models"
	"github.com/yurifrl/ynabel/pkg/ynab"
)

var (
	cfgFile string
	verbose bool
)

var rootCmd = &cobra.Command{
	Use:   "ynabel",
	Short: "Attach label memos to YNAB transactions",
	RunE: func(cmd *cobra.Command, _ []string) error {
		// Show help when no subcommand is provided
		return cmd.Help()
	},
}

func newLogger() *log.Logger {
	level := log.InfoLevel
	if verbose {
		level = log.DebugLevel
	}
	return log.NewWithOptions(os.Stderr, log.Options{
		ReportTimestamp: true,
		Prefix:          "ynabel",
		Level:           level,
	})
}

var matchCmd = &cobra.Command{
	Use:   "match [flags] <labels_file>",
	Short: "Preview which YNAB transaction each label would attach to (dry-run)",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		logger := newLogger()

		cfg, err := config.Build(cfgFile, cmd.Flags())
		if err != nil {
			return err
		}
		if cfg.YNAB.Token == "" {
			return fmt.Errorf("missing YNAB token (set YNAB_TOKEN or ynab.token in config)")
		}

		exec := executors.New(logger, cfg, ynab.New(cfg.YNAB.Token))
		set := &models.LabelSet{FilePath: args[0], AccountID: cfg.YNAB.AccountID}

		matches, err := exec.Match(set)
		if err != nil {
			return err
		}

		if dump, _ := cmd.Flags().GetBool("dump"); dump {
			pp.Println(matches)
		}
		if asCSV, _ := cmd.Flags().GetBool("csv"); asCSV {
			fmt.Print(string(executors.MatchCSV(matches)))
		}
		return nil
	},
}

var syncCmd = &cobra.Command{
	Use:   "sync [flags] <manifest_file>",
	Short: "Match labels and push composed memos to YNAB",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		logger := newLogger()

		cfg, err := config.Build(cfgFile, cmd.Flags())
		if err != nil {
			return err
		}

		manifest, err := models.FromFile(args[0])
		if err != nil {
			return err
		}

		token := executors.Token(manifest, cfg.YNAB.Token)
		if token == "" {
			return fmt.Errorf("missing YNAB token (set YNAB_TOKEN, ynab.token, or token_env in the manifest)")
		}

		exec := executors.New(logger, cfg, ynab.New(token))
		logs, err := exec.Sync(manifest)
		if err != nil {
			return err
		}

		logFile, _ := cmd.Flags().GetString("log-file")
		if err := executors.SaveUpdateLogs(logFile, logs); err != nil {
			return err
		}

		succeeded := 0
		for _, l := range logs {
			if l.Succeeded {
				succeeded++
			}
		}
		fmt.Printf("Sync: %d of %d update(s) succeeded, log written to %s\n", succeeded, len(logs), logFile)
		return nil
	},
}

var undoCmd = &cobra.Command{
	Use:   "undo [flags] <log_file>",
	Short: "Restore pre-sync memos from a previous sync log",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		logger := newLogger()

		cfg, err := config.Build(cfgFile, cmd.Flags())
		if err != nil {
			return err
		}
		if cfg.YNAB.Token == "" {
			return fmt.Errorf("missing YNAB token (set YNAB_TOKEN or ynab.token in config)")
		}

		priorLogs, err := executors.LoadUpdateLogs(args[0])
		if err != nil {
			return err
		}

		exec := executors.New(logger, cfg, ynab.New(cfg.YNAB.Token))
		logs, err := exec.Undo(priorLogs)
		if err != nil {
			return err
		}

		logFile, _ := cmd.Flags().GetString("log-file")
		if err := executors.SaveUpdateLogs(logFile, logs); err != nil {
			return err
		}

		restored := 0
		for _, l := range logs {
			if l.Succeeded && !l.Skipped {
				restored++
			}
		}
		fmt.Printf("Undo: %d memo(s) restored, log written to %s\n", restored, logFile)
		return nil
	},
}

var budgetsCmd = &cobra.Command{
	Use:   "budgets",
	Short: "List YNAB budgets",
	RunE: func(cmd *cobra.Command, _ []string) error {
		cfg, err := config.Build(cfgFile, cmd.Flags())
		if err != nil {
			return err
		}
		if cfg.YNAB.Token == "" {
			return fmt.Errorf("missing YNAB token (set YNAB_TOKEN or ynab.token in config)")
		}

		budgets, err := ynab.New(cfg.YNAB.Token).Budget().GetBudgets()
		if err != nil {
			return err
		}
		for _, b := range budgets {
			fmt.Printf("%s  %s\n", b.ID, b.Name)
		}
		return nil
	},
}

var accountsCmd = &cobra.Command{
	Use:   "accounts",
	Short: "List accounts of the configured budget",
	RunE: func(cmd *cobra.Command, _ []string) error {
		cfg, err := config.Build(cfgFile, cmd.Flags())
		if err != nil {
			return err
		}
		if cfg.YNAB.Token == "" {
			return fmt.Errorf("missing YNAB token (set YNAB_TOKEN or ynab.token in config)")
		}
		if cfg.YNAB.BudgetID == "" {
			return fmt.Errorf("missing budget_id")
		}

		snapshot, err := ynab.New(cfg.YNAB.Token).Account().GetAccounts(cfg.YNAB.BudgetID, nil)
		if err != nil {
			return err
		}
		for _, a := range snapshot.Accounts {
			fmt.Printf("%s  %s\n", a.ID, a.Name)
		}
		return nil
	},
}

func init() {
	// Global flags
	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "", "Config file (default is config.yaml)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Debug logging")
	rootCmd.PersistentFlags().String("budget", "", "YNAB budget ID (overrides config)")
	rootCmd.PersistentFlags().String("account", "", "YNAB account ID (overrides config)")

	matchCmd.Flags().Bool("dump", false, "Dump resolved matches (debug)")
	matchCmd.Flags().Bool("csv", false, "Print resolved matches as CSV")

	syncCmd.Flags().String("log-file", "ynabel-sync-log.yaml", "Where to write the update log")
	undoCmd.Flags().String("log-file", "ynabel-undo-log.yaml", "Where to write the undo log")

	rootCmd.AddCommand(matchCmd)
	rootCmd.AddCommand(syncCmd)
	rootCmd.AddCommand(undoCmd)
	rootCmd.AddCommand(budgetsCmd)
	rootCmd.AddCommand(accountsCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}
