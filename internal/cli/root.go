// Package cli implements the treevent command line.
package cli

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/randalmurphal/treevent/pkg/treevent"
	"github.com/randalmurphal/treevent/pkg/treevent/config"
	"github.com/randalmurphal/treevent/pkg/treevent/journal"
)

// options collects persistent flag values.
type options struct {
	configPath string
	logLevel   string
	logFormat  string
}

// NewRootCmd constructs the command tree.
func NewRootCmd() *cobra.Command {
	opts := &options{}

	root := &cobra.Command{
		Use:           "treevent",
		Short:         "Drive and inspect treevent document simulations",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVar(&opts.configPath, "config", "", "Settings file (.yaml, .yml or .json)")
	root.PersistentFlags().StringVar(&opts.logLevel, "log-level", "", "Log level: debug|info|warn|error (overrides config)")
	root.PersistentFlags().StringVar(&opts.logFormat, "log-format", "", "Log format: text|json (overrides config)")

	root.AddCommand(newSimulateCmd(opts), newJournalCmd(opts))
	return root
}

// settings loads the config file and applies flag overrides.
func (o *options) settings() (config.Settings, error) {
	s, err := config.Load(o.configPath)
	if err != nil {
		return config.Settings{}, err
	}
	if o.logLevel != "" {
		s.Log.Level = o.logLevel
	}
	if o.logFormat != "" {
		s.Log.Format = o.logFormat
	}
	return s, s.Validate()
}

func newSimulateCmd(opts *options) *cobra.Command {
	var journalPath string

	cmd := &cobra.Command{
		Use:     "simulate <scenario.yaml>",
		Short:   "Apply a scenario to a fresh document and print every notification",
		Example: "  treevent simulate testdata/list.yaml\n  treevent simulate --journal run.db testdata/list.yaml",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := opts.settings()
			if err != nil {
				return err
			}
			if journalPath != "" {
				s.Journal = config.JournalSettings{Driver: config.JournalSQLite, Path: journalPath}
			}

			sc, err := LoadScenario(args[0])
			if err != nil {
				return err
			}

			rt, err := treevent.Setup(s, cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			defer rt.Close()

			return Run(rt.NewDocument(), sc, cmd.OutOrStdout())
		},
	}
	cmd.Flags().StringVar(&journalPath, "journal", "", "Record dispatches to this SQLite file")
	return cmd
}

func newJournalCmd(opts *options) *cobra.Command {
	journalCmd := &cobra.Command{
		Use:   "journal",
		Short: "Inspect a dispatch journal",
		RunE: func(cmd *cobra.Command, args []string) error {
			return fmt.Errorf("journal requires a subcommand: list")
		},
	}

	var (
		path   string
		filter journal.Filter
		kind   string
	)
	list := &cobra.Command{
		Use:     "list",
		Short:   "List journal entries",
		Example: "  treevent journal list --path run.db --event inserted",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if path == "" {
				s, err := opts.settings()
				if err != nil {
					return err
				}
				if s.Journal.Driver != config.JournalSQLite {
					return fmt.Errorf("no journal file: pass --path or configure journal.driver sqlite")
				}
				path = s.Journal.Path
			}
			filter.Kind = journal.Kind(kind)

			store, err := journal.NewSQLiteStore(path)
			if err != nil {
				return fmt.Errorf("open journal %s: %w", path, err)
			}
			defer store.Close()

			entries, err := store.List(filter)
			if err != nil {
				return err
			}

			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "SEQ\tKIND\tCID\tEVENT\tCOUNT\tTIME")
			for _, e := range entries {
				fmt.Fprintf(tw, "%d\t%s\t%s\t%s\t%d\t%s\n",
					e.Seq, e.Kind, e.CID, e.Event, e.Count, e.Timestamp.Format("15:04:05.000"))
			}
			return tw.Flush()
		},
	}
	list.Flags().StringVar(&path, "path", "", "Journal file (defaults to journal.path from config)")
	list.Flags().StringVar(&filter.CID, "cid", "", "Only entries for this identity token")
	list.Flags().StringVar(&filter.Event, "event", "", "Only entries for this event name")
	list.Flags().StringVar(&kind, "kind", "", "Only entries of this kind: dispatch|relay_stopped")
	list.Flags().IntVar(&filter.Limit, "limit", 0, "Maximum entries to print")

	journalCmd.AddCommand(list)
	return journalCmd
}
