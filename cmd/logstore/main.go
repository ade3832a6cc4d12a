package main

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/logward/go-logstore/store"
	"github.com/logward/go-logstore/store/pebbledb"
)

func main() {
	if err := rootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func rootCmd() *cobra.Command {
	var dir string

	root := &cobra.Command{
		Use:           "logstore",
		Short:         "Inspect a persistent log store",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.PersistentFlags().StringVar(&dir, "dir", "", "store directory")
	root.MarkPersistentFlagRequired("dir")

	root.AddCommand(sessionsCmd(&dir), dumpCmd(&dir))

	return root
}

func openReadOnly(dir string) (*pebbledb.Store, error) {
	return pebbledb.Open(dir, pebbledb.Options{ReadOnly: true})
}

func sessionsCmd(dir *string) *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "sessions",
		Short: "List recorded sessions",
		RunE: func(cmd *cobra.Command, args []string) error {
			st, err := openReadOnly(*dir)
			if err != nil {
				return err
			}
			defer st.Close()

			sessions, err := st.Sessions()
			if err != nil {
				return err
			}

			if asJSON {
				return json.NewEncoder(cmd.OutOrStdout()).Encode(sessions)
			}

			for _, s := range sessions {
				fmt.Fprintf(cmd.OutOrStdout(), "%s\t%s\n", s.ID, s.StartedAt.Format(time.RFC3339))
			}

			return nil
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "JSON output")

	return cmd
}

func dumpCmd(dir *string) *cobra.Command {
	var (
		session   string
		verbosity string
		label     string
		limit     int
		asJSON    bool
	)

	cmd := &cobra.Command{
		Use:   "dump",
		Short: "Print the messages of one session",
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := uuid.Parse(session)
			if err != nil {
				return fmt.Errorf("invalid session ID: %w", err)
			}

			var opt pebbledb.ReadOptions

			if verbosity != "" {
				if opt.Verbosity, err = store.ParseSeverity(verbosity); err != nil {
					return err
				}
			}

			opt.Label = label
			opt.Limit = limit

			st, err := openReadOnly(*dir)
			if err != nil {
				return err
			}
			defer st.Close()

			msgs, err := st.Messages(id, opt)
			if err != nil {
				return err
			}

			if asJSON {
				return json.NewEncoder(cmd.OutOrStdout()).Encode(msgs)
			}

			for _, m := range msgs {
				fmt.Fprintf(cmd.OutOrStdout(), "%s [%s] %s: %s", m.Time.Format(time.RFC3339Nano), m.Severity, m.Label, m.Text)

				for k, v := range m.Metadata {
					fmt.Fprintf(cmd.OutOrStdout(), " %s=%s", k, v.Text)
				}

				fmt.Fprintln(cmd.OutOrStdout())
			}

			return nil
		},
	}

	cmd.Flags().StringVar(&session, "session", "", "session ID (required)")
	cmd.MarkFlagRequired("session")
	cmd.Flags().StringVar(&verbosity, "verbosity", "", "most verbose severity to include (e.g. warning)")
	cmd.Flags().StringVar(&label, "label", "", "only messages with this label")
	cmd.Flags().IntVar(&limit, "limit", 0, "cap the number of messages")
	cmd.Flags().BoolVar(&asJSON, "json", false, "JSON output")

	return cmd
}
