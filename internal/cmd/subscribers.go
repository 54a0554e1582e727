package cmd

import (
	"fmt"
	"strings"

	"github.com/fulmenhq/gofulmen/ascii"
	"github.com/spf13/cobra"

	"github.com/renolab/renolab/internal/output"
)

var subscribersCmd = &cobra.Command{
	Use:   "subscribers",
	Short: "Inspect newsletter subscribers",
}

var subscribersListCmd = &cobra.Command{
	Use:   "list",
	Short: "List stored subscribers, newest first",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		limit, err := cmd.Flags().GetInt("limit")
		if err != nil {
			return err
		}
		format, err := resolveOutputFormat(cmd)
		if err != nil {
			return err
		}

		cfg, err := loadConfig(cmd.Context())
		if err != nil {
			return err
		}
		db, err := openStore(cmd.Context(), cfg)
		if err != nil {
			return err
		}
		defer db.Close() // nolint:errcheck // best-effort cleanup

		subs, err := db.ListSubscribers(cmd.Context(), limit)
		if err != nil {
			return err
		}

		if len(subs) == 0 && format == output.FormatTable {
			lines := []string{"Subscribers", "", "(no subscribers yet)"}
			_, _ = fmt.Fprint(cmd.OutOrStdout(), ascii.DrawBox(strings.Join(lines, "\n"), 0))
			return nil
		}
		return writeReport(cmd, output.SubscribersReport(subs))
	},
}

func init() {
	rootCmd.AddCommand(subscribersCmd)
	subscribersCmd.AddCommand(subscribersListCmd)

	subscribersListCmd.Flags().Int("limit", 100, "Maximum subscribers to list")
	subscribersListCmd.Flags().String("output-format", string(output.FormatTable), "Output format: table, json, markdown")
	subscribersListCmd.Flags().String("out", "", "Write output to a file (default stdout)")
}
