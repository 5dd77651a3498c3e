package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"inspection-report/internal/preview"
)

var (
	listAll   bool
	printOut  string
	deletePIN string
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List submitted reports, most recent first",
	Long: `Lists the signed-in user's reports, most recent first. Use --all to list
every report, which is also the default when nobody is signed in.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		client, err := newClient()
		if err != nil {
			return err
		}
		userID := ""
		if !listAll {
			s, err := loadSession()
			if err != nil {
				return err
			}
			if s != nil {
				userID = s.UserID
			}
		}

		records, err := client.List(cmd.Context(), userID)
		if err != nil {
			return err
		}
		writeHistory(cmd.OutOrStdout(), preview.History(records, client.SpreadsheetURL()))
		return nil
	},
}

var printCmd = &cobra.Command{
	Use:   "print [row-id]",
	Short: "Write a stored report as a printable HTML page",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		client, err := newClient()
		if err != nil {
			return err
		}
		record, err := client.Get(cmd.Context(), args[0])
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		if printOut != "" {
			f, err := os.Create(printOut)
			if err != nil {
				return fmt.Errorf("failed to create output: %w", err)
			}
			defer f.Close()
			out = f
		}
		return preview.WritePrintHTML(out, preview.RenderPrint(*record))
	},
}

var deleteCmd = &cobra.Command{
	Use:   "delete [row-id]",
	Short: "Delete a stored report",
	Long:  `Deletes a report from the log. The PIN must match the one used when it was submitted.`,
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		client, err := newClient()
		if err != nil {
			return err
		}
		if err := client.Delete(cmd.Context(), args[0], deletePIN); err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), "삭제되었습니다")
		return nil
	},
}

var healthCmd = &cobra.Command{
	Use:   "health",
	Short: "Check the storage service",
	RunE: func(cmd *cobra.Command, args []string) error {
		client, err := newClient()
		if err != nil {
			return err
		}
		version, err := client.Health(cmd.Context())
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "ok (version %d)\n", version)
		return nil
	},
}

func init() {
	listCmd.Flags().BoolVar(&listAll, "all", false, "List every user's reports")
	printCmd.Flags().StringVarP(&printOut, "output", "o", "", "Output file (default stdout)")
	deleteCmd.Flags().StringVar(&deletePIN, "pin", "", "4-digit PIN given at submission")
	_ = deleteCmd.MarkFlagRequired("pin")
}

func writeHistory(out io.Writer, entries []preview.HistoryEntry) {
	if len(entries) == 0 {
		fmt.Fprintln(out, "제출한 기록이 없습니다")
		return
	}
	for _, e := range entries {
		fmt.Fprintf(out, "%s  %s\n", e.SubmittedAt, e.ItemName)
		fmt.Fprint(out, "  ")
		if e.TeamName != "" {
			fmt.Fprintf(out, "%s · ", e.TeamName)
		}
		fmt.Fprint(out, e.AuthorName)
		if e.Amount != "" {
			fmt.Fprintf(out, " · %s", e.Amount)
		}
		if e.InspectionDate != "" {
			fmt.Fprintf(out, " · 검수일 %s", e.InspectionDate)
		}
		fmt.Fprintln(out)
		fmt.Fprintf(out, "  id: %s\n", e.RowID)
		if e.Link != "" {
			fmt.Fprintf(out, "  %s\n", e.Link)
		}
	}
}
