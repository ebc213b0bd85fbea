package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	apiFlag string
	rootCmd = &cobra.Command{
		Use:   "mealtrackctl",
		Short: "CLI client for the meal tracking REST API",
	}
)

func main() {
	rootCmd.PersistentFlags().StringVarP(&apiFlag, "api", "a", "http://localhost:8080", "Meal service base URL")

	// totals subcommand
	var totalsUser, totalsDate string
	totalsCmd := &cobra.Command{
		Use:   "totals",
		Short: "Fetch daily totals for a user",
		RunE: func(cmd *cobra.Command, args []string) error {
			if totalsUser == "" {
				return fmt.Errorf("--user required")
			}
			return runTotals(apiFlag, totalsUser, totalsDate, os.Stdout)
		},
	}
	totalsCmd.Flags().StringVarP(&totalsUser, "user", "u", "", "WhatsApp sender ID, e.g. whatsapp:+919999999999 (required)")
	totalsCmd.Flags().StringVarP(&totalsDate, "date", "d", "", "Date (YYYY-MM-DD, defaults to today)")
	_ = totalsCmd.MarkFlagRequired("user")
	rootCmd.AddCommand(totalsCmd)

	// send subcommand
	var sendFrom, sendText string
	sendCmd := &cobra.Command{
		Use:   "send",
		Short: "Post a simulated webhook message and print the reply",
		RunE: func(cmd *cobra.Command, args []string) error {
			if sendFrom == "" || sendText == "" {
				return fmt.Errorf("--from and --text required")
			}
			return runSend(apiFlag, sendFrom, sendText, os.Stdout)
		},
	}
	sendCmd.Flags().StringVarP(&sendFrom, "from", "f", "", "WhatsApp sender ID (required)")
	sendCmd.Flags().StringVarP(&sendText, "text", "t", "", "Message text (required)")
	_ = sendCmd.MarkFlagRequired("from")
	_ = sendCmd.MarkFlagRequired("text")
	rootCmd.AddCommand(sendCmd)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
