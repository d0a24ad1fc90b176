package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var version = "1.0.0"

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "contact",
		Short: "Send or check portfolio contact form messages",
		Long: `contact submits a message to the portfolio contact API, running the same
validation rules as the server before any request is made.

Examples:
  contact validate --name Al --email al@example.com --message "Hello there!"
  contact send --endpoint http://localhost:8080 --name Al --email al@example.com --message "Hello there!"`,
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.AddCommand(newSendCmd())
	root.AddCommand(newValidateCmd())
	return root
}

func addFieldFlags(cmd *cobra.Command) {
	cmd.Flags().StringP("name", "n", "", "Sender name")
	cmd.Flags().StringP("email", "e", "", "Sender email address")
	cmd.Flags().StringP("message", "m", "", "Message body")
}

func fieldFlags(cmd *cobra.Command) (name, email, message string) {
	name, _ = cmd.Flags().GetString("name")
	email, _ = cmd.Flags().GetString("email")
	message, _ = cmd.Flags().GetString("message")
	return name, email, message
}
