package main

import (
	"errors"
	"fmt"
	"time"

	"github.com/portfolio/backend/pkg/contactclient"
	"github.com/portfolio/backend/pkg/contactform"
	"github.com/spf13/cobra"
)

func newSendCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "send",
		Short: "Validate and submit a contact message",
		Long:  `Validate the message locally and, if it passes, post it once to the contact API.`,
		RunE:  runSend,
	}
	addFieldFlags(cmd)
	cmd.Flags().String("endpoint", "http://localhost:8080", "Base URL of the contact API")
	cmd.Flags().Duration("timeout", 10*time.Second, "Request timeout")
	return cmd
}

func runSend(cmd *cobra.Command, args []string) error {
	endpoint, _ := cmd.Flags().GetString("endpoint")
	timeout, _ := cmd.Flags().GetDuration("timeout")
	out := cmd.OutOrStdout()

	notifier := contactclient.NotifierFunc(func(kind contactclient.NotificationKind, text string) {
		fmt.Fprintln(out, text)
	})
	ctrl := contactclient.NewController(
		contactclient.NewHTTPTransport(endpoint, timeout),
		contactclient.WithNotifier(notifier),
	)

	name, email, message := fieldFlags(cmd)
	for field, value := range map[string]string{
		contactform.FieldName:    name,
		contactform.FieldEmail:   email,
		contactform.FieldMessage: message,
	} {
		if err := ctrl.SetField(field, value); err != nil {
			return err
		}
	}

	receipt, err := ctrl.Submit(cmd.Context())
	if err != nil {
		var ve *contactform.ValidationError
		if errors.As(err, &ve) {
			printViolations(cmd, ve.Violations)
			return errors.New("message not sent")
		}
		var rve *contactclient.RemoteValidationError
		if errors.As(err, &rve) {
			printViolations(cmd, rve.Violations)
		}
		return err
	}

	fmt.Fprintf(out, "id: %s\n", receipt.ID)
	return nil
}

func printViolations(cmd *cobra.Command, violations []contactform.Violation) {
	for _, v := range violations {
		if v.Field == "" {
			fmt.Fprintf(cmd.ErrOrStderr(), "  %s\n", v.Message)
			continue
		}
		fmt.Fprintf(cmd.ErrOrStderr(), "  %s: %s\n", v.Field, v.Message)
	}
}
