package main

import (
	"errors"
	"fmt"

	"github.com/portfolio/backend/pkg/contactform"
	"github.com/spf13/cobra"
)

func newValidateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "validate",
		Short: "Check a message against the contact form rules",
		Long:  `Run the contact form validation rules without contacting the server.`,
		RunE:  runValidate,
	}
	addFieldFlags(cmd)
	return cmd
}

func runValidate(cmd *cobra.Command, args []string) error {
	name, email, message := fieldFlags(cmd)
	_, err := contactform.Validate(map[string]any{
		contactform.FieldName:    name,
		contactform.FieldEmail:   email,
		contactform.FieldMessage: message,
	})

	var ve *contactform.ValidationError
	if errors.As(err, &ve) {
		printViolations(cmd, ve.Violations)
		return fmt.Errorf("%d field(s) invalid", len(ve.Violations))
	}
	if err != nil {
		return err
	}

	fmt.Fprintln(cmd.OutOrStdout(), "ok")
	return nil
}
