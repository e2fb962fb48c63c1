package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/jonathan/leadgen/internal/schemas"
	"github.com/jonathan/leadgen/internal/types"
)

var validateCommand = &cobra.Command{
	Use:   "validate <profile.json>",
	Short: "Check a profile document against the profile schema",
	Long: `Validates a profile JSON file against the built-in profile schema, or
against --schema when given. Shape problems are listed by field; the profile
itself still renders since malformed fields fall back to "N/A".`,
	Args: cobra.ExactArgs(1),
	RunE: runValidate,
}

var validateSchema string

func init() {
	validateCommand.Flags().StringVarP(&validateSchema, "schema", "s", "", "Path to a JSON Schema file (default built-in profile schema)")
	rootCmd.AddCommand(validateCommand)
}

func runValidate(cmd *cobra.Command, args []string) error {
	path := args[0]
	out := cmd.OutOrStdout()

	var err error
	if validateSchema != "" {
		err = schemas.ValidateJSON(validateSchema, path)
	} else {
		data, readErr := os.ReadFile(path)
		if readErr != nil {
			return fmt.Errorf("failed to read %s: %w", path, readErr)
		}
		if _, parseErr := types.ParseProfile(data); parseErr != nil {
			return fmt.Errorf("%s: %w", path, parseErr)
		}
		err = schemas.ValidateProfile(data)
	}

	var validationErr *schemas.ValidationError
	if errors.As(err, &validationErr) {
		_, _ = fmt.Fprintf(out, "Validation failed for %s\n", path)
		for _, fe := range validationErr.Errors {
			_, _ = fmt.Fprintf(out, "  - %s: %s\n", fe.Field, fe.Message)
		}
		return fmt.Errorf("validation failed with %d error(s)", len(validationErr.Errors))
	}
	if err != nil {
		return err
	}

	_, _ = fmt.Fprintf(out, "Validation passed: %s\n", path)
	return nil
}
