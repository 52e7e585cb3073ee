package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/kanban/pkg/types"
)

// validateOutput is the JSON shape of validate.
type validateOutput struct {
	Passed   bool         `json:"passed"`
	Errors   types.Issues `json:"errors"`
	Warnings types.Issues `json:"warnings"`
}

func newValidateCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "validate",
		Short: "Check board.yaml and every card for consistency",
		Long:  "Report structural problems in the board. Exits 1 when any error is found.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := a.store()
			if err != nil {
				return err
			}
			issues := s.Validate()
			errs, warns := issues.Errors(), issues.Warnings()

			if a.flags.jsonMode {
				out := validateOutput{Passed: issues.Passed(), Errors: errs, Warnings: warns}
				if out.Errors == nil {
					out.Errors = types.Issues{}
				}
				if out.Warnings == nil {
					out.Warnings = types.Issues{}
				}
				if err := writeJSON(cmd, out); err != nil {
					return err
				}
			} else {
				for _, issue := range issues {
					printf(cmd, "%s\n", issue)
				}
				printf(cmd, "%d errors, %d warnings\n", len(errs), len(warns))
			}

			if !issues.Passed() {
				return userError(fmt.Errorf("%w: %d errors", types.ErrBoardInvalid, len(errs)))
			}
			return nil
		},
	}
}
