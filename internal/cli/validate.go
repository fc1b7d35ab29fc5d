package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"fmeca/pkg/schema"
)

var validateCmd = &cobra.Command{
	Use:   "validate <study-id>",
	Short: "Check a stored study against the record schema",
	Long: `Validate runs the strict schema checks over a study: enum membership,
score ranges, RPN consistency, step numbering, and ID uniqueness. Stored
studies normally pass; failures indicate hand-edited files.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		study, err := newStore().Get(args[0])
		if err != nil {
			return err
		}

		failed := 0
		for i := range study.Items {
			if err := schema.ValidateRecord(&study.Items[i]); err != nil {
				failed++
				fmt.Printf("FAIL %s: %v\n", study.Items[i].ID, err)
			}
		}
		if err := schema.ValidateDataset(study.Items); err != nil {
			failed++
			fmt.Printf("FAIL dataset: %v\n", err)
		}

		if failed > 0 {
			return fmt.Errorf("%d check(s) failed", failed)
		}
		fmt.Printf("%d records OK\n", len(study.Items))
		return nil
	},
}
