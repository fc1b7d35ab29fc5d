package cli

import (
	"context"

	"github.com/spf13/cobra"

	"fmeca/internal/core"
)

var copilotCmd = &cobra.Command{
	Use:   "copilot <study-id>",
	Short: "Open an interactive copilot session on a study",
	Long: `Copilot starts a conversational session against a stored study. Messages
go to the analysis service; returned change proposals are confirmed one at a
time before they touch the dataset. Accepted changes autosave.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := context.Background()
		orch, err := newOrchestrator(ctx)
		if err != nil {
			return err
		}

		study, err := loadStudy(orch, args[0])
		if err != nil {
			return err
		}

		session := core.NewCLISession(orch, study)
		return session.Run(ctx)
	},
}
