package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

var studyCmd = &cobra.Command{
	Use:   "study",
	Short: "Manage stored studies",
}

var studyListCmd = &cobra.Command{
	Use:   "list",
	Short: "List stored studies, newest first",
	RunE: func(cmd *cobra.Command, args []string) error {
		studies, err := newStore().List()
		if err != nil {
			return err
		}
		if len(studies) == 0 {
			fmt.Println("No studies stored.")
			return nil
		}
		for _, study := range studies {
			fmt.Printf("%s  %-30s  %3d records  %s\n",
				study.ID, study.Name, len(study.Items),
				study.Timestamp.Format("2006-01-02 15:04"))
		}
		return nil
	},
}

var studyShowCmd = &cobra.Command{
	Use:   "show <study-id>",
	Short: "Show a study's records",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		study, err := newStore().Get(args[0])
		if err != nil {
			return err
		}
		fmt.Printf("%s  %s  (%d records)\n\n", study.ID, study.Name, len(study.Items))
		for _, rec := range study.Items {
			fmt.Printf("[%s] %s | %s\n", rec.ID, rec.Component, rec.FailureMode)
			fmt.Printf("    S%d O%d D%d  RPN %d  %s\n",
				rec.Severity, rec.Occurrence, rec.Detection, rec.RPN, rec.Criticality)
			if rec.MaintenanceTask != "" {
				fmt.Printf("    Task: %s (%s, %s)\n", rec.MaintenanceTask, rec.TaskType, rec.Interval)
			}
		}
		return nil
	},
}

var studyDeleteCmd = &cobra.Command{
	Use:   "delete <study-id>",
	Short: "Delete a stored study",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := newStore().Delete(args[0]); err != nil {
			return err
		}
		fmt.Printf("Deleted %s\n", args[0])
		return nil
	},
}

func init() {
	studyCmd.AddCommand(studyListCmd)
	studyCmd.AddCommand(studyShowCmd)
	studyCmd.AddCommand(studyDeleteCmd)
}
