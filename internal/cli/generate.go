package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"fmeca/pkg/schema"
)

var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Generate analysis records from an asset description",
	Long: `Generate creates a new study from a context file (or inline context), or
appends records to an existing study with --study. Incremental generation
sends a summary of existing failure modes so the service avoids duplicates;
existing records are never modified.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		contextFile, _ := cmd.Flags().GetString("context-file")
		contextText, _ := cmd.Flags().GetString("context")
		count, _ := cmd.Flags().GetInt("count")
		name, _ := cmd.Flags().GetString("name")
		studyID, _ := cmd.Flags().GetString("study")

		fileName := ""
		if contextFile != "" {
			data, err := os.ReadFile(contextFile)
			if err != nil {
				return fmt.Errorf("read context file: %w", err)
			}
			contextText = string(data)
			fileName = filepath.Base(contextFile)
		}
		if contextText == "" && studyID == "" {
			return fmt.Errorf("provide --context-file or --context")
		}

		ctx := context.Background()
		orch, err := newOrchestrator(ctx)
		if err != nil {
			return err
		}

		if studyID != "" {
			study, err := loadStudy(orch, studyID)
			if err != nil {
				return err
			}
			if contextText == "" {
				contextText = study.ContextText
			}
			fmt.Printf("Generating %d additional records...\n", count)
			if err := orch.MergeGenerate(ctx, contextText, count); err != nil {
				return err
			}
			study.ContextText = contextText
			if err := orch.Save(study); err != nil {
				return err
			}
			fmt.Printf("Saved %q (%d records)\n", study.Name, len(study.Items))
			return nil
		}

		id, err := schema.NewStudyID()
		if err != nil {
			return fmt.Errorf("generate study id: %w", err)
		}
		if name == "" {
			if fileName != "" {
				name = fileName
			} else {
				name = "Untitled Study"
			}
		}
		study := &schema.Study{
			ID:          id,
			Name:        name,
			ContextText: contextText,
			FileName:    fileName,
		}

		fmt.Printf("Generating %d records...\n", count)
		if err := orch.GenerateStudy(ctx, contextText, count); err != nil {
			return err
		}
		if err := orch.Save(study); err != nil {
			return err
		}
		fmt.Printf("Created study %s (%d records)\n", study.ID, len(study.Items))
		return nil
	},
}

func init() {
	generateCmd.Flags().String("context-file", "", "Path to the asset description file")
	generateCmd.Flags().String("context", "", "Inline asset description")
	generateCmd.Flags().Int("count", 10, "Number of records to generate")
	generateCmd.Flags().String("name", "", "Study name (defaults to the context file name)")
	generateCmd.Flags().String("study", "", "Existing study ID to append records to")
}
