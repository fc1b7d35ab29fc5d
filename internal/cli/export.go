package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"fmeca/internal/dataset"
)

var exportCmd = &cobra.Command{
	Use:   "export <study-id>",
	Short: "Export a study as a tab-separated sheet",
	Long: `Export writes a study in one of two layouts. The flat layout emits one
row per inspection step with the full record repeated. The classical layout
groups steps under their record, blanking repeated identity columns the way a
printed work sheet does.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		format, _ := cmd.Flags().GetString("format")
		outPath, _ := cmd.Flags().GetString("out")
		sortKey, _ := cmd.Flags().GetString("sort")
		desc, _ := cmd.Flags().GetBool("desc")

		study, err := newStore().Get(args[0])
		if err != nil {
			return err
		}

		records := study.Items
		if sortKey != "" {
			records = dataset.Project(records, dataset.FilterState{}, dataset.SortState{
				Key:        dataset.SortKey(sortKey),
				Descending: desc,
			})
		}

		var content string
		switch format {
		case "flat":
			content = dataset.ExportFlat(records)
		case "classical":
			content = dataset.ExportClassical(records)
		default:
			return fmt.Errorf("unknown format %q (want flat or classical)", format)
		}

		if outPath == "" {
			fmt.Println(content)
			return nil
		}
		if err := os.WriteFile(outPath, []byte(content+"\n"), 0644); err != nil {
			return fmt.Errorf("write export: %w", err)
		}
		fmt.Printf("Wrote %s (%d records)\n", outPath, len(records))
		return nil
	},
}

func init() {
	exportCmd.Flags().String("format", "flat", "Export layout: flat or classical")
	exportCmd.Flags().String("out", "", "Output file (stdout if omitted)")
	exportCmd.Flags().String("sort", "", "Sort key, e.g. rpn, component, criticality, status")
	exportCmd.Flags().Bool("desc", false, "Sort descending")
}
