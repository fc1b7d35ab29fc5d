package tasks

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"fmeca/pkg/schema"
)

func strPtr(s string) *string { return &s }

func TestValidateRecordBatch(t *testing.T) {
	t.Run("valid batch", func(t *testing.T) {
		items := []schema.RecordPatch{
			{Component: strPtr("Pump"), FailureMode: strPtr("Cavitation")},
			{Component: strPtr("Seal"), FailureMode: strPtr("Leak")},
		}
		assert.NoError(t, ValidateRecordBatch(&items))
	})

	t.Run("empty batch", func(t *testing.T) {
		items := []schema.RecordPatch{}
		err := ValidateRecordBatch(&items)
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "at least one record")
	})

	t.Run("missing component", func(t *testing.T) {
		items := []schema.RecordPatch{
			{FailureMode: strPtr("Leak")},
		}
		err := ValidateRecordBatch(&items)
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "component is required")
	})

	t.Run("missing failure mode", func(t *testing.T) {
		items := []schema.RecordPatch{
			{Component: strPtr("Pump"), FailureMode: strPtr("")},
		}
		err := ValidateRecordBatch(&items)
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "failureMode is required")
	})
}

func TestValidateSheet(t *testing.T) {
	valid := func() *schema.InspectionSheet {
		return &schema.InspectionSheet{
			Responsibility: "Mechanical Technician",
			Steps: []schema.InspectionStep{
				{Step: 1, Description: "Check mounting bolts"},
			},
		}
	}

	t.Run("valid sheet", func(t *testing.T) {
		assert.NoError(t, ValidateSheet(valid()))
	})

	t.Run("no steps", func(t *testing.T) {
		sheet := valid()
		sheet.Steps = nil
		assert.Error(t, ValidateSheet(sheet))
	})

	t.Run("step without description", func(t *testing.T) {
		sheet := valid()
		sheet.Steps = append(sheet.Steps, schema.InspectionStep{Step: 2})
		assert.Error(t, ValidateSheet(sheet))
	})

	t.Run("missing responsibility", func(t *testing.T) {
		sheet := valid()
		sheet.Responsibility = ""
		assert.Error(t, ValidateSheet(sheet))
	})
}

func TestValidateIntel(t *testing.T) {
	assert.NoError(t, ValidateIntel(&schema.ComponentIntel{Description: "Centrifugal pump"}))
	assert.Error(t, ValidateIntel(&schema.ComponentIntel{Location: "Deck 2"}))
}
