package core

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"

	"fmeca/internal/llm/tasks"
	"fmeca/pkg/schema"
)

func TestMockGeneratorConcurrentCalls(t *testing.T) {
	gen := &MockGenerator{
		SheetOutput: &schema.InspectionSheet{
			Responsibility: "Tech",
			Steps:          []schema.InspectionStep{{Step: 1, Description: "Check"}},
		},
		IntelOutput: &schema.ComponentIntel{Description: "Pump"},
		SheetErrors: map[string]error{"FM-fail": assert.AnError},
	}

	const workers = 8
	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			id := "FM-ok"
			if i%2 == 0 {
				id = "FM-fail"
			}
			_, _ = gen.GenerateSheet(context.Background(), &tasks.SheetGenInput{
				Record: schema.Record{ID: id},
			})
			_, _ = gen.GenerateIntel(context.Background(), &tasks.IntelGenInput{
				Record: schema.Record{ID: id},
			})
		}(i)
	}
	wg.Wait()

	assert.Equal(t, workers, gen.SheetCalls)
	assert.Equal(t, workers, gen.IntelCalls)
}
