package core

import (
	"context"
	"sync"

	"fmeca/internal/llm"
	"fmeca/internal/llm/tasks"
	"fmeca/pkg/schema"
)

// Generator abstracts the generative text service for testability.
type Generator interface {
	GenerateRecords(ctx context.Context, input *tasks.RecordBatchInput) ([]schema.RecordPatch, error)
	GenerateSheet(ctx context.Context, input *tasks.SheetGenInput) (*schema.InspectionSheet, error)
	GenerateIntel(ctx context.Context, input *tasks.IntelGenInput) (*schema.ComponentIntel, error)
	Copilot(ctx context.Context, input *tasks.CopilotInput) (*tasks.CopilotOutput, error)
}

// ServiceGenerator implements Generator against the real service client.
type ServiceGenerator struct {
	client *llm.Client
}

// NewServiceGenerator creates a Generator backed by a service client.
func NewServiceGenerator(client *llm.Client) *ServiceGenerator {
	return &ServiceGenerator{client: client}
}

func (g *ServiceGenerator) GenerateRecords(ctx context.Context, input *tasks.RecordBatchInput) ([]schema.RecordPatch, error) {
	return tasks.ExecuteRecordBatchTask(g.client, ctx, input)
}

func (g *ServiceGenerator) GenerateSheet(ctx context.Context, input *tasks.SheetGenInput) (*schema.InspectionSheet, error) {
	return tasks.ExecuteSheetGenTask(g.client, ctx, input)
}

func (g *ServiceGenerator) GenerateIntel(ctx context.Context, input *tasks.IntelGenInput) (*schema.ComponentIntel, error) {
	return tasks.ExecuteIntelGenTask(g.client, ctx, input)
}

func (g *ServiceGenerator) Copilot(ctx context.Context, input *tasks.CopilotInput) (*tasks.CopilotOutput, error) {
	return tasks.ExecuteCopilotTask(g.client, ctx, input)
}

// MockGenerator implements Generator with canned responses for testing.
// Safe for concurrent use: batch generation calls it from multiple goroutines.
type MockGenerator struct {
	mu sync.Mutex

	RecordsOutput []schema.RecordPatch
	SheetOutput   *schema.InspectionSheet
	IntelOutput   *schema.ComponentIntel
	CopilotOutput *tasks.CopilotOutput

	RecordsError error
	SheetError   error
	IntelError   error
	CopilotError error

	// SheetErrors fails sheet generation for specific record IDs, simulating
	// partial batch failure.
	SheetErrors map[string]error

	RecordsCalls int
	SheetCalls   int
	IntelCalls   int
	CopilotCalls int

	// LastBatchInput records the most recent batch request for assertions.
	LastBatchInput *tasks.RecordBatchInput
}

func (m *MockGenerator) GenerateRecords(ctx context.Context, input *tasks.RecordBatchInput) ([]schema.RecordPatch, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.RecordsCalls++
	m.LastBatchInput = input
	if m.RecordsError != nil {
		return nil, m.RecordsError
	}
	return m.RecordsOutput, nil
}

func (m *MockGenerator) GenerateSheet(ctx context.Context, input *tasks.SheetGenInput) (*schema.InspectionSheet, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.SheetCalls++
	if err, ok := m.SheetErrors[input.Record.ID]; ok {
		return nil, err
	}
	if m.SheetError != nil {
		return nil, m.SheetError
	}
	return m.SheetOutput, nil
}

func (m *MockGenerator) GenerateIntel(ctx context.Context, input *tasks.IntelGenInput) (*schema.ComponentIntel, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.IntelCalls++
	if m.IntelError != nil {
		return nil, m.IntelError
	}
	return m.IntelOutput, nil
}

func (m *MockGenerator) Copilot(ctx context.Context, input *tasks.CopilotInput) (*tasks.CopilotOutput, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.CopilotCalls++
	if m.CopilotError != nil {
		return nil, m.CopilotError
	}
	return m.CopilotOutput, nil
}
