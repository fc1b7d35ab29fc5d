package core

import (
	"context"
	"sync/atomic"
	"time"

	"golang.org/x/sync/errgroup"

	"fmeca/internal/dataset"
	"fmeca/internal/llm/tasks"
	"fmeca/internal/store"
	"fmeca/pkg/schema"
)

// batchChunkSize bounds in-flight sub-requests during bulk sheet and intel
// generation. Each chunk's sub-requests run concurrently; chunks run one
// after another so results appear progressively.
const batchChunkSize = 4

// Orchestrator drives generation, reconciliation, and persistence against a
// single engine-owned dataset.
type Orchestrator struct {
	gen    Generator
	engine *dataset.Engine
	merge  *dataset.MergeCoordinator
	store  *store.Store
	log    Logger

	batchInFlight atomic.Bool
}

// NewOrchestrator wires an orchestrator around an engine.
func NewOrchestrator(gen Generator, engine *dataset.Engine, st *store.Store, log Logger) *Orchestrator {
	return &Orchestrator{
		gen:    gen,
		engine: engine,
		merge:  dataset.NewMergeCoordinator(engine),
		store:  st,
		log:    log,
	}
}

// Engine exposes the dataset owner for read access and direct proposals.
func (o *Orchestrator) Engine() *dataset.Engine {
	return o.engine
}

// BatchInFlight reports whether a chunked batch operation is running.
// Autosave is suppressed while one is.
func (o *Orchestrator) BatchInFlight() bool {
	return o.batchInFlight.Load()
}

// GenerateStudy performs a full regeneration: the existing dataset and its
// history are discarded and replaced by a fresh batch.
func (o *Orchestrator) GenerateStudy(ctx context.Context, contextText string, count int) error {
	records, err := o.generateBatch(ctx, contextText, count, "")
	if err != nil {
		return err
	}
	o.merge.Regenerate(records)
	o.log.Info("study generated", "records", len(records))
	return nil
}

// MergeGenerate performs an incremental generation: an avoidance summary of
// the existing dataset goes to the service, and the returned records are
// appended tagged as new. Existing records are never touched.
func (o *Orchestrator) MergeGenerate(ctx context.Context, contextText string, count int) error {
	summary := o.merge.AvoidanceSummary()
	records, err := o.generateBatch(ctx, contextText, count, summary)
	if err != nil {
		return err
	}
	o.merge.TagAndAppend(records)
	o.log.Info("merge generation appended", "records", len(records))
	return nil
}

func (o *Orchestrator) generateBatch(ctx context.Context, contextText string, count int, avoidance string) ([]schema.Record, error) {
	patches, err := o.gen.GenerateRecords(ctx, &tasks.RecordBatchInput{
		ContextText:      contextText,
		Count:            count,
		AvoidanceSummary: avoidance,
	})
	if err != nil {
		return nil, &GenerationError{Operation: "record batch", Message: err.Error(), Err: err}
	}

	records := make([]schema.Record, 0, len(patches))
	for i := range patches {
		rec, err := schema.NormalizeNew(&patches[i], schema.DefaultsBatch)
		if err != nil {
			return nil, &GenerationError{Operation: "record batch", Message: err.Error(), Err: err}
		}
		records = append(records, rec)
	}
	return records, nil
}

// RunCopilot executes one conversational round and returns the commentary
// and extracted proposals. Proposals are not applied here; the caller decides
// which to apply.
func (o *Orchestrator) RunCopilot(ctx context.Context, contextText, userMessage string) (*tasks.CopilotOutput, error) {
	out, err := o.gen.Copilot(ctx, &tasks.CopilotInput{
		ContextText: contextText,
		Records:     o.engine.Records(),
		UserMessage: userMessage,
	})
	if err != nil {
		return nil, &GenerationError{Operation: "copilot", Message: err.Error(), Err: err}
	}
	return out, nil
}

// GenerateSheets generates inspection sheets for the given record IDs in
// chunks. Sub-request failures are logged and swallowed; the affected record
// simply keeps no sheet. Each chunk's results merge before the next chunk
// starts, so partial completion is never lost.
func (o *Orchestrator) GenerateSheets(ctx context.Context, ids []string) {
	o.batchInFlight.Store(true)
	defer o.batchInFlight.Store(false)

	o.runChunked(ctx, ids, func(ctx context.Context, rec schema.Record) (func(), error) {
		sheet, err := o.gen.GenerateSheet(ctx, &tasks.SheetGenInput{Record: rec})
		if err != nil {
			return nil, err
		}
		return func() { o.engine.SetInspectionSheet(rec.ID, sheet) }, nil
	})
}

// GenerateIntel generates component-intel sub-documents for the given record
// IDs, with the same chunking discipline as GenerateSheets.
func (o *Orchestrator) GenerateIntel(ctx context.Context, ids []string) {
	o.batchInFlight.Store(true)
	defer o.batchInFlight.Store(false)

	o.runChunked(ctx, ids, func(ctx context.Context, rec schema.Record) (func(), error) {
		intel, err := o.gen.GenerateIntel(ctx, &tasks.IntelGenInput{Record: rec})
		if err != nil {
			return nil, err
		}
		return func() { o.engine.SetComponentIntel(rec.ID, intel) }, nil
	})
}

// runChunked issues one sub-request per record in fixed-size concurrent
// chunks and applies each chunk's merges serially after the chunk settles.
func (o *Orchestrator) runChunked(ctx context.Context, ids []string, sub func(context.Context, schema.Record) (func(), error)) {
	for start := 0; start < len(ids); start += batchChunkSize {
		end := min(start+batchChunkSize, len(ids))
		chunk := ids[start:end]
		merges := make([]func(), len(chunk))

		g, gctx := errgroup.WithContext(ctx)
		for i, id := range chunk {
			rec, ok := o.engine.Get(id)
			if !ok {
				o.log.Warn("batch target not found", "id", id)
				continue
			}
			g.Go(func() error {
				apply, err := sub(gctx, rec)
				if err != nil {
					// One failure must not cancel its siblings.
					o.log.Warn("batch sub-request failed", "id", id, "error", err.Error())
					return nil
				}
				merges[i] = apply
				return nil
			})
		}
		_ = g.Wait()

		for _, apply := range merges {
			if apply != nil {
				apply()
			}
		}
	}
}

// Save clears every record's new flag and hands the dataset to the study
// store as a create-or-update. A storage failure leaves the persisted state
// untouched; the in-memory flags stay cleared.
func (o *Orchestrator) Save(study *schema.Study) error {
	study.Items = o.merge.CommitSave()
	study.Timestamp = time.Now()

	if err := o.store.Save(study); err != nil {
		return &StorageError{Operation: "save", Message: err.Error(), Err: err}
	}
	o.log.Info("study saved", "id", study.ID, "records", len(study.Items))
	return nil
}

// LoadStudy replaces the dataset with a stored study's items. The loaded
// state is the new baseline: history is discarded.
func (o *Orchestrator) LoadStudy(id string) (*schema.Study, error) {
	study, err := o.store.Get(id)
	if err != nil {
		return nil, &StorageError{Operation: "load", Message: err.Error(), Err: err}
	}
	o.merge.Regenerate(study.Items)
	return study, nil
}
