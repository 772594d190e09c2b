package tasks

import (
	"github.com/mvribeiro/talpha/internal/services"
)

// Phase identifies the stage of a running export.
type Phase int

const (
	FetchCollection Phase = iota // Fetching the product list
	FetchDetails                 // Re-fetching individual products
	WriteOutput                  // Writing the export file
)

// ProgressUpdate is a non-blocking status report sent while an export runs.
type ProgressUpdate struct {
	Phase   Phase
	Step    int
	Total   int
	Message string
}

// FetchFailure records a product whose detail fetch failed during a detailed
// export. The export continues with the collection copy of the record.
type FetchFailure struct {
	ProductID string
	Err       error
}

// ExportResult summarizes a completed export.
type ExportResult struct {
	TotalProducts int
	Failures      []FetchFailure
	OutputPath    string
}

// ExportEngine snapshots the product collection to a file.
type ExportEngine struct {
	api services.ProductAPI
}

// NewExportEngine creates an engine bound to the given API surface.
func NewExportEngine(api services.ProductAPI) *ExportEngine {
	return &ExportEngine{api: api}
}

// sendProgress delivers an update without blocking when nobody is listening.
func (e *ExportEngine) sendProgress(prog chan<- ProgressUpdate, update ProgressUpdate) {
	if prog == nil {
		return
	}
	select {
	case prog <- update:
	default:
	}
}

func fetchingCollectionUpdate() ProgressUpdate {
	return ProgressUpdate{Phase: FetchCollection, Message: "fetching product collection"}
}

func fetchingDetailUpdate(step, total int, name string) ProgressUpdate {
	return ProgressUpdate{Phase: FetchDetails, Step: step, Total: total, Message: name}
}

func writingOutputUpdate(path string) ProgressUpdate {
	return ProgressUpdate{Phase: WriteOutput, Message: path}
}
