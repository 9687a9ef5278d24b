package interfaces

import (
	"context"

	"github.com/faceforge/faceforge/pkg/domain/model"
)

// ConvertUseCase defines the model conversion pipeline
type ConvertUseCase interface {
	// Convert locates a source model, converts it and writes the output
	// files described by the job.
	Convert(ctx context.Context, job *model.ConvertJob) (*model.ConvertResult, error)
}

// FetchUseCase defines the pretrained model downloader
type FetchUseCase interface {
	// FetchAll downloads every catalog entry of the job. Individual entry
	// failures are collected in the report, not returned as an error.
	FetchAll(ctx context.Context, job *model.FetchJob) (*model.FetchReport, error)
}
