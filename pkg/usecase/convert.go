package usecase

import (
	"context"
	"os"
	"path/filepath"

	"github.com/m-mizutani/ctxlog"
	"github.com/m-mizutani/goerr/v2"

	"github.com/faceforge/faceforge/pkg/domain/interfaces"
	"github.com/faceforge/faceforge/pkg/domain/model"
	"github.com/faceforge/faceforge/pkg/domain/types"
)

type convertUseCase struct {
	converter interfaces.Converter
}

// NewConvert creates a new instance of ConvertUseCase
func NewConvert(converter interfaces.Converter) interfaces.ConvertUseCase {
	return &convertUseCase{
		converter: converter,
	}
}

// Convert locates the source model, runs it through the format converter and
// writes the result to the job's two output paths.
func (uc *convertUseCase) Convert(ctx context.Context, job *model.ConvertJob) (*model.ConvertResult, error) {
	logger := ctxlog.From(ctx)
	job.ApplyDefaults()

	modelDir, err := LocateModel(job)
	if err != nil {
		logger.Error("Could not locate source model",
			"error", err,
			"assets_dir", job.AssetsDir,
			"search_name", job.SearchName,
		)
		return nil, err
	}

	logger.Info("Found model directory", "model_dir", modelDir)

	result := &model.ConvertResult{
		ModelDir:   modelDir,
		OutputPath: job.OutputPath,
		AliasPath:  job.AliasPath,
		Shape:      job.Shape,
	}

	buf, err := uc.convertWithShapeRetry(ctx, job, modelDir, result)
	if err != nil {
		if !job.SyntheticFallback {
			return nil, err
		}

		logger.Warn("Conversion failed, synthesizing placeholder model",
			"error", err,
			"model_dir", modelDir,
		)

		buf, err = uc.converter.Synthesize(ctx, model.SyntheticSpec{
			InputSize:    job.Shape.Size,
			EmbeddingDim: model.DefaultEmbeddingDim,
		})
		if err != nil {
			return nil, goerr.Wrap(err, "failed to synthesize fallback model")
		}
		result.Synthetic = true
	}

	if err := model.ValidateTFLite(buf); err != nil {
		return nil, err
	}

	if err := writeOutputs(job, buf); err != nil {
		return nil, err
	}
	result.Size = int64(len(buf))

	logger.Info("Converted model written",
		"output", job.OutputPath,
		"alias", job.AliasPath,
		"size_kb", float64(result.Size)/1024,
		"shape", result.Shape.String(),
	)

	if result.Synthetic {
		// The placeholder passes every structural check but embeds nothing:
		// it must never ship as a face recognition model.
		logger.Warn("Output is a synthesized placeholder with no predictive value",
			"output", job.OutputPath,
		)
	}

	return result, nil
}

// convertWithShapeRetry runs the converter, retrying exactly once with the
// batch dimension fixed to 1 when tracing the fully-dynamic batch fails.
func (uc *convertUseCase) convertWithShapeRetry(ctx context.Context, job *model.ConvertJob, modelDir string, result *model.ConvertResult) ([]byte, error) {
	logger := ctxlog.From(ctx)

	req := model.ConvertRequest{
		ModelDir:  modelDir,
		Signature: job.Signature,
		Shape:     job.Shape,
		Options:   job.Options,
	}

	buf, err := uc.converter.Convert(ctx, req)
	if err == nil {
		return buf, nil
	}

	if !goerr.HasTag(err, types.TagTraceFailed) || !req.Shape.Dynamic() {
		return nil, err
	}

	logger.Info("Tracing failed for dynamic batch, retrying with batch size 1",
		"shape", req.Shape.String(),
	)

	req.Shape = req.Shape.WithBatch(1)
	buf, err = uc.converter.Convert(ctx, req)
	if err != nil {
		return nil, err
	}
	result.Shape = req.Shape

	return buf, nil
}

// writeOutputs writes the converted buffer to both expected filenames.
func writeOutputs(job *model.ConvertJob, buf []byte) error {
	for _, path := range []string{job.OutputPath, job.AliasPath} {
		if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
			return goerr.Wrap(err, "failed to create output directory", goerr.V("path", path))
		}
		if err := os.WriteFile(path, buf, 0644); err != nil {
			return goerr.Wrap(err, "failed to write converted model", goerr.V("path", path))
		}
	}
	return nil
}
