package cli

import (
	"context"
	"log/slog"

	"github.com/m-mizutani/ctxlog"
	"github.com/m-mizutani/goerr/v2"
	"github.com/urfave/cli/v3"

	"github.com/faceforge/faceforge/pkg/cli/config"
	"github.com/faceforge/faceforge/pkg/infra/tflite"
	"github.com/faceforge/faceforge/pkg/usecase"
)

func cmdConvert() *cli.Command {
	var convertCfg config.Convert

	return &cli.Command{
		Name:    "convert",
		Aliases: []string{"c"},
		Usage:   "Convert a FaceNet SavedModel to the mobile TFLite format",
		Flags:   convertCfg.Flags(),
		Action: func(ctx context.Context, c *cli.Command) error {
			logger := ctxlog.From(ctx)
			job := convertCfg.Job()

			logger.Info("Converting FaceNet SavedModel to TFLite",
				slog.String("assets_dir", job.AssetsDir),
				slog.String("shape", job.Shape.String()),
				slog.Bool("optimize", job.Options.ApplyDefaultOptimizations),
				slog.Bool("float16", job.Options.ForceFloat16),
			)

			converter := tflite.New(tflite.WithPython(convertCfg.Python))
			convertUC := usecase.NewConvert(converter)

			result, err := convertUC.Convert(ctx, job)
			if err != nil {
				return goerr.Wrap(err, "failed to convert model")
			}

			logger.Info("Conversion complete",
				slog.String("output", result.OutputPath),
				slog.String("alias", result.AliasPath),
				slog.Int64("size", result.Size),
				slog.Bool("synthetic", result.Synthetic),
			)
			return nil
		},
	}
}
