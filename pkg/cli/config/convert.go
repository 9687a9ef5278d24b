package config

import (
	"github.com/urfave/cli/v3"

	"github.com/faceforge/faceforge/pkg/domain/model"
)

// Convert holds conversion pipeline configuration
type Convert struct {
	AssetsDir         string
	ModelDir          string
	SearchName        string
	Signature         string
	InputSize         int64
	Batch             int64
	Optimize          bool
	Float16           bool
	SyntheticFallback bool
	OutputPath        string
	AliasPath         string
	Python            string
}

// Flags returns CLI flags for conversion configuration
func (c *Convert) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "assets-dir",
			Usage:       "Directory searched for the source SavedModel",
			Value:       "assets/models",
			Destination: &c.AssetsDir,
			Sources:     cli.EnvVars("FACEFORGE_ASSETS_DIR"),
		},
		&cli.StringFlag{
			Name:        "model-dir",
			Usage:       "Explicit SavedModel directory (skips discovery)",
			Destination: &c.ModelDir,
			Sources:     cli.EnvVars("FACEFORGE_MODEL_DIR"),
		},
		&cli.StringFlag{
			Name:        "search-name",
			Usage:       "Case-insensitive substring used to discover the model directory",
			Value:       model.DefaultSearchName,
			Destination: &c.SearchName,
		},
		&cli.StringFlag{
			Name:        "signature",
			Usage:       "Serving signature to trace",
			Value:       model.DefaultSignature,
			Destination: &c.Signature,
		},
		&cli.Int64Flag{
			Name:        "input-size",
			Usage:       "Edge length of the expected square input image",
			Value:       model.DefaultInputSize,
			Destination: &c.InputSize,
		},
		&cli.Int64Flag{
			Name:        "batch",
			Usage:       "Batch dimension to trace with (0 = dynamic)",
			Value:       0,
			Destination: &c.Batch,
		},
		&cli.BoolFlag{
			Name:        "optimize",
			Usage:       "Apply the converter's default optimizations",
			Value:       true,
			Destination: &c.Optimize,
		},
		&cli.BoolFlag{
			Name:        "float16",
			Usage:       "Store weights as 16-bit floats",
			Value:       true,
			Destination: &c.Float16,
		},
		&cli.BoolFlag{
			Name:        "synthetic-fallback",
			Usage:       "Synthesize a placeholder model when conversion fails (output has no predictive value)",
			Value:       false,
			Destination: &c.SyntheticFallback,
		},
		&cli.StringFlag{
			Name:        "output",
			Usage:       "Primary output path (defaults to <assets-dir>/" + model.DefaultOutputFile + ")",
			Destination: &c.OutputPath,
		},
		&cli.StringFlag{
			Name:        "alias",
			Usage:       "Duplicate output path (defaults to <assets-dir>/" + model.DefaultAliasFile + ")",
			Destination: &c.AliasPath,
		},
		&cli.StringFlag{
			Name:        "python",
			Usage:       "Python interpreter used to run the ML framework",
			Value:       "python3",
			Destination: &c.Python,
			Sources:     cli.EnvVars("FACEFORGE_PYTHON"),
		},
	}
}

// Job builds the conversion job described by the flags.
func (c *Convert) Job() *model.ConvertJob {
	job := &model.ConvertJob{
		AssetsDir:  c.AssetsDir,
		ModelDir:   c.ModelDir,
		SearchName: c.SearchName,
		Signature:  c.Signature,
		Shape: model.InputShape{
			Batch:    int(c.Batch),
			Size:     int(c.InputSize),
			Channels: 3,
		},
		Options: model.ConvertOptions{
			ApplyDefaultOptimizations: c.Optimize,
			ForceFloat16:              c.Float16,
		},
		OutputPath:        c.OutputPath,
		AliasPath:         c.AliasPath,
		SyntheticFallback: c.SyntheticFallback,
	}
	job.ApplyDefaults()
	return job
}
