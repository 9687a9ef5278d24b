package model

import "path/filepath"

// MarkerFile is the file whose presence identifies a SavedModel directory.
const MarkerFile = "saved_model.pb"

// DefaultSignature is the serving signature traced for conversion.
const DefaultSignature = "serving_default"

// DefaultSearchName is the substring used to discover a model directory by
// name when no marker file sits at the assets root.
const DefaultSearchName = "facenet"

// Default output filenames. The converted model is written under both names
// so either expected filename resolves to the same content.
const (
	DefaultOutputFile = "face_recognition_model.tflite"
	DefaultAliasFile  = "mobilefacenet.tflite"
)

// ConvertJob describes one run of the conversion pipeline.
type ConvertJob struct {
	// AssetsDir is the root searched for a source model.
	AssetsDir string

	// ModelDir, when set, skips discovery and names the SavedModel
	// directory directly.
	ModelDir string

	// SearchName is the case-insensitive substring used to discover a
	// model subdirectory under AssetsDir.
	SearchName string

	Signature string
	Shape     InputShape
	Options   ConvertOptions

	// OutputPath and AliasPath are where the converted buffer is written.
	OutputPath string
	AliasPath  string

	// SyntheticFallback enables synthesizing a placeholder model when
	// conversion fails.
	SyntheticFallback bool
}

// ApplyDefaults fills zero-valued fields with the stock FaceNet pipeline
// parameters.
func (j *ConvertJob) ApplyDefaults() {
	if j.AssetsDir == "" {
		j.AssetsDir = filepath.Join("assets", "models")
	}
	if j.SearchName == "" {
		j.SearchName = DefaultSearchName
	}
	if j.Signature == "" {
		j.Signature = DefaultSignature
	}
	if j.Shape.Size == 0 {
		j.Shape = DefaultInputShape()
	}
	if j.Shape.Channels == 0 {
		j.Shape.Channels = 3
	}
	if j.OutputPath == "" {
		j.OutputPath = filepath.Join(j.AssetsDir, DefaultOutputFile)
	}
	if j.AliasPath == "" {
		j.AliasPath = filepath.Join(j.AssetsDir, DefaultAliasFile)
	}
}

// FetchJob describes one run of the pretrained model downloader.
type FetchJob struct {
	// DestDir is where accepted downloads are placed.
	DestDir string

	Catalog Catalog

	// MinSize is the acceptance threshold in bytes; downloads that do not
	// exceed it are rejected as corrupted.
	MinSize int64

	// Verify additionally checks the TFLite file identifier of each
	// download before accepting it.
	Verify bool
}

// ApplyDefaults fills zero-valued fields with the built-in catalog and
// thresholds.
func (j *FetchJob) ApplyDefaults() {
	if j.DestDir == "" {
		j.DestDir = filepath.Join("assets", "models")
	}
	if len(j.Catalog.Models) == 0 {
		j.Catalog = DefaultCatalog()
	}
	if j.MinSize == 0 {
		j.MinSize = MinModelSize
	}
}
