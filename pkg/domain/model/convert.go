package model

import "fmt"

// DefaultInputSize is the edge length of the image batch the face
// recognition models expect (160x160 RGB).
const DefaultInputSize = 160

// DefaultEmbeddingDim is the length of the face embedding vector produced
// by the models this tool handles.
const DefaultEmbeddingDim = 128

// InputShape describes the 4-dimensional image batch tensor a serving
// signature is traced against. Batch == 0 means the batch dimension is
// dynamic.
type InputShape struct {
	Batch    int `json:"batch"`
	Size     int `json:"size"`
	Channels int `json:"channels"`
}

// DefaultInputShape returns the shape used by the stock FaceNet models:
// dynamic batch of 160x160 RGB images.
func DefaultInputShape() InputShape {
	return InputShape{Batch: 0, Size: DefaultInputSize, Channels: 3}
}

// WithBatch returns a copy of the shape with the batch dimension fixed.
func (s InputShape) WithBatch(batch int) InputShape {
	s.Batch = batch
	return s
}

// Dynamic reports whether the batch dimension is unspecified.
func (s InputShape) Dynamic() bool {
	return s.Batch == 0
}

// String renders the shape in tensor notation, e.g. [?,160,160,3].
func (s InputShape) String() string {
	if s.Dynamic() {
		return fmt.Sprintf("[?,%d,%d,%d]", s.Size, s.Size, s.Channels)
	}
	return fmt.Sprintf("[%d,%d,%d,%d]", s.Batch, s.Size, s.Size, s.Channels)
}

// ConvertOptions controls the format converter. The source scripts disagreed
// on these flags, so both are explicit here.
type ConvertOptions struct {
	// ApplyDefaultOptimizations enables the converter's default
	// optimization set (weight quantization).
	ApplyDefaultOptimizations bool `json:"optimize"`

	// ForceFloat16 restricts stored weights to 16-bit floats.
	ForceFloat16 bool `json:"float16"`
}

// DefaultConvertOptions matches the primary conversion script.
func DefaultConvertOptions() ConvertOptions {
	return ConvertOptions{
		ApplyDefaultOptimizations: true,
		ForceFloat16:              true,
	}
}

// ConvertRequest is a single conversion job for the Converter.
type ConvertRequest struct {
	// ModelDir is the located SavedModel directory.
	ModelDir string `json:"model_dir"`

	// Signature is the serving signature to trace. Defaults to
	// "serving_default" when empty.
	Signature string `json:"signature"`

	Shape   InputShape     `json:"shape"`
	Options ConvertOptions `json:"options"`
}

// SyntheticSpec describes the placeholder network synthesized when no real
// model can be converted: three conv+pool stages, global average pooling and
// two dense layers ending in a linear embedding output.
type SyntheticSpec struct {
	InputSize    int `json:"input_size"`
	EmbeddingDim int `json:"embedding_dim"`
}

// DefaultSyntheticSpec matches the face embedding geometry of the real
// models.
func DefaultSyntheticSpec() SyntheticSpec {
	return SyntheticSpec{
		InputSize:    DefaultInputSize,
		EmbeddingDim: DefaultEmbeddingDim,
	}
}

// ConvertResult reports a completed conversion.
type ConvertResult struct {
	ModelDir   string   // Located source SavedModel directory
	OutputPath string   // Primary output file
	AliasPath  string   // Duplicate output under the alternate expected name
	Size       int64    // Converted model size in bytes
	Shape      InputShape
	// Synthetic marks the output as a freshly synthesized placeholder with
	// no predictive value, not a converted face-recognition model.
	Synthetic bool
}
