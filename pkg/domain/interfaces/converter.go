package interfaces

import (
	"context"

	"github.com/faceforge/faceforge/pkg/domain/model"
)

// Converter drives the ML framework's model converter.
type Converter interface {
	// Convert loads the SavedModel in req.ModelDir, traces the serving
	// signature for req.Shape and returns the converted model buffer.
	// Failures carry a stage tag from pkg/domain/types.
	Convert(ctx context.Context, req model.ConvertRequest) ([]byte, error)

	// Synthesize builds a placeholder embedding network from scratch and
	// returns it converted. The output is structurally valid but has no
	// predictive value.
	Synthesize(ctx context.Context, spec model.SyntheticSpec) ([]byte, error)
}
