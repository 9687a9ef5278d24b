package model

import (
	"bytes"
	"io"
	"os"

	"github.com/m-mizutani/goerr/v2"

	"github.com/faceforge/faceforge/pkg/domain/types"
)

// tfliteMagic is the FlatBuffers file identifier of the TFLite format,
// located at bytes 4..8 of the buffer.
var tfliteMagic = []byte("TFL3")

const tfliteHeaderSize = 8

// ValidateTFLite checks that the buffer is non-empty and carries the TFLite
// file identifier. It is a structural sanity check only; it says nothing
// about the quality of the model inside.
func ValidateTFLite(data []byte) error {
	if len(data) < tfliteHeaderSize {
		return goerr.New("model buffer too short to be a TFLite model",
			goerr.T(types.TagInvalidModel),
			goerr.V("size", len(data)),
		)
	}
	if !bytes.Equal(data[4:8], tfliteMagic) {
		return goerr.New("buffer is missing the TFLite file identifier",
			goerr.T(types.TagInvalidModel),
		)
	}
	return nil
}

// ValidateTFLiteFile checks the TFLite file identifier of an on-disk model.
func ValidateTFLiteFile(path string) error {
	f, err := os.Open(path)
	if err != nil {
		return goerr.Wrap(err, "failed to open model file",
			goerr.T(types.TagInvalidModel),
			goerr.V("path", path),
		)
	}
	defer f.Close()

	header := make([]byte, tfliteHeaderSize)
	if _, err := io.ReadFull(f, header); err != nil {
		return goerr.Wrap(err, "model file too short to be a TFLite model",
			goerr.T(types.TagInvalidModel),
			goerr.V("path", path),
		)
	}

	if err := ValidateTFLite(header); err != nil {
		return goerr.Wrap(err, "invalid model file", goerr.V("path", path))
	}
	return nil
}
