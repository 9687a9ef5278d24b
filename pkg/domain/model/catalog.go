package model

import (
	"os"

	"github.com/m-mizutani/goerr/v2"
	"github.com/pelletier/go-toml/v2"
)

// CatalogEntry is one pretrained model to download.
type CatalogEntry struct {
	Name string `toml:"name"` // Display name for logs and the summary
	URL  string `toml:"url"`  // Source URL
	File string `toml:"file"` // Destination filename relative to the dest dir
}

// Catalog is a list of pretrained models to download.
type Catalog struct {
	Models []CatalogEntry `toml:"models"`
}

// DefaultCatalog returns the built-in model list: a generic image classifier
// plus the MediaPipe face detection/landmark models.
func DefaultCatalog() Catalog {
	return Catalog{
		Models: []CatalogEntry{
			{
				Name: "MobileNetV1",
				URL:  "https://storage.googleapis.com/download.tensorflow.org/models/tflite/mobilenet_v1_1.0_224.tflite",
				File: "mobilenet_v1.tflite",
			},
			{
				Name: "Face Detection",
				URL:  "https://storage.googleapis.com/mediapipe-models/face_detector/face_detector/float16/1/face_detector.tflite",
				File: "face_detector.tflite",
			},
			{
				Name: "Face Landmarks",
				URL:  "https://storage.googleapis.com/mediapipe-models/face_landmarker/face_landmarker/float16/1/face_landmarker.tflite",
				File: "face_landmarker.tflite",
			},
		},
	}
}

// LoadCatalog reads a TOML catalog file.
func LoadCatalog(path string) (Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Catalog{}, goerr.Wrap(err, "failed to read catalog file", goerr.V("path", path))
	}

	var catalog Catalog
	if err := toml.Unmarshal(data, &catalog); err != nil {
		return Catalog{}, goerr.Wrap(err, "failed to parse catalog file", goerr.V("path", path))
	}

	if err := catalog.Validate(); err != nil {
		return Catalog{}, err
	}

	return catalog, nil
}

// Validate checks that every entry has a name, URL and destination file.
func (c Catalog) Validate() error {
	if len(c.Models) == 0 {
		return goerr.New("catalog has no models")
	}
	for i, entry := range c.Models {
		if entry.Name == "" || entry.URL == "" || entry.File == "" {
			return goerr.New("catalog entry is incomplete",
				goerr.V("index", i),
				goerr.V("entry", entry),
			)
		}
	}
	return nil
}
