package usecase

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/m-mizutani/goerr/v2"

	"github.com/faceforge/faceforge/pkg/domain/model"
	"github.com/faceforge/faceforge/pkg/domain/types"
)

// LocateModel resolves the SavedModel directory for a conversion job.
//
// Resolution order:
//  1. job.ModelDir, which must contain the marker file.
//  2. job.AssetsDir itself, when the marker file sits directly in it.
//  3. The first immediate subdirectory of job.AssetsDir whose name contains
//     job.SearchName (case-insensitive).
//
// There is no fallback between strategies beyond this order: if nothing
// matches, the pipeline aborts.
func LocateModel(job *model.ConvertJob) (string, error) {
	if job.ModelDir != "" {
		if hasMarker(job.ModelDir) {
			return job.ModelDir, nil
		}
		return "", goerr.New("model directory has no saved model",
			goerr.T(types.TagModelNotFound),
			goerr.V("model_dir", job.ModelDir),
			goerr.V("marker", model.MarkerFile),
		)
	}

	if hasMarker(job.AssetsDir) {
		return job.AssetsDir, nil
	}

	entries, err := os.ReadDir(job.AssetsDir)
	if err != nil {
		return "", goerr.Wrap(err, "failed to read assets directory",
			goerr.T(types.TagModelNotFound),
			goerr.V("assets_dir", job.AssetsDir),
		)
	}

	needle := strings.ToLower(job.SearchName)
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		if strings.Contains(strings.ToLower(entry.Name()), needle) {
			return filepath.Join(job.AssetsDir, entry.Name()), nil
		}
	}

	return "", goerr.New("no source model found",
		goerr.T(types.TagModelNotFound),
		goerr.V("assets_dir", job.AssetsDir),
		goerr.V("search_name", job.SearchName),
	)
}

func hasMarker(dir string) bool {
	info, err := os.Stat(filepath.Join(dir, model.MarkerFile))
	return err == nil && !info.IsDir()
}
