package usecase

import (
	"context"
	"os"
	"path/filepath"

	"github.com/google/uuid"
	"github.com/m-mizutani/ctxlog"
	"github.com/m-mizutani/goerr/v2"

	"github.com/faceforge/faceforge/pkg/domain/interfaces"
	"github.com/faceforge/faceforge/pkg/domain/model"
	"github.com/faceforge/faceforge/pkg/domain/types"
)

type fetchUseCase struct {
	fetcher interfaces.Fetcher
}

// NewFetch creates a new instance of FetchUseCase
func NewFetch(fetcher interfaces.Fetcher) interfaces.FetchUseCase {
	return &fetchUseCase{
		fetcher: fetcher,
	}
}

// FetchAll downloads every catalog entry into the job's destination
// directory. Entries are attempted independently: one failure never blocks
// the rest. The report collects per-entry outcomes and the success count.
func (uc *fetchUseCase) FetchAll(ctx context.Context, job *model.FetchJob) (*model.FetchReport, error) {
	logger := ctxlog.From(ctx)
	job.ApplyDefaults()

	if err := os.MkdirAll(job.DestDir, 0755); err != nil {
		return nil, goerr.Wrap(err, "failed to create destination directory",
			goerr.V("dest_dir", job.DestDir),
		)
	}

	report := &model.FetchReport{}
	for _, entry := range job.Catalog.Models {
		result := uc.fetchOne(ctx, entry, job)
		report.Results = append(report.Results, result)

		if result.OK() {
			logger.Info("Downloaded model",
				"name", entry.Name,
				"path", result.Path,
				"size_mb", float64(result.Size)/(1024*1024),
			)
		} else {
			logger.Error("Failed to download model",
				"name", entry.Name,
				"url", entry.URL,
				"error", result.Err,
			)
		}
	}

	logger.Info("Model download summary",
		"succeeded", report.Succeeded(),
		"total", report.Total(),
	)

	return report, nil
}

// fetchOne downloads a single entry to a staging file and moves it into
// place only when it passes the size gate.
func (uc *fetchUseCase) fetchOne(ctx context.Context, entry model.CatalogEntry, job *model.FetchJob) model.FetchResult {
	result := model.FetchResult{
		Entry: entry,
		Path:  filepath.Join(job.DestDir, entry.File),
	}

	staging := result.Path + ".part-" + uuid.NewString()

	f, err := os.Create(staging)
	if err != nil {
		result.Err = goerr.Wrap(err, "failed to create staging file",
			goerr.T(types.TagFetchFailed),
			goerr.V("path", staging),
		)
		return result
	}

	size, err := uc.fetcher.Fetch(ctx, entry.URL, f)
	if closeErr := f.Close(); err == nil {
		err = closeErr
	}
	if err != nil {
		_ = os.Remove(staging)
		result.Err = goerr.Wrap(err, "failed to download model",
			goerr.T(types.TagFetchFailed),
			goerr.V("name", entry.Name),
			goerr.V("url", entry.URL),
		)
		return result
	}

	// The threshold is strict: a download of exactly MinSize bytes is
	// rejected.
	if size <= job.MinSize {
		_ = os.Remove(staging)
		result.Err = goerr.New("downloaded file too small, likely corrupted",
			goerr.T(types.TagFetchFailed),
			goerr.V("name", entry.Name),
			goerr.V("size", size),
			goerr.V("min_size", job.MinSize),
		)
		return result
	}

	if job.Verify {
		if err := model.ValidateTFLiteFile(staging); err != nil {
			_ = os.Remove(staging)
			result.Err = err
			return result
		}
	}

	if err := os.Rename(staging, result.Path); err != nil {
		_ = os.Remove(staging)
		result.Err = goerr.Wrap(err, "failed to move download into place",
			goerr.T(types.TagFetchFailed),
			goerr.V("path", result.Path),
		)
		return result
	}

	result.Size = size
	return result
}
