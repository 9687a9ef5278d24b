package usecase_test

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/gt"

	"github.com/faceforge/faceforge/pkg/domain/model"
	"github.com/faceforge/faceforge/pkg/domain/types"
	"github.com/faceforge/faceforge/pkg/usecase"
)

// MockFetcher is a mock implementation of interfaces.Fetcher
type MockFetcher struct {
	fetchFunc func(ctx context.Context, url string, w io.Writer) (int64, error)
	calls     []string
}

func (m *MockFetcher) Fetch(ctx context.Context, url string, w io.Writer) (int64, error) {
	m.calls = append(m.calls, url)
	if m.fetchFunc != nil {
		return m.fetchFunc(ctx, url, w)
	}
	return 0, goerr.New("mock not configured")
}

func writePayload(w io.Writer, size int) (int64, error) {
	n, err := w.Write([]byte(strings.Repeat("x", size)))
	return int64(n), err
}

func testCatalog() model.Catalog {
	return model.Catalog{Models: []model.CatalogEntry{
		{Name: "Model A", URL: "https://example.com/a.tflite", File: "a.tflite"},
		{Name: "Model B", URL: "https://example.com/b.tflite", File: "b.tflite"},
		{Name: "Model C", URL: "https://example.com/c.tflite", File: "c.tflite"},
	}}
}

func TestFetchAll_Success(t *testing.T) {
	ctx := context.Background()
	destDir := t.TempDir()

	mock := &MockFetcher{
		fetchFunc: func(ctx context.Context, url string, w io.Writer) (int64, error) {
			return writePayload(w, 256)
		},
	}

	uc := usecase.NewFetch(mock)
	report, err := uc.FetchAll(ctx, &model.FetchJob{
		DestDir: destDir,
		Catalog: testCatalog(),
		MinSize: 100,
	})
	gt.NoError(t, err)
	gt.Number(t, report.Succeeded()).Equal(3)
	gt.Number(t, report.Total()).Equal(3)
	gt.Number(t, len(mock.calls)).Equal(3)

	for _, result := range report.Results {
		gt.NoError(t, result.Err)
		info, err := os.Stat(result.Path)
		gt.NoError(t, err)
		gt.Value(t, info.Size()).Equal(int64(256))
	}
}

func TestFetchAll_UndersizedDownloadRejected(t *testing.T) {
	ctx := context.Background()
	destDir := t.TempDir()

	mock := &MockFetcher{
		fetchFunc: func(ctx context.Context, url string, w io.Writer) (int64, error) {
			if strings.Contains(url, "b.tflite") {
				// Error page instead of a model
				return writePayload(w, 10)
			}
			return writePayload(w, 256)
		},
	}

	uc := usecase.NewFetch(mock)
	report, err := uc.FetchAll(ctx, &model.FetchJob{
		DestDir: destDir,
		Catalog: testCatalog(),
		MinSize: 100,
	})
	gt.NoError(t, err)

	// The undersized entry fails, the rest are still attempted and accepted
	gt.Number(t, report.Succeeded()).Equal(2)
	gt.Number(t, report.Total()).Equal(3)

	failed := report.Results[1]
	gt.Error(t, failed.Err)
	gt.Value(t, goerr.HasTag(failed.Err, types.TagFetchFailed)).Equal(true)
	gt.String(t, failed.Err.Error()).Contains("too small")

	// The rejected file is removed, not left behind
	_, statErr := os.Stat(filepath.Join(destDir, "b.tflite"))
	gt.Value(t, os.IsNotExist(statErr)).Equal(true)
}

func TestFetchAll_SizeThresholdIsStrict(t *testing.T) {
	ctx := context.Background()
	destDir := t.TempDir()

	// Exactly the threshold must be rejected; one byte more is accepted.
	mock := &MockFetcher{
		fetchFunc: func(ctx context.Context, url string, w io.Writer) (int64, error) {
			if strings.Contains(url, "a.tflite") {
				return writePayload(w, 100)
			}
			return writePayload(w, 101)
		},
	}

	uc := usecase.NewFetch(mock)
	report, err := uc.FetchAll(ctx, &model.FetchJob{
		DestDir: destDir,
		Catalog: testCatalog(),
		MinSize: 100,
	})
	gt.NoError(t, err)
	gt.Number(t, report.Succeeded()).Equal(2)

	exact := report.Results[0]
	gt.Error(t, exact.Err)
	gt.Value(t, goerr.HasTag(exact.Err, types.TagFetchFailed)).Equal(true)
	gt.String(t, exact.Err.Error()).Contains("too small")
	_, statErr := os.Stat(filepath.Join(destDir, "a.tflite"))
	gt.Value(t, os.IsNotExist(statErr)).Equal(true)

	info, err := os.Stat(filepath.Join(destDir, "b.tflite"))
	gt.NoError(t, err)
	gt.Value(t, info.Size()).Equal(int64(101))
}

func TestFetchAll_DownloadErrorDoesNotBlockOthers(t *testing.T) {
	ctx := context.Background()
	destDir := t.TempDir()

	mock := &MockFetcher{
		fetchFunc: func(ctx context.Context, url string, w io.Writer) (int64, error) {
			if strings.Contains(url, "a.tflite") {
				return 0, goerr.New("connection refused")
			}
			return writePayload(w, 256)
		},
	}

	uc := usecase.NewFetch(mock)
	report, err := uc.FetchAll(ctx, &model.FetchJob{
		DestDir: destDir,
		Catalog: testCatalog(),
		MinSize: 100,
	})
	gt.NoError(t, err)
	gt.Number(t, report.Succeeded()).Equal(2)
	gt.Number(t, len(mock.calls)).Equal(3)

	_, statErr := os.Stat(filepath.Join(destDir, "a.tflite"))
	gt.Value(t, os.IsNotExist(statErr)).Equal(true)
}

func TestFetchAll_AllFail(t *testing.T) {
	ctx := context.Background()

	mock := &MockFetcher{
		fetchFunc: func(ctx context.Context, url string, w io.Writer) (int64, error) {
			return 0, goerr.New("unreachable")
		},
	}

	uc := usecase.NewFetch(mock)
	report, err := uc.FetchAll(ctx, &model.FetchJob{
		DestDir: t.TempDir(),
		Catalog: testCatalog(),
		MinSize: 100,
	})
	gt.NoError(t, err)
	gt.Number(t, report.Succeeded()).Equal(0)
	gt.Number(t, report.Total()).Equal(3)
}

func TestFetchAll_VerifyHeader(t *testing.T) {
	ctx := context.Background()
	destDir := t.TempDir()

	mock := &MockFetcher{
		fetchFunc: func(ctx context.Context, url string, w io.Writer) (int64, error) {
			if strings.Contains(url, "a.tflite") {
				// Big enough but not a TFLite file
				return writePayload(w, 256)
			}
			buf := fakeModel(strings.Repeat("x", 256))
			n, err := w.Write(buf)
			return int64(n), err
		},
	}

	uc := usecase.NewFetch(mock)
	report, err := uc.FetchAll(ctx, &model.FetchJob{
		DestDir: destDir,
		Catalog: testCatalog(),
		MinSize: 100,
		Verify:  true,
	})
	gt.NoError(t, err)
	gt.Number(t, report.Succeeded()).Equal(2)

	failed := report.Results[0]
	gt.Error(t, failed.Err)
	gt.Value(t, goerr.HasTag(failed.Err, types.TagInvalidModel)).Equal(true)
}

func TestFetchAll_NoStagingLeftovers(t *testing.T) {
	ctx := context.Background()
	destDir := t.TempDir()

	mock := &MockFetcher{
		fetchFunc: func(ctx context.Context, url string, w io.Writer) (int64, error) {
			if strings.Contains(url, "c.tflite") {
				return writePayload(w, 10)
			}
			return writePayload(w, 256)
		},
	}

	uc := usecase.NewFetch(mock)
	_, err := uc.FetchAll(ctx, &model.FetchJob{
		DestDir: destDir,
		Catalog: testCatalog(),
		MinSize: 100,
	})
	gt.NoError(t, err)

	entries, err := os.ReadDir(destDir)
	gt.NoError(t, err)
	for _, entry := range entries {
		gt.Value(t, strings.Contains(entry.Name(), ".part-")).Equal(false)
	}
}

func TestFetchAll_DefaultsApplied(t *testing.T) {
	job := &model.FetchJob{DestDir: t.TempDir()}
	job.ApplyDefaults()

	gt.Number(t, len(job.Catalog.Models)).Equal(3)
	gt.Value(t, job.MinSize).Equal(int64(model.MinModelSize))
	gt.Value(t, job.Catalog.Models[0].Name).Equal("MobileNetV1")
}
