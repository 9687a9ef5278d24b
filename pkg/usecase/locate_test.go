package usecase_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/gt"

	"github.com/faceforge/faceforge/pkg/domain/model"
	"github.com/faceforge/faceforge/pkg/domain/types"
	"github.com/faceforge/faceforge/pkg/usecase"
)

func writeMarker(t *testing.T, dir string) {
	t.Helper()
	gt.NoError(t, os.MkdirAll(dir, 0755))
	gt.NoError(t, os.WriteFile(filepath.Join(dir, model.MarkerFile), []byte("pb"), 0644))
}

func TestLocateModel_ExplicitDir(t *testing.T) {
	dir := t.TempDir()
	writeMarker(t, dir)

	job := &model.ConvertJob{ModelDir: dir}
	found, err := usecase.LocateModel(job)
	gt.NoError(t, err)
	gt.Value(t, found).Equal(dir)
}

func TestLocateModel_ExplicitDirWithoutMarker(t *testing.T) {
	job := &model.ConvertJob{ModelDir: t.TempDir()}
	_, err := usecase.LocateModel(job)
	gt.Error(t, err)
	gt.Value(t, goerr.HasTag(err, types.TagModelNotFound)).Equal(true)
}

func TestLocateModel_AssetsRoot(t *testing.T) {
	assets := t.TempDir()
	writeMarker(t, assets)

	job := &model.ConvertJob{AssetsDir: assets, SearchName: "facenet"}
	found, err := usecase.LocateModel(job)
	gt.NoError(t, err)
	gt.Value(t, found).Equal(assets)
}

func TestLocateModel_SubdirectoryScan(t *testing.T) {
	assets := t.TempDir()
	gt.NoError(t, os.MkdirAll(filepath.Join(assets, "other_model"), 0755))
	gt.NoError(t, os.MkdirAll(filepath.Join(assets, "FaceNet_20180402"), 0755))

	job := &model.ConvertJob{AssetsDir: assets, SearchName: "facenet"}
	found, err := usecase.LocateModel(job)
	gt.NoError(t, err)
	gt.Value(t, found).Equal(filepath.Join(assets, "FaceNet_20180402"))
}

func TestLocateModel_IgnoresPlainFiles(t *testing.T) {
	assets := t.TempDir()
	// A file whose name matches must not be treated as a model directory
	gt.NoError(t, os.WriteFile(filepath.Join(assets, "facenet.txt"), []byte("x"), 0644))

	job := &model.ConvertJob{AssetsDir: assets, SearchName: "facenet"}
	_, err := usecase.LocateModel(job)
	gt.Error(t, err)
	gt.Value(t, goerr.HasTag(err, types.TagModelNotFound)).Equal(true)
}

func TestLocateModel_NothingFound(t *testing.T) {
	job := &model.ConvertJob{AssetsDir: t.TempDir(), SearchName: "facenet"}
	_, err := usecase.LocateModel(job)
	gt.Error(t, err)
	gt.Value(t, goerr.HasTag(err, types.TagModelNotFound)).Equal(true)
}

func TestLocateModel_MissingAssetsDir(t *testing.T) {
	job := &model.ConvertJob{
		AssetsDir:  filepath.Join(t.TempDir(), "does-not-exist"),
		SearchName: "facenet",
	}
	_, err := usecase.LocateModel(job)
	gt.Error(t, err)
	gt.Value(t, goerr.HasTag(err, types.TagModelNotFound)).Equal(true)
}
