package models

import (
	"catalog/db"
	"path/filepath"
	"testing"
)

func setupTestDB(t *testing.T) {
	t.Helper()
	instance, err := db.OpenSQLite(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("OpenSQLite: %v", err)
	}
	db.Instance = instance
	if err = Init(); err != nil {
		t.Fatalf("Init: %v", err)
	}
	t.Cleanup(func() {
		if sqlDB, err := instance.DB(); err == nil {
			sqlDB.Close()
		}
	})
}

func createTestImage(t *testing.T, filename string, uploadedAt int64, albumIDs ...uint64) *Image {
	t.Helper()
	caption := "caption of " + filename
	image := Image{
		Filename:   filename,
		Caption:    &caption,
		UploadedAt: uploadedAt,
		AlbumIDs:   AlbumIDSet(albumIDs),
	}
	if err := CreateImage(db.Instance, &image); err != nil {
		t.Fatalf("CreateImage(%s): %v", filename, err)
	}
	return &image
}

func reloadImage(t *testing.T, id uint64) *Image {
	t.Helper()
	image, err := GetImage(db.Instance, id)
	if err != nil {
		t.Fatalf("GetImage(%d): %v", id, err)
	}
	return image
}

func countAlbums(t *testing.T) int64 {
	t.Helper()
	count, err := CountAlbums(db.Instance)
	if err != nil {
		t.Fatalf("CountAlbums: %v", err)
	}
	return count
}
