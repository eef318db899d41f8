package models

import (
	"catalog/db"
	"errors"
	"fmt"
	"strings"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// uniqueIDs drops repeated ids, keeping first occurrences in order
func uniqueIDs(ids []uint64) []uint64 {
	seen := make(map[uint64]bool, len(ids))
	result := make([]uint64, 0, len(ids))
	for _, id := range ids {
		if seen[id] {
			continue
		}
		seen[id] = true
		result = append(result, id)
	}
	return result
}

// lockImages loads the given images. On MySQL the rows stay locked until the
// transaction ends, so concurrent read-modify-writes of AlbumIDs cannot lose updates.
// SQLite gets the same guarantee from its single serialized connection.
func lockImages(tx *gorm.DB, ids []uint64) ([]Image, error) {
	q := tx
	if db.IsMySQL(tx) {
		q = q.Clauses(clause.Locking{Strength: "UPDATE"})
	}
	images := []Image{}
	// Ordered by id so that overlapping creations lock rows in the same order
	if err := q.Where("id IN ?", ids).Order("id").Find(&images).Error; err != nil {
		return nil, err
	}
	return images, nil
}

func missingIDs(ids []uint64, images []Image) []string {
	found := make(map[uint64]bool, len(images))
	for _, image := range images {
		found[image.ID] = true
	}
	missing := []string{}
	for _, id := range ids {
		if !found[id] {
			missing = append(missing, fmt.Sprint(id))
		}
	}
	return missing
}

// CreateAlbum creates an album from existing images and records the new album in every
// image's AlbumIDs, all in one database transaction. Repeated ids count once.
// The cover is coverImageID when it is one of imageIDs, otherwise the first image.
func CreateAlbum(name, description string, imageIDs []uint64, coverImageID *uint64) (*Album, error) {
	if strings.TrimSpace(name) == "" {
		return nil, fmt.Errorf("%w: album name is required", ErrValidation)
	}
	ids := uniqueIDs(imageIDs)
	if len(ids) == 0 {
		return nil, fmt.Errorf("%w: at least one image is required", ErrValidation)
	}
	cover := ids[0]
	if coverImageID != nil {
		for _, id := range ids {
			if id == *coverImageID {
				cover = id
				break
			}
		}
	}

	var album *Album
	err := db.Instance.Transaction(func(tx *gorm.DB) error {
		images, err := lockImages(tx, ids)
		if err != nil {
			return storageError("load images", err)
		}
		if missing := missingIDs(ids, images); len(missing) > 0 {
			return fmt.Errorf("%w: unknown image ids: %s", ErrValidation, strings.Join(missing, ", "))
		}
		album, err = InsertAlbum(tx, name, description, len(ids), &cover)
		if err != nil {
			if errors.Is(err, ErrValidation) {
				return err
			}
			return fmt.Errorf("%w: %w", ErrTransaction, err)
		}
		for _, image := range images {
			albumIDs, added := image.AlbumIDs.With(album.ID)
			if !added {
				continue
			}
			if err = UpdateImageAlbums(tx, image.ID, albumIDs); err != nil {
				return fmt.Errorf("%w: image %d: %w", ErrTransaction, image.ID, err)
			}
		}
		return nil
	})
	if err != nil {
		if errors.Is(err, ErrValidation) || errors.Is(err, ErrTransaction) || errors.Is(err, ErrStorage) {
			return nil, err
		}
		// Begin or commit failed
		return nil, fmt.Errorf("%w: %v", ErrTransaction, err)
	}
	return album, nil
}
