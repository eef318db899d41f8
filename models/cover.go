package models

import (
	"catalog/db"
	"errors"
	"fmt"
	"log"

	"gorm.io/gorm"
)

// ResolveCover picks the image shown for an album: the explicit cover while it still
// exists, otherwise the most recently uploaded member. A derived cover is written back
// to the album; that write is best-effort and never fails the read.
// Returns nil (and no error) for an album without any resolvable member.
func ResolveCover(albumID uint64) (*Image, error) {
	album, err := GetAlbum(db.Instance, albumID)
	if err != nil {
		return nil, err
	}
	if album.CoverImageID != nil {
		image, err := GetImage(db.Instance, *album.CoverImageID)
		if err == nil {
			return image, nil
		}
		if !errors.Is(err, ErrNotFound) {
			return nil, err
		}
	}
	latest, err := LatestImageInAlbum(db.Instance, albumID)
	if err != nil || latest == nil {
		return nil, err
	}
	if err = UpdateAlbumCover(db.Instance, albumID, latest.ID); err != nil {
		log.Printf("ResolveCover: album %d, cover write-back error: %v", albumID, err)
	}
	return latest, nil
}

// SetAlbumCover explicitly assigns the cover of an album. An image that is not yet a
// member joins the album, and the cached ImageCount follows.
func SetAlbumCover(albumID, imageID uint64) (*Album, error) {
	var album *Album
	err := db.Instance.Transaction(func(tx *gorm.DB) error {
		var err error
		if album, err = GetAlbum(tx, albumID); err != nil {
			return err
		}
		images, err := lockImages(tx, []uint64{imageID})
		if err != nil {
			return storageError("load image", err)
		}
		if len(images) == 0 {
			return fmt.Errorf("%w: image %d", ErrNotFound, imageID)
		}
		if albumIDs, added := images[0].AlbumIDs.With(albumID); added {
			if err = UpdateImageAlbums(tx, imageID, albumIDs); err != nil {
				return fmt.Errorf("%w: image %d: %w", ErrTransaction, imageID, err)
			}
			err = tx.Model(&Album{}).Where("id = ?", albumID).
				UpdateColumn("image_count", gorm.Expr("image_count + 1")).Error
			if err != nil {
				return fmt.Errorf("%w: album %d count: %w", ErrTransaction, albumID, storageError("update count", err))
			}
			album.ImageCount++
		}
		if err = UpdateAlbumCover(tx, albumID, imageID); err != nil {
			return fmt.Errorf("%w: %w", ErrTransaction, err)
		}
		album.CoverImageID = &imageID
		return nil
	})
	if err != nil {
		if errors.Is(err, ErrNotFound) || errors.Is(err, ErrTransaction) || errors.Is(err, ErrStorage) {
			return nil, err
		}
		return nil, fmt.Errorf("%w: %v", ErrTransaction, err)
	}
	return album, nil
}
