package models

import (
	"strconv"

	"gorm.io/gorm"
)

// Membership is derived from Image.AlbumIDs only; there is no album/image relation table.
// SQL LIKE narrows the scan, but "1" also matches "[12]", so every candidate is
// checked with an exact AlbumIDSet.Contains before it counts as a member.

func membershipCandidates(tx *gorm.DB, albumID uint64) *gorm.DB {
	return tx.Model(&Image{}).
		Where("album_ids LIKE ?", "%"+strconv.FormatUint(albumID, 10)+"%").
		Order(imageRecencyOrder)
}

// ImagesInAlbum returns the members of an album, most recently uploaded first
func ImagesInAlbum(tx *gorm.DB, albumID uint64) ([]Image, error) {
	candidates := []Image{}
	if err := membershipCandidates(tx, albumID).Find(&candidates).Error; err != nil {
		return nil, storageError("images in album", err)
	}
	result := make([]Image, 0, len(candidates))
	for _, image := range candidates {
		if image.AlbumIDs.Contains(albumID) {
			result = append(result, image)
		}
	}
	return result, nil
}

// IsImageInAlbum is the single-image form of the membership check
func IsImageInAlbum(tx *gorm.DB, imageID, albumID uint64) (bool, error) {
	image, err := GetImage(tx, imageID)
	if err != nil {
		return false, err
	}
	return image.AlbumIDs.Contains(albumID), nil
}

// LatestImageInAlbum returns the member with the greatest UploadedAt (ties go to the
// higher id), or nil when the album has no members.
func LatestImageInAlbum(tx *gorm.DB, albumID uint64) (*Image, error) {
	rows, err := membershipCandidates(tx, albumID).Rows()
	if err != nil {
		return nil, storageError("latest image in album", err)
	}
	defer rows.Close()
	for rows.Next() {
		image := Image{}
		if err = tx.ScanRows(rows, &image); err != nil {
			return nil, storageError("latest image in album", err)
		}
		if image.AlbumIDs.Contains(albumID) {
			return &image, nil
		}
	}
	if err = rows.Err(); err != nil {
		return nil, storageError("latest image in album", err)
	}
	return nil, nil
}
