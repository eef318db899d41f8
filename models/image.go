package models

import (
	"errors"
	"fmt"
	"strings"

	"gorm.io/gorm"
)

type Image struct {
	ID            uint64     `gorm:"primaryKey" json:"id"`
	Filename      string     `gorm:"type:varchar(300);uniqueIndex;not null" json:"filename"`
	Caption       *string    `gorm:"type:text" json:"caption"`
	DominantColor []int      `gorm:"serializer:json;type:text" json:"dominantColor"`
	ColorPalette  [][]int    `gorm:"serializer:json;type:text" json:"colorPalette"`
	MimeType      string     `gorm:"type:varchar(50)" json:"mimeType"`
	Size          int64      `json:"size"`
	AlbumIDs      AlbumIDSet `gorm:"not null" json:"albumIds"`
	Indexed       bool       `gorm:"not null;default:false;index" json:"-"`
	UploadedAt    int64      `gorm:"autoCreateTime:milli;index" json:"uploadedAt"` // Unix millis
}

const imageRecencyOrder = "uploaded_at DESC, id DESC"

func (i *Image) BeforeCreate(tx *gorm.DB) error {
	i.Filename = strings.TrimSpace(i.Filename)
	if i.Filename == "" {
		return fmt.Errorf("%w: image filename is empty", ErrValidation)
	}
	if i.AlbumIDs == nil {
		i.AlbumIDs = AlbumIDSet{}
	}
	return nil
}

// CaptionText is the caption or an empty string when there is none
func (i *Image) CaptionText() string {
	if i.Caption == nil {
		return ""
	}
	return *i.Caption
}

func storageError(what string, err error) error {
	if errors.Is(err, ErrValidation) || errors.Is(err, ErrNotFound) {
		return err
	}
	return fmt.Errorf("%w: %s: %v", ErrStorage, what, err)
}

func CreateImage(tx *gorm.DB, image *Image) error {
	if err := tx.Create(image).Error; err != nil {
		return storageError("create image", err)
	}
	return nil
}

func GetImage(tx *gorm.DB, id uint64) (*Image, error) {
	image := Image{}
	err := tx.First(&image, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("%w: image %d", ErrNotFound, id)
	}
	if err != nil {
		return nil, storageError("get image", err)
	}
	return &image, nil
}

func GetImageByFilename(tx *gorm.DB, filename string) (*Image, error) {
	image := Image{}
	err := tx.Where("filename = ?", filename).First(&image).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("%w: image %q", ErrNotFound, filename)
	}
	if err != nil {
		return nil, storageError("get image", err)
	}
	return &image, nil
}

// ListImages returns all images, most recently uploaded first
func ListImages(tx *gorm.DB) ([]Image, error) {
	images := []Image{}
	if err := tx.Order(imageRecencyOrder).Find(&images).Error; err != nil {
		return nil, storageError("list images", err)
	}
	return images, nil
}

// UpdateImageAlbums replaces the membership set of an image; nothing else on the row changes
func UpdateImageAlbums(tx *gorm.DB, id uint64, albumIDs AlbumIDSet) error {
	if albumIDs == nil {
		albumIDs = AlbumIDSet{}
	}
	result := tx.Model(&Image{}).Where("id = ?", id).UpdateColumn("album_ids", albumIDs)
	if result.Error != nil {
		return storageError("update image albums", result.Error)
	}
	if result.RowsAffected == 0 {
		// MySQL reports 0 for unchanged rows, so confirm the row is really missing
		var count int64
		if err := tx.Model(&Image{}).Where("id = ?", id).Count(&count).Error; err != nil {
			return storageError("update image albums", err)
		}
		if count == 0 {
			return fmt.Errorf("%w: image %d", ErrNotFound, id)
		}
	}
	return nil
}

func MarkImageIndexed(tx *gorm.DB, id uint64, indexed bool) error {
	if err := tx.Model(&Image{}).Where("id = ?", id).UpdateColumn("indexed", indexed).Error; err != nil {
		return storageError("mark image indexed", err)
	}
	return nil
}

// PendingIndexImages returns up to limit images with id > afterID that have not been
// sent to the search index yet
func PendingIndexImages(tx *gorm.DB, afterID uint64, limit int) ([]Image, error) {
	images := []Image{}
	if err := tx.Where("indexed = ? AND id > ?", false, afterID).Order("id").Limit(limit).Find(&images).Error; err != nil {
		return nil, storageError("pending images", err)
	}
	return images, nil
}

func CountImages(tx *gorm.DB) (count int64, err error) {
	if err = tx.Model(&Image{}).Count(&count).Error; err != nil {
		err = storageError("count images", err)
	}
	return
}

// ResetIndexed queues every image for re-indexing
func ResetIndexed(tx *gorm.DB) (int64, error) {
	result := tx.Model(&Image{}).Where("indexed = ?", true).UpdateColumn("indexed", false)
	if result.Error != nil {
		return 0, storageError("reset indexed", result.Error)
	}
	return result.RowsAffected, nil
}
