package models

import (
	"errors"
	"fmt"
	"strings"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type Album struct {
	ID           uint64  `gorm:"primaryKey" json:"id"`
	Name         string  `gorm:"type:varchar(300);not null" json:"name"`
	Description  string  `gorm:"type:text" json:"description"`
	CoverImageID *uint64 `json:"coverImageId"`
	CoverImage   *Image  `gorm:"constraint:OnUpdate:CASCADE,OnDelete:SET NULL;" json:"-"`
	// ImageCount caches the number of images listing this album in their AlbumIDs
	ImageCount int   `gorm:"not null;default:0" json:"imageCount"`
	CreatedAt  int64 `gorm:"autoCreateTime:milli;index" json:"createdAt"` // Unix millis
}

func (a *Album) BeforeSave(tx *gorm.DB) error {
	a.Name = strings.TrimSpace(a.Name)
	a.Description = strings.TrimSpace(a.Description)
	if a.Name == "" {
		return fmt.Errorf("%w: album name is required", ErrValidation)
	}
	return nil
}

// InsertAlbum writes a single album row. Membership is not touched, see CreateAlbum for that
func InsertAlbum(tx *gorm.DB, name, description string, initialCount int, coverImageID *uint64) (*Album, error) {
	album := Album{
		Name:         name,
		Description:  description,
		ImageCount:   initialCount,
		CoverImageID: coverImageID,
	}
	if err := tx.Omit(clause.Associations).Create(&album).Error; err != nil {
		return nil, storageError("insert album", err)
	}
	return &album, nil
}

func GetAlbum(tx *gorm.DB, id uint64) (*Album, error) {
	album := Album{}
	err := tx.First(&album, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("%w: album %d", ErrNotFound, id)
	}
	if err != nil {
		return nil, storageError("get album", err)
	}
	return &album, nil
}

// ListAlbums returns all albums, newest first
func ListAlbums(tx *gorm.DB) ([]Album, error) {
	albums := []Album{}
	if err := tx.Order("created_at DESC, id DESC").Find(&albums).Error; err != nil {
		return nil, storageError("list albums", err)
	}
	return albums, nil
}

func UpdateAlbumCover(tx *gorm.DB, id, imageID uint64) error {
	result := tx.Model(&Album{}).Where("id = ?", id).UpdateColumn("cover_image_id", imageID)
	if result.Error != nil {
		return storageError("update album cover", result.Error)
	}
	if result.RowsAffected == 0 {
		var count int64
		if err := tx.Model(&Album{}).Where("id = ?", id).Count(&count).Error; err != nil {
			return storageError("update album cover", err)
		}
		if count == 0 {
			return fmt.Errorf("%w: album %d", ErrNotFound, id)
		}
	}
	return nil
}

func CountAlbums(tx *gorm.DB) (count int64, err error) {
	if err = tx.Model(&Album{}).Count(&count).Error; err != nil {
		err = storageError("count albums", err)
	}
	return
}
