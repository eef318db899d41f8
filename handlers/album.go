package handlers

import (
	"catalog/db"
	"catalog/models"
	"catalog/utils"
	"net/http"

	"github.com/gin-gonic/gin"
)

type AlbumCreateRequest struct {
	Name         string   `json:"name"`
	Description  string   `json:"description"`
	ImageIDs     []uint64 `json:"imageIds"`
	CoverImageID *uint64  `json:"coverImageId"`
}

type AlbumInfo struct {
	ID           uint64  `json:"id"`
	Name         string  `json:"name"`
	Description  string  `json:"description"`
	Subtitle     string  `json:"subtitle,omitempty"`
	ImageCount   int     `json:"imageCount"`
	CoverImageID *uint64 `json:"coverImageId"`
	CoverImage   *string `json:"coverImage"` // filename of the cover
	CreatedAt    int64   `json:"createdAt"`
}

type AlbumCoverRequest struct {
	ImageID uint64 `json:"imageId" binding:"required"`
}

func albumInfo(album *models.Album, cover *models.Image) AlbumInfo {
	info := AlbumInfo{
		ID:          album.ID,
		Name:        album.Name,
		Description: album.Description,
		ImageCount:  album.ImageCount,
		CreatedAt:   album.CreatedAt,
	}
	if cover != nil {
		info.CoverImageID = &cover.ID
		info.CoverImage = &cover.Filename
	}
	return info
}

func AlbumCreate(c *gin.Context) {
	r := AlbumCreateRequest{}
	if err := c.ShouldBindJSON(&r); err != nil {
		c.JSON(http.StatusBadRequest, Response{err.Error()})
		return
	}
	album, err := models.CreateAlbum(r.Name, r.Description, r.ImageIDs, r.CoverImageID)
	if err != nil {
		respondError(c, "AlbumCreate", err)
		return
	}
	Broadcast(Event{Type: EventAlbumCreated, ID: album.ID})
	c.JSON(http.StatusOK, gin.H{
		"success":    true,
		"albumId":    album.ID,
		"imageCount": album.ImageCount,
	})
}

func AlbumList(c *gin.Context) {
	albums, err := models.ListAlbums(db.Instance)
	if err != nil {
		respondError(c, "AlbumList", err)
		return
	}
	result := make([]AlbumInfo, 0, len(albums))
	for i := range albums {
		cover, err := models.ResolveCover(albums[i].ID)
		if err != nil {
			respondError(c, "AlbumList", err)
			return
		}
		result = append(result, albumInfo(&albums[i], cover))
	}
	c.JSON(http.StatusOK, result)
}

func AlbumDetail(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}
	album, err := models.GetAlbum(db.Instance, id)
	if err != nil {
		respondError(c, "AlbumDetail", err)
		return
	}
	images, err := models.ImagesInAlbum(db.Instance, id)
	if err != nil {
		respondError(c, "AlbumDetail", err)
		return
	}
	cover, err := models.ResolveCover(id)
	if err != nil {
		respondError(c, "AlbumDetail", err)
		return
	}
	info := albumInfo(album, cover)
	if len(images) > 0 {
		// Ordered newest first
		info.Subtitle = utils.GetDatesString(images[len(images)-1].UploadedAt, images[0].UploadedAt)
	}
	c.JSON(http.StatusOK, gin.H{"album": info, "images": images})
}

func AlbumCover(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}
	cover, err := models.ResolveCover(id)
	if err != nil {
		respondError(c, "AlbumCover", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"albumId": id, "cover": cover})
}

func AlbumSetCover(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}
	r := AlbumCoverRequest{}
	if err := c.ShouldBindJSON(&r); err != nil {
		c.JSON(http.StatusBadRequest, Response{err.Error()})
		return
	}
	album, err := models.SetAlbumCover(id, r.ImageID)
	if err != nil {
		respondError(c, "AlbumSetCover", err)
		return
	}
	Broadcast(Event{Type: EventAlbumUpdated, ID: album.ID})
	c.JSON(http.StatusOK, gin.H{
		"success":      true,
		"albumId":      album.ID,
		"coverImageId": album.CoverImageID,
		"imageCount":   album.ImageCount,
	})
}
