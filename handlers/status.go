package handlers

import (
	"catalog/db"
	"catalog/models"
	"catalog/storage"
	"net/http"

	"github.com/gin-gonic/gin"
)

type StatusResponse struct {
	Images    int64  `json:"images"`
	Albums    int64  `json:"albums"`
	FreeSpace uint64 `json:"free_space"`
	Storage   string `json:"storage"`
}

func Status(c *gin.Context) {
	images, err := models.CountImages(db.Instance)
	if err != nil {
		respondError(c, "Status", err)
		return
	}
	albums, err := models.CountAlbums(db.Instance)
	if err != nil {
		respondError(c, "Status", err)
		return
	}
	store := storage.GetDefaultStorage()
	kind := "file"
	if store.GetBucket().IsS3() {
		kind = "s3"
	}
	c.JSON(http.StatusOK, StatusResponse{
		Images:    images,
		Albums:    albums,
		FreeSpace: store.GetFreeSpace(),
		Storage:   kind,
	})
}
