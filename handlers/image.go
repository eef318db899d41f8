package handlers

import (
	"bytes"
	"catalog/caption"
	"catalog/config"
	"catalog/db"
	"catalog/models"
	"catalog/processing"
	"catalog/storage"
	"catalog/utils"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type ImageFetchRequest struct {
	Size     uint `form:"size"`
	Download uint `form:"download"`
}

// parseColorField decodes an optional JSON form field, e.g. dominantColor=[255,0,0]
func parseColorField(c *gin.Context, name string, out any) error {
	v := strings.TrimSpace(c.PostForm(name))
	if v == "" || v == "null" {
		return nil
	}
	if err := json.Unmarshal([]byte(v), out); err != nil {
		return fmt.Errorf("%w: %s: %v", models.ErrValidation, name, err)
	}
	return nil
}

func ImageSave(c *gin.Context) {
	fileHeader, err := c.FormFile("image")
	if err != nil {
		c.JSON(http.StatusBadRequest, NoImageResponse)
		return
	}
	image := models.Image{}
	if err = parseColorField(c, "dominantColor", &image.DominantColor); err != nil {
		respondError(c, "ImageSave", err)
		return
	}
	if err = parseColorField(c, "colorPalette", &image.ColorPalette); err != nil {
		respondError(c, "ImageSave", err)
		return
	}
	file, err := fileHeader.Open()
	if err != nil {
		c.JSON(http.StatusBadRequest, NoImageResponse)
		return
	}
	data, err := io.ReadAll(file)
	file.Close()
	if err != nil {
		c.JSON(http.StatusBadRequest, NoImageResponse)
		return
	}
	image.MimeType = http.DetectContentType(data)
	if !strings.HasPrefix(image.MimeType, "image/") {
		c.JSON(http.StatusBadRequest, NotImageResponse)
		return
	}
	text := strings.TrimSpace(c.PostForm("caption"))
	if text == "" && caption.Enabled() {
		result, err := caption.Generate(fileHeader.Filename, bytes.NewReader(data))
		if err != nil {
			respondError(c, "ImageSave", err)
			return
		}
		text = strings.TrimSpace(result.Caption)
	}
	if text != "" {
		image.Caption = &text
	}

	image.Filename = uuid.NewString() + strings.ToLower(filepath.Ext(fileHeader.Filename))
	store := storage.GetDefaultStorage()
	if image.Size, err = store.Save(image.Filename, bytes.NewReader(data)); err != nil {
		log.Printf("ImageSave storage error: %v", err)
		c.JSON(http.StatusServiceUnavailable, StorageResponse)
		return
	}
	if err = models.CreateImage(db.Instance, &image); err != nil {
		if derr := store.Delete(image.Filename); derr != nil {
			log.Printf("ImageSave cleanup of %s failed: %v", image.Filename, derr)
		}
		respondError(c, "ImageSave", err)
		return
	}
	processing.Trigger()
	Broadcast(Event{Type: EventImageSaved, ID: image.ID})
	c.JSON(http.StatusOK, gin.H{
		"success":  true,
		"id":       image.ID,
		"filename": image.Filename,
		"caption":  image.CaptionText(),
	})
}

func ImageList(c *gin.Context) {
	images, err := models.ListImages(db.Instance)
	if err != nil {
		respondError(c, "ImageList", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"images": images})
}

func ImageInfo(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}
	image, err := models.GetImage(db.Instance, id)
	if err != nil {
		respondError(c, "ImageInfo", err)
		return
	}
	c.JSON(http.StatusOK, image)
}

// serveImage sends the original bytes, or a JPEG thumbnail when size is set
func serveImage(c *gin.Context, image *models.Image, r *ImageFetchRequest) {
	store := storage.GetDefaultStorage()
	if store.GetBucket().IsS3() {
		// Pre-signed URLs expire, don't let clients keep them for long
		c.Header("cache-control", "private, max-age=3600")
	} else {
		c.Header("cache-control", "public, max-age="+strconv.Itoa(utils.CacheWeek))
	}
	if r.Size > 0 {
		size := min(r.Size, uint(config.THUMB_SIZE))
		var buf bytes.Buffer
		if _, err := store.Load(image.Filename, &buf); err != nil {
			log.Printf("Image %d load error: %v", image.ID, err)
			c.JSON(http.StatusServiceUnavailable, StorageResponse)
			return
		}
		var thumb bytes.Buffer
		if _, err := utils.CreateThumb(size, &buf, &thumb); err != nil {
			log.Printf("Image %d thumb error: %v", image.ID, err)
			c.JSON(http.StatusInternalServerError, Response{err.Error()})
			return
		}
		c.Data(http.StatusOK, "image/jpeg", thumb.Bytes())
		return
	}
	if image.MimeType != "" {
		c.Header("content-type", image.MimeType)
	}
	if r.Download == 1 {
		c.Header("content-disposition", "attachment; filename=\""+image.Filename+"\"")
	}
	store.Serve(image.Filename, c.Request, c.Writer)
}

func ImageFetch(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}
	r := ImageFetchRequest{}
	if err := c.ShouldBindQuery(&r); err != nil {
		c.JSON(http.StatusBadRequest, Response{err.Error()})
		return
	}
	image, err := models.GetImage(db.Instance, id)
	if err != nil {
		respondError(c, "ImageFetch", err)
		return
	}
	serveImage(c, image, &r)
}

// UploadFetch serves by storage filename; only files known to the catalog are reachable
func UploadFetch(c *gin.Context) {
	r := ImageFetchRequest{}
	if err := c.ShouldBindQuery(&r); err != nil {
		c.JSON(http.StatusBadRequest, Response{err.Error()})
		return
	}
	image, err := models.GetImageByFilename(db.Instance, c.Param("filename"))
	if err != nil {
		respondError(c, "UploadFetch", err)
		return
	}
	serveImage(c, image, &r)
}
