package handlers

import (
	"catalog/caption"
	"catalog/embedding"
	"catalog/models"
	"errors"
	"log"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
)

type Response struct {
	Error string `json:"error"`
}

var (
	// Predefined errors
	NoImageResponse   = Response{"image file is required"}
	BadIDResponse     = Response{"invalid id"}
	NotImageResponse  = Response{"uploaded file is not an image"}
	StorageResponse   = Response{"storage unavailable"}
	UpstreamResponse  = Response{"upstream service failed"}
	EmptyQueryRespose = Response{"no search query provided"}
)

// respondError maps the error classes of the models and the remote services to HTTP
func respondError(c *gin.Context, where string, err error) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, models.ErrValidation):
		status = http.StatusBadRequest
	case errors.Is(err, models.ErrNotFound):
		status = http.StatusNotFound
	case errors.Is(err, models.ErrTransaction):
		status = http.StatusInternalServerError
	case errors.Is(err, models.ErrStorage):
		status = http.StatusServiceUnavailable
	case errors.Is(err, caption.ErrService), errors.Is(err, embedding.ErrService):
		status = http.StatusBadGateway
	}
	if status >= 500 {
		log.Printf("%s error: %v", where, err)
	}
	c.JSON(status, Response{err.Error()})
}

func paramID(c *gin.Context) (uint64, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		c.JSON(http.StatusBadRequest, BadIDResponse)
		return 0, false
	}
	return id, true
}
