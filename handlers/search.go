package handlers

import (
	"bytes"
	"catalog/embedding"
	"catalog/models"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

type SearchRequest struct {
	Query string `json:"query"`
}

type ColorSearchRequest struct {
	Color []int `json:"color"`
}

func searchResults(c *gin.Context, where string, results []embedding.Result, err error) {
	if err != nil {
		respondError(c, where, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"results": results})
}

func textQuery(c *gin.Context) (string, bool) {
	r := SearchRequest{}
	if err := c.ShouldBindJSON(&r); err != nil {
		c.JSON(http.StatusBadRequest, Response{err.Error()})
		return "", false
	}
	r.Query = strings.TrimSpace(r.Query)
	if r.Query == "" {
		c.JSON(http.StatusBadRequest, EmptyQueryRespose)
		return "", false
	}
	return r.Query, true
}

func SearchSemantic(c *gin.Context) {
	if query, ok := textQuery(c); ok {
		results, err := embedding.SearchText(query)
		searchResults(c, "SearchSemantic", results, err)
	}
}

func SearchMultimodal(c *gin.Context) {
	if query, ok := textQuery(c); ok {
		results, err := embedding.SearchMultimodal(query)
		searchResults(c, "SearchMultimodal", results, err)
	}
}

func SearchColor(c *gin.Context) {
	r := ColorSearchRequest{}
	if err := c.ShouldBindJSON(&r); err != nil {
		c.JSON(http.StatusBadRequest, Response{err.Error()})
		return
	}
	if len(r.Color) != 3 {
		respondError(c, "SearchColor", fmt.Errorf("%w: color must be [r, g, b]", models.ErrValidation))
		return
	}
	for _, v := range r.Color {
		if v < 0 || v > 255 {
			respondError(c, "SearchColor", fmt.Errorf("%w: color component %d out of range", models.ErrValidation, v))
			return
		}
	}
	results, err := embedding.SearchColor(r.Color)
	searchResults(c, "SearchColor", results, err)
}

func SearchImage(c *gin.Context) {
	fileHeader, err := c.FormFile("image")
	if err != nil {
		c.JSON(http.StatusBadRequest, NoImageResponse)
		return
	}
	file, err := fileHeader.Open()
	if err != nil {
		c.JSON(http.StatusBadRequest, NoImageResponse)
		return
	}
	defer file.Close()
	data, err := io.ReadAll(file)
	if err != nil {
		c.JSON(http.StatusBadRequest, NoImageResponse)
		return
	}
	if !strings.HasPrefix(http.DetectContentType(data), "image/") {
		c.JSON(http.StatusBadRequest, NotImageResponse)
		return
	}
	results, err := embedding.SearchImage(fileHeader.Filename, bytes.NewReader(data))
	searchResults(c, "SearchImage", results, err)
}
