package handlers

import (
	"catalog/utils"

	"github.com/gin-gonic/gin"
)

// RegisterRoutes wires every catalog endpoint to the router
func RegisterRoutes(router *gin.Engine) {
	noCache := utils.CacheFor(utils.CacheNoCache)
	custom := utils.CacheFor(utils.CacheCustom)

	router.GET("/status", noCache, Status)
	router.GET("/ws", WebSocket)

	// Images
	router.POST("/save-image", noCache, ImageSave)
	router.GET("/images", noCache, ImageList)
	router.GET("/images/:id", custom, ImageFetch)
	router.GET("/images/:id/info", noCache, ImageInfo)
	router.GET("/uploads/:filename", custom, UploadFetch)

	// Albums
	router.POST("/create-album", noCache, AlbumCreate)
	router.GET("/albums", noCache, AlbumList)
	router.GET("/albums/:id", noCache, AlbumDetail)
	router.GET("/albums/:id/cover", noCache, AlbumCover)
	router.POST("/albums/:id/cover", noCache, AlbumSetCover)

	// Search
	router.POST("/search/semantic", noCache, SearchSemantic)
	router.POST("/search/multimodal", noCache, SearchMultimodal)
	router.POST("/search/image", noCache, SearchImage)
	router.POST("/search/color", noCache, SearchColor)
}
