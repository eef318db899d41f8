package handlers

import (
	"bytes"
	"catalog/config"
	"catalog/db"
	"catalog/models"
	"catalog/storage"
	"encoding/json"
	"image"
	"image/color"
	"image/png"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/gin-gonic/gin"
)

func setupTestServer(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)
	config.CAPTION_SERVICE_URL = ""
	config.EMBEDDING_SERVICE_URL = ""

	dir := t.TempDir()
	instance, err := db.OpenSQLite(filepath.Join(dir, "test.db"))
	if err != nil {
		t.Fatalf("OpenSQLite: %v", err)
	}
	db.Instance = instance
	if err = models.Init(); err != nil {
		t.Fatalf("models.Init: %v", err)
	}
	t.Cleanup(func() {
		if sqlDB, err := instance.DB(); err == nil {
			sqlDB.Close()
		}
	})
	store, err := storage.NewStorage(&storage.Bucket{Name: "test", StorageType: storage.StorageTypeFile, Path: filepath.Join(dir, "uploads")})
	if err != nil {
		t.Fatalf("NewStorage: %v", err)
	}
	storage.SetDefaultStorage(store)

	router := gin.New()
	RegisterRoutes(router)
	return router
}

func testPNG(t *testing.T, w, h int) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for x := 0; x < w; x++ {
		for y := 0; y < h; y++ {
			img.Set(x, y, color.RGBA{200, 20, 20, 255})
		}
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatalf("png.Encode: %v", err)
	}
	return buf.Bytes()
}

// multipartBody builds a form with an "image" file part and the given fields
func multipartBody(t *testing.T, data []byte, fields map[string]string) (*bytes.Buffer, string) {
	t.Helper()
	var buf bytes.Buffer
	form := multipart.NewWriter(&buf)
	if data != nil {
		part, err := form.CreateFormFile("image", "door.png")
		if err != nil {
			t.Fatalf("CreateFormFile: %v", err)
		}
		part.Write(data)
	}
	for k, v := range fields {
		form.WriteField(k, v)
	}
	form.Close()
	return &buf, form.FormDataContentType()
}

func doJSON(t *testing.T, router *gin.Engine, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var reader *bytes.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("Marshal: %v", err)
		}
		reader = bytes.NewReader(data)
	} else {
		reader = bytes.NewReader(nil)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func decode(t *testing.T, w *httptest.ResponseRecorder, out any) {
	t.Helper()
	if err := json.Unmarshal(w.Body.Bytes(), out); err != nil {
		t.Fatalf("Unmarshal %q: %v", w.Body.String(), err)
	}
}

type saveImageResponse struct {
	Success  bool   `json:"success"`
	ID       uint64 `json:"id"`
	Filename string `json:"filename"`
}

func uploadImage(t *testing.T, router *gin.Engine, caption string) saveImageResponse {
	t.Helper()
	body, contentType := multipartBody(t, testPNG(t, 40, 20), map[string]string{
		"caption":       caption,
		"dominantColor": "[200,20,20]",
	})
	req := httptest.NewRequest(http.MethodPost, "/save-image", body)
	req.Header.Set("Content-Type", contentType)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Fatalf("save-image = %d %s", w.Code, w.Body.String())
	}
	r := saveImageResponse{}
	decode(t, w, &r)
	return r
}
