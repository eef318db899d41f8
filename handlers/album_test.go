package handlers

import (
	"catalog/db"
	"catalog/models"
	"net/http"
	"strconv"
	"testing"
)

type albumDetailResponse struct {
	Album struct {
		ID           uint64  `json:"id"`
		Name         string  `json:"name"`
		Subtitle     string  `json:"subtitle"`
		ImageCount   int     `json:"imageCount"`
		CoverImageID *uint64 `json:"coverImageId"`
		CoverImage   *string `json:"coverImage"`
	} `json:"album"`
	Images []struct {
		ID       uint64   `json:"id"`
		Caption  *string  `json:"caption"`
		AlbumIDs []uint64 `json:"albumIds"`
	} `json:"images"`
}

type albumCreateResponse struct {
	Success    bool   `json:"success"`
	AlbumID    uint64 `json:"albumId"`
	ImageCount int    `json:"imageCount"`
}

func TestAlbumCreateAndDetail(t *testing.T) {
	router := setupTestServer(t)
	saved := uploadImage(t, router, "a red door")

	w := doJSON(t, router, http.MethodPost, "/create-album", map[string]any{
		"name":     "Doors",
		"imageIds": []uint64{saved.ID},
	})
	if w.Code != http.StatusOK {
		t.Fatalf("create-album = %d %s", w.Code, w.Body.String())
	}
	created := albumCreateResponse{}
	decode(t, w, &created)
	if !created.Success || created.AlbumID == 0 || created.ImageCount != 1 {
		t.Fatalf("unexpected response %+v", created)
	}

	w = doJSON(t, router, http.MethodGet, "/albums/"+strconv.FormatUint(created.AlbumID, 10), nil)
	if w.Code != http.StatusOK {
		t.Fatalf("album detail = %d %s", w.Code, w.Body.String())
	}
	detail := albumDetailResponse{}
	decode(t, w, &detail)
	if detail.Album.Name != "Doors" || detail.Album.ImageCount != 1 {
		t.Errorf("unexpected album %+v", detail.Album)
	}
	if detail.Album.CoverImageID == nil || *detail.Album.CoverImageID != saved.ID {
		t.Errorf("coverImageId = %v, want %d", detail.Album.CoverImageID, saved.ID)
	}
	if detail.Album.CoverImage == nil || *detail.Album.CoverImage != saved.Filename {
		t.Errorf("coverImage = %v, want %s", detail.Album.CoverImage, saved.Filename)
	}
	if detail.Album.Subtitle == "" {
		t.Error("expected a dates subtitle")
	}
	if len(detail.Images) != 1 || detail.Images[0].Caption == nil || *detail.Images[0].Caption != "a red door" {
		t.Fatalf("unexpected images %+v", detail.Images)
	}
	if ids := detail.Images[0].AlbumIDs; len(ids) != 1 || ids[0] != created.AlbumID {
		t.Errorf("albumIds = %v", ids)
	}
}

func TestAlbumCreateErrors(t *testing.T) {
	router := setupTestServer(t)
	saved := uploadImage(t, router, "a red door")

	tests := []struct {
		name string
		body any
		code int
	}{
		{"empty name", map[string]any{"name": "  ", "imageIds": []uint64{saved.ID}}, http.StatusBadRequest},
		{"no images", map[string]any{"name": "Doors", "imageIds": []uint64{}}, http.StatusBadRequest},
		{"missing images", map[string]any{"name": "Doors"}, http.StatusBadRequest},
		{"unknown image", map[string]any{"name": "Doors", "imageIds": []uint64{saved.ID, 999}}, http.StatusBadRequest},
		{"malformed", "not an object", http.StatusBadRequest},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if w := doJSON(t, router, http.MethodPost, "/create-album", tt.body); w.Code != tt.code {
				t.Errorf("status = %d, want %d: %s", w.Code, tt.code, w.Body.String())
			}
		})
	}

	// Nothing was written by the failed requests
	count, err := models.CountAlbums(db.Instance)
	if err != nil || count != 0 {
		t.Errorf("CountAlbums = %d, %v", count, err)
	}
	image, err := models.GetImage(db.Instance, saved.ID)
	if err != nil || len(image.AlbumIDs) != 0 {
		t.Errorf("image albums = %v, %v", image.AlbumIDs, err)
	}
}

func TestAlbumListAndCover(t *testing.T) {
	router := setupTestServer(t)
	first := uploadImage(t, router, "first")
	second := uploadImage(t, router, "second")

	w := doJSON(t, router, http.MethodPost, "/create-album", map[string]any{
		"name":     "Both",
		"imageIds": []uint64{first.ID, second.ID},
	})
	created := albumCreateResponse{}
	decode(t, w, &created)
	albumPath := "/albums/" + strconv.FormatUint(created.AlbumID, 10)

	w = doJSON(t, router, http.MethodGet, "/albums", nil)
	var list []struct {
		ID         uint64  `json:"id"`
		ImageCount int     `json:"imageCount"`
		CoverImage *string `json:"coverImage"`
	}
	decode(t, w, &list)
	if len(list) != 1 || list[0].ImageCount != 2 || list[0].CoverImage == nil {
		t.Fatalf("unexpected list %+v", list)
	}

	other := uploadImage(t, router, "outsider")
	w = doJSON(t, router, http.MethodPost, albumPath+"/cover", map[string]any{"imageId": other.ID})
	if w.Code != http.StatusOK {
		t.Fatalf("set cover = %d %s", w.Code, w.Body.String())
	}
	w = doJSON(t, router, http.MethodGet, albumPath+"/cover", nil)
	var cover struct {
		AlbumID uint64 `json:"albumId"`
		Cover   *struct {
			ID uint64 `json:"id"`
		} `json:"cover"`
	}
	decode(t, w, &cover)
	if cover.Cover == nil || cover.Cover.ID != other.ID {
		t.Errorf("cover = %+v, want image %d", cover.Cover, other.ID)
	}
	detail := albumDetailResponse{}
	decode(t, doJSON(t, router, http.MethodGet, albumPath, nil), &detail)
	if detail.Album.ImageCount != 3 || len(detail.Images) != 3 {
		t.Errorf("imageCount = %d, images = %d, want 3", detail.Album.ImageCount, len(detail.Images))
	}

	tests := []struct {
		method, path string
		body         any
		code         int
	}{
		{http.MethodGet, "/albums/999", nil, http.StatusNotFound},
		{http.MethodGet, "/albums/999/cover", nil, http.StatusNotFound},
		{http.MethodPost, albumPath + "/cover", map[string]any{"imageId": 999}, http.StatusNotFound},
		{http.MethodPost, albumPath + "/cover", map[string]any{}, http.StatusBadRequest},
		{http.MethodGet, "/albums/x", nil, http.StatusBadRequest},
	}
	for _, tt := range tests {
		if w := doJSON(t, router, tt.method, tt.path, tt.body); w.Code != tt.code {
			t.Errorf("%s %s = %d, want %d", tt.method, tt.path, w.Code, tt.code)
		}
	}
}
