package handlers

import (
	"catalog/config"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
)

func TestSearch(t *testing.T) {
	router := setupTestServer(t)
	var mu sync.Mutex
	var gotPath string
	var gotBody map[string]any
	service := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		data, _ := io.ReadAll(r.Body)
		mu.Lock()
		gotPath = r.URL.Path
		gotBody = nil
		json.Unmarshal(data, &gotBody)
		mu.Unlock()
		w.Header().Set("Content-Type", "application/json")
		io.WriteString(w, `{"results": [{"id": "7", "filename": "a.png", "similarity": 0.9}]}`)
	}))
	defer service.Close()
	config.EMBEDDING_SERVICE_URL = service.URL

	tests := []struct {
		path    string
		body    any
		service string
	}{
		{"/search/semantic", map[string]any{"query": "red door"}, "/semantic-search"},
		{"/search/multimodal", map[string]any{"query": "red door"}, "/multimodal-search"},
		{"/search/color", map[string]any{"color": []int{255, 0, 0}}, "/color-search"},
	}
	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			w := doJSON(t, router, http.MethodPost, tt.path, tt.body)
			if w.Code != http.StatusOK {
				t.Fatalf("status = %d %s", w.Code, w.Body.String())
			}
			mu.Lock()
			defer mu.Unlock()
			if gotPath != tt.service {
				t.Errorf("service path = %s, want %s", gotPath, tt.service)
			}
			var r struct {
				Results []struct {
					ID       uint64 `json:"id"`
					Filename string `json:"filename"`
				} `json:"results"`
			}
			decode(t, w, &r)
			if len(r.Results) != 1 || r.Results[0].ID != 7 {
				t.Errorf("results = %+v", r.Results)
			}
		})
	}
	mu.Lock()
	defer mu.Unlock()
	if gotBody["color"] == nil {
		t.Errorf("color not forwarded: %v", gotBody)
	}
}

func TestSearchErrors(t *testing.T) {
	router := setupTestServer(t)
	service := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer service.Close()
	config.EMBEDDING_SERVICE_URL = service.URL

	tests := []struct {
		path string
		body any
		code int
	}{
		{"/search/semantic", map[string]any{"query": " "}, http.StatusBadRequest},
		{"/search/color", map[string]any{"color": []int{1, 2}}, http.StatusBadRequest},
		{"/search/color", map[string]any{"color": []int{1, 2, 300}}, http.StatusBadRequest},
		{"/search/semantic", map[string]any{"query": "door"}, http.StatusBadGateway},
	}
	for _, tt := range tests {
		if w := doJSON(t, router, http.MethodPost, tt.path, tt.body); w.Code != tt.code {
			t.Errorf("%s %v = %d, want %d", tt.path, tt.body, w.Code, tt.code)
		}
	}
}
