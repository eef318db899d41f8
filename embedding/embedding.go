package embedding

import (
	"bytes"
	"catalog/config"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"mime/multipart"
	"net/http"
	"strconv"
	"time"
)

var (
	ErrService = errors.New("embedding service error")

	httpClient = http.Client{Timeout: time.Minute}
)

// ResultID accepts both numeric and quoted ids; the vector store keys images by string
type ResultID uint64

func (id *ResultID) UnmarshalJSON(b []byte) error {
	s := string(bytes.Trim(b, `"`))
	v, err := strconv.ParseUint(s, 10, 64)
	if err != nil {
		return fmt.Errorf("result id %s: %w", string(b), err)
	}
	*id = ResultID(v)
	return nil
}

// Result is passed through as ranked by the service; scores are not interpreted here
type Result struct {
	ID         ResultID `json:"id"`
	Filename   string   `json:"filename"`
	Caption    string   `json:"caption,omitempty"`
	Similarity float64  `json:"similarity"`
}

type IndexRequest struct {
	ImageID  uint64 `json:"image_id"`
	Caption  string `json:"caption"`
	Filename string `json:"filename"`
}

type searchResponse struct {
	Results []Result `json:"results"`
	Error   string   `json:"error"`
}

func Enabled() bool {
	return config.EMBEDDING_SERVICE_URL != ""
}

func post(path, contentType string, body io.Reader, out any) error {
	resp, err := httpClient.Post(config.EMBEDDING_SERVICE_URL+path, contentType, body)
	if err != nil {
		log.Printf("Embedding request %s error: %v", path, err)
		return fmt.Errorf("%w: %v", ErrService, err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		msg, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		log.Printf("Embedding %s error, status: %d, %s", path, resp.StatusCode, string(msg))
		return fmt.Errorf("%w: %s status %d", ErrService, path, resp.StatusCode)
	}
	if out == nil {
		return nil
	}
	if err = json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("%w: %s: %v", ErrService, path, err)
	}
	return nil
}

func postJSON(path string, in, out any) error {
	buf := bytes.Buffer{}
	if err := json.NewEncoder(&buf).Encode(in); err != nil {
		return err
	}
	return post(path, "application/json", &buf, out)
}

// Index stores the caption embedding of an image
func Index(r IndexRequest) error {
	return postJSON("/save-embedding", r, nil)
}

func search(path string, in any) ([]Result, error) {
	out := searchResponse{}
	if err := postJSON(path, in, &out); err != nil {
		return nil, err
	}
	if out.Results == nil {
		out.Results = []Result{}
	}
	return out.Results, nil
}

// SearchText ranks images by caption similarity to a text query
func SearchText(query string) ([]Result, error) {
	return search("/semantic-search", map[string]string{"query": query})
}

// SearchMultimodal ranks images by visual similarity to a text query
func SearchMultimodal(query string) ([]Result, error) {
	return search("/multimodal-search", map[string]string{"query": query})
}

// SearchColor ranks images by closeness to an RGB color
func SearchColor(color []int) ([]Result, error) {
	return search("/color-search", map[string][]int{"color": color})
}

// SearchImage ranks images by visual similarity to an example image
func SearchImage(filename string, image io.Reader) ([]Result, error) {
	buf := bytes.Buffer{}
	form := multipart.NewWriter(&buf)
	part, err := form.CreateFormFile("image", filename)
	if err != nil {
		return nil, err
	}
	if _, err = io.Copy(part, image); err != nil {
		return nil, err
	}
	if err = form.Close(); err != nil {
		return nil, err
	}
	out := searchResponse{}
	if err = post("/image-search", form.FormDataContentType(), &buf, &out); err != nil {
		return nil, err
	}
	if out.Results == nil {
		out.Results = []Result{}
	}
	return out.Results, nil
}
