package caption

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
	"time"
)

var (
	ErrService = errors.New("caption service error")

	httpClient = http.Client{Timeout: 2 * time.Minute}
)

type Result struct {
	Caption   string `json:"caption"`
	HasPerson bool   `json:"hasPerson"`
}

func Enabled() bool {
	return config.CAPTION_SERVICE_URL != ""
}

// Generate sends the image to the captioning service. Not retried, callers decide
func Generate(filename string, image io.Reader) (*Result, error) {
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
	resp, err := httpClient.Post(config.CAPTION_SERVICE_URL+"/generate-caption", form.FormDataContentType(), &buf)
	if err != nil {
		log.Printf("Caption request error: %v", err)
		return nil, fmt.Errorf("%w: %v", ErrService, err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		log.Printf("Caption error, status: %d, %s", resp.StatusCode, string(body))
		return nil, fmt.Errorf("%w: status %d", ErrService, resp.StatusCode)
	}
	result := Result{}
	if err = json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrService, err)
	}
	return &result, nil
}
