// Package upload comprime imágenes y las sube al servicio de archivos externo.
package upload

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"path"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
)

const DefaultTimeout = 30 * time.Second

var ErrNotConfigured = errors.New("upload url not configured")

// Client implementa photos.Uploader.
type Client struct {
	http *resty.Client
	url  string
}

func NewClient(uploadURL, apiKey string, timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	c := resty.New().SetTimeout(timeout)
	if strings.TrimSpace(apiKey) != "" {
		c.SetAuthToken(apiKey)
	}
	return &Client{http: c, url: strings.TrimSpace(uploadURL)}
}

type uploadResponse struct {
	URL string `json:"url"`
}

// UploadPhoto comprime y sube como campo multipart "file". Devuelve la URL pública.
func (c *Client) UploadPhoto(ctx context.Context, name string, r io.Reader) (string, error) {
	if c.url == "" {
		return "", ErrNotConfigured
	}

	data, err := Compress(r)
	if err != nil {
		return "", err
	}

	var out uploadResponse
	resp, err := c.http.R().
		SetContext(ctx).
		SetFileReader("file", jpegName(name), bytes.NewReader(data)).
		SetResult(&out).
		Post(c.url)
	if err != nil {
		return "", fmt.Errorf("upload request: %w", err)
	}
	if resp.IsError() {
		return "", fmt.Errorf("upload status %d: %s", resp.StatusCode(), strings.TrimSpace(resp.String()))
	}
	if strings.TrimSpace(out.URL) == "" {
		return "", errors.New("upload response without url")
	}
	return out.URL, nil
}

func jpegName(name string) string {
	base := strings.TrimSuffix(path.Base(name), path.Ext(name))
	if base == "" || base == "." || base == "/" {
		base = "photo"
	}
	return base + ".jpg"
}
