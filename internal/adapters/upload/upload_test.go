package upload

import (
	"bytes"
	"context"
	"encoding/json"
	"image"
	"image/color"
	"image/jpeg"
	"image/png"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func pngOf(t *testing.T, w, h int) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for x := 0; x < w; x++ {
		img.Set(x, h/2, color.RGBA{R: 200, A: 255})
	}
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

func TestCompress_ResizesWideImages(t *testing.T) {
	out, err := Compress(bytes.NewReader(pngOf(t, 2048, 1000)))
	require.NoError(t, err)

	cfg, err := jpeg.DecodeConfig(bytes.NewReader(out))
	require.NoError(t, err)
	assert.Equal(t, 1024, cfg.Width)
	assert.Equal(t, 500, cfg.Height)
}

func TestCompress_NeverUpscales(t *testing.T) {
	out, err := Compress(bytes.NewReader(pngOf(t, 300, 200)))
	require.NoError(t, err)

	cfg, err := jpeg.DecodeConfig(bytes.NewReader(out))
	require.NoError(t, err)
	assert.Equal(t, 300, cfg.Width)
	assert.Equal(t, 200, cfg.Height)
}

func TestCompress_TransparentBecomesWhite(t *testing.T) {
	for _, width := range []int{40, 2048} {
		img := image.NewNRGBA(image.Rect(0, 0, width, 20)) // todo transparente
		var in bytes.Buffer
		require.NoError(t, png.Encode(&in, img))

		out, err := Compress(bytes.NewReader(in.Bytes()))
		require.NoError(t, err)

		dec, err := jpeg.Decode(bytes.NewReader(out))
		require.NoError(t, err)
		r, g, b, _ := dec.At(dec.Bounds().Dx()/2, dec.Bounds().Dy()/2).RGBA()
		assert.Greater(t, r>>8, uint32(240), "width %d", width)
		assert.Greater(t, g>>8, uint32(240), "width %d", width)
		assert.Greater(t, b>>8, uint32(240), "width %d", width)
	}
}

func TestCompress_RejectsNonImages(t *testing.T) {
	_, err := Compress(bytes.NewReader([]byte("not an image")))
	assert.Error(t, err)
}

func TestUploadPhoto(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Bearer secret", r.Header.Get("Authorization"))

		f, hdr, err := r.FormFile("file")
		if !assert.NoError(t, err) {
			http.Error(w, "bad form", http.StatusBadRequest)
			return
		}
		defer f.Close()
		assert.Equal(t, "luna.jpg", hdr.Filename)

		body, _ := io.ReadAll(f)
		_, err = jpeg.DecodeConfig(bytes.NewReader(body))
		assert.NoError(t, err)

		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]string{"url": "https://cdn.example.com/luna.jpg"})
	}))
	defer srv.Close()

	c := NewClient(srv.URL, "secret", 0)
	url, err := c.UploadPhoto(context.Background(), "luna.png", bytes.NewReader(pngOf(t, 64, 64)))
	require.NoError(t, err)
	assert.Equal(t, "https://cdn.example.com/luna.jpg", url)
}

func TestUploadPhoto_Failures(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "disk full", http.StatusInternalServerError)
	}))
	defer srv.Close()

	_, err := NewClient(srv.URL, "", 0).UploadPhoto(context.Background(), "a.png", bytes.NewReader(pngOf(t, 8, 8)))
	assert.ErrorContains(t, err, "500")

	_, err = NewClient("", "", 0).UploadPhoto(context.Background(), "a.png", bytes.NewReader(pngOf(t, 8, 8)))
	assert.ErrorIs(t, err, ErrNotConfigured)
}
