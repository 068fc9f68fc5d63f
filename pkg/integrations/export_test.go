package integrations

import (
	"bytes"
	"context"
	"image"
	"image/color"
	"image/png"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/locnguyenhuu0024/truyen-chibi-app/pkg/data"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// testPNG renders a solid-color page of the given size.
func testPNG(t *testing.T, width, height int) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			img.Set(x, y, color.RGBA{R: 200, G: 120, B: 40, A: 255})
		}
	}
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

func TestExportChapter(t *testing.T) {
	page := testPNG(t, 100, 150)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "image/png")
		w.Write(page)
	}))
	defer srv.Close()

	outDir := t.TempDir()
	exporter := NewExporter(outDir, WithPageInterval(time.Millisecond))

	comic := data.Comic{
		Name:   "One Piece",
		Author: []string{"Eiichiro Oda"},
	}
	chapter := data.ChapterResponse{
		ChapterName: "1088",
		ChapterImages: []data.ChapterImage{
			{ImagePage: 1, ImageFile: "p1.png"},
			{ImagePage: 2, ImageFile: "p2.png"},
		},
	}

	path, err := exporter.ExportChapter(context.Background(), comic, chapter, func(file string) string {
		return srv.URL + "/" + file
	})
	require.NoError(t, err)

	assert.Equal(t, filepath.Join(outDir, "One Piece - Chapter 1088.epub"), path)
	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Greater(t, info.Size(), int64(0))

	// EPUBs are zip containers.
	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(raw, []byte("PK")), "expected zip magic")
}

func TestExportChapterNoPages(t *testing.T) {
	exporter := NewExporter(t.TempDir(), WithPageInterval(time.Millisecond))

	_, err := exporter.ExportChapter(context.Background(), data.Comic{Name: "X"}, data.ChapterResponse{}, func(string) string {
		return "http://unused"
	})
	assert.Error(t, err)
}

func TestExportChapterDownloadFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "gone", http.StatusNotFound)
	}))
	defer srv.Close()

	exporter := NewExporter(t.TempDir(), WithPageInterval(time.Millisecond))
	chapter := data.ChapterResponse{
		ChapterName:   "1",
		ChapterImages: []data.ChapterImage{{ImagePage: 1, ImageFile: "p1.jpg"}},
	}

	_, err := exporter.ExportChapter(context.Background(), data.Comic{Name: "X"}, chapter, func(file string) string {
		return srv.URL + "/" + file
	})
	assert.Error(t, err)
}

func TestDownscalePage(t *testing.T) {
	t.Run("oversized page shrinks to bounds", func(t *testing.T) {
		raw := testPNG(t, maxPageWidth*2, maxPageHeight*2)
		processed, ext := downscalePage(raw, ".png")

		assert.Equal(t, ".jpg", ext)
		img, _, err := image.Decode(bytes.NewReader(processed))
		require.NoError(t, err)
		assert.LessOrEqual(t, img.Bounds().Dx(), maxPageWidth)
		assert.LessOrEqual(t, img.Bounds().Dy(), maxPageHeight)
	})

	t.Run("undecodable content passes through", func(t *testing.T) {
		raw := []byte("not an image")
		processed, ext := downscalePage(raw, ".jpg")
		assert.Equal(t, raw, processed)
		assert.Equal(t, ".jpg", ext)
	})
}

func TestFitWithin(t *testing.T) {
	tests := []struct {
		name         string
		w, h         int
		wantW, wantH int
	}{
		{"already fits", 800, 600, 800, 600},
		{"too wide", maxPageWidth * 2, 100, maxPageWidth, 50},
		{"too tall", 100, maxPageHeight * 2, 50, maxPageHeight},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w, h := fitWithin(tt.w, tt.h, maxPageWidth, maxPageHeight)
			assert.Equal(t, tt.wantW, w)
			assert.Equal(t, tt.wantH, h)
		})
	}
}

func TestSanitizeFilename(t *testing.T) {
	assert.Equal(t, "A_B", sanitizeFilename("A/B"))
	assert.Equal(t, "Dr. Stone - Chapter 1_2", sanitizeFilename(`Dr. Stone - Chapter 1:2`))
	assert.False(t, strings.ContainsAny(sanitizeFilename(`a\b:c*d?e"f<g>h|i`), `\/:*?"<>|`))
}

func TestPageExt(t *testing.T) {
	assert.Equal(t, ".webp", pageExt("chap/001.webp"))
	assert.Equal(t, ".png", pageExt("001.PNG"))
	assert.Equal(t, ".jpg", pageExt("no-extension"))
}
