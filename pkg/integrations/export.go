package integrations

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"image/jpeg"
	"io"
	"net/http"
	"os"
	"path"
	"path/filepath"
	"strings"
	"time"

	"github.com/go-shiori/go-epub"
	"golang.org/x/image/draw"
	_ "golang.org/x/image/webp"

	_ "image/gif"
	_ "image/png"

	"github.com/locnguyenhuu0024/truyen-chibi-app/pkg/data"
)

// Page dimensions for e-reader export. Larger pages are downscaled
// preserving aspect ratio.
const (
	maxPageWidth  = 1236
	maxPageHeight = 1648

	jpegQuality = 85

	defaultPageInterval = 500 * time.Millisecond
)

// Exporter compiles a resolved chapter into a single EPUB file. Page
// images are fetched from the CDN one at a time with a per-page delay.
type Exporter struct {
	outputDir    string
	client       *http.Client
	pageInterval time.Duration
}

type ExporterOption func(*Exporter)

// WithPageInterval overrides the delay between page downloads.
func WithPageInterval(d time.Duration) ExporterOption {
	return func(e *Exporter) { e.pageInterval = d }
}

// WithHTTPClient overrides the HTTP client used for page downloads.
func WithHTTPClient(c *http.Client) ExporterOption {
	return func(e *Exporter) { e.client = c }
}

func NewExporter(outputDir string, opts ...ExporterOption) *Exporter {
	e := &Exporter{
		outputDir:    outputDir,
		client:       http.DefaultClient,
		pageInterval: defaultPageInterval,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// ExportChapter downloads every page of the chapter, downscales
// oversized pages and writes "<comic> - Chapter <name>.epub" into the
// output directory. pageURL resolves an image path from the chapter
// payload to an absolute URL.
func (e *Exporter) ExportChapter(ctx context.Context, comic data.Comic, chapter data.ChapterResponse, pageURL func(string) string) (string, error) {
	if len(chapter.ChapterImages) == 0 {
		return "", fmt.Errorf("chapter has no pages")
	}

	if err := os.MkdirAll(e.outputDir, 0755); err != nil {
		return "", fmt.Errorf("failed to create export directory: %w", err)
	}

	title := comic.Name
	if title == "" {
		title = chapter.ComicName
	}
	chapterTitle := fmt.Sprintf("Chapter %s", chapter.ChapterName)

	book, err := epub.NewEpub(fmt.Sprintf("%s - %s", title, chapterTitle))
	if err != nil {
		return "", fmt.Errorf("failed to create EPUB: %w", err)
	}
	if len(comic.Author) > 0 {
		book.SetAuthor(strings.Join(comic.Author, ", "))
	}
	if comic.Content != "" {
		book.SetDescription(comic.Content)
	}
	book.SetLang("vi")

	// go-epub adds images by path, so processed pages live in a
	// scratch directory until the book is written.
	scratch, err := os.MkdirTemp("", "chibi-export-*")
	if err != nil {
		return "", fmt.Errorf("failed to create scratch directory: %w", err)
	}
	defer os.RemoveAll(scratch)

	var html strings.Builder
	html.WriteString(fmt.Sprintf("<h1>%s</h1>\n", chapterTitle))

	ticker := time.NewTicker(e.pageInterval)
	defer ticker.Stop()

	for i, page := range chapter.ChapterImages {
		if i > 0 {
			select {
			case <-ticker.C:
			case <-ctx.Done():
				return "", ctx.Err()
			}
		}

		src := pageURL(page.ImageFile)
		content, err := e.fetchPage(ctx, src)
		if err != nil {
			return "", fmt.Errorf("failed to download page %d: %w", page.ImagePage, err)
		}
		content, ext := downscalePage(content, pageExt(page.ImageFile))

		local := filepath.Join(scratch, fmt.Sprintf("page%04d%s", i+1, ext))
		if err := os.WriteFile(local, content, 0644); err != nil {
			return "", fmt.Errorf("failed to stage page %d: %w", page.ImagePage, err)
		}

		internal, err := book.AddImage(local, "")
		if err != nil {
			return "", fmt.Errorf("failed to add page %d: %w", page.ImagePage, err)
		}
		html.WriteString(fmt.Sprintf(
			`<div class="page"><img src="%s" alt="Page %d" style="width:100%%;height:auto;"/></div>%s`,
			internal, i+1, "\n",
		))
	}

	if _, err := book.AddSection(html.String(), chapterTitle, "", ""); err != nil {
		return "", fmt.Errorf("failed to add section: %w", err)
	}

	outputPath := filepath.Join(e.outputDir, sanitizeFilename(fmt.Sprintf("%s - %s", title, chapterTitle))+".epub")
	if err := book.Write(outputPath); err != nil {
		return "", fmt.Errorf("failed to write EPUB: %w", err)
	}
	return outputPath, nil
}

func (e *Exporter) fetchPage(ctx context.Context, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	resp, err := e.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("bad status: %s", resp.Status)
	}
	return io.ReadAll(resp.Body)
}

// downscalePage resizes a page that exceeds the target dimensions and
// re-encodes it as JPEG. Pages that already fit, or that fail to
// decode, pass through untouched with their original extension.
func downscalePage(content []byte, ext string) ([]byte, string) {
	img, _, err := image.Decode(bytes.NewReader(content))
	if err != nil {
		return content, ext
	}

	bounds := img.Bounds()
	width, height := fitWithin(bounds.Dx(), bounds.Dy(), maxPageWidth, maxPageHeight)
	if width == bounds.Dx() && height == bounds.Dy() && (ext == ".jpg" || ext == ".jpeg") {
		return content, ext
	}

	dst := image.NewRGBA(image.Rect(0, 0, width, height))
	draw.CatmullRom.Scale(dst, dst.Bounds(), img, bounds, draw.Over, nil)

	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, dst, &jpeg.Options{Quality: jpegQuality}); err != nil {
		return content, ext
	}
	return buf.Bytes(), ".jpg"
}

// fitWithin scales (width, height) down to fit inside (maxW, maxH)
// preserving aspect ratio. Dimensions already within bounds come back
// unchanged.
func fitWithin(width, height, maxW, maxH int) (int, int) {
	if width <= maxW && height <= maxH {
		return width, height
	}

	widthScale := float64(maxW) / float64(width)
	heightScale := float64(maxH) / float64(height)
	scale := widthScale
	if heightScale < widthScale {
		scale = heightScale
	}
	return int(float64(width) * scale), int(float64(height) * scale)
}

func pageExt(imageFile string) string {
	ext := strings.ToLower(path.Ext(imageFile))
	switch ext {
	case ".jpg", ".jpeg", ".png", ".gif", ".webp":
		return ext
	default:
		return ".jpg"
	}
}

// sanitizeFilename replaces characters that are invalid in filenames.
func sanitizeFilename(name string) string {
	invalid := []string{"/", "\\", ":", "*", "?", "\"", "<", ">", "|"}
	result := name
	for _, char := range invalid {
		result = strings.ReplaceAll(result, char, "_")
	}
	result = strings.TrimSpace(result)
	return strings.Trim(result, ".")
}
