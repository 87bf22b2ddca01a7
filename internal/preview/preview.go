// Package preview renders logo images as truecolor half-block text for
// the gallery modal.
package preview

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"io"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	lru "github.com/hashicorp/golang-lru/v2"
	"go.uber.org/zap"
	_ "golang.org/x/image/bmp"
	"golang.org/x/image/draw"
	_ "golang.org/x/image/webp"

	"logogrip/internal/domain"
)

const (
	maxImageSize     = 8 << 20
	defaultCacheSize = 128
)

// Options configures a Renderer
type Options struct {
	// AssetBase is the directory or URL that relative image paths resolve against
	AssetBase string
	Client    *http.Client
	UserAgent string
	CacheSize int
	// MaxRows caps the rendered height in terminal rows
	MaxRows int
	Logger  *zap.Logger
}

// Renderer turns entity images into terminal art and caches the result
type Renderer struct {
	assetBase string
	client    *http.Client
	userAgent string
	maxRows   int
	cache     *lru.Cache[string, string]
	logger    *zap.Logger
}

// NewRenderer creates a renderer
func NewRenderer(opts Options) (*Renderer, error) {
	size := opts.CacheSize
	if size <= 0 {
		size = defaultCacheSize
	}
	cache, err := lru.New[string, string](size)
	if err != nil {
		return nil, fmt.Errorf("failed to create preview cache: %w", err)
	}

	client := opts.Client
	if client == nil {
		client = &http.Client{Timeout: 10 * time.Second}
	}
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	maxRows := opts.MaxRows
	if maxRows <= 0 {
		maxRows = 20
	}

	return &Renderer{
		assetBase: opts.AssetBase,
		client:    client,
		userAgent: opts.UserAgent,
		maxRows:   maxRows,
		cache:     cache,
		logger:    logger.Named("preview"),
	}, nil
}

// Render returns entity's logo scaled to cols columns. Missing or
// undecodable images render a placeholder frame instead.
func (r *Renderer) Render(ctx context.Context, entity domain.Entity, cols int) string {
	if cols < 2 {
		cols = 2
	}
	key := entity.Slug + "@" + strconv.Itoa(cols)
	if out, ok := r.cache.Get(key); ok {
		return out
	}

	img, err := r.load(ctx, entity)
	if err != nil {
		r.logger.Debug("preview unavailable", zap.String("slug", entity.Slug), zap.Error(err))
		out := Placeholder(cols, r.placeholderRows(cols))
		if ctx.Err() == nil {
			r.cache.Add(key, out)
		}
		return out
	}

	out := HalfBlocks(img, cols, r.maxRows)
	r.cache.Add(key, out)
	return out
}

// Purge drops every cached rendering, e.g. after the dataset was reloaded
func (r *Renderer) Purge() {
	r.cache.Purge()
}

func (r *Renderer) placeholderRows(cols int) int {
	return max(3, min(r.maxRows, cols/4))
}

func (r *Renderer) load(ctx context.Context, entity domain.Entity) (image.Image, error) {
	var errs []error

	if p := entity.Image.AssetPath(); p != "" && p != domain.PlaceholderImagePath {
		data, err := r.readAsset(ctx, p)
		if err == nil {
			img, _, err := image.Decode(bytes.NewReader(data))
			if err == nil {
				return img, nil
			}
			errs = append(errs, fmt.Errorf("decode %s: %w", p, err))
		} else {
			errs = append(errs, err)
		}
	}

	if entity.Image.Source != "" {
		data, err := r.fetch(ctx, entity.Image.Source)
		if err == nil {
			img, _, err := image.Decode(bytes.NewReader(data))
			if err == nil {
				return img, nil
			}
			errs = append(errs, fmt.Errorf("decode %s: %w", entity.Image.Source, err))
		} else {
			errs = append(errs, err)
		}
	}

	if len(errs) == 0 {
		return nil, errors.New("entity has no image")
	}
	return nil, errors.Join(errs...)
}

func (r *Renderer) readAsset(ctx context.Context, rel string) ([]byte, error) {
	if isURL(rel) {
		return r.fetch(ctx, rel)
	}
	if isURL(r.assetBase) {
		u, err := url.Parse(r.assetBase)
		if err != nil {
			return nil, err
		}
		return r.fetch(ctx, u.JoinPath(rel).String())
	}

	path := rel
	if !filepath.IsAbs(path) {
		path = filepath.Join(r.assetBase, filepath.FromSlash(rel))
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return io.ReadAll(io.LimitReader(f, maxImageSize))
}

func (r *Renderer) fetch(ctx context.Context, rawURL string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, err
	}
	if r.userAgent != "" {
		req.Header.Set("User-Agent", r.userAgent)
	}

	resp, err := r.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("GET %s: %s", rawURL, resp.Status)
	}
	return io.ReadAll(io.LimitReader(resp.Body, maxImageSize))
}

func isURL(s string) bool {
	return strings.HasPrefix(s, "http://") || strings.HasPrefix(s, "https://")
}

// HalfBlocks scales img to cols columns and renders two pixel rows per
// text row using the upper half block. Transparent pixels are left blank.
func HalfBlocks(img image.Image, cols, maxRows int) string {
	b := img.Bounds()
	if b.Dx() == 0 || b.Dy() == 0 || cols <= 0 {
		return ""
	}

	width := cols
	height := b.Dy() * width / b.Dx()
	if maxRows > 0 && height > maxRows*2 {
		height = maxRows * 2
		width = max(1, b.Dx()*height/b.Dy())
	}
	height = max(2, height+height%2)

	dst := image.NewRGBA(image.Rect(0, 0, width, height))
	draw.CatmullRom.Scale(dst, dst.Bounds(), img, b, draw.Over, nil)

	var sb strings.Builder
	for y := 0; y < height; y += 2 {
		for x := 0; x < width; x++ {
			top, topOK := pixel(dst, x, y)
			bottom, bottomOK := pixel(dst, x, y+1)
			switch {
			case topOK && bottomOK:
				fmt.Fprintf(&sb, "\x1b[38;2;%d;%d;%dm\x1b[48;2;%d;%d;%dm▀", top[0], top[1], top[2], bottom[0], bottom[1], bottom[2])
			case topOK:
				fmt.Fprintf(&sb, "\x1b[38;2;%d;%d;%dm\x1b[49m▀", top[0], top[1], top[2])
			case bottomOK:
				fmt.Fprintf(&sb, "\x1b[38;2;%d;%d;%dm\x1b[49m▄", bottom[0], bottom[1], bottom[2])
			default:
				sb.WriteString("\x1b[0m ")
			}
		}
		sb.WriteString("\x1b[0m")
		if y+2 < height {
			sb.WriteByte('\n')
		}
	}
	return sb.String()
}

// pixel returns the straight (non-premultiplied) colour at x,y and whether
// it is opaque enough to draw.
func pixel(img *image.RGBA, x, y int) ([3]uint8, bool) {
	c := img.RGBAAt(x, y)
	if c.A < 128 {
		return [3]uint8{}, false
	}
	if c.A == 255 {
		return [3]uint8{c.R, c.G, c.B}, true
	}
	a := uint32(c.A)
	return [3]uint8{
		uint8(uint32(c.R) * 255 / a),
		uint8(uint32(c.G) * 255 / a),
		uint8(uint32(c.B) * 255 / a),
	}, true
}

// Placeholder draws an empty frame of the given size
func Placeholder(cols, rows int) string {
	cols = max(cols, 10)
	rows = max(rows, 3)
	inner := cols - 2

	label := "no image"
	if len(label) > inner {
		label = label[:inner]
	}
	pad := inner - len(label)

	var sb strings.Builder
	sb.WriteString("┌" + strings.Repeat("─", inner) + "┐\n")
	for i := 1; i < rows-1; i++ {
		if i == rows/2 {
			sb.WriteString("│" + strings.Repeat(" ", pad/2) + label + strings.Repeat(" ", pad-pad/2) + "│\n")
			continue
		}
		sb.WriteString("│" + strings.Repeat(" ", inner) + "│\n")
	}
	sb.WriteString("└" + strings.Repeat("─", inner) + "┘")
	return sb.String()
}
