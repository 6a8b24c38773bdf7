// Package banner renders a word as large block art using half-block characters.
package banner

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"os"
	"strings"
	"sync"

	"golang.org/x/image/font"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/math/fixed"
)

// SystemFonts are bold Latin fonts tried by LoadSystem, in order.
var SystemFonts = []string{
	// Linux
	"/usr/share/fonts/truetype/dejavu/DejaVuSans-Bold.ttf",
	"/usr/share/fonts/dejavu/DejaVuSans-Bold.ttf",
	"/usr/share/fonts/truetype/liberation/LiberationSans-Bold.ttf",
	"/usr/share/fonts/liberation/LiberationSans-Bold.ttf",
	"/usr/share/fonts/truetype/noto/NotoSans-Bold.ttf",
	"/usr/share/fonts/noto/NotoSans-Bold.ttf",
	// macOS
	"/System/Library/Fonts/Supplemental/Arial Bold.ttf",
	"/System/Library/Fonts/Helvetica.ttc",
	"/Library/Fonts/Arial Unicode.ttf",
	// Windows
	"C:\\Windows\\Fonts\\arialbd.ttf",
	"C:\\Windows\\Fonts\\segoeuib.ttf",
}

// Renderer draws words with one font face. The zero value renders nothing.
type Renderer struct {
	face font.Face

	mu    sync.Mutex
	cache map[string]string
}

// New returns a renderer for face. A nil face gives a renderer that is
// never Available.
func New(face font.Face) *Renderer {
	return &Renderer{face: face, cache: make(map[string]string)}
}

// LoadSystem returns a renderer using the first loadable font in paths,
// or SystemFonts when paths is empty.
func LoadSystem(paths ...string) *Renderer {
	if len(paths) == 0 {
		paths = SystemFonts
	}
	for _, path := range paths {
		data, err := os.ReadFile(path)
		if err != nil {
			continue
		}
		if face := parseFace(data); face != nil {
			return New(face)
		}
	}
	return New(nil)
}

func parseFace(data []byte) font.Face {
	opts := &opentype.FaceOptions{Size: 48, DPI: 72, Hinting: font.HintingFull}

	// Try parsing as font collection first
	if coll, err := opentype.ParseCollection(data); err == nil && coll.NumFonts() > 0 {
		if fnt, err := coll.Font(0); err == nil {
			if face, err := opentype.NewFace(fnt, opts); err == nil {
				return face
			}
		}
	}
	if fnt, err := opentype.Parse(data); err == nil {
		if face, err := opentype.NewFace(fnt, opts); err == nil {
			return face
		}
	}
	return nil
}

// Available reports whether a font was loaded.
func (r *Renderer) Available() bool {
	return r != nil && r.face != nil
}

// Render draws word in rows terminal lines, at most maxCols wide. It returns
// "" when no font is available or the word does not fit.
func (r *Renderer) Render(word string, rows, maxCols int) string {
	if !r.Available() || word == "" || rows <= 0 {
		return ""
	}

	key := fmt.Sprintf("%s|%d|%d", word, rows, maxCols)
	r.mu.Lock()
	defer r.mu.Unlock()
	if cached, ok := r.cache[key]; ok {
		return cached
	}
	out := r.render(word, rows, maxCols)
	r.cache[key] = out
	return out
}

func (r *Renderer) render(word string, rows, maxCols int) string {
	metrics := r.face.Metrics()
	textWidth := font.MeasureString(r.face, word).Ceil()
	textHeight := (metrics.Ascent + metrics.Descent).Ceil()
	if textWidth <= 0 || textHeight <= 0 {
		return ""
	}

	padding := 2
	srcWidth := textWidth + padding*2
	srcHeight := textHeight + padding*2

	src := image.NewGray(image.Rect(0, 0, srcWidth, srcHeight))
	draw.Draw(src, src.Bounds(), &image.Uniform{color.Black}, image.Point{}, draw.Src)

	d := &font.Drawer{
		Dst:  src,
		Src:  image.White,
		Face: r.face,
		Dot:  fixed.P(padding, padding+metrics.Ascent.Ceil()),
	}
	d.DrawString(word)

	// Half-block pixels are roughly square, so keep the aspect ratio.
	targetHeight := rows * 2
	cols := srcWidth * targetHeight / srcHeight
	if cols <= 0 {
		return ""
	}
	if maxCols > 0 && cols > maxCols {
		return ""
	}

	return toHalfBlocks(scaleDown(src, cols, targetHeight), cols, rows)
}

// scaleDown scales a grayscale image using area averaging
func scaleDown(src *image.Gray, dstWidth, dstHeight int) *image.Gray {
	srcWidth := src.Bounds().Max.X
	srcHeight := src.Bounds().Max.Y
	dst := image.NewGray(image.Rect(0, 0, dstWidth, dstHeight))

	xRatio := float64(srcWidth) / float64(dstWidth)
	yRatio := float64(srcHeight) / float64(dstHeight)

	for dy := 0; dy < dstHeight; dy++ {
		for dx := 0; dx < dstWidth; dx++ {
			sx1 := int(float64(dx) * xRatio)
			sy1 := int(float64(dy) * yRatio)
			sx2 := max(int(float64(dx+1)*xRatio), sx1+1)
			sy2 := max(int(float64(dy+1)*yRatio), sy1+1)
			sx2 = min(sx2, srcWidth)
			sy2 = min(sy2, srcHeight)

			var sum, count int
			for sy := sy1; sy < sy2; sy++ {
				for sx := sx1; sx < sx2; sx++ {
					sum += int(src.GrayAt(sx, sy).Y)
					count++
				}
			}
			if count > 0 {
				dst.SetGray(dx, dy, color.Gray{Y: uint8(sum / count)})
			}
		}
	}
	return dst
}

// threshold is the brightness above which a half cell is lit.
const threshold = 60

func toHalfBlocks(img *image.Gray, cols, rows int) string {
	var sb strings.Builder
	for row := 0; row < rows; row++ {
		for col := 0; col < cols; col++ {
			top := brightness(img, col, row*2) > threshold
			bottom := brightness(img, col, row*2+1) > threshold
			switch {
			case top && bottom:
				sb.WriteRune('█')
			case top:
				sb.WriteRune('▀')
			case bottom:
				sb.WriteRune('▄')
			default:
				sb.WriteRune(' ')
			}
		}
		if row < rows-1 {
			sb.WriteRune('\n')
		}
	}
	return sb.String()
}

func brightness(img *image.Gray, x, y int) uint8 {
	if x < 0 || y < 0 || x >= img.Bounds().Max.X || y >= img.Bounds().Max.Y {
		return 0
	}
	return img.GrayAt(x, y).Y
}
