package roadgrowth

import (
	"image"
	"image/color"
	"math"

	"github.com/boljen/go-bitmap"
	"github.com/voidshard/roadgrowth/geom"
	"github.com/voidshard/roadgrowth/internal/encoding"
	"github.com/voidshard/roadgrowth/internal/line"
)

// Heightmap is a TerrainProvider over a regular grid of elevation samples.
// Sample (x, y) sits at site (x*cellSize, y*cellSize); between samples the
// elevation is interpolated bilinearly. Samples may be marked void (water,
// cliffs ..), nothing is buildable in any grid cell touching a void sample.
type Heightmap struct {
	width    int
	height   int
	cellSize float64

	elevation []float64
	void      bitmap.Bitmap
}

// NewHeightmap returns a flat heightmap of width x height samples.
// Both dimensions are raised to at least 2.
func NewHeightmap(width, height int, cellSize float64) *Heightmap {
	width, height = maxint(width, 2), maxint(height, 2)
	return &Heightmap{
		width:     width,
		height:    height,
		cellSize:  cellSize,
		elevation: make([]float64, width*height),
		void:      bitmap.New(width * height),
	}
}

// NewHeightmapFunc samples fn at every grid point, fn returns false for void.
func NewHeightmapFunc(width, height int, cellSize float64, fn func(site geom.Site) (float64, bool)) *Heightmap {
	h := NewHeightmap(width, height, cellSize)
	for y := 0; y < h.height; y++ {
		for x := 0; x < h.width; x++ {
			e, ok := fn(h.siteOf(x, y))
			if ok {
				h.Set(x, y, e)
			} else {
				h.SetVoid(x, y)
			}
		}
	}
	return h
}

// HeightmapFromImage decodes an image written by Heightmap.Image.
func HeightmapFromImage(im image.Image, cellSize, offset, scale float64) *Heightmap {
	b := im.Bounds()
	h := NewHeightmap(b.Dx(), b.Dy(), cellSize)
	for y := 0; y < h.height; y++ {
		for x := 0; x < h.width; x++ {
			px := color.RGBA64Model.Convert(im.At(b.Min.X+x, b.Min.Y+y)).(color.RGBA64)
			if px.A == 0 {
				h.SetVoid(x, y)
				continue
			}
			h.Set(x, y, encoding.DecodeElevation(px.R, px.G, offset, scale))
		}
	}
	return h
}

// Image encodes the heightmap as an RGBA64 image, one pixel per sample.
// R & G hold the elevation as a count of scale sized steps above offset,
// void samples are fully transparent.
func (h *Heightmap) Image(offset, scale float64) *image.RGBA64 {
	im := image.NewRGBA64(image.Rect(0, 0, h.width, h.height))
	for y := 0; y < h.height; y++ {
		for x := 0; x < h.width; x++ {
			e, ok := h.At(x, y)
			if !ok {
				continue
			}
			hi, lo := encoding.Elevation(e, offset, scale)
			im.SetRGBA64(x, y, color.RGBA64{R: hi, G: lo, B: 0, A: math.MaxUint16})
		}
	}
	return im
}

func (h *Heightmap) siteOf(x, y int) geom.Site {
	return geom.NewSite(float64(x)*h.cellSize, float64(y)*h.cellSize)
}

func (h *Heightmap) index(x, y int) (int, bool) {
	if x < 0 || y < 0 || x >= h.width || y >= h.height {
		return 0, false
	}
	return y*h.width + x, true
}

// Set the elevation of sample x,y, clearing any void.
func (h *Heightmap) Set(x, y int, elevation float64) {
	i, ok := h.index(x, y)
	if !ok {
		return
	}
	h.elevation[i] = elevation
	h.void.Set(i, false)
}

// SetVoid marks sample x,y as unbuildable.
func (h *Heightmap) SetVoid(x, y int) {
	i, ok := h.index(x, y)
	if !ok {
		return
	}
	h.void.Set(i, true)
}

// At returns the elevation of sample x,y, false if void or off the grid.
func (h *Heightmap) At(x, y int) (float64, bool) {
	i, ok := h.index(x, y)
	if !ok || h.void.Get(i) {
		return 0, false
	}
	return h.elevation[i], true
}

// Bounds returns the area covered by samples.
func (h *Heightmap) Bounds() geom.Rect {
	return geom.RectFromSites(h.siteOf(0, 0), h.siteOf(h.width-1, h.height-1))
}

// Elevation implements TerrainProvider
func (h *Heightmap) Elevation(site geom.Site) (float64, bool) {
	fx, fy := site.X/h.cellSize, site.Y/h.cellSize
	if !(fx >= 0 && fy >= 0 && fx <= float64(h.width-1) && fy <= float64(h.height-1)) {
		return 0, false
	}
	x, y := minint(int(fx), h.width-2), minint(int(fy), h.height-2)
	tx, ty := fx-float64(x), fy-float64(y)

	e00, ok00 := h.At(x, y)
	e10, ok10 := h.At(x+1, y)
	e01, ok01 := h.At(x, y+1)
	e11, ok11 := h.At(x+1, y+1)
	if !(ok00 && ok10 && ok01 && ok11) {
		return 0, false
	}

	top := e00 + (e10-e00)*tx
	bottom := e01 + (e11-e01)*tx
	return top + (bottom-top)*ty, true
}

// CrossesVoid implements VoidCrosser by walking the nearest samples along
// the line a-b. Anything off the grid counts as void.
func (h *Heightmap) CrossesVoid(a, b geom.Site) bool {
	return !line.Walk(h.nearest(a), h.nearest(b), func(p image.Point) bool {
		_, ok := h.At(p.X, p.Y)
		return ok
	})
}

func (h *Heightmap) nearest(s geom.Site) image.Point {
	return image.Pt(int(math.Round(s.X/h.cellSize)), int(math.Round(s.Y/h.cellSize)))
}

// SavePNG writes Image(offset, scale) to disk.
func (h *Heightmap) SavePNG(fpath string, offset, scale float64) error {
	return savePNG(fpath, h.Image(offset, scale))
}
