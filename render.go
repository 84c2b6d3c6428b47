package roadgrowth

import (
	"image"
	"image/color"
	"math"
	"sort"

	"github.com/fogleman/gg"
	"github.com/voidshard/roadgrowth/geom"
	"golang.org/x/image/colornames"
)

// ColourScheme defines how a network is drawn.
type ColourScheme struct {
	Background color.Color
	Land       color.Color // heightmap samples, shaded by elevation
	Void       color.Color // void heightmap samples
	Bridges    color.Color
	Nodes      color.Color // nodes are not drawn if nil

	// colour per stage, stages past the end use the last colour
	Stages []color.Color

	PathWidth  float64 // pixels, at stage 0. Each stage after is thinner
	NodeRadius float64 // pixels
}

// DefaultScheme returns a reasonable default ColourScheme.
func DefaultScheme() *ColourScheme {
	return &ColourScheme{
		Background: colornames.White,
		Land:       colornames.Darkseagreen,
		Void:       colornames.Steelblue,
		Bridges:    colornames.Saddlebrown,
		Nodes:      nil,
		Stages: []color.Color{
			colornames.Crimson,
			colornames.Darkorange,
			colornames.Dimgray,
			colornames.Darkgray,
		},
		PathWidth:  4,
		NodeRadius: 1.5,
	}
}

func (c *ColourScheme) stage(s Stage) (color.Color, float64) {
	width := math.Max(1, c.PathWidth-float64(s))
	if len(c.Stages) == 0 {
		return color.Black, width
	}
	return c.Stages[minint(int(s), len(c.Stages)-1)], width
}

// canvas maps network sites onto image pixels.
type canvas struct {
	ctx    *gg.Context
	origin geom.Site
	scale  float64
	pad    float64
}

func (c *canvas) xy(s geom.Site) (float64, float64) {
	return (s.X-c.origin.X)*c.scale + c.pad, (s.Y-c.origin.Y)*c.scale + c.pad
}

// Bounds returns the area spanned by the network's nodes, false if empty.
func (n *PathNetwork) Bounds() (geom.Rect, bool) {
	ids := n.Nodes()
	if len(ids) == 0 {
		return geom.Rect{}, false
	}
	sites := make([]geom.Site, len(ids))
	for i, id := range ids {
		sites[i] = n.nodes[id].Site
	}
	return geom.RectFromSites(sites...), true
}

// Image draws the network, and the terrain underneath it if given, with
// scale pixels per unit of distance.
func (n *PathNetwork) Image(terrain *Heightmap, scheme *ColourScheme, scale float64) image.Image {
	if scheme == nil {
		scheme = DefaultScheme()
	}

	area, ok := n.Bounds()
	switch {
	case terrain != nil && ok:
		area = area.Union(terrain.Bounds())
	case terrain != nil:
		area = terrain.Bounds()
	}

	pad := scheme.PathWidth * 2
	cv := &canvas{origin: area.Min, scale: scale, pad: pad}
	width := int(math.Ceil(area.Width()*scale + 2*pad))
	height := int(math.Ceil(area.Height()*scale + 2*pad))
	cv.ctx = gg.NewContext(maxint(width, 1), maxint(height, 1))

	cv.ctx.SetColor(scheme.Background)
	cv.ctx.Clear()

	if terrain != nil {
		cv.drawTerrain(terrain, scheme)
	}
	cv.drawPaths(n, scheme)
	if scheme.Nodes != nil {
		cv.ctx.SetColor(scheme.Nodes)
		for _, id := range n.Nodes() {
			x, y := cv.xy(n.nodes[id].Site)
			cv.ctx.DrawCircle(x, y, scheme.NodeRadius)
			cv.ctx.Fill()
		}
	}

	return cv.ctx.Image()
}

// SavePNG writes Image(terrain, scheme, scale) to disk.
func (n *PathNetwork) SavePNG(fpath string, terrain *Heightmap, scheme *ColourScheme, scale float64) error {
	return savePNG(fpath, n.Image(terrain, scheme, scale))
}

func (c *canvas) drawTerrain(h *Heightmap, scheme *ColourScheme) {
	lo, hi := math.Inf(1), math.Inf(-1)
	for i, e := range h.elevation {
		if h.void.Get(i) {
			continue
		}
		lo, hi = math.Min(lo, e), math.Max(hi, e)
	}

	size := h.cellSize * c.scale
	lr, lg, lb, _ := scheme.Land.RGBA()
	for y := 0; y < h.height; y++ {
		for x := 0; x < h.width; x++ {
			px, py := c.xy(h.siteOf(x, y))
			e, ok := h.At(x, y)
			if !ok {
				c.ctx.SetColor(scheme.Void)
			} else {
				// higher ground is drawn lighter
				shade := 0.6
				if hi > lo {
					shade += 0.4 * (e - lo) / (hi - lo)
				}
				c.ctx.SetRGB(shade*float64(lr)/0xffff, shade*float64(lg)/0xffff, shade*float64(lb)/0xffff)
			}
			c.ctx.DrawRectangle(px-size/2, py-size/2, size, size)
			c.ctx.Fill()
		}
	}
}

func (c *canvas) drawPaths(n *PathNetwork, scheme *ColourScheme) {
	paths := n.Paths()

	// minor paths first so main paths are drawn over them
	stageOf := func(k PathKey) Stage { return PathStage(n.nodes[k.A], n.nodes[k.B]) }
	sort.SliceStable(paths, func(i, j int) bool { return stageOf(paths[i]) > stageOf(paths[j]) })

	for _, k := range paths {
		col, width := scheme.stage(stageOf(k))
		if n.PathIsBridge(k.A, k.B) {
			col = scheme.Bridges
		}
		x0, y0 := c.xy(n.nodes[k.A].Site)
		x1, y1 := c.xy(n.nodes[k.B].Site)
		c.ctx.SetColor(col)
		c.ctx.SetLineWidth(width)
		c.ctx.DrawLine(x0, y0, x1, y1)
		c.ctx.Stroke()
	}
}
