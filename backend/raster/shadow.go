package raster

import (
	"math"

	"github.com/gogpu/displaylist"
	"github.com/gogpu/displaylist/backend"
	"github.com/gogpu/gg"
)

const (
	// ambientGeomFactor scales occluder height to ambient blur radius.
	ambientGeomFactor = 0.5
	maxAmbientRadius  = 150
)

// DrawShadow draws a blurred ambient shadow under path and a spot shadow
// offset away from the light. Blur radii are in device pixels and the
// standard deviation used is half the radius.
//
// The occluder itself is never cut out of the shadow, so transparent and
// opaque occluders render alike.
func (c *Canvas) DrawShadow(path *gg.Path, zPlane, lightPos backend.Point3, lightRadius float64,
	ambient, spot gg.RGBA, flags backend.ShadowFlags) {
	if path == nil {
		return
	}
	z := zPlane.Z
	if z <= 0 {
		return
	}
	if ambient.A > 0 {
		radius := math.Min(z*ambientGeomFactor, maxAmbientRadius)
		c.drawBlurredFill(path, 0, 0, radius, ambient)
	}
	if spot.A > 0 {
		var dx, dy, radius float64
		if flags&backend.ShadowDirectionalLight != 0 {
			if lightPos.Z <= 0 {
				return
			}
			dx = -z * lightPos.X / lightPos.Z
			dy = -z * lightPos.Y / lightPos.Z
			radius = z * lightRadius / 2
		} else {
			if lightPos.Z <= z {
				return
			}
			ratio := z / (lightPos.Z - z)
			center := displaylist.PathBounds(path).Center()
			cx, cy := c.top().matrix.MapPoint(center.X, center.Y)
			dx = (cx - lightPos.X) * ratio
			dy = (cy - lightPos.Y) * ratio
			radius = lightRadius * ratio
		}
		c.drawBlurredFill(path, dx, dy, radius, spot)
	}
}

// drawBlurredFill fills path offset by (dx, dy) device pixels with col and
// blurs the coverage by radius.
func (c *Canvas) drawBlurredFill(path *gg.Path, dx, dy, radius float64, col gg.RGBA) {
	s := c.top()
	m := displaylist.Translate(dx, dy).Multiply(s.matrix)
	local := displaylist.PathBounds(path)
	area := c.deviceArea(m.MapRect(local), 3*radius+2).Intersect(s.clipBounds)
	if area.Empty() {
		return
	}
	fill := backend.NewPaint()
	c.rasterize(path, m, &fill, gg.FillRuleNonZero)
	if radius > 0 {
		p := readPlane(c.cover, area)
		p.blur(radius/2, radius/2)
		p.write(c.cover)
	}
	c.composite(s, area, c.cover, solid(premul(col)), displaylist.BlendModeSrcOver, true)
}
