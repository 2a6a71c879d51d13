package game

import (
	"math"

	"github.com/milk9111/ashvale/common"
)

const (
	// NearCameraMargin widens the view for the "near camera" test so NPCs
	// just off screen keep acting.
	NearCameraMargin = 100

	// ShakeDecayPerSecond is how much shake magnitude fades each second.
	ShakeDecayPerSecond = 30
)

// Camera tracks the world point at the centre of the view.
type Camera struct {
	PosX float64
	PosY float64

	viewW int
	viewH int

	// smoothing factor (0..1). higher -> faster follow
	smooth float64
	// world bounds (0 means unbounded)
	worldW float64
	worldH float64

	shake float64
}

func NewCamera(viewW, viewH int) *Camera {
	return &Camera{
		viewW:  viewW,
		viewH:  viewH,
		smooth: 0.2,
		PosX:   float64(viewW) / 2.0,
		PosY:   float64(viewH) / 2.0,
	}
}

func (c *Camera) SetWorldBounds(w, h int) {
	c.worldW = float64(w)
	c.worldH = float64(h)
}

func (c *Camera) SetSmooth(f float64) {
	c.smooth = common.Clamp(f, 0, 1)
}

func (c *Camera) ViewSize() (int, int) {
	return c.viewW, c.viewH
}

// ViewRect returns the world-space box currently in view.
func (c *Camera) ViewRect() common.Rect {
	return common.NewRect(
		int(math.Round(c.PosX-float64(c.viewW)/2.0)),
		int(math.Round(c.PosY-float64(c.viewH)/2.0)),
		c.viewW, c.viewH,
	)
}

// Near reports whether r is in view or within NearCameraMargin of it.
func (c *Camera) Near(r common.Rect) bool {
	return c.ViewRect().Grow(NearCameraMargin).Intersects(r)
}

// Update moves the camera toward the target world coordinate.
func (c *Camera) Update(targetX, targetY float64) {
	if c.smooth <= 0 || c.smooth >= 1 {
		c.PosX = targetX
		c.PosY = targetY
	} else {
		c.PosX += (targetX - c.PosX) * c.smooth
		c.PosY += (targetY - c.PosY) * c.smooth
	}
	c.clamp()
}

// SnapTo immediately centres the camera on x, y.
func (c *Camera) SnapTo(x, y float64) {
	c.PosX = x
	c.PosY = y
	c.clamp()
}

func (c *Camera) clamp() {
	halfW := float64(c.viewW) / 2.0
	halfH := float64(c.viewH) / 2.0
	if c.worldW > 0 {
		if c.worldW < 2*halfW {
			// world smaller than view: center on world
			c.PosX = c.worldW / 2.0
		} else {
			c.PosX = common.Clamp(c.PosX, halfW, c.worldW-halfW)
		}
	}
	if c.worldH > 0 {
		if c.worldH < 2*halfH {
			c.PosY = c.worldH / 2.0
		} else {
			c.PosY = common.Clamp(c.PosY, halfH, c.worldH-halfH)
		}
	}
}

// Shake raises the shake magnitude to at least magnitude.
func (c *Camera) Shake(magnitude float64) {
	c.shake = max(c.shake, magnitude)
}

// DecayShake fades the shake linearly over time.
func (c *Camera) DecayShake(elapsedMs int) {
	c.shake = max(0, c.shake-ShakeDecayPerSecond*float64(elapsedMs)/1000)
}

func (c *Camera) ShakeMagnitude() float64 {
	return c.shake
}

// ShakeOffset returns a render offset for the current shake at time ms.
func (c *Camera) ShakeOffset(ms int) (float64, float64) {
	if c.shake == 0 {
		return 0, 0
	}
	t := float64(ms) / 1000
	return c.shake * math.Sin(t*47), c.shake * math.Cos(t*53)
}
