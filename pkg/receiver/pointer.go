package receiver

import (
	"fmt"
	"sync"

	"github.com/golang/glog"
)

// Button of a pointer click.
type Button int

// Buttons
const (
	ButtonLeft Button = iota
	ButtonRight
)

// String implements fmt.Stringer.
func (b Button) String() string {
	switch b {
	case ButtonLeft:
		return "left"
	case ButtonRight:
		return "right"
	}
	return fmt.Sprintf("button(%d)", int(b))
}

// Pointer is the host pointer driven by the device.
type Pointer interface {
	// MoveBy moves relatively and returns the new position.
	MoveBy(dx, dy int) (x, y int)
	Click(b Button, clicks int)
	Scroll(amount int)
}

// VirtualPointer is an in-memory pointer on a fixed size screen.
type VirtualPointer struct {
	Width, Height int

	lock   sync.Mutex
	x, y   int
	clicks map[Button]int
	scroll int
}

// NewVirtualPointer creates a pointer centered on the screen.
func NewVirtualPointer(width, height int) *VirtualPointer {
	return &VirtualPointer{
		Width:  width,
		Height: height,
		x:      width / 2,
		y:      height / 2,
		clicks: make(map[Button]int),
	}
}

// MoveBy implements Pointer. The position stays on screen.
func (p *VirtualPointer) MoveBy(dx, dy int) (int, int) {
	p.lock.Lock()
	defer p.lock.Unlock()
	p.x = clamp(p.x+dx, 0, p.Width-1)
	p.y = clamp(p.y+dy, 0, p.Height-1)
	glog.V(2).Infof("pointer at (%d, %d)", p.x, p.y)
	return p.x, p.y
}

// Click implements Pointer.
func (p *VirtualPointer) Click(b Button, clicks int) {
	p.lock.Lock()
	p.clicks[b] += clicks
	p.lock.Unlock()
	glog.Infof("%s click x%d", b, clicks)
}

// Scroll implements Pointer.
func (p *VirtualPointer) Scroll(amount int) {
	p.lock.Lock()
	p.scroll += amount
	p.lock.Unlock()
	glog.Infof("scroll %+d", amount)
}

// Position returns the current position.
func (p *VirtualPointer) Position() (int, int) {
	p.lock.Lock()
	defer p.lock.Unlock()
	return p.x, p.y
}

// Clicks returns the accumulated clicks of a button.
func (p *VirtualPointer) Clicks(b Button) int {
	p.lock.Lock()
	defer p.lock.Unlock()
	return p.clicks[b]
}

// Scrolled returns the accumulated scroll amount.
func (p *VirtualPointer) Scrolled() int {
	p.lock.Lock()
	defer p.lock.Unlock()
	return p.scroll
}

func clamp(v, min, max int) int {
	if v < min {
		return min
	}
	if v > max {
		return max
	}
	return v
}
