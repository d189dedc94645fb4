package tinsel

// pointerEvent is a single injected pointer sample in screen coordinates,
// routed through exactly the same path as real mouse input.
type pointerEvent struct {
	x, y    float64
	pressed bool
}

// InjectPress queues a pointer press at the given screen coordinates. The
// event is consumed on the next Update's input pass.
func (c *Composer) InjectPress(x, y float64) {
	c.injectQueue = append(c.injectQueue, pointerEvent{x: x, y: y, pressed: true})
}

// InjectMove queues a pointer move with the button held down. Use this
// between InjectPress and InjectRelease to simulate a drag.
func (c *Composer) InjectMove(x, y float64) {
	c.injectQueue = append(c.injectQueue, pointerEvent{x: x, y: y, pressed: true})
}

// InjectHover queues a pointer move with no button down at the given screen
// coordinates.
func (c *Composer) InjectHover(x, y float64) {
	c.injectQueue = append(c.injectQueue, pointerEvent{x: x, y: y})
}

// InjectRelease queues a pointer release at the given screen coordinates.
func (c *Composer) InjectRelease(x, y float64) {
	c.injectQueue = append(c.injectQueue, pointerEvent{x: x, y: y})
}

// InjectClick queues a press followed by a release at the same screen
// coordinates.
func (c *Composer) InjectClick(x, y float64) {
	c.InjectPress(x, y)
	c.InjectRelease(x, y)
}

// InjectDrag queues a full drag sequence: press at (fromX, fromY), linearly
// interpolated held moves over samples-2 intermediate points, and release at
// (toX, toY). Minimum samples is 2 (press plus release).
func (c *Composer) InjectDrag(fromX, fromY, toX, toY float64, samples int) {
	if samples < 2 {
		samples = 2
	}
	c.InjectPress(fromX, fromY)
	steps := samples - 2
	for i := 1; i <= steps; i++ {
		t := float64(i) / float64(steps+1)
		c.InjectMove(fromX+(toX-fromX)*t, fromY+(toY-fromY)*t)
	}
	c.InjectRelease(toX, toY)
}
