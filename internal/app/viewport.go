package app

// Viewport is a scrollable list of lines with a cursor row.
type Viewport struct {
	lines  []string
	cursor int
	height int
}

// NewViewport creates a viewport over lines. height is the number of
// visible rows and is at least 1.
func NewViewport(lines []string, height int) *Viewport {
	v := &Viewport{}
	v.SetLines(lines)
	v.SetHeight(height)
	return v
}

// SetLines replaces the content, keeping the cursor in range.
func (v *Viewport) SetLines(lines []string) {
	v.lines = append([]string(nil), lines...)
	v.clamp()
}

// SetHeight sets the number of visible rows.
func (v *Viewport) SetHeight(height int) {
	v.height = max(height, 1)
}

// Height returns the number of visible rows.
func (v *Viewport) Height() int {
	return v.height
}

// Len returns the number of lines.
func (v *Viewport) Len() int {
	return len(v.lines)
}

// Cursor returns the cursor row.
func (v *Viewport) Cursor() int {
	return v.cursor
}

// Down moves the cursor n rows down.
func (v *Viewport) Down(n int) {
	v.cursor += n
	v.clamp()
}

// Up moves the cursor n rows up.
func (v *Viewport) Up(n int) {
	v.cursor -= n
	v.clamp()
}

// Top moves the cursor to the first line.
func (v *Viewport) Top() {
	v.cursor = 0
}

// Bottom moves the cursor to the last line.
func (v *Viewport) Bottom() {
	v.cursor = len(v.lines) - 1
	v.clamp()
}

// HalfDown moves the cursor half a screen down.
func (v *Viewport) HalfDown() {
	v.Down(max(v.height/2, 1))
}

// HalfUp moves the cursor half a screen up.
func (v *Viewport) HalfUp() {
	v.Up(max(v.height/2, 1))
}

// Visible returns the lines on screen and the index of the first one.
// The window keeps the cursor visible.
func (v *Viewport) Visible() ([]string, int) {
	if len(v.lines) <= v.height {
		return v.lines, 0
	}
	top := v.cursor - v.height/2
	top = max(top, 0)
	top = min(top, len(v.lines)-v.height)
	return v.lines[top : top+v.height], top
}

func (v *Viewport) clamp() {
	if v.cursor >= len(v.lines) {
		v.cursor = len(v.lines) - 1
	}
	if v.cursor < 0 {
		v.cursor = 0
	}
}
