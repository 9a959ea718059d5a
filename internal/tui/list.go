package tui

// listCursor tracks the cursor and scroll offset of a list view
type listCursor struct {
	cursor     int
	offset     int
	maxVisible int
}

// Index returns the cursor position
func (c *listCursor) Index() int { return c.cursor }

// SetHeight sets how many rows fit on screen
func (c *listCursor) SetHeight(h int) {
	if h < 1 {
		h = 1
	}
	c.maxVisible = h
	c.ensureVisible()
}

// Move shifts the cursor by delta, staying within count items
func (c *listCursor) Move(delta, count int) {
	if count == 0 {
		return
	}
	c.cursor += delta
	c.Clamp(count)
}

// Top moves the cursor to the first item
func (c *listCursor) Top() {
	c.cursor = 0
	c.offset = 0
}

// Bottom moves the cursor to the last item
func (c *listCursor) Bottom(count int) {
	c.cursor = count - 1
	c.Clamp(count)
}

// HalfPage returns half the visible height, at least one row
func (c *listCursor) HalfPage() int {
	if c.maxVisible < 2 {
		return 1
	}
	return c.maxVisible / 2
}

// Clamp keeps the cursor inside a list of count items
func (c *listCursor) Clamp(count int) {
	if c.cursor >= count {
		c.cursor = count - 1
	}
	if c.cursor < 0 {
		c.cursor = 0
	}
	c.ensureVisible()
}

// Window returns the [start, end) range of rows to render
func (c *listCursor) Window(count int) (int, int) {
	start := c.offset
	if start > count {
		start = count
	}
	end := count
	if c.maxVisible > 0 && start+c.maxVisible < end {
		end = start + c.maxVisible
	}
	return start, end
}

func (c *listCursor) ensureVisible() {
	// Don't adjust offset if size hasn't been set yet
	if c.maxVisible <= 0 {
		return
	}
	if c.cursor < c.offset {
		c.offset = c.cursor
	}
	if c.cursor >= c.offset+c.maxVisible {
		c.offset = c.cursor - c.maxVisible + 1
	}
}
