package runtime

import "github.com/odvcencio/cellframe/pkg/ui/backend"

// PaintStats describes one paint pass.
type PaintStats struct {
	// Cells is the number of cells sent to the device.
	Cells int
	// ColorChanges counts sent cells whose colors differ from the cell
	// sent before them, the first sent cell included.
	ColorChanges int
}

// Paint sends every back-buffer cell that differs from the front buffer to
// dev in row-major order, then makes the front buffer match the back one.
// The caller flushes the device afterwards.
func (b *Buffer) Paint(dev backend.RenderTarget) PaintStats {
	var stats PaintStats
	var last backend.Style
	sent := false

	for y := 0; y < b.height; y++ {
		row := y * b.width
		for x := 0; x < b.width; x++ {
			c := b.back[row+x]
			if !b.full && c == b.front[row+x] {
				continue
			}
			b.front[row+x] = c
			if c.Rune == 0 {
				continue
			}
			if !sent || c.Style != last {
				stats.ColorChanges++
				last = c.Style
				sent = true
			}
			dev.SetContent(x, y, c.Rune, nil, c.Style)
			stats.Cells++
		}
	}
	b.full = false
	return stats
}
