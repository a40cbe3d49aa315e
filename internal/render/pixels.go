package render

import "image/color"

// fillPaletteRGBA converts cell values into RGBA pixels using a palette. When
// the palette is empty the buffer is cleared to transparent black. Cells are
// stored bottom row first; with flip set the top row is written first so the
// image reads upright.
func fillPaletteRGBA(buf []byte, cells []uint8, palette []color.RGBA, w int, flip bool) {
	if w <= 0 {
		return
	}
	h := len(cells) / w
	last := len(palette) - 1
	for i, c := range cells {
		row := i / w
		if flip {
			row = h - 1 - row
		}
		base := (row*w + i%w) * 4
		if last < 0 {
			buf[base+0] = 0
			buf[base+1] = 0
			buf[base+2] = 0
			buf[base+3] = 0
			continue
		}
		idx := int(c)
		if idx > last {
			idx = last
		}
		col := palette[idx]
		buf[base+0] = col.R
		buf[base+1] = col.G
		buf[base+2] = col.B
		buf[base+3] = col.A
	}
}
