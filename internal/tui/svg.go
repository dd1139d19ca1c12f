package tui

import (
	"fmt"
	"strings"
)

// SVG renders the canvas as a vector image, one dot per lit pixel.
// scale is the edge length of one pixel in SVG units.
func (c *Canvas) SVG(scale float64) string {
	width := float64(c.Width) * scale * 2
	height := float64(c.Height) * scale * 4

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf(`<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="%.0f" height="%.0f" viewBox="0 0 %.0f %.0f">
<rect width="100%%" height="100%%" fill="#0a0a0a"/>
<g fill="#00ff00">
`, width, height, width, height))

	dotRadius := scale * 0.4
	for row := 0; row < c.Height; row++ {
		for col := 0; col < c.Width; col++ {
			bits := c.cells[row][col]
			if bits == brailleBase {
				continue
			}
			for subY := 0; subY < 4; subY++ {
				for subX := 0; subX < 2; subX++ {
					if bits&dotBits[subY][subX] == 0 {
						continue
					}
					cx := (float64(col*2+subX) + 0.5) * scale
					cy := (float64(row*4+subY) + 0.5) * scale
					sb.WriteString(fmt.Sprintf(`<circle cx="%.1f" cy="%.1f" r="%.1f"/>`+"\n", cx, cy, dotRadius))
				}
			}
		}
	}

	sb.WriteString("</g>\n</svg>\n")
	return sb.String()
}
