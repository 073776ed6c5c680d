package tui

import (
	"fmt"
	"strings"

	"github.com/1broseidon/snaptile/internal/config"
	"github.com/1broseidon/snaptile/internal/tiling"
)

// previewMonitor is the screen the preview simulates.
var previewMonitor = tiling.Rect{X: 0, Y: 0, Width: 1920, Height: 1080}

func summarizeGrid(cfg *config.Config) string {
	if cfg == nil {
		return ""
	}
	grid := cfg.Grid()
	if grid.ColumnSize <= 0 || grid.RowSize <= 0 {
		return "invalid grid"
	}
	cell := grid.Cell(previewMonitor)
	if cell.Width <= 0 || cell.Height <= 0 {
		return "invalid grid"
	}
	return fmt.Sprintf("%d×%d cells • %d×%d px each on %d×%d",
		previewMonitor.Width/cell.Width, previewMonitor.Height/cell.Height,
		cell.Width, cell.Height, previewMonitor.Width, previewMonitor.Height)
}

// previewTiles returns sample snapped rectangles: a left half and two
// stacked right quarters, with the configured gaps applied.
func previewTiles(cfg *config.Config) []tiling.Rect {
	grid := cfg.Grid()
	if grid.ColumnSize <= 0 || grid.RowSize <= 0 {
		return nil
	}
	cell := grid.Cell(previewMonitor)
	if cell.Width <= 0 || cell.Height <= 0 {
		return nil
	}

	cols := previewMonitor.Width / cell.Width
	rows := previewMonitor.Height / cell.Height
	if cols < 2 || rows < 2 {
		return nil
	}
	left := cols / 2 * cell.Width
	top := rows / 2 * cell.Height
	samples := []tiling.Rect{
		{X: 0, Y: 0, Width: left, Height: rows * cell.Height},
		{X: left, Y: 0, Width: cols*cell.Width - left, Height: top},
		{X: left, Y: top, Width: cols*cell.Width - left, Height: rows*cell.Height - top},
	}

	areas := []tiling.Rect{previewMonitor}
	rects := make([]tiling.Rect, 0, len(samples))
	for _, s := range samples {
		if r, ok := grid.Change(s, previewMonitor, cell, tiling.Rect{}, areas); ok {
			rects = append(rects, r)
		}
	}
	return rects
}

// renderGridPreview draws the sample tiles over a dotted cell grid.
func renderGridPreview(cfg *config.Config, width, height int) []string {
	if cfg == nil || width < 5 || height < 3 {
		return emptyCanvas(width, height)
	}

	canvas := make([][]rune, height)
	for i := range canvas {
		canvas[i] = make([]rune, width)
		for j := range canvas[i] {
			canvas[i][j] = ' '
		}
	}

	grid := cfg.Grid()
	if grid.ColumnSize > 0 && grid.RowSize > 0 {
		cell := grid.Cell(previewMonitor)
		if cell.Width > 0 && cell.Height > 0 {
			for y := 0; y < previewMonitor.Height; y += cell.Height {
				for x := 0; x < previewMonitor.Width; x += cell.Width {
					cx := x * width / previewMonitor.Width
					cy := y * height / previewMonitor.Height
					if cx > 0 && cx < width-1 && cy > 0 && cy < height-1 {
						canvas[cy][cx] = '·'
					}
				}
			}
		}
	}

	for i, rect := range previewTiles(cfg) {
		drawTile(canvas, rect, i+1, previewMonitor.Width, previewMonitor.Height, width, height)
	}

	drawBorder(canvas, width, height)

	lines := make([]string, height)
	for i, row := range canvas {
		lines[i] = string(row)
	}
	return lines
}

func drawTile(canvas [][]rune, rect tiling.Rect, num int, monW, monH, canvasW, canvasH int) {
	// Map rect coordinates to canvas coordinates
	x1 := rect.X * canvasW / monW
	y1 := rect.Y * canvasH / monH
	x2 := (rect.X + rect.Width) * canvasW / monW
	y2 := (rect.Y + rect.Height) * canvasH / monH

	// Clamp to canvas bounds
	if x1 < 1 {
		x1 = 1
	}
	if y1 < 1 {
		y1 = 1
	}
	if x2 >= canvasW-1 {
		x2 = canvasW - 2
	}
	if y2 >= canvasH-1 {
		y2 = canvasH - 2
	}

	// Need at least 2x2 for a tile
	if x2 <= x1 || y2 <= y1 {
		return
	}

	for x := x1; x <= x2; x++ {
		canvas[y1][x] = '─'
		canvas[y2][x] = '─'
	}
	for y := y1; y <= y2; y++ {
		canvas[y][x1] = '│'
		canvas[y][x2] = '│'
	}
	canvas[y1][x1] = '┌'
	canvas[y1][x2] = '┐'
	canvas[y2][x1] = '└'
	canvas[y2][x2] = '┘'

	// Draw tile number in center
	centerY := (y1 + y2) / 2
	centerX := (x1 + x2) / 2
	if centerY > y1 && centerY < y2 && centerX > x1 && centerX < x2 {
		label := fmt.Sprintf("%d", num)
		startX := centerX - len(label)/2
		for i, r := range label {
			if startX+i > x1 && startX+i < x2 {
				canvas[centerY][startX+i] = r
			}
		}
	}
}

func drawBorder(canvas [][]rune, width, height int) {
	for x := 0; x < width; x++ {
		canvas[0][x] = '═'
		canvas[height-1][x] = '═'
	}
	for y := 0; y < height; y++ {
		canvas[y][0] = '║'
		canvas[y][width-1] = '║'
	}
	canvas[0][0] = '╔'
	canvas[0][width-1] = '╗'
	canvas[height-1][0] = '╚'
	canvas[height-1][width-1] = '╝'
}

func emptyCanvas(width, height int) []string {
	if width < 0 {
		width = 0
	}
	if height < 0 {
		height = 0
	}
	lines := make([]string, height)
	empty := strings.Repeat(" ", width)
	for i := range lines {
		lines[i] = empty
	}
	return lines
}
