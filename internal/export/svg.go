// Package export renders stored runs as SVG.
package export

import (
	"fmt"
	"strings"
)

type Point struct{ X, Y float64 }

// TrajectoryPoints maps a run's samples onto plot coordinates: the falling
// mass plots height against time, the projectile plots its x/y path.
func TrajectoryPoints(system string, states [][]float64, times []float64) []Point {
	points := make([]Point, 0, len(states))
	for i, s := range states {
		if len(s) == 0 {
			continue
		}
		if system == "projectile" && len(s) >= 2 {
			points = append(points, Point{X: s[0], Y: s[1]})
		} else {
			points = append(points, Point{X: times[i], Y: s[0]})
		}
	}
	return points
}

// TrajectorySVG draws a polyline through the points, scaled to fit with 10%
// padding on a dark background.
func TrajectorySVG(points []Point, width, height int, strokeColor string) string {
	if len(points) < 2 {
		return ""
	}

	minX, maxX := points[0].X, points[0].X
	minY, maxY := points[0].Y, points[0].Y
	for _, p := range points {
		if p.X < minX {
			minX = p.X
		}
		if p.X > maxX {
			maxX = p.X
		}
		if p.Y < minY {
			minY = p.Y
		}
		if p.Y > maxY {
			maxY = p.Y
		}
	}

	rangeX := maxX - minX
	rangeY := maxY - minY
	if rangeX == 0 {
		rangeX = 1
	}
	if rangeY == 0 {
		rangeY = 1
	}
	minX -= rangeX * 0.1
	maxX += rangeX * 0.1
	minY -= rangeY * 0.1
	maxY += rangeY * 0.1
	rangeX = maxX - minX
	rangeY = maxY - minY

	var sb strings.Builder

	sb.WriteString(fmt.Sprintf(`<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="%d" height="%d" viewBox="0 0 %d %d">
<rect width="100%%" height="100%%" fill="#0a0a0a"/>
<path fill="none" stroke="%s" stroke-width="1.5" d="M`,
		width, height, width, height, strokeColor))

	for i, p := range points {
		x := (p.X - minX) / rangeX * float64(width)
		y := float64(height) - (p.Y-minY)/rangeY*float64(height)

		if i == 0 {
			sb.WriteString(fmt.Sprintf("%.1f,%.1f", x, y))
		} else {
			sb.WriteString(fmt.Sprintf(" L%.1f,%.1f", x, y))
		}
	}

	sb.WriteString(`"/>
</svg>`)
	return sb.String()
}
