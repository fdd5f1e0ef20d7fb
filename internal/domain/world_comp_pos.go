package domain

import "math"

type Position struct {
	X int `json:"x"`
	Y int `json:"y"`
}

// Directions8 - восемь соседних клеток.
var Directions8 = [8]Position{
	{X: -1, Y: -1}, {X: 0, Y: -1}, {X: 1, Y: -1},
	{X: -1, Y: 0}, {X: 1, Y: 0},
	{X: -1, Y: 1}, {X: 0, Y: 1}, {X: 1, Y: 1},
}

// DistanceTo - евклидово расстояние.
func (p Position) DistanceTo(other Position) float64 {
	return math.Sqrt(float64(p.DistanceSquaredTo(other)))
}

// DistanceSquaredTo - квадрат расстояния, для сравнений.
func (p Position) DistanceSquaredTo(other Position) int {
	dx := p.X - other.X
	dy := p.Y - other.Y
	return dx*dx + dy*dy
}

// Steps - число ходов короля между клетками.
func (p Position) Steps(other Position) int {
	dx, dy := abs(p.X-other.X), abs(p.Y-other.Y)
	if dx > dy {
		return dx
	}
	return dy
}

// IsAdjacent: одна из восьми соседних клеток, но не та же самая.
func (p Position) IsAdjacent(other Position) bool {
	return p.Steps(other) == 1
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

// Shift возвращает новую позицию со смещением.
func (p Position) Shift(dx, dy int) Position {
	return Position{X: p.X + dx, Y: p.Y + dy}
}
