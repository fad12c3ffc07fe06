package game

import "math"

// Cell represents a spatial partition cell containing entities
type Cell struct {
	// Entities in this cell (preallocated slice)
	Entities []*Entity

	// Current count of entities
	Count int
}

// NewCell creates a new cell with preallocated entity storage
func NewCell(initialCapacity int) *Cell {
	return &Cell{
		Entities: make([]*Entity, 0, initialCapacity),
	}
}

// AddEntity adds an entity to this cell
func (c *Cell) AddEntity(entity *Entity) {
	if c.Count < len(c.Entities) {
		c.Entities[c.Count] = entity
	} else {
		c.Entities = append(c.Entities, entity)
	}
	c.Count++
}

// GetEntities returns the entities in this cell
func (c *Cell) GetEntities() []*Entity {
	return c.Entities[:c.Count]
}

// Clear removes all entities from the cell (but keeps capacity)
func (c *Cell) Clear() {
	for i := 0; i < c.Count; i++ {
		c.Entities[i] = nil
	}
	c.Count = 0
}

// Grid is a uniform bucket grid over the play area, rebuilt for each
// collision query. Entities outside the area land in the border cells.
type Grid struct {
	bounds   Rect
	cellSize float64
	cols     int
	rows     int
	cells    [][]*Cell

	// largest half extent of the bucketed entities
	reach float64
}

// NewGrid preallocates a grid covering bounds with square cells
func NewGrid(bounds Rect, cellSize float64) *Grid {
	if cellSize <= 0 {
		cellSize = 64
	}
	cols := max(1, int(math.Ceil(bounds.Width/cellSize)))
	rows := max(1, int(math.Ceil(bounds.Height/cellSize)))

	cells := make([][]*Cell, cols)
	for x := 0; x < cols; x++ {
		cells[x] = make([]*Cell, rows)
		for y := 0; y < rows; y++ {
			cells[x][y] = NewCell(8)
		}
	}
	return &Grid{bounds: bounds, cellSize: cellSize, cols: cols, rows: rows, cells: cells}
}

// CellFor converts a position to clamped cell coordinates
func (g *Grid) CellFor(p Vector2) (int, int) {
	cx := int(math.Floor((p.X - g.bounds.X) / g.cellSize))
	cy := int(math.Floor((p.Y - g.bounds.Y) / g.cellSize))
	cx = max(0, min(cx, g.cols-1))
	cy = max(0, min(cy, g.rows-1))
	return cx, cy
}

// Reset empties every cell
func (g *Grid) Reset() {
	for x := range g.cells {
		for _, c := range g.cells[x] {
			c.Clear()
		}
	}
	g.reach = 0
}

// Insert buckets e by its centre
func (g *Grid) Insert(e *Entity) {
	cx, cy := g.CellFor(e.Pos)
	g.cells[cx][cy].AddEntity(e)
	b := e.Bounds()
	g.reach = max(g.reach, b.Width/2, b.Height/2)
}

// Near returns every bucketed entity whose centre may lie close enough to
// touch e. Callers still run the exact overlap test.
func (g *Grid) Near(e *Entity, out []*Entity) []*Entity {
	b := e.Bounds()
	minX, minY := g.CellFor(Vec(b.Left()-g.reach, b.Top()-g.reach))
	maxX, maxY := g.CellFor(Vec(b.Right()+g.reach, b.Bottom()+g.reach))
	for x := minX; x <= maxX; x++ {
		for y := minY; y <= maxY; y++ {
			out = append(out, g.cells[x][y].GetEntities()...)
		}
	}
	return out
}
