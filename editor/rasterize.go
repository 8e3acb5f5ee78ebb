package editor

// lineCells walks the supercover DDA from a to b: every cell the segment
// between the two cell centers passes through, diagonal crossings
// included. Endpoints always appear; a == b yields one cell.
func lineCells(a, b Cell) []Cell {
	dx, dz := b.X-a.X, b.Z-a.Z
	stepX, stepZ := 1, 1
	if dx < 0 {
		stepX = -1
		dx = -dx
	}
	if dz < 0 {
		stepZ = -1
		dz = -dz
	}

	cells := []Cell{a}
	x, z := a.X, a.Z
	// Crossing times scaled by 2*dx*dz to stay in integers; starting from
	// a cell center puts the first boundary half a cell away
	tMaxX, tMaxZ := dz, dx
	tDeltaX, tDeltaZ := 2*dz, 2*dx

	for x != b.X || z != b.Z {
		switch {
		case dx == 0:
			z += stepZ
		case dz == 0:
			x += stepX
		case tMaxX < tMaxZ:
			x += stepX
			tMaxX += tDeltaX
		case tMaxX > tMaxZ:
			z += stepZ
			tMaxZ += tDeltaZ
		default:
			// Exact corner crossing: step both axes at once
			x += stepX
			z += stepZ
			tMaxX += tDeltaX
			tMaxZ += tDeltaZ
		}
		cells = append(cells, Cell{X: x, Z: z})
	}
	return cells
}

// rectCells returns every cell in the inclusive rectangle spanned by the
// two corners, row-major
func rectCells(a, b Cell) []Cell {
	x0, x1 := a.X, b.X
	if x0 > x1 {
		x0, x1 = x1, x0
	}
	z0, z1 := a.Z, b.Z
	if z0 > z1 {
		z0, z1 = z1, z0
	}
	cells := make([]Cell, 0, (x1-x0+1)*(z1-z0+1))
	for z := z0; z <= z1; z++ {
		for x := x0; x <= x1; x++ {
			cells = append(cells, Cell{X: x, Z: z})
		}
	}
	return cells
}
