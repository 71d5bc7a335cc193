package parallel

// Band is an inclusive range of pixel rows handled by one task.
type Band struct {
	MinY, MaxY int
}

// Rows returns the number of rows in the band.
func (b Band) Rows() int {
	return b.MaxY - b.MinY + 1
}

// SplitRows partitions the rows [minY, maxY] into at most n contiguous,
// non-overlapping bands whose sizes differ by at most one row. It returns
// nil for an empty range.
func SplitRows(minY, maxY, n int) []Band {
	rows := maxY - minY + 1
	if rows <= 0 {
		return nil
	}
	n = max(min(n, rows), 1)

	bands := make([]Band, 0, n)
	base, extra := rows/n, rows%n
	y := minY
	for i := range n {
		size := base
		if i < extra {
			size++
		}
		bands = append(bands, Band{MinY: y, MaxY: y + size - 1})
		y += size
	}
	return bands
}
