package sensitivity

// Spectrum is a sparse harmonic-indexed table of complex values. Entry (n, k)
// is the contribution of harmonic order n when the fundamental sits at grid
// index k (both 1-based, matching the theory). Only pairs whose harmonic
// frequency lies on the grid, n k <= M, are stored; At reports absence for
// everything else instead of a NaN sentinel.
type Spectrum struct {
	gridSize int
	orders   [][]complex128
}

func newSpectrum(gridSize, maxOrder int) *Spectrum {
	orders := make([][]complex128, maxOrder)
	for n := 1; n <= maxOrder; n++ {
		orders[n-1] = make([]complex128, gridSize/n)
	}
	return &Spectrum{gridSize: gridSize, orders: orders}
}

// GridSize returns the number of fundamental frequency bins M.
func (s *Spectrum) GridSize() int {
	return s.gridSize
}

// MaxOrder returns the highest harmonic order carried by the table.
func (s *Spectrum) MaxOrder() int {
	return len(s.orders)
}

// At returns the entry for harmonic order n at fundamental index k (both
// 1-based) and whether that pair lies on the grid.
func (s *Spectrum) At(n, k int) (complex128, bool) {
	if n < 1 || n > len(s.orders) || k < 1 || k > len(s.orders[n-1]) {
		return 0, false
	}
	return s.orders[n-1][k-1], true
}

// Order returns the stored row for harmonic order n; index i of the row
// corresponds to fundamental index i+1. The slice is shared, not copied.
func (s *Spectrum) Order(n int) []complex128 {
	if n < 1 || n > len(s.orders) {
		return nil
	}
	return s.orders[n-1]
}

func (s *Spectrum) set(n, k int, v complex128) {
	s.orders[n-1][k-1] = v
}
