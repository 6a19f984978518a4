package notebook

// EndOfNotebook selects cells through the last cell when passed as the end
// bound of Slice.
const EndOfNotebook = -1

// Slice returns a copy of nb whose cell list is the half-open interval
// [start, end) of the original. Bounds follow Python slice semantics:
// out-of-range values clamp instead of erroring, and EndOfNotebook (or any
// negative end) means "through the last cell". The input is never mutated.
func Slice(nb *Notebook, start, end int) *Notebook {
	n := len(nb.Cells)

	if start < 0 {
		start = 0
	}
	if start > n {
		start = n
	}
	if end < 0 || end > n {
		end = n
	}
	if end < start {
		end = start
	}

	out := &Notebook{
		Metadata:      nb.Metadata,
		NBFormat:      nb.NBFormat,
		NBFormatMinor: nb.NBFormatMinor,
	}
	out.Cells = make([]Cell, end-start)
	copy(out.Cells, nb.Cells[start:end])
	return out
}
