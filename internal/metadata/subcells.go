package metadata

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/alnah/go-nb2html/notebook"
)

// parseSubcells decodes a subcells metadata value into a cell range.
// Accepted forms: a two-element sequence ([1, 5] parsed from YAML), or a
// literal pair string such as "(1, 5)", "[1, 5]", or "1,5". A missing,
// null, or "None" end bound selects through the last cell.
func parseSubcells(raw any) (start, end int, err error) {
	switch value := raw.(type) {
	case []any:
		return subcellsFromSlice(value)
	case string:
		return subcellsFromString(value)
	default:
		return 0, 0, fmt.Errorf("%w: %v", ErrInvalidSubcells, raw)
	}
}

func subcellsFromSlice(items []any) (int, int, error) {
	if len(items) != 2 {
		return 0, 0, fmt.Errorf("%w: want 2 elements, got %d", ErrInvalidSubcells, len(items))
	}
	start, err := subcellBound(items[0], 0)
	if err != nil {
		return 0, 0, err
	}
	end, err := subcellBound(items[1], notebook.EndOfNotebook)
	if err != nil {
		return 0, 0, err
	}
	return start, end, nil
}

func subcellsFromString(value string) (int, int, error) {
	trimmed := strings.Trim(strings.TrimSpace(value), "()[]")
	parts := strings.Split(trimmed, ",")
	if len(parts) != 2 {
		return 0, 0, fmt.Errorf("%w: %q", ErrInvalidSubcells, value)
	}
	start, err := subcellBound(strings.TrimSpace(parts[0]), 0)
	if err != nil {
		return 0, 0, err
	}
	end, err := subcellBound(strings.TrimSpace(parts[1]), notebook.EndOfNotebook)
	if err != nil {
		return 0, 0, err
	}
	return start, end, nil
}

// subcellBound coerces one bound. nil and the literals "None", "null", and
// "" mean unbounded and resolve to the fallback.
func subcellBound(raw any, unbounded int) (int, error) {
	switch value := raw.(type) {
	case nil:
		return unbounded, nil
	case int:
		return value, nil
	case int64:
		return int(value), nil
	case uint64:
		return int(value), nil
	case float64:
		return int(value), nil
	case string:
		switch value {
		case "", "None", "null", "~":
			return unbounded, nil
		}
		n, err := strconv.Atoi(value)
		if err != nil {
			return 0, fmt.Errorf("%w: %q", ErrInvalidSubcells, value)
		}
		return n, nil
	default:
		return 0, fmt.Errorf("%w: %v", ErrInvalidSubcells, raw)
	}
}
