package surfacegrid

import (
	"fmt"
	"strconv"
	"strings"
)

// LabelKind says whether a label names a grid row or a grid column.
type LabelKind uint8

const (
	// RowLabel names the line of row edges at a fixed row index.
	RowLabel LabelKind = iota
	// ColLabel names the line of column edges at a fixed column index.
	ColLabel
)

const (
	rowPrefix = "row-"
	colPrefix = "col-"
)

// LabelID is the numeric form of a segment label: index<<1 | kind.
// It is dense for small grids, which keeps selection bitmaps compact.
type LabelID uint32

// RowID returns the label of row j.
func RowID(j int) LabelID { return LabelID(j)<<1 | LabelID(RowLabel) }

// ColID returns the label of column i.
func ColID(i int) LabelID { return LabelID(i)<<1 | LabelID(ColLabel) }

// Kind returns whether the label names a row or a column.
func (id LabelID) Kind() LabelKind { return LabelKind(id & 1) }

// Index returns the row or column index.
func (id LabelID) Index() int { return int(id >> 1) }

// String returns the label in "row-5" / "col-12" form.
// It allocates; the pipeline uses the interned names instead.
func (id LabelID) String() string {
	if id.Kind() == RowLabel {
		return rowPrefix + strconv.Itoa(id.Index())
	}
	return colPrefix + strconv.Itoa(id.Index())
}

// ParseLabel parses a "row-<n>" or "col-<n>" label.
func ParseLabel(s string) (LabelID, error) {
	var kind LabelKind
	var rest string
	switch {
	case strings.HasPrefix(s, rowPrefix):
		kind, rest = RowLabel, s[len(rowPrefix):]
	case strings.HasPrefix(s, colPrefix):
		kind, rest = ColLabel, s[len(colPrefix):]
	default:
		return 0, fmt.Errorf("%w: %q", ErrInvalidLabel, s)
	}
	n, err := strconv.ParseUint(rest, 10, 31)
	if err != nil || (len(rest) > 1 && rest[0] == '0') {
		return 0, fmt.Errorf("%w: %q", ErrInvalidLabel, s)
	}
	return LabelID(n)<<1 | LabelID(kind), nil
}

// labelCache interns label strings by index so a fill over a grid of the same
// size builds no strings at all.
type labelCache struct {
	rows []string
	cols []string
}

// reserve makes sure names exist for rows [0, rows) and columns [0, cols).
func (c *labelCache) reserve(rows, cols int) {
	for j := len(c.rows); j < rows; j++ {
		c.rows = append(c.rows, RowID(j).String())
	}
	for i := len(c.cols); i < cols; i++ {
		c.cols = append(c.cols, ColID(i).String())
	}
}

// name returns the interned string for id. reserve must have covered it.
func (c *labelCache) name(id LabelID) string {
	if id.Kind() == RowLabel {
		return c.rows[id.Index()]
	}
	return c.cols[id.Index()]
}
