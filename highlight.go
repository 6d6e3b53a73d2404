package surfacegrid

import (
	"github.com/RoaringBitmap/roaring/v2"
)

// Selection is a set of row and column labels to highlight.
// The zero value is not usable; create one with NewSelection.
type Selection struct {
	ids *roaring.Bitmap
}

// NewSelection creates a selection holding the given labels.
func NewSelection(labels ...string) (*Selection, error) {
	s := &Selection{ids: roaring.New()}
	for _, l := range labels {
		if err := s.AddLabel(l); err != nil {
			return nil, err
		}
	}
	return s, nil
}

// Add inserts id into the selection.
func (s *Selection) Add(id LabelID) {
	s.ids.Add(uint32(id))
}

// AddLabel parses and inserts a "row-<n>" or "col-<n>" label.
func (s *Selection) AddLabel(label string) error {
	id, err := ParseLabel(label)
	if err != nil {
		return err
	}
	s.Add(id)
	return nil
}

// Remove deletes id from the selection.
func (s *Selection) Remove(id LabelID) {
	s.ids.Remove(uint32(id))
}

// Toggle flips membership of id and reports whether it is now selected.
func (s *Selection) Toggle(id LabelID) bool {
	if s.ids.CheckedRemove(uint32(id)) {
		return false
	}
	s.ids.Add(uint32(id))
	return true
}

// Contains reports whether id is selected.
func (s *Selection) Contains(id LabelID) bool {
	return s != nil && s.ids.Contains(uint32(id))
}

// Len returns the number of selected labels.
func (s *Selection) Len() int {
	if s == nil {
		return 0
	}
	return int(s.ids.GetCardinality())
}

// IsEmpty reports whether nothing is selected. A nil selection is empty.
func (s *Selection) IsEmpty() bool {
	return s == nil || s.ids.IsEmpty()
}

// Labels returns the selected labels in ascending LabelID order.
func (s *Selection) Labels() []string {
	if s.IsEmpty() {
		return nil
	}
	out := make([]string, 0, s.Len())
	it := s.ids.Iterator()
	for it.HasNext() {
		out = append(out, LabelID(it.Next()).String())
	}
	return out
}

// HighlightSubset is an exact-size copy of the selected segments of a
// SegmentBuffer. It owns its lanes.
type HighlightSubset struct {
	SourcePositions []float32
	TargetPositions []float32
	Colors          []uint8
	Count           int
}

// ExtractSubset copies the populated slots of buf whose label is selected.
//
// It returns nil when the selection is empty or matches no slot; callers
// should then omit the highlight layer rather than draw an empty one.
// The main buffer is only read.
func ExtractSubset(buf *SegmentBuffer, sel *Selection) *HighlightSubset {
	if buf == nil || sel.IsEmpty() {
		return nil
	}
	ids := buf.LabelIDs[:buf.Count]

	n := 0
	for _, id := range ids {
		if sel.Contains(id) {
			n++
		}
	}
	if n == 0 {
		return nil
	}

	out := &HighlightSubset{
		SourcePositions: make([]float32, 0, n*PositionStride),
		TargetPositions: make([]float32, 0, n*PositionStride),
		Colors:          make([]uint8, 0, n*ColorStride),
		Count:           n,
	}
	for k, id := range ids {
		if !sel.Contains(id) {
			continue
		}
		p, c := k*PositionStride, k*ColorStride
		out.SourcePositions = append(out.SourcePositions, buf.SourcePositions[p:p+PositionStride]...)
		out.TargetPositions = append(out.TargetPositions, buf.TargetPositions[p:p+PositionStride]...)
		out.Colors = append(out.Colors, buf.Colors[c:c+ColorStride]...)
	}
	return out
}
