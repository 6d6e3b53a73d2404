package surfacegrid

import (
	"errors"
	"testing"
)

func TestLabelIDString(t *testing.T) {
	tests := []struct {
		id   LabelID
		want string
	}{
		{RowID(0), "row-0"},
		{RowID(5), "row-5"},
		{ColID(12), "col-12"},
		{ColID(0), "col-0"},
	}
	for _, tt := range tests {
		if got := tt.id.String(); got != tt.want {
			t.Errorf("%d.String() = %q, want %q", tt.id, got, tt.want)
		}
	}
}

func TestLabelIDParts(t *testing.T) {
	id := ColID(42)
	if id.Kind() != ColLabel || id.Index() != 42 {
		t.Errorf("ColID(42) = kind %v index %d", id.Kind(), id.Index())
	}
	id = RowID(9)
	if id.Kind() != RowLabel || id.Index() != 9 {
		t.Errorf("RowID(9) = kind %v index %d", id.Kind(), id.Index())
	}
}

func TestParseLabelRoundTrip(t *testing.T) {
	for i := 0; i < 300; i++ {
		for _, id := range []LabelID{RowID(i), ColID(i)} {
			got, err := ParseLabel(id.String())
			if err != nil {
				t.Fatalf("ParseLabel(%q) error: %v", id.String(), err)
			}
			if got != id {
				t.Fatalf("ParseLabel(%q) = %v, want %v", id.String(), got, id)
			}
		}
	}
}

func TestParseLabelInvalid(t *testing.T) {
	for _, s := range []string{"", "row-", "row--1", "col-x", "row-05", "line-3", "ROW-3", "col-+2", "row-99999999999"} {
		if _, err := ParseLabel(s); !errors.Is(err, ErrInvalidLabel) {
			t.Errorf("ParseLabel(%q) error = %v, want ErrInvalidLabel", s, err)
		}
	}
}

func TestLabelCacheInterns(t *testing.T) {
	var c labelCache
	c.reserve(3, 2)
	name := c.name(RowID(2))
	if name != "row-2" {
		t.Fatalf("name(RowID(2)) = %q", name)
	}
	c.reserve(3, 2)
	allocs := testing.AllocsPerRun(100, func() {
		c.reserve(3, 2)
		_ = c.name(ColID(1))
	})
	if allocs != 0 {
		t.Errorf("interned lookup allocated %v times", allocs)
	}
	c.reserve(5, 4)
	if c.name(ColID(3)) != "col-3" || c.name(RowID(4)) != "row-4" {
		t.Error("reserve did not extend the cache")
	}
}
