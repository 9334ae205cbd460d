package compressor

import (
	"fmt"
	"testing"
)

func TestPacker_Pack(t *testing.T) {
	x := 0 // an empty entry

	allPackers := func() []Packer {
		return []Packer{
			&SharedRowTable{},
			NewDisplacementTable(x),
			NewActionTable(x),
		}
	}

	tests := []struct {
		original []int
		rowCount int
		colCount int
	}{
		{
			original: []int{
				1, 1, 1, 1, 1,
				1, 1, 1, 1, 1,
				1, 1, 1, 1, 1,
			},
			rowCount: 3,
			colCount: 5,
		},
		{
			original: []int{
				x, x, x, x, x,
				x, x, x, x, x,
				x, x, x, x, x,
			},
			rowCount: 3,
			colCount: 5,
		},
		{
			original: []int{
				1, 1, 1, 1, 1,
				x, x, x, x, x,
				1, 1, 1, 1, 1,
			},
			rowCount: 3,
			colCount: 5,
		},
		{
			original: []int{
				1, x, 1, 1, 1,
				1, 1, x, 1, 1,
				1, 1, 1, x, 1,
			},
			rowCount: 3,
			colCount: 5,
		},
		// an ACTION table: negative entries shift, positive entries reduce
		{
			original: []int{
				-5, x, x, -4, x, x,
				x, -6, x, x, x, 1,
				x, 2, -7, x, 2, 2,
				x, 4, 4, x, 4, 4,
				-5, x, x, -4, x, x,
				x, 4, 4, x, 4, 4,
			},
			rowCount: 6,
			colCount: 6,
		},
	}
	for i, tt := range tests {
		for _, p := range allPackers() {
			t.Run(fmt.Sprintf("%T #%v", p, i), func(t *testing.T) {
				dup := make([]int, len(tt.original))
				copy(dup, tt.original)

				orig, err := NewTable(tt.original, tt.colCount)
				if err != nil {
					t.Fatal(err)
				}
				err = p.Pack(orig)
				if err != nil {
					t.Fatal(err)
				}
				rowCount, colCount := p.Size()
				if rowCount != tt.rowCount || colCount != tt.colCount {
					t.Fatalf("unexpected table size; want: %vx%v, got: %vx%v", tt.rowCount, tt.colCount, rowCount, colCount)
				}
				for i := 0; i < tt.rowCount; i++ {
					for j := 0; j < tt.colCount; j++ {
						v, err := p.Lookup(i, j)
						if err != nil {
							t.Fatal(err)
						}
						expected := tt.original[i*tt.colCount+j]
						if v != expected {
							t.Fatalf("unexpected entry (%v, %v); want: %v, got: %v", i, j, expected, v)
						}
					}
				}

				if _, err := p.Lookup(0, -1); err == nil {
					t.Fatalf("expected error didn't occur (0, -1)")
				}
				if _, err := p.Lookup(-1, 0); err == nil {
					t.Fatalf("expected error didn't occur (-1, 0)")
				}
				if _, err := p.Lookup(rowCount-1, colCount); err == nil {
					t.Fatalf("expected error didn't occur (%v, %v)", rowCount-1, colCount)
				}
				if _, err := p.Lookup(rowCount, colCount-1); err == nil {
					t.Fatalf("expected error didn't occur (%v, %v)", rowCount, colCount-1)
				}

				for i := range tt.original {
					if tt.original[i] != dup[i] {
						t.Fatalf("packing modified the original table at %v; want: %v, got: %v", i, dup[i], tt.original[i])
					}
				}
			})
		}
	}
}

func TestSharedRowTable_EntryCount(t *testing.T) {
	orig, err := NewTable([]int{
		1, 2,
		1, 2,
		3, 4,
		1, 2,
	}, 2)
	if err != nil {
		t.Fatal(err)
	}
	p := &SharedRowTable{}
	err = p.Pack(orig)
	if err != nil {
		t.Fatal(err)
	}
	if p.EntryCount() != 4 {
		t.Fatalf("unexpected entry count; want: 4, got: %v", p.EntryCount())
	}
	if fmt.Sprint(p.RowRefs) != "[0 0 1 0]" {
		t.Fatalf("unexpected row references: %v", p.RowRefs)
	}
}

func TestDisplacementTable_Overlay(t *testing.T) {
	x := 0
	orig, err := NewTable([]int{
		1, x, x, x,
		x, 2, x, x,
		x, x, 3, x,
		x, x, x, 4,
	}, 4)
	if err != nil {
		t.Fatal(err)
	}
	p := NewDisplacementTable(x)
	err = p.Pack(orig)
	if err != nil {
		t.Fatal(err)
	}
	// Each row takes the offset following the previous one.
	if p.EntryCount() != 7 {
		t.Fatalf("unexpected entry count; want: 7, got: %v", p.EntryCount())
	}
	if fmt.Sprint(p.Offsets) != "[0 1 2 3]" {
		t.Fatalf("unexpected offsets: %v", p.Offsets)
	}
}

func TestNewTable(t *testing.T) {
	tests := []struct {
		entries  []int
		colCount int
	}{
		{entries: nil, colCount: 1},
		{entries: []int{1, 2}, colCount: 0},
		{entries: []int{1, 2, 3}, colCount: 2},
	}
	for _, tt := range tests {
		_, err := NewTable(tt.entries, tt.colCount)
		if err == nil {
			t.Fatalf("expected error didn't occur; entries: %v, column count: %v", tt.entries, tt.colCount)
		}
	}
}
