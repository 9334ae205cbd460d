// Package compressor packs the ACTION and GOTO tables of a compiled grammar. Both tables
// are mostly empty, and many states share the same ACTION row.
package compressor

import (
	"fmt"
	"sort"

	"github.com/cnf/structhash"
)

// Table is a dense row-major table.
type Table struct {
	entries  []int
	rowCount int
	colCount int
}

func NewTable(entries []int, colCount int) (*Table, error) {
	if len(entries) == 0 {
		return nil, fmt.Errorf("a table needs at least one entry")
	}
	if colCount <= 0 {
		return nil, fmt.Errorf("a table needs at least one column")
	}
	if len(entries)%colCount != 0 {
		return nil, fmt.Errorf("%v entries do not fill rows of %v columns", len(entries), colCount)
	}

	return &Table{
		entries:  entries,
		rowCount: len(entries) / colCount,
		colCount: colCount,
	}, nil
}

func (t *Table) Size() (int, int) {
	return t.rowCount, t.colCount
}

func (t *Table) row(r int) []int {
	return t.entries[r*t.colCount : (r+1)*t.colCount]
}

// Packer is a table representation answering the same lookups as the Table it packed.
type Packer interface {
	Pack(t *Table) error
	Lookup(row, col int) (int, error)
	Size() (int, int)

	// EntryCount is the number of stored entries.
	EntryCount() int
}

var (
	_ Packer = &SharedRowTable{}
	_ Packer = &DisplacementTable{}
	_ Packer = &ActionTable{}
)

// SharedRowTable stores every distinct row once. RowRefs maps an original row to its
// stored row.
type SharedRowTable struct {
	Rows     []int `json:"rows"`
	RowRefs  []int `json:"row_refs"`
	RowCount int   `json:"row_count"`
	ColCount int   `json:"col_count"`
}

func (t *SharedRowTable) Pack(orig *Table) error {
	var rows []int
	refs := make([]int, orig.rowCount)
	seen := map[string]int{}
	for r := 0; r < orig.rowCount; r++ {
		row := orig.row(r)
		key := string(structhash.Sha1(row, 1))
		ref, ok := seen[key]
		if !ok {
			ref = len(seen)
			seen[key] = ref
			rows = append(rows, row...)
		}
		refs[r] = ref
	}

	t.Rows = rows
	t.RowRefs = refs
	t.RowCount = orig.rowCount
	t.ColCount = orig.colCount
	return nil
}

func (t *SharedRowTable) Lookup(row, col int) (int, error) {
	if row < 0 || row >= t.RowCount || col < 0 || col >= t.ColCount {
		return 0, fmt.Errorf("[%v, %v] is outside a %vx%v table", row, col, t.RowCount, t.ColCount)
	}
	return t.Rows[t.RowRefs[row]*t.ColCount+col], nil
}

func (t *SharedRowTable) Size() (int, int) {
	return t.RowCount, t.ColCount
}

func (t *SharedRowTable) EntryCount() int {
	return len(t.Rows)
}

// noOwner marks a free slot of a DisplacementTable.
const noOwner = -1

// DisplacementTable overlays the rows of a sparse table in one array, shifting each row so
// that its non-empty entries land on free slots. Owners records the row a slot belongs to.
type DisplacementTable struct {
	Empty    int   `json:"empty"`
	Entries  []int `json:"entries"`
	Owners   []int `json:"owners"`
	Offsets  []int `json:"offsets"`
	RowCount int   `json:"row_count"`
	ColCount int   `json:"col_count"`
}

func NewDisplacementTable(empty int) *DisplacementTable {
	return &DisplacementTable{
		Empty: empty,
	}
}

func (t *DisplacementTable) Pack(orig *Table) error {
	type sparseRow struct {
		num  int
		cols []int
	}
	rows := make([]sparseRow, orig.rowCount)
	for r := 0; r < orig.rowCount; r++ {
		rows[r].num = r
		for c, v := range orig.row(r) {
			if v != t.Empty {
				rows[r].cols = append(rows[r].cols, c)
			}
		}
	}
	// Placing dense rows first leaves the gaps for sparse ones.
	sort.SliceStable(rows, func(i, j int) bool {
		return len(rows[i].cols) > len(rows[j].cols)
	})

	size := len(orig.entries) + orig.colCount
	entries := make([]int, size)
	owners := make([]int, size)
	for i := range entries {
		entries[i] = t.Empty
		owners[i] = noOwner
	}
	offsets := make([]int, orig.rowCount)
	used := 0
	next := 0
	for _, row := range rows {
		if len(row.cols) == 0 {
			continue
		}
		offset := next
		for !t.fits(owners, offset, row.cols) {
			offset++
		}
		offsets[row.num] = offset
		for _, c := range row.cols {
			entries[offset+c] = orig.entries[row.num*orig.colCount+c]
			owners[offset+c] = row.num
		}
		if offset+orig.colCount > used {
			used = offset + orig.colCount
		}
		next = offset + 1
	}
	if used == 0 {
		used = orig.colCount
	}

	t.Entries = entries[:used]
	t.Owners = owners[:used]
	t.Offsets = offsets
	t.RowCount = orig.rowCount
	t.ColCount = orig.colCount
	return nil
}

func (t *DisplacementTable) fits(owners []int, offset int, cols []int) bool {
	for _, c := range cols {
		if owners[offset+c] != noOwner {
			return false
		}
	}
	return true
}

func (t *DisplacementTable) Lookup(row, col int) (int, error) {
	if row < 0 || row >= t.RowCount || col < 0 || col >= t.ColCount {
		return t.Empty, fmt.Errorf("[%v, %v] is outside a %vx%v table", row, col, t.RowCount, t.ColCount)
	}
	i := t.Offsets[row] + col
	if t.Owners[i] != row {
		return t.Empty, nil
	}
	return t.Entries[i], nil
}

func (t *DisplacementTable) Size() (int, int) {
	return t.RowCount, t.ColCount
}

func (t *DisplacementTable) EntryCount() int {
	return len(t.Entries)
}

// ActionTable shares the identical rows of an ACTION table, then overlays the distinct rows.
type ActionTable struct {
	RowRefs  []int              `json:"row_refs"`
	Rows     *DisplacementTable `json:"rows"`
	RowCount int                `json:"row_count"`
	ColCount int                `json:"col_count"`
}

func NewActionTable(empty int) *ActionTable {
	return &ActionTable{
		Rows: NewDisplacementTable(empty),
	}
}

func (t *ActionTable) Pack(orig *Table) error {
	shared := &SharedRowTable{}
	err := shared.Pack(orig)
	if err != nil {
		return err
	}
	distinct, err := NewTable(shared.Rows, shared.ColCount)
	if err != nil {
		return err
	}
	err = t.Rows.Pack(distinct)
	if err != nil {
		return err
	}

	t.RowRefs = shared.RowRefs
	t.RowCount = orig.rowCount
	t.ColCount = orig.colCount
	return nil
}

func (t *ActionTable) Lookup(row, col int) (int, error) {
	if row < 0 || row >= t.RowCount {
		return t.Rows.Empty, fmt.Errorf("[%v, %v] is outside a %vx%v table", row, col, t.RowCount, t.ColCount)
	}
	return t.Rows.Lookup(t.RowRefs[row], col)
}

func (t *ActionTable) Size() (int, int) {
	return t.RowCount, t.ColCount
}

func (t *ActionTable) EntryCount() int {
	return len(t.RowRefs) + t.Rows.EntryCount()
}
