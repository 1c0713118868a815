package energy

import "fmt"

// Triple identifies one evaluation of the recurrence.
type Triple struct {
	X uint16
	Y uint16
	K uint16
}

func (t Triple) String() string {
	return fmt.Sprintf("(%d, %d, %d)", t.X, t.Y, t.K)
}

// Memo stores computed results. Store keeps the first value written for a
// triple; later stores of the same triple are ignored. Len counts stored
// results, Slots the result slots the table has allocated.
type Memo interface {
	Load(t Triple) (uint16, bool)
	Store(t Triple, v uint16) error
	Len() int
	Slots() int
}

// MapMemo is keyed by the full triple and accepts any k.
type MapMemo struct {
	known map[Triple]uint16
}

func NewMapMemo() *MapMemo {
	return &MapMemo{known: make(map[Triple]uint16)}
}

func (m *MapMemo) Load(t Triple) (uint16, bool) {
	v, ok := m.known[t]
	return v, ok
}

func (m *MapMemo) Store(t Triple, v uint16) error {
	if _, ok := m.known[t]; ok {
		return nil
	}
	m.known[t] = v
	return nil
}

func (m *MapMemo) Len() int {
	return len(m.known)
}

func (m *MapMemo) Slots() int {
	return len(m.known)
}

const absent = 0xFFFF

// DenseMemo holds results for a single k in one row of Modulus slots per x.
// Rows are allocated the first time an x is stored.
type DenseMemo struct {
	k    uint16
	rows [][]uint16
	n    int
	used int
}

func NewDenseMemo(k uint16) *DenseMemo {
	return &DenseMemo{k: k, rows: make([][]uint16, 0, 8)}
}

func (m *DenseMemo) Load(t Triple) (uint16, bool) {
	if t.K != m.k || t.Y > MaxValue || int(t.X) >= len(m.rows) {
		return 0, false
	}
	row := m.rows[t.X]
	if row == nil || row[t.Y] == absent {
		return 0, false
	}
	return row[t.Y], true
}

func (m *DenseMemo) Store(t Triple, v uint16) error {
	if t.K != m.k {
		return fmt.Errorf("%w: table for k=%d got %v", ErrForeignKey, m.k, t)
	}
	if t.Y > MaxValue || v > MaxValue {
		return fmt.Errorf("%w: %v -> %d", ErrOutOfRange, t, v)
	}

	for int(t.X) >= len(m.rows) {
		m.rows = append(m.rows, nil)
	}
	row := m.rows[t.X]
	if row == nil {
		row = make([]uint16, Modulus)
		for i := range row {
			row[i] = absent
		}
		m.rows[t.X] = row
		m.used++
	}

	if row[t.Y] != absent {
		return nil
	}
	row[t.Y] = v
	m.n++
	return nil
}

func (m *DenseMemo) Len() int {
	return m.n
}

// Slots is Modulus for every allocated row, however sparse.
func (m *DenseMemo) Slots() int {
	return m.used * Modulus
}
