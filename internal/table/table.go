package table

// Column is a single named channel and its recorded values
type Column struct {
	Name   string    `yaml:"name"`
	Values []float32 `yaml:"values,flow"`
}

// Table is an insertion-ordered mapping of channel name to values.
// Column order is the order in which names were first seen.
type Table struct {
	columns []Column
	index   map[string]int
}

// New creates an empty table
func New() *Table {
	return &Table{index: make(map[string]int)}
}

// Append adds value to the named column, creating it at the end if it is new
func (t *Table) Append(name string, value float32) {
	i, ok := t.index[name]
	if !ok {
		i = len(t.columns)
		t.columns = append(t.columns, Column{Name: name})
		t.index[name] = i
	}
	t.columns[i].Values = append(t.columns[i].Values, value)
}

// AddColumn registers an empty column. It is a no-op for known names.
func (t *Table) AddColumn(name string) {
	if _, ok := t.index[name]; ok {
		return
	}
	t.index[name] = len(t.columns)
	t.columns = append(t.columns, Column{Name: name})
}

// Has reports whether a column with the given name exists
func (t *Table) Has(name string) bool {
	_, ok := t.index[name]
	return ok
}

// Values returns the values of a column. The slice is shared with the table.
func (t *Table) Values(name string) ([]float32, bool) {
	i, ok := t.index[name]
	if !ok {
		return nil, false
	}
	return t.columns[i].Values, true
}

// Names returns the column names in first-insertion order
func (t *Table) Names() []string {
	names := make([]string, len(t.columns))
	for i, c := range t.columns {
		names[i] = c.Name
	}
	return names
}

// Columns returns the columns in order. The slices are shared with the table.
func (t *Table) Columns() []Column {
	return t.columns
}

// Len returns the number of columns
func (t *Table) Len() int {
	return len(t.columns)
}

// LengthRange returns the shortest and longest column lengths.
// Both are zero for a table without columns.
func (t *Table) LengthRange() (min, max int) {
	for i, c := range t.columns {
		n := len(c.Values)
		if i == 0 || n < min {
			min = n
		}
		if n > max {
			max = n
		}
	}
	return min, max
}

// Rows returns the length of the longest column
func (t *Table) Rows() int {
	_, max := t.LengthRange()
	return max
}

// Clone returns a deep copy
func (t *Table) Clone() *Table {
	out := &Table{
		columns: make([]Column, len(t.columns)),
		index:   make(map[string]int, len(t.index)),
	}
	for i, c := range t.columns {
		values := make([]float32, len(c.Values))
		copy(values, c.Values)
		out.columns[i] = Column{Name: c.Name, Values: values}
		out.index[c.Name] = i
	}
	return out
}

// Select returns a new table holding only the named columns, in the order given.
// Unknown names are skipped.
func (t *Table) Select(names ...string) *Table {
	out := New()
	for _, name := range names {
		values, ok := t.Values(name)
		if !ok || out.Has(name) {
			continue
		}
		out.AddColumn(name)
		i := out.index[name]
		out.columns[i].Values = append([]float32(nil), values...)
	}
	return out
}

// Map converts the table to a plain map, dropping column order
func (t *Table) Map() map[string][]float32 {
	m := make(map[string][]float32, len(t.columns))
	for _, c := range t.columns {
		m[c.Name] = append([]float32(nil), c.Values...)
	}
	return m
}
