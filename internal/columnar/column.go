package columnar

// Column is a single struct-of-arrays column. Exactly one of the typed
// slices is populated, selected by the owning Field's Type; Valid holds a
// nullable bitmap (as a bool slice — the data volumes here don't warrant
// a packed bitset) and is nil for non-nullable columns, where every row is
// implicitly valid.
type Column struct {
	Int32Values   []int32
	Int64Values   []int64
	Uint32Values  []uint32
	Uint64Values  []uint64
	Float64Values []float64
	Utf8Values    []string
	BinaryValues  [][]byte
	BoolValues    []bool
	ListI64Values [][]int64
	ListF64Values [][]float64

	// TimestampMicros backs TypeTimestampMicros columns.
	TimestampMicros []int64

	Valid []bool
}

// NewColumn allocates a Column with the typed slice for typ pre-sized to
// capacity rows.
func NewColumn(typ FieldType, nullable bool, capacity int) *Column {
	c := &Column{}
	if nullable {
		c.Valid = make([]bool, 0, capacity)
	}
	switch typ {
	case TypeInt32:
		c.Int32Values = make([]int32, 0, capacity)
	case TypeInt64:
		c.Int64Values = make([]int64, 0, capacity)
	case TypeUint32:
		c.Uint32Values = make([]uint32, 0, capacity)
	case TypeUint64:
		c.Uint64Values = make([]uint64, 0, capacity)
	case TypeFloat64:
		c.Float64Values = make([]float64, 0, capacity)
	case TypeUtf8:
		c.Utf8Values = make([]string, 0, capacity)
	case TypeBinary:
		c.BinaryValues = make([][]byte, 0, capacity)
	case TypeBool:
		c.BoolValues = make([]bool, 0, capacity)
	case TypeListInt64:
		c.ListI64Values = make([][]int64, 0, capacity)
	case TypeListFloat64:
		c.ListF64Values = make([][]float64, 0, capacity)
	case TypeTimestampMicros:
		c.TimestampMicros = make([]int64, 0, capacity)
	}
	return c
}

// Len returns the number of rows stored in the column, reading whichever
// typed slice is non-nil.
func (c *Column) Len() int {
	switch {
	case c.Int32Values != nil:
		return len(c.Int32Values)
	case c.Int64Values != nil:
		return len(c.Int64Values)
	case c.Uint32Values != nil:
		return len(c.Uint32Values)
	case c.Uint64Values != nil:
		return len(c.Uint64Values)
	case c.Float64Values != nil:
		return len(c.Float64Values)
	case c.Utf8Values != nil:
		return len(c.Utf8Values)
	case c.BinaryValues != nil:
		return len(c.BinaryValues)
	case c.BoolValues != nil:
		return len(c.BoolValues)
	case c.ListI64Values != nil:
		return len(c.ListI64Values)
	case c.ListF64Values != nil:
		return len(c.ListF64Values)
	case c.TimestampMicros != nil:
		return len(c.TimestampMicros)
	default:
		return 0
	}
}

// AppendNull records a null row on a nullable column, pushing a zero
// value onto whichever typed slice is active so row alignment across
// columns is preserved.
func (c *Column) AppendNull(typ FieldType) {
	c.Valid = append(c.Valid, false)
	switch typ {
	case TypeInt32:
		c.Int32Values = append(c.Int32Values, 0)
	case TypeInt64:
		c.Int64Values = append(c.Int64Values, 0)
	case TypeUint32:
		c.Uint32Values = append(c.Uint32Values, 0)
	case TypeUint64:
		c.Uint64Values = append(c.Uint64Values, 0)
	case TypeFloat64:
		c.Float64Values = append(c.Float64Values, 0)
	case TypeUtf8:
		c.Utf8Values = append(c.Utf8Values, "")
	case TypeBinary:
		c.BinaryValues = append(c.BinaryValues, nil)
	case TypeBool:
		c.BoolValues = append(c.BoolValues, false)
	case TypeListInt64:
		c.ListI64Values = append(c.ListI64Values, nil)
	case TypeListFloat64:
		c.ListF64Values = append(c.ListF64Values, nil)
	case TypeTimestampMicros:
		c.TimestampMicros = append(c.TimestampMicros, 0)
	}
}

func (c *Column) markValid() {
	if c.Valid != nil {
		c.Valid = append(c.Valid, true)
	}
}

func (c *Column) AppendInt32(v int32) {
	c.Int32Values = append(c.Int32Values, v)
	c.markValid()
}

func (c *Column) AppendInt64(v int64) {
	c.Int64Values = append(c.Int64Values, v)
	c.markValid()
}

func (c *Column) AppendUint32(v uint32) {
	c.Uint32Values = append(c.Uint32Values, v)
	c.markValid()
}

func (c *Column) AppendUint64(v uint64) {
	c.Uint64Values = append(c.Uint64Values, v)
	c.markValid()
}

func (c *Column) AppendFloat64(v float64) {
	c.Float64Values = append(c.Float64Values, v)
	c.markValid()
}

func (c *Column) AppendUtf8(v string) {
	c.Utf8Values = append(c.Utf8Values, v)
	c.markValid()
}

func (c *Column) AppendBinary(v []byte) {
	c.BinaryValues = append(c.BinaryValues, v)
	c.markValid()
}

func (c *Column) AppendBool(v bool) {
	c.BoolValues = append(c.BoolValues, v)
	c.markValid()
}

func (c *Column) AppendListInt64(v []int64) {
	c.ListI64Values = append(c.ListI64Values, v)
	c.markValid()
}

func (c *Column) AppendListFloat64(v []float64) {
	c.ListF64Values = append(c.ListF64Values, v)
	c.markValid()
}

func (c *Column) AppendTimestampMicros(v int64) {
	c.TimestampMicros = append(c.TimestampMicros, v)
	c.markValid()
}

// IsValid reports whether row i is non-null. Non-nullable columns (Valid
// == nil) are always valid.
func (c *Column) IsValid(i int) bool {
	if c.Valid == nil {
		return true
	}
	return c.Valid[i]
}
