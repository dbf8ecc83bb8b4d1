package record

// SourceRecord is one row of the tabular database, passed through from the
// upstream automation. The bridge never mutates it; the renderer only reads
// Fields.
type SourceRecord struct {
	ID     string `json:"id" binding:"required"`
	Fields Fields `json:"fields"`
}

// Fields maps field names to their values as sent by the platform.
type Fields map[string]Value

// Get returns the value for name, or an absent value when the field is
// missing from the record.
func (f Fields) Get(name string) Value {
	if v, ok := f[name]; ok {
		return v
	}
	return Value{}
}
