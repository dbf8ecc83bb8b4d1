package record

import (
	"encoding/json"
	"strconv"
	"strings"
)

// Kind enumerates the closed set of field value shapes the bridge accepts.
type Kind int

const (
	KindAbsent Kind = iota
	KindString
	KindNumber
	KindBool
	KindList
)

// Value holds one field value from the tabular platform. Airtable sends
// strings, numbers, booleans and arrays of strings depending on the column
// type; anything else is carried as its raw JSON text so it still renders.
type Value struct {
	kind Kind
	str  string
	num  float64
	b    bool
	list []string
}

func StringValue(s string) Value   { return Value{kind: KindString, str: s} }
func NumberValue(n float64) Value  { return Value{kind: KindNumber, num: n} }
func BoolValue(b bool) Value       { return Value{kind: KindBool, b: b} }
func ListValue(ss []string) Value  { return Value{kind: KindList, list: ss} }

func (v Value) Kind() Kind   { return v.kind }
func (v Value) Absent() bool { return v.kind == KindAbsent }

// UnmarshalJSON accepts the wire shapes the platform actually produces.
// Lists may mix scalars (lookup columns do this); each element is
// stringified with the same rules as a top-level scalar.
func (v *Value) UnmarshalJSON(data []byte) error {
	trimmed := strings.TrimSpace(string(data))
	if trimmed == "null" {
		*v = Value{}
		return nil
	}

	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		*v = StringValue(s)
		return nil
	}

	var n float64
	if err := json.Unmarshal(data, &n); err == nil {
		*v = NumberValue(n)
		return nil
	}

	var b bool
	if err := json.Unmarshal(data, &b); err == nil {
		*v = BoolValue(b)
		return nil
	}

	var raw []json.RawMessage
	if err := json.Unmarshal(data, &raw); err == nil {
		items := make([]string, 0, len(raw))
		for _, item := range raw {
			var elem Value
			if err := elem.UnmarshalJSON(item); err != nil {
				return err
			}
			items = append(items, elem.String())
		}
		*v = ListValue(items)
		return nil
	}

	// Objects and anything newer: keep the raw JSON visible rather than drop it.
	*v = StringValue(trimmed)
	return nil
}

func (v Value) MarshalJSON() ([]byte, error) {
	switch v.kind {
	case KindString:
		return json.Marshal(v.str)
	case KindNumber:
		return json.Marshal(v.num)
	case KindBool:
		return json.Marshal(v.b)
	case KindList:
		return json.Marshal(v.list)
	default:
		return []byte("null"), nil
	}
}

// String renders the value with one stable rule per kind: strings verbatim,
// numbers in minimal decimal form, booleans as true/false, lists joined
// with ", ". Absent values render empty.
func (v Value) String() string {
	switch v.kind {
	case KindString:
		return v.str
	case KindNumber:
		return strconv.FormatFloat(v.num, 'f', -1, 64)
	case KindBool:
		return strconv.FormatBool(v.b)
	case KindList:
		return strings.Join(v.list, ", ")
	default:
		return ""
	}
}
