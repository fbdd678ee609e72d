package render

import (
	"bytes"
	"encoding/json"

	"github.com/sqlrest-cli/sqlrest/internal/sqlrest/ir"
)

// renderInsertBody renders INSERT rows as JSON: a single object when
// there is exactly one row, an array of objects otherwise.
// Positional column names come from ins.Columns; an empty column list
// with non-empty rows is legal, so each row is keyed by its Columns
// entry only when Columns is present.
func renderInsertBody(ins *ir.Insert) ([]byte, error) {
	rows := make([]map[string]interface{}, 0, len(ins.Values))
	for _, row := range ins.Values {
		obj := make(map[string]interface{}, len(row))
		for i, v := range row {
			key := ""
			if i < len(ins.Columns) {
				key = ins.Columns[i]
			}
			if key == "" {
				continue
			}
			obj[key] = v.Value()
		}
		rows = append(rows, obj)
	}

	if len(rows) == 1 {
		return json.Marshal(rows[0])
	}
	return json.Marshal(rows)
}

// renderSetBody renders an UPDATE's SET assignments as a single JSON
// object whose keys appear in SET clause order.
func renderSetBody(set []ir.SetClause) ([]byte, error) {
	var b bytes.Buffer
	b.WriteByte('{')
	for i, c := range set {
		if i > 0 {
			b.WriteByte(',')
		}
		key, err := json.Marshal(c.Column)
		if err != nil {
			return nil, err
		}
		value, err := json.Marshal(c.Value.Value())
		if err != nil {
			return nil, err
		}
		b.Write(key)
		b.WriteByte(':')
		b.Write(value)
	}
	b.WriteByte('}')
	return b.Bytes(), nil
}
