package tables

// Null markers left behind when a spreadsheet tool stringifies missing
// values. Compared case-sensitively against the already-uppercased key.
var nullMarkers = map[string]bool{
	"NAN":  true,
	"NONE": true,
}

// CleanKeyColumn normalizes the key column of every row (trim + uppercase)
// and drops rows whose normalized key is empty or a literal null marker
// ("NAN", "NONE"). Surviving rows keep their original relative order. This
// always runs before any join.
func (t *Table) CleanKeyColumn(keyColumn string) *Table {
	if t == nil {
		return nil
	}
	out := &Table{Columns: append([]string(nil), t.Columns...)}
	for _, row := range t.Rows {
		key := NormalizeName(row[keyColumn])
		if key == "" || nullMarkers[key] {
			continue
		}
		dup := make(Row, len(row))
		for k, v := range row {
			dup[k] = v
		}
		dup[keyColumn] = String(key)
		out.Rows = append(out.Rows, dup)
	}
	return out
}
