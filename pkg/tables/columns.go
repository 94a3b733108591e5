package tables

import (
	"strings"
	"unicode"
)

// NormalizeColumnName canonicalizes a column header for matching: trim,
// lowercase, internal whitespace collapsed to a single underscore, and all
// runes other than letters, digits and underscore stripped. The normalized
// form is used only for matching, never for display.
func NormalizeColumnName(name string) string {
	s := strings.ToLower(strings.TrimSpace(name))
	var b strings.Builder
	b.Grow(len(s))
	pendingSep := false
	for _, r := range s {
		switch {
		case unicode.IsSpace(r):
			pendingSep = true
		case r == '_' || unicode.IsLetter(r) || unicode.IsDigit(r):
			if pendingSep && b.Len() > 0 {
				b.WriteByte('_')
			}
			pendingSep = false
			b.WriteRune(r)
		}
	}
	return b.String()
}

// FindKeyColumn locates the column matching one of the candidate terms and
// returns its original header text. Every header is normalized and the
// candidates are tried in order: the first term that is contained in any
// normalized header wins, scanning headers left to right. Candidate order
// outranks column order, so an earlier term matching a later column beats a
// later term matching an earlier one. Returns false if the table is absent
// or empty or no candidate matches.
func (t *Table) FindKeyColumn(candidates []string) (string, bool) {
	if t == nil || len(t.Columns) == 0 || len(t.Rows) == 0 {
		return "", false
	}
	normalized := make([]string, len(t.Columns))
	for i, col := range t.Columns {
		normalized[i] = NormalizeColumnName(col)
	}
	for _, term := range candidates {
		for i, col := range normalized {
			if strings.Contains(col, term) {
				return t.Columns[i], true
			}
		}
	}
	return "", false
}

// FindCandidateColumns returns every column whose normalized header contains
// one of the candidate terms, in candidate-order precedence. Each column
// appears at most once.
func (t *Table) FindCandidateColumns(candidates []string) []string {
	if t == nil || len(t.Columns) == 0 {
		return nil
	}
	normalized := make([]string, len(t.Columns))
	for i, col := range t.Columns {
		normalized[i] = NormalizeColumnName(col)
	}
	seen := make(map[string]bool, len(t.Columns))
	var out []string
	for _, term := range candidates {
		for i, col := range normalized {
			if strings.Contains(col, term) && !seen[t.Columns[i]] {
				seen[t.Columns[i]] = true
				out = append(out, t.Columns[i])
			}
		}
	}
	return out
}
