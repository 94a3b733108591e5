package reconcile

import (
	"strings"

	"github.com/corporativo/sdu/pkg/tables"
)

// buildLastWins maps each name key to the value of valueColumn, with later
// rows overriding earlier ones. Empty values never override. Used for the
// roster-sourced attributes (department, position).
func buildLastWins(t *tables.Table, keyColumn, valueColumn string) map[string]string {
	m := make(map[string]string, t.Len())
	for _, row := range t.Rows {
		key := row[keyColumn].Text()
		value := strings.TrimSpace(row[valueColumn].Text())
		if value != "" {
			m[key] = value
		}
	}
	return m
}

// buildFirstWins maps each name key to the first non-empty value found among
// valueColumns, scanning rows in order. Once a key is set, later rows do not
// override it. Used for the contact-sourced attributes (email, phone).
func buildFirstWins(t *tables.Table, keyColumn string, valueColumns []string) map[string]string {
	m := make(map[string]string, t.Len())
	for _, row := range t.Rows {
		key := row[keyColumn].Text()
		if _, ok := m[key]; ok {
			continue
		}
		for _, col := range valueColumns {
			if value := strings.TrimSpace(row[col].Text()); value != "" {
				m[key] = value
				break
			}
		}
	}
	return m
}
