package models

import "time"

// Table roles tracked by the dataset store.
const (
	RoleEnrollment  = "enrollment"
	RoleBiometric   = "biometric"
	RoleDemographic = "demographic"
)

// Row is a single parsed CSV row: the composite (date, state, district,
// pincode) key plus every numeric column keyed by its header name.
// Pincode stays a string because leading zeros are significant.
type Row struct {
	Date     time.Time
	State    string
	District string
	Pincode  string
	Counts   map[string]int64
}

// Count returns the named numeric column, 0 when absent.
func (r Row) Count(column string) int64 {
	return r.Counts[column]
}

// Table is one uploaded dataset held in memory for the process lifetime.
type Table struct {
	Columns []string
	Rows    []Row
}

// Len returns the number of data rows.
func (t *Table) Len() int {
	if t == nil {
		return 0
	}
	return len(t.Rows)
}
