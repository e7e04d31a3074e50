package dbx

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/dmitrijs2005/jobtracker/internal/common"
)

var identifierRe = regexp.MustCompile(`^[a-z_][a-z0-9_]*$`)

// Field is one externally named value of a partial update.
type Field struct {
	Name  string
	Value any
}

// ColumnMap maps external field names to column names for the fields whose
// column differs. Fields absent from the map use their own name.
type ColumnMap map[string]string

// MustColumnMap validates every column name in m and returns it. It panics
// on a name that is not a plain lower-case SQL identifier, so a bad table is
// caught at package initialisation.
func MustColumnMap(m map[string]string) ColumnMap {
	for field, column := range m {
		if !identifierRe.MatchString(column) {
			panic(fmt.Sprintf("dbx: column %q for field %q is not a plain identifier", column, field))
		}
	}
	return ColumnMap(m)
}

func (m ColumnMap) column(field string) string {
	if c, ok := m[field]; ok {
		return c
	}
	return field
}

// SetClause is the output of PartialUpdate.
type SetClause struct {
	// Fragments holds "column = $n" in input order, n starting at 1.
	Fragments []string
	// Values holds the bind values in the same order as Fragments.
	Values []any
}

// SQL joins the fragments for use after SET.
func (c SetClause) SQL() string {
	return strings.Join(c.Fragments, ", ")
}

// NextParam returns the placeholder index following the last value.
func (c SetClause) NextParam() int {
	return len(c.Values) + 1
}

// PartialUpdate turns an ordered list of fields into a parameterised SET
// clause. Values never enter the SQL text. An empty list is rejected with
// an invalid-input error, as is any field resolving to a column that is not
// a plain identifier.
func PartialUpdate(fields []Field, columns ColumnMap) (SetClause, error) {
	if len(fields) == 0 {
		return SetClause{}, common.InvalidInput("No data")
	}

	clause := SetClause{
		Fragments: make([]string, 0, len(fields)),
		Values:    make([]any, 0, len(fields)),
	}
	for i, f := range fields {
		column := columns.column(f.Name)
		if !identifierRe.MatchString(column) {
			return SetClause{}, common.InvalidInput("Invalid field: %s", f.Name)
		}
		clause.Fragments = append(clause.Fragments, column+" = $"+strconv.Itoa(i+1))
		clause.Values = append(clause.Values, f.Value)
	}
	return clause, nil
}
