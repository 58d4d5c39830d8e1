package utils

import "reflect"

// ColumnList returns the list of "db" tags of T, in field order, for use in
// select builders. Fields without a db tag are skipped.
func ColumnList[T any](prefix ...string) []string {
	var dbModel T
	t := reflect.TypeOf(dbModel)

	columns := make([]string, 0, t.NumField())
	for i := 0; i < t.NumField(); i++ {
		tag, ok := t.Field(i).Tag.Lookup("db")
		if !ok || tag == "-" {
			continue
		}
		if len(prefix) > 0 {
			tag = prefix[0] + "." + tag
		}
		columns = append(columns, tag)
	}
	return columns
}
