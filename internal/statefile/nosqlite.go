//go:build !sqlite

package statefile

import "fmt"

func storeSQLite(path string, _ Persistable) error {
	return fmt.Errorf("sqlite snapshot file %q unavailable in this build; rebuild with -tags sqlite", path)
}

func loadSQLite(path string, _ Persistable) error {
	return fmt.Errorf("sqlite snapshot file %q unavailable in this build; rebuild with -tags sqlite", path)
}
