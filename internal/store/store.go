package store

import (
	"database/sql"
	"fmt"
)

func expectOneRow(res sql.Result, kind, id string) error {
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return fmt.Errorf("%s %s: %w", kind, id, sql.ErrNoRows)
	}
	return nil
}
