package postgresql

import (
	"errors"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"
)

// isUniqueViolation reports whether err is a unique constraint violation.
func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}

// stripAlias removes a table alias from a column list so the same list can
// serve both aliased SELECTs and RETURNING clauses. Dots only ever appear
// after an alias in these lists.
func stripAlias(columns, alias string) string {
	return strings.ReplaceAll(columns, alias+".", "")
}
