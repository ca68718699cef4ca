package db

import (
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
)

// IsUniqueViolation reports whether err is a PostgreSQL unique constraint
// rejection (SQLSTATE 23505). The unique indexes are the authoritative
// integrity guarantee; application-level pre-checks are advisory, so repos
// must translate this rejection into the same conflict kind the pre-check
// would have produced.
func IsUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}
