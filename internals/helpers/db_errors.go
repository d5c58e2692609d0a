package helper

import (
	"errors"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"
)

// SQLSTATE Postgres : violation de clé étrangère.
const pgFKViolation = "23503"

// IsFKViolation reconnaît une contrainte de clé étrangère violée, quel
// que soit le moteur (pgx en prod, SQLite dans les tests).
func IsFKViolation(err error) bool {
	if err == nil {
		return false
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == pgFKViolation
	}
	return strings.Contains(err.Error(), "FOREIGN KEY constraint")
}
