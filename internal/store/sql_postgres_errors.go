package store

import (
	"errors"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"
)

// ErrorClassification tells DB.retry whether a failed statement may be run again.
type ErrorClassification int

const (
	NonRetryable ErrorClassification = iota
	Retryable
)

// retryablePgCodes lists the transient connection and rollback failures.
// Any other code, constraint violations included, is final.
var retryablePgCodes = map[string]struct{}{
	pgerrcode.ConnectionException:    {},
	pgerrcode.ConnectionDoesNotExist: {},
	pgerrcode.ConnectionFailure:      {},
	pgerrcode.CannotConnectNow:       {},
	pgerrcode.AdminShutdown:          {},
	pgerrcode.SerializationFailure:   {},
	pgerrcode.DeadlockDetected:       {},
}

// PostgresErrorClassifier classifies errors returned through pgx.
type PostgresErrorClassifier struct{}

func NewPostgresErrorClassifier() *PostgresErrorClassifier {
	return &PostgresErrorClassifier{}
}

func (c *PostgresErrorClassifier) Classify(err error) ErrorClassification {
	code, ok := pgCode(err)
	if !ok {
		return NonRetryable
	}
	if _, retry := retryablePgCodes[code]; retry {
		return Retryable
	}
	return NonRetryable
}

// IsUniqueViolation reports a duplicate users.email.
func (c *PostgresErrorClassifier) IsUniqueViolation(err error) bool {
	code, ok := pgCode(err)
	return ok && code == pgerrcode.UniqueViolation
}

func pgCode(err error) (string, bool) {
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) {
		return "", false
	}
	return pgErr.Code, true
}
