package store

import (
	"errors"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"
)

// ErrorClassification tells the migration resume worker whether a failed
// job is worth another attempt.
type ErrorClassification int

const (
	// NonRetryable covers constraint violations, data exceptions and
	// syntax errors. Repeating the write cannot help.
	NonRetryable ErrorClassification = iota

	// Retryable covers lost connections, deadlocks and serialization failures.
	Retryable

	// Unclassified is used for errors that did not come from Postgres,
	// for example a cancelled context.
	Unclassified
)

// PostgresErrorClassifier implements [ErrorClassificator] for pgx errors.
type PostgresErrorClassifier struct{}

func NewPostgresErrorClassifier() *PostgresErrorClassifier {
	return &PostgresErrorClassifier{}
}

func (c *PostgresErrorClassifier) Classify(err error) ErrorClassification {
	if err == nil {
		return NonRetryable
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return ClassifyPgError(pgErr)
	}

	return Unclassified
}

// IsRetryable classifies err with a [PostgresErrorClassifier].
func IsRetryable(err error) bool {
	return NewPostgresErrorClassifier().Classify(err) != NonRetryable
}

// ClassifyPgError maps a SQLSTATE code to a classification.
// See https://www.postgresql.org/docs/current/errcodes-appendix.html.
// Codes not listed are non-retryable.
func ClassifyPgError(pgErr *pgconn.PgError) ErrorClassification {
	switch pgErr.Code {
	// Class 08: connection exceptions
	case pgerrcode.ConnectionException,
		pgerrcode.ConnectionDoesNotExist,
		pgerrcode.ConnectionFailure:
		return Retryable

	// Class 40: transaction rollback
	case pgerrcode.TransactionRollback,
		pgerrcode.SerializationFailure,
		pgerrcode.DeadlockDetected:
		return Retryable

	// Class 53: insufficient resources
	case pgerrcode.TooManyConnections:
		return Retryable

	// Class 57: operator intervention
	case pgerrcode.CannotConnectNow,
		pgerrcode.AdminShutdown:
		return Retryable
	}

	return NonRetryable
}
