package database

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"gorm.io/gorm"
)

var (
	// ErrTimeout is returned when a statement does not finish within the query timeout
	ErrTimeout = errors.New("database query timed out")
	// ErrDuplicate is returned when a statement violates a unique constraint
	ErrDuplicate = errors.New("duplicate key")
)

const uniqueViolationCode = "23505"

var tracer = otel.Tracer("database-executor")

// Executor runs parameterized SQL against the pool
type Executor interface {
	// Query scans every result row into dest (a pointer to a slice or scalar)
	Query(ctx context.Context, dest any, query string, args ...any) error
	// Exec runs a statement and returns the number of affected rows
	Exec(ctx context.Context, query string, args ...any) (int64, error)
}

// GormExecutor executes raw statements through GORM with a bounded wait
type GormExecutor struct {
	db      *gorm.DB
	timeout time.Duration
}

// NewExecutor creates an executor; a non-positive timeout disables the bound
func NewExecutor(db *gorm.DB, timeout time.Duration) *GormExecutor {
	return &GormExecutor{db: db, timeout: timeout}
}

// Query runs a row-returning statement
func (e *GormExecutor) Query(ctx context.Context, dest any, query string, args ...any) error {
	ctx, cancel := e.withTimeout(ctx)
	defer cancel()

	ctx, span := startSpan(ctx, "db.Query", query)
	defer span.End()

	err := e.translate(ctx, e.db.WithContext(ctx).Raw(query, args...).Scan(dest).Error)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}
	return err
}

// Exec runs a statement that does not return rows
func (e *GormExecutor) Exec(ctx context.Context, query string, args ...any) (int64, error) {
	ctx, cancel := e.withTimeout(ctx)
	defer cancel()

	ctx, span := startSpan(ctx, "db.Exec", query)
	defer span.End()

	result := e.db.WithContext(ctx).Exec(query, args...)
	if err := e.translate(ctx, result.Error); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return 0, err
	}

	span.SetAttributes(attribute.Int64("db.rows_affected", result.RowsAffected))
	return result.RowsAffected, nil
}

func (e *GormExecutor) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	if e.timeout <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, e.timeout)
}

// translate maps driver failures onto ErrTimeout and ErrDuplicate.
// Drivers report an expired deadline in different ways, so the context is consulted too.
func (e *GormExecutor) translate(ctx context.Context, err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(ctx.Err(), context.DeadlineExceeded) {
		return fmt.Errorf("%w: %v", ErrTimeout, err)
	}
	if IsUniqueViolation(err) {
		return fmt.Errorf("%w: %v", ErrDuplicate, err)
	}
	return err
}

// IsUniqueViolation reports whether err comes from a unique constraint
func IsUniqueViolation(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == uniqueViolationCode
}

func startSpan(ctx context.Context, name, query string) (context.Context, trace.Span) {
	return tracer.Start(ctx, name,
		trace.WithSpanKind(trace.SpanKindClient),
		trace.WithAttributes(
			attribute.String("db.system", "postgresql"),
			attribute.String("db.statement", query),
		),
	)
}
