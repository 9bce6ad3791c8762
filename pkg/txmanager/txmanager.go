package txmanager

import (
	"context"
	"database/sql"
	"database/sql/driver"
	"errors"
	"fmt"
	"net"
	"time"

	"github.com/lib/pq"

	"github.com/m04kA/SMC-ReservationService/pkg/dbmetrics"
)

const (
	// Коды ошибок PostgreSQL, при которых транзакцию можно безопасно повторить
	pqSerializationFailure = "40001"
	pqDeadlockDetected     = "40P01"

	// Класс 08 — connection_exception, 57P01 — admin_shutdown:
	// инфраструктурные сбои, один повтор обычно попадает на живое соединение
	pqConnectionExceptionClass = "08"
	pqAdminShutdown            = "57P01"

	maxRetries     = 3
	initialBackoff = 50 * time.Millisecond
)

// ErrTxBegin возвращается при ошибке начала транзакции
var ErrTxBegin = errors.New("txmanager: failed to begin transaction")

// TxBeginner интерфейс для начала транзакций
type TxBeginner interface {
	BeginTx(ctx context.Context, opts *sql.TxOptions) (dbmetrics.TxExecutor, error)
}

// TransactionManager управляет транзакциями поверх обёрнутой БД (с метриками)
// Транзакция передается в контексте, репозитории получают её через dbmetrics.GetExecutor
type TransactionManager struct {
	db TxBeginner
}

// NewTransactionManager создает новый transaction manager
func NewTransactionManager(db TxBeginner) *TransactionManager {
	return &TransactionManager{db: db}
}

// Do выполняет fn в транзакции с уровнем изоляции по умолчанию
func (m *TransactionManager) Do(ctx context.Context, fn func(ctx context.Context) error) error {
	return m.runTransient(ctx, &sql.TxOptions{}, fn)
}

// DoSerializable выполняет fn в сериализуемой транзакции
// При serialization failure или deadlock транзакция повторяется с backoff
func (m *TransactionManager) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	opts := &sql.TxOptions{Isolation: sql.LevelSerializable}

	var err error
	backoff := initialBackoff

	for attempt := 0; attempt < maxRetries; attempt++ {
		err = m.runTransient(ctx, opts, fn)
		if err == nil || !IsRetryable(err) {
			return err
		}

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(backoff):
		}
		backoff *= 2
	}

	return err
}

// DoReadOnly выполняет fn в read-only транзакции
func (m *TransactionManager) DoReadOnly(ctx context.Context, fn func(ctx context.Context) error) error {
	return m.runTransient(ctx, &sql.TxOptions{ReadOnly: true}, fn)
}

// runTransient выполняет одну попытку транзакции; инфраструктурный сбой
// хранилища (оборванное соединение, таймаут, остановка сервера) повторяется
// один раз с backoff, после чего ошибка отдается вызывающему.
// Бизнес-ошибки и конфликты под повтор не попадают — IsTransient их не распознает
func (m *TransactionManager) runTransient(ctx context.Context, opts *sql.TxOptions, fn func(ctx context.Context) error) error {
	err := m.run(ctx, opts, fn)
	if err == nil || !IsTransient(err) {
		return err
	}

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-time.After(initialBackoff):
	}

	return m.run(ctx, opts, fn)
}

func (m *TransactionManager) run(ctx context.Context, opts *sql.TxOptions, fn func(ctx context.Context) error) error {
	tx, err := m.db.BeginTx(ctx, opts)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrTxBegin, err)
	}

	txCtx := dbmetrics.WithTx(ctx, tx)

	if err := fn(txCtx); err != nil {
		_ = tx.Rollback()
		return err
	}

	if err := tx.Commit(); err != nil {
		_ = tx.Rollback()
		return fmt.Errorf("txmanager: commit: %w", err)
	}

	return nil
}

// IsRetryable возвращает true для ошибок, при которых транзакцию можно повторить
func IsRetryable(err error) bool {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return string(pqErr.Code) == pqSerializationFailure || string(pqErr.Code) == pqDeadlockDetected
	}
	return false
}

// IsTransient возвращает true для сбоев инфраструктуры хранилища, при которых
// имеет смысл один повтор: оборванное соединение, сетевой таймаут,
// остановка сервера БД. Serialization failure сюда не входит — у него
// своя политика повторов в DoSerializable
func IsTransient(err error) bool {
	if errors.Is(err, driver.ErrBadConn) || errors.Is(err, sql.ErrConnDone) {
		return true
	}

	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return pqErr.Code.Class() == pqConnectionExceptionClass || string(pqErr.Code) == pqAdminShutdown
	}

	var netErr net.Error
	if errors.As(err, &netErr) {
		return netErr.Timeout()
	}

	return false
}
