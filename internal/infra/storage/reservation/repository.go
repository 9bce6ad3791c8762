package reservation

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/lib/pq"

	"github.com/m04kA/SMC-ReservationService/internal/domain"
	"github.com/m04kA/SMC-ReservationService/pkg/dbmetrics"
	"github.com/m04kA/SMC-ReservationService/pkg/psqlbuilder"
)

// Код ошибки PostgreSQL exclusion_violation — нарушение exclusion constraint
// по (station_id, tsrange(start_at, end_at)) для подтвержденных бронирований
const pqExclusionViolation = "23P01"

var reservationColumns = []string{
	"id",
	"station_id",
	"group_id",
	"start_at",
	"end_at",
	"status",
	"payment_status",
	"customer_name",
	"customer_phone",
	"customer_email",
	"total_price",
	"notes",
	"created_at",
	"updated_at",
}

// Repository репозиторий для работы с бронированиями
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория бронирований
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create создает новое бронирование
// Если в контексте передана активная транзакция (через context.Value), использует её.
//
// Авторитетная защита от double-booking — exclusion constraint в БД:
// даже если advisory-проверка доступности пропустила конкурентную вставку,
// сам INSERT упадет с exclusion_violation, которое мы отдаем как ErrStationConflict
func (r *Repository) Create(ctx context.Context, rsv *domain.Reservation) (*domain.Reservation, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("reservations").
		Columns(
			"station_id",
			"group_id",
			"start_at",
			"end_at",
			"status",
			"payment_status",
			"customer_name",
			"customer_phone",
			"customer_email",
			"total_price",
			"notes",
		).
		Values(
			rsv.StationID,
			groupIDValue(rsv.GroupID),
			rsv.StartAt,
			rsv.EndAt,
			rsv.Status,
			rsv.PaymentStatus,
			rsv.CustomerName,
			rsv.CustomerPhone,
			rsv.CustomerEmail,
			rsv.TotalPrice,
			rsv.Notes,
		).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt, updatedAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&rsv.ID,
		&createdAt,
		&updatedAt,
	)

	if err != nil {
		if isExclusionViolation(err) {
			return nil, fmt.Errorf("%w: station %s, interval [%s, %s)", ErrStationConflict,
				rsv.StationID, rsv.StartAt.Format(time.RFC3339), rsv.EndAt.Format(time.RFC3339))
		}
		return nil, fmt.Errorf("%w: Create - execute insert: %w", ErrExecQuery, err)
	}

	rsv.CreatedAt = createdAt.Time
	rsv.UpdatedAt = updatedAt.Time

	return rsv, nil
}

// GetByID получает бронирование по ID
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.Reservation, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(reservationColumns...).
		From("reservations").
		Where(squirrel.Eq{"id": id})

	// В транзакции блокируем строку: GetByID используется usecase'ами
	// редактирования/остановки/отмены перед изменением
	if dbmetrics.IsInTransaction(ctx) {
		selectBuilder = selectBuilder.Suffix("FOR UPDATE")
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	rsv, err := scanReservation(executor.QueryRowContext(ctx, query, args...))
	if err == sql.ErrNoRows {
		return nil, ErrReservationNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan reservation: %w", ErrScanRow, err)
	}

	return rsv, nil
}

// FindConflictingStationIDs возвращает подмножество запрошенных станций,
// у которых есть хотя бы одно подтвержденное бронирование, пересекающееся
// с интервалом [start, end)
//
// Пересечение строгое: existing.start_at < end AND existing.end_at > start,
// поэтому бронирование, заканчивающееся ровно в start, конфликтом не считается.
//
// excludeIDs — бронирования, которые нужно игнорировать (при редактировании
// бронирование не должно конфликтовать со своей же предыдущей версией
// и с другими участниками своей группы)
func (r *Repository) FindConflictingStationIDs(
	ctx context.Context,
	stationIDs []string,
	start, end time.Time,
	excludeIDs []int64,
) ([]string, error) {
	if len(stationIDs) == 0 {
		return []string{}, nil
	}

	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select("id", "station_id").
		From("reservations").
		Where(squirrel.Eq{"station_id": stationIDs}).
		Where(squirrel.Eq{"status": domain.StatusConfirmed}).
		Where(squirrel.Lt{"start_at": end}).
		Where(squirrel.Gt{"end_at": start})

	if len(excludeIDs) > 0 {
		selectBuilder = selectBuilder.Where(squirrel.NotEq{"id": excludeIDs})
	}

	// Внутри сериализуемой транзакции блокируем конфликтующие строки
	// (DISTINCT с FOR UPDATE несовместим, дедупликация станций ниже)
	if dbmetrics.IsInTransaction(ctx) {
		selectBuilder = selectBuilder.Suffix("FOR UPDATE")
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: FindConflictingStationIDs - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: FindConflictingStationIDs - execute query: %w", ErrExecQuery, err)
	}
	defer rows.Close()

	seen := make(map[string]struct{})
	conflicting := make([]string, 0)

	for rows.Next() {
		var id int64
		var stationID string
		if err := rows.Scan(&id, &stationID); err != nil {
			return nil, fmt.Errorf("%w: FindConflictingStationIDs - scan row: %w", ErrScanRow, err)
		}
		if _, ok := seen[stationID]; !ok {
			seen[stationID] = struct{}{}
			conflicting = append(conflicting, stationID)
		}
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: FindConflictingStationIDs - rows error: %w", ErrScanRow, err)
	}

	return conflicting, nil
}

// GetGroupMembers возвращает все бронирования группы, к которой принадлежит rsv
// (включая само rsv)
//
// Для бронирований с group_id членство определяется по нему. Для строк без
// group_id используется производный ключ (телефон, начало, конец) —
// см. domain.GroupKey
//
// Само rsv попадает в выборку независимо от статуса: чтение отмененного
// бронирования должно показывать его вместе с группой. Остальные участники —
// только подтвержденные
func (r *Repository) GetGroupMembers(ctx context.Context, rsv *domain.Reservation) ([]*domain.Reservation, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(reservationColumns...).
		From("reservations").
		Where(squirrel.Or{
			squirrel.Eq{"status": domain.StatusConfirmed},
			squirrel.Eq{"id": rsv.ID},
		})

	if rsv.GroupID != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"group_id": *rsv.GroupID})
	} else {
		selectBuilder = selectBuilder.
			Where(squirrel.Eq{"customer_phone": rsv.CustomerPhone}).
			Where(squirrel.Eq{"start_at": rsv.StartAt}).
			Where(squirrel.Eq{"end_at": rsv.EndAt})
	}

	selectBuilder = selectBuilder.OrderBy("station_id ASC")

	// Групповые мутации выполняются в транзакции — блокируем всех участников
	if dbmetrics.IsInTransaction(ctx) {
		selectBuilder = selectBuilder.Suffix("FOR UPDATE")
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetGroupMembers - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetGroupMembers - execute query: %w", ErrExecQuery, err)
	}
	defer rows.Close()

	return scanReservations(rows)
}

// GetByStationAndDate возвращает подтвержденные бронирования станции,
// пересекающиеся с сутками date (для отображения расписания)
func (r *Repository) GetByStationAndDate(ctx context.Context, stationID string, date time.Time) ([]*domain.Reservation, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	dayStart := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, date.Location())
	dayEnd := dayStart.AddDate(0, 0, 1)

	query, args, err := psqlbuilder.Select(reservationColumns...).
		From("reservations").
		Where(squirrel.Eq{"station_id": stationID}).
		Where(squirrel.Eq{"status": domain.StatusConfirmed}).
		Where(squirrel.Lt{"start_at": dayEnd}).
		Where(squirrel.Gt{"end_at": dayStart}).
		OrderBy("start_at ASC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetByStationAndDate - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetByStationAndDate - execute query: %w", ErrExecQuery, err)
	}
	defer rows.Close()

	return scanReservations(rows)
}

// Update обновляет изменяемые поля бронирования
// Вызывается usecase'ами редактирования и остановки сессии внутри транзакции
func (r *Repository) Update(ctx context.Context, rsv *domain.Reservation) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("reservations").
		Set("start_at", rsv.StartAt).
		Set("end_at", rsv.EndAt).
		Set("payment_status", rsv.PaymentStatus).
		Set("customer_name", rsv.CustomerName).
		Set("customer_phone", rsv.CustomerPhone).
		Set("customer_email", rsv.CustomerEmail).
		Set("total_price", rsv.TotalPrice).
		Set("notes", rsv.Notes).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": rsv.ID}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: Update - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		if isExclusionViolation(err) {
			return fmt.Errorf("%w: station %s, interval [%s, %s)", ErrStationConflict,
				rsv.StationID, rsv.StartAt.Format(time.RFC3339), rsv.EndAt.Format(time.RFC3339))
		}
		return fmt.Errorf("%w: Update - execute update: %w", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: Update - get rows affected: %w", ErrExecQuery, err)
	}

	if rowsAffected == 0 {
		return ErrReservationNotFound
	}

	return nil
}

// Cancel помечает бронирование отмененным (soft delete)
// Интервал станции сразу становится доступным: exclusion constraint
// и проверки доступности учитывают только подтвержденные строки
func (r *Repository) Cancel(ctx context.Context, id int64) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("reservations").
		Set("status", domain.StatusCancelled).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: Cancel - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: Cancel - execute update: %w", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: Cancel - get rows affected: %w", ErrExecQuery, err)
	}

	if rowsAffected == 0 {
		return ErrReservationNotFound
	}

	return nil
}

// Delete удаляет бронирование (физическое удаление, использовать осторожно)
// Рекомендуется использовать Cancel вместо физического удаления для сохранения истории
func (r *Repository) Delete(ctx context.Context, id int64) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Delete("reservations").
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: Delete - build delete query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: Delete - execute delete: %w", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: Delete - get rows affected: %w", ErrExecQuery, err)
	}

	if rowsAffected == 0 {
		return ErrReservationNotFound
	}

	return nil
}

// rowScanner общий интерфейс *sql.Row и *sql.Rows
type rowScanner interface {
	Scan(dest ...interface{}) error
}

// scanReservation сканирует одну строку в domain.Reservation
func scanReservation(row rowScanner) (*domain.Reservation, error) {
	var rsv domain.Reservation
	var groupID uuid.NullUUID
	var createdAt, updatedAt sql.NullTime

	err := row.Scan(
		&rsv.ID,
		&rsv.StationID,
		&groupID,
		&rsv.StartAt,
		&rsv.EndAt,
		&rsv.Status,
		&rsv.PaymentStatus,
		&rsv.CustomerName,
		&rsv.CustomerPhone,
		&rsv.CustomerEmail,
		&rsv.TotalPrice,
		&rsv.Notes,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return nil, err
	}

	if groupID.Valid {
		rsv.GroupID = &groupID.UUID
	}
	rsv.CreatedAt = createdAt.Time
	rsv.UpdatedAt = updatedAt.Time

	return &rsv, nil
}

// scanReservations сканирует результаты запроса в слайс бронирований
func scanReservations(rows *sql.Rows) ([]*domain.Reservation, error) {
	reservations := make([]*domain.Reservation, 0)

	for rows.Next() {
		rsv, err := scanReservation(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: scanReservations - scan row: %w", ErrScanRow, err)
		}
		reservations = append(reservations, rsv)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: scanReservations - rows error: %w", ErrScanRow, err)
	}

	return reservations, nil
}

// groupIDValue конвертирует *uuid.UUID в значение для вставки (NULL для одиночных)
func groupIDValue(id *uuid.UUID) interface{} {
	if id == nil {
		return nil
	}
	return *id
}

// isExclusionViolation проверяет, что ошибка — нарушение exclusion constraint
func isExclusionViolation(err error) bool {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return string(pqErr.Code) == pqExclusionViolation
	}
	return false
}
