package station

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/SMC-ReservationService/internal/domain"
	"github.com/m04kA/SMC-ReservationService/pkg/dbmetrics"
	"github.com/m04kA/SMC-ReservationService/pkg/psqlbuilder"
)

var stationColumns = []string{"id", "type", "branch", "name"}

// Repository репозиторий каталога станций
// Каталог read-only для движка бронирований, провижининг станций
// выполняется отдельным сервисом
type Repository struct {
	db dbmetrics.DBExecutor
}

// NewRepository создает новый экземпляр репозитория станций
func NewRepository(db dbmetrics.DBExecutor) *Repository {
	return &Repository{db: db}
}

// GetByID получает станцию по ID
func (r *Repository) GetByID(ctx context.Context, id string) (*domain.Station, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(stationColumns...).
		From("stations").
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	var st domain.Station
	err = executor.QueryRowContext(ctx, query, args...).Scan(&st.ID, &st.Type, &st.Branch, &st.Name)
	if err == sql.ErrNoRows {
		return nil, ErrStationNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan station: %w", ErrScanRow, err)
	}

	return &st, nil
}

// GetByIDs получает станции по списку ID
// Возвращает ErrStationNotFound, если хотя бы одна станция из списка не существует
func (r *Repository) GetByIDs(ctx context.Context, ids []string) ([]*domain.Station, error) {
	if len(ids) == 0 {
		return []*domain.Station{}, nil
	}

	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(stationColumns...).
		From("stations").
		Where(squirrel.Eq{"id": ids}).
		OrderBy("id ASC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetByIDs - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetByIDs - execute query: %w", ErrExecQuery, err)
	}
	defer rows.Close()

	stations, err := scanStations(rows)
	if err != nil {
		return nil, err
	}

	if len(stations) != len(uniqueIDs(ids)) {
		return nil, ErrStationNotFound
	}

	return stations, nil
}

// GetByBranch получает все станции филиала
// Если branch пустой, возвращает станции всех филиалов
func (r *Repository) GetByBranch(ctx context.Context, branch string) ([]*domain.Station, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(stationColumns...).
		From("stations").
		OrderBy("branch ASC, id ASC")

	if branch != "" {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"branch": branch})
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByBranch - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetByBranch - execute query: %w", ErrExecQuery, err)
	}
	defer rows.Close()

	return scanStations(rows)
}

// scanStations сканирует результаты запроса в слайс станций
func scanStations(rows *sql.Rows) ([]*domain.Station, error) {
	stations := make([]*domain.Station, 0)

	for rows.Next() {
		var st domain.Station
		if err := rows.Scan(&st.ID, &st.Type, &st.Branch, &st.Name); err != nil {
			return nil, fmt.Errorf("%w: scanStations - scan row: %w", ErrScanRow, err)
		}
		stations = append(stations, &st)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: scanStations - rows error: %w", ErrScanRow, err)
	}

	return stations, nil
}

// uniqueIDs убирает дубликаты из списка ID
func uniqueIDs(ids []string) []string {
	seen := make(map[string]struct{}, len(ids))
	result := make([]string, 0, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; !ok {
			seen[id] = struct{}{}
			result = append(result, id)
		}
	}
	return result
}
