package resource

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/lib/pq"

	"github.com/m04kA/CWP-AllocationService/internal/domain"
	"github.com/m04kA/CWP-AllocationService/pkg/dbmetrics"
	"github.com/m04kA/CWP-AllocationService/pkg/psqlbuilder"
)

var washBayColumns = []string{
	"id",
	"bay_number",
	"max_vehicle_size",
	"equipment_types",
	"status",
	"created_at",
	"updated_at",
}

var mobileTeamColumns = []string{
	"id",
	"name",
	"base_latitude",
	"base_longitude",
	"service_radius_km",
	"daily_capacity",
	"equipment_types",
	"status",
	"created_at",
	"updated_at",
}

// Repository репозиторий ресурсов (боксы и выездные бригады)
// Ресурсы создаются и редактируются сервисом управления площадками,
// здесь они только читаются
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория ресурсов
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// ListWashBays получает список боксов
// Сортировка по номеру бокса фиксирует порядок подбора: при прочих равных
// всегда выбирается бокс с меньшим номером
func (r *Repository) ListWashBays(ctx context.Context, onlyActive bool) ([]*domain.WashBay, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(washBayColumns...).
		From("wash_bays").
		OrderBy("bay_number ASC")

	if onlyActive {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"status": domain.ResourceStatusActive})
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: ListWashBays - build select query: %w", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListWashBays - execute query: %w", ErrExecQuery, err)
	}
	defer rows.Close()

	bays := make([]*domain.WashBay, 0)
	for rows.Next() {
		bay, err := scanWashBay(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: ListWashBays - scan row: %w", ErrScanRow, err)
		}
		bays = append(bays, bay)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: ListWashBays - rows error: %w", ErrScanRow, err)
	}

	return bays, nil
}

// GetWashBayByID получает бокс по ID
func (r *Repository) GetWashBayByID(ctx context.Context, id int64) (*domain.WashBay, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(washBayColumns...).
		From("wash_bays").
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetWashBayByID - build select query: %w", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetWashBayByID - execute query: %w", ErrExecQuery, err)
	}
	defer rows.Close()

	if !rows.Next() {
		if err := rows.Err(); err != nil {
			return nil, fmt.Errorf("%w: GetWashBayByID - rows error: %w", ErrScanRow, err)
		}
		return nil, ErrWashBayNotFound
	}

	bay, err := scanWashBay(rows)
	if err != nil {
		return nil, fmt.Errorf("%w: GetWashBayByID - scan row: %w", ErrScanRow, err)
	}

	return bay, nil
}

// ListMobileTeams получает список выездных бригад
// Сортировка по ID фиксирует порядок подбора
func (r *Repository) ListMobileTeams(ctx context.Context, onlyActive bool) ([]*domain.MobileTeam, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(mobileTeamColumns...).
		From("mobile_teams").
		OrderBy("id ASC")

	if onlyActive {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"status": domain.ResourceStatusActive})
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: ListMobileTeams - build select query: %w", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListMobileTeams - execute query: %w", ErrExecQuery, err)
	}
	defer rows.Close()

	teams := make([]*domain.MobileTeam, 0)
	for rows.Next() {
		team, err := scanMobileTeam(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: ListMobileTeams - scan row: %w", ErrScanRow, err)
		}
		teams = append(teams, team)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: ListMobileTeams - rows error: %w", ErrScanRow, err)
	}

	return teams, nil
}

// GetMobileTeamByID получает бригаду по ID
func (r *Repository) GetMobileTeamByID(ctx context.Context, id int64) (*domain.MobileTeam, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(mobileTeamColumns...).
		From("mobile_teams").
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetMobileTeamByID - build select query: %w", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetMobileTeamByID - execute query: %w", ErrExecQuery, err)
	}
	defer rows.Close()

	if !rows.Next() {
		if err := rows.Err(); err != nil {
			return nil, fmt.Errorf("%w: GetMobileTeamByID - rows error: %w", ErrScanRow, err)
		}
		return nil, ErrMobileTeamNotFound
	}

	team, err := scanMobileTeam(rows)
	if err != nil {
		return nil, fmt.Errorf("%w: GetMobileTeamByID - scan row: %w", ErrScanRow, err)
	}

	return team, nil
}

func scanWashBay(rows *sql.Rows) (*domain.WashBay, error) {
	var bay domain.WashBay
	var equipment pq.StringArray
	var createdAt, updatedAt sql.NullTime

	err := rows.Scan(
		&bay.ID,
		&bay.BayNumber,
		&bay.MaxVehicleSize,
		&equipment,
		&bay.Status,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return nil, err
	}

	bay.EquipmentTypes = []string(equipment)
	bay.CreatedAt = createdAt.Time
	bay.UpdatedAt = updatedAt.Time

	return &bay, nil
}

func scanMobileTeam(rows *sql.Rows) (*domain.MobileTeam, error) {
	var team domain.MobileTeam
	var equipment pq.StringArray
	var createdAt, updatedAt sql.NullTime

	err := rows.Scan(
		&team.ID,
		&team.Name,
		&team.BaseLocation.Latitude,
		&team.BaseLocation.Longitude,
		&team.ServiceRadiusKm,
		&team.DailyCapacity,
		&equipment,
		&team.Status,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return nil, err
	}

	team.EquipmentTypes = []string(equipment)
	team.CreatedAt = createdAt.Time
	team.UpdatedAt = updatedAt.Time

	return &team, nil
}
