package postgres

import (
	"context"
	"database/sql"
	"fmt"

	sonic "github.com/bytedance/sonic"
	"github.com/jmoiron/sqlx"

	"github.com/courtdata/gamelines/internal/domain/monitoring"
	qb "github.com/courtdata/gamelines/internal/platform/querybuilder"
)

type MonitoringRepository struct {
	db *sqlx.DB
}

func NewMonitoringRepository(db *sqlx.DB) *MonitoringRepository {
	return &MonitoringRepository{db: db}
}

// Insert appends one audit event and returns the stored row. The table is
// append-only; nothing here updates or deletes.
func (r *MonitoringRepository) Insert(ctx context.Context, e monitoring.Event) (monitoring.Event, error) {
	if err := e.Validate(); err != nil {
		return monitoring.Event{}, fmt.Errorf("validate monitoring event: %w", err)
	}

	insertModel := monitoringInsertModel{
		FunctionName: e.FunctionName,
		EventType:    e.EventType,
		Timestamp:    e.Timestamp,
	}
	if e.DurationMs != nil {
		insertModel.DurationMs = sql.NullInt64{Int64: *e.DurationMs, Valid: true}
	}
	if e.ErrorMessage != "" {
		insertModel.ErrorMessage = sql.NullString{String: e.ErrorMessage, Valid: true}
	}
	if len(e.Metadata) > 0 {
		raw, err := sonic.Marshal(e.Metadata)
		if err != nil {
			return monitoring.Event{}, fmt.Errorf("encode monitoring metadata: %w", err)
		}
		insertModel.Metadata = raw
	}

	query, args, err := qb.InsertModel("function_monitoring", insertModel, "RETURNING *")
	if err != nil {
		return monitoring.Event{}, fmt.Errorf("build insert monitoring event query: %w", err)
	}

	var row monitoringTableModel
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		return monitoring.Event{}, fmt.Errorf("insert monitoring event function=%s: %w", e.FunctionName, err)
	}

	return row.toDomain()
}
