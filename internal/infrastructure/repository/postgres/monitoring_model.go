package postgres

import (
	"database/sql"
	"fmt"
	"time"

	sonic "github.com/bytedance/sonic"

	"github.com/courtdata/gamelines/internal/domain/monitoring"
)

type monitoringTableModel struct {
	ID           int64          `db:"id"`
	FunctionName string         `db:"function_name"`
	EventType    string         `db:"event_type"`
	DurationMs   sql.NullInt64  `db:"duration_ms"`
	ErrorMessage sql.NullString `db:"error_message"`
	Metadata     []byte         `db:"metadata"`
	Timestamp    time.Time      `db:"timestamp"`
	CreatedAt    time.Time      `db:"created_at"`
}

func (m monitoringTableModel) toDomain() (monitoring.Event, error) {
	event := monitoring.Event{
		ID:           m.ID,
		FunctionName: m.FunctionName,
		EventType:    m.EventType,
		ErrorMessage: m.ErrorMessage.String,
		Timestamp:    m.Timestamp,
		CreatedAt:    m.CreatedAt,
	}
	if m.DurationMs.Valid {
		duration := m.DurationMs.Int64
		event.DurationMs = &duration
	}
	if len(m.Metadata) > 0 {
		if err := sonic.Unmarshal(m.Metadata, &event.Metadata); err != nil {
			return monitoring.Event{}, fmt.Errorf("decode monitoring metadata: %w", err)
		}
	}
	return event, nil
}

type monitoringInsertModel struct {
	FunctionName string         `db:"function_name"`
	EventType    string         `db:"event_type"`
	DurationMs   sql.NullInt64  `db:"duration_ms"`
	ErrorMessage sql.NullString `db:"error_message"`
	Metadata     []byte         `db:"metadata"`
	Timestamp    time.Time      `db:"timestamp"`
}
