package sqlite

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/ngocht-dev/anchor-game/internal/game/storage"
)

// AppendTelemetryEvent persists one operation journal row.
func (s *Store) AppendTelemetryEvent(ctx context.Context, evt storage.TelemetryEvent) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if s == nil || s.sqlDB == nil {
		return fmt.Errorf("storage is not configured")
	}
	if strings.TrimSpace(evt.Operation) == "" {
		return fmt.Errorf("telemetry operation is required")
	}
	if evt.Timestamp.IsZero() {
		evt.Timestamp = time.Now().UTC()
	}

	attributes := evt.AttributesJSON
	if len(attributes) == 0 {
		attributes = []byte("{}")
	}

	if _, err := s.sqlDB.ExecContext(ctx, `
INSERT INTO telemetry_events (timestamp, operation, severity, game_id, actor, entity_type, entity_id, attributes_json)
VALUES (?, ?, ?, ?, ?, ?, ?, ?)
`,
		toMillis(evt.Timestamp),
		evt.Operation,
		evt.Severity,
		evt.GameID,
		evt.Actor,
		evt.EntityType,
		evt.EntityID,
		string(attributes),
	); err != nil {
		return fmt.Errorf("append telemetry event: %w", err)
	}
	return nil
}
