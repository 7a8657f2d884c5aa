package repository

import (
	"context"
	"fmt"
)

// TryLogReminder фиксирует отправку напоминания по встрече в указанном
// окне. Возвращает false, если такое напоминание уже было записано:
// уникальный индекс (meeting_id, window_label) защищает от повторов.
func (s *Storage) TryLogReminder(ctx context.Context, meetingID int, window string) (bool, error) {
	const op = "storage.TryLogReminder"
	select {
	case <-ctx.Done():
		return false, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `INSERT INTO reminder_logs (meeting_id, window_label)
			  VALUES ($1, $2)
			  ON CONFLICT (meeting_id, window_label) DO NOTHING`
	result, err := s.DB.ExecContext(ctx, query, meetingID, window)
	if err != nil {
		return false, fmt.Errorf("%s: %w", op, err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("%s: %w", op, err)
	}
	return rowsAffected > 0, nil
}
