package repository

import (
	"context"
	"fmt"

	"github.com/autopuzzle/dealership-crm/internal/models"
)

// Таблицы заявок. Наличные и рассрочные заявки лежат в отдельных
// таблицах одинаковой формы.
const (
	TableCashInquiries        = "cash_inquiries"
	TableInstallmentInquiries = "installment_inquiries"
)

// ListScheduledCashInquiries возвращает наличные заявки со статусом
// "встреча назначена" и заполненной датой встречи.
func (s *Storage) ListScheduledCashInquiries(ctx context.Context) ([]*models.Inquiry, error) {
	return s.listScheduledInquiries(ctx, TableCashInquiries)
}

// ListScheduledInstallmentInquiries возвращает рассрочные заявки со статусом
// "встреча назначена" и заполненной датой встречи.
func (s *Storage) ListScheduledInstallmentInquiries(ctx context.Context) ([]*models.Inquiry, error) {
	return s.listScheduledInquiries(ctx, TableInstallmentInquiries)
}

// table приходит только из констант выше, подстановка имени безопасна.
func (s *Storage) listScheduledInquiries(ctx context.Context, table string) ([]*models.Inquiry, error) {
	const op = "storage.listScheduledInquiries"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := fmt.Sprintf(`SELECT id, customer_name, customer_phone, product_name, status,
				  COALESCE(meeting_date, ''), COALESCE(meeting_time, ''),
				  assigned_expert_id, created_at
			  FROM %s
			  WHERE status = $1
			    AND meeting_date IS NOT NULL AND meeting_date <> ''`, table)
	rows, err := s.DB.QueryContext(ctx, query, models.StatusMeetingScheduled)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer func() {
		_ = rows.Close()
	}()

	var result []*models.Inquiry
	for rows.Next() {
		var item models.Inquiry
		if err := rows.Scan(&item.ID, &item.CustomerName, &item.CustomerPhone,
			&item.ProductName, &item.Status, &item.MeetingDate, &item.MeetingTime,
			&item.AssignedExpertID, &item.CreatedAt); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		result = append(result, &item)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return result, nil
}

// ReadInquiry возвращает заявку из указанной таблицы по её ID.
func (s *Storage) ReadInquiry(ctx context.Context, table string, id int) (*models.Inquiry, error) {
	const op = "storage.ReadInquiry"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := fmt.Sprintf(`SELECT id, customer_name, customer_phone, product_name, status,
				  COALESCE(meeting_date, ''), COALESCE(meeting_time, ''),
				  assigned_expert_id, created_at
			  FROM %s WHERE id = $1`, table)
	row := s.DB.QueryRowContext(ctx, query, id)

	var result models.Inquiry
	if err := row.Scan(&result.ID, &result.CustomerName, &result.CustomerPhone,
		&result.ProductName, &result.Status, &result.MeetingDate, &result.MeetingTime,
		&result.AssignedExpertID, &result.CreatedAt); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return &result, nil
}

// ScheduleInquiryMeeting записывает дату и время встречи по заявке и
// переводит её в статус "встреча назначена". Возвращает количество
// изменённых строк.
func (s *Storage) ScheduleInquiryMeeting(ctx context.Context, table string, id int, date, timeStr string) (int, error) {
	const op = "storage.ScheduleInquiryMeeting"
	select {
	case <-ctx.Done():
		return 0, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := fmt.Sprintf(`UPDATE %s
			  SET meeting_date = $1, meeting_time = $2, status = $3
			  WHERE id = $4`, table)
	result, err := s.DB.ExecContext(ctx, query, date, timeStr, models.StatusMeetingScheduled, id)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return int(rowsAffected), nil
}
