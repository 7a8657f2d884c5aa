package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/autopuzzle/dealership-crm/internal/models"
)

// CreateMeeting вставляет новую встречу и возвращает её ID.
func (s *Storage) CreateMeeting(ctx context.Context, meeting models.Meeting) (int, error) {
	const op = "storage.CreateMeeting"
	select {
	case <-ctx.Done():
		return 0, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `INSERT INTO meetings (start_time, customer_name, customer_phone, product_name,
			      inquiry_id, inquiry_type, assigned_expert_id)
			  VALUES ($1, $2, $3, $4, $5, $6, $7)
			  RETURNING id`
	var newID int
	err := s.DB.QueryRowContext(ctx, query,
		meeting.Start, meeting.CustomerName, meeting.CustomerPhone, meeting.ProductName,
		meeting.InquiryID, meeting.InquiryType, meeting.AssignedExpertID).Scan(&newID)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return newID, nil
}

// RemoveMeeting удаляет встречу по ID и возвращает количество удалённых строк.
func (s *Storage) RemoveMeeting(ctx context.Context, id int) (int, error) {
	const op = "storage.RemoveMeeting"
	select {
	case <-ctx.Done():
		return 0, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `DELETE FROM meetings WHERE id = $1`
	result, err := s.DB.ExecContext(ctx, query, id)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return int(rowsAffected), nil
}

// ReadMeeting возвращает данные встречи по её ID.
func (s *Storage) ReadMeeting(ctx context.Context, id int) (*models.Meeting, error) {
	const op = "storage.ReadMeeting"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT id, uid, start_time, customer_name, customer_phone, product_name,
				  inquiry_id, inquiry_type, assigned_expert_id
			  FROM meetings WHERE id = $1`
	row := s.DB.QueryRowContext(ctx, query, id)

	var result models.Meeting
	var inquiryID sql.NullInt64
	if err := row.Scan(&result.ID, &result.UID, &result.Start, &result.CustomerName,
		&result.CustomerPhone, &result.ProductName, &inquiryID, &result.InquiryType,
		&result.AssignedExpertID); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	if inquiryID.Valid {
		v := int(inquiryID.Int64)
		result.InquiryID = &v
	}
	return &result, nil
}

// UpdateMeeting обновляет данные встречи по её ID и возвращает количество изменённых строк.
func (s *Storage) UpdateMeeting(ctx context.Context, req models.Meeting, id int) (int, error) {
	const op = "storage.UpdateMeeting"
	select {
	case <-ctx.Done():
		return 0, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `UPDATE meetings
			  SET start_time = $1, customer_name = $2, customer_phone = $3, product_name = $4,
			      inquiry_id = $5, inquiry_type = $6, assigned_expert_id = $7
			  WHERE id = $8`
	result, err := s.DB.ExecContext(ctx, query,
		req.Start, req.CustomerName, req.CustomerPhone, req.ProductName,
		req.InquiryID, req.InquiryType, req.AssignedExpertID, id)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}

	return int(rowsAffected), nil
}

// ListMeetings возвращает список всех встреч с пагинацией.
func (s *Storage) ListMeetings(ctx context.Context, limit, offset int) ([]*models.Meeting, error) {
	const op = "storage.ListMeetings"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT id, uid, start_time, customer_name, customer_phone, product_name,
				  inquiry_id, inquiry_type, assigned_expert_id
			  FROM meetings
			  ORDER BY start_time
			  LIMIT $1 OFFSET $2`
	rows, err := s.DB.QueryContext(ctx, query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer func() {
		_ = rows.Close()
	}()

	var result []*models.Meeting
	for rows.Next() {
		var item models.Meeting
		var inquiryID sql.NullInt64
		if err := rows.Scan(&item.ID, &item.UID, &item.Start, &item.CustomerName,
			&item.CustomerPhone, &item.ProductName, &inquiryID, &item.InquiryType,
			&item.AssignedExpertID); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		if inquiryID.Valid {
			v := int(inquiryID.Int64)
			item.InquiryID = &v
		}
		result = append(result, &item)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return result, nil
}

// FindMeetingsStartingBetween находит встречи, начинающиеся в указанном
// интервале. Почта клиента подтягивается из users по номеру телефона,
// если клиент зарегистрирован в системе.
func (s *Storage) FindMeetingsStartingBetween(ctx context.Context, from, to time.Time) ([]*models.ReminderJob, error) {
	const op = "storage.FindMeetingsStartingBetween"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT
			      m.id,
			      m.start_time,
			      m.customer_name,
			      m.customer_phone,
			      COALESCE(u.email, '') AS customer_email,
			      m.product_name
			  FROM meetings m
		      LEFT JOIN users u ON u.phone = m.customer_phone
		      WHERE m.start_time >= $1 AND m.start_time < $2`
	rows, err := s.DB.QueryContext(ctx, query, from, to)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer func() {
		_ = rows.Close()
	}()

	var result []*models.ReminderJob
	for rows.Next() {
		var job models.ReminderJob
		if err = rows.Scan(&job.MeetingID, &job.Start, &job.CustomerName,
			&job.CustomerPhone, &job.CustomerEmail, &job.ProductName); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		result = append(result, &job)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return result, nil
}
