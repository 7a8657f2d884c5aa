package services

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"

	"github.com/autopuzzle/dealership-crm/internal/lib/jalali"
	"github.com/autopuzzle/dealership-crm/internal/lib/sl"
	"github.com/autopuzzle/dealership-crm/internal/lib/smtp"
	"github.com/autopuzzle/dealership-crm/internal/models"
	"github.com/autopuzzle/dealership-crm/internal/smsprovider"
)

// SMSClient описывает клиент SMS-шлюза.
type SMSClient interface {
	SendSMS(req smsprovider.SendSMSRequest) (*smsprovider.SendSMSResponse, error)
}

// SenderService доставляет напоминания: SMS через шлюз, письма через SMTP.
type SenderService struct {
	transport smtp.TransportInterface
	sms       SMSClient
	log       *slog.Logger
}

// NewSenderService создает новый экземпляр SenderService.
func NewSenderService(transport smtp.TransportInterface, sms SMSClient, log *slog.Logger) *SenderService {
	return &SenderService{
		transport: transport,
		sms:       sms,
		log:       log,
	}
}

// reminderText строит текст напоминания. Дата показывается по джалали,
// как и во всём остальном интерфейсе салона.
func reminderText(job models.ReminderJob) string {
	d := jalali.FromTime(job.Start)
	when := fmt.Sprintf("%s, %d %s %d, %s",
		jalali.WeekdayName(d.Weekday), d.JalaliDay, jalali.MonthName(d.JalaliMonth),
		d.JalaliYear, job.Start.Format("15:04"))
	if job.ProductName != "" {
		return fmt.Sprintf("%s, we are expecting you at the dealership on %s regarding %s.",
			job.CustomerName, when, job.ProductName)
	}
	return fmt.Sprintf("%s, we are expecting you at the dealership on %s.",
		job.CustomerName, when)
}

// SendReminderSMS обрабатывает задание из очереди reminders.sms.
func (s *SenderService) SendReminderSMS(body []byte) error {
	var job models.ReminderJob
	if err := json.Unmarshal(body, &job); err != nil {
		s.log.Error("failed to unmarshal reminder job", sl.Err(err))
		return fmt.Errorf("error unmarshalling message: %w", err)
	}
	if job.CustomerPhone == "" {
		s.log.Warn("reminder job without phone, skipping", slog.Int("meeting_id", job.MeetingID))
		return nil
	}

	resp, err := s.sms.SendSMS(smsprovider.SendSMSRequest{
		To:      job.CustomerPhone,
		Message: reminderText(job),
	})
	if err != nil {
		s.log.Error("failed to send sms", slog.Int("meeting_id", job.MeetingID), sl.Err(err))
		return err
	}
	if !resp.Success {
		s.log.Error("sms gateway rejected message",
			slog.Int("meeting_id", job.MeetingID), slog.String("error", resp.ErrorText))
		return fmt.Errorf("sms gateway rejected message: %s", resp.ErrorText)
	}

	s.log.Info("sms reminder sent",
		slog.Int("meeting_id", job.MeetingID), slog.String("message_id", resp.MessageID))
	return nil
}

// SendReminderEmail обрабатывает задание из очереди reminders.email.
func (s *SenderService) SendReminderEmail(body []byte) error {
	var job models.ReminderJob
	if err := json.Unmarshal(body, &job); err != nil {
		s.log.Error("failed to unmarshal reminder job", sl.Err(err))
		return fmt.Errorf("error unmarshalling message: %w", err)
	}
	if job.CustomerEmail == "" {
		s.log.Warn("reminder job without email, skipping", slog.Int("meeting_id", job.MeetingID))
		return nil
	}

	subject := "Meeting reminder"
	if err := s.sendEmail([]string{job.CustomerEmail}, subject, reminderText(job)); err != nil {
		return err
	}
	s.log.Info("email reminder sent", slog.Int("meeting_id", job.MeetingID))
	return nil
}

func (s *SenderService) sendEmail(to []string, subject, bodyText string) error {
	msg := strings.Join([]string{
		"From: " + s.transport.GetFrom(),
		"To: " + strings.Join(to, ";"),
		"Subject: " + subject,
		"MIME-Version: 1.0",
		"Content-Type: text/plain; charset=\"UTF-8\"",
		"",
		bodyText,
	}, "\r\n")

	client, err := s.transport.Connect()
	if err != nil {
		s.log.Error("failed to connect to SMTP server", sl.Err(err))
		return err
	}
	defer client.Close()

	if err := client.Mail(s.transport.GetFrom()); err != nil {
		s.log.Error("failed to set MAIL FROM", slog.String("from", s.transport.GetFrom()), sl.Err(err))
		return err
	}

	for _, addr := range to {
		if err := client.Rcpt(addr); err != nil {
			s.log.Error("failed to set RCPT TO", slog.String("recipient", addr), sl.Err(err))
			return err
		}
	}

	wc, err := client.Data()
	if err != nil {
		s.log.Error("failed to get data writer", sl.Err(err))
		return err
	}

	_, err = wc.Write([]byte(msg))
	if err != nil {
		s.log.Error("failed to write email body", sl.Err(err))
		return err
	}

	if err = wc.Close(); err != nil {
		s.log.Error("failed to close data writer", sl.Err(err))
		return err
	}

	if err = client.Quit(); err != nil {
		s.log.Error("failed to quit SMTP client", sl.Err(err))
		return err
	}

	return nil
}
