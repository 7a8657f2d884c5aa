package models

import "time"

// Статусы заявки. Заявка попадает в календарь только в статусе
// StatusMeetingScheduled и только при заполненных дате и времени встречи.
const (
	StatusNew              = "new"
	StatusInProgress       = "in_progress"
	StatusMeetingScheduled = "meeting_scheduled"
	StatusCompleted        = "completed"
	StatusCancelled        = "cancelled"
)

// Inquiry представляет заявку на покупку автомобиля — наличную или
// в рассрочку. Обе разновидности хранятся одинаково и различаются
// таблицей; MeetingDate может содержать и григорианскую, и джалали
// строку, нормализация выполняется один раз при агрегации.
type Inquiry struct {
	ID               int       // Идентификатор заявки
	CustomerName     string    // Имя клиента
	CustomerPhone    string    // Телефон клиента
	ProductName      string    // Название автомобиля
	Status           string    // Текущий статус
	MeetingDate      string    // Сырая дата встречи из формы
	MeetingTime      string    // Сырое время встречи из формы
	AssignedExpertID int       // Эксперт, ведущий заявку
	CreatedAt        time.Time // Дата создания заявки
}

// DummySchedule используется для приёма данных назначения встречи
// по заявке из JSON-запроса.
type DummySchedule struct {
	Date string `json:"date" validate:"required"` // Дата встречи (джалали или григорианская)
	Time string `json:"time" validate:"required"` // Время HH:MM
}
