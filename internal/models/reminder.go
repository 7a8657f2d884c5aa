package models

import "time"

// ReminderJob — задание на отправку напоминания о встрече,
// публикуемое планировщиком в очередь.
type ReminderJob struct {
	MeetingID     int       `json:"meeting_id"`     // Идентификатор встречи
	Start         time.Time `json:"start"`          // Начало встречи
	CustomerName  string    `json:"customer_name"`  // Имя клиента
	CustomerPhone string    `json:"customer_phone"` // Телефон для SMS
	CustomerEmail string    `json:"customer_email"` // Почта для письма
	ProductName   string    `json:"product_name"`   // Автомобиль
	// Window — метка окна напоминания, например "24h" или "1d";
	// используется для защиты от повторной отправки.
	Window string `json:"window"`
}
