// Package models содержит доменные структуры дилерского CRM: встречи,
// заявки на покупку, нормализованные записи календаря и пользователей,
// а также вспомогательные типы для приёма данных из JSON-запросов.
package models

import "time"

// Meeting представляет запланированную встречу с клиентом в салоне.
type Meeting struct {
	ID               int       // Идентификатор записи
	UID              string    // Публичный UUID встречи
	Start            time.Time // Начало встречи (григорианское время)
	CustomerName     string    // Имя клиента
	CustomerPhone    string    // Телефон клиента
	ProductName      string    // Название автомобиля
	InquiryID        *int      // Связанная заявка (nil для встреч без заявки)
	InquiryType      string    // Тип заявки: cash или installment
	AssignedExpertID int       // Эксперт, ведущий клиента
}

// DummyMeeting используется для приёма данных встречи из JSON-запроса.
// Дата приходит строкой: допускается и григорианский формат
// YYYY-MM-DD, и джалали YYYY/MM/DD, цифры — любой локали.
type DummyMeeting struct {
	Date             string `json:"date" validate:"required"`            // Дата встречи
	Time             string `json:"time" validate:"required"`            // Время HH:MM
	CustomerName     string `json:"customer_name" validate:"required"`   // Имя клиента
	CustomerPhone    string `json:"customer_phone" validate:"omitempty"` // Телефон клиента
	ProductName      string `json:"product_name" validate:"omitempty"`   // Название автомобиля
	InquiryID        *int   `json:"inquiry_id" validate:"omitempty"`     // Связанная заявка
	InquiryType      string `json:"inquiry_type" validate:"omitempty,oneof=cash installment"`
	AssignedExpertID int    `json:"assigned_expert_id" validate:"omitempty,gte=0"`
}
