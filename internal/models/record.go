package models

// SourceType указывает происхождение записи календаря.
type SourceType string

const (
	// SourceDirectMeeting — запись из таблицы встреч.
	SourceDirectMeeting SourceType = "direct_meeting"
	// SourceCashInquiry — наличная заявка со статусом "встреча назначена".
	SourceCashInquiry SourceType = "cash_inquiry"
	// SourceInstallmentInquiry — заявка в рассрочку со статусом "встреча назначена".
	SourceInstallmentInquiry SourceType = "installment_inquiry"
)

// ReservedName подставляется вместо имени клиента, когда просматривающий
// эксперт не ведёт эту заявку.
const ReservedName = "Reserved"

// ReservedPhone — заглушка телефона при скрытых данных клиента.
const ReservedPhone = "---"

// MeetingRecord — нормализованная запись календаря, собранная из одного
// из трёх источников. Дата всегда григорианская YYYY-MM-DD, время HH:MM;
// поля джалали вычисляются один раз при агрегации, чтобы не повторять
// преобразование при группировках.
type MeetingRecord struct {
	ID              string     `json:"id"`         // Идентификатор с префиксом источника, например cash_123
	SourceType      SourceType `json:"source_type"`
	Date            string     `json:"date"` // Григорианская дата YYYY-MM-DD
	Time            string     `json:"time"` // Время HH:MM
	JalaliDate      string     `json:"jalali_date"` // Дата джалали YYYY/MM/DD
	JalaliYear      int        `json:"jalali_year"`
	JalaliMonth     int        `json:"jalali_month"`
	JalaliDay       int        `json:"jalali_day"`
	JalaliMonthName string     `json:"jalali_month_name"`
	JalaliDayName   string     `json:"jalali_day_name"`
	CustomerName    string     `json:"customer_name"`
	CustomerPhone   string     `json:"customer_phone"`
	ProductName     string     `json:"product_name"`
	// VisibilityAllowed — может ли просматривающий видеть данные клиента.
	VisibilityAllowed bool `json:"visibility_allowed"`
	// InquiryID — связанная заявка, nil для встреч без заявки.
	InquiryID *int `json:"inquiry_id"`
}

// CalendarStats — счётчики для карточек в шапке календаря.
type CalendarStats struct {
	Today int `json:"today"` // Встречи сегодня
	Week  int `json:"week"`  // Встречи в ближайшие 7 дней
	Total int `json:"total"` // Все встречи
}
