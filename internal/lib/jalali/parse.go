package jalali

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"
)

// Пороговый диапазон лет, по которому строка Y/M/D распознаётся как
// дата джалали. Диапазон исторический и менять его нельзя: сдвиг
// порога молча переинтерпретирует уже сохранённые даты.
const (
	jalaliYearMin = 1300
	jalaliYearMax = 1500
)

var dateStringRe = regexp.MustCompile(`^(\d{4})/(\d{1,2})/(\d{1,2})$`)

// Запасные форматы для строк, не попавших под шаблон Y/M/D.
var fallbackLayouts = []string{
	"2006-01-02 15:04:05",
	"2006-01-02T15:04:05",
	"2006-01-02 15:04",
	"2006-01-02",
	"02.01.2006",
}

// ConvertDateStringToGregorian приводит произвольную строку даты к
// каноническому григорианскому виду YYYY-MM-DD.
//
// Строка сначала очищается от локальных цифр, разделители '-', '.'
// приводятся к '/'. Если получился шаблон Y/M/D и год лежит в
// диапазоне 1300–1500 — дата считается джалали и конвертируется;
// год вне диапазона трактуется как григорианский. Иначе строка
// пробуется запасными форматами. Вторым значением возвращается
// false, если дату распознать не удалось: такая запись не может
// попасть в календарь и должна быть пропущена вызывающей стороной.
func ConvertDateStringToGregorian(raw string) (string, bool) {
	value := strings.TrimSpace(NormalizeDigits(raw))
	if value == "" {
		return "", false
	}

	slashed := strings.NewReplacer("-", "/", ".", "/").Replace(value)
	if m := dateStringRe.FindStringSubmatch(slashed); m != nil {
		year, _ := strconv.Atoi(m[1])
		month, _ := strconv.Atoi(m[2])
		day, _ := strconv.Atoi(m[3])
		if month < 1 || month > 12 || day < 1 || day > 31 {
			return "", false
		}

		if year >= jalaliYearMin && year <= jalaliYearMax {
			gy, gm, gd := ToGregorian(year, month, day)
			return fmt.Sprintf("%04d-%02d-%02d", gy, gm, gd), true
		}
		return fmt.Sprintf("%04d-%02d-%02d", year, month, day), true
	}

	for _, layout := range fallbackLayouts {
		if t, err := time.Parse(layout, value); err == nil {
			return t.Format("2006-01-02"), true
		}
	}
	return "", false
}

// SplitDateTime разбивает сырое значение даты-времени на дату и время
// HH:MM. Разделителем служит пробел или 'T'; если часть времени
// отсутствует, возвращается пустая строка.
func SplitDateTime(raw string) (datePart, timePart string) {
	value := strings.TrimSpace(NormalizeDigits(raw))
	sep := strings.IndexAny(value, " T")
	if sep < 0 {
		return value, ""
	}
	datePart = value[:sep]
	timePart = strings.TrimSpace(value[sep+1:])
	if parts := strings.Split(timePart, ":"); len(parts) > 2 {
		timePart = parts[0] + ":" + parts[1]
	}
	return datePart, timePart
}

// NormalizeClock приводит время вида H:M к каноническому HH:MM.
// Непригодные значения возвращаются как есть вторым значением false.
func NormalizeClock(raw string) (string, bool) {
	value := strings.TrimSpace(NormalizeDigits(raw))
	parts := strings.SplitN(value, ":", 2)
	if len(parts) != 2 {
		return "", false
	}
	hour, err := strconv.Atoi(parts[0])
	if err != nil || hour < 0 || hour > 23 {
		return "", false
	}
	minutePart := parts[1]
	if len(minutePart) > 2 {
		minutePart = minutePart[:2]
	}
	minute, err := strconv.Atoi(minutePart)
	if err != nil || minute < 0 || minute > 59 {
		return "", false
	}
	return fmt.Sprintf("%02d:%02d", hour, minute), true
}
