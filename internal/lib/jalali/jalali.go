// Package jalali реализует преобразование дат между иранским солнечным
// календарём (джалали, шамси) и григорианским календарём.
//
// Все пользовательские даты в системе отображаются по джалали, вся
// арифметика и сортировка выполняются по григорианскому календарю.
// Поддерживаемый диапазон — примерно 1280–1600 по джалали
// (1901–2222 по григорианскому): внутри него прямое и обратное
// преобразование взаимно однозначны.
package jalali

import "time"

var jDaysInMonth = [12]int{31, 31, 31, 31, 31, 31, 30, 30, 30, 30, 30, 29}
var gDaysInMonth = [12]int{31, 28, 31, 30, 31, 30, 31, 31, 30, 31, 30, 31}

// gDayOfYear хранит количество дней до начала каждого григорианского месяца.
var gDayOfYear = [12]int{0, 31, 59, 90, 120, 151, 181, 212, 243, 273, 304, 334}

// MonthNames содержит названия месяцев джалали, индекс 0 — Farvardin.
var MonthNames = [12]string{
	"Farvardin", "Ordibehesht", "Khordad", "Tir", "Mordad", "Shahrivar",
	"Mehr", "Aban", "Azar", "Dey", "Bahman", "Esfand",
}

// WeekdayNames содержит названия дней недели, неделя начинается с субботы.
var WeekdayNames = [7]string{
	"Saturday", "Sunday", "Monday", "Tuesday", "Wednesday", "Thursday", "Friday",
}

// Date представляет один день сразу в двух календарных системах.
// Значение вычисляется по требованию и нигде не сохраняется.
type Date struct {
	GregorianYear  int `json:"gregorian_year"`
	GregorianMonth int `json:"gregorian_month"`
	GregorianDay   int `json:"gregorian_day"`
	JalaliYear     int `json:"jalali_year"`
	JalaliMonth    int `json:"jalali_month"`
	JalaliDay      int `json:"jalali_day"`
	// Weekday — индекс дня недели, суббота = 0.
	Weekday int `json:"weekday"`
	// Названия месяца и дня недели, заполняются в FromTime.
	MonthLabel   string `json:"jalali_month_name"`
	WeekdayLabel string `json:"weekday_name"`
}

// ToGregorian преобразует дату джалали в григорианскую.
//
// Смещение от эпохи считается по 33-летнему циклу високосных лет,
// затем счётчик дней раскладывается в григорианскую дату по каскаду
// правил 400/100/4 с длиной 400-летнего цикла 146097 дней.
// Корректность входа не проверяется: вызывающая сторона обязана
// передавать существующую дату джалали.
func ToGregorian(jy, jm, jd int) (int, int, int) {
	jy -= 979
	jm--
	jd--

	jDayNo := 365*jy + jy/33*8 + (jy%33+3)/4
	for i := 0; i < jm; i++ {
		jDayNo += jDaysInMonth[i]
	}
	jDayNo += jd

	gDayNo := jDayNo + 79

	gy := 1600 + 400*(gDayNo/146097)
	gDayNo %= 146097

	leap := true
	if gDayNo >= 36525 {
		gDayNo--
		gy += 100 * (gDayNo / 36524)
		gDayNo %= 36524
		if gDayNo >= 365 {
			gDayNo++
		} else {
			leap = false
		}
	}

	gy += 4 * (gDayNo / 1461)
	gDayNo %= 1461

	if gDayNo >= 366 {
		leap = false
		gDayNo--
		gy += gDayNo / 365
		gDayNo %= 365
	}

	gm := 0
	for gm < 12 && gDayNo >= monthLen(gm, leap) {
		gDayNo -= monthLen(gm, leap)
		gm++
	}

	return gy, gm + 1, gDayNo + 1
}

func monthLen(gm int, leap bool) int {
	if gm == 1 && leap {
		return 29
	}
	return gDaysInMonth[gm]
}

// FromGregorian преобразует григорианскую дату в джалали.
// Обратная функция к ToGregorian на поддерживаемом диапазоне.
func FromGregorian(gy, gm, gd int) (int, int, int) {
	jy := 0
	if gy > 1600 {
		jy = 979
		gy -= 1600
	} else {
		gy -= 621
	}

	gy2 := gy
	if gm > 2 {
		gy2 = gy + 1
	}
	days := 365*gy + (gy2+3)/4 - (gy2+99)/100 + (gy2+399)/400 - 80 + gd + gDayOfYear[gm-1]

	jy += 33 * (days / 12053)
	days %= 12053

	jy += 4 * (days / 1461)
	days %= 1461

	if days > 365 {
		jy += (days - 1) / 365
		days = (days - 1) % 365
	}

	var jm, jd int
	if days < 186 {
		jm = 1 + days/31
		jd = 1 + days%31
	} else {
		jm = 7 + (days-186)/30
		jd = 1 + (days-186)%30
	}

	return jy, jm, jd
}

// FromTime строит Date по моменту времени, заполняя обе календарные
// системы и индекс дня недели.
func FromTime(t time.Time) Date {
	gy, gm, gd := t.Year(), int(t.Month()), t.Day()
	jy, jm, jd := FromGregorian(gy, gm, gd)
	d := Date{
		GregorianYear:  gy,
		GregorianMonth: gm,
		GregorianDay:   gd,
		JalaliYear:     jy,
		JalaliMonth:    jm,
		JalaliDay:      jd,
		Weekday:        WeekdayIndex(t),
	}
	d.MonthLabel = MonthName(jm)
	d.WeekdayLabel = WeekdayName(d.Weekday)
	return d
}

// WeekdayIndex возвращает индекс дня недели с началом в субботу:
// суббота = 0, пятница = 6.
func WeekdayIndex(t time.Time) int {
	return (int(t.Weekday()) + 1) % 7
}

// MonthName возвращает название месяца джалали (1–12),
// пустую строку для значения вне диапазона.
func MonthName(jm int) string {
	if jm < 1 || jm > 12 {
		return ""
	}
	return MonthNames[jm-1]
}

// WeekdayName возвращает название дня недели по индексу (суббота = 0),
// пустую строку для значения вне диапазона.
func WeekdayName(w int) string {
	if w < 0 || w > 6 {
		return ""
	}
	return WeekdayNames[w]
}
