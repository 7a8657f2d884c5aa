package jalali

import "strings"

var persianDigits = [10]rune{'۰', '۱', '۲', '۳', '۴', '۵', '۶', '۷', '۸', '۹'}
var arabicDigits = [10]rune{'٠', '١', '٢', '٣', '٤', '٥', '٦', '٧', '٨', '٩'}

// NormalizeDigits заменяет персидские и арабские цифры в строке
// на ASCII-цифры. Остальные символы проходят без изменений,
// функция идемпотентна.
func NormalizeDigits(s string) string {
	return strings.Map(func(r rune) rune {
		for i, p := range persianDigits {
			if r == p {
				return rune('0' + i)
			}
		}
		for i, a := range arabicDigits {
			if r == a {
				return rune('0' + i)
			}
		}
		return r
	}, s)
}

// ToPersianDigits заменяет ASCII-цифры на персидские.
// Обратная функция к NormalizeDigits для строк без арабских цифр.
func ToPersianDigits(s string) string {
	return strings.Map(func(r rune) rune {
		if r >= '0' && r <= '9' {
			return persianDigits[r-'0']
		}
		return r
	}, s)
}
