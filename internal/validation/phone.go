// Package validation содержит функции валидации входных данных.
package validation

import "unicode"

// IsValidWhatsAppNumber проверяет номер для связи в WhatsApp: только цифры,
// длина от 7 до 15 знаков (E.164 без знака плюс).
func IsValidWhatsAppNumber(number string) bool {
	if len(number) < 7 || len(number) > 15 {
		return false
	}

	for _, ch := range number {
		if !unicode.IsDigit(ch) {
			return false
		}
	}

	return true
}
