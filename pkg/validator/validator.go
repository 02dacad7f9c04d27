package validator

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
)

func FormatValidationError(err error) string {
	var validationErrors validator.ValidationErrors
	if errors.As(err, &validationErrors) {
		var messages []string
		for _, fieldError := range validationErrors {
			message := getFieldErrorMessage(fieldError)
			messages = append(messages, message)
		}
		return strings.Join(messages, "; ")
	}
	return err.Error()
}

func getFieldErrorMessage(fe validator.FieldError) string {
	field := getFieldName(fe.Field())

	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("%s zorunludur", field)
	case "uuid":
		return fmt.Sprintf("%s geçerli bir kimlik olmalıdır", field)
	case "min", "gte":
		return fmt.Sprintf("%s en az %s olmalıdır", field, fe.Param())
	case "max", "lte":
		return fmt.Sprintf("%s en fazla %s olmalıdır", field, fe.Param())
	case "url":
		return fmt.Sprintf("%s geçerli bir adres olmalıdır", field)
	case "oneof":
		return fmt.Sprintf("%s şunlardan biri olmalıdır: %s", field, fe.Param())
	default:
		return fmt.Sprintf("%s geçersiz", field)
	}
}

func getFieldName(field string) string {
	fieldNames := map[string]string{
		"OpponentID": "Rakip",
		"BookID":     "Kitap",
		"ReceiverID": "Alıcı",
		"Amount":     "Miktar",
		"Note":       "Not",
		"FriendID":   "Arkadaş",
		"Answers":    "Cevaplar",
		"Hours":      "Süre",
		"Target":     "Hedef",
		"Name":       "Ad",
		"Title":      "Başlık",
		"Author":     "Yazar",
		"Pages":      "Sayfa sayısı",
		"CategoryID": "Tür",
		"CoverURL":   "Kapak",
	}

	if name, ok := fieldNames[field]; ok {
		return name
	}
	return field
}
