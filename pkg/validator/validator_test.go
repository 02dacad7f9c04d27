package validator

import (
	"errors"
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
)

type giftForm struct {
	ReceiverID string `validate:"required,uuid"`
	Amount     int    `validate:"min=1,max=10000"`
}

func TestFormatValidationError(t *testing.T) {
	v := validator.New()
	err := v.Struct(giftForm{Amount: 10001})

	msg := FormatValidationError(err)
	assert.Contains(t, msg, "Alıcı zorunludur")
	assert.Contains(t, msg, "Miktar en fazla 10000 olmalıdır")
}

func TestFormatValidationErrorPassesThroughOtherErrors(t *testing.T) {
	assert.Equal(t, "boom", FormatValidationError(errors.New("boom")))
}
