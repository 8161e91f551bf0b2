package create_booking

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/m04kA/SMC-WorkshopBooking/internal/domain"
)

var validate = validator.New()

// validateRequest проверяет теги структуры и канал записи
func validateRequest(req *Request) error {
	if err := validate.Struct(req); err != nil {
		var fieldErrs validator.ValidationErrors
		if errors.As(err, &fieldErrs) {
			return fmt.Errorf("%w: %s", ErrInvalidInput, describeFieldErrors(fieldErrs))
		}
		return fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	if !domain.Channel(req.Channel).IsValid() {
		return fmt.Errorf("%w: %q", ErrInvalidChannel, req.Channel)
	}

	return nil
}

func describeFieldErrors(errs validator.ValidationErrors) string {
	messages := make([]string, 0, len(errs))
	for _, fe := range errs {
		var message string
		switch fe.Tag() {
		case "required":
			message = fmt.Sprintf("%s is required", fe.Field())
		case "required_without":
			message = fmt.Sprintf("%s is required when %s is empty", fe.Field(), fe.Param())
		case "gt":
			message = fmt.Sprintf("%s must be positive", fe.Field())
		case "max":
			message = fmt.Sprintf("%s must be at most %s characters", fe.Field(), fe.Param())
		case "datetime":
			message = fmt.Sprintf("%s must match layout %s", fe.Field(), fe.Param())
		case "e164":
			message = fmt.Sprintf("%s must be in E.164 format", fe.Field())
		default:
			message = fe.Error()
		}
		messages = append(messages, message)
	}
	return strings.Join(messages, "; ")
}
