package validator

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"

	"astrodesk/pkg/logger"
	"astrodesk/pkg/model"
)

type ValidationError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

func (v ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", v.Field, v.Message)
}

type ValidationErrors []ValidationError

func (v ValidationErrors) Error() string {
	if len(v) == 0 {
		return ""
	}
	var messages []string
	for _, err := range v {
		messages = append(messages, err.Error())
	}
	return fmt.Sprintf("validation failed: %d error(s): [%s]", len(v), strings.Join(messages, "; "))
}

type InquiryValidator struct {
	validate *validator.Validate
	log      *logger.Logger
}

func NewInquiryValidator(log *logger.Logger) *InquiryValidator {
	return &InquiryValidator{
		validate: validator.New(),
		log:      log,
	}
}

func (v *InquiryValidator) Validate(inquiry *model.Inquiry) error {
	return v.validateStruct(inquiry)
}

func (v *InquiryValidator) ValidateStatusUpdate(update *model.InquiryStatusUpdate) error {
	return v.validateStruct(update)
}

func (v *InquiryValidator) ValidateNotesUpdate(update *model.InquiryNotesUpdate) error {
	return v.validateStruct(update)
}

func (v *InquiryValidator) validateStruct(s any) error {
	if err := v.validate.Struct(s); err != nil {
		var validationErrs validator.ValidationErrors
		if errors.As(err, &validationErrs) {
			return v.translate(validationErrs)
		}
		return err
	}
	return nil
}

func (v *InquiryValidator) translate(errs validator.ValidationErrors) ValidationErrors {
	out := make(ValidationErrors, 0, len(errs))
	for _, fe := range errs {
		out = append(out, ValidationError{
			Field:   fe.Field(),
			Message: messageForTag(fe),
		})
	}
	return out
}

func messageForTag(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "email":
		return "must be a valid email address"
	case "min":
		return fmt.Sprintf("must be at least %s characters", fe.Param())
	case "max":
		return fmt.Sprintf("must be at most %s characters", fe.Param())
	default:
		return fmt.Sprintf("failed %s validation", fe.Tag())
	}
}
