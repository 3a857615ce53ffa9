package deck

import (
	"errors"
	"fmt"
	"reflect"
	"strconv"
	"strings"
	"unicode"

	"github.com/go-playground/validator/v10"

	"github.com/osse101/DeckBuilder_Go/internal/domain"
)

var inputValidator = newInputValidator()

func newInputValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	_ = v.RegisterValidation("notblank", notBlank)
	_ = v.RegisterValidation("nocontrol", noControl)
	v.RegisterStructValidationMapRules(map[string]string{
		"Name":   "required,notblank,nocontrol,max=" + strconv.Itoa(domain.MaxDeckNameLength),
		"Format": "required,notblank,nocontrol,max=" + strconv.Itoa(domain.MaxFormatLength),
	}, domain.DeckInput{})

	// Report fields by their JSON names
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

func notBlank(fl validator.FieldLevel) bool {
	return strings.TrimSpace(fl.Field().String()) != ""
}

// noControl rejects control characters inside the trimmed value. Postgres
// refuses NUL in text columns, so they never reach a store.
func noControl(fl validator.FieldLevel) bool {
	return strings.IndexFunc(strings.TrimSpace(fl.Field().String()), unicode.IsControl) < 0
}

// ValidateInput checks a new deck's name and format. On failure it returns
// a *domain.ValidationError carrying the input exactly as submitted.
func ValidateInput(input domain.DeckInput) error {
	err := inputValidator.Struct(input)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return &domain.ValidationError{Input: input, Fields: map[string]string{"deck": err.Error()}}
	}

	fields := make(map[string]string, len(fieldErrs))
	for _, fe := range fieldErrs {
		switch fe.Tag() {
		case "required", "notblank":
			fields[fe.Field()] = "is required"
		case "nocontrol":
			fields[fe.Field()] = "must not contain control characters"
		case "max":
			fields[fe.Field()] = fmt.Sprintf("must be at most %s characters", fe.Param())
		default:
			fields[fe.Field()] = "is invalid"
		}
	}
	return &domain.ValidationError{Input: input, Fields: fields}
}

// NormalizeInput trims surrounding whitespace from validated input
func NormalizeInput(input domain.DeckInput) domain.DeckInput {
	return domain.DeckInput{
		Name:   strings.TrimSpace(input.Name),
		Format: strings.TrimSpace(input.Format),
	}
}

// ValidateQuantity checks a per-request copy count
func ValidateQuantity(n int) error {
	if n < 1 || n > domain.MaxCopiesPerRequest {
		return fmt.Errorf("%w: got %d", domain.ErrInvalidQuantity, n)
	}
	return nil
}
