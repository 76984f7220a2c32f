package validation

import (
	"fmt"
	"math"
	"net/url"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/digitalocean/contact-form/pkg/models"
)

// Error codes and messages reported to clients
const (
	CodeRequired      = "required"
	CodeInvalid       = "invalid"
	CodeInvalidChoice = "invalid_choice"

	MsgRequired = "This field is required."
	MsgEmail    = "Enter a valid email address."
	MsgURL      = "Enter a valid URL."
	MsgNumber   = "Enter a number."
	MsgDate     = "Enter a valid date."
	MsgDateTime = "Enter a valid date/time."
)

const dateLayout = "2006-01-02"

var (
	decimalNumber   = regexp.MustCompile(`^[+-]?(\d+\.?\d*|\.\d+)([eE][+-]?\d+)?$`)
	dateLayouts     = []string{dateLayout, "01/02/2006", "01/02/06"}
	dateTimeLayouts = []string{
		time.RFC3339,
		"2006-01-02T15:04",
		"2006-01-02 15:04:05",
		"2006-01-02 15:04",
		"2006-01-02",
	}
)

// Engine turns a raw payload into cleaned data or field errors
type Engine interface {
	Validate(payload url.Values, def models.FormDefinition) models.ValidationResult
}

type engineImpl struct {
	validate *validator.Validate
}

// NewEngine creates the default validation engine
func NewEngine() Engine {
	return &engineImpl{validate: validator.New()}
}

func (e *engineImpl) Validate(payload url.Values, def models.FormDefinition) models.ValidationResult {
	result := models.ValidationResult{
		Cleaned: models.CleanedData{},
		Errors:  models.FieldErrors{},
	}
	for _, field := range def {
		value, err := e.cleanField(field, payload[field.Name])
		if err != nil {
			result.Errors.Add(field.Name, err.Message, err.Code)
			continue
		}
		result.Cleaned[field.Name] = value
	}
	if len(result.Errors) > 0 {
		result.Cleaned = nil
	} else {
		result.Errors = nil
	}
	return result
}

func (e *engineImpl) cleanField(field models.FieldSpec, raw []string) (any, *models.FieldError) {
	if field.Kind.MultiValued() {
		return cleanChoices(field, raw)
	}

	value := ""
	if len(raw) > 0 {
		value = raw[0]
	}
	if field.Kind != models.KindHidden {
		value = strings.TrimSpace(value)
	}

	if field.Kind == models.KindCheckbox {
		checked := isChecked(value)
		if field.Required && !checked {
			return nil, fieldError(MsgRequired, CodeRequired)
		}
		return checked, nil
	}

	if value == "" {
		if field.Required {
			return nil, fieldError(MsgRequired, CodeRequired)
		}
		return emptyValue(field.Kind), nil
	}

	switch field.Kind {
	case models.KindEmail:
		if e.validate.Var(value, "email") != nil {
			return nil, fieldError(MsgEmail, CodeInvalid)
		}
		return value, nil
	case models.KindURL:
		if !strings.Contains(value, "://") {
			value = "http://" + value
		}
		if e.validate.Var(value, "url") != nil {
			return nil, fieldError(MsgURL, CodeInvalid)
		}
		return value, nil
	case models.KindNumber:
		if !decimalNumber.MatchString(value) {
			return nil, fieldError(MsgNumber, CodeInvalid)
		}
		n, err := strconv.ParseFloat(value, 64)
		if err != nil || math.IsNaN(n) || math.IsInf(n, 0) {
			return nil, fieldError(MsgNumber, CodeInvalid)
		}
		return n, nil
	case models.KindDate:
		t, ok := parseAny(value, dateLayouts)
		if !ok {
			return nil, fieldError(MsgDate, CodeInvalid)
		}
		return t.Format(dateLayout), nil
	case models.KindDateTime:
		t, ok := parseAny(value, dateTimeLayouts)
		if !ok {
			return nil, fieldError(MsgDateTime, CodeInvalid)
		}
		return t, nil
	case models.KindDropdown, models.KindRadio:
		if !contains(field.Choices, value) {
			return nil, invalidChoice(value)
		}
		return value, nil
	}
	return value, nil
}

func cleanChoices(field models.FieldSpec, raw []string) (any, *models.FieldError) {
	selected := make([]string, 0, len(raw))
	for _, v := range raw {
		if v = strings.TrimSpace(v); v != "" {
			selected = append(selected, v)
		}
	}
	if len(selected) == 0 {
		if field.Required {
			return nil, fieldError(MsgRequired, CodeRequired)
		}
		return []string{}, nil
	}
	for _, v := range selected {
		if !contains(field.Choices, v) {
			return nil, invalidChoice(v)
		}
	}
	return selected, nil
}

func emptyValue(kind models.FieldKind) any {
	switch kind {
	case models.KindNumber, models.KindDate, models.KindDateTime:
		return nil
	}
	return ""
}

func isChecked(value string) bool {
	switch strings.ToLower(value) {
	case "", "false", "0", "off":
		return false
	}
	return true
}

func parseAny(value string, layouts []string) (time.Time, bool) {
	for _, layout := range layouts {
		if t, err := time.Parse(layout, value); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

func contains(choices []string, value string) bool {
	for _, c := range choices {
		if strings.TrimSpace(c) == value {
			return true
		}
	}
	return false
}

func fieldError(message, code string) *models.FieldError {
	return &models.FieldError{Message: message, Code: code}
}

func invalidChoice(value string) *models.FieldError {
	return fieldError(fmt.Sprintf("Select a valid choice. %s is not one of the available choices.", value), CodeInvalidChoice)
}
