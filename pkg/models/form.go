package models

// FieldKind is the input type of a form field as chosen in the page editor
type FieldKind string

const (
	KindSingleLine  FieldKind = "singleline"
	KindMultiLine   FieldKind = "multiline"
	KindEmail       FieldKind = "email"
	KindNumber      FieldKind = "number"
	KindURL         FieldKind = "url"
	KindCheckbox    FieldKind = "checkbox"
	KindCheckboxes  FieldKind = "checkboxes"
	KindDropdown    FieldKind = "dropdown"
	KindMultiSelect FieldKind = "multiselect"
	KindRadio       FieldKind = "radio"
	KindDate        FieldKind = "date"
	KindDateTime    FieldKind = "datetime"
	KindHidden      FieldKind = "hidden"
)

// Valid reports whether k is one of the known field kinds
func (k FieldKind) Valid() bool {
	switch k {
	case KindSingleLine, KindMultiLine, KindEmail, KindNumber, KindURL,
		KindCheckbox, KindCheckboxes, KindDropdown, KindMultiSelect, KindRadio,
		KindDate, KindDateTime, KindHidden:
		return true
	}
	return false
}

// HasChoices reports whether values for k are restricted to a choice list
func (k FieldKind) HasChoices() bool {
	switch k {
	case KindCheckboxes, KindDropdown, KindMultiSelect, KindRadio:
		return true
	}
	return false
}

// MultiValued reports whether k accepts several submitted values
func (k FieldKind) MultiValued() bool {
	return k == KindCheckboxes || k == KindMultiSelect
}

// FieldSpec describes a single field of a form definition
type FieldSpec struct {
	Name         string    `json:"name" yaml:"name"`
	Label        string    `json:"label" yaml:"label"`
	Kind         FieldKind `json:"field_type" yaml:"field_type"`
	Required     bool      `json:"required" yaml:"required"`
	Choices      []string  `json:"choices,omitempty" yaml:"choices,omitempty"`
	DefaultValue string    `json:"default_value,omitempty" yaml:"default_value,omitempty"`
	HelpText     string    `json:"help_text,omitempty" yaml:"help_text,omitempty"`
}

// FormDefinition is the ordered list of fields a form presents and validates against
type FormDefinition []FieldSpec

// Field returns the field with the given name
func (d FormDefinition) Field(name string) (FieldSpec, bool) {
	for _, f := range d {
		if f.Name == name {
			return f, true
		}
	}
	return FieldSpec{}, false
}

// EmailConfig holds the addressing used for submission notifications
type EmailConfig struct {
	FromAddress string `json:"from_address" yaml:"from_address"`
	ToAddress   string `json:"to_address" yaml:"to_address"`
	Subject     string `json:"subject" yaml:"subject"`
}

// FormPage is a page that renders and accepts a form
type FormPage struct {
	ID           string         `json:"id" yaml:"id"`
	Title        string         `json:"title" yaml:"title"`
	Slug         string         `json:"slug" yaml:"slug"`
	Intro        string         `json:"intro" yaml:"intro"`
	ThankYouText string         `json:"thank_you_text" yaml:"thank_you_text"`
	Email        EmailConfig    `json:"email" yaml:"email"`
	Fields       FormDefinition `json:"form_fields" yaml:"form_fields"`
}

// ContentPage is a simple page that can hold a contact form
type ContentPage struct {
	ID          string `json:"id" yaml:"id"`
	Title       string `json:"title" yaml:"title"`
	Slug        string `json:"slug" yaml:"slug"`
	Intro       string `json:"intro" yaml:"intro"`
	ContactForm string `json:"contact_form,omitempty" yaml:"contact_form,omitempty"`
}
