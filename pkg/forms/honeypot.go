package forms

import (
	"github.com/digitalocean/contact-form/pkg/models"
)

const (
	// HoneypotLabel is the label of the spam protection field
	HoneypotLabel = "Spammer Jammer"
	// HoneypotHelpText is shown to editors next to the spam protection field
	HoneypotHelpText = "Blank field for spam protection"
)

// HoneypotName is the submission key of the spam protection field
var HoneypotName = CleanName(HoneypotLabel)

// HoneypotField returns the canonical spam protection field
func HoneypotField() models.FieldSpec {
	return models.FieldSpec{
		Name:     HoneypotName,
		Label:    HoneypotLabel,
		Kind:     models.KindHidden,
		Required: false,
		HelpText: HoneypotHelpText,
	}
}

// IsHoneypot reports whether f is the spam protection field
func IsHoneypot(f models.FieldSpec) bool {
	return f.Label == HoneypotLabel
}

// EnsureHoneypotField returns a copy of def that holds exactly one spam
// protection field, placed last. Any editor-made field with the honeypot label
// is replaced by the canonical one. def itself is not modified.
func EnsureHoneypotField(def models.FormDefinition) models.FormDefinition {
	out := make(models.FormDefinition, 0, len(def)+1)
	for _, f := range def {
		if IsHoneypot(f) {
			continue
		}
		if f.Name == "" {
			f.Name = CleanName(f.Label)
		}
		out = append(out, f)
	}
	return append(out, HoneypotField())
}

// DataFields returns the fields exposed to downstream consumers, which is
// every field except the spam protection one.
func DataFields(def models.FormDefinition) models.FormDefinition {
	out := make(models.FormDefinition, 0, len(def))
	for _, f := range def {
		if !IsHoneypot(f) {
			out = append(out, f)
		}
	}
	return out
}

// StripHoneypot returns a copy of cleaned without the spam protection value
func StripHoneypot(cleaned models.CleanedData) models.CleanedData {
	out := make(models.CleanedData, len(cleaned))
	for k, v := range cleaned {
		if k == HoneypotName {
			continue
		}
		out[k] = v
	}
	return out
}
