package forms

import (
	"net/url"
	"regexp"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/digitalocean/contact-form/pkg/models"
)

func countHoneypots(def models.FormDefinition) int {
	n := 0
	for _, f := range def {
		if f.Label == HoneypotLabel {
			n++
		}
	}
	return n
}

func TestEnsureHoneypotFieldOnEmptyDefinition(t *testing.T) {
	def := EnsureHoneypotField(nil)

	require.Len(t, def, 1)
	assert.Equal(t, "spammer_jammer", def[0].Name)
	assert.Equal(t, models.KindHidden, def[0].Kind)
	assert.False(t, def[0].Required)
}

func TestEnsureHoneypotFieldIsLastAndUnique(t *testing.T) {
	input := models.FormDefinition{
		{Label: HoneypotLabel, Kind: models.KindSingleLine, Required: true},
		{Label: "Email", Kind: models.KindEmail, Required: true},
		{Label: "Message", Kind: models.KindMultiLine},
	}

	def := EnsureHoneypotField(input)

	require.Len(t, def, 3)
	assert.Equal(t, 1, countHoneypots(def))
	last := def[len(def)-1]
	if diff := cmp.Diff(HoneypotField(), last); diff != "" {
		t.Errorf("honeypot field mismatch (-want +got):\n%s", diff)
	}
	assert.Equal(t, "email", def[0].Name)
	assert.Equal(t, "message", def[1].Name)
	assert.Equal(t, models.KindSingleLine, input[0].Kind, "input must not be modified")
}

func TestEnsureHoneypotFieldIdempotent(t *testing.T) {
	once := EnsureHoneypotField(models.FormDefinition{{Label: "Name", Kind: models.KindSingleLine}})
	twice := EnsureHoneypotField(once)

	if diff := cmp.Diff(once, twice); diff != "" {
		t.Errorf("second pass changed definition (-once +twice):\n%s", diff)
	}
}

func TestDataFieldsDropsHoneypot(t *testing.T) {
	def := EnsureHoneypotField(models.FormDefinition{{Label: "Email", Kind: models.KindEmail}})

	data := DataFields(def)

	require.Len(t, data, 1)
	assert.Equal(t, "email", data[0].Name)
}

func TestStripHoneypot(t *testing.T) {
	cleaned := models.CleanedData{"email": "a@example.com", HoneypotName: ""}

	out := StripHoneypot(cleaned)

	assert.Equal(t, models.CleanedData{"email": "a@example.com"}, out)
	assert.Contains(t, cleaned, HoneypotName)
}

func TestClassify(t *testing.T) {
	tests := []struct {
		name    string
		payload url.Values
		want    Gate
	}{
		{"empty payload", url.Values{}, GateMalformed},
		{"other fields only", url.Values{"email": {"not-an-email"}}, GateMalformed},
		{"empty honeypot", url.Values{"spammer_jammer": {""}}, GateCandidate},
		{"filled honeypot", url.Values{"spammer_jammer": {"Only spammers will fill this."}}, GateSuppressed},
		{"whitespace honeypot", url.Values{"spammer_jammer": {" "}}, GateSuppressed},
		{"filled honeypot with invalid fields", url.Values{"spammer_jammer": {"x"}, "email": {"nope"}}, GateSuppressed},
		{"repeated honeypot filled last", url.Values{"spammer_jammer": {"", "I am a bot"}}, GateSuppressed},
		{"repeated honeypot filled first", url.Values{"spammer_jammer": {"I am a bot", ""}}, GateSuppressed},
		{"repeated empty honeypot", url.Values{"spammer_jammer": {"", ""}}, GateCandidate},
		{"key with no values", url.Values{"spammer_jammer": {}}, GateMalformed},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Classify(tt.payload))
		})
	}
}

func TestCleanName(t *testing.T) {
	tests := map[string]string{
		"Spammer Jammer":    "spammer_jammer",
		"Email":             "email",
		"E-mail address":    "e_mail_address",
		"  Your   Name?  ":  "your_name",
		"Café order":        "cafe_order",
		"Phone (optional)":  "phone_optional",
		"Straße":            "strasse",
	}
	for label, want := range tests {
		assert.Equal(t, want, CleanName(label), label)
	}
}

func TestCleanNameTransliteratesNonLatinLabels(t *testing.T) {
	ascii := regexp.MustCompile(`^[a-z0-9_]+$`)
	for _, label := range []string{"Имя", "名前", "Ελληνικά"} {
		name := CleanName(label)
		assert.Regexp(t, ascii, name, label)
	}
	assert.Equal(t, "imia", CleanName("Имя"))
}
