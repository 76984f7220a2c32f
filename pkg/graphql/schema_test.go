package graphql

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/digitalocean/contact-form/pkg/content"
)

const site = `
form_pages:
  - id: form-1
    title: Contact
    slug: contact
    intro: "*Write to us*"
    email:
      from_address: site@example.com
      to_address: staff@example.com
      subject: New contact
    form_fields:
      - label: Email
        field_type: email
        required: true
content_pages:
  - id: page-1
    title: About
    slug: about
    intro: About us
    contact_form: contact
`

func run(t *testing.T, query string, vars map[string]any) map[string]any {
	t.Helper()
	reg, err := content.ParseSite([]byte(site))
	require.NoError(t, err)
	schema, err := NewSchema(reg)
	require.NoError(t, err)

	res := schema.Do(context.Background(), Request{Query: query, Variables: vars})
	require.False(t, res.HasErrors(), "errors: %v", res.Errors)

	// round trip through JSON to compare plain values
	b, err := json.Marshal(res.Data)
	require.NoError(t, err)
	var out map[string]any
	require.NoError(t, json.Unmarshal(b, &out))
	return out
}

func TestQueryFormPage(t *testing.T) {
	data := run(t, `query($slug: String!) {
		formPage(slug: $slug) {
			id title url intro subject fromAddress toAddress
			formFields { name label fieldType required }
			usedOnPage { slug }
		}
	}`, map[string]any{"slug": "contact"})

	form := data["formPage"].(map[string]any)
	assert.Equal(t, "form-1", form["id"])
	assert.Equal(t, "/contact/", form["url"])
	assert.Equal(t, "<p><em>Write to us</em></p>\n", form["intro"])
	assert.Equal(t, "New contact", form["subject"])
	assert.Equal(t, "staff@example.com", form["toAddress"])

	fields := form["formFields"].([]any)
	require.Len(t, fields, 2)
	assert.Equal(t, map[string]any{"name": "email", "label": "Email", "fieldType": "email", "required": true}, fields[0])
	assert.Equal(t, map[string]any{"name": "spammer_jammer", "label": "Spammer Jammer", "fieldType": "hidden", "required": false}, fields[1])

	assert.Equal(t, []any{map[string]any{"slug": "about"}}, form["usedOnPage"])
}

func TestQueryPages(t *testing.T) {
	data := run(t, `{ pages { title intro contactForm { slug } } }`, nil)

	assert.Equal(t, []any{map[string]any{
		"title":       "About",
		"intro":       "<p>About us</p>\n",
		"contactForm": map[string]any{"slug": "contact"},
	}}, data["pages"])
}

func TestQueryMissingPageIsNull(t *testing.T) {
	data := run(t, `{ page(slug: "nope") { title } formPage(slug: "nope") { title } }`, nil)

	assert.Nil(t, data["page"])
	assert.Nil(t, data["formPage"])
}

func TestQueryErrors(t *testing.T) {
	reg := content.NewRegistry()
	schema, err := NewSchema(reg)
	require.NoError(t, err)

	res := schema.Do(context.Background(), Request{Query: `{ nope }`})
	assert.True(t, res.HasErrors())
}
