package email

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

type fakeTemplateSource struct {
	templates map[string][2]string
}

func (f *fakeTemplateSource) LookupTemplate(name string) (string, string, bool) {
	entry, ok := f.templates[name]
	if !ok {
		return "", "", false
	}
	return entry[0], entry[1], true
}

func TestRenderOTP(t *testing.T) {
	t.Run("built-in template without a source", func(t *testing.T) {
		subject, body := renderOTP(nil, "Abebe", "123456")

		assert.Equal(t, "Your verification code", subject)
		assert.Contains(t, body, "Abebe")
		assert.Contains(t, body, "123456")
	})

	t.Run("override replaces subject and body", func(t *testing.T) {
		src := &fakeTemplateSource{templates: map[string][2]string{
			TemplateOTP: {"Selam {{.Name}}", "<p>Code: {{.Code}}</p>"},
		}}

		subject, body := renderOTP(src, "Abebe", "123456")

		assert.Equal(t, "Selam {{.Name}}", subject)
		assert.Equal(t, "<p>Code: 123456</p>", body)
	})

	t.Run("missing override falls back to built-in", func(t *testing.T) {
		src := &fakeTemplateSource{templates: map[string][2]string{}}

		subject, body := renderOTP(src, "Abebe", "123456")

		assert.Equal(t, "Your verification code", subject)
		assert.Contains(t, body, "123456")
	})

	t.Run("broken override falls back to built-in", func(t *testing.T) {
		src := &fakeTemplateSource{templates: map[string][2]string{
			TemplateOTP: {"Broken", "{{.Code"},
		}}

		subject, body := renderOTP(src, "Abebe", "123456")

		assert.Equal(t, "Your verification code", subject)
		assert.Contains(t, body, "123456")
	})

	t.Run("override referencing an unknown field falls back", func(t *testing.T) {
		src := &fakeTemplateSource{templates: map[string][2]string{
			TemplateOTP: {"Broken", "{{.DoesNotExist}}"},
		}}

		subject, body := renderOTP(src, "Abebe", "123456")

		assert.Equal(t, "Your verification code", subject)
		assert.Contains(t, body, "123456")
	})
}

func TestRenderWelcome(t *testing.T) {
	t.Run("built-in template", func(t *testing.T) {
		subject, body := renderWelcome(nil, "Abebe")

		assert.Equal(t, "Welcome to Gebeya", subject)
		assert.Contains(t, body, "Abebe")
	})

	t.Run("override is used", func(t *testing.T) {
		src := &fakeTemplateSource{templates: map[string][2]string{
			TemplateWelcome: {"Enkuan dehna metah", "<h1>Hi {{.Name}}</h1>"},
		}}

		subject, body := renderWelcome(src, "Abebe")

		assert.Equal(t, "Enkuan dehna metah", subject)
		assert.Equal(t, "<h1>Hi Abebe</h1>", body)
	})
}
