package email

import (
	"bytes"
	"html/template"
)

var otpTemplate = template.Must(template.New(TemplateOTP).Parse(`
<div style="font-family: Arial, sans-serif; max-width: 480px; margin: 0 auto;">
  <h2>Hello {{.Name}},</h2>
  <p>Your verification code is:</p>
  <p style="font-size: 28px; font-weight: bold; letter-spacing: 4px;">{{.Code}}</p>
  <p>The code expires in 10 minutes. If you did not request it, ignore this email.</p>
</div>
`))

var welcomeTemplate = template.Must(template.New(TemplateWelcome).Parse(`
<div style="font-family: Arial, sans-serif; max-width: 480px; margin: 0 auto;">
  <h2>Welcome, {{.Name}}!</h2>
  <p>Your account is verified. You can now post listings, chat with sellers and manage your subscription.</p>
</div>
`))

func renderOTP(src TemplateSource, name, code string) (subject, body string) {
	return render(src, TemplateOTP, "Your verification code", otpTemplate,
		struct{ Name, Code string }{name, code})
}

func renderWelcome(src TemplateSource, name string) (subject, body string) {
	return render(src, TemplateWelcome, "Welcome to Gebeya", welcomeTemplate,
		struct{ Name string }{name})
}

// render prefers an admin override. A broken override falls back to the
// built-in template rather than failing the send.
func render(src TemplateSource, name, fallbackSubject string, fallback *template.Template, data interface{}) (string, string) {
	if src != nil {
		if subject, rawBody, ok := src.LookupTemplate(name); ok {
			if tmpl, err := template.New(name).Parse(rawBody); err == nil {
				var buf bytes.Buffer
				if err := tmpl.Execute(&buf, data); err == nil {
					return subject, buf.String()
				}
			}
		}
	}

	var buf bytes.Buffer
	_ = fallback.Execute(&buf, data)
	return fallbackSubject, buf.String()
}
