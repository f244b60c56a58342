package frontend_domain

import (
	"html/template"

	"github.com/admissible-dev/admissible-demo/shared/api"
)

// CommonTemplateData holds fields that are common to all page templates.
// Available in templates as .Common via the TemplateData wrapper.
type CommonTemplateData struct {
	Error     string
	CSRFToken string // CSRF token for form submissions
}

type HomePage struct {
	SignedIn bool
	Email    string
	Error    bool
	Activity []api.ActivityEvent
}

type HelloPage struct {
	Message   string
	Forbidden bool
	Error     bool
}

type SignInPage struct {
	Email       string
	MaxEmailLen int
}

type OtpPage struct {
	Email     string
	MaxOtpLen int
}

type AboutPage struct {
	Body template.HTML
}
