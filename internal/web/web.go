// Package web holds the embedded HTML templates for the form and result
// pages.
package web

import (
	"embed"
	"html/template"
)

//go:embed templates/*.html
var templatesFS embed.FS

// Templates holds the parsed page templates, keyed by file name.
var Templates = template.Must(template.ParseFS(templatesFS, "templates/*.html"))

// FormValues carries the submitted field values back into the form so a
// validation failure does not clear the user's input.
type FormValues struct {
	ProposalType      string
	RecipientName     string
	Themes            string
	AdditionalDetails string
}

// FormPage is the data for the index template.
type FormPage struct {
	Errors []string
	Form   FormValues
}

// ProposalPage is the data for the result template.
type ProposalPage struct {
	ProposalHTML template.HTML
	ImageURL     string
}
