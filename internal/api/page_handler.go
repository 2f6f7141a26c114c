package api

import (
	"bytes"
	"html/template"
	"log/slog"
	"net/http"

	"github.com/yuin/goldmark"

	"github.com/proposalforge/proposalforge/internal/web"
)

// PageHandler serves the HTML form and result pages.
type PageHandler struct {
	generator ProposalGenerator
	logger    *slog.Logger
}

// NewPageHandler creates a new PageHandler.
func NewPageHandler(generator ProposalGenerator, logger *slog.Logger) *PageHandler {
	return &PageHandler{
		generator: generator,
		logger:    logger,
	}
}

// ShowForm handles GET / requests.
func (h *PageHandler) ShowForm(w http.ResponseWriter, r *http.Request) {
	h.render(w, "index.html", web.FormPage{})
}

// SubmitForm handles POST / requests: validate the form, run the
// orchestrator, and render either the proposal page or the form with
// flash messages.
func (h *PageHandler) SubmitForm(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		h.logger.WarnContext(r.Context(), "failed to parse form", "error", err)
		h.render(w, "index.html", web.FormPage{
			Errors: []string{"Invalid form submission."},
		})
		return
	}

	form := web.FormValues{
		ProposalType:      r.PostFormValue("proposal_type"),
		RecipientName:     r.PostFormValue("recipient_name"),
		Themes:            r.PostFormValue("themes"),
		AdditionalDetails: r.PostFormValue("additional_details"),
	}

	if messages := validateProposalFields(form.ProposalType, form.RecipientName, form.Themes); len(messages) > 0 {
		h.render(w, "index.html", web.FormPage{Errors: messages, Form: form})
		return
	}

	outcome := h.generator.Generate(
		r.Context(),
		form.ProposalType,
		form.RecipientName,
		form.Themes,
		form.AdditionalDetails,
	)
	if outcome.Failed() {
		h.logger.ErrorContext(r.Context(), "proposal generation failed",
			"error_message", outcome.ErrorMessage)
		h.render(w, "index.html", web.FormPage{
			Errors: []string{GenerationFailedMessage},
			Form:   form,
		})
		return
	}

	h.render(w, "proposal.html", web.ProposalPage{
		ProposalHTML: h.proposalHTML(outcome.Proposal),
		ImageURL:     ImageURLPath(outcome.ImageFilename),
	})
}

// proposalHTML renders the generated markdown to HTML. If conversion
// fails, the escaped plain text is shown instead.
func (h *PageHandler) proposalHTML(md string) template.HTML {
	var buf bytes.Buffer
	if err := goldmark.Convert([]byte(md), &buf); err != nil {
		h.logger.Warn("failed to render proposal markdown", "error", err)
		return template.HTML("<p>" + template.HTMLEscapeString(md) + "</p>")
	}
	return template.HTML(buf.String())
}

func (h *PageHandler) render(w http.ResponseWriter, name string, data interface{}) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := web.Templates.ExecuteTemplate(w, name, data); err != nil {
		h.logger.Error("failed to render template", "template", name, "error", err)
	}
}
