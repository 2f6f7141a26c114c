package api

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/proposalforge/proposalforge/internal/api/shared"
)

// GenerationFailedMessage is the flash/error message shown to users when
// generation fails for any reason. Detail stays in the logs.
const GenerationFailedMessage = "An error occurred while generating your proposal. Please try again."

// ProposalHandler handles the JSON proposal endpoint.
type ProposalHandler struct {
	generator ProposalGenerator
	logger    *slog.Logger
}

// NewProposalHandler creates a new ProposalHandler.
func NewProposalHandler(generator ProposalGenerator, logger *slog.Logger) *ProposalHandler {
	return &ProposalHandler{
		generator: generator,
		logger:    logger,
	}
}

// GenerateProposal handles POST /api/proposals requests.
func (h *ProposalHandler) GenerateProposal(w http.ResponseWriter, r *http.Request) {
	var req GenerateProposalRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		h.logger.DebugContext(r.Context(), "failed to decode request body", "error", err)
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}

	// The field check covers missing, whitespace-only and unknown values
	// and produces the user-facing messages for all of them.
	if messages := validateProposalFields(req.ProposalType, req.RecipientName, req.Themes); len(messages) > 0 {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Validation failed", messages...)
		return
	}

	outcome := h.generator.Generate(
		r.Context(),
		req.ProposalType,
		req.RecipientName,
		req.Themes,
		req.AdditionalDetails,
	)
	if outcome.Failed() {
		shared.RespondWithErrorAndLog(w, r, http.StatusBadGateway,
			GenerationFailedMessage, errors.New(outcome.ErrorMessage))
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, ProposalResponse{
		Proposal:      outcome.Proposal,
		ImageFilename: outcome.ImageFilename,
		ImageURL:      ImageURLPath(outcome.ImageFilename),
	})
}

// ImageURLPath resolves a generated image filename to its servable URL.
func ImageURLPath(filename string) string {
	return "/static/images/" + filename
}
