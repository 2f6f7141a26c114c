package api

import (
	"context"

	"github.com/proposalforge/proposalforge/internal/service"
)

// ProposalGenerator is the orchestrator contract the handlers depend on.
// Generate is total: it always returns a tagged outcome, never panics or
// raises, which is what lets the handlers map results without error
// branches of their own.
type ProposalGenerator interface {
	Generate(ctx context.Context, proposalType, recipientName, themes, additionalDetails string) service.Outcome
}

// GenerateProposalRequest defines the payload for the JSON proposal
// endpoint. Field validation happens in validateProposalFields so the form
// and JSON surfaces report identical messages.
type GenerateProposalRequest struct {
	ProposalType      string `json:"proposal_type"`
	RecipientName     string `json:"recipient_name"`
	Themes            string `json:"themes"`
	AdditionalDetails string `json:"additional_details"`
}

// ProposalResponse defines the successful response for the JSON proposal
// endpoint.
type ProposalResponse struct {
	Proposal      string `json:"proposal"`
	ImageFilename string `json:"image_filename"`
	ImageURL      string `json:"image_url"`
}
