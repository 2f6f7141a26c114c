package api

import (
	"errors"
	"strings"

	"github.com/proposalforge/proposalforge/internal/domain"
)

// User-facing validation messages, shared by the form and JSON handlers.
const (
	msgProposalTypeRequired = "Proposal type is required."
	msgProposalTypeInvalid  = "Please select a valid proposal type."
	msgRecipientRequired    = "Recipient's name is required."
	msgThemesRequired       = "Please specify at least one theme."
)

// validateProposalFields checks the three required fields and returns the
// full list of user-facing messages. An empty list means the fields are
// acceptable to hand to the orchestrator.
func validateProposalFields(proposalType, recipientName, themes string) []string {
	var messages []string

	if _, err := domain.ParseProposalType(proposalType); err != nil {
		if errors.Is(err, domain.ErrEmptyProposalType) {
			messages = append(messages, msgProposalTypeRequired)
		}
		messages = append(messages, msgProposalTypeInvalid)
	}
	if strings.TrimSpace(recipientName) == "" {
		messages = append(messages, msgRecipientRequired)
	}
	if strings.TrimSpace(themes) == "" {
		messages = append(messages, msgThemesRequired)
	}

	return messages
}
