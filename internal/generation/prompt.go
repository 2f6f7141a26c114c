package generation

import (
	"fmt"
	"strings"

	"github.com/proposalforge/proposalforge/internal/domain"
)

// ProposalSystemPrompt frames the assistant as an expert for the given
// proposal type. Both text backends share this framing so switching
// providers does not change the tone of the output.
func ProposalSystemPrompt(proposalType domain.ProposalType) string {
	return fmt.Sprintf(
		"You are an expert in crafting %s proposals that are heartfelt and appropriate.",
		proposalType,
	)
}

// ProposalUserPrompt builds the user-role instruction for proposal text
// generation from the request fields.
func ProposalUserPrompt(req *domain.ProposalRequest) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Write a heartfelt %s proposal to %s.\n", req.Type, req.RecipientName)
	fmt.Fprintf(&b, "Themes: %s\n", req.Themes)
	fmt.Fprintf(&b, "Additional context: %s\n\n", req.AdditionalDetails)
	b.WriteString("Please ensure the proposal is:\n")
	b.WriteString("- Sincere and genuine\n")
	b.WriteString("- Approximately 300 words\n")
	b.WriteString("- Positive and uplifting\n")
	fmt.Fprintf(&b, "- Appropriate for the nature of a %s proposal\n", req.Type)
	return b.String()
}

// ImagePrompt builds the single descriptive prompt for image generation.
// It explicitly requests safe, positive content.
func ImagePrompt(proposalType domain.ProposalType, themes string) string {
	return fmt.Sprintf(
		"A beautiful image representing the theme: %s. "+
			"Style: Romantic, uplifting, suitable for a %s proposal. "+
			"Content: Safe, positive themes.",
		strings.TrimSpace(themes), proposalType,
	)
}
