package generation

import (
	"context"

	"github.com/proposalforge/proposalforge/internal/domain"
)

// Generator defines the interface for producing proposal text from a
// validated request. It is the boundary between the application core and
// the external chat-completion service.
type Generator interface {
	// GenerateProposal produces the proposal prose for the given request.
	// The returned string is trimmed of surrounding whitespace. Failures
	// are reported with the error kinds defined in errors.go.
	GenerateProposal(ctx context.Context, req *domain.ProposalRequest) (string, error)
}

// ImageGenerator defines the interface for producing an accompanying image
// for a proposal. Implementations persist the image and return the bare
// filename; resolving it to a servable URL is the caller's concern.
type ImageGenerator interface {
	// GenerateImage renders an image for the proposal type and themes,
	// writes it under the configured images directory, and returns the
	// generated filename.
	GenerateImage(ctx context.Context, proposalType domain.ProposalType, themes string) (string, error)
}
