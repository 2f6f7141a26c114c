// Package service contains the proposal generation orchestrator. It
// sequences the text and image stages, applies the retry policy to each
// outbound call, and collapses every failure into a tagged Outcome so no
// error ever crosses this boundary as a raw value.
package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/proposalforge/proposalforge/internal/domain"
	"github.com/proposalforge/proposalforge/internal/generation"
	"github.com/proposalforge/proposalforge/internal/retry"
)

// GenericErrorMessage is the fixed user-safe message returned for failures
// that are not generation errors. Diagnostic detail goes to the logs only.
const GenericErrorMessage = "An unexpected error occurred."

// ProposalService orchestrates proposal generation: text first, then the
// accompanying image. The image stage only starts after the text stage
// succeeds.
type ProposalService struct {
	generator      generation.Generator
	imageGenerator generation.ImageGenerator
	policy         retry.Policy
	logger         *slog.Logger
}

// NewProposalService creates a ProposalService with the given backends and
// retry policy.
func NewProposalService(
	generator generation.Generator,
	imageGenerator generation.ImageGenerator,
	policy retry.Policy,
	logger *slog.Logger,
) (*ProposalService, error) {
	if generator == nil {
		return nil, errors.New("generator cannot be nil")
	}
	if imageGenerator == nil {
		return nil, errors.New("image generator cannot be nil")
	}
	if logger == nil {
		return nil, errors.New("logger cannot be nil")
	}

	if policy.Permanent == nil {
		policy.Permanent = generation.IsPermanent
	}

	return &ProposalService{
		generator:      generator,
		imageGenerator: imageGenerator,
		policy:         policy,
		logger:         logger,
	}, nil
}

// Generate runs the full pipeline for the raw form fields and always
// returns a tagged Outcome, never an error. Invalid fields produce an
// error outcome before any network call is made.
func (s *ProposalService) Generate(ctx context.Context, rawType, recipientName, themes, additionalDetails string) Outcome {
	req, err := domain.NewProposalRequest(rawType, recipientName, themes, additionalDetails)
	if err != nil {
		s.logger.WarnContext(ctx, "rejected invalid proposal request", "error", err)
		return Failure(err.Error())
	}

	proposal, err := s.generateText(ctx, req)
	if err != nil {
		return s.failureFor(ctx, "proposal text generation failed", err)
	}

	imageFilename, err := s.generateImage(ctx, req)
	if err != nil {
		return s.failureFor(ctx, "proposal image generation failed", err)
	}

	s.logger.InfoContext(ctx, "proposal generated",
		"proposal_type", req.Type,
		"proposal_length", len(proposal),
		"image_filename", imageFilename)

	return Success(proposal, imageFilename)
}

func (s *ProposalService) generateText(ctx context.Context, req *domain.ProposalRequest) (string, error) {
	var proposal string
	err := retry.Do(ctx, s.policy, s.logger.With("stage", "proposal_text"), func() error {
		text, genErr := s.generator.GenerateProposal(ctx, req)
		if genErr != nil {
			return genErr
		}
		proposal = text
		return nil
	})
	return proposal, err
}

func (s *ProposalService) generateImage(ctx context.Context, req *domain.ProposalRequest) (string, error) {
	var filename string
	err := retry.Do(ctx, s.policy, s.logger.With("stage", "proposal_image"), func() error {
		name, genErr := s.imageGenerator.GenerateImage(ctx, req.Type, req.Themes)
		if genErr != nil {
			return genErr
		}
		filename = name
		return nil
	})
	return filename, err
}

// failureFor maps an error from either stage to an error outcome.
// Generation errors carry their message; anything else collapses to the
// fixed generic message so internal detail never reaches the caller.
func (s *ProposalService) failureFor(ctx context.Context, stage string, err error) Outcome {
	if generation.IsGenerationError(err) {
		s.logger.ErrorContext(ctx, stage, "error", err)
		return Failure(fmt.Sprintf("%s: %s", stage, err.Error()))
	}

	s.logger.ErrorContext(ctx, "unexpected error during proposal generation",
		"stage", stage,
		"error", err)
	return Failure(GenericErrorMessage)
}
