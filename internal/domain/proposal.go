package domain

import (
	"errors"
	"fmt"
	"strings"
)

// ProposalType identifies the kind of proposal being generated.
type ProposalType string

// Supported proposal types. Incoming values are matched case-insensitively
// and stored in their canonical lower-case form.
const (
	ProposalTypeMarriage   ProposalType = "marriage"
	ProposalTypeFriendship ProposalType = "friendship"
	ProposalTypeBusiness   ProposalType = "business"
	ProposalTypeOther      ProposalType = "other"
)

// Common validation errors for ProposalRequest
var (
	ErrEmptyProposalType   = errors.New("proposal type cannot be empty")
	ErrInvalidProposalType = errors.New("invalid proposal type")
	ErrEmptyRecipientName  = errors.New("recipient name cannot be empty")
	ErrEmptyThemes         = errors.New("themes cannot be empty")
)

// ParseProposalType normalizes and validates a raw proposal type value.
// Surrounding whitespace is trimmed and the comparison is case-insensitive.
func ParseProposalType(raw string) (ProposalType, error) {
	normalized := strings.ToLower(strings.TrimSpace(raw))
	if normalized == "" {
		return "", ErrEmptyProposalType
	}

	switch t := ProposalType(normalized); t {
	case ProposalTypeMarriage, ProposalTypeFriendship, ProposalTypeBusiness, ProposalTypeOther:
		return t, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrInvalidProposalType, raw)
	}
}

// ProposalRequest describes a single proposal to generate. It is built once
// per form submission, is immutable after construction, and is never
// persisted.
type ProposalRequest struct {
	Type              ProposalType
	RecipientName     string
	Themes            string
	AdditionalDetails string
}

// NewProposalRequest creates a validated ProposalRequest from raw form
// fields. All fields are trimmed of surrounding whitespace; the proposal
// type is lower-cased. AdditionalDetails may be empty.
func NewProposalRequest(rawType, recipientName, themes, additionalDetails string) (*ProposalRequest, error) {
	proposalType, err := ParseProposalType(rawType)
	if err != nil {
		return nil, err
	}

	recipientName = strings.TrimSpace(recipientName)
	if recipientName == "" {
		return nil, ErrEmptyRecipientName
	}

	themes = strings.TrimSpace(themes)
	if themes == "" {
		return nil, ErrEmptyThemes
	}

	return &ProposalRequest{
		Type:              proposalType,
		RecipientName:     recipientName,
		Themes:            themes,
		AdditionalDetails: strings.TrimSpace(additionalDetails),
	}, nil
}
