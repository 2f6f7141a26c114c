package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/proposalforge/proposalforge/internal/domain"
	"github.com/proposalforge/proposalforge/internal/generation"
	"github.com/proposalforge/proposalforge/internal/retry"
)

// mockGenerator returns canned results per call, in order. The last entry
// repeats once the script is exhausted.
type mockGenerator struct {
	calls   int
	results []mockResult
}

type mockResult struct {
	text string
	err  error
}

func (m *mockGenerator) GenerateProposal(ctx context.Context, req *domain.ProposalRequest) (string, error) {
	res := m.next()
	return res.text, res.err
}

func (m *mockGenerator) next() mockResult {
	idx := m.calls
	if idx >= len(m.results) {
		idx = len(m.results) - 1
	}
	m.calls++
	return m.results[idx]
}

type mockImageGenerator struct {
	calls   int
	results []mockResult
}

func (m *mockImageGenerator) GenerateImage(ctx context.Context, proposalType domain.ProposalType, themes string) (string, error) {
	idx := m.calls
	if idx >= len(m.results) {
		idx = len(m.results) - 1
	}
	m.calls++
	res := m.results[idx]
	return res.text, res.err
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// fastPolicy keeps retry semantics while avoiding real multi-second waits.
func fastPolicy() retry.Policy {
	return retry.Policy{
		MaxAttempts: 3,
		Floor:       time.Millisecond,
		Cap:         2 * time.Millisecond,
	}
}

func newTestService(t *testing.T, gen *mockGenerator, img *mockImageGenerator) *ProposalService {
	t.Helper()

	svc, err := NewProposalService(gen, img, fastPolicy(), discardLogger())
	require.NoError(t, err)
	return svc
}

func ok(text string) mockResult { return mockResult{text: text} }

func fail(err error) mockResult { return mockResult{err: err} }

func genFail(msg string) mockResult {
	return fail(fmt.Errorf("%w: %s", generation.ErrGenerationFailed, msg))
}

func requireSuccess(t *testing.T, o Outcome) {
	t.Helper()
	require.False(t, o.Failed(), "unexpected failure: %s", o.ErrorMessage)
	assert.NotEmpty(t, o.Proposal)
	assert.NotEmpty(t, o.ImageFilename)
	assert.Empty(t, o.ErrorMessage)
}

func requireFailure(t *testing.T, o Outcome) {
	t.Helper()
	require.True(t, o.Failed())
	assert.NotEmpty(t, o.ErrorMessage)
	assert.Empty(t, o.Proposal)
	assert.Empty(t, o.ImageFilename)
}

func TestNewProposalService(t *testing.T) {
	t.Parallel()

	gen := &mockGenerator{results: []mockResult{ok("text")}}
	img := &mockImageGenerator{results: []mockResult{ok("img.png")}}

	_, err := NewProposalService(nil, img, fastPolicy(), discardLogger())
	assert.Error(t, err)

	_, err = NewProposalService(gen, nil, fastPolicy(), discardLogger())
	assert.Error(t, err)

	_, err = NewProposalService(gen, img, fastPolicy(), nil)
	assert.Error(t, err)
}

func TestGenerateSuccess(t *testing.T) {
	t.Parallel()

	gen := &mockGenerator{results: []mockResult{ok("Dearest Alex, under the stars...")}}
	img := &mockImageGenerator{results: []mockResult{ok("abc123.png")}}
	svc := newTestService(t, gen, img)

	outcome := svc.Generate(context.Background(), "marriage", "Alex", "stars, ocean", "met in 2019")

	requireSuccess(t, outcome)
	assert.Equal(t, "Dearest Alex, under the stars...", outcome.Proposal)
	assert.Equal(t, "abc123.png", outcome.ImageFilename)
	assert.Equal(t, 1, gen.calls)
	assert.Equal(t, 1, img.calls)
}

func TestGenerateInvalidTypeRejectedBeforeAnyCall(t *testing.T) {
	t.Parallel()

	gen := &mockGenerator{results: []mockResult{ok("text")}}
	img := &mockImageGenerator{results: []mockResult{ok("img.png")}}
	svc := newTestService(t, gen, img)

	outcome := svc.Generate(context.Background(), "romance", "Alex", "stars", "")

	requireFailure(t, outcome)
	assert.Contains(t, outcome.ErrorMessage, "invalid proposal type")
	assert.Zero(t, gen.calls, "text backend must not be invoked for invalid input")
	assert.Zero(t, img.calls, "image backend must not be invoked for invalid input")
}

func TestGenerateTextFailureSkipsImageStage(t *testing.T) {
	t.Parallel()

	gen := &mockGenerator{results: []mockResult{genFail("upstream unavailable")}}
	img := &mockImageGenerator{results: []mockResult{ok("img.png")}}
	svc := newTestService(t, gen, img)

	outcome := svc.Generate(context.Background(), "friendship", "Sam", "mountains", "")

	requireFailure(t, outcome)
	assert.Equal(t, 3, gen.calls, "text stage retried to exhaustion")
	assert.Zero(t, img.calls, "image backend must never run after text failure")
}

func TestGenerateTextSucceedsOnLaterAttempt(t *testing.T) {
	t.Parallel()

	gen := &mockGenerator{results: []mockResult{
		genFail("blip"),
		ok("Dearest Sam..."),
	}}
	img := &mockImageGenerator{results: []mockResult{ok("img.png")}}
	svc := newTestService(t, gen, img)

	outcome := svc.Generate(context.Background(), "friendship", "Sam", "mountains", "")

	requireSuccess(t, outcome)
	assert.Equal(t, 2, gen.calls)
}

func TestGenerateImageRetryTransparency(t *testing.T) {
	t.Parallel()

	gen := &mockGenerator{results: []mockResult{ok("A proposal for growth.")}}
	img := &mockImageGenerator{results: []mockResult{
		genFail("model is loading"),
		ok("def456.png"),
	}}
	svc := newTestService(t, gen, img)

	outcome := svc.Generate(context.Background(), "business", "Acme Corp", "growth", "Q3 partnership")

	requireSuccess(t, outcome)
	assert.Equal(t, "def456.png", outcome.ImageFilename)
	assert.Equal(t, 2, img.calls, "one simulated failure then success")
}

func TestGenerateImageFailureIsFullFailure(t *testing.T) {
	t.Parallel()

	gen := &mockGenerator{results: []mockResult{ok("A proposal for growth.")}}
	img := &mockImageGenerator{results: []mockResult{genFail("model is loading")}}
	svc := newTestService(t, gen, img)

	outcome := svc.Generate(context.Background(), "business", "Acme Corp", "growth", "")

	// Text succeeded, but the outcome reports a full failure with no
	// partial content attached.
	requireFailure(t, outcome)
	assert.Equal(t, 1, gen.calls)
	assert.Equal(t, 3, img.calls)
}

func TestGenerateUnexpectedErrorUsesGenericMessage(t *testing.T) {
	t.Parallel()

	gen := &mockGenerator{results: []mockResult{fail(errors.New("nil pointer dereference in provider SDK"))}}
	img := &mockImageGenerator{results: []mockResult{ok("img.png")}}
	svc := newTestService(t, gen, img)

	outcome := svc.Generate(context.Background(), "other", "Taylor", "gratitude", "")

	requireFailure(t, outcome)
	assert.Equal(t, GenericErrorMessage, outcome.ErrorMessage)
	assert.NotContains(t, outcome.ErrorMessage, "nil pointer")
}

func TestGeneratePermanentErrorNotRetried(t *testing.T) {
	t.Parallel()

	blocked := fmt.Errorf("%w: finish reason safety", generation.ErrContentBlocked)
	gen := &mockGenerator{results: []mockResult{fail(blocked)}}
	img := &mockImageGenerator{results: []mockResult{ok("img.png")}}
	svc := newTestService(t, gen, img)

	outcome := svc.Generate(context.Background(), "marriage", "Alex", "stars", "")

	requireFailure(t, outcome)
	assert.Equal(t, 1, gen.calls, "safety blocks must not be retried")
	assert.Zero(t, img.calls)
}
