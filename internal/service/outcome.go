package service

// Outcome is the tagged result of a proposal generation run. Exactly one
// variant is populated: either Proposal and ImageFilename together, or
// ErrorMessage. A failed run never carries partial content.
type Outcome struct {
	Proposal      string
	ImageFilename string
	ErrorMessage  string
}

// Success builds a success outcome carrying the proposal text and the
// generated image filename.
func Success(proposal, imageFilename string) Outcome {
	return Outcome{Proposal: proposal, ImageFilename: imageFilename}
}

// Failure builds an error outcome carrying a user-facing message.
func Failure(message string) Outcome {
	return Outcome{ErrorMessage: message}
}

// Failed reports whether the outcome is the error variant.
func (o Outcome) Failed() bool {
	return o.ErrorMessage != ""
}
