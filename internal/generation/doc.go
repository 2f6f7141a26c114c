// Package generation provides interfaces and shared prompt construction for
// interacting with external AI services. It abstracts the details of the
// chat-completion and text-to-image integrations, allowing the application
// to generate proposal text and imagery without coupling to a specific
// external provider.
package generation
