// Package events defines the closed set of messages carried by the edit-mode
// broadcast bus. Every signal a section controller can receive is one of the
// types below; there is no stringly-typed dispatch.
package events

import "github.com/dzakyfr/portfolio-go/internal/domain/entities/content"

// Kind identifies a bus message variant.
type Kind string

const (
	KindAuthGranted     Kind = "authGranted"
	KindAuthRevoked     Kind = "authRevoked"
	KindEditModeChanged Kind = "editModeChanged"
	KindSaveRequested   Kind = "saveRequested"
)

// Message is implemented by every bus message variant.
type Message interface {
	Kind() Kind
}

// AuthGranted announces a successful operator login.
type AuthGranted struct {
	Operator content.Operator
}

func (AuthGranted) Kind() Kind { return KindAuthGranted }

// AuthRevoked announces operator logout. Controllers must force edit mode
// off and discard drafts without confirmation.
type AuthRevoked struct{}

func (AuthRevoked) Kind() Kind { return KindAuthRevoked }

// EditModeChanged announces an explicit operator toggle of the global edit
// affordance. It is a hint for already-subscribed listeners only; a
// controller registered after the broadcast never sees it and must default
// to edit mode off.
type EditModeChanged struct {
	Enabled bool
}

func (EditModeChanged) Kind() Kind { return KindEditModeChanged }

// SaveRequested announces the single global Save action. Every controller
// holding unsaved local changes attempts persistence independently.
type SaveRequested struct{}

func (SaveRequested) Kind() Kind { return KindSaveRequested }
