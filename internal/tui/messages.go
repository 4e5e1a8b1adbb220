package tui

import (
	"github.com/andy/gstbill/internal/ai"
	"github.com/andy/gstbill/internal/domain"
)

// SwitchScreenMsg requests a screen change
type SwitchScreenMsg struct {
	Screen Screen
}

// RefreshDataMsg requests data refresh
type RefreshDataMsg struct{}

// ErrorMsg carries error information for the banner
type ErrorMsg struct {
	Err error
}

// dataLoadedMsg reports a completed full reload from the store
type dataLoadedMsg struct{}

// signedInMsg reports a successful login or signup
type signedInMsg struct {
	confirmationPending bool
}

// signedOutMsg reports a completed logout
type signedOutMsg struct{}

// EditInvoiceMsg opens an invoice in the editor
type EditInvoiceMsg struct {
	Invoice *domain.Invoice
}

// NewInvoiceMsg opens the editor on a fresh draft
type NewInvoiceMsg struct {
	Prefill *domain.Client // optional buyer to pre-select
}

// invoiceSavedMsg reports a completed save round-trip
type invoiceSavedMsg struct {
	invoice *domain.Invoice
}

// invoiceMutatedMsg reports a completed delete or status change
type invoiceMutatedMsg struct{}

// clientSavedMsg reports a saved client form
type clientSavedMsg struct{}

// clientDeletedMsg reports a removed client
type clientDeletedMsg struct{}

// extractDoneMsg carries the AI quick-fill result
type extractDoneMsg struct {
	result *ai.Extraction
	err    error
}

// exportDoneMsg reports a finished export
type exportDoneMsg struct {
	path string
	err  error
}
