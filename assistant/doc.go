// Package assistant selects the active AI provider for the current user and
// applies the fallback policy around it.
//
// NewProvider is the factory: it maps a provider id and credential to an
// ai.Provider and never fails. Manager holds exactly one active provider,
// swaps it atomically when user settings change, and exposes the
// ...WithFallback operations. On failure they hand back the caller's original
// input (or no tasks) and report the failure to registered observers, so the
// editing flow is never interrupted by an AI outage.
package assistant
