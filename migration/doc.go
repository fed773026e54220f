// Package migration moves collections saved while anonymous into the
// signed-in user's remote store.
//
// Each kind is appended remotely and removed locally only after the remote
// store acknowledged it, so a failed kind is retried on a later sign-in.
package migration
