// Package hybrid provides a collection store that follows the session.
//
// While nobody is signed in a Store reads and writes the local store under
// the collection's kind. Once a user is signed in the same calls go to that
// user's remote collection, hydrated once per session and replaced in full
// on every write.
package hybrid
