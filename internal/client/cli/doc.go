// Package cli provides the interactive melodeck command-line client.
//
// NewApp wires configuration, the local session database, the API client
// with its failure interceptor, and the auth service. App.Run then shows the
// home view and serves commands until the user exits:
//
//   - login / register / logout
//   - plans: list subscription plans
//   - whoami: show the current user and its token claims
//
// The App is also the navigator of the client core. Navigating to the root
// route renders the home view ("Logged in as ..." or "Not logged in"), and
// the view re-renders whenever the session changes while it is shown.
// A background watcher pings the backend and shows online/offline state in
// the prompt.
package cli
