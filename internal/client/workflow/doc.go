// Package workflow is the client-side session and workflow orchestrator.
//
// An App owns the whole client state: the session, the active view, the
// cached analysis history, the selected analysis and the two transient
// notifications. Front ends never mutate that state directly; they call
// App operations (Initialize, Authenticate, Logout, Refresh, Upload,
// Select, Back, ToggleAuthMode, Dismiss) and observe the result through
// Snapshot or Subscribe.
//
// Operations are synchronous and safe for concurrent use. Every network
// call runs outside the App lock; when its result comes back after the
// session changed (a logout, or another login) the result is dropped.
package workflow
