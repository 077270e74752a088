// Package cli provides the line-oriented resume analyzer client.
//
// It hosts a workflow.App behind a small REPL. The prompt names the current
// view and user, and the commands offered follow the view:
//
//	login / register:  login, register, toggle, help, exit
//	dashboard:         upload <path>, drop <pasted>, list, open <n|id:N>,
//	                   refresh, logout, help, exit
//	analysis:          show, export <file.md>, back, logout, help, exit
//
// Notifications produced by the workflow are printed in color after each
// command. The REPL is started via App.Run(ctx), which blocks until the user
// exits or input ends.
package cli
