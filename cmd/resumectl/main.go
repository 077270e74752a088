// Package main provides the entry point for the resume analyzer client.
//
// Usage:
//
//	resumectl                 interactive prompt
//	resumectl tui             full-screen client
//	resumectl show <id>       print one stored analysis
//	resumectl version
//
// See --help for all available options.
package main

func main() {
	Execute()
}
