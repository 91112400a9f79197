// Package main provides the entry point for the linkrank CLI.
//
// Usage:
//
//	linkrank          interactive menu
//	linkrank serve    HTTP API
package main

func main() {
	Execute()
}
