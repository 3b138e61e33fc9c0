// Package main provides the entry point for the dockerup CLI.
package main

import "os"

func main() {
	os.Exit(execute(defaultCLI(), os.Args[1:]))
}
