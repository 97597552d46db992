// Package main is the entry point for the dupscan CLI.
package main

import "dupscan.dev/pkg/dupscan/cmd"

func main() {
	cmd.Execute()
}
