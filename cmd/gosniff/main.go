// Copyright IBM Corp. 2023, 2025

package main

import "github.com/hashicorp/go-sniff/cmd"

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

// main start go-sniff cli `gosniff`
func main() {
	cmd.Run(version, commit, date)
}
