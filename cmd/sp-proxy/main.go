// Package main is the entry point for the sp-proxy service.
package main

import (
	"os"

	"github.com/mfigueredo/amazon-sp-proxy/cmd/sp-proxy/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
