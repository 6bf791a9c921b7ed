// Package main provides the clevis interactive shape editor.
package main

import "github.com/mesh-intelligence/clevis/internal/cli"

func main() {
	cli.Execute()
}
