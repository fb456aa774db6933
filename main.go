// Package main is the entry point for the shotmap CLI tool, which ingests
// hockey shot-event data and renders filtered hexbin shot charts.
package main

import "github.com/pable/go-shotmap/cmd"

func main() {
	cmd.Execute()
}
