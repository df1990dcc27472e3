// Command docsim compares two documents by word overlap.
package main

import (
	"fmt"
	"os"

	"github.com/fatih/color"
	_ "github.com/joho/godotenv/autoload"
)

func main() {
	if err := NewRootCommand().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, color.RedString("Error: %v", err))
		os.Exit(1)
	}
}
