// Command papercheck compares an original paper with a suspected copy and
// writes the similarity score to an output file.
//
//	papercheck orig.txt orig_0.8_add.txt result.txt
package main

import (
	"fmt"
	"os"
)

func main() {
	cmd := newRootCommand()
	if err := cmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
