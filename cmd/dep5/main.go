package main

import (
	"fmt"
	"os"

	"github.com/teranos/dep5/cmd/dep5/commands"
	"github.com/teranos/dep5/errors"
	"github.com/teranos/dep5/logger"
)

func main() {
	rootCmd := commands.NewRootCmd()
	err := rootCmd.Execute()
	logger.Cleanup()
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		for _, hint := range errors.GetAllHints(err) {
			fmt.Fprintln(os.Stderr, "Hint:", hint)
		}
		os.Exit(1)
	}
}
