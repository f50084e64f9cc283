package app

import (
	"strings"

	"github.com/phillarmonic/exprdoc/internal/document"
	"github.com/spf13/cobra"
)

// Domain: Shell Completion
// This file contains logic for shell completion

// CompleteFormats provides autocompletion for the --format flag
func CompleteFormats(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
	var completions []string
	for _, name := range document.Formats() {
		if strings.HasPrefix(name, toComplete) {
			completions = append(completions, name+"\t[format] "+strings.ToUpper(name)+" document")
		}
	}
	return completions, cobra.ShellCompDirectiveNoFileComp
}

// CompleteInputFiles offers document files as the positional argument
func CompleteInputFiles(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
	if len(args) != 0 {
		return nil, cobra.ShellCompDirectiveNoFileComp
	}
	return []string{"json", "yaml", "yml"}, cobra.ShellCompDirectiveFilterFileExt
}
