package utils

import "github.com/spf13/cobra"

// PropagatePersistentPreRun runs the parent's PersistentPreRun, which cobra skips once a child defines its own.
func PropagatePersistentPreRun(cmd *cobra.Command, args []string) {
	if parent := cmd.Parent(); parent != nil && parent.PersistentPreRun != nil {
		parent.PersistentPreRun(parent, args)
	}
}
