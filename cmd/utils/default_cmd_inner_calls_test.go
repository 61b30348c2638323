package utils

import (
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func Test_PropagatePersistentPreRun(t *testing.T) {
	var calls []string

	parent := &cobra.Command{
		Use: "parent",
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			calls = append(calls, "parent:"+cmd.Use)
		},
	}
	child := &cobra.Command{
		Use: "child",
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			PropagatePersistentPreRun(cmd, args)
			calls = append(calls, "child")
		},
		Run: func(cmd *cobra.Command, args []string) {},
	}
	parent.AddCommand(child)

	parent.SetArgs([]string{"child"})
	require.NoError(t, parent.Execute())

	assert.Equal(t, []string{"parent:parent", "child"}, calls)
}

func Test_PropagatePersistentPreRun_withoutParent(t *testing.T) {
	orphan := &cobra.Command{Use: "orphan"}

	assert.NotPanics(t, func() {
		PropagatePersistentPreRun(orphan, nil)
	})
}
