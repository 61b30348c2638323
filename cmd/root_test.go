package cmd

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	cmdUtils "github.com/stellar/otp-prober/cmd/utils"
)

func Test_noArgsAndHelpHaveSameResultAndDoDontPanic(t *testing.T) {
	cmdUtils.ClearTestEnvironment(t)

	cmdArgsTestCases := [][]string{
		{"--help"},
		{},
	}

	for i, cmdArgs := range cmdArgsTestCases {
		rootCmd := SetupCLI("x.y.z", "1234567890abcdef")
		rootCmd.SetArgs(cmdArgs)
		var out bytes.Buffer
		rootCmd.SetOut(&out)

		err := rootCmd.Execute()
		assert.NoErrorf(t, err, "test case %d returned an error", i)

		assert.Containsf(t, out.String(), "Use \"otp-prober [command] --help\" for more information about a command.", "test case %d did not print help message as expected", i)
	}
}

func Test_SetupCLI_subcommands(t *testing.T) {
	rootCmd := SetupCLI("x.y.z", "1234567890abcdef")

	var uses []string
	for _, cmd := range rootCmd.Commands() {
		uses = append(uses, cmd.Use)
	}
	assert.Contains(t, uses, "probe")
	assert.Contains(t, uses, "stub-server")
}

func Test_SetupCLI_version(t *testing.T) {
	rootCmd := SetupCLI("x.y.z", "1234567890abcdef")
	rootCmd.SetArgs([]string{"--version"})
	var out bytes.Buffer
	rootCmd.SetOut(&out)

	require.NoError(t, rootCmd.Execute())
	assert.Contains(t, out.String(), "x.y.z")
}
