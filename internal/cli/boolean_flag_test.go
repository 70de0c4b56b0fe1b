package cli

import (
	"io"
	"reflect"
	"testing"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

func TestRegisterBooleanFlagParsesLiterals(t *testing.T) {
	testCases := []struct {
		name        string
		arguments   []string
		expected    bool
		expectError bool
	}{
		{name: "defaults_to_false", arguments: []string{}, expected: false},
		{name: "bare_flag_sets_true", arguments: []string{"--copy"}, expected: true},
		{name: "equals_false", arguments: []string{"--copy=false"}, expected: false},
		{name: "equals_yes", arguments: []string{"--copy=yes"}, expected: true},
		{name: "rejects_invalid_text", arguments: []string{"--copy=maybe"}, expectError: true},
	}

	for _, testCase := range testCases {
		testCase := testCase
		t.Run(testCase.name, func(t *testing.T) {
			t.Parallel()
			var flagValue bool
			flagSet := pflag.NewFlagSet("copy-flag", pflag.ContinueOnError)
			flagSet.SetOutput(io.Discard)
			registerBooleanFlag(flagSet, &flagValue, "copy", false, "copy output")
			parseErr := flagSet.Parse(testCase.arguments)
			if testCase.expectError {
				if parseErr == nil {
					t.Fatalf("expected parse error")
				}
				return
			}
			if parseErr != nil {
				t.Fatalf("unexpected parse error: %v", parseErr)
			}
			if flagValue != testCase.expected {
				t.Fatalf("expected %v, got %v", testCase.expected, flagValue)
			}
		})
	}
}

func TestNormalizeBooleanFlagArguments(t *testing.T) {
	var copyEnabled bool
	command := &cobra.Command{Use: "root"}
	child := &cobra.Command{Use: "tree"}
	registerBooleanFlag(child.Flags(), &copyEnabled, "copy", false, "copy output")
	command.AddCommand(child)

	testCases := []struct {
		name      string
		arguments []string
		expected  []string
	}{
		{name: "literal_value_joined", arguments: []string{"tree", "--copy", "no", "dir"}, expected: []string{"tree", "--copy=no", "dir"}},
		{name: "path_left_alone", arguments: []string{"tree", "--copy", "dir"}, expected: []string{"tree", "--copy", "dir"}},
		{name: "after_terminator", arguments: []string{"tree", "--", "--copy", "no"}, expected: []string{"tree", "--", "--copy", "no"}},
	}
	for _, testCase := range testCases {
		t.Run(testCase.name, func(t *testing.T) {
			normalized := normalizeBooleanFlagArguments(command, testCase.arguments)
			if !reflect.DeepEqual(normalized, testCase.expected) {
				t.Fatalf("expected %v, got %v", testCase.expected, normalized)
			}
		})
	}
}
