package commands

import (
	"errors"
	"testing"
	"time"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSplitCommandLine(t *testing.T) {
	tests := []struct {
		name string
		line string
		want []string
	}{
		{"empty", "   ", nil},
		{"plain words", "setKitLocation alpha 2 store-1", []string{"setKitLocation", "alpha", "2", "store-1"}},
		{"double quotes", `setKitCondition alpha 1 poor --notes "torn map"`, []string{"setKitCondition", "alpha", "1", "poor", "--notes", "torn map"}},
		{"single quotes", `listKits 'a b'`, []string{"listKits", "a b"}},
		{"empty quoted argument", `cmd ""`, []string{"cmd", ""}},
		{"escaped space", `cmd a\ b`, []string{"cmd", "a b"}},
		{"quote inside word", `cmd don"'"t`, []string{"cmd", "don't"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := splitCommandLine(tt.line)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestSplitCommandLine_UnclosedQuote(t *testing.T) {
	_, err := splitCommandLine(`cmd "open`)
	assert.True(t, errors.Is(err, errUnclosedQuote))
}

func TestWeekStartArg(t *testing.T) {
	thursday := time.Date(2025, 11, 13, 15, 30, 0, 0, time.UTC)

	assert.Equal(t, "2025-11-03", weekStartArg([]string{"2025-11-03"}, time.Monday, thursday))
	assert.Equal(t, "2025-11-10", weekStartArg(nil, time.Monday, thursday))
	assert.Equal(t, "2025-11-09", weekStartArg(nil, time.Sunday, thursday))
	assert.Equal(t, "2025-11-13", weekStartArg(nil, time.Thursday, thursday))
}

func TestRunInteractive_ResetsFlags(t *testing.T) {
	var gotNotes string
	var gotArgs []string

	cmd := &cobra.Command{
		Use:  "setKitCondition",
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			gotNotes, _ = cmd.Flags().GetString("notes")
			gotArgs = args
			return nil
		},
	}
	cmd.Flags().String("notes", "", "")

	require.NoError(t, runInteractive(cmd, []string{"good", "--notes", "fine"}))
	assert.Equal(t, "fine", gotNotes)
	assert.Equal(t, []string{"good"}, gotArgs)

	require.NoError(t, runInteractive(cmd, []string{"poor"}))
	assert.Empty(t, gotNotes)

	assert.Error(t, runInteractive(cmd, nil))
}

func TestSiblingCommands(t *testing.T) {
	root := &cobra.Command{Use: "kitplanner"}
	interactive := InteractiveCmd(&AppContext{})
	root.AddCommand(
		&cobra.Command{Use: "listKits", RunE: func(*cobra.Command, []string) error { return nil }},
		&cobra.Command{Use: "serve", RunE: func(*cobra.Command, []string) error { return nil }},
		interactive,
	)

	commands := siblingCommands(interactive)

	assert.Contains(t, commands, "listKits")
	assert.NotContains(t, commands, "serve")
	assert.NotContains(t, commands, "interactive")
}
