package commands

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"sort"
	"strings"
	"unicode"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"go.uber.org/zap"
)

var errUnclosedQuote = errors.New("unclosed quote")

// InteractiveCmd creates the interactive command
func InteractiveCmd(app *AppContext) *cobra.Command {
	return &cobra.Command{
		Use:   "interactive",
		Short: "Start an interactive session (connect once, run multiple commands)",
		Long: `Start an interactive session that reuses the database connection and Google authentication.
Type 'help' to see available commands and 'exit' or 'quit' to leave.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			commands := siblingCommands(cmd)

			fmt.Println("\n🚀 Starting interactive session...")
			fmt.Println("Type 'help' for available commands, 'exit' or 'quit' to leave")

			scanner := bufio.NewScanner(os.Stdin)
			for {
				fmt.Print("> ")
				if !scanner.Scan() {
					break
				}

				parts, err := splitCommandLine(scanner.Text())
				if err != nil {
					fmt.Printf("❌ Error parsing command: %v\n\n", err)
					continue
				}
				if len(parts) == 0 {
					continue
				}

				switch parts[0] {
				case "exit", "quit":
					fmt.Println("👋 Goodbye!")
					return nil
				case "help":
					printInteractiveHelp(commands)
					continue
				}

				target, ok := commands[parts[0]]
				if !ok {
					fmt.Printf("❌ Unknown command: %s (type 'help' for available commands)\n\n", parts[0])
					continue
				}

				app.Logger.Debug("Interactive command", zap.Strings("args", parts))
				if err := runInteractive(target, parts[1:]); err != nil {
					fmt.Printf("❌ Error: %v\n\n", err)
				}
			}

			if err := scanner.Err(); err != nil {
				return fmt.Errorf("error reading input: %w", err)
			}
			return nil
		},
	}
}

// siblingCommands maps the names of the root's other runnable commands to the commands
func siblingCommands(cmd *cobra.Command) map[string]*cobra.Command {
	commands := make(map[string]*cobra.Command)
	for _, sub := range cmd.Parent().Commands() {
		switch sub.Name() {
		case cmd.Name(), "completion", "help", "serve":
			continue
		}
		commands[sub.Name()] = sub
	}
	return commands
}

// runInteractive calls the command's RunE without going through Execute,
// so the root's PersistentPreRunE does not reconnect
func runInteractive(target *cobra.Command, args []string) error {
	target.Flags().VisitAll(func(flag *pflag.Flag) {
		flag.Changed = false
		_ = flag.Value.Set(flag.DefValue)
	})

	if err := target.ParseFlags(args); err != nil {
		return fmt.Errorf("invalid flags: %w", err)
	}
	args = target.Flags().Args()

	if target.Args != nil {
		if err := target.Args(target, args); err != nil {
			return err
		}
	}
	if target.RunE == nil {
		return nil
	}
	return target.RunE(target, args)
}

func printInteractiveHelp(commands map[string]*cobra.Command) {
	names := make([]string, 0, len(commands))
	for name := range commands {
		names = append(names, name)
	}
	sort.Strings(names)

	fmt.Println("\nAvailable commands:")
	for _, name := range names {
		fmt.Printf("  %-50s %s\n", commands[name].Use, commands[name].Short)
	}
	fmt.Printf("\n  %-50s %s\n", "help", "Show this help message")
	fmt.Printf("  %-50s %s\n\n", "exit, quit", "Exit the interactive session")
}

// splitCommandLine splits a line on whitespace. Single or double quotes group
// words into one argument and a backslash escapes the next character.
func splitCommandLine(line string) ([]string, error) {
	var (
		args    []string
		current strings.Builder
		quote   rune
		escaped bool
		inArg   bool
	)

	for _, r := range line {
		switch {
		case escaped:
			current.WriteRune(r)
			escaped = false
		case r == '\\':
			escaped = true
			inArg = true
		case quote != 0:
			if r == quote {
				quote = 0
			} else {
				current.WriteRune(r)
			}
		case r == '"' || r == '\'':
			quote = r
			inArg = true
		case unicode.IsSpace(r):
			if inArg {
				args = append(args, current.String())
				current.Reset()
				inArg = false
			}
		default:
			current.WriteRune(r)
			inArg = true
		}
	}

	if quote != 0 {
		return nil, fmt.Errorf("%w: %c", errUnclosedQuote, quote)
	}
	if inArg {
		args = append(args, current.String())
	}
	return args, nil
}
