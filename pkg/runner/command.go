package runner

import (
	"fmt"
	"strconv"
	"strings"
)

// CommandKind enumerates the runner commands.
type CommandKind int

const (
	CommandNone CommandKind = iota
	CommandChoose
	CommandNext
	CommandBack
	CommandHistoryBack
	CommandHistoryForward
	CommandQuit
	CommandHelp
)

// Command is one parsed input line.
type Command struct {
	Kind CommandKind
	// Option is the zero-based option index for CommandChoose.
	Option int
}

// ParseCommand maps an input line to a Command. Blank lines yield CommandNone.
// Option numbers are one-based on input.
func ParseCommand(line string) (Command, error) {
	s := strings.ToLower(strings.TrimSpace(line))
	switch s {
	case "":
		return Command{Kind: CommandNone}, nil
	case "n", "next":
		return Command{Kind: CommandNext}, nil
	case "b", "back":
		return Command{Kind: CommandBack}, nil
	case "<":
		return Command{Kind: CommandHistoryBack}, nil
	case ">":
		return Command{Kind: CommandHistoryForward}, nil
	case "q", "quit", "exit":
		return Command{Kind: CommandQuit}, nil
	case "?", "h", "help":
		return Command{Kind: CommandHelp}, nil
	}

	n, err := strconv.Atoi(s)
	if err != nil || n < 1 {
		return Command{}, fmt.Errorf("unknown command %q", line)
	}
	return Command{Kind: CommandChoose, Option: n - 1}, nil
}

const helpText = `Commands:
  <n>      choose option n
  n, next  next step
  b, back  previous step
  <, >     history back / forward
  q, quit  leave the wizard`
