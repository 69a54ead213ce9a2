package cli

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"
)

// printlnFn is a test seam for user-facing output. In tests, replace it with a stub.
var printlnFn = fmt.Println

// commandIface defines the minimal command surface the REPL needs to operate.
// The real App type satisfies this interface; tests can provide a lightweight stub.
type commandIface interface {
	List(ctx context.Context)
	Add(ctx context.Context, args []string)
	Check(ctx context.Context, args []string)
	Uncheck(ctx context.Context, args []string)
	Move(ctx context.Context, args []string)
	Remove(ctx context.Context, args []string)
	Archive(ctx context.Context, args []string)
	Restore(ctx context.Context, args []string)
	Suggest(ctx context.Context, args []string)
	Categories(ctx context.Context)
	AddCategory(ctx context.Context, args []string)
	RemoveCategory(ctx context.Context, args []string)
	Refresh(ctx context.Context)
}

// runREPL reads a line from the provided scanner, parses the first token as
// the command, and dispatches to methods on 'a'. Unknown commands are
// reported back to the user. The loop exits on scanner EOF or when the user
// types "exit" or "quit".
//
// Any errors returned by command handlers are printed by the handlers
// themselves. This keeps the REPL loop resilient and focused on I/O.
func runREPL(ctx context.Context, a commandIface, scanner *bufio.Scanner) {
	for {
		fmt.Print("gl> ")
		if !scanner.Scan() {
			return
		}
		line := scanner.Text()
		parts := strings.Fields(line)
		if len(parts) == 0 {
			continue
		}
		cmd := parts[0]
		args := parts[1:]

		switch cmd {
		case "help":
			printlnFn("Available commands: (l)ist, add, check <id>, uncheck <id>, move <id> <pos> [category], rm <id>, archive <id>, restore <id>, suggest <prefix>, cats, addcat <name>, rmcat <id>, refresh, exit")

		case "l", "list":
			a.List(ctx)

		case "add":
			a.Add(ctx, args)

		case "check":
			a.Check(ctx, args)

		case "uncheck":
			a.Uncheck(ctx, args)

		case "move":
			a.Move(ctx, args)

		case "rm":
			a.Remove(ctx, args)

		case "archive":
			a.Archive(ctx, args)

		case "restore":
			a.Restore(ctx, args)

		case "suggest":
			a.Suggest(ctx, args)

		case "cats":
			a.Categories(ctx)

		case "addcat":
			a.AddCategory(ctx, args)

		case "rmcat":
			a.RemoveCategory(ctx, args)

		case "refresh":
			a.Refresh(ctx)

		case "exit", "quit":
			printlnFn("Bye!")
			return

		default:
			printlnFn("Unknown command:", cmd)
		}
	}
}

func (a *App) Root(ctx context.Context) {

	printlnFn("Grocery list CLI (type 'help' for commands)")

	a.Refresh(ctx)
	a.List(ctx)

	scanner := bufio.NewScanner(os.Stdin)
	runREPL(ctx, a, scanner)
}
