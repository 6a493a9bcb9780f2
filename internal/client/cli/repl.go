package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
)

// printlnFn is a test seam for user-facing output. In tests, replace it with a stub.
var printlnFn = fmt.Println

// execIface defines the minimal command surface the REPL needs to operate.
// The real App type satisfies this interface; tests can provide a lightweight stub.
type execIface interface {
	Add(ctx context.Context, args []string) error
	Pending(ctx context.Context) error
	History(ctx context.Context) error
	Show(ctx context.Context, args []string) error
	Status(ctx context.Context) error
	Sync(ctx context.Context) error
	Offline(ctx context.Context) error
	Online(ctx context.Context) error
}

// runREPL reads commands line by line from reader and dispatches them to a.
// The loop exits on EOF, on "exit"/"quit", or when ctx is done. The prompt
// is printed only when prompt is true, so piped input stays quiet.
//
// Errors returned by command handlers are printed and the loop continues.
func runREPL(ctx context.Context, a execIface, statusFn func() string, reader *bufio.Reader, prompt bool) {
	for {
		if ctx.Err() != nil {
			return
		}
		if prompt {
			printlnFn(fmt.Sprintf("pk %s> ", statusFn()))
		}

		line, err := reader.ReadString('\n')
		if err != nil && !(errors.Is(err, io.EOF) && line != "") {
			return
		}

		parts := strings.Fields(line)
		if len(parts) == 0 {
			continue
		}
		cmd, args := parts[0], parts[1:]

		var cmdErr error
		switch cmd {
		case "help":
			printlnFn("Available commands: add, pending, history, show, status, sync, offline, online, exit")

		case "a", "add":
			cmdErr = a.Add(ctx, args)

		case "p", "pending":
			cmdErr = a.Pending(ctx)

		case "history":
			cmdErr = a.History(ctx)

		case "show":
			cmdErr = a.Show(ctx, args)

		case "s", "status":
			cmdErr = a.Status(ctx)

		case "sync":
			cmdErr = a.Sync(ctx)

		case "offline":
			cmdErr = a.Offline(ctx)

		case "online":
			cmdErr = a.Online(ctx)

		case "exit", "quit":
			printlnFn("Bye!")
			return

		default:
			printlnFn("Unknown command:", cmd)
		}

		if cmdErr != nil {
			printlnFn("error:", cmdErr)
		}
	}
}
