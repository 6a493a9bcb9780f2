package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"
)

type fakeExec struct {
	calls    []string
	addArgs  []string
	showArgs []string
	failOn   string
}

func (f *fakeExec) record(name string) error {
	f.calls = append(f.calls, name)
	if name == f.failOn {
		return errors.New("boom")
	}
	return nil
}

func (f *fakeExec) Add(ctx context.Context, args []string) error {
	f.addArgs = args
	return f.record("add")
}
func (f *fakeExec) Show(ctx context.Context, args []string) error {
	f.showArgs = args
	return f.record("show")
}
func (f *fakeExec) Pending(ctx context.Context) error { return f.record("pending") }
func (f *fakeExec) History(ctx context.Context) error { return f.record("history") }
func (f *fakeExec) Status(ctx context.Context) error  { return f.record("status") }
func (f *fakeExec) Sync(ctx context.Context) error    { return f.record("sync") }
func (f *fakeExec) Offline(ctx context.Context) error { return f.record("offline") }
func (f *fakeExec) Online(ctx context.Context) error  { return f.record("online") }

func stubPrint(t *testing.T) *[]string {
	t.Helper()
	var lines []string
	origPrint := printlnFn
	printlnFn = func(a ...any) (int, error) {
		lines = append(lines, strings.TrimSpace(fmt.Sprintln(a...)))
		return 0, nil
	}
	t.Cleanup(func() { printlnFn = origPrint })
	return &lines
}

func TestRunREPL_DispatchesCommands(t *testing.T) {
	stubPrint(t)

	input := strings.Join([]string{
		"help",
		"add milk acme 1.99 2",
		"",
		"pending",
		"history",
		"show abc-123",
		"status",
		"sync",
		"offline",
		"online",
		"foobar",
		"exit",
		"status",
	}, "\n")

	exec := &fakeExec{}
	runREPL(context.Background(), exec, func() string { return "status" }, bufio.NewReader(strings.NewReader(input)), false)

	want := []string{"add", "pending", "history", "show", "status", "sync", "offline", "online"}
	if strings.Join(exec.calls, ",") != strings.Join(want, ",") {
		t.Fatalf("calls = %v, want %v", exec.calls, want)
	}
	if strings.Join(exec.addArgs, " ") != "milk acme 1.99 2" {
		t.Fatalf("add args = %v", exec.addArgs)
	}
	if strings.Join(exec.showArgs, " ") != "abc-123" {
		t.Fatalf("show args = %v", exec.showArgs)
	}
}

func TestRunREPL_ShortAliasesAndLastLineWithoutNewline(t *testing.T) {
	stubPrint(t)

	exec := &fakeExec{}
	runREPL(context.Background(), exec, func() string { return "" }, bufio.NewReader(strings.NewReader("a\np\ns")), false)

	want := []string{"add", "pending", "status"}
	if strings.Join(exec.calls, ",") != strings.Join(want, ",") {
		t.Fatalf("calls = %v, want %v", exec.calls, want)
	}
}

func TestRunREPL_PrintsErrorsAndPrompt(t *testing.T) {
	lines := stubPrint(t)

	exec := &fakeExec{failOn: "sync"}
	runREPL(context.Background(), exec, func() string { return "(u1 online)" }, bufio.NewReader(strings.NewReader("sync\nquit\n")), true)

	got := strings.Join(*lines, "|")
	for _, want := range []string{"pk (u1 online)>", "error: boom", "Bye!"} {
		if !strings.Contains(got, want) {
			t.Fatalf("output %q does not contain %q", got, want)
		}
	}
}

func TestRunREPL_StopsOnCancelledContext(t *testing.T) {
	stubPrint(t)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	exec := &fakeExec{}
	runREPL(ctx, exec, func() string { return "" }, bufio.NewReader(strings.NewReader("status\n")), false)

	if len(exec.calls) != 0 {
		t.Fatalf("unexpected calls: %v", exec.calls)
	}
}
