package cli

import (
	"bufio"
	"context"
	"strings"
	"testing"
)

type fakeCommands struct {
	calls []string
	args  [][]string
}

func (f *fakeCommands) record(name string, args []string) {
	f.calls = append(f.calls, name)
	f.args = append(f.args, args)
}

func (f *fakeCommands) List(ctx context.Context)                          { f.record("list", nil) }
func (f *fakeCommands) Add(ctx context.Context, args []string)            { f.record("add", args) }
func (f *fakeCommands) Check(ctx context.Context, args []string)          { f.record("check", args) }
func (f *fakeCommands) Uncheck(ctx context.Context, args []string)        { f.record("uncheck", args) }
func (f *fakeCommands) Move(ctx context.Context, args []string)           { f.record("move", args) }
func (f *fakeCommands) Remove(ctx context.Context, args []string)         { f.record("rm", args) }
func (f *fakeCommands) Archive(ctx context.Context, args []string)        { f.record("archive", args) }
func (f *fakeCommands) Restore(ctx context.Context, args []string)        { f.record("restore", args) }
func (f *fakeCommands) Suggest(ctx context.Context, args []string)        { f.record("suggest", args) }
func (f *fakeCommands) Categories(ctx context.Context)                    { f.record("cats", nil) }
func (f *fakeCommands) AddCategory(ctx context.Context, args []string)    { f.record("addcat", args) }
func (f *fakeCommands) RemoveCategory(ctx context.Context, args []string) { f.record("rmcat", args) }
func (f *fakeCommands) Refresh(ctx context.Context)                       { f.record("refresh", nil) }

func TestRunREPL_DispatchesCommands(t *testing.T) {
	origPrint := printlnFn
	printlnFn = func(...any) (int, error) { return 0, nil }
	t.Cleanup(func() { printlnFn = origPrint })

	input := strings.NewReader(strings.Join([]string{
		"help",
		"list",
		"add Milk",
		"check 3",
		"move 3 1 2",
		"",
		"foobar",
		"exit",
	}, "\n"))

	exec := &fakeCommands{}
	sc := bufio.NewScanner(input)

	runREPL(context.Background(), exec, sc)

	want := []string{"list", "add", "check", "move"}
	if len(exec.calls) != len(want) {
		t.Fatalf("calls mismatch: got %v, want %v", exec.calls, want)
	}
	for i, c := range exec.calls {
		if c != want[i] {
			t.Fatalf("call %d: got %q, want %q", i, c, want[i])
		}
	}

	if got := strings.Join(exec.args[2], " "); got != "3" {
		t.Fatalf("check args: got %q, want %q", got, "3")
	}
	if got := strings.Join(exec.args[3], " "); got != "3 1 2" {
		t.Fatalf("move args: got %q, want %q", got, "3 1 2")
	}
}

func TestRunREPL_ExitsOnEOF(t *testing.T) {
	origPrint := printlnFn
	printlnFn = func(...any) (int, error) { return 0, nil }
	t.Cleanup(func() { printlnFn = origPrint })

	exec := &fakeCommands{}
	sc := bufio.NewScanner(strings.NewReader("list\n"))

	runREPL(context.Background(), exec, sc)

	if len(exec.calls) != 1 || exec.calls[0] != "list" {
		t.Fatalf("unexpected calls: %v", exec.calls)
	}
}
