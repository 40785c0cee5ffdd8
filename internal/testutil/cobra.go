package testutil

import (
	"bytes"
	"io"
	"os"
	"strings"
	"testing"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

// Execute runs c with args and returns everything written to stdout, the JSON
// log lines included. Flags of the whole command tree are reset first, so
// values set by an earlier run do not leak into this one.
func Execute(t *testing.T, c *cobra.Command, args ...string) (string, error) {
	t.Helper()
	return ExecuteWithInput(t, c, "", args...)
}

// ExecuteWithInput is Execute with stdin replaced by input.
func ExecuteWithInput(t *testing.T, c *cobra.Command, input string, args ...string) (string, error) {
	t.Helper()

	// Capture the output of the command to a string
	// https://stackoverflow.com/questions/10473800/in-go-how-do-i-capture-stdout-of-a-function-into-a-string#comment46866149_10476304
	old := os.Stdout
	r, w, err := os.Pipe()
	if err != nil {
		t.Fatal(err)
	}
	os.Stdout = w

	outC := make(chan string)
	go func() {
		var buf bytes.Buffer
		_, _ = io.Copy(&buf, r)
		outC <- buf.String()
	}()

	ResetFlags(c)
	c.SetIn(strings.NewReader(input))
	c.SetOut(nil)
	c.SetErr(io.Discard)
	c.SetArgs(args)
	err = c.Execute()

	w.Close()
	os.Stdout = old
	out := <-outC

	return strings.TrimSpace(out), err
}

// ResetFlags restores every flag of c and its subcommands to its default.
func ResetFlags(c *cobra.Command) {
	for _, fs := range []*pflag.FlagSet{c.Flags(), c.PersistentFlags()} {
		fs.VisitAll(func(f *pflag.Flag) {
			_ = f.Value.Set(f.DefValue)
			f.Changed = false
		})
	}
	for _, sub := range c.Commands() {
		ResetFlags(sub)
	}
}
