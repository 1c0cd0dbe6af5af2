// Command cborstream inspects and validates CBOR (RFC 8949) streams from
// files or stdin using the streaming Reader and Checker.
package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/alecthomas/kong"

	"github.com/qindesign-io/streamcbor/stream"
)

// CLI defines the cborstream command-line interface. We deliberately keep
// it minimal: two subcommands, each reading a single CBOR document
// (a file path, or stdin when omitted) and reporting on it.
type CLI struct {
	Inspect  InspectCmd  `cmd:"" help:"Print each top-level item in diagnostic notation."`
	Validate ValidateCmd `cmd:"" help:"Check well-formedness of each top-level item."`
}

// InspectCmd renders every top-level item in the input using RFC 8949 §8
// diagnostic notation, one per line.
type InspectCmd struct {
	Path    string `arg:"" optional:"" help:"Input file (defaults to stdin)."`
	Verbose bool   `short:"v" help:"Enable verbose diagnostics."`
}

// ValidateCmd runs the well-formedness Checker over every top-level item
// in the input and reports the major type or failure of each.
type ValidateCmd struct {
	Path    string `arg:"" optional:"" help:"Input file (defaults to stdin)."`
	Verbose bool   `short:"v" help:"Enable verbose diagnostics."`
}

func main() {
	var cli CLI
	ctx := kong.Parse(&cli,
		kong.Name("cborstream"),
		kong.Description("Inspect and validate streaming CBOR (RFC 8949) documents."),
	)
	err := ctx.Run()
	ctx.FatalIfErrorf(err)
}

func readInput(path string) ([]byte, error) {
	if path == "" {
		return io.ReadAll(os.Stdin)
	}
	return os.ReadFile(path)
}

func newLogger(verbose bool) *slog.Logger {
	level := slog.LevelWarn
	if verbose {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
}

func (c *InspectCmd) Run() error {
	log := newLogger(c.Verbose)
	data, err := readInput(c.Path)
	if err != nil {
		return fmt.Errorf("read input: %w", err)
	}

	in := stream.NewSliceInput(data)
	r := stream.NewReader(in)
	for in.Available() > 0 {
		text, err := stream.Diagnose(r)
		if err != nil {
			log.Warn("item malformed", "err", err)
			return err
		}
		fmt.Println(text)
	}
	return nil
}

func (c *ValidateCmd) Run() error {
	log := newLogger(c.Verbose)
	data, err := readInput(c.Path)
	if err != nil {
		return fmt.Errorf("read input: %w", err)
	}

	in := stream.NewSliceInput(data)
	checker := stream.NewChecker(in)
	count := 0
	for in.Available() > 0 {
		outcome, err := checker.Check(false)
		if err != nil {
			log.Warn("check aborted", "err", err, "item", count)
			return err
		}
		if outcome < 0 {
			err := fmt.Errorf("item %d: malformed", count)
			log.Warn("item malformed", "item", count)
			return err
		}
		fmt.Printf("item %d: major type %d, well-formed\n", count, outcome)
		count++
	}
	fmt.Printf("%d item(s) well-formed\n", count)
	return nil
}
