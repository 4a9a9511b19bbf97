// Command rut applies edit scripts to text files using the rut editing
// core.
package main

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/alecthomas/kong"

	"github.com/rut-editor/rut/internal/archive"
	"github.com/rut-editor/rut/internal/config"
	"github.com/rut-editor/rut/internal/engine"
	"github.com/rut-editor/rut/internal/logging"
	"github.com/rut-editor/rut/internal/script"
)

// Version information (set via ldflags during build).
var (
	version = "dev"
	commit  = "unknown"
)

// CLI defines the command-line interface.
type CLI struct {
	Edit    EditCmd    `cmd:"" help:"Run an edit script against a file"`
	History HistoryCmd `cmd:"" help:"List transactions in a history archive"`
	Version VersionCmd `cmd:"" help:"Print version information"`
}

// runtime carries the output streams into command Run methods.
type runtime struct {
	stdout io.Writer
	stderr io.Writer
}

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

func run(args []string, stdout, stderr io.Writer) int {
	var cli CLI
	parser, err := kong.New(&cli,
		kong.Name("rut"),
		kong.Description("Multi-cursor text editing from the command line"),
		kong.Writers(stdout, stderr),
		kong.UsageOnError(),
		kong.ConfigureHelp(kong.HelpOptions{Compact: true}),
	)
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return 1
	}
	ctx, err := parser.Parse(args)
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return 2
	}
	if err := ctx.Run(&runtime{stdout: stdout, stderr: stderr}); err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return 1
	}
	return 0
}

// EditCmd opens a file, runs a script against it and writes the result.
type EditCmd struct {
	File     string `arg:"" help:"File to edit; created if missing" type:"path"`
	Script   string `short:"s" required:"" help:"Edit script to run" type:"existingfile"`
	Out      string `short:"o" help:"Write the result here instead of back to FILE" type:"path"`
	Print    bool   `short:"p" help:"Print the result instead of saving"`
	Config   string `short:"c" help:"Configuration file (.toml or .yaml)" type:"existingfile"`
	Archive  string `help:"Append evicted history to this xz archive" type:"path"`
	LogLevel string `name:"log-level" help:"Log level: debug, info, warn or error"`
}

// Run executes the edit command.
func (c *EditCmd) Run(rt *runtime) (err error) {
	cfg, err := config.Load(c.Config)
	if err != nil {
		return err
	}
	if c.LogLevel != "" {
		if _, err := logging.ParseLevel(c.LogLevel); err != nil {
			return err
		}
		cfg.Logging.Level = c.LogLevel
	}
	if c.Archive != "" {
		cfg.Archive.Path = c.Archive
	}

	log := logging.New(logging.Config{
		Level:  cfg.Logging.LogLevel(),
		Output: rt.stderr,
		Prefix: "rut",
	})

	src, err := os.ReadFile(c.Script)
	if err != nil {
		return fmt.Errorf("reading script: %w", err)
	}
	sc, err := script.Parse(c.Script, string(src))
	if err != nil {
		return fmt.Errorf("%s: %w", c.Script, err)
	}

	opts := []engine.Option{
		engine.WithBufferOptions(cfg.Editor.BufferOptions()...),
		engine.WithMaxUndoEntries(cfg.Editor.MaxUndo),
		engine.WithLogger(log),
	}
	if cfg.Archive.Path != "" {
		w, oerr := archive.Open(cfg.Archive.Path, c.File)
		if oerr != nil {
			return oerr
		}
		defer func() {
			if cerr := w.Close(); cerr != nil && err == nil {
				err = fmt.Errorf("closing archive: %w", cerr)
			}
		}()
		opts = append(opts, engine.WithArchiver(w))
	}

	s, err := engine.Open(c.File, opts...)
	if err != nil {
		return err
	}

	x := script.NewExecutor(s, log)
	if err := x.Run(sc); err != nil {
		return err
	}
	st := x.Stats()
	log.Info("ran %s: %d commands, %d transactions, %d skipped", c.Script, st.Commands, st.Transactions, st.Skipped)

	switch {
	case c.Print:
		_, err = s.WriteTo(rt.stdout)
		return err
	case c.Out != "":
		return s.SaveAs(c.Out)
	case s.Modified():
		return s.Save()
	}
	return nil
}

// HistoryCmd prints the records in a history archive.
type HistoryCmd struct {
	Path string `arg:"" help:"Archive written by edit --archive" type:"existingfile"`
}

// Run executes the history command.
func (c *HistoryCmd) Run(rt *runtime) error {
	records, err := archive.ReadFile(c.Path)
	if err != nil {
		return err
	}
	if len(records) == 0 {
		return errors.New("archive is empty")
	}
	for _, r := range records {
		tx := r.Transaction
		if tx == nil {
			continue
		}
		fmt.Fprintf(rt.stdout, "%s  %-9s  %s  %q  %d edits\n",
			r.ArchivedAt.Format("2006-01-02 15:04:05"), r.Reason, r.Document, tx.Description, len(tx.Edits))
	}
	return nil
}

// VersionCmd prints version information.
type VersionCmd struct{}

// Run executes the version command.
func (c *VersionCmd) Run(rt *runtime) error {
	fmt.Fprintf(rt.stdout, "rut version %s (%s)\n", version, commit)
	return nil
}
