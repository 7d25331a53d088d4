// Package main is the interactive front-end for the uP shell: it runs
// a session over a serial device, or over the local terminal in raw
// mode.
package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"

	"github.com/mattn/go-isatty"
	"golang.org/x/term"

	"github.com/tomschlintz/uP/internal/command"
	"github.com/tomschlintz/uP/internal/luacmd"
	"github.com/tomschlintz/uP/internal/shell"
	"github.com/tomschlintz/uP/internal/transport"
)

// Version information (set via ldflags during build).
var (
	version = "dev"
	commit  = "unknown"
)

// options holds the parsed command line.
type options struct {
	Device     string
	Prompt     string
	LineEnd    string
	ScriptsDir string
	LogLevel   string
}

func main() {
	os.Exit(run())
}

func run() int {
	opts := parseFlags()
	logger := newLogger(opts.LogLevel)

	reg := command.NewRegistry()
	registerBuiltins(reg)

	if opts.ScriptsDir != "" {
		loader := luacmd.NewLoader(reg)
		defer loader.Close()
		if err := loadScripts(loader, opts.ScriptsDir, logger); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			return 1
		}
	}

	var in io.ByteReader
	var out io.ByteWriter
	var cleanup func()

	if opts.Device != "" {
		port, err := transport.Open(opts.Device)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			return 1
		}
		logger.Info("serving shell", "device", opts.Device)
		in, out = port, port
		cleanup = func() { port.Close() }
	} else {
		if isatty.IsTerminal(os.Stdin.Fd()) {
			state, err := term.MakeRaw(int(os.Stdin.Fd()))
			if err != nil {
				fmt.Fprintf(os.Stderr, "Error: raw mode: %v\n", err)
				return 1
			}
			cleanup = func() { term.Restore(int(os.Stdin.Fd()), state) }
		}
		in = transport.FromFile(os.Stdin)
		out = transport.FromFile(os.Stdout)
	}
	if cleanup != nil {
		defer cleanup()
	}

	sess := shell.New(
		shell.WithOutput(out),
		shell.WithRegistry(reg),
		shell.WithPrompt(opts.Prompt),
		shell.WithLineEnd(opts.LineEnd),
	)
	logger.Debug("session ready", "id", sess.ID())

	var quit bool
	reg.Register("exit", command.HandlerFunc(func(inv command.Invocation) {
		quit = true
	}), "leave the shell", nil)

	sess.Start()
	for !quit {
		c, err := in.ReadByte()
		if err != nil {
			if !errors.Is(err, io.EOF) {
				logger.Error("read failed", "error", err)
				return 1
			}
			break
		}
		if c == 0x04 { // Ctrl-D
			break
		}
		sess.Feed(c)
	}

	out.WriteByte('\r')
	out.WriteByte('\n')
	return 0
}

// registerBuiltins installs the commands every upsh instance carries.
func registerBuiltins(reg *command.Registry) {
	reg.Register("echo", command.HandlerFunc(func(inv command.Invocation) {
		line := ""
		for i, p := range inv.Params {
			if i > 0 {
				line += " "
			}
			line += p
		}
		inv.Reply("%s", line)
	}), "echo parameters back", nil)

	reg.Register("add", command.HandlerFunc(func(inv command.Invocation) {
		if !command.ConfirmParams(inv, 2) {
			return
		}
		a, errA := strconv.Atoi(inv.Params[0])
		b, errB := strconv.Atoi(inv.Params[1])
		if errA != nil || errB != nil {
			inv.Reply("add: parameters must be integers")
			return
		}
		inv.Reply("%d", a+b)
	}), "add two integers", []string{"<a>", "<b>"})

	reg.Register("version", command.HandlerFunc(func(inv command.Invocation) {
		inv.Reply("upsh %s (%s)", version, commit)
	}), "show version", nil)
}

// loadScripts runs every .lua file in dir through the loader.
func loadScripts(loader *luacmd.Loader, dir string, logger *slog.Logger) error {
	paths, err := filepath.Glob(filepath.Join(dir, "*.lua"))
	if err != nil {
		return fmt.Errorf("scan %s: %w", dir, err)
	}
	for _, p := range paths {
		if err := loader.DoFile(p); err != nil {
			return err
		}
		logger.Info("loaded command script", "path", p)
	}
	return nil
}

func newLogger(level string) *slog.Logger {
	var l slog.Level
	switch level {
	case "debug":
		l = slog.LevelDebug
	case "warn":
		l = slog.LevelWarn
	case "error":
		l = slog.LevelError
	default:
		l = slog.LevelInfo
	}
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: l}))
}

func parseFlags() options {
	var opts options
	var showVersion bool

	flag.StringVar(&opts.Device, "dev", "", "Serial device or pty to serve (default: stdin/stdout)")
	flag.StringVar(&opts.Prompt, "prompt", shell.DefaultPrompt, "Prompt string")
	lineEnd := flag.String("lineend", "crlf", "Output line terminator (crlf, lf, cr)")
	flag.StringVar(&opts.ScriptsDir, "scripts", "", "Directory of Lua command scripts")
	flag.StringVar(&opts.LogLevel, "log-level", "info", "Log level (debug, info, warn, error)")
	flag.BoolVar(&showVersion, "version", false, "Show version information")

	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "upsh - character-driven command shell\n\n")
		fmt.Fprintf(os.Stderr, "Usage: upsh [options]\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		flag.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nExamples:\n")
		fmt.Fprintf(os.Stderr, "  upsh                        Serve the local terminal\n")
		fmt.Fprintf(os.Stderr, "  upsh -dev /dev/pts/4        Serve a serial loopback\n")
		fmt.Fprintf(os.Stderr, "  upsh -scripts ./commands    Load Lua-defined commands\n")
	}

	flag.Parse()

	if showVersion {
		fmt.Printf("upsh %s\n", version)
		fmt.Printf("Commit: %s\n", commit)
		os.Exit(0)
	}

	switch *lineEnd {
	case "crlf":
		opts.LineEnd = "\r\n"
	case "lf":
		opts.LineEnd = "\n"
	case "cr":
		opts.LineEnd = "\r"
	default:
		fmt.Fprintf(os.Stderr, "Error: invalid lineend %q (must be crlf, lf, or cr)\n", *lineEnd)
		os.Exit(1)
	}

	return opts
}
