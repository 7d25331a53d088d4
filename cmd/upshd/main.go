// Package main serves the uP shell over SSH: one independent session
// per connection, driven byte by byte off the SSH channel.
package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"

	gliderssh "github.com/gliderlabs/ssh"

	"github.com/tomschlintz/uP/internal/command"
	"github.com/tomschlintz/uP/internal/luacmd"
	"github.com/tomschlintz/uP/internal/shell"
)

type options struct {
	Addr       string
	Prompt     string
	HostKey    string
	ScriptsDir string
	LogLevel   string
}

func main() {
	os.Exit(run())
}

func run() int {
	opts := parseFlags()
	logger := newLogger(opts.LogLevel)

	server := &gliderssh.Server{
		Addr: opts.Addr,
		Handler: func(conn gliderssh.Session) {
			serve(conn, opts, logger)
		},
	}
	if opts.HostKey != "" {
		if err := server.SetOption(gliderssh.HostKeyFile(opts.HostKey)); err != nil {
			fmt.Fprintf(os.Stderr, "Error: host key: %v\n", err)
			return 1
		}
	}

	logger.Info("listening", "addr", opts.Addr)
	if err := server.ListenAndServe(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}
	return 0
}

// serve runs one shell session for the lifetime of one SSH connection.
// Each connection gets a private registry and Lua state, so sessions
// never share mutable state across goroutines.
func serve(conn gliderssh.Session, opts options, logger *slog.Logger) {
	reg := command.NewRegistry()

	var quit bool
	registerBuiltins(reg, &quit)

	if opts.ScriptsDir != "" {
		loader := luacmd.NewLoader(reg)
		defer loader.Close()
		if err := loadScripts(loader, opts.ScriptsDir); err != nil {
			logger.Error("script load failed", "error", err)
			fmt.Fprintf(conn, "script load failed: %v\r\n", err)
		}
	}

	sess := shell.New(
		shell.WithOutput(connWriter{conn}),
		shell.WithRegistry(reg),
		shell.WithPrompt(opts.Prompt),
	)
	logger.Info("session opened",
		"id", sess.ID(), "user", conn.User(), "remote", conn.RemoteAddr())
	defer logger.Info("session closed", "id", sess.ID())

	sess.Start()
	buf := make([]byte, 1)
	for !quit {
		n, err := conn.Read(buf)
		if err != nil {
			return
		}
		if n == 0 {
			continue
		}
		if buf[0] == 0x04 { // Ctrl-D
			return
		}
		sess.Feed(buf[0])
	}
}

// connWriter adapts the SSH channel to the session's byte sink.
type connWriter struct {
	conn gliderssh.Session
}

func (w connWriter) WriteByte(c byte) error {
	_, err := w.conn.Write([]byte{c})
	return err
}

func (w connWriter) Write(p []byte) (int, error) {
	return w.conn.Write(p)
}

func registerBuiltins(reg *command.Registry, quit *bool) {
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

	reg.Register("exit", command.HandlerFunc(func(inv command.Invocation) {
		*quit = true
	}), "close the connection", nil)
}

func loadScripts(loader *luacmd.Loader, dir string) error {
	paths, err := filepath.Glob(filepath.Join(dir, "*.lua"))
	if err != nil {
		return fmt.Errorf("scan %s: %w", dir, err)
	}
	for _, p := range paths {
		if err := loader.DoFile(p); err != nil {
			return err
		}
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

	flag.StringVar(&opts.Addr, "addr", ":2222", "Listen address")
	flag.StringVar(&opts.Prompt, "prompt", shell.DefaultPrompt, "Prompt string")
	flag.StringVar(&opts.HostKey, "hostkey", "", "Host key file (generated if empty)")
	flag.StringVar(&opts.ScriptsDir, "scripts", "", "Directory of Lua command scripts")
	flag.StringVar(&opts.LogLevel, "log-level", "info", "Log level (debug, info, warn, error)")

	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "upshd - uP shell over SSH\n\n")
		fmt.Fprintf(os.Stderr, "Usage: upshd [options]\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		flag.PrintDefaults()
	}

	flag.Parse()
	return opts
}
