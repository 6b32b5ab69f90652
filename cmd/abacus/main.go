package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/germanamz/abacus/pkg/abacusdir"
	"github.com/germanamz/abacus/pkg/calculator"
	"github.com/germanamz/abacus/pkg/config"
	"github.com/germanamz/abacus/pkg/hostbridge"
	"github.com/germanamz/abacus/pkg/tape"
	"github.com/germanamz/abacus/pkg/tools/mcpserver"
)

const version = "0.1.0"

// toolNamespace prefixes the calculator tools exposed over MCP.
const toolNamespace = "calc"

const mcpInstructions = "A two-operand integer calculator. Enter the first operand one digit at a time " +
	"with calc_digit, choose an operator with calc_operator, enter the second operand, then call " +
	"calc_equals. Every tool returns the calculator state as JSON."

func main() {
	// Handle subcommands before flag parsing.
	if len(os.Args) > 1 {
		switch os.Args[1] {
		case "init":
			initCmd := flag.NewFlagSet("init", flag.ExitOnError)
			initCmd.Usage = func() {
				fmt.Fprintf(os.Stderr, "Usage: abacus init [flags]\n\nInitialize a .abacus directory with default structure and config.\n\nFlags:\n")
				initCmd.PrintDefaults()
			}
			dir := initCmd.String("abacus-dir", ".abacus", "path to .abacus directory")
			defaults := initCmd.Bool("defaults", false, "write the default config without prompting")
			_ = initCmd.Parse(os.Args[2:])

			if err := runInit(*dir, *defaults); err != nil {
				fmt.Fprintf(os.Stderr, "error: %v\n", err)
				os.Exit(1)
			}

			return
		case "mcp":
			mcpCmd := flag.NewFlagSet("mcp", flag.ExitOnError)
			mcpCmd.Usage = func() {
				fmt.Fprintf(os.Stderr, "Usage: abacus mcp [flags]\n\nServe the calculator as MCP tools over stdio.\n\nFlags:\n")
				mcpCmd.PrintDefaults()
			}
			flags := registerCommonFlags(mcpCmd)
			_ = mcpCmd.Parse(os.Args[2:])

			if err := runMCP(flags); err != nil {
				fmt.Fprintf(os.Stderr, "error: %v\n", err)
				os.Exit(1)
			}

			return
		case "serve":
			serveCmd := flag.NewFlagSet("serve", flag.ExitOnError)
			serveCmd.Usage = func() {
				fmt.Fprintf(os.Stderr, "Usage: abacus serve [flags]\n\nServe the calculator over HTTP and websockets.\n\nFlags:\n")
				serveCmd.PrintDefaults()
			}
			flags := registerCommonFlags(serveCmd)
			addr := serveCmd.String("addr", "", "listen address (overrides serve.addr in config)")
			_ = serveCmd.Parse(os.Args[2:])

			if err := runServe(flags, *addr); err != nil {
				fmt.Fprintf(os.Stderr, "error: %v\n", err)
				os.Exit(1)
			}

			return
		}
	}

	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: abacus [flags]\n       abacus <command> [flags]\n\nFlags:\n")
		flag.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nCommands:\n  init    Initialize a .abacus directory with default structure and config\n  mcp     Serve the calculator as MCP tools over stdio\n  serve   Serve the calculator over HTTP and websockets\n")
	}

	flags := registerCommonFlags(flag.CommandLine)
	flag.Parse()

	if err := runTUI(flags); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

// commonFlags are accepted by the TUI and by every serving subcommand.
type commonFlags struct {
	configPath *string
	abacusDir  *string
	envFile    *string
}

func registerCommonFlags(fs *flag.FlagSet) commonFlags {
	return commonFlags{
		configPath: fs.String("config", "", "path to configuration file (default: .abacus/config.yaml or abacus.yaml)"),
		abacusDir:  fs.String("abacus-dir", ".abacus", "path to .abacus directory"),
		envFile:    fs.String("env", ".env", "path to .env file (ignored if missing)"),
	}
}

func (f commonFlags) load() (config.Config, error) {
	if err := loadDotEnv(*f.envFile); err != nil {
		return config.Config{}, err
	}

	return loadSettings(*f.configPath, *f.abacusDir)
}

func runInit(dirPath string, defaults bool) error {
	var (
		configYAML []byte
		err        error
	)

	if defaults {
		configYAML, err = config.Default().Marshal()
	} else {
		configYAML, err = runWizard()
	}

	if err != nil {
		return err
	}

	d := abacusdir.New(dirPath)

	if err := abacusdir.Bootstrap(d, configYAML); err != nil {
		return err
	}

	fmt.Printf("Initialized %s\n", d.Root())

	return nil
}

func runTUI(flags commonFlags) error {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	cfg, err := flags.load()
	if err != nil {
		return err
	}

	logPath, err := tuiLogPath(cfg, abacusdir.New(*flags.abacusDir))
	if err != nil {
		return err
	}

	log, closer, err := newLogger(cfg, logPath, io.Discard)
	if err != nil {
		return err
	}
	defer func() { _ = closer.Close() }()

	eng := newEngine(cfg)

	var t *tape.Tape
	if cfg.Tape.Size > 0 {
		t = tape.New(cfg.Tape.Size)
	}

	initMarkdownRenderer(cfg.UI.Theme, 0)

	model := newAppModel(ctx, eng, newHandler(eng, log), t, cfg.UI)

	p := tea.NewProgram(model, tea.WithAltScreen())

	// Send the program reference so the model can start the bridge.
	go func() {
		p.Send(programReadyMsg{program: p})
	}()

	log.InfoContext(ctx, "tui started", "tape_size", cfg.Tape.Size)

	final, err := p.Run()
	if fm, ok := final.(appModel); ok && fm.bridge != nil {
		fm.bridge.stop()
		fm.bridge.wait()
	}

	return err
}

func runMCP(flags commonFlags) error {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	cfg, err := flags.load()
	if err != nil {
		return err
	}

	// stdout carries the protocol, so logs go to stderr.
	log, closer, err := newLogger(cfg, cfg.Log.File, os.Stderr)
	if err != nil {
		return err
	}
	defer func() { _ = closer.Close() }()

	eng := newEngine(cfg)

	srv := mcpserver.New("abacus", version,
		mcpserver.WithInstructions(mcpInstructions),
		mcpserver.WithLogger(log),
	)
	srv.RegisterToolBox(calculator.Tools(eng, newHandler(eng, log), toolNamespace))

	log.InfoContext(ctx, "mcp server started", "namespace", toolNamespace)

	return srv.Serve(ctx, os.Stdin, os.Stdout)
}

func runServe(flags commonFlags, addr string) error {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	cfg, err := flags.load()
	if err != nil {
		return err
	}

	if addr == "" {
		addr = cfg.Serve.Addr
	}

	log, closer, err := newLogger(cfg, cfg.Log.File, os.Stderr)
	if err != nil {
		return err
	}
	defer func() { _ = closer.Close() }()

	eng := newEngine(cfg)

	var opts []hostbridge.Option
	if cfg.Tape.Size > 0 {
		t := tape.New(cfg.Tape.Size)
		sub := eng.Events().Subscribe(64, calculator.EventEvaluated)
		defer eng.Events().Unsubscribe(sub)

		go t.Follow(ctx, sub)

		opts = append(opts, hostbridge.WithTape(t))
	}

	return hostbridge.New(eng, log, opts...).Start(ctx, addr)
}
