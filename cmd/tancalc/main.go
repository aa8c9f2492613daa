package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"time"

	"github.com/chzyer/readline"

	"github.com/danielpatrickdp/tancalc/internal/config"
	"github.com/danielpatrickdp/tancalc/internal/history"
	"github.com/danielpatrickdp/tancalc/internal/remote"
	"github.com/danielpatrickdp/tancalc/internal/repl"
	"github.com/danielpatrickdp/tancalc/internal/tangent"
)

const evalTimeout = 10 * time.Second

// #region main
func main() {
	os.Exit(run())
}

func run() int {
	configPath := flag.String("config", "", "path to YAML config")
	expr := flag.String("x", "", "evaluate one input and exit, e.g. -x 45 -deg or -x \"1.2 rad\"")
	deg := flag.Bool("deg", false, "treat bare numbers as degrees")
	remoteAddr := flag.String("remote", "", "evaluate via tand at this address (\"-\" uses server_addr from config)")
	printConfig := flag.Bool("print-config", false, "print the effective config and exit")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		return 2
	}
	if *printConfig {
		data, err := cfg.Marshal()
		if err != nil {
			fmt.Fprintf(os.Stderr, "error: %v\n", err)
			return 1
		}
		os.Stdout.Write(data)
		return 0
	}

	opts := repl.Options{
		Backend:     repl.Local{Evaluator: cfg.Evaluator()},
		DefaultUnit: cfg.DefaultUnit(),
		Precision:   cfg.Precision,
		Method:      cfg.Method,
	}
	if *deg {
		opts.DefaultUnit = tangent.Degrees
	}

	if *remoteAddr != "" {
		addr := *remoteAddr
		if addr == "-" {
			addr = cfg.ServerAddr
		}
		client, err := remote.NewClient(addr)
		if err != nil {
			log.Printf("failed to connect to tand at %s: %v", addr, err)
			return 1
		}
		defer client.Close()
		opts.Backend = client
		opts.Method = "remote"
	}

	if cfg.History {
		store, err := history.NewStore(cfg.DBPath)
		if err != nil {
			log.Printf("history disabled: %v", err)
		} else {
			defer store.Close()
			opts.Store = store
		}
	}

	if *expr != "" {
		return runOnce(opts, *expr)
	}
	if err := runREPL(opts); err != nil {
		log.Printf("repl: %v", err)
		return 1
	}
	return 0
}

// #endregion main

// #region one-shot
func runOnce(opts repl.Options, expr string) int {
	opts.Source = history.SourceCLI
	sess := repl.NewSession(opts)
	defer sess.Close()

	ctx, cancel := context.WithTimeout(context.Background(), evalTimeout)
	defer cancel()

	out, _ := sess.Handle(ctx, expr)
	if sess.Err() != nil {
		fmt.Fprintln(os.Stderr, out)
		return 1
	}
	fmt.Println(out)
	return 0
}

// #endregion one-shot

// #region repl
func runREPL(opts repl.Options) error {
	opts.Source = history.SourceREPL
	sess := repl.NewSession(opts)
	defer sess.Close()

	rl, err := readline.NewEx(&readline.Config{
		Prompt:            sess.Prompt(),
		HistoryFile:       historyFile(),
		AutoComplete:      completer(),
		InterruptPrompt:   "^C",
		EOFPrompt:         "exit",
		HistorySearchFold: true,
	})
	if err != nil {
		return fmt.Errorf("init terminal: %w", err)
	}
	defer rl.Close()

	log.SetOutput(rl.Stderr())
	fmt.Fprintln(rl.Stdout(), sess.Banner())

	for {
		rl.SetPrompt(sess.Prompt())
		line, err := rl.Readline()
		if err == readline.ErrInterrupt {
			if len(line) == 0 {
				break
			}
			continue
		} else if err == io.EOF {
			break
		}

		ctx, cancel := context.WithTimeout(context.Background(), evalTimeout)
		out, done := sess.Handle(ctx, line)
		cancel()

		if out != "" {
			fmt.Fprintln(rl.Stdout(), out)
		}
		if done {
			return nil
		}
	}
	fmt.Fprintln(rl.Stdout(), repl.Goodbye)
	return nil
}

func completer() *readline.PrefixCompleter {
	return readline.NewPrefixCompleter(
		readline.PcItem("deg"),
		readline.PcItem("rad"),
		readline.PcItem("reset"),
		readline.PcItem("history"),
		readline.PcItem("help"),
		readline.PcItem("exit"),
		readline.PcItem("quit"),
	)
}

func historyFile() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".tancalc_history")
}

// #endregion repl
