// Copyright 2020 Erin Shepherd
// SPDX-License-Identifier: ISC

// Command ridecl is an interactive workbench for declarations, parameters
// and archive URIs.
//
// On a terminal it reads commands with line editing and completion;
// otherwise it reads one command per line from standard input, so it can be
// fed a script:
//
//	ridecl -config ri.toml < checks.txt
package main

import (
	"bufio"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/fatih/color"
	"github.com/google/shlex"
	"github.com/lmorg/readline"
	"github.com/pkg/errors"
	"github.com/rs/zerolog"
	"golang.org/x/term"

	"go.e43.eu/ri"
)

func main() {
	os.Exit(runWithArgs(os.Args[1:], os.Stdin, os.Stdout, os.Stderr))
}

func runWithArgs(args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("ridecl", flag.ContinueOnError)
	fs.SetOutput(stderr)
	configPath := fs.String("config", "", "path to a TOML or YAML options file")
	samples := fs.Int("samples", 0, "number of color samples (overrides the config)")
	fs.Usage = func() {
		fmt.Fprintf(stderr, "Usage: %s [options]\n\n", fs.Name())
		fmt.Fprintln(stderr, "Reads ridecl commands; type \"help\" for a list.")
		fmt.Fprintln(stderr)
		fmt.Fprintln(stderr, "Options:")
		fs.PrintDefaults()
	}
	if err := fs.Parse(args); err != nil {
		return 2
	}
	if fs.NArg() != 0 {
		fs.Usage()
		return 2
	}

	opts, err := loadOptions(*configPath, *samples)
	if err != nil {
		fmt.Fprintf(stderr, "error: %v\n", err)
		return 1
	}

	if f, ok := stdout.(*os.File); !ok || !term.IsTerminal(int(f.Fd())) {
		color.NoColor = true
	}

	// The context limits the logger to opts.LogLevel
	log := zerolog.New(zerolog.ConsoleWriter{Out: stderr, NoColor: color.NoColor}).
		With().Timestamp().Logger()

	ctx, err := ri.NewContext(opts)
	if err != nil {
		fmt.Fprintf(stderr, "error: %v\n", err)
		return 1
	}
	ctx.WithLogger(log)

	s := &session{ctx: ctx, out: stdout, opts: opts}
	if f, ok := stdin.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		return s.interactive()
	}
	return s.script(stdin)
}

func loadOptions(path string, samples int) (ri.Options, error) {
	opts := ri.DefaultOptions()
	if path != "" {
		var err error
		if opts, err = ri.LoadOptionsFile(path); err != nil {
			return opts, errors.Wrapf(err, "loading %s", path)
		}
	}
	if samples != 0 {
		opts.ColorSamples = samples
		if err := opts.Validate(); err != nil {
			return opts, errors.Wrap(err, "-samples")
		}
	}
	return opts, nil
}

func (s *session) interactive() int {
	rl := readline.NewInstance()
	rl.SetPrompt("ri> ")
	rl.TabCompleter = s.complete

	for !s.done {
		line, err := rl.Readline()
		if err != nil {
			// Interrupt or end of input
			return 0
		}
		s.exec(line)
	}
	return 0
}

func (s *session) script(r io.Reader) int {
	sc := bufio.NewScanner(r)
	for !s.done && sc.Scan() {
		s.exec(sc.Text())
	}
	if err := sc.Err(); err != nil {
		s.fail(errors.Wrap(err, "reading commands"))
	}
	if s.failures > 0 {
		return 1
	}
	return 0
}

// complete offers command names for the first word of the line
func (s *session) complete(line []rune, pos int, dtx readline.DelayedTabContext) (string, []string, map[string]string, readline.TabDisplayType) {
	prefix := string(line[:pos])
	if strings.ContainsAny(prefix, " \t") {
		return prefix, nil, nil, readline.TabDisplayGrid
	}

	var out []string
	for _, c := range commands {
		if strings.HasPrefix(c.name, prefix) {
			out = append(out, c.name[len(prefix):])
		}
	}
	return prefix, out, nil, readline.TabDisplayGrid
}

func (s *session) exec(line string) {
	line = strings.TrimSpace(line)
	if line == "" || strings.HasPrefix(line, "#") {
		return
	}

	words, err := shlex.Split(line)
	if err != nil {
		s.fail(errors.Wrap(err, "splitting command"))
		return
	}
	if len(words) == 0 {
		return
	}

	for _, c := range commands {
		if c.name == words[0] {
			if len(words)-1 < c.minArgs {
				s.fail(errors.Errorf("usage: %s %s", c.name, c.usage))
				return
			}
			if err := c.run(s, words[1:]); err != nil {
				s.fail(errors.Wrap(err, c.name))
			}
			return
		}
	}
	s.fail(errors.Errorf("unknown command %q (try help)", words[0]))
}
