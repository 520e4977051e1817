package main

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"sort"
	"strings"

	"github.com/chzyer/readline"

	"nickandperla.net/xen/internal/config"
	"nickandperla.net/xen/internal/parse"
	"nickandperla.net/xen/internal/token"
	"nickandperla.net/xen/pkg/xen"
)

const contPrompt = "...  "

// lineReader is the part of readline.Instance the loop needs.
type lineReader interface {
	Readline() (string, error)
	SetPrompt(prompt string)
}

func printBanner(w io.Writer) {
	fmt.Fprintln(w, "Xen: A Lisp Interpreter")
	fmt.Fprintln(w, "Version", version)
	fmt.Fprintln(w, "Press Ctrl+C to Exit")
	fmt.Fprintln(w)
}

func runREPL(runtime *xen.Runtime, cfg *config.Config, out io.Writer) {
	printBanner(out)

	prompt := cfg.Prompt
	if prompt == "" {
		prompt = config.DefaultPrompt
	}

	l, err := readline.NewEx(&readline.Config{
		Prompt:            prompt,
		HistoryFile:       cfg.HistoryFile,
		AutoComplete:      &completer{names: runtime.Names},
		InterruptPrompt:   "^C",
		EOFPrompt:         "exit",
		HistorySearchFold: true,
	})
	if err != nil {
		// Not usable as a line editor, fall back to basic mode
		fmt.Fprintf(os.Stderr, "Line editing unavailable: %v\n", err)
		replLoop(runtime, newBasicReader(os.Stdin, out, prompt), prompt, out)
		return
	}
	defer l.Close()

	replLoop(runtime, l, prompt, out)
}

// replLoop reads lines until EOF and prints the value of each. Input that
// ends inside an open list or string continues on the next line.
func replLoop(runtime *xen.Runtime, l lineReader, prompt string, out io.Writer) {
	pending := ""
	for {
		line, err := l.Readline()
		if errors.Is(err, readline.ErrInterrupt) {
			if pending == "" && line == "" {
				return
			}
			pending = ""
			l.SetPrompt(prompt)
			continue
		} else if err == io.EOF {
			return
		} else if err != nil {
			fmt.Fprintf(out, "Error: %v\n", err)
			return
		}

		input := pending + line
		if strings.TrimSpace(input) == "" {
			pending = ""
			continue
		}

		result, err := runtime.Eval(input)
		if errors.Is(err, parse.ErrUnbalanced) {
			pending = input + "\n"
			l.SetPrompt(contPrompt)
			continue
		}
		pending = ""
		l.SetPrompt(prompt)
		if err != nil {
			fmt.Fprintf(out, "Error: %v\n", err)
			continue
		}
		fmt.Fprintln(out, result)
	}
}

// basicReader reads lines without editing support.
type basicReader struct {
	reader *bufio.Reader
	out    io.Writer
	prompt string
}

func newBasicReader(r io.Reader, out io.Writer, prompt string) *basicReader {
	return &basicReader{reader: bufio.NewReader(r), out: out, prompt: prompt}
}

func (b *basicReader) Readline() (string, error) {
	fmt.Fprint(b.out, b.prompt)
	line, err := b.reader.ReadString('\n')
	if err != nil {
		if line != "" && err == io.EOF {
			return line, nil
		}
		fmt.Fprintln(b.out)
		return "", err
	}
	return strings.TrimRight(line, "\r\n"), nil
}

func (b *basicReader) SetPrompt(prompt string) {
	b.prompt = prompt
}

// completer offers the names bound in the root environment.
type completer struct {
	names func() []string
}

// Do implements readline.AutoCompleter.
func (c *completer) Do(line []rune, pos int) ([][]rune, int) {
	start := pos
	for start > 0 && token.IsSymbolRune(line[start-1]) {
		start--
	}
	prefix := string(line[start:pos])

	var matches []string
	for _, name := range c.names() {
		if strings.HasPrefix(name, prefix) && name != prefix {
			matches = append(matches, name)
		}
	}
	sort.Strings(matches)

	out := make([][]rune, 0, len(matches))
	for _, m := range matches {
		out = append(out, []rune(m[len(prefix):]))
	}
	return out, len([]rune(prefix))
}
