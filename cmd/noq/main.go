// Command noq is the interactive shaping shell (spec §6.4, informative):
// a file-mode batch driver and a REPL, both thin wrappers around the
// lexer/parser/session packages. Grounded on aksiksi-histweet's
// urfave/cli-based cmd/main.go and the original noq main() for the
// file-vs-REPL split.
package main

import (
	"bufio"
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/urfave/cli/v2"

	"github.com/frexsdev/noq/internal/lexer"
	"github.com/frexsdev/noq/internal/parser"
	"github.com/frexsdev/noq/internal/session"
)

func buildCliApp() *cli.App {
	return &cli.App{
		Name:      "noq",
		Usage:     "shape symbolic expressions by applying named rewrite rules",
		ArgsUsage: "[file]",
		Action: func(c *cli.Context) error {
			if path := c.Args().First(); path != "" {
				return runFile(path)
			}
			return runREPL()
		},
	}
}

func main() {
	if err := buildCliApp().Run(os.Args); err != nil {
		log.Fatal(err)
	}
}

// runFile implements file mode: every command runs in sequence; the
// first error aborts the program with a nonzero exit status (spec §6.3).
func runFile(path string) error {
	source, err := os.ReadFile(path)
	if err != nil {
		return err
	}

	sess := session.New()
	l := lexer.New(string(source), path)
	p := parser.New(lexer.NewTokenStream(l))

	for !sess.Quit && !p.AtEnd() {
		cmd, err := p.ParseCommand()
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
		out, err := sess.Process(cmd)
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
		if out != "" {
			fmt.Println(out)
		}
	}
	return nil
}

const (
	defaultPrompt = "noq> "
	shapingPrompt = "> "
)

// runREPL implements interactive mode: on error, the current line is
// discarded and the session continues (spec §6.3).
func runREPL() error {
	sess := session.New()
	scanner := bufio.NewScanner(os.Stdin)

	for !sess.Quit {
		prompt := defaultPrompt
		if sess.Current != nil {
			prompt = shapingPrompt
		}
		fmt.Print(prompt)

		if !scanner.Scan() {
			return scanner.Err()
		}
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}

		l := lexer.New(line, "")
		p := parser.New(lexer.NewTokenStream(l))
		if p.AtEnd() {
			continue
		}

		cmd, err := p.ParseCommand()
		if err == nil {
			err = p.ExpectEnd()
		}
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			continue
		}

		out, err := sess.Process(cmd)
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			continue
		}
		if out != "" {
			fmt.Println(out)
		}
	}
	return nil
}
