package main

import (
	"io"
	"os"

	"github.com/mml-format/go-mml/dom"
	"github.com/mml-format/go-mml/parse"

	"github.com/fatih/color"
	"github.com/mattn/go-isatty"
	"github.com/scott-cotton/cli"
)

type MainConfig struct {
	Color bool `cli:"name=color desc='force colored output'"`

	Out      string
	CloseOut func() error

	Main *cli.Command
}

func (cfg *MainConfig) outOpt(cc *cli.Context, a string) (any, error) {
	cfg.Out = a
	if a == "-" {
		return nil, nil
	}
	f, err := os.OpenFile(cfg.Out, os.O_CREATE|os.O_TRUNC|os.O_RDWR, 0644)
	if err != nil {
		return nil, err
	}
	cc.Out = f
	cfg.CloseOut = f.Close
	return nil, nil
}

// enableColor resolves whether tree rendering is colored: the -color
// flag forces it, otherwise the output must be a terminal.
func (cfg *MainConfig) enableColor(w io.Writer) {
	if cfg.Color {
		color.NoColor = false
		return
	}
	f, ok := w.(*os.File)
	if !ok || !isatty.IsTerminal(f.Fd()) {
		color.NoColor = true
	}
}

// readDoc parses the document named by arg; "-" or "" reads stdin.
func readDoc(arg string) (*dom.Document, error) {
	var r io.Reader = os.Stdin
	if arg != "" && arg != "-" {
		f, err := os.Open(arg)
		if err != nil {
			return nil, err
		}
		defer f.Close()
		r = f
	}
	d, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	return parse.Parse(string(d)), nil
}

func argOrStdin(args []string) string {
	if len(args) > 0 {
		return args[0]
	}
	return "-"
}

type ViewConfig struct {
	*MainConfig

	View *cli.Command
}

type FindConfig struct {
	*MainConfig

	Attrs map[string]string
	Expr  string
	Kind  string

	Find *cli.Command
}
