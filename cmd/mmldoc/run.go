package main

import (
	"fmt"
	"slices"

	"github.com/mml-format/go-mml/debug"
	"github.com/mml-format/go-mml/dom"
	"github.com/mml-format/go-mml/encode"
	"github.com/mml-format/go-mml/query"

	"github.com/scott-cotton/cli"
)

func view(cfg *ViewConfig, cc *cli.Context, args []string) error {
	doc, err := readDoc(argOrStdin(args))
	if err != nil {
		return err
	}
	cfg.enableColor(cc.Out)
	fmt.Fprintln(cc.Out, debug.Tree(doc))
	return nil
}

func fmtRun(cfg *MainConfig, cc *cli.Context, args []string) error {
	doc, err := readDoc(argOrStdin(args))
	if err != nil {
		return err
	}
	if err := encode.Encode(doc, cc.Out); err != nil {
		return err
	}
	fmt.Fprintln(cc.Out)
	return nil
}

func ids(cfg *MainConfig, cc *cli.Context, args []string) error {
	doc, err := readDoc(argOrStdin(args))
	if err != nil {
		return err
	}
	for _, id := range doc.IDs() {
		kind, err := doc.KindOf(id)
		if err != nil {
			return err
		}
		fmt.Fprintf(cc.Out, "%s\t%s\n", id, kind)
	}
	return nil
}

func get(cfg *MainConfig, cc *cli.Context, args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("%w: get requires a node id", cli.ErrUsage)
	}
	doc, err := readDoc(argOrStdin(args[1:]))
	if err != nil {
		return err
	}
	content, err := doc.Content(args[0])
	if err != nil {
		return err
	}
	fmt.Fprintln(cc.Out, content)
	return nil
}

func frags(cfg *MainConfig, cc *cli.Context, args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("%w: frags requires a leaf id", cli.ErrUsage)
	}
	doc, err := readDoc(argOrStdin(args[1:]))
	if err != nil {
		return err
	}
	fragments, err := doc.Fragments(args[0], "")
	if err != nil {
		return err
	}
	names := make([]string, 0, len(fragments))
	for name := range fragments {
		names = append(names, name)
	}
	slices.Sort(names)
	for _, name := range names {
		for i, inst := range fragments[name] {
			fmt.Fprintf(cc.Out, "%s[%d]\t%s\n", name, i+1, inst)
		}
	}
	return nil
}

func find(cfg *FindConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Find.Parse(cc, args)
	if err != nil {
		return err
	}
	doc, err := readDoc(argOrStdin(args))
	if err != nil {
		return err
	}
	q := query.New(doc)
	if len(cfg.Attrs) > 0 {
		q = q.Where(cfg.Attrs)
	}
	if cfg.Kind != "" {
		kind, err := dom.ParseKind(cfg.Kind)
		if err != nil {
			return fmt.Errorf("%w: %v", cli.ErrUsage, err)
		}
		q = q.WhereKind(kind)
	}
	if cfg.Expr != "" {
		if q, err = q.WhereExpr(cfg.Expr); err != nil {
			return fmt.Errorf("%w: %v", cli.ErrUsage, err)
		}
	}
	for _, id := range q.IDs() {
		fmt.Fprintln(cc.Out, id)
	}
	return nil
}
