package main

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/scott-cotton/cli"
)

func MainCommand() *cli.Command {
	cfg := &MainConfig{}
	sOpts, err := cli.StructOpts(cfg)
	if err != nil {
		panic(err)
	}
	opts := append(sOpts, &cli.Opt{
		Name:        "o",
		Description: "output file (default stdout)",
		Type:        cli.NamedFuncOpt(cfg.outOpt, "(filepath)"),
	})

	return cli.NewCommandAt(&cfg.Main, "mmldoc").
		WithSynopsis("mmldoc [opts] command [opts] [file]").
		WithDescription("mmldoc is a tool for inspecting MML documents.").
		WithOpts(opts...).
		WithRun(func(cc *cli.Context, args []string) error {
			return mmldocMain(cfg, cc, args)
		}).
		WithSubs(
			ViewCommand(cfg),
			FmtCommand(cfg),
			IDsCommand(cfg),
			GetCommand(cfg),
			FragsCommand(cfg),
			FindCommand(cfg))
}

func mmldocMain(cfg *MainConfig, cc *cli.Context, args []string) error {
	defer func() {
		if cfg.CloseOut != nil {
			cfg.CloseOut()
		}
	}()
	args, err := cfg.Main.Parse(cc, args)
	if err != nil {
		return err
	}
	if len(args) == 0 {
		return cli.ErrNoCommandProvided
	}
	sub := cfg.Main.FindSub(cc, args[0])
	if sub == nil {
		return fmt.Errorf("%w: %q not found", cli.ErrNoSuchCommand, args[0])
	}
	err = sub.Run(cc, args[1:])
	if errors.Is(err, cli.ErrUsage) {
		sub.Usage(cc, err)
		os.Exit(sub.Exit(cc, err))
	}
	return err
}

func ViewCommand(mainCfg *MainConfig) *cli.Command {
	cfg := &ViewConfig{MainConfig: mainCfg}
	cmd := cli.NewCommand("view").
		WithAliases("v").
		WithSynopsis("view [file]").
		WithDescription("render the document tree with kinds, attributes and content snippets").
		WithRun(func(cc *cli.Context, args []string) error {
			return view(cfg, cc, args)
		})
	cfg.View = cmd
	return cmd
}

func FmtCommand(cfg *MainConfig) *cli.Command {
	return cli.NewCommand("fmt").
		WithSynopsis("fmt [file]").
		WithDescription("heal and reformat a document (parse then serialize)").
		WithRun(func(cc *cli.Context, args []string) error {
			return fmtRun(cfg, cc, args)
		})
}

func IDsCommand(cfg *MainConfig) *cli.Command {
	return cli.NewCommand("ids").
		WithSynopsis("ids [file]").
		WithDescription("list node ids in document order, one per line with kind").
		WithRun(func(cc *cli.Context, args []string) error {
			return ids(cfg, cc, args)
		})
}

func GetCommand(cfg *MainConfig) *cli.Command {
	return cli.NewCommand("get").
		WithSynopsis("get <id> [file]").
		WithDescription("print a leaf's content").
		WithRun(func(cc *cli.Context, args []string) error {
			return get(cfg, cc, args)
		})
}

func FragsCommand(cfg *MainConfig) *cli.Command {
	return cli.NewCommand("frags").
		WithSynopsis("frags <leaf-id> [file]").
		WithDescription("list a leaf's fragments and their instances").
		WithRun(func(cc *cli.Context, args []string) error {
			return frags(cfg, cc, args)
		})
}

func FindCommand(mainCfg *MainConfig) *cli.Command {
	cfg := &FindConfig{MainConfig: mainCfg, Attrs: map[string]string{}}
	opts := []*cli.Opt{
		{
			Name:        "a",
			Description: "require attribute key=value (repeatable)",
			Type:        cli.NamedFuncOpt(attrOptFunc(cfg.Attrs), "(key=value)"),
		},
		{
			Name:        "e",
			Description: "boolean expression over {id, kind, attrs}",
			Type: cli.NamedFuncOpt(cli.FuncOpt(func(_ *cli.Context, v string) (any, error) {
				cfg.Expr = v
				return v, nil
			}), "(expr)"),
		},
		{
			Name:        "kind",
			Description: "require kind: container, leaf or fragment",
			Type: cli.NamedFuncOpt(cli.FuncOpt(func(_ *cli.Context, v string) (any, error) {
				cfg.Kind = v
				return v, nil
			}), "(kind)"),
		},
	}
	cmd := cli.NewCommand("find").
		WithSynopsis("find [-a key=value]... [-e expr] [-kind k] [file]").
		WithDescription("list ids of nodes matching all given filters").
		WithOpts(opts...).
		WithRun(func(cc *cli.Context, args []string) error {
			return find(cfg, cc, args)
		})
	cfg.Find = cmd
	return cmd
}

func attrOptFunc(attrs map[string]string) cli.FuncOpt {
	return cli.FuncOpt(func(_ *cli.Context, v string) (any, error) {
		k, val, ok := strings.Cut(v, "=")
		if !ok || k == "" {
			return nil, fmt.Errorf("%w: -a wants key=value, got %q", cli.ErrUsage, v)
		}
		attrs[k] = val
		return v, nil
	})
}
