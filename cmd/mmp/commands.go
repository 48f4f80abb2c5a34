package main

import (
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

	return cli.NewCommandAt(&cfg.Main, "mmp").
		WithSynopsis("mmp [opts] command [opts]").
		WithDescription("mmp applies ModuleManager patches to a directory of config documents.").
		WithOpts(opts...).
		WithRun(func(cc *cli.Context, args []string) error {
			return mmpMain(cfg, cc, args)
		}).
		WithSubs(
			RunCommand(cfg),
			PassesCommand(cfg),
			TreeCommand(cfg),
			DiffCommand(cfg),
			CheckCommand(cfg))
}

func envOpt(env map[string]any) *cli.Opt {
	return &cli.Opt{
		Name:        "e",
		Description: "set an environment value for extension conditions",
		Type:        cli.NamedFuncOpt(cli.FuncOpt(envOptTypeFunc(env)), "(key=val)"),
	}
}

func RunCommand(mainCfg *MainConfig) *cli.Command {
	cfg := &RunConfig{MainConfig: mainCfg, Env: map[string]any{}}
	opts, err := cli.StructOpts(cfg)
	if err != nil {
		panic(err)
	}
	opts = append(opts, envOpt(cfg.Env))
	return cli.NewCommandAt(&cfg.Run, "run").
		WithAliases("r").
		WithSynopsis("run [-e key=val]... [dir]").
		WithDescription(runDescription).
		WithOpts(opts...).
		WithRun(func(cc *cli.Context, args []string) error {
			return run(cfg, cc, args)
		})
}

const runDescription = `run patches every document of a directory and renders the result.

The directory defaults to the current directory.  If it contains a file
called 'cfgpatch.yaml', it is read as a project description:

  # documents are searched for under root, relative to the project file.
  root: GameData
  # file suffix of documents, default .cfg
  suffix: .cfg
  # globs of paths to skip, default **/PluginData/**
  exclude:
  - "Old/**"
  # default environment
  env:
    version: 12
  # installed extensions. Each declares a pass of the same name.
  extensions:
  - name: MyMod
  - name: Modern
    if: version >= 12

Extension conditions are evaluated against the environment, which can be
overridden with '-e key=val' or by setting $CFGPATCH_ENV to a YAML mapping.
Arguments take precedence over $CFGPATCH_ENV, which takes precedence over
the project file.`

func PassesCommand(mainCfg *MainConfig) *cli.Command {
	cfg := &PassesConfig{MainConfig: mainCfg, Env: map[string]any{}}
	opts, err := cli.StructOpts(cfg)
	if err != nil {
		panic(err)
	}
	opts = append(opts, envOpt(cfg.Env))
	return cli.NewCommandAt(&cfg.Passes, "passes").
		WithAliases("p").
		WithSynopsis("passes [-e key=val]... [dir]").
		WithDescription("list passes in execution order").
		WithOpts(opts...).
		WithRun(func(cc *cli.Context, args []string) error {
			return passes(cfg, cc, args)
		})
}

func TreeCommand(mainCfg *MainConfig) *cli.Command {
	cfg := &TreeConfig{MainConfig: mainCfg, Env: map[string]any{}}
	opts, err := cli.StructOpts(cfg)
	if err != nil {
		panic(err)
	}
	opts = append(opts, envOpt(cfg.Env))
	return cli.NewCommandAt(&cfg.Tree, "tree").
		WithAliases("t").
		WithSynopsis("tree [-keys] [-e key=val]... [dir]").
		WithDescription("draw the patched database as a tree").
		WithOpts(opts...).
		WithRun(func(cc *cli.Context, args []string) error {
			return drawTree(cfg, cc, args)
		})
}

func DiffCommand(mainCfg *MainConfig) *cli.Command {
	cfg := &DiffConfig{MainConfig: mainCfg, Context: 3}
	opts, err := cli.StructOpts(cfg)
	if err != nil {
		panic(err)
	}
	return cli.NewCommandAt(&cfg.Diff, "diff").
		WithAliases("d").
		WithSynopsis("diff [-merge] a.json b.json").
		WithDescription("diff two databases written by 'run -json'").
		WithOpts(opts...).
		WithRun(func(cc *cli.Context, args []string) error {
			return diff(cfg, cc, args)
		})
}

func CheckCommand(mainCfg *MainConfig) *cli.Command {
	cfg := &CheckConfig{MainConfig: mainCfg}
	opts, err := cli.StructOpts(cfg)
	if err != nil {
		panic(err)
	}
	return cli.NewCommandAt(&cfg.Check, "check").
		WithAliases("c").
		WithSynopsis("check snippet-files-or-dirs...").
		WithDescription("run snippets and compare the result with their EXPECT node").
		WithOpts(opts...).
		WithRun(func(cc *cli.Context, args []string) error {
			return check(cfg, cc, args)
		})
}
