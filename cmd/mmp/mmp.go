package main

import (
	"errors"
	"fmt"
	"maps"
	"os"

	"github.com/scott-cotton/cli"

	"github.com/signadot/cfgpatch"
	"github.com/signadot/cfgpatch/gamedata"
)

func mmpMain(cfg *MainConfig, cc *cli.Context, args []string) error {
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

func envOptTypeFunc(env map[string]any) func(cc *cli.Context, a string) (any, error) {
	return func(cc *cli.Context, a string) (any, error) {
		k, v, err := gamedata.ParseEnvArg(a)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", cli.ErrUsage, err)
		}
		env[k] = v
		return 0, nil
	}
}

func (cfg *MainConfig) mmOpts() []cfgpatch.ModuleManagerOpt {
	if !cfg.Verbose {
		return nil
	}
	return []cfgpatch.ModuleManagerOpt{cfgpatch.WithLogger(theLog)}
}

// openProject opens the project directory named by args, defaulting to the
// current directory, and builds a module manager for its documents.
func (cfg *MainConfig) openProject(args []string, argEnv map[string]any) (*gamedata.Dir, *cfgpatch.ModuleManager, error) {
	if len(args) > 1 {
		return nil, nil, fmt.Errorf("%w: at most one directory", cli.ErrUsage)
	}
	dirPath := "."
	if len(args) == 1 {
		dirPath = args[0]
	}
	env, err := gamedata.LoadEnv()
	if err != nil {
		return nil, nil, err
	}
	if env == nil {
		env = map[string]any{}
	}
	maps.Copy(env, argEnv)
	dir, err := gamedata.OpenDir(dirPath, env)
	if err != nil {
		return nil, nil, err
	}
	if cfg.Verbose {
		theLog.Info("loading documents", "root", dir.Root, "extensions", dir.KnownPasses())
	}
	raw, err := dir.Load()
	if err != nil {
		return nil, nil, err
	}
	return dir, cfgpatch.NewModuleManager(raw, dir.KnownPasses(), cfg.mmOpts()...), nil
}
