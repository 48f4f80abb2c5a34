package main

import (
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/scott-cotton/cli"

	"github.com/signadot/cfgpatch/snippet"
)

func check(cfg *CheckConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Check.Parse(cc, args)
	if err != nil {
		return err
	}
	if len(args) == 0 {
		return fmt.Errorf("%w: no snippets given", cli.ErrUsage)
	}
	var paths []string
	for _, arg := range args {
		fi, err := os.Stat(arg)
		if err != nil {
			return err
		}
		if !fi.IsDir() {
			paths = append(paths, arg)
			continue
		}
		found, err := snippet.Find(arg)
		if err != nil {
			return err
		}
		paths = append(paths, found...)
	}
	ok, failed := "ok", "FAILED"
	if cfg.colors(cc.Out) {
		ok = color.New(color.FgGreen).Sprint(ok)
		failed = color.New(color.FgRed, color.Bold).Sprint(failed)
	}
	nPassed, nFailed := 0, 0
	for _, p := range paths {
		res, err := runSnippet(cfg, p)
		switch {
		case err != nil:
			nFailed++
			fmt.Fprintf(cc.Out, "snippet %s... %s\n\t%v\n", p, failed, err)
		case !res.OK():
			nFailed++
			fmt.Fprintf(cc.Out, "snippet %s... %s\n%s", p, failed, res.Diff)
		default:
			nPassed++
			if !cfg.Quiet {
				fmt.Fprintf(cc.Out, "snippet %s... %s\n", p, ok)
			}
		}
	}
	result := ok
	if nFailed != 0 {
		result = failed
	}
	fmt.Fprintf(cc.Out, "\nresult: %s. %d passed; %d failed\n", result, nPassed, nFailed)
	if nFailed != 0 {
		return fmt.Errorf("%d snippets failed", nFailed)
	}
	return nil
}

func runSnippet(cfg *CheckConfig, path string) (*snippet.Result, error) {
	s, err := snippet.Load(path)
	if err != nil {
		return nil, err
	}
	return s.Run(cfg.mmOpts()...)
}
