package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/dustin/go-humanize"
	"github.com/scott-cotton/cli"
)

func passes(cfg *PassesConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Passes.Parse(cc, args)
	if err != nil {
		return err
	}
	_, mm, err := cfg.openProject(args, cfg.Env)
	if err != nil {
		return err
	}
	patches, err := mm.Schedule()
	if err != nil {
		return err
	}
	tw := tabwriter.NewWriter(cc.Out, 0, 4, 2, ' ', 0)
	for _, pp := range patches {
		fmt.Fprintf(tw, "%s\t%s patches\t%s files\n", pp.Pass, humanize.Comma(int64(pp.Len())), humanize.Comma(int64(len(pp.Files))))
	}
	if cfg.Pruned {
		for _, p := range mm.Pruned() {
			fmt.Fprintf(tw, "%s\tpruned\t\n", p)
		}
	}
	return tw.Flush()
}
