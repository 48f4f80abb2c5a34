package main

import (
	"fmt"
	"io"
	"os"

	"github.com/dustin/go-humanize"
	"github.com/scott-cotton/cli"

	"github.com/signadot/cfgpatch"
	"github.com/signadot/cfgpatch/encode"
)

func run(cfg *RunConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Run.Parse(cc, args)
	if err != nil {
		return err
	}
	if cfg.JSON && cfg.Bare {
		return fmt.Errorf("%w: cannot use -json and -bare together", cli.ErrUsage)
	}
	_, mm, err := cfg.openProject(args, cfg.Env)
	if err != nil {
		return err
	}
	db, err := mm.Execute()
	if err != nil {
		return err
	}
	if cfg.JSON {
		d, err := encode.MarshalJSON(db)
		if err != nil {
			return err
		}
		if _, err := cc.Out.Write(append(d, '\n')); err != nil {
			return err
		}
	} else {
		opts := append(cfg.encOpts(cc.Out), encode.EncodeURLs(!cfg.Bare))
		if err := encode.Encode(db, cc.Out, opts...); err != nil {
			return fmt.Errorf("error encoding result: %w", err)
		}
	}
	if cfg.Stats {
		return writeStats(os.Stderr, mm.Stats())
	}
	return nil
}

func writeStats(w io.Writer, st cfgpatch.Stats) error {
	_, err := fmt.Fprintf(w, "%s files, %s passes (%s pruned), %s patches\n%s nodes, %s keys\n",
		humanize.Comma(int64(st.Files)),
		humanize.Comma(int64(st.Passes)),
		humanize.Comma(int64(st.PrunedPasses)),
		humanize.Comma(int64(st.Patches)),
		humanize.Comma(int64(st.Nodes)),
		humanize.Comma(int64(st.Keys)))
	return err
}
