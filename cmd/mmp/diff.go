package main

import (
	"bytes"
	"fmt"
	"os"
	"strings"

	"github.com/fatih/color"
	"github.com/scott-cotton/cli"

	"github.com/signadot/cfgpatch/encode"
	"github.com/signadot/cfgpatch/libdiff"
)

func diff(cfg *DiffConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Diff.Parse(cc, args)
	if err != nil {
		return err
	}
	if len(args) != 2 {
		return fmt.Errorf("%w: need 2 files", cli.ErrUsage)
	}
	if cfg.Reverse {
		args[0], args[1] = args[1], args[0]
	}
	from, err := os.ReadFile(args[0])
	if err != nil {
		return fmt.Errorf("could not read %s: %w", args[0], err)
	}
	to, err := os.ReadFile(args[1])
	if err != nil {
		return fmt.Errorf("could not read %s: %w", args[1], err)
	}
	if cfg.Merge {
		patch, err := libdiff.MergePatch(from, to)
		if err != nil {
			return err
		}
		_, err = cc.Out.Write(append(patch, '\n'))
		return err
	}
	fromText, err := renderJSON(from)
	if err != nil {
		return fmt.Errorf("error decoding %s: %w", args[0], err)
	}
	toText, err := renderJSON(to)
	if err != nil {
		return fmt.Errorf("error decoding %s: %w", args[1], err)
	}
	out := libdiff.Text(fromText, toText, cfg.Context)
	if cfg.colors(cc.Out) {
		out = colorDiff(out)
	}
	_, err = cc.Out.Write([]byte(out))
	return err
}

func renderJSON(d []byte) (string, error) {
	db, err := encode.UnmarshalJSON(d)
	if err != nil {
		return "", err
	}
	buf := &bytes.Buffer{}
	if err := encode.Encode(db, buf); err != nil {
		return "", err
	}
	return buf.String(), nil
}

func colorDiff(s string) string {
	add := color.New(color.FgGreen).SprintFunc()
	del := color.New(color.FgRed).SprintFunc()
	lines := strings.SplitAfter(s, "\n")
	for i, ln := range lines {
		switch {
		case strings.HasPrefix(ln, "+"):
			lines[i] = add(strings.TrimSuffix(ln, "\n")) + "\n"
		case strings.HasPrefix(ln, "-"):
			lines[i] = del(strings.TrimSuffix(ln, "\n")) + "\n"
		}
	}
	return strings.Join(lines, "")
}
