package main

import (
	"io"
	"os"

	"github.com/mattn/go-isatty"
	"github.com/scott-cotton/cli"

	"github.com/signadot/cfgpatch/encode"
)

type MainConfig struct {
	Color   bool `cli:"name=color desc='encode with color'"`
	Verbose bool `cli:"name=v desc='log progress to stderr'"`

	Out      string
	CloseOut func() error

	Main *cli.Command
}

// colors reports whether output to w should be colored: -color forces it,
// otherwise it is on for terminals unless -color=false was given.
func (cfg *MainConfig) colors(w io.Writer) bool {
	if cfg.Color {
		return true
	}
	for _, opt := range cfg.Main.Opts {
		if opt.Name == "color" && opt.Value != nil {
			return false
		}
	}
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd())
}

func (cfg *MainConfig) encOpts(w io.Writer) []encode.EncodeOption {
	if !cfg.colors(w) {
		return nil
	}
	return []encode.EncodeOption{encode.EncodeColors(encode.NewColors())}
}

type RunConfig struct {
	*MainConfig
	Env   map[string]any
	JSON  bool `cli:"name=json desc='output the database as json'"`
	Stats bool `cli:"name=stats desc='print a summary to stderr'"`
	Bare  bool `cli:"name=bare desc='omit the UrlConfig wrapper of each node'"`

	Run *cli.Command
}

type PassesConfig struct {
	*MainConfig
	Env    map[string]any
	Pruned bool `cli:"name=pruned desc='also list pruned passes'"`

	Passes *cli.Command
}

type TreeConfig struct {
	*MainConfig
	Env  map[string]any
	Keys bool `cli:"name=keys desc='include keys'"`

	Tree *cli.Command
}

type DiffConfig struct {
	*MainConfig
	Merge   bool `cli:"name=merge desc='output a json merge patch'"`
	Reverse bool `cli:"name=r desc='reverse the diff'"`
	Context int  `cli:"name=context desc='lines of context, negative for all'"`

	Diff *cli.Command
}

type CheckConfig struct {
	*MainConfig
	Quiet bool `cli:"name=q desc='only report failures'"`

	Check *cli.Command
}
