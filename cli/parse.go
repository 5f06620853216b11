package cli

import (
	"fmt"
	"strings"

	"github.com/alecthomas/kong"
	"github.com/alecthomas/repr"

	"github.com/beanbot-dev/beanbot/config"
	"github.com/beanbot-dev/beanbot/formatter"
	"github.com/beanbot-dev/beanbot/parser"
)

type ParseCmd struct {
	Line  []string `help:"Shorthand transaction line." arg:""`
	Debug bool     `help:"Dump the parsed transaction structure instead of formatting it."`
}

func (cmd *ParseCmd) Run(ctx *kong.Context, globals *Globals) error {
	cfg, err := config.Load(globals.Config)
	if err != nil {
		return err
	}

	line := strings.Join(cmd.Line, " ")

	collector, report := newCollector(ctx, globals)
	timer := collector.Start(fmt.Sprintf("parse %q", line))

	tx, err := parser.New(cfg).Parse(line)
	if err != nil {
		timer.End()
		report()
		printError(ctx.Stderr, renderParseError(err))
		return NewCommandError(1)
	}

	if cmd.Debug {
		timer.End()
		report()
		repr.Println(tx)
		return nil
	}

	formatTimer := timer.Child("format")
	entry := formatter.New().FormatString(tx)
	formatTimer.End()
	timer.End()
	report()

	_, _ = fmt.Fprint(ctx.Stdout, entry)
	return nil
}
