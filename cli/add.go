package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/alecthomas/kong"

	"github.com/beanbot-dev/beanbot/config"
	"github.com/beanbot-dev/beanbot/formatter"
	"github.com/beanbot-dev/beanbot/parser"
	"github.com/beanbot-dev/beanbot/repository"
)

type AddCmd struct {
	Line   []string `help:"Shorthand transaction line." arg:""`
	Dir    string   `help:"Directory holding the ledger files." default:"." type:"existingdir"`
	Commit bool     `help:"Commit the ledger change when the directory is a git repository."`
	Yes    bool     `help:"Append without asking for confirmation." short:"y"`
}

func (cmd *AddCmd) Run(ctx *kong.Context, globals *Globals) error {
	cfg, err := config.Load(globals.Config)
	if err != nil {
		return err
	}

	tx, err := parser.New(cfg).Parse(strings.Join(cmd.Line, " "))
	if err != nil {
		printError(ctx.Stderr, renderParseError(err))
		return NewCommandError(1)
	}

	entry := formatter.New().FormatString(tx)
	_, _ = fmt.Fprint(ctx.Stdout, entry)

	if !cmd.Yes {
		confirmed, err := promptYesNo("Append this entry to the ledger?")
		if err != nil {
			return fmt.Errorf("failed to read confirmation: %w", err)
		}
		if !confirmed {
			return NewCommandError(1)
		}
	}

	store := repository.NewFileStore(cmd.Dir)
	store.Commit = cmd.Commit

	if err := store.Save(context.Background(), tx, entry); err != nil {
		printError(ctx.Stderr, err.Error())
		return NewCommandError(1)
	}

	printSuccess(ctx.Stderr, fmt.Sprintf("appended to %s/%s.bean", cmd.Dir, tx.Date.Year()))
	return nil
}
