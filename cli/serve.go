package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/alecthomas/kong"

	"github.com/beanbot-dev/beanbot/repository"
	"github.com/beanbot-dev/beanbot/telemetry"
	"github.com/beanbot-dev/beanbot/web"
)

type ServeCmd struct {
	Port  int    `help:"Port to listen on." default:"8080"`
	Host  string `help:"Host to bind to." default:"127.0.0.1"`
	Watch bool   `help:"Hot-reload the configuration when the file changes." short:"w"`

	Ledger string `help:"Append entries to local ledger files in this directory instead of GitHub." type:"existingdir"`

	GithubOwner string `help:"GitHub repository owner." env:"GITHUB_OWNER"`
	GithubRepo  string `help:"GitHub repository name." env:"GITHUB_REPO"`
	GithubToken string `help:"GitHub access token." env:"GITHUB_TOKEN"`
}

func (cmd *ServeCmd) Run(ctx *kong.Context, globals *Globals) error {
	store, err := cmd.buildStore()
	if err != nil {
		return err
	}

	runCtx := context.Background()

	if globals.Telemetry {
		collector := telemetry.NewTimingCollector()
		runCtx = telemetry.WithCollector(runCtx, collector)

		defer func() {
			_, _ = fmt.Fprintln(ctx.Stderr)
			collector.Report(ctx.Stderr)
		}()
	}

	server := web.New(cmd.Port, globals.Config, store)
	server.Host = cmd.Host
	server.Version = Version
	server.WatchEnabled = cmd.Watch

	_, _ = fmt.Fprintf(ctx.Stderr, "Listening on http://%s:%d\n", cmd.Host, cmd.Port)
	return server.Start(runCtx)
}

// buildStore picks the entry store: a local directory when --ledger is set,
// the GitHub contents API otherwise.
func (cmd *ServeCmd) buildStore() (repository.Store, error) {
	if cmd.Ledger != "" {
		return repository.NewFileStore(cmd.Ledger), nil
	}

	store, err := repository.NewGitHubStore(cmd.GithubOwner, cmd.GithubRepo, cmd.GithubToken)
	if err != nil {
		return nil, fmt.Errorf("%w (or pass --ledger for local files)", err)
	}

	if base := os.Getenv("GITHUB_API_URL"); base != "" {
		store.BaseURL = base
	}

	return store, nil
}
