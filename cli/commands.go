package cli

var (
	Version   = ""
	CommitSHA = ""
)

// Globals defines global flags available to all commands.
type Globals struct {
	Config    string `help:"Path to the account configuration file." default:"beanbot.yaml" short:"c" env:"BEANBOT_CONFIG"`
	Telemetry bool   `help:"Show timing telemetry for operations."`
}

type Commands struct {
	Globals

	Parse ParseCmd `cmd:"" help:"Parse a shorthand line and print the Beancount entry."`
	Add   AddCmd   `cmd:"" help:"Parse a shorthand line and append it to a local ledger."`
	Serve ServeCmd `cmd:"" help:"Start the Telegram webhook server."`
}
