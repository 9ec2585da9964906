package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/glamour"
	"github.com/google/subcommands"

	"github.com/ndewijer/Investment-Tracker-Backend/internal/app"
	"github.com/ndewijer/Investment-Tracker-Backend/internal/config"
	"github.com/ndewijer/Investment-Tracker-Backend/internal/engine"
	"github.com/ndewijer/Investment-Tracker-Backend/internal/logging"
)

var commands = []subcommands.Command{
	&selfCheckCmd{},
	&inventoryCmd{},
	&summaryCmd{},
	&exportCmd{},
	&importCmd{},
	&refreshCmd{},
}

// withApp loads the configuration, wires the application and runs fn.
// Log output goes to stderr so reports can be piped.
func withApp(ctx context.Context, fn func(*app.App, *config.Config) error) subcommands.ExitStatus {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitUsageError
	}
	logger := logging.Setup(os.Stderr, cfg.Log)

	a, err := app.New(ctx, cfg, logger)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	defer a.Close()

	if err := fn(a, cfg); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	return subcommands.ExitSuccess
}

func printMarkdown(md string) {
	out, err := glamour.Render(md, "auto")
	if err != nil {
		fmt.Print(md)
		return
	}
	fmt.Print(out)
}

type selfCheckCmd struct{}

func (*selfCheckCmd) Name() string     { return "selfcheck" }
func (*selfCheckCmd) Synopsis() string { return "replay the golden ledger and verify the engine" }
func (*selfCheckCmd) Usage() string {
	return `ledgerctl selfcheck

  Replays the fixed reference ledger through the inventory engine and exits
  non-zero when the result differs from the expected state.
`
}
func (*selfCheckCmd) SetFlags(*flag.FlagSet) {}

func (*selfCheckCmd) Execute(_ context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	// The check needs no database, only the engine.
	result := engine.RunSelfCheck()
	fmt.Printf("%s: %s\n", result.Status, result.Details)
	if !result.Passed {
		return subcommands.ExitFailure
	}
	return subcommands.ExitSuccess
}

type inventoryCmd struct {
	assetID string
}

func (*inventoryCmd) Name() string     { return "inventory" }
func (*inventoryCmd) Synopsis() string { return "display the inventory history of an asset" }
func (*inventoryCmd) Usage() string {
	return `ledgerctl inventory -asset <id>

  Replays the transactions of one asset and prints the state after each.
`
}

func (c *inventoryCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.assetID, "asset", "", "ID of the asset to replay")
}

func (c *inventoryCmd) Execute(ctx context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if c.assetID == "" {
		fmt.Fprintln(os.Stderr, "Error: -asset is required")
		return subcommands.ExitUsageError
	}
	return withApp(ctx, func(a *app.App, _ *config.Config) error {
		inv, err := a.Services.Portfolio.Inventory(ctx, c.assetID)
		if err != nil {
			return err
		}
		printMarkdown(inventoryMarkdown(inv))
		return nil
	})
}

type summaryCmd struct{}

func (*summaryCmd) Name() string     { return "summary" }
func (*summaryCmd) Synopsis() string { return "display the portfolio summary per asset type" }
func (*summaryCmd) Usage() string {
	return `ledgerctl summary

  Prints every position and the totals per asset type.
`
}
func (*summaryCmd) SetFlags(*flag.FlagSet) {}

func (*summaryCmd) Execute(ctx context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	return withApp(ctx, func(a *app.App, _ *config.Config) error {
		positions, err := a.Services.Portfolio.Positions(ctx, "")
		if err != nil {
			return err
		}
		summary, err := a.Services.Portfolio.Summary(ctx)
		if err != nil {
			return err
		}
		printMarkdown(summaryMarkdown(positions, summary))
		return nil
	})
}

type exportCmd struct {
	output string
}

func (*exportCmd) Name() string     { return "export" }
func (*exportCmd) Synopsis() string { return "write a backup bundle of the ledger" }
func (*exportCmd) Usage() string {
	return `ledgerctl export [-o <file>]

  Writes the ledger as a backup bundle, encrypted when a backup key is
  configured. Without -o the bundle goes to the configured backup sinks.
`
}

func (c *exportCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.output, "o", "", "file to write the bundle to, - for stdout")
}

func (c *exportCmd) Execute(ctx context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	return withApp(ctx, func(a *app.App, _ *config.Config) error {
		if c.output == "" {
			locations, err := a.Services.Backup.WriteBackup(ctx)
			if err != nil {
				return err
			}
			for _, loc := range locations {
				fmt.Println(loc)
			}
			return nil
		}

		data, _, err := a.Services.Backup.Export(ctx)
		if err != nil {
			return err
		}
		if c.output == "-" {
			_, err = os.Stdout.Write(data)
			return err
		}
		return os.WriteFile(c.output, data, 0o600)
	})
}

type importCmd struct {
	input string
}

func (*importCmd) Name() string     { return "import" }
func (*importCmd) Synopsis() string { return "replace the ledger with a backup bundle" }
func (*importCmd) Usage() string {
	return `ledgerctl import -i <file>

  Validates the bundle and replaces every asset and transaction with its
  contents. Nothing changes when validation fails.
`
}

func (c *importCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.input, "i", "", "bundle to import, - for stdin")
}

func (c *importCmd) Execute(ctx context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if c.input == "" {
		fmt.Fprintln(os.Stderr, "Error: -i is required")
		return subcommands.ExitUsageError
	}
	return withApp(ctx, func(a *app.App, _ *config.Config) error {
		data, err := readInput(c.input)
		if err != nil {
			return err
		}
		result, err := a.Services.Backup.Import(ctx, data)
		if err != nil {
			return err
		}
		fmt.Printf("imported %d assets and %d transactions\n", result.Assets, result.Transactions)
		return nil
	})
}

func readInput(name string) ([]byte, error) {
	if name == "-" {
		return io.ReadAll(os.Stdin)
	}
	return os.ReadFile(name)
}

type refreshCmd struct {
	asJSON bool
}

func (*refreshCmd) Name() string     { return "refresh" }
func (*refreshCmd) Synopsis() string { return "fetch market prices for every asset" }
func (*refreshCmd) Usage() string {
	return `ledgerctl refresh [-json]

  Fetches the latest quote for every asset from the configured price feed.
`
}

func (c *refreshCmd) SetFlags(f *flag.FlagSet) {
	f.BoolVar(&c.asJSON, "json", false, "print the full refresh report as JSON")
}

func (c *refreshCmd) Execute(ctx context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	return withApp(ctx, func(a *app.App, cfg *config.Config) error {
		if !a.Services.Price.Enabled() {
			return fmt.Errorf("no price feed configured (prices.feed is %q)", cfg.Prices.Feed)
		}
		resp, err := a.Services.Price.RefreshAll(ctx)
		if err != nil {
			return err
		}
		if c.asJSON {
			enc := json.NewEncoder(os.Stdout)
			enc.SetIndent("", "  ")
			return enc.Encode(resp)
		}
		printMarkdown(refreshMarkdown(resp))
		return nil
	})
}
