// Command storefront browses the food catalog and manages the cart of a
// signed-in user from the terminal.
//
//	storefront catalog
//	storefront login <token>
//	storefront add <item-id>
//	storefront cart
package main

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/spf13/pflag"

	"github.com/kbukum/storefront/errors"
	"github.com/kbukum/storefront/version"
)

const usage = `Usage: storefront [flags] <command> [args]

Commands:
  catalog          list the products
  cart             show the cart with line totals
  total            print the cart total
  add <item-id>    add one of an item
  remove <item-id> remove one of an item
  login <token>    store a session token and load its cart
  logout           forget the session and clear the cart
  whoami           decode the stored session token
  version          print the build version

Flags:
`

func main() {
	if err := run(context.Background(), os.Args[1:], os.Stdout, os.Stderr); err != nil {
		msg := err.Error()
		if errors.IsAppError(err) {
			msg = errors.UserMessage(err)
		}
		fmt.Fprintln(os.Stderr, "error:", msg)
		os.Exit(1)
	}
}

func run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	fs := pflag.NewFlagSet("storefront", pflag.ContinueOnError)
	fs.SetOutput(stderr)
	configFile := fs.StringP("config", "c", "", "path to config.yml")
	envFile := fs.String("env-file", "", "path to a .env file")
	verbose := fs.BoolP("verbose", "v", false, "print the startup summary and debug logs")
	fs.Usage = func() {
		fmt.Fprint(stderr, usage)
		fs.PrintDefaults()
	}
	if err := fs.Parse(args); err != nil {
		if err == pflag.ErrHelp {
			return nil
		}
		return err
	}

	rest := fs.Args()
	if len(rest) == 0 {
		fs.Usage()
		return fmt.Errorf("no command given")
	}
	name, cmdArgs := rest[0], rest[1:]

	if name == "version" {
		fmt.Fprintln(stdout, version.Get().String())
		return nil
	}
	cmd, ok := commands[name]
	if !ok {
		fs.Usage()
		return fmt.Errorf("unknown command %q", name)
	}
	if len(cmdArgs) != cmd.args {
		return fmt.Errorf("%s takes %d argument(s), got %d", name, cmd.args, len(cmdArgs))
	}

	cfg, err := loadConfig(*configFile, *envFile)
	if err != nil {
		return err
	}
	if cfg.Version == "" {
		cfg.Version = version.Get().Short()
	}
	if *verbose {
		cfg.Debug = true
		cfg.Logging.Level = "debug"
	}

	return execute(ctx, cfg, cmd, cmdArgs, stdout, stderr, *verbose)
}
