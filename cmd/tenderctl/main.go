// Command tenderctl is a terminal client for the tender portal.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/tenderhub/portal-client/cmd/tenderctl/commands"
)

const version = "0.3.0"

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	if len(os.Args) < 2 {
		printUsage()
		return nil
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	command := os.Args[1]
	args := os.Args[2:]

	switch command {
	case "login":
		return commands.LoginCommand(ctx, args)
	case "register":
		return commands.RegisterCommand(ctx, args)
	case "logout":
		return commands.LogoutCommand(ctx, args)
	case "whoami":
		return commands.WhoamiCommand(ctx, args)
	case "proposals":
		return commands.ProposalsCommand(ctx, args)
	case "profile":
		return commands.ProfileCommand(ctx, args)
	case "version":
		fmt.Printf("tenderctl version %s\n", version)
		return nil
	case "help", "-h", "--help":
		printUsage()
		return nil
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n\n", command)
		printUsage()
		return fmt.Errorf("unknown command: %s", command)
	}
}

func printUsage() {
	fmt.Printf(`tenderctl - terminal client for the tender portal

USAGE:
    tenderctl <command> [options]

COMMANDS:
    login       Sign in and keep the session
    register    Create an account (does not sign in)
    logout      End the current session
    whoami      Show the current session
    proposals   Browse the proposal catalog
    profile     Submit the dashboard profile (admin | contractor)
    version     Show CLI version
    help        Show this help message

ENVIRONMENT:
    AUTH_URL, PROPOSAL_URL, DASHBOARD_URL   backend base URLs
    SESSION_STORE                           memory, bolt, redis or mongo (default: bolt)
    LOG_LEVEL, LOG_PRETTY                   diagnostics on stderr

EXAMPLES:
    tenderctl login --email ann@corp.com --password secret
    tenderctl proposals --okved 41.20,42.11 --min 100000 --period month --all
    tenderctl profile contractor --name Acme --email info@acme.com --phone +100 --inn 7707083893

For more information on a specific command:
    tenderctl <command> --help

`)
}
