package main

import (
	"fmt"
	"os"
)

const version = "0.1.0"

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	command := os.Args[1]
	args := os.Args[2:]

	switch command {
	case "demo":
		if err := demo(args); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
	case "journal":
		if err := dumpJournal(args); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
	case "help", "-h", "--help":
		printUsage()
	case "version", "-v", "--version":
		fmt.Println("launchpad version", version)
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n\n", command)
		printUsage()
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Println(`launchpad - token launchpad ledger

Usage:
  launchpad <command> [options]

Commands:
  demo      Run a full sale lifecycle against an in-process ledger
  journal   Dump the operation journal from a SQLite database
  version   Print version
  help      Show this help

Examples:
  launchpad demo
  launchpad demo -db launchpad.db
  launchpad journal -db launchpad.db`)
}
