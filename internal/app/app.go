package app

import (
	"fmt"
	"os"
	"strings"
)

// Run executes the CLI command and returns a process exit code.
func Run(args []string) int {
	if len(args) == 0 {
		printUsage()
		return 2
	}

	switch strings.ToLower(strings.TrimSpace(args[0])) {
	case "help", "--help", "-h":
		printUsage()
		return 0
	case "merge":
		return runMerge(args[1:])
	case "machines":
		return runMachines(args[1:])
	case "enrich":
		return runEnrich(args[1:])
	case "convert":
		return runConvert(args[1:])
	case "health":
		return runHealth(args[1:])
	case "runs":
		return runRuns(args[1:])
	case "serve":
		return runServe(args[1:])
	default:
		fmt.Fprintf(os.Stderr, "unknown command: %s\n\n", args[0])
		printUsage()
		return 2
	}
}

func printUsage() {
	fmt.Fprintln(os.Stderr, "firmenmatch CLI")
	fmt.Fprintln(os.Stderr, "")
	fmt.Fprintln(os.Stderr, "Usage:")
	fmt.Fprintln(os.Stderr, "  firmenmatch <command> [flags]")
	fmt.Fprintln(os.Stderr, "")
	fmt.Fprintln(os.Stderr, "Commands:")
	fmt.Fprintln(os.Stderr, "  merge     Merge a keyword CSV with the company base table")
	fmt.Fprintln(os.Stderr, "  machines  Merge a machine report with the company base table")
	fmt.Fprintln(os.Stderr, "  enrich    Add Maschinen_Park_var and hours_of_saving columns")
	fmt.Fprintln(os.Stderr, "  convert   Convert a crawler JSON export into the keyword CSV layout")
	fmt.Fprintln(os.Stderr, "  health    Verify audit-store connectivity")
	fmt.Fprintln(os.Stderr, "  runs      List recorded merge runs")
	fmt.Fprintln(os.Stderr, "  serve     Start the Echo API server over the audit store")
	fmt.Fprintln(os.Stderr, "")
	fmt.Fprintln(os.Stderr, "Use \"firmenmatch <command> -h\" for command-specific flags.")
}
