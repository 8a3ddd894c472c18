// Command ownhir drives the core over a demo hir.Program: check runs the
// full phase pipeline and prints a report summary, dump additionally
// writes per-function textual dumps, and inspect opens a small REPL for
// browsing the resulting traits/profiles. Grounded on cmd/ailang/main.go's
// flag-based subcommand dispatch and color-wrapped output helpers.
package main

import (
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/sunholo/ownhir/internal/driver"
)

var (
	Version   = "dev"
	Commit    = "unknown"
	BuildTime = "unknown"

	green  = color.New(color.FgGreen).SprintFunc()
	red    = color.New(color.FgRed).SprintFunc()
	yellow = color.New(color.FgYellow).SprintFunc()
	cyan   = color.New(color.FgCyan).SprintFunc()
	bold   = color.New(color.Bold).SprintFunc()
)

func main() {
	args := os.Args[1:]
	if len(args) == 0 {
		printHelp()
		return
	}

	switch args[0] {
	case "-version", "--version":
		printVersion()
	case "-help", "--help":
		printHelp()
	case "check":
		runCheck(args[1:])
	case "dump":
		runDump(args[1:])
	case "inspect":
		runInspect(args[1:])
	default:
		fmt.Fprintf(os.Stderr, "%s: unknown command '%s'\n", red("Error"), args[0])
		printHelp()
		os.Exit(1)
	}
}

func printVersion() {
	fmt.Printf("ownhir %s\n", bold(Version))
	if Commit != "unknown" {
		fmt.Printf("Commit: %s\n", Commit)
	}
	if BuildTime != "unknown" {
		fmt.Printf("Built:  %s\n", BuildTime)
	}
}

func printHelp() {
	fmt.Println(bold("ownhir - ownership-aware HIR core"))
	fmt.Println()
	fmt.Println("Usage:")
	fmt.Println("  ownhir <command> [arguments]")
	fmt.Println()
	fmt.Println("Commands:")
	fmt.Printf("  %s            Run the phase pipeline over the demo program\n", cyan("check"))
	fmt.Printf("  %s <dir>       Run the pipeline, writing per-function dumps to <dir>\n", cyan("dump"))
	fmt.Printf("  %s          Start an interactive inspector over the demo program\n", cyan("inspect"))
	fmt.Println()
	fmt.Println("Flags:")
	fmt.Println("  -version     Print version information")
	fmt.Println("  -help        Show this help message")
}

// runCheck runs the full pipeline over the built-in demo program and
// prints a one-line summary per phase plus every report raised.
func runCheck(args []string) {
	prog := demoProgram()
	result, err := driver.Run(driver.Config{}, prog)
	printResult(result)
	if err != nil {
		os.Exit(1)
	}
	fmt.Printf("%s no fatal errors\n", green("✓"))
}

func runDump(args []string) {
	if len(args) < 1 {
		fmt.Fprintf(os.Stderr, "%s: missing directory argument\n", red("Error"))
		fmt.Println("Usage: ownhir dump <dir>")
		os.Exit(1)
	}
	prog := demoProgram()
	result, err := driver.Run(driver.Config{DumpDir: args[0]}, prog)
	printResult(result)
	if err != nil {
		os.Exit(1)
	}
	fmt.Printf("%s dumps written to %s\n", green("✓"), args[0])
}

func printResult(result driver.Result) {
	for phase, ms := range result.PhaseTimings {
		fmt.Printf("  %s %s: %dms\n", cyan("→"), phase, ms)
	}
	for _, rep := range result.Reports {
		loc := ""
		if len(rep.Locations) > 0 {
			loc = rep.Locations[0].Pos
		}
		fmt.Fprintf(os.Stderr, "%s [%s] %s (%s)\n", red(rep.Code), rep.Phase, rep.Slogan, loc)
	}
	if len(result.Reports) > 0 {
		fmt.Printf("%s %d report(s)\n", yellow("!"), len(result.Reports))
	}
}
