package main

import (
	"fmt"
	"io"
	"os"
	"sort"
	"strings"

	"github.com/peterh/liner"
	"github.com/sunholo/ownhir/internal/driver"
	"github.com/sunholo/ownhir/internal/hir"
)

// runInspect opens a small read-eval-print shell over the demo program's
// post-check state: listing traits, instances by trait, or a function's
// resolved profile; it has no command for SCC membership. spec.md §6 calls debug dumping out "not
// part of the contract"; this generalizes that same allowance from flat
// file dumps to an interactive shell, grounded on internal/repl/repl.go's
// liner.NewLiner()-backed loop.
func runInspect(args []string) {
	prog := demoProgram()
	result, err := driver.Run(driver.Config{}, prog)
	if err != nil {
		fmt.Fprintf(os.Stderr, "%s: %v\n", red("Error"), err)
	}

	line := liner.NewLiner()
	defer line.Close()
	line.SetCompleter(func(in string) (c []string) {
		for _, cmd := range []string{":help", ":traits", ":instances ", ":profile ", ":quit"} {
			if strings.HasPrefix(cmd, in) {
				c = append(c, cmd)
			}
		}
		return
	})

	fmt.Printf("%s — type :help for commands, :quit to exit\n", bold("ownhir inspect"))
	for {
		input, err := line.Prompt("ownhir> ")
		if err == io.EOF {
			fmt.Println(green("\nGoodbye!"))
			return
		}
		if err != nil {
			fmt.Fprintf(os.Stderr, "%s: %v\n", red("Error"), err)
			return
		}
		line.AppendHistory(input)

		switch cmd, arg := splitCommand(input); cmd {
		case ":quit", ":q":
			return
		case ":help", "":
			printInspectHelp()
		case ":traits":
			printTraits(prog)
		case ":instances":
			printInstances(prog, arg)
		case ":profile":
			printProfile(result, arg)
		default:
			fmt.Fprintf(os.Stderr, "%s: unknown command %q (try :help)\n", yellow("Warning"), cmd)
		}
	}
}

func splitCommand(input string) (cmd, arg string) {
	fields := strings.Fields(input)
	if len(fields) == 0 {
		return "", ""
	}
	return fields[0], strings.Join(fields[1:], " ")
}

func printInspectHelp() {
	fmt.Println("Commands:")
	fmt.Printf("  %s              list declared traits\n", cyan(":traits"))
	fmt.Printf("  %s <trait>   list a trait's instances\n", cyan(":instances"))
	fmt.Printf("  %s <fn>      show a function's resolved profile\n", cyan(":profile"))
	fmt.Printf("  %s              exit\n", cyan(":quit"))
}

func printTraits(prog *hir.Program) {
	names := make([]string, 0, len(prog.Traits()))
	for _, tr := range prog.Traits() {
		names = append(names, tr.Name.String())
	}
	sort.Strings(names)
	for _, n := range names {
		fmt.Println(" ", n)
	}
}

func printInstances(prog *hir.Program, trait string) {
	if trait == "" {
		fmt.Fprintf(os.Stderr, "%s: usage :instances <trait>\n", red("Error"))
		return
	}
	for _, tr := range prog.Traits() {
		if tr.Name.String() != trait {
			continue
		}
		for _, inst := range prog.Resolver().Instances(tr.Name) {
			var args []string
			for _, t := range inst.Types {
				args = append(args, t.String())
			}
			fmt.Printf("  #%d(%s)\n", inst.ID, strings.Join(args, ", "))
		}
		return
	}
	fmt.Fprintf(os.Stderr, "%s: no such trait %q\n", red("Error"), trait)
}

func printProfile(result driver.Result, fn string) {
	if fn == "" {
		fmt.Fprintf(os.Stderr, "%s: usage :profile <function>\n", red("Error"))
		return
	}
	if result.Profiles == nil {
		fmt.Fprintf(os.Stderr, "%s: no profiles recorded\n", red("Error"))
		return
	}
	p := result.Profiles.Get(fn)
	if p == nil {
		fmt.Fprintf(os.Stderr, "%s: no profile for %q\n", red("Error"), fn)
		return
	}
	fmt.Printf("  %+v\n", p)
}
