package main

import (
	"flag"
	"fmt"
	"os"

	"go.uber.org/zap"
	"golang.org/x/term"

	"github.com/wippyai/gen-runtime/engine"
	"github.com/wippyai/gen-runtime/program"
	"github.com/wippyai/gen-runtime/runtime"
	"github.com/wippyai/gen-runtime/scenario"
)

func main() {
	var (
		programName  = flag.String("program", "", "Program to spawn and drain")
		scenarioFile = flag.String("scenario", "", "YAML scenario file to run")
		limit        = flag.Int("limit", 32, "Max resume steps when draining")
		list         = flag.Bool("list", false, "List registered programs and exit")
		interactive  = flag.Bool("i", false, "Interactive mode with TUI")
		verbose      = flag.Bool("v", false, "Enable debug logging")
	)
	flag.Parse()

	if *verbose {
		logger, err := zap.NewDevelopment()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		engine.SetLogger(logger)
	}

	if !*list && *programName == "" && *scenarioFile == "" && !*interactive {
		fmt.Fprintln(os.Stderr, "Usage: run -program <name> [-limit n]")
		fmt.Fprintln(os.Stderr, "       run -scenario <file.yaml>")
		fmt.Fprintln(os.Stderr, "       run -list")
		fmt.Fprintln(os.Stderr, "       run -i  (interactive mode)")
		os.Exit(1)
	}

	rt := runtime.New()
	defer rt.Close()

	if err := program.RegisterAll(rt); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	if *interactive {
		if !term.IsTerminal(int(os.Stdout.Fd())) {
			fmt.Fprintln(os.Stderr, "Error: interactive mode requires a terminal")
			os.Exit(1)
		}
		if err := runInteractive(rt); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		return
	}

	if *list {
		fmt.Println("Registered programs:")
		for _, name := range rt.Programs() {
			fmt.Printf("  %s\n", name)
		}
		return
	}

	if *scenarioFile != "" {
		if err := runScenario(rt, *scenarioFile); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		return
	}

	if err := drain(rt, *programName, *limit); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func drain(rt *runtime.Runtime, name string, limit int) error {
	inst, err := rt.Spawn(name)
	if err != nil {
		return err
	}

	fmt.Printf("Program: %s (handle %d)\n", name, inst.Handle())
	step := 0
	for {
		if limit > 0 && step >= limit {
			fmt.Printf("stopped after %d steps (instance may be infinite); closing\n", limit)
			_, err := inst.Close()
			return err
		}
		res, err := inst.Resume(nil)
		if err != nil {
			return err
		}
		step++
		if res.Done {
			fmt.Printf("done, return value: %v\n", res.Value)
			return nil
		}
		fmt.Printf("  yield %d: %v\n", step, res.Value)
	}
}

func runScenario(rt *runtime.Runtime, path string) error {
	sc, err := scenario.ParseFile(path)
	if err != nil {
		return err
	}

	report, err := scenario.NewRunner(rt).Run(sc)
	if err != nil {
		return err
	}

	fmt.Print(report.Summary())
	if !report.OK() {
		return fmt.Errorf("scenario %q failed", sc.Name)
	}
	return nil
}
