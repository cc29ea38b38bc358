package cmd

import (
	"io"
	"io/ioutil"
	"os"
	"strings"

	"github.com/ComedicChimera/olive"

	"github.com/Mr-H-06/Rcompiler/generate"
	"github.com/Mr-H-06/Rcompiler/report"
)

// defaultTestInputPath mirrors original_source/src/main.cpp's fallback
// path when no positional argument is given and --use-test-input is set.
const defaultTestInputPath = "../test_case/test_case.in"

// Options holds the resolved settings a single invocation runs with, after
// CLI flags and the optional rx-build.toml have been merged.
type Options struct {
	Profile        generate.BuildProfile
	LogLevel       string
	SwallowErrors  bool
	StderrForStub  io.Writer
	Stdout         io.Writer
}

// Execute is the CLI entry point: parses arguments, reads the source, and
// runs the core.  It and readSource are the only code in this package that
// touch os.Args/os.Stdin directly, so Run stays unit-testable.
func Execute(fe Frontend) int {
	cli := olive.NewCLI("rxc", "rxc lowers RX source to LLVM IR", false)
	cli.AddPrimaryArg("source", "source file path, `-` for stdin, or omit to read stdin", false)
	cli.AddFlag("use-test-input", "t", "read from the default test input path instead of stdin")
	cli.AddFlag("emit-llvm", "e", "accepted for compatibility; LLVM IR is always emitted")
	logLvlArg := cli.AddSelectorArg("loglevel", "ll", "the compiler log level", false, []string{"silent", "error", "warn", "verbose"})
	logLvlArg.SetDefaultValue("verbose")
	cli.AddFlag("swallow-errors", "s", "exit 0 even when IR generation fails, matching the legacy driver's behavior")

	result, err := olive.ParseArgs(cli, os.Args)
	if err != nil {
		report.PrintErrorMessage("CLI Usage Error", err)
		return 1
	}

	sourcePath, hasPrimary := result.PrimaryArg()
	useTestInput := result.HasFlag("use-test-input")

	source, err := readSource(sourcePath, hasPrimary, useTestInput)
	if err != nil {
		report.PrintErrorMessage("Input Error", err)
		return 1
	}

	profile, defaultLogLevel, err := LoadBuildConfig(".")
	if err != nil {
		report.PrintErrorMessage("Build Config Error", err)
		return 1
	}

	logLevel := defaultLogLevel
	if lvl, ok := result.Arguments["loglevel"]; ok {
		logLevel = lvl.(string)
	}
	report.Init(logLevelFromName(logLevel))

	stdout := io.Writer(os.Stdout)
	if hasPrimary && sourcePath != "-" {
		out, err := os.Create(deriveLLPath(sourcePath))
		if err != nil {
			report.PrintErrorMessage("Output Error", err)
			return 1
		}
		defer out.Close()
		stdout = out
	}

	opts := Options{
		Profile:       profile,
		LogLevel:      logLevel,
		SwallowErrors: result.HasFlag("swallow-errors"),
		StderrForStub: os.Stderr,
		Stdout:        stdout,
	}

	return Run(fe, source, opts)
}

// deriveLLPath computes the sibling .ll path a real file input writes its
// generated module to, matching original_source/src/main.cpp's debug output
// convention. Stdin input has no sibling path, so it always goes to stdout.
func deriveLLPath(sourcePath string) string {
	if dot := strings.LastIndexByte(sourcePath, '.'); dot >= 0 {
		return sourcePath[:dot] + ".ll"
	}
	return sourcePath + ".ll"
}

// readSource implements original_source/src/main.cpp's input strategy: a
// real path argument reads that file; "-" or no argument reads stdin;
// --use-test-input reads a fixed fallback path.
func readSource(sourcePath string, hasPrimary, useTestInput bool) (string, error) {
	switch {
	case hasPrimary && sourcePath != "-":
		buf, err := ioutil.ReadFile(sourcePath)
		return string(buf), err
	case hasPrimary && sourcePath == "-":
		buf, err := ioutil.ReadAll(os.Stdin)
		return string(buf), err
	case useTestInput:
		buf, err := ioutil.ReadFile(defaultTestInputPath)
		return string(buf), err
	default:
		buf, err := ioutil.ReadAll(os.Stdin)
		return string(buf), err
	}
}

func logLevelFromName(name string) int {
	switch name {
	case "silent":
		return report.LogLevelSilent
	case "error":
		return report.LogLevelError
	case "warn":
		return report.LogLevelWarning
	default:
		return report.LogLevelVerbose
	}
}

// Run parses source with fe and, on success, lowers it to LLVM IR,
// writing the module text to opts.Stdout and the builtin C stub (framed
// by generate.BuiltinStubMarker) to opts.StderrForStub.  It returns the
// process exit code, honoring the "swallow IR-generation failures" policy
// from the original driver when opts.SwallowErrors is set.
func Run(fe Frontend, source string, opts Options) int {
	prog, analyzer, err := fe.Parse(source)
	if err != nil {
		report.PrintErrorMessage("Parse Error", err)
		return 1
	}

	if !report.ShouldProceed() {
		return 1
	}

	report.BeginPhase("Generating")

	var genErr error
	var mod string
	func() {
		defer report.CatchErrors(&genErr)

		emitter := generate.NewModuleEmitter(analyzer, opts.Profile)
		llMod := emitter.Generate(prog)
		mod = llMod.String()
	}()

	report.EndPhase(genErr == nil)
	report.DisplaySummary(genErr == nil)

	if genErr != nil {
		if opts.SwallowErrors {
			return 0
		}
		return 1
	}

	io.WriteString(opts.Stdout, mod)
	io.WriteString(opts.StderrForStub, generate.BuiltinStub)

	return 0
}
