package report

import (
	"fmt"

	"github.com/pterm/pterm"
)

// Color styles mirrored from chai/src/logging/display.go: one foreground
// color and one inverted background style per message class.
var (
	successColorFG = pterm.FgLightGreen
	successStyleBG = pterm.NewStyle(pterm.BgLightGreen, pterm.FgBlack)
	warnColorFG    = pterm.FgYellow
	warnStyleBG    = pterm.NewStyle(pterm.BgYellow, pterm.FgBlack)
	errorColorFG   = pterm.FgRed
	errorStyleBG   = pterm.NewStyle(pterm.BgRed, pterm.FgWhite)
	infoColorFG    = successColorFG
)

// PrintErrorMessage prints a tagged Go error to the console.
func PrintErrorMessage(tag string, err error) {
	errorStyleBG.Print(tag)
	errorColorFG.Println(" " + err.Error())
}

// PrintInfoMessage prints a tagged informational message to the console.
func PrintInfoMessage(tag, msg string) {
	successStyleBG.Print(tag)
	infoColorFG.Println(" " + msg)
}

func displayCompileError(span *TextSpan, msg string) {
	errorStyleBG.Print("Compile Error")
	fmt.Print(" ")
	if span != nil {
		infoColorFG.Print(span.String())
		fmt.Print(": ")
	}
	fmt.Println(msg)
}

func displayWarning(span *TextSpan, msg string) {
	warnStyleBG.Print("Warning")
	fmt.Print(" ")
	if span != nil {
		infoColorFG.Print(span.String())
		fmt.Print(": ")
	}
	fmt.Println(msg)
}

func displayICE(msg string) {
	errorStyleBG.Print("Internal Compiler Error")
	errorColorFG.Println(" " + msg)
	infoColorFG.Println("This is a bug in the generator, not in the input program.")
}

func displayFatal(msg string) {
	errorStyleBG.Print("Fatal Error")
	errorColorFG.Println(" " + msg)
}

// phaseSpinner tracks the spinner for the currently running compilation
// phase, mirroring chai/src/logging/display.go's begin/end phase pair.
var phaseSpinner *pterm.SpinnerPrinter
var currentPhase string

// BeginPhase starts a named phase spinner (e.g. "Generating", "Linking").
func BeginPhase(phase string) {
	currentPhase = phase
	phaseSpinner = pterm.DefaultSpinner.WithStyle(pterm.NewStyle(infoColorFG))
	phaseSpinner.Start(phase + "...")
}

// EndPhase stops the current phase spinner, reporting success or failure.
func EndPhase(success bool) {
	if phaseSpinner == nil {
		return
	}

	if success {
		phaseSpinner.Success(currentPhase)
	} else {
		phaseSpinner.Fail(currentPhase)
	}

	phaseSpinner = nil
}

// DisplaySummary prints the closing "N errors, M warnings" line, mirroring
// chai/src/logging/display.go's displayCompilationFinished.
func DisplaySummary(success bool) {
	rep.m.Lock()
	errCount, warnCount := 0, rep.warnings
	if rep.isErr {
		errCount = 1
	}
	rep.m.Unlock()

	fmt.Print("\n")
	if success {
		successColorFG.Print("done. ")
	} else {
		errorColorFG.Print("failed. ")
	}

	fmt.Printf("(%d error(s), %d warning(s))\n", errCount, warnCount)
}
