package cli

import (
	"fmt"
	"os"

	"github.com/tallyware/tally/internal/style"
)

// Success prints a success message
func Success(message string) {
	fmt.Printf("%s %s\n", style.SuccessIcon(), message)
}

// Error prints an error message
func Error(message string) {
	fmt.Fprintf(os.Stderr, "%s %s\n", style.ErrorIcon(), message)
}

// Warning prints a warning message
func Warning(message string) {
	fmt.Printf("%s %s\n", style.WarningIcon(), message)
}

// Info prints an info message
func Info(message string) {
	fmt.Printf("%s %s\n", style.InfoIcon(), message)
}
