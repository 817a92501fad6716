package userinteraction

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"fixbridge/internal/application/port/output"
	"fixbridge/internal/application/service"
	"fixbridge/internal/domain/entity"

	"github.com/fatih/color"
)

var _ output.UserInteractionPort = (*ConsoleUserInteraction)(nil)

type ConsoleUserInteraction struct {
	reader *bufio.Reader
	out    io.Writer
}

func NewConsoleUserInteraction() *ConsoleUserInteraction {
	return NewConsoleUserInteractionWithIO(os.Stdin, color.Output)
}

func NewConsoleUserInteractionWithIO(in io.Reader, out io.Writer) *ConsoleUserInteraction {
	return &ConsoleUserInteraction{
		reader: bufio.NewReader(in),
		out:    out,
	}
}

// ShowElement prints the preview of the last captured element, or a hint when
// nothing has been captured yet.
func (u *ConsoleUserInteraction) ShowElement(ctx context.Context, captured *entity.CapturedElement) {
	if captured == nil {
		dim := color.New(color.Faint)
		dim.Fprintln(u.out, "No element selected. Right-click an element on the page first.")
		return
	}

	cyan := color.New(color.FgCyan, color.Bold)
	cyan.Fprintf(u.out, "\n━━━ Selected element (%.0f, %.0f) ━━━\n", captured.Position.X, captured.Position.Y)

	fmt.Fprintln(u.out, service.Preview(captured.Element))
}

func (u *ConsoleUserInteraction) ShowPrompt(ctx context.Context, prompt string) {
	yellow := color.New(color.FgYellow, color.Bold)
	yellow.Fprintln(u.out, "\n📝 Prompt:")

	dim := color.New(color.Faint)
	for _, line := range strings.Split(prompt, "\n") {
		dim.Fprintf(u.out, "   %s\n", line)
	}
}

func (u *ConsoleUserInteraction) ShowStatus(ctx context.Context, status string, isError bool) {
	if isError {
		red := color.New(color.FgRed)
		red.Fprint(u.out, "❌ Error: ")
		fmt.Fprintln(u.out, status)
		return
	}

	green := color.New(color.FgGreen)
	green.Fprintf(u.out, "✓ %s\n", status)
}

// Confirm asks a yes/no question; anything but y/yes is a no.
func (u *ConsoleUserInteraction) Confirm(ctx context.Context, question string) (bool, error) {
	fmt.Fprintf(u.out, "\n%s [y/N] ", question)

	answer, err := u.reader.ReadString('\n')
	if err != nil && answer == "" {
		return false, fmt.Errorf("failed to read user input: %w", err)
	}

	switch strings.ToLower(strings.TrimSpace(answer)) {
	case "y", "yes":
		return true, nil
	}
	return false, nil
}
