package main

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"fixbridge/internal/application/service"
	"fixbridge/internal/domain/entity"
	"fixbridge/internal/infrastructure/browser/htmlsnippet"
	"fixbridge/internal/infrastructure/prompts"
)

var (
	describeTag     string
	describeID      string
	describeClasses []string
	describeText    string
	describeHTML    string
	describeFix     string
)

var describeCmd = &cobra.Command{
	Use:   "describe",
	Short: "Describe an element without a browser",
	Long: `Prints the compact description of an element given by flags, or parsed from
an HTML snippet with --html ("-" reads stdin). With --fix the full prompt
is printed instead.`,
	Example: `  fixbridge describe --tag DIV --class card --class active --id main --text Hello
  fixbridge describe --html '<button class="btn">Buy</button>' --fix "Make it blue"`,
	Args: cobra.NoArgs,
	RunE: runDescribe,
}

func init() {
	f := describeCmd.Flags()
	f.StringVar(&describeTag, "tag", "", "tag name")
	f.StringVar(&describeID, "id", "", "element id")
	f.StringArrayVar(&describeClasses, "class", nil, "class name, repeatable")
	f.StringVar(&describeText, "text", "", "text content")
	f.StringVar(&describeHTML, "html", "", "HTML snippet to parse instead of flags")
	f.StringVar(&describeFix, "fix", "", "fix request; prints the formatted prompt")
}

func runDescribe(cmd *cobra.Command, args []string) error {
	el, err := describeElement(cmd.InOrStdin())
	if err != nil {
		return err
	}

	out := service.Describe(*el)
	if describeFix != "" {
		out, err = prompts.FormatFixPrompt(out, describeFix)
		if err != nil {
			return err
		}
	}

	fmt.Fprintln(cmd.OutOrStdout(), out)
	return nil
}

func describeElement(stdin io.Reader) (*entity.ElementDescriptor, error) {
	if describeHTML == "" {
		if describeTag == "" {
			return nil, entity.NewInvalidRequest("describe", "--tag or --html is required")
		}
		return &entity.ElementDescriptor{
			TagName:     describeTag,
			ID:          describeID,
			ClassList:   describeClasses,
			TextContent: describeText,
		}, nil
	}

	snippet := describeHTML
	if snippet == "-" {
		data, err := io.ReadAll(stdin)
		if err != nil {
			return nil, fmt.Errorf("read stdin: %w", err)
		}
		snippet = string(data)
	}
	el, err := htmlsnippet.FromHTML(snippet)
	if err != nil {
		return nil, entity.NewInvalidRequest("describe", "%v", err)
	}
	return el, nil
}
