package main

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"fixbridge/internal/domain/entity"
)

var (
	fixSend bool
	fixYes  bool
)

var fixCmd = &cobra.Command{
	Use:   "fix <request>",
	Short: "Send the last captured element with a fix request",
	Long: `Posts the last captured element and the fix text to the running endpoint and
prints the formatted prompt. With --send the prompt is forwarded to the
configured assistant (ASSISTANT_API_KEY, ASSISTANT_MODEL).`,
	Args: cobra.MinimumNArgs(1),
	RunE: runFix,
}

func init() {
	fixCmd.Flags().BoolVar(&fixSend, "send", false, "forward the prompt to the assistant")
	fixCmd.Flags().BoolVarP(&fixYes, "yes", "y", false, "do not ask before sending")
}

func runFix(cmd *cobra.Command, args []string) error {
	c, err := newContainer(cmd)
	if err != nil {
		return err
	}
	defer c.Close()

	ctx := cmd.Context()

	captured, ok, err := c.Elements.Load()
	if err != nil {
		return fmt.Errorf("load captured element: %w", err)
	}
	if !ok {
		c.Console.ShowElement(ctx, nil)
		return errors.New("nothing captured yet, run \"fixbridge watch <url>\" first")
	}
	c.Console.ShowElement(ctx, &captured)

	client := newFixClient(c.Config.EndpointURL())
	result, err := client.Fix(ctx, entity.FixRequest{
		Element: &captured.Element,
		Fix:     strings.Join(args, " "),
	})
	if err != nil {
		c.Console.ShowStatus(ctx, err.Error(), true)
		return err
	}

	c.Console.ShowStatus(ctx, result.Message, false)
	c.Console.ShowPrompt(ctx, result.FormattedPrompt)

	if !fixSend {
		return nil
	}

	assistant := c.Assistant()
	if assistant == nil {
		return errors.New("assistant not configured, set ASSISTANT_API_KEY and ASSISTANT_MODEL")
	}
	if !fixYes {
		confirmed, err := c.Console.Confirm(ctx, "Send this prompt to "+c.Config.AssistantModel+"?")
		if err != nil || !confirmed {
			return err
		}
	}

	reply, err := assistant.Ask(ctx, result.FormattedPrompt)
	if err != nil {
		return fmt.Errorf("ask assistant: %w", err)
	}
	c.Console.ShowPrompt(ctx, reply)
	return nil
}

type fixClient struct {
	url  string
	http *http.Client
}

func newFixClient(url string) *fixClient {
	return &fixClient{
		url:  url,
		http: &http.Client{Timeout: 10 * time.Second},
	}
}

func (f *fixClient) Fix(ctx context.Context, req entity.FixRequest) (*entity.FixResult, error) {
	body, err := json.Marshal(req)
	if err != nil {
		return nil, fmt.Errorf("encode request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, f.url, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := f.http.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("endpoint unreachable, is \"fixbridge serve\" running? %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		var apiErr struct {
			Error   string `json:"error"`
			Message string `json:"message"`
		}
		_ = json.NewDecoder(resp.Body).Decode(&apiErr)
		return nil, fmt.Errorf("endpoint returned %s: %s", resp.Status, apiErr.Message)
	}

	var result entity.FixResult
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, fmt.Errorf("decode response: %w", err)
	}
	return &result, nil
}
