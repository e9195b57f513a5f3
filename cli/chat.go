package cli

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"healthcare-assistant-backend/database"
	"healthcare-assistant-backend/models"
	"healthcare-assistant-backend/services"
)

const chatBanner = `Healthcare Assistant
General health information only, not medical advice.
Call 911 for medical emergencies.
Type /history to review this session or /quit to leave.
`

var chatCmd = &cobra.Command{
	Use:   "chat",
	Short: "Start an interactive chat session in the terminal",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		svc, err := newTerminalService()
		if err != nil {
			return err
		}
		return runChat(cmd.Context(), svc, cmd.InOrStdin(), cmd.OutOrStdout())
	},
}

var askCmd = &cobra.Command{
	Use:   "ask <question>",
	Short: "Answer one question and print the result as JSON",
	Example: `  healthbot ask "how much water should I drink"
  healthbot ask I have a fever`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		query := strings.Join(args, " ")
		if strings.TrimSpace(query) == "" {
			return services.ErrEmptyMessage
		}

		svc, err := newTerminalService()
		if err != nil {
			return err
		}

		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")
		enc.SetEscapeHTML(false)
		return enc.Encode(svc.ProcessQuery(query))
	},
}

var topicsCmd = &cobra.Command{
	Use:   "topics",
	Short: "List the knowledge base topics",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		svc, err := newTerminalService()
		if err != nil {
			return err
		}
		return printTopics(cmd.OutOrStdout(), svc.Topics())
	},
}

func init() {
	rootCmd.AddCommand(chatCmd)
	rootCmd.AddCommand(askCmd)
	rootCmd.AddCommand(topicsCmd)
}

// newTerminalService builds a chat service whose history lives only as long
// as the process.
func newTerminalService() (*services.ChatbotService, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}

	router, err := newQueryRouter(cfg)
	if err != nil {
		return nil, err
	}

	store := database.NewMemoryStore(cfg.Database.HistoryTTL, cfg.Database.HistoryMaxMessages)
	return services.NewChatbotService(router, store), nil
}

// runChat reads one query per line until /quit or end of input.
func runChat(ctx context.Context, svc *services.ChatbotService, in io.Reader, out io.Writer) error {
	if ctx == nil {
		ctx = context.Background()
	}
	sessionID := services.NewSessionID()

	fmt.Fprint(out, chatBanner)

	scanner := bufio.NewScanner(in)
	for {
		fmt.Fprint(out, "You: ")
		if !scanner.Scan() {
			fmt.Fprintln(out)
			return scanner.Err()
		}

		line := strings.TrimSpace(scanner.Text())
		switch line {
		case "":
			continue
		case "/quit", "/exit":
			fmt.Fprintln(out, "Take care!")
			return nil
		case "/history":
			if err := printHistory(ctx, svc, sessionID, out); err != nil {
				return err
			}
			continue
		}

		resp, err := svc.ProcessMessage(ctx, models.ChatRequest{
			Message:   line,
			SessionID: sessionID,
			Channel:   models.ChannelTerminal,
		})
		if err != nil {
			return err
		}
		fmt.Fprintf(out, "Assistant: %s\n\n", resp.Response)
	}
}

func printHistory(ctx context.Context, svc *services.ChatbotService, sessionID string, out io.Writer) error {
	history, err := svc.GetChatHistory(ctx, sessionID, 0)
	if err != nil {
		return fmt.Errorf("failed to read history: %w", err)
	}
	if len(history) == 0 {
		fmt.Fprintln(out, "No messages yet.")
		return nil
	}

	for _, m := range history {
		fmt.Fprintf(out, "[%s] You: %s\n", m.Timestamp.Format(time.Kitchen), m.UserMessage)
		fmt.Fprintf(out, "[%s] Assistant (%s): %s\n", m.Timestamp.Format(time.Kitchen), m.Type, m.BotResponse)
	}
	fmt.Fprintln(out)
	return nil
}

func printTopics(out io.Writer, topics []models.TopicInfo) error {
	tw := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "CATEGORY\tTOPIC\tKEYWORDS")
	for _, t := range topics {
		fmt.Fprintf(tw, "%s\t%s\t%s\n", t.Category, t.Topic, strings.Join(t.Keywords, ", "))
	}
	return tw.Flush()
}
