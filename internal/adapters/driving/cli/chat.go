package cli

import (
	"bufio"
	"errors"
	"strings"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/lexiverse-cli/internal/core/domain"
)

var chatCmd = &cobra.Command{
	Use:   "chat",
	Short: "Chat about the current document",
	Long: `Starts an interactive chat about the current document.

Commands:
  /upload <file>  Analyse a new document
  /summary        Show the current summary
  /reset          Forget the current session
  /quit           Exit`,
	Args: cobra.NoArgs,
	RunE: runChat,
}

func init() {
	rootCmd.AddCommand(chatCmd)
}

func runChat(cmd *cobra.Command, _ []string) error {
	svc, err := loadServices(cmd)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	printer := &replyPrinter{w: out}
	printer.attach(svc.Chat)

	if msgs := svc.Chat.Messages(); len(msgs) > 0 {
		cmd.Println(mutedColor.Sprint(msgs[0].Text))
	}
	if snap := svc.Session.Snapshot(); snap.CanChat() {
		cmd.Println(mutedColor.Sprint(snap.Summary))
	}

	scanner := bufio.NewScanner(cmd.InOrStdin())
	for {
		cmd.Print("> ")
		if !scanner.Scan() {
			cmd.Println()
			return scanner.Err()
		}
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}

		if strings.HasPrefix(line, "/") {
			quit, err := runChatCommand(cmd, svc, line)
			if err != nil {
				cmd.PrintErrln(errorColor.Sprint("Error: "), err)
			}
			if quit {
				return nil
			}
			continue
		}

		printer.begin()
		msg, err := svc.Chat.SubmitMessage(cmd.Context(), line)
		printer.end(msg)
		// Backend failures are already shown as the settled reply.
		if errors.Is(err, domain.ErrNoActiveSession) {
			cmd.Println(mutedColor.Sprint(`Use "/upload <file>" to analyse a document.`))
		}
		if cmd.Context().Err() != nil {
			return nil
		}
	}
}

// runChatCommand handles a slash command and reports whether to exit.
func runChatCommand(cmd *cobra.Command, svc *Services, line string) (bool, error) {
	name, arg, _ := strings.Cut(line, " ")
	arg = strings.TrimSpace(arg)

	switch name {
	case "/quit", "/exit":
		return true, nil

	case "/reset":
		if err := svc.Session.ResetSession(cmd.Context()); err != nil {
			return false, err
		}
		cmd.Println("Session reset.")
		return false, nil

	case "/summary":
		printSession(cmd.OutOrStdout(), svc.Session.Snapshot(), false)
		return false, nil

	case "/upload":
		if arg == "" {
			return false, errors.New("usage: /upload <file>")
		}
		doc, err := readDocument(arg, false)
		if err != nil {
			return false, err
		}
		cmd.Println(mutedColor.Sprintf("Analysing %s... this usually takes 20-30 seconds.", doc.FileName))
		if err := svc.Session.StartUpload(cmd.Context(), doc); err != nil {
			return false, err
		}
		printSession(cmd.OutOrStdout(), svc.Session.Snapshot(), false)
		return false, nil

	default:
		return false, errors.New("unknown command " + name)
	}
}
