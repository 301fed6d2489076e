package cli

import (
	"errors"
	"strings"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/lexiverse-cli/internal/core/domain"
)

var askCmd = &cobra.Command{
	Use:   "ask [question]",
	Short: "Ask a question about the current document",
	Long: `Asks the document assistant a question about the most recently analysed
document. The session is remembered between runs, so "lexiverse analyze"
only needs to run once per document.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runAsk,
}

func init() {
	rootCmd.AddCommand(askCmd)
}

func runAsk(cmd *cobra.Command, args []string) error {
	svc, err := loadServices(cmd)
	if err != nil {
		return err
	}

	printer := &replyPrinter{w: cmd.OutOrStdout()}
	printer.attach(svc.Chat)
	printer.begin()

	msg, err := svc.Chat.SubmitMessage(cmd.Context(), strings.Join(args, " "))
	printer.end(msg)

	if errors.Is(err, domain.ErrNoActiveSession) {
		return errors.New(`no document session: run "lexiverse analyze <file>" first`)
	}
	return err
}
