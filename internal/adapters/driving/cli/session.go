package cli

import (
	"github.com/spf13/cobra"
)

var sessionJSONOutput bool

var sessionCmd = &cobra.Command{
	Use:   "session",
	Short: "Inspect or reset the document session",
	RunE:  runSessionShow,
}

var sessionShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show the current session",
	RunE:  runSessionShow,
}

var sessionResetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Forget the current document session",
	Long: `Forgets the persisted session identifier so the next question is not
tied to the previous document. Upload a new document with "lexiverse analyze".`,
	RunE: runSessionReset,
}

func init() {
	sessionCmd.PersistentFlags().BoolVar(&sessionJSONOutput, "json", false, "output the session as JSON")
	sessionCmd.AddCommand(sessionShowCmd)
	sessionCmd.AddCommand(sessionResetCmd)
	rootCmd.AddCommand(sessionCmd)
}

func runSessionShow(cmd *cobra.Command, _ []string) error {
	svc, err := loadServices(cmd)
	if err != nil {
		return err
	}

	snap := svc.Session.Snapshot()
	if sessionJSONOutput {
		return printSessionJSON(cmd.OutOrStdout(), snap)
	}
	printSession(cmd.OutOrStdout(), snap, true)
	return nil
}

func runSessionReset(cmd *cobra.Command, _ []string) error {
	svc, err := loadServices(cmd)
	if err != nil {
		return err
	}

	if err := svc.Session.ResetSession(cmd.Context()); err != nil {
		return err
	}
	cmd.Println("Session reset. Upload a new document to continue.")
	return nil
}
