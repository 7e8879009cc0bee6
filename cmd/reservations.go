package cmd

import (
	"github.com/spf13/cobra"
)

var (
	guestID          int64
	reservationLimit int
)

var reservationsCmd = &cobra.Command{
	Use:         "reservations",
	Short:       "List a guest's reservations, most recent first",
	Example:     `  lightbnb reservations --guest 1 --limit 5`,
	RunE:        runReservations,
	Annotations: map[string]string{annotationDatabase: ""},
}

func init() {
	rootCmd.AddCommand(reservationsCmd)

	reservationsCmd.Flags().Int64Var(&guestID, "guest", 0, "guest user id")
	reservationsCmd.Flags().IntVar(&reservationLimit, "limit", 10, "maximum number of reservations")
	reservationsCmd.MarkFlagRequired("guest")
}

func runReservations(cmd *cobra.Command, _ []string) error {
	rs, err := app.gateway.GetReservationsForGuest(commandContext(cmd), guestID, reservationLimit)
	if err != nil {
		return err
	}
	return printJSON(cmd.OutOrStdout(), rs)
}
