package cmd

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"lightbnb/auth"
	"lightbnb/models"
)

var (
	userEmail    string
	userID       int64
	userName     string
	userPassword string
)

var userCmd = &cobra.Command{
	Use:         "user",
	Short:       "Look up, register and verify users",
	Annotations: map[string]string{annotationDatabase: ""},
}

var userGetCmd = &cobra.Command{
	Use:   "get",
	Short: "Fetch a user by email or id",
	Example: `  lightbnb user get --email alice@example.com
  lightbnb user get --id 3`,
	RunE: runUserGet,
}

var userAddCmd = &cobra.Command{
	Use:   "add",
	Short: "Register a user with a bcrypt-hashed password",
	RunE:  runUserAdd,
}

var userVerifyCmd = &cobra.Command{
	Use:   "verify",
	Short: "Check an email and password pair",
	RunE:  runUserVerify,
}

func init() {
	rootCmd.AddCommand(userCmd)
	userCmd.AddCommand(userGetCmd, userAddCmd, userVerifyCmd)

	userGetCmd.Flags().StringVar(&userEmail, "email", "", "email address (case-insensitive)")
	userGetCmd.Flags().Int64Var(&userID, "id", 0, "user id")
	userGetCmd.MarkFlagsOneRequired("email", "id")
	userGetCmd.MarkFlagsMutuallyExclusive("email", "id")

	userAddCmd.Flags().StringVar(&userName, "name", "", "display name")
	userAddCmd.Flags().StringVar(&userEmail, "email", "", "email address")
	userAddCmd.Flags().StringVar(&userPassword, "password", "", "plain-text password, at least 8 characters")
	userAddCmd.MarkFlagRequired("name")
	userAddCmd.MarkFlagRequired("email")
	userAddCmd.MarkFlagRequired("password")

	userVerifyCmd.Flags().StringVar(&userEmail, "email", "", "email address")
	userVerifyCmd.Flags().StringVar(&userPassword, "password", "", "plain-text password")
	userVerifyCmd.MarkFlagRequired("email")
	userVerifyCmd.MarkFlagRequired("password")
}

func runUserGet(cmd *cobra.Command, _ []string) error {
	ctx := commandContext(cmd)

	var (
		u   *models.User
		err error
	)
	if cmd.Flags().Changed("email") {
		u, err = app.gateway.GetUserByEmail(ctx, userEmail)
	} else {
		u, err = app.gateway.GetUserByID(ctx, userID)
	}
	if err != nil {
		return err
	}
	if u == nil {
		app.log.Info().Msg("user not found")
	}
	return printJSON(cmd.OutOrStdout(), u)
}

func runUserAdd(cmd *cobra.Command, _ []string) error {
	a := auth.NewPasswordAuthenticator(app.gateway)
	u, err := a.Register(commandContext(cmd), userName, userEmail, userPassword)
	if err != nil {
		return err
	}
	return printJSON(cmd.OutOrStdout(), u)
}

func runUserVerify(cmd *cobra.Command, _ []string) error {
	a := auth.NewPasswordAuthenticator(app.gateway)
	u, err := a.Authenticate(commandContext(cmd), userEmail, userPassword)
	if errors.Is(err, auth.ErrInvalidCredentials) {
		app.log.Warn().Msg("login rejected")
		return fmt.Errorf("verify: %w", err)
	}
	if err != nil {
		return err
	}
	app.log.Info().Int64("user_id", u.ID).Msg("login accepted")
	return printJSON(cmd.OutOrStdout(), u)
}
