package main

import (
	"bufio"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/athenaeum-hq/athenaeum-go/api"
	"github.com/athenaeum-hq/athenaeum-go/auth"
	"github.com/athenaeum-hq/athenaeum-go/session"
)

func newLoginCommand() *cobra.Command {
	var username, password string

	cmd := &cobra.Command{
		Use:   "login",
		Short: "Sign in and persist the session",
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := newApp()
			if err != nil {
				return err
			}
			if password == "" {
				password = promptLine("Password: ")
			}
			if err := app.controller.SignIn(cmd.Context(), username, password); err != nil {
				return err
			}
			current, _ := app.controller.CurrentSession()
			fmt.Printf("Signed in as %s\n", current.Username)
			return nil
		},
	}

	cmd.Flags().StringVar(&username, "username", "", "Account username")
	cmd.Flags().StringVar(&password, "password", "", "Account password (prompted when omitted)")
	_ = cmd.MarkFlagRequired("username")
	return cmd
}

func newLogoutCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Sign out and clear stored credentials",
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := newApp()
			if err != nil {
				return err
			}
			if err := app.controller.SignOut(cmd.Context()); err != nil {
				return err
			}
			fmt.Println("Signed out")
			return nil
		},
	}
}

func newWhoamiCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "whoami",
		Short: "Show the signed-in user",
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := newApp()
			if err != nil {
				return err
			}
			if err := app.resume(cmd); err != nil {
				return err
			}
			user, err := app.controller.RefreshProfile(cmd.Context())
			if err != nil {
				return err
			}
			fmt.Printf("%s (%s %s) <%s>\n", user.Username, user.FirstName, user.LastName, user.Email)
			return nil
		},
	}
}

func newRegisterCommand() *cobra.Command {
	var params auth.SignUpParams

	cmd := &cobra.Command{
		Use:   "register",
		Short: "Create a new account",
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := newApp()
			if err != nil {
				return err
			}
			if params.Password == "" {
				params.Password = promptLine("Password: ")
				params.PasswordConfirm = promptLine("Confirm password: ")
			}
			user, err := app.authClient.SignUp(cmd.Context(), params)
			if err != nil {
				printFieldErrors(err)
				return err
			}
			fmt.Printf("Account %s created, sign in with 'athenactl login'\n", user.Username)
			return nil
		},
	}

	cmd.Flags().StringVar(&params.Username, "username", "", "Username")
	cmd.Flags().StringVar(&params.FirstName, "first-name", "", "First name")
	cmd.Flags().StringVar(&params.LastName, "last-name", "", "Last name")
	cmd.Flags().StringVar(&params.Email, "email", "", "Email address")
	cmd.Flags().StringVar(&params.Password, "password", "", "Password (prompted when omitted)")
	_ = cmd.MarkFlagRequired("username")
	_ = cmd.MarkFlagRequired("email")
	return cmd
}

func newProfileCommand() *cobra.Command {
	var params auth.ProfileParams

	cmd := &cobra.Command{
		Use:   "profile",
		Short: "Update the signed-in user's profile",
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := newApp()
			if err != nil {
				return err
			}
			if err := app.resume(cmd); err != nil {
				return err
			}

			// Unset flags keep their current values.
			current, _ := app.controller.CurrentSession()
			if params.Username == "" {
				params.Username = current.Username
			}
			if params.Email == "" {
				params.Email = current.Email
			}
			if params.FirstName == "" {
				params.FirstName = current.FirstName
			}
			if params.LastName == "" {
				params.LastName = current.LastName
			}

			user, err := app.controller.UpdateProfile(cmd.Context(), params)
			if err != nil {
				printFieldErrors(err)
				return err
			}
			fmt.Printf("Profile updated: %s <%s>\n", user.Username, user.Email)
			return nil
		},
	}

	cmd.Flags().StringVar(&params.Username, "username", "", "New username")
	cmd.Flags().StringVar(&params.Email, "email", "", "New email address")
	cmd.Flags().StringVar(&params.FirstName, "first-name", "", "New first name")
	cmd.Flags().StringVar(&params.LastName, "last-name", "", "New last name")
	return cmd
}

func newPasswdCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "passwd",
		Short: "Change the signed-in user's password",
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := newApp()
			if err != nil {
				return err
			}
			if err := app.resume(cmd); err != nil {
				return err
			}
			params := auth.ChangePasswordParams{
				OldPassword:     promptLine("Current password: "),
				NewPassword:     promptLine("New password: "),
				ConfirmPassword: promptLine("Confirm new password: "),
			}
			if err := app.controller.UpdatePassword(cmd.Context(), params); err != nil {
				printFieldErrors(err)
				return err
			}
			fmt.Println("Password updated")
			return nil
		},
	}
}

func newResetPasswordCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "reset-password",
		Short: "Password reset via emailed one-time password",
	}

	var email string
	request := &cobra.Command{
		Use:   "request",
		Short: "Email a one-time password to the account address",
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := newApp()
			if err != nil {
				return err
			}
			if err := app.authClient.RequestPasswordReset(cmd.Context(), email); err != nil {
				printFieldErrors(err)
				return err
			}
			fmt.Println("OTP sent, confirm with 'athenactl reset-password confirm'")
			return nil
		},
	}
	request.Flags().StringVar(&email, "email", "", "Account email address")
	_ = request.MarkFlagRequired("email")

	var params auth.ResetConfirmParams
	confirm := &cobra.Command{
		Use:   "confirm",
		Short: "Set a new password using the emailed OTP",
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := newApp()
			if err != nil {
				return err
			}
			if params.NewPassword == "" {
				params.NewPassword = promptLine("New password: ")
				params.ConfirmPassword = promptLine("Confirm new password: ")
			}
			if err := app.authClient.ConfirmPasswordReset(cmd.Context(), params); err != nil {
				printFieldErrors(err)
				return err
			}
			fmt.Println("Password reset, sign in with your new password")
			return nil
		},
	}
	confirm.Flags().StringVar(&params.Email, "email", "", "Account email address")
	confirm.Flags().StringVar(&params.OTP, "otp", "", "One-time password from the reset email")
	_ = confirm.MarkFlagRequired("email")
	_ = confirm.MarkFlagRequired("otp")

	cmd.AddCommand(request)
	cmd.AddCommand(confirm)
	return cmd
}

func newSessionCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "session",
		Short: "Inspect and maintain the stored session",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "status",
		Short: "Show the session state",
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := newApp()
			if err != nil {
				return err
			}
			if err := app.controller.Start(cmd.Context()); err != nil {
				fmt.Println("signed-out")
				return nil
			}
			fmt.Println(app.controller.State())
			if current, ok := app.controller.CurrentSession(); ok {
				fmt.Printf("user: %s, access token expires %s\n", current.Username, current.ExpiresAt.Format("15:04:05"))
			}
			return nil
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "keep-alive",
		Short: "Hold the session open, renewing it in the background until interrupted",
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := newApp()
			if err != nil {
				return err
			}
			if err := app.resume(cmd); err != nil {
				return err
			}

			renewer, err := session.NewRenewer(app.controller,
				session.WithInterval(app.cfg.GetRenewInterval()),
				session.WithRenewerLogger(app.logger),
			)
			if err != nil {
				return err
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			fmt.Printf("Renewing every %s, Ctrl-C to stop\n", app.cfg.GetRenewInterval())
			renewer.Run(ctx)
			return nil
		},
	})

	return cmd
}

func promptLine(prompt string) string {
	fmt.Print(prompt)
	reader := bufio.NewReader(os.Stdin)
	line, _ := reader.ReadString('\n')
	return strings.TrimSpace(line)
}

func printFieldErrors(err error) {
	for field, messages := range api.FieldErrors(err) {
		for _, message := range messages {
			fmt.Fprintf(os.Stderr, "  %s: %s\n", field, message)
		}
	}
}
