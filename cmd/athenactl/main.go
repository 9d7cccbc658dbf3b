// athenactl is a terminal client for the Athenaeum library-management
// service. It signs in against the auth API, keeps the session alive
// through the token lifecycle in the session package, and exposes the
// catalogue (books, categories, members, loans, dashboard) as commands.
package main

import (
	"fmt"
	"net/http"
	"os"

	"github.com/common-nighthawk/go-figure"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/athenaeum-hq/athenaeum-go/api"
	"github.com/athenaeum-hq/athenaeum-go/auth"
	"github.com/athenaeum-hq/athenaeum-go/credstore"
	"github.com/athenaeum-hq/athenaeum-go/internal/config"
	"github.com/athenaeum-hq/athenaeum-go/library"
	"github.com/athenaeum-hq/athenaeum-go/session"
)

func main() {
	// No .env file is fine; environment variables still apply.
	_ = godotenv.Load()

	if err := newRootCommand().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func newRootCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:           "athenactl",
		Short:         "Terminal client for the Athenaeum library-management service",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			figure.NewFigure(config.New().GetAppName(), "cybermedium", true).Print()
			fmt.Println()
			return cmd.Help()
		},
	}

	cmd.AddCommand(newLoginCommand())
	cmd.AddCommand(newLogoutCommand())
	cmd.AddCommand(newWhoamiCommand())
	cmd.AddCommand(newRegisterCommand())
	cmd.AddCommand(newProfileCommand())
	cmd.AddCommand(newPasswdCommand())
	cmd.AddCommand(newResetPasswordCommand())
	cmd.AddCommand(newSessionCommand())
	cmd.AddCommand(newBooksCommand())
	cmd.AddCommand(newCategoriesCommand())
	cmd.AddCommand(newMembersCommand())
	cmd.AddCommand(newLoansCommand())
	cmd.AddCommand(newDashboardCommand())
	return cmd
}

// app wires the SDK together the way any embedding application would:
// one auth client on a bare transport, one session controller owning the
// credential store, and a library client whose transport asks the
// controller for a fresh token before every call.
type app struct {
	cfg        config.Config
	logger     zerolog.Logger
	controller *session.Controller
	authClient *auth.Client
	libClient  *library.Client
}

func newApp() (*app, error) {
	cfg := config.New()
	fileCfg := loadFileConfig()

	baseURL := resolve(os.Getenv("ATHENAEUM_BASE_URL"), fileCfg.BaseURL, cfg.GetBaseURL())
	credentialsFile := resolve(os.Getenv("ATHENAEUM_CREDENTIALS_FILE"), fileCfg.CredentialsFile, cfg.GetCredentialsFile())
	logger := newLogger(resolve(os.Getenv("ATHENAEUM_LOG_LEVEL"), fileCfg.LogLevel, cfg.GetLogLevel()))

	apiClient, err := api.NewClient(baseURL,
		api.WithLogger(logger),
		api.WithTimeout(cfg.GetRequestTimeout()),
	)
	if err != nil {
		return nil, err
	}

	authClient, err := auth.NewClient(apiClient)
	if err != nil {
		return nil, err
	}

	store, err := credstore.NewFileStore(credentialsFile)
	if err != nil {
		return nil, err
	}

	controller, err := session.New(authClient, store,
		session.WithSkew(cfg.GetTokenSkew()),
		session.WithLogger(logger),
	)
	if err != nil {
		return nil, err
	}

	authedClient, err := api.NewClient(baseURL,
		api.WithLogger(logger),
		api.WithHTTPClient(&http.Client{
			Timeout:   cfg.GetRequestTimeout(),
			Transport: &api.BearerTransport{Source: controller},
		}),
	)
	if err != nil {
		return nil, err
	}

	libClient, err := library.NewClient(authedClient)
	if err != nil {
		return nil, err
	}

	return &app{
		cfg:        cfg,
		logger:     logger,
		controller: controller,
		authClient: authClient,
		libClient:  libClient,
	}, nil
}

// resume restores a persisted session; commands that need one call it
// before touching the API.
func (a *app) resume(cmd *cobra.Command) error {
	if err := a.controller.Start(cmd.Context()); err != nil {
		return fmt.Errorf("session could not be resumed, sign in again: %w", err)
	}
	if a.controller.State() != session.SignedIn {
		return session.ErrNotSignedIn
	}
	return nil
}

func newLogger(level string) zerolog.Logger {
	logLevel, err := zerolog.ParseLevel(level)
	if err != nil {
		logLevel = zerolog.InfoLevel
	}
	writer := zerolog.ConsoleWriter{Out: os.Stderr}
	return zerolog.New(writer).Level(logLevel).With().Timestamp().Logger()
}

func resolve(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
