package console

import (
	"context"
	"errors"
	"io"

	"github.com/rs/zerolog"

	"github.com/contactdesk/contactdesk/internal/core/ports"
)

// App runs the login loop and hands authenticated principals a Session.
type App struct {
	auth     ports.AuthService
	contacts ports.ContactService
	users    ports.UserService

	ui     *UI
	prompt *Prompter
	logger zerolog.Logger
}

func NewApp(auth ports.AuthService, contacts ports.ContactService, users ports.UserService, ui *UI, prompt *Prompter, logger zerolog.Logger) *App {
	return &App{
		auth:     auth,
		contacts: contacts,
		users:    users,
		ui:       ui,
		prompt:   prompt,
		logger:   logger,
	}
}

// Run loops on the login screen until the operator exits. Each successful
// login gets a fresh Session; its undo ledgers are cleared when it ends.
func (a *App) Run(ctx context.Context) error {
	for {
		a.ui.LoginBox()

		username, err := a.prompt.Line("Username (0 to exit)")
		if err != nil {
			if errors.Is(err, io.EOF) {
				return nil
			}
			return err
		}
		if username == "0" || username == "exit" {
			a.ui.Println("Goodbye.")
			return nil
		}

		password, err := a.prompt.Password("Password")
		if err != nil {
			if errors.Is(err, io.EOF) {
				return nil
			}
			return err
		}

		principal, err := a.auth.Login(ctx, username, password)
		if err != nil {
			a.ui.Error("Invalid username or password.")
			a.logger.Warn().Str("username", username).Msg("login rejected")
			continue
		}

		a.logger.Info().
			Int64("user_id", principal.ID).
			Str("role", string(principal.Role)).
			Msg("login accepted")
		a.ui.Info("Welcome, " + principal.FirstName + " " + principal.LastName + "!")

		sess := &Session{
			principal: principal,
			caps:      principal.Role.Capabilities(),
			auth:      a.auth,
			contacts:  a.contacts,
			users:     a.users,
			ui:        a.ui,
			prompt:    a.prompt,
			logger:    a.logger.With().Int64("user_id", principal.ID).Logger(),
		}
		if err := sess.Run(ctx); err != nil {
			if errors.Is(err, io.EOF) {
				return nil
			}
			return err
		}
	}
}
