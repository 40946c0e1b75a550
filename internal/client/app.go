package client

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"net/url"
	"strings"
	"time"

	"github.com/MKhiriev/go-account-keeper/internal/adapter"
	"github.com/MKhiriev/go-account-keeper/internal/logger"
	"github.com/MKhiriev/go-account-keeper/internal/utils"
	"github.com/MKhiriev/go-account-keeper/models"
)

var (
	ErrUnknownCommand = errors.New("unknown command")
	ErrUsage          = errors.New("wrong arguments")
)

const usage = `usage: account-client <command> [arguments]

commands:
  register <username> <email> [password]   create an account, activation link is mailed
  confirm <link> | <kind> <code>           redeem an e-mailed confirmation link
  request-code <kind> <email>              mail a fresh code (kind: activate, delete, reset)
  reset-password <email>                   mail a generated password
  login <username> <password>              log in and remember the token
  logout                                   forget the token
  whoami                                   show the logged-in account
  status                                   show the remembered token's account id
  passwd <new-password>                    change the password, confirmed by e-mail
  delete                                   delete the account, confirmed by e-mail
  suspend -admin-token T [-username U] [-email E]
  version                                  show the server version
  interactive                              menu-driven register, login and confirm
`

type command func(ctx context.Context, args []string) error

type App struct {
	adapter adapter.AccountAdapter
	tokens  TokenStore
	out     io.Writer

	commands map[string]command
	logger   *logger.Logger
}

func NewApp(a adapter.AccountAdapter, tokens TokenStore, out io.Writer, logger *logger.Logger) *App {
	app := &App{adapter: a, tokens: tokens, out: out, logger: logger}
	app.commands = map[string]command{
		"register":       app.register,
		"confirm":        app.confirm,
		"request-code":   app.requestCode,
		"reset-password": app.resetPassword,
		"login":          app.login,
		"logout":         app.logout,
		"whoami":         app.whoami,
		"status":         app.status,
		"passwd":         app.passwd,
		"delete":         app.delete,
		"suspend":        app.suspend,
		"version":        app.version,
	}
	return app
}

func (a *App) Run(ctx context.Context, args []string) error {
	if len(args) == 0 || args[0] == "help" || args[0] == "-h" {
		fmt.Fprint(a.out, usage)
		return nil
	}

	cmd, ok := a.commands[args[0]]
	if !ok {
		fmt.Fprint(a.out, usage)
		return fmt.Errorf("%w: %q", ErrUnknownCommand, args[0])
	}

	token, err := a.tokens.Load()
	if err != nil {
		return err
	}
	a.adapter.SetToken(token)

	a.logger.Debug().Str("command", args[0]).Bool("token", token != "").Msg("running command")
	return cmd(ctx, args[1:])
}

func (a *App) register(ctx context.Context, args []string) error {
	if len(args) < 2 || len(args) > 3 {
		return fmt.Errorf("%w: register <username> <email> [password]", ErrUsage)
	}
	req := models.RegisterRequest{Username: args[0], Email: args[1]}
	if len(args) == 3 {
		req.Password = args[2]
	}

	acc, err := a.adapter.Register(ctx, req)
	if err != nil {
		return err
	}
	fmt.Fprintf(a.out, "account %q created (id %d), check %s for the activation link\n", acc.Username, acc.ID, acc.Email)
	return nil
}

func (a *App) confirm(ctx context.Context, args []string) error {
	var kind, code string
	switch len(args) {
	case 1:
		var err error
		if kind, code, err = ParseConfirmLink(args[0]); err != nil {
			return err
		}
	case 2:
		kind, code = args[0], args[1]
	default:
		return fmt.Errorf("%w: confirm <link> | <kind> <code>", ErrUsage)
	}

	acc, err := a.adapter.Confirm(ctx, kind, code)
	if err != nil {
		return err
	}
	fmt.Fprintf(a.out, "confirmed for %q\n", acc.Username)
	return nil
}

// ParseConfirmLink takes the kind and code from the last two path segments
// of an e-mailed link.
func ParseConfirmLink(link string) (string, string, error) {
	u, err := url.Parse(link)
	if err != nil {
		return "", "", fmt.Errorf("%w: %w", ErrUsage, err)
	}
	parts := strings.Split(strings.Trim(u.Path, "/"), "/")
	if len(parts) < 2 || parts[len(parts)-2] == "" || parts[len(parts)-1] == "" {
		return "", "", fmt.Errorf("%w: %q is not a confirmation link", ErrUsage, link)
	}
	return parts[len(parts)-2], parts[len(parts)-1], nil
}

func (a *App) requestCode(ctx context.Context, args []string) error {
	if len(args) != 2 {
		return fmt.Errorf("%w: request-code <kind> <email>", ErrUsage)
	}
	if err := a.adapter.RequestCode(ctx, args[0], args[1]); err != nil {
		return err
	}
	fmt.Fprintln(a.out, "if the address is registered, a new code is on its way")
	return nil
}

func (a *App) resetPassword(ctx context.Context, args []string) error {
	if len(args) != 1 {
		return fmt.Errorf("%w: reset-password <email>", ErrUsage)
	}
	if err := a.adapter.ResetPassword(ctx, args[0]); err != nil {
		return err
	}
	fmt.Fprintln(a.out, "if the address is registered, a new password is on its way")
	return nil
}

func (a *App) login(ctx context.Context, args []string) error {
	if len(args) != 2 {
		return fmt.Errorf("%w: login <username> <password>", ErrUsage)
	}

	acc, err := a.adapter.Login(ctx, models.LoginRequest{Username: args[0], Password: args[1]})
	if err != nil {
		return err
	}
	if err = a.tokens.Save(a.adapter.Token()); err != nil {
		return err
	}
	fmt.Fprintf(a.out, "logged in as %q\n", acc.Username)
	return nil
}

func (a *App) logout(_ context.Context, _ []string) error {
	if err := a.tokens.Clear(); err != nil {
		return err
	}
	a.adapter.SetToken("")
	fmt.Fprintln(a.out, "logged out")
	return nil
}

func (a *App) whoami(ctx context.Context, _ []string) error {
	acc, err := a.adapter.Me(ctx)
	if err != nil {
		return err
	}
	fmt.Fprintf(a.out, "id:         %d\nusername:   %s\ne-mail:     %s\nactive:     %t\nregistered: %s\n",
		acc.ID, acc.Username, acc.Email, acc.Active, acc.RegisteredAt.Format("2006-01-02 15:04:05"))
	return nil
}

// status inspects the remembered token without asking the server.
func (a *App) status(_ context.Context, _ []string) error {
	token := a.adapter.Token()
	if token == "" {
		fmt.Fprintln(a.out, "not logged in")
		return nil
	}
	info, err := utils.InspectJWT(token)
	if err != nil {
		return fmt.Errorf("remembered token is malformed: %w", err)
	}
	if info.Expired(time.Now()) {
		fmt.Fprintf(a.out, "session of account %d expired, log in again\n", info.AccountID)
		return nil
	}
	fmt.Fprintf(a.out, "logged in as account %d\n", info.AccountID)
	if !info.ExpiresAt.IsZero() {
		fmt.Fprintf(a.out, "token expires %s\n", info.ExpiresAt.Local().Format("2006-01-02 15:04:05"))
	}
	return nil
}

func (a *App) passwd(ctx context.Context, args []string) error {
	if len(args) != 1 {
		return fmt.Errorf("%w: passwd <new-password>", ErrUsage)
	}
	if err := a.adapter.ChangePassword(ctx, args[0]); err != nil {
		return err
	}
	fmt.Fprintln(a.out, "confirm the change with the link sent to your e-mail")
	return nil
}

func (a *App) delete(ctx context.Context, _ []string) error {
	if err := a.adapter.DeleteAccount(ctx); err != nil {
		return err
	}
	fmt.Fprintln(a.out, "confirm the deletion with the link sent to your e-mail")
	return nil
}

func (a *App) suspend(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("suspend", flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	adminToken := fs.String("admin-token", "", "administrative token")
	username := fs.String("username", "", "username")
	email := fs.String("email", "", "e-mail")
	if err := fs.Parse(args); err != nil {
		return fmt.Errorf("%w: %w", ErrUsage, err)
	}

	selector := models.Selector{Username: *username, Email: *email}
	if *adminToken == "" || selector.IsEmpty() {
		return fmt.Errorf("%w: suspend -admin-token T [-username U] [-email E]", ErrUsage)
	}

	n, err := a.adapter.Suspend(ctx, *adminToken, selector)
	if err != nil {
		return err
	}
	fmt.Fprintf(a.out, "%d account(s) suspended\n", n)
	return nil
}

func (a *App) version(ctx context.Context, _ []string) error {
	v, err := a.adapter.Version(ctx)
	if err != nil {
		return err
	}
	fmt.Fprintf(a.out, "server version: %s\n", v)
	return nil
}
