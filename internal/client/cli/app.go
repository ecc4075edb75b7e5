// Package cli implements the interactive idmctl shell: a small REPL over the
// identity service's HTTP API for operators to exercise registration, login,
// token refresh, and access-token checks.
package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/filmstack/idm/internal/client/api"
	"github.com/filmstack/idm/internal/common"
)

// identityAPI is the subset of api.Client the shell uses; tests provide stubs.
type identityAPI interface {
	Register(ctx context.Context, email, password string) (*api.Response, error)
	Login(ctx context.Context, email, password string) (*api.Response, error)
	Refresh(ctx context.Context, refreshToken string) (*api.Response, error)
	Authenticate(ctx context.Context, accessToken string) (*api.Response, error)
}

// App holds the shell's session state: the token pair from the last login or
// refresh.
type App struct {
	client identityAPI
	in     *bufio.Reader
	out    io.Writer

	email        string
	accessToken  string
	refreshToken string
}

func NewApp(client identityAPI) *App {
	return &App{client: client, in: bufio.NewReader(os.Stdin), out: os.Stdout}
}

func (a *App) isLoggedIn() bool {
	return a.refreshToken != ""
}

// readCredentials prompts for email and password. The password is read
// without echo and wiped after use by the callers.
func (a *App) readCredentials() (string, []byte, error) {
	email, err := GetSimpleText(a.in, "Enter email:", a.out)
	if err != nil {
		return "", nil, err
	}
	pass, err := GetPassword(a.out)
	if err != nil {
		return "", nil, err
	}
	return email, pass, nil
}

func (a *App) Register(ctx context.Context) error {
	email, pass, err := a.readCredentials()
	if err != nil {
		return err
	}
	defer common.WipeByteArray(pass)

	resp, err := a.client.Register(ctx, email, string(pass))
	if err != nil {
		return a.reportError(err)
	}
	fmt.Fprintln(a.out, resp.Result.Message)
	return nil
}

func (a *App) Login(ctx context.Context) error {
	email, pass, err := a.readCredentials()
	if err != nil {
		return err
	}
	defer common.WipeByteArray(pass)

	resp, err := a.client.Login(ctx, email, string(pass))
	if err != nil {
		return a.reportError(err)
	}

	a.email = email
	a.accessToken = resp.AccessToken
	a.refreshToken = resp.RefreshToken
	fmt.Fprintln(a.out, resp.Result.Message)
	return nil
}

// Refresh renews the session and always adopts the returned refresh token,
// which differs from the stored one after a server-side rotation.
func (a *App) Refresh(ctx context.Context) error {
	if !a.isLoggedIn() {
		fmt.Fprintln(a.out, "Not logged in")
		return nil
	}

	resp, err := a.client.Refresh(ctx, a.refreshToken)
	if err != nil {
		a.clearSession()
		return a.reportError(err)
	}

	rotated := resp.RefreshToken != a.refreshToken
	a.accessToken = resp.AccessToken
	a.refreshToken = resp.RefreshToken

	if rotated {
		fmt.Fprintln(a.out, "Session renewed (refresh token rotated)")
	} else {
		fmt.Fprintln(a.out, "Session renewed")
	}
	return nil
}

// Check verifies the stored access token against the server.
func (a *App) Check(ctx context.Context) error {
	if a.accessToken == "" {
		fmt.Fprintln(a.out, "No access token, login first")
		return nil
	}

	resp, err := a.client.Authenticate(ctx, a.accessToken)
	if err != nil {
		return a.reportError(err)
	}
	fmt.Fprintln(a.out, resp.Result.Message)
	return nil
}

func (a *App) Status(ctx context.Context) error {
	if a.isLoggedIn() {
		fmt.Fprintf(a.out, "Logged in as %s\n", a.email)
	} else {
		fmt.Fprintln(a.out, "Not logged in")
	}
	return nil
}

func (a *App) Logout(ctx context.Context) error {
	a.clearSession()
	fmt.Fprintln(a.out, "Logged out")
	return nil
}

func (a *App) clearSession() {
	a.email = ""
	a.accessToken = ""
	a.refreshToken = ""
}

// reportError prints server-reported results as plain messages and returns
// transport failures to the caller.
func (a *App) reportError(err error) error {
	var apiErr *api.Error
	if errors.As(err, &apiErr) {
		fmt.Fprintln(a.out, apiErr.Result.Message)
		return nil
	}
	return err
}

// Run starts the interactive loop.
func (a *App) Run(ctx context.Context) {
	scanner := bufio.NewScanner(os.Stdin)
	runREPL(ctx, a, a.statusLine, scanner)
}

func (a *App) statusLine() string {
	if a.isLoggedIn() {
		return a.email
	}
	return "anonymous"
}
