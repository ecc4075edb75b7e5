package cli

import (
	"bufio"
	"bytes"
	"context"
	"errors"
	"net/http"
	"strings"
	"testing"

	"github.com/filmstack/idm/internal/client/api"
)

type stubAPI struct {
	registerOut *api.Response
	registerErr error
	loginOut    *api.Response
	loginErr    error
	refreshOut  *api.Response
	refreshErr  error
	authOut     *api.Response
	authErr     error

	lastRefreshToken string
}

func (s *stubAPI) Register(ctx context.Context, email, password string) (*api.Response, error) {
	return s.registerOut, s.registerErr
}

func (s *stubAPI) Login(ctx context.Context, email, password string) (*api.Response, error) {
	return s.loginOut, s.loginErr
}

func (s *stubAPI) Refresh(ctx context.Context, refreshToken string) (*api.Response, error) {
	s.lastRefreshToken = refreshToken
	return s.refreshOut, s.refreshErr
}

func (s *stubAPI) Authenticate(ctx context.Context, accessToken string) (*api.Response, error) {
	return s.authOut, s.authErr
}

func newTestApp(t *testing.T, client identityAPI, input string) (*App, *bytes.Buffer) {
	t.Helper()
	old := readPassword
	readPassword = func(int) ([]byte, error) { return []byte("Password123"), nil }
	t.Cleanup(func() { readPassword = old })

	var out bytes.Buffer
	return &App{client: client, in: bufio.NewReader(strings.NewReader(input)), out: &out}, &out
}

func TestApp_LoginStoresSession(t *testing.T) {
	stub := &stubAPI{loginOut: &api.Response{
		Result:       api.Result{Code: 1011, Message: "User logged in successfully."},
		AccessToken:  "acc",
		RefreshToken: "ref",
	}}
	app, out := newTestApp(t, stub, "user@example.com\n")

	if err := app.Login(context.Background()); err != nil {
		t.Fatalf("Login error: %v", err)
	}
	if !app.isLoggedIn() || app.accessToken != "acc" || app.refreshToken != "ref" {
		t.Fatalf("session not stored: %+v", app)
	}
	if !strings.Contains(out.String(), "logged in") {
		t.Fatalf("missing success message: %q", out.String())
	}
}

func TestApp_LoginRejectedShowsServerMessage(t *testing.T) {
	stub := &stubAPI{loginErr: &api.Error{
		StatusCode: http.StatusForbidden,
		Result:     api.Result{Code: 1007, Message: "Invalid credentials."},
	}}
	app, out := newTestApp(t, stub, "user@example.com\n")

	if err := app.Login(context.Background()); err != nil {
		t.Fatalf("server-side rejections must not surface as errors, got %v", err)
	}
	if app.isLoggedIn() {
		t.Fatal("session must stay empty after a rejected login")
	}
	if !strings.Contains(out.String(), "Invalid credentials.") {
		t.Fatalf("missing server message: %q", out.String())
	}
}

func TestApp_LoginTransportErrorPropagates(t *testing.T) {
	stub := &stubAPI{loginErr: errors.New("connection refused")}
	app, _ := newTestApp(t, stub, "user@example.com\n")

	if err := app.Login(context.Background()); err == nil {
		t.Fatal("transport errors must propagate")
	}
}

func TestApp_RefreshAdoptsRotatedToken(t *testing.T) {
	stub := &stubAPI{refreshOut: &api.Response{
		Result:       api.Result{Code: 1017, Message: "Renewed from refresh token."},
		AccessToken:  "acc2",
		RefreshToken: "ref2",
	}}
	app, out := newTestApp(t, stub, "")
	app.refreshToken = "ref1"
	app.accessToken = "acc1"

	if err := app.Refresh(context.Background()); err != nil {
		t.Fatalf("Refresh error: %v", err)
	}
	if stub.lastRefreshToken != "ref1" {
		t.Fatalf("presented token = %q, want ref1", stub.lastRefreshToken)
	}
	if app.refreshToken != "ref2" || app.accessToken != "acc2" {
		t.Fatalf("session not updated: %+v", app)
	}
	if !strings.Contains(out.String(), "rotated") {
		t.Fatalf("rotation not reported: %q", out.String())
	}
}

func TestApp_RefreshRevokedClearsSession(t *testing.T) {
	stub := &stubAPI{refreshErr: &api.Error{
		StatusCode: http.StatusUnauthorized,
		Result:     api.Result{Code: 1016, Message: "Refresh token is revoked."},
	}}
	app, out := newTestApp(t, stub, "")
	app.refreshToken = "ref1"

	if err := app.Refresh(context.Background()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if app.isLoggedIn() {
		t.Fatal("session must be cleared after a rejected refresh")
	}
	if !strings.Contains(out.String(), "revoked") {
		t.Fatalf("missing server message: %q", out.String())
	}
}

func TestApp_RefreshWithoutLogin(t *testing.T) {
	app, out := newTestApp(t, &stubAPI{}, "")

	if err := app.Refresh(context.Background()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(out.String(), "Not logged in") {
		t.Fatalf("got %q", out.String())
	}
}

func TestApp_CheckWithoutToken(t *testing.T) {
	app, out := newTestApp(t, &stubAPI{}, "")

	if err := app.Check(context.Background()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(out.String(), "login first") {
		t.Fatalf("got %q", out.String())
	}
}

func TestApp_Logout(t *testing.T) {
	app, _ := newTestApp(t, &stubAPI{}, "")
	app.email = "user@example.com"
	app.accessToken = "acc"
	app.refreshToken = "ref"

	if err := app.Logout(context.Background()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if app.isLoggedIn() || app.accessToken != "" {
		t.Fatal("session must be cleared")
	}
}
