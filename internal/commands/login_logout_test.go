package commands_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"taskctl/internal/commands"
	"taskctl/internal/exitcode"
	"taskctl/internal/service"
	"taskctl/internal/session"
	"taskctl/internal/testutil"
)

func signedInService() *testutil.FakeService {
	svc := testutil.NewFakeService()
	svc.AuthResponse = service.AuthResponse{
		AccessToken: "abc123",
		TokenType:   "Bearer",
		ID:          "1",
		Username:    "alice",
		Email:       "alice@example.com",
		Roles:       []string{"ROLE_USER"},
	}
	return svc
}

func sessionFile(dir string) string {
	return filepath.Join(dir, session.FileName)
}

func TestLoginCommand_WithPasswordFlag(t *testing.T) {
	dir := t.TempDir()
	svc := signedInService()

	cmd := &commands.LoginCmd{}
	cmd.SetPassword("secret")
	stdout, stderr, code := runCommandIn(t, dir, cmd, svc, []string{"alice"}, false)

	if code != exitcode.Success {
		t.Fatalf("expected exit code %d, got %d (%s)", exitcode.Success, code, stderr)
	}
	if stdout != "logged in as alice\n" {
		t.Errorf("unexpected stdout %q", stdout)
	}
	if stderr != "" {
		t.Errorf("expected no prompt, got %q", stderr)
	}

	sess, err := session.NewStore(dir).Load()
	if err != nil {
		t.Fatalf("load session: %v", err)
	}
	if sess.Token != "abc123" || sess.Username != "alice" {
		t.Errorf("unexpected session %+v", sess)
	}
}

func TestLoginCommand_PromptsForPassword(t *testing.T) {
	dir := t.TempDir()

	cmd := &commands.LoginCmd{}
	cmd.SetInput(strings.NewReader("secret\n"))
	_, stderr, code := runCommandIn(t, dir, cmd, signedInService(), []string{"alice"}, true)

	if code != exitcode.Success {
		t.Fatalf("expected exit code %d, got %d (%s)", exitcode.Success, code, stderr)
	}
	if stderr != "Password: " {
		t.Errorf("expected password prompt, got %q", stderr)
	}
	if !session.NewStore(dir).IsAuthenticated() {
		t.Error("expected stored session")
	}
}

func TestLoginCommand_EmptyInput(t *testing.T) {
	dir := t.TempDir()
	svc := signedInService()

	cmd := &commands.LoginCmd{}
	cmd.SetInput(strings.NewReader(""))
	_, stderr, code := runCommandIn(t, dir, cmd, svc, []string{"alice"}, false)

	if code != exitcode.UserError {
		t.Errorf("expected exit code %d, got %d", exitcode.UserError, code)
	}
	if stderr != "Password: error: no input\n" {
		t.Errorf("unexpected stderr %q", stderr)
	}
	if len(svc.Calls()) != 0 {
		t.Errorf("expected no service calls, got %v", svc.Calls())
	}
}

func TestLoginCommand_MissingUsername(t *testing.T) {
	dir := t.TempDir()
	svc := signedInService()

	_, stderr, code := runCommandIn(t, dir, &commands.LoginCmd{}, svc, nil, false)

	if code != exitcode.UserError {
		t.Errorf("expected exit code %d, got %d", exitcode.UserError, code)
	}
	if stderr != "error: All fields are required!\n" {
		t.Errorf("unexpected stderr %q", stderr)
	}
	if len(svc.Calls()) != 0 {
		t.Errorf("expected no service calls, got %v", svc.Calls())
	}
}

// TestLoginCommand_FailureStoresNothing verifies a rejected login leaves no session file
func TestLoginCommand_FailureStoresNothing(t *testing.T) {
	dir := t.TempDir()
	svc := testutil.NewFakeService()
	svc.SignInErr = service.NewAPIError(401, "Bad credentials")

	cmd := &commands.LoginCmd{}
	cmd.SetPassword("wrong")
	_, stderr, code := runCommandIn(t, dir, cmd, svc, []string{"alice"}, false)

	if code != exitcode.BackendError {
		t.Errorf("expected exit code %d, got %d", exitcode.BackendError, code)
	}
	if stderr != "error: Bad credentials\n" {
		t.Errorf("unexpected stderr %q", stderr)
	}
	if _, err := os.Stat(sessionFile(dir)); !os.IsNotExist(err) {
		t.Errorf("expected no session file, stat err = %v", err)
	}
}

func TestLoginCommand_NoToken(t *testing.T) {
	dir := t.TempDir()
	svc := testutil.NewFakeService()

	cmd := &commands.LoginCmd{}
	cmd.SetPassword("secret")
	_, stderr, code := runCommandIn(t, dir, cmd, svc, []string{"alice"}, false)

	if code != exitcode.AuthError {
		t.Errorf("expected exit code %d, got %d", exitcode.AuthError, code)
	}
	if stderr != "error: login failed: server returned no access token\n" {
		t.Errorf("unexpected stderr %q", stderr)
	}
	if _, err := os.Stat(sessionFile(dir)); !os.IsNotExist(err) {
		t.Errorf("expected no session file, stat err = %v", err)
	}
}

// TestLogoutCommand_OnlyRemovesSession verifies logout leaves the config file alone
func TestLogoutCommand_OnlyRemovesSession(t *testing.T) {
	dir := t.TempDir()
	configPath := filepath.Join(dir, "config.yaml")
	if err := os.WriteFile(configPath, []byte("api_url: http://example.test\n"), 0600); err != nil {
		t.Fatalf("failed to write config.yaml: %v", err)
	}
	if err := session.NewStore(dir).Save(&session.Session{Username: "alice", Token: "abc123"}); err != nil {
		t.Fatalf("failed to save session: %v", err)
	}

	stdout, stderr, code := runCommandIn(t, dir, &commands.LogoutCmd{}, nil, nil, false)

	if code != exitcode.Success {
		t.Errorf("expected exit code %d, got %d", exitcode.Success, code)
	}
	if stdout != "ok\n" {
		t.Errorf("expected 'ok', got %q", stdout)
	}
	if stderr != "" {
		t.Errorf("expected no stderr, got %q", stderr)
	}
	if _, err := os.Stat(sessionFile(dir)); !os.IsNotExist(err) {
		t.Error("session file should be removed")
	}
	if _, err := os.Stat(configPath); err != nil {
		t.Error("config.yaml should still exist")
	}
}

func TestLogoutCommand_NotLoggedIn(t *testing.T) {
	stdout, _, code := runCommand(t, &commands.LogoutCmd{}, nil, nil, false)

	if code != exitcode.Success {
		t.Errorf("expected exit code %d, got %d", exitcode.Success, code)
	}
	if stdout != "not logged in\n" {
		t.Errorf("expected 'not logged in', got %q", stdout)
	}
}

func TestLogoutCommand_NotLoggedInQuiet(t *testing.T) {
	stdout, _, code := runCommand(t, &commands.LogoutCmd{}, nil, nil, true)

	if code != exitcode.Success {
		t.Errorf("expected exit code %d, got %d", exitcode.Success, code)
	}
	if stdout != "" {
		t.Errorf("expected no output in quiet mode, got %q", stdout)
	}
}

func TestLoginThenLogout(t *testing.T) {
	dir := t.TempDir()
	store := session.NewStore(dir)

	login := &commands.LoginCmd{}
	login.SetPassword("secret")
	if _, _, code := runCommandIn(t, dir, login, signedInService(), []string{"alice"}, true); code != exitcode.Success {
		t.Fatalf("login failed with %d", code)
	}
	if !store.IsAuthenticated() {
		t.Fatal("expected authenticated after login")
	}

	if _, _, code := runCommandIn(t, dir, &commands.LogoutCmd{}, nil, nil, true); code != exitcode.Success {
		t.Fatalf("logout failed with %d", code)
	}
	if store.IsAuthenticated() {
		t.Error("expected anonymous immediately after logout")
	}
}

// Tests for register command
func TestRegisterCommand_ShortPassword(t *testing.T) {
	svc := signedInService()

	cmd := &commands.RegisterCmd{}
	cmd.SetEmail("bob@example.com")
	cmd.SetPassword("12345")
	_, stderr, code := runCommand(t, cmd, svc, []string{"bob"}, false)

	if code != exitcode.UserError {
		t.Errorf("expected exit code %d, got %d", exitcode.UserError, code)
	}
	if stderr != "error: Password must be at least 6 characters!\n" {
		t.Errorf("unexpected stderr %q", stderr)
	}
	if len(svc.Calls()) != 0 {
		t.Errorf("expected no service calls, got %v", svc.Calls())
	}
}

func TestRegisterCommand_SignsUpAndLogsIn(t *testing.T) {
	dir := t.TempDir()
	svc := signedInService()
	svc.AuthResponse.Username = "bob"

	cmd := &commands.RegisterCmd{}
	cmd.SetEmail("bob@example.com")
	cmd.SetPassword("123456")
	stdout, stderr, code := runCommandIn(t, dir, cmd, svc, []string{"bob"}, false)

	if code != exitcode.Success {
		t.Fatalf("expected exit code %d, got %d (%s)", exitcode.Success, code, stderr)
	}
	if stdout != "User registered successfully!\nlogged in as bob\n" {
		t.Errorf("unexpected stdout %q", stdout)
	}
	if got := svc.Calls(); len(got) != 2 || got[0] != "SignUp" || got[1] != "SignIn" {
		t.Errorf("expected SignUp then SignIn, got %v", got)
	}
	if !session.NewStore(dir).IsAuthenticated() {
		t.Error("expected stored session")
	}
}

func TestRegisterCommand_NoLogin(t *testing.T) {
	dir := t.TempDir()
	svc := signedInService()

	cmd := &commands.RegisterCmd{}
	cmd.SetEmail("bob@example.com")
	cmd.SetPassword("123456")
	cmd.SetNoLogin(true)
	stdout, _, code := runCommandIn(t, dir, cmd, svc, []string{"bob"}, false)

	if code != exitcode.Success {
		t.Errorf("expected exit code %d, got %d", exitcode.Success, code)
	}
	if stdout != "User registered successfully!\n" {
		t.Errorf("unexpected stdout %q", stdout)
	}
	if calls(svc, "SignIn") != 0 {
		t.Error("expected no signin")
	}
	if _, err := os.Stat(sessionFile(dir)); !os.IsNotExist(err) {
		t.Error("expected no session file")
	}
}

func TestRegisterCommand_PromptMismatch(t *testing.T) {
	svc := signedInService()

	cmd := &commands.RegisterCmd{}
	cmd.SetEmail("bob@example.com")
	cmd.SetInput(strings.NewReader("123456\n654321\n"))
	_, stderr, code := runCommand(t, cmd, svc, []string{"bob"}, false)

	if code != exitcode.UserError {
		t.Errorf("expected exit code %d, got %d", exitcode.UserError, code)
	}
	if stderr != "Password: Confirm password: error: Passwords do not match!\n" {
		t.Errorf("unexpected stderr %q", stderr)
	}
}

func TestRegisterCommand_InvalidEmail(t *testing.T) {
	cmd := &commands.RegisterCmd{}
	cmd.SetEmail("bob@example")
	cmd.SetPassword("123456")
	_, stderr, code := runCommand(t, cmd, signedInService(), []string{"bob"}, false)

	if code != exitcode.UserError {
		t.Errorf("expected exit code %d, got %d", exitcode.UserError, code)
	}
	if stderr != "error: Please enter a valid email address!\n" {
		t.Errorf("unexpected stderr %q", stderr)
	}
}

func TestRegisterCommand_MissingEmailDoesNotPrompt(t *testing.T) {
	cmd := &commands.RegisterCmd{}
	cmd.SetInput(strings.NewReader("should not be read\n"))
	_, stderr, code := runCommand(t, cmd, signedInService(), []string{"bob"}, false)

	if code != exitcode.UserError {
		t.Errorf("expected exit code %d, got %d", exitcode.UserError, code)
	}
	if stderr != "error: All fields are required!\n" {
		t.Errorf("unexpected stderr %q", stderr)
	}
}

func TestRegisterCommand_ServerRejects(t *testing.T) {
	svc := signedInService()
	svc.SignUpErr = service.NewAPIError(400, "Error: Username is already taken!")

	cmd := &commands.RegisterCmd{}
	cmd.SetEmail("bob@example.com")
	cmd.SetPassword("123456")
	_, stderr, code := runCommand(t, cmd, svc, []string{"bob"}, false)

	if code != exitcode.BackendError {
		t.Errorf("expected exit code %d, got %d", exitcode.BackendError, code)
	}
	if stderr != "error: Error: Username is already taken!\n" {
		t.Errorf("unexpected stderr %q", stderr)
	}
}

// Tests for profile command
func TestProfileCommand(t *testing.T) {
	dir := t.TempDir()
	now := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)

	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		Subject:   "alice",
		ExpiresAt: jwt.NewNumericDate(now.Add(24 * time.Hour)),
	}).SignedString([]byte("test-secret"))
	if err != nil {
		t.Fatalf("sign token: %v", err)
	}
	sess := &session.Session{Username: "alice", Email: "alice@example.com", Roles: []string{"ROLE_USER"}, Token: token}
	if err := session.NewStore(dir).Save(sess); err != nil {
		t.Fatalf("save session: %v", err)
	}

	svc := testutil.NewFakeService()
	seed(t, svc)

	cmd := &commands.ProfileCmd{}
	cmd.SetClock(func() time.Time { return now })
	stdout, stderr, code := runCommandIn(t, dir, cmd, svc, nil, false)

	if code != exitcode.Success {
		t.Fatalf("expected exit code %d, got %d (%s)", exitcode.Success, code, stderr)
	}
	want := "Username:  alice\n" +
		"Email:     alice@example.com\n" +
		"Roles:     ROLE_USER\n" +
		"Token:     expires 2024-06-02T12:00:00Z\n" +
		"------------\n" +
		"Total:       3\n" +
		"To Do:       1\n" +
		"In Progress: 1\n" +
		"Done:        1\n"
	if stdout != want {
		t.Errorf("expected:\n%s\ngot:\n%s", want, stdout)
	}
}

func TestProfileCommand_NoSession(t *testing.T) {
	svc := testutil.NewFakeService()
	_, stderr, code := runCommand(t, &commands.ProfileCmd{}, svc, nil, false)

	if code != exitcode.AuthError {
		t.Errorf("expected exit code %d, got %d", exitcode.AuthError, code)
	}
	if stderr != "error: not logged in (run: taskctl login)\n" {
		t.Errorf("unexpected stderr %q", stderr)
	}
	if len(svc.Calls()) != 0 {
		t.Errorf("expected no service calls, got %v", svc.Calls())
	}
}
