package tissue

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"os"
	"strings"
	"syscall"
	"time"

	"golang.org/x/term"

	"github.com/tissueplus/tissue/internal/domain"
)

const authTimeout = 30 * time.Second

// AuthFlow implements domain.AuthFlow with username/password login
type AuthFlow struct {
	logger       *slog.Logger
	httpClient   *http.Client
	in           io.Reader
	out          io.Writer
	readPassword func() ([]byte, error)
}

// NewAuthFlow creates a login flow that talks to the terminal
func NewAuthFlow(logger *slog.Logger) *AuthFlow {
	if logger == nil {
		logger = slog.Default()
	}
	return &AuthFlow{
		logger: logger,
		httpClient: &http.Client{
			Timeout: authTimeout,
		},
		in:  os.Stdin,
		out: os.Stdout,
		readPassword: func() ([]byte, error) {
			return term.ReadPassword(int(syscall.Stdin))
		},
	}
}

// Run prompts for credentials and logs in against the server
func (f *AuthFlow) Run(ctx context.Context, serverURL string) (*domain.AuthResult, error) {
	serverURL = strings.TrimRight(serverURL, "/")

	fmt.Fprintln(f.out)
	fmt.Fprintln(f.out, "TISSUE+ Login")
	fmt.Fprintln(f.out, "━━━━━━━━━━━━━")

	reader := bufio.NewReader(f.in)
	fmt.Fprint(f.out, "Username: ")
	username, err := reader.ReadString('\n')
	if err != nil && username == "" {
		return nil, fmt.Errorf("failed to read username: %w", err)
	}
	username = strings.TrimSpace(username)

	// Hidden input
	fmt.Fprint(f.out, "Password: ")
	passwordBytes, err := f.readPassword()
	if err != nil {
		return nil, fmt.Errorf("failed to read password: %w", err)
	}
	fmt.Fprintln(f.out)

	fmt.Fprintln(f.out)
	fmt.Fprintln(f.out, "Logging in...")

	result, err := f.Login(ctx, serverURL, username, string(passwordBytes))
	if err != nil {
		return nil, err
	}

	fmt.Fprintln(f.out)
	fmt.Fprintf(f.out, "✓ Logged in as %s\n", result.Username)

	return result, nil
}

// Login exchanges credentials for an access token
func (f *AuthFlow) Login(ctx context.Context, serverURL, username, password string) (*domain.AuthResult, error) {
	if username == "" {
		return nil, fmt.Errorf("username is required")
	}

	form := url.Values{}
	form.Set("username", username)
	form.Set("password", password)

	reqURL := strings.TrimRight(serverURL, "/") + "/api/auth/login"
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, reqURL, strings.NewReader(form.Encode()))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", userAgent)

	resp, err := f.httpClient.Do(req)
	if err != nil {
		f.logger.Error("tissue login failed", "error", err)
		return nil, fmt.Errorf("%w: %v", domain.ErrServerOffline, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusBadRequest {
		return nil, fmt.Errorf("invalid username or password: %w", domain.ErrAuthFailed)
	}
	if resp.StatusCode != http.StatusOK {
		f.logger.Error("tissue login error", "status", resp.StatusCode, "body", string(body))
		return nil, &domain.APIError{Status: resp.StatusCode, Message: envelopeMessage(body)}
	}

	token, err := parseToken(body)
	if err != nil {
		return nil, err
	}

	f.logger.Info("logged in", "username", username)
	return &domain.AuthResult{Token: token, Username: username}, nil
}

// parseToken accepts both a bare token reply and one wrapped in the envelope
func parseToken(body []byte) (string, error) {
	var bare TokenResponse
	if err := json.Unmarshal(body, &bare); err == nil && bare.AccessToken != "" {
		return bare.AccessToken, nil
	}

	var env Envelope
	if err := json.Unmarshal(body, &env); err != nil {
		return "", fmt.Errorf("failed to parse login response: %w", err)
	}
	if !env.Success {
		return "", fmt.Errorf("%s: %w", env.Message, domain.ErrAuthFailed)
	}

	var wrapped TokenResponse
	if err := decode(env.Data, &wrapped); err != nil {
		return "", err
	}
	if wrapped.AccessToken == "" {
		return "", fmt.Errorf("no access token in login response")
	}
	return wrapped.AccessToken, nil
}
