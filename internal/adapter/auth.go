package adapter

import (
	"bufio"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"syscall"

	"golang.org/x/term"

	"github.com/mmcdole/flightdeck/internal/api"
	"github.com/mmcdole/flightdeck/internal/domain"
)

// verifyPath is read with the new token to check that the API accepts it
const verifyPath = "/aircraft"

// AuthResult contains the result of a successful login
type AuthResult struct {
	BaseURL string
	Token   string
}

// AuthFlow prompts for an API token and checks it against the server
type AuthFlow struct {
	logger     *slog.Logger
	in         io.Reader
	out        io.Writer
	readSecret func() ([]byte, error)
	opts       []api.Option
}

// NewAuthFlow creates a login flow reading from the terminal
func NewAuthFlow(logger *slog.Logger, opts ...api.Option) *AuthFlow {
	if logger == nil {
		logger = slog.Default()
	}
	return &AuthFlow{
		logger: logger,
		in:     os.Stdin,
		out:    os.Stdout,
		readSecret: func() ([]byte, error) {
			return term.ReadPassword(int(syscall.Stdin))
		},
		opts: opts,
	}
}

// Run prompts for the base URL (when baseURL is empty) and the token,
// then verifies the token with an authenticated request.
func (f *AuthFlow) Run(ctx context.Context, baseURL string) (*AuthResult, error) {
	reader := bufio.NewReader(f.in)

	fmt.Fprintln(f.out)
	fmt.Fprintln(f.out, "Flightdeck Login")
	fmt.Fprintln(f.out, "━━━━━━━━━━━━━━━━")

	if baseURL == "" {
		fmt.Fprint(f.out, "API URL: ")
		line, err := reader.ReadString('\n')
		if err != nil && !errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("failed to read API URL: %w", err)
		}
		baseURL = strings.TrimSpace(line)
	}
	baseURL = strings.TrimRight(baseURL, "/")
	if baseURL == "" {
		return nil, errors.New("API URL is required")
	}

	// Prompt for token (hidden input)
	fmt.Fprint(f.out, "Token: ")
	secret, err := f.readSecret()
	if err != nil {
		return nil, fmt.Errorf("failed to read token: %w", err)
	}
	fmt.Fprintln(f.out) // Add newline after hidden input

	token := strings.TrimSpace(string(secret))
	if token == "" {
		return nil, errors.New("token is required")
	}

	fmt.Fprintln(f.out, "Verifying...")
	if err := f.verify(ctx, baseURL, token); err != nil {
		return nil, err
	}
	fmt.Fprintln(f.out, "Login successful!")

	return &AuthResult{BaseURL: baseURL, Token: token}, nil
}

func (f *AuthFlow) verify(ctx context.Context, baseURL, token string) error {
	t := api.NewTransport(baseURL, api.StaticToken(token), f.logger, f.opts...)
	client := api.NewClient[struct{}, json.RawMessage](t, verifyPath)

	if _, err := client.GetAll(ctx); err != nil {
		f.logger.Error("token verification failed", "error", err)
		if errors.Is(err, domain.ErrAuthFailed) {
			return domain.ErrAuthFailed
		}
		return err
	}
	return nil
}
