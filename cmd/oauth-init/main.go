// Command oauth-init walks through the one-time OAuth consent flow and
// saves the refresh token the worker uses to write the spreadsheet.
package main

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"time"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
	"google.golang.org/api/sheets/v4"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, "oauth-init:", err)
		os.Exit(1)
	}
}

func run() error {
	clientCreds, err := loadClientCredentials()
	if err != nil {
		return err
	}

	cfg, err := google.ConfigFromJSON(clientCreds, sheets.SpreadsheetsScope)
	if err != nil {
		return fmt.Errorf("parse oauth client: %w", err)
	}

	// The redirect URI must be registered on the OAuth client.
	port := os.Getenv("OAUTH_REDIRECT_PORT")
	if port == "" {
		port = "8085"
	}
	cfg.RedirectURL = "http://localhost:" + port + "/callback"

	state, err := randomState()
	if err != nil {
		return err
	}

	codeCh := make(chan string, 1)
	mux := http.NewServeMux()
	srv := &http.Server{Addr: ":" + port, Handler: mux}
	mux.HandleFunc("/callback", func(w http.ResponseWriter, r *http.Request) {
		if errStr := r.URL.Query().Get("error"); errStr != "" {
			http.Error(w, "OAuth error: "+errStr, http.StatusBadRequest)
			return
		}
		if r.URL.Query().Get("state") != state {
			http.Error(w, "state mismatch", http.StatusBadRequest)
			return
		}
		fmt.Fprintln(w, "Authorized. You can close this window.")
		codeCh <- r.URL.Query().Get("code")
		go func() {
			time.Sleep(500 * time.Millisecond)
			_ = srv.Close()
		}()
	})
	go func() { _ = srv.ListenAndServe() }()

	fmt.Printf("Open this URL to authorize:\n%s\n", cfg.AuthCodeURL(state, oauth2.AccessTypeOffline))

	interrupt := make(chan os.Signal, 1)
	signal.Notify(interrupt, os.Interrupt)

	select {
	case code := <-codeCh:
		token, err := cfg.Exchange(context.Background(), code)
		if err != nil {
			return fmt.Errorf("token exchange: %w", err)
		}
		return saveToken(token)
	case <-time.After(5 * time.Minute):
		return errors.New("authorization timed out")
	case <-interrupt:
		return errors.New("interrupted")
	}
}

func loadClientCredentials() ([]byte, error) {
	if inline := os.Getenv("GOOGLE_OAUTH_CLIENT_JSON"); inline != "" {
		return []byte(inline), nil
	}
	if file := os.Getenv("GOOGLE_OAUTH_CLIENT_FILE"); file != "" {
		raw, err := os.ReadFile(file)
		if err != nil {
			return nil, fmt.Errorf("read client file: %w", err)
		}
		return raw, nil
	}
	return nil, errors.New("set GOOGLE_OAUTH_CLIENT_JSON or GOOGLE_OAUTH_CLIENT_FILE")
}

func randomState() (string, error) {
	buf := make([]byte, 16)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("generate state: %w", err)
	}
	return hex.EncodeToString(buf), nil
}

func saveToken(token *oauth2.Token) error {
	outFile := os.Getenv("GOOGLE_OAUTH_TOKEN_FILE")
	if outFile == "" {
		outFile = "token.json"
	}
	f, err := os.OpenFile(outFile, os.O_CREATE|os.O_TRUNC|os.O_WRONLY, 0600)
	if err != nil {
		return fmt.Errorf("open token file: %w", err)
	}
	defer f.Close()
	if err := json.NewEncoder(f).Encode(token); err != nil {
		return fmt.Errorf("write token: %w", err)
	}
	fmt.Printf("Saved token to %s\n", outFile)
	return nil
}
