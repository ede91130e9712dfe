// yahoo-auth is the one-time OAuth setup and token maintenance tool for
// the ff-lineup MCP server. Run with -setup to authorize the app in a
// browser and paste the verification code back; run with -refresh to force
// a token refresh and verify the saved refresh token still works.
package main

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"os"
	"strings"

	"golang.org/x/oauth2"

	"ff-lineup-mcp/internal/config"
	"ff-lineup-mcp/internal/yahoo"
)

func main() {
	var (
		envFile = flag.String("env-file", "", "path to .env file (default: ./.env if present)")
		setup   = flag.Bool("setup", false, "run the one-time authorization flow")
		refresh = flag.Bool("refresh", false, "refresh the saved token now")
	)
	flag.Parse()

	cfg, err := config.Load(*envFile)
	if err != nil {
		fatal("config: %v", err)
	}
	oauthCfg := yahoo.OAuthConfig(cfg.YahooClientID, cfg.YahooClientSecret)

	switch {
	case *setup:
		if err := runSetup(oauthCfg, cfg.TokenPath); err != nil {
			fatal("setup failed: %v", err)
		}
	case *refresh:
		if err := runRefresh(oauthCfg, cfg.TokenPath); err != nil {
			fatal("refresh failed: %v", err)
		}
	default:
		fmt.Fprintln(os.Stderr, "usage: yahoo-auth -setup | -refresh")
		os.Exit(2)
	}
}

func runSetup(cfg *oauth2.Config, tokenPath string) error {
	url := cfg.AuthCodeURL("", oauth2.AccessTypeOffline)
	fmt.Println("1. Open this URL in your browser and authorize the app:")
	fmt.Println()
	fmt.Println("   " + url)
	fmt.Println()
	fmt.Print("2. Paste the verification code here: ")

	reader := bufio.NewReader(os.Stdin)
	code, err := reader.ReadString('\n')
	if err != nil {
		return err
	}
	code = strings.TrimSpace(code)
	if code == "" {
		return fmt.Errorf("no verification code entered")
	}

	tok, err := cfg.Exchange(context.Background(), code)
	if err != nil {
		return fmt.Errorf("exchange verification code: %w", err)
	}
	if err := yahoo.SaveToken(tokenPath, tok); err != nil {
		return err
	}
	fmt.Printf("Token saved to %s (expires %s)\n", tokenPath, tok.Expiry.Format("15:04 MST"))
	return nil
}

func runRefresh(cfg *oauth2.Config, tokenPath string) error {
	tok, err := yahoo.LoadToken(tokenPath)
	if err != nil {
		return err
	}
	// Expire the access token so the token source must hit the refresh
	// grant instead of handing the cached token back.
	tok.Expiry = tok.Expiry.AddDate(-1, 0, 0)
	fresh, err := cfg.TokenSource(context.Background(), tok).Token()
	if err != nil {
		return fmt.Errorf("refresh grant: %w", err)
	}
	if err := yahoo.SaveToken(tokenPath, fresh); err != nil {
		return err
	}
	fmt.Printf("Token refreshed, saved to %s (expires %s)\n", tokenPath, fresh.Expiry.Format("15:04 MST"))
	return nil
}

func fatal(format string, args ...any) {
	fmt.Fprintf(os.Stderr, format+"\n", args...)
	os.Exit(1)
}
