// ff-server is the MCP tool surface for the fantasy football lineup
// engine. It wires the Yahoo and Sleeper clients into the core optimizer
// and exposes the results as remote-callable tools over Streamable HTTP.
package main

import (
	"context"
	"crypto/subtle"
	"encoding/json"
	"flag"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/rs/zerolog"

	"ff-lineup-mcp/internal/config"
	"ff-lineup-mcp/internal/sleeper"
	"ff-lineup-mcp/internal/yahoo"
)

type toolInfo struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

func main() {
	var (
		envFile     = flag.String("env-file", "", "path to .env file (default: ./.env if present)")
		addr        = flag.String("addr", "", "HTTP listen address (overrides LISTEN_ADDR)")
		requireAuth = flag.Bool("require-auth", true, "require API key auth via FF_MCP_API_KEY")
	)
	flag.Parse()

	cfg, err := config.Load(*envFile)
	if err != nil {
		bootLog := zerolog.New(os.Stderr)
		bootLog.Fatal().Err(err).Msg("config")
	}
	if *addr != "" {
		cfg.ListenAddr = *addr
	}

	log := newLogger(cfg)

	tok, err := yahoo.LoadToken(cfg.TokenPath)
	if err != nil {
		log.Fatal().Err(err).Str("path", cfg.TokenPath).
			Msg("no usable Yahoo token; run yahoo-auth -setup first")
	}

	ctx := context.Background()
	deps := &serverDeps{
		yahoo:      yahoo.NewClient(ctx, yahoo.OAuthConfig(cfg.YahooClientID, cfg.YahooClientSecret), tok, cfg.TokenPath, log),
		sleeper:    sleeper.NewClient(log),
		log:        log,
		benchLimit: cfg.BenchLimit,
		season:     cfg.Season,
	}

	server := mcp.NewServer(
		&mcp.Implementation{
			Name:    "ff-lineup-mcp",
			Version: "0.1.0",
		},
		nil,
	)

	registry := make([]toolInfo, 0, 8)

	addTool(server, &registry, &mcp.Tool{
		Name:        "ff_get_roster",
		Description: "Current roster for a team (defaults to your team in the league)",
	}, func(ctx context.Context, req *mcp.CallToolRequest, args RosterArgs) (*mcp.CallToolResult, any, error) {
		out, err := buildRoster(ctx, deps, args)
		if err != nil {
			return toolError(err), nil, nil
		}
		return toolJSON(out)
	})

	addTool(server, &registry, &mcp.Tool{
		Name:        "ff_get_matchup",
		Description: "Matchup information for your team in a specific week",
	}, func(ctx context.Context, req *mcp.CallToolRequest, args MatchupArgs) (*mcp.CallToolResult, any, error) {
		out, err := buildMatchup(ctx, deps, args)
		if err != nil {
			return toolError(err), nil, nil
		}
		return toolJSON(out)
	})

	addTool(server, &registry, &mcp.Tool{
		Name:        "ff_compare_teams",
		Description: "Side-by-side roster comparison of two teams",
	}, func(ctx context.Context, req *mcp.CallToolRequest, args CompareTeamsArgs) (*mcp.CallToolResult, any, error) {
		out, err := buildCompareTeams(ctx, deps, args)
		if err != nil {
			return toolError(err), nil, nil
		}
		return toolJSON(out)
	})

	addTool(server, &registry, &mcp.Tool{
		Name:        "ff_build_lineup",
		Description: "Build the optimal lineup for your team (balanced|floor|ceiling strategy)",
	}, func(ctx context.Context, req *mcp.CallToolRequest, args BuildLineupArgs) (*mcp.CallToolResult, any, error) {
		out, err := buildLineup(ctx, deps, args)
		if err != nil {
			return toolError(err), nil, nil
		}
		return toolJSON(out)
	})

	handler := mcp.NewStreamableHTTPHandler(func(r *http.Request) *mcp.Server {
		return server
	}, &mcp.StreamableHTTPOptions{JSONResponse: true})

	if *requireAuth && cfg.APIKey == "" {
		log.Fatal().Msg("FF_MCP_API_KEY is required (set env var or run with --require-auth=false)")
	}

	withAuth := func(next http.HandlerFunc) http.HandlerFunc {
		return func(w http.ResponseWriter, r *http.Request) {
			if cfg.APIKey == "" {
				next(w, r)
				return
			}
			key := strings.TrimSpace(r.Header.Get(cfg.AuthHeader))
			if key == "" {
				if authz := r.Header.Get("Authorization"); strings.HasPrefix(strings.ToLower(authz), "bearer ") {
					key = strings.TrimSpace(authz[7:])
				}
			}
			if subtle.ConstantTimeCompare([]byte(key), []byte(cfg.APIKey)) != 1 {
				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(http.StatusUnauthorized)
				w.Write([]byte(`{"error":"unauthorized"}`))
				return
			}
			next(w, r)
		}
	}

	http.HandleFunc("/health", withAuth(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status":"ok"}`))
	}))

	http.HandleFunc("/tools", withAuth(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		b, _ := json.MarshalIndent(map[string]any{"tools": registry}, "", "  ")
		w.Write(b)
	}))

	http.HandleFunc(cfg.MCPPath, withAuth(func(w http.ResponseWriter, r *http.Request) {
		handler.ServeHTTP(w, r)
	}))

	log.Info().Str("addr", cfg.ListenAddr).Str("path", cfg.MCPPath).Msg("MCP HTTP server listening")
	if err := http.ListenAndServe(cfg.ListenAddr, nil); err != nil {
		log.Fatal().Err(err).Msg("server exited")
	}
}

func newLogger(cfg *config.Config) zerolog.Logger {
	var out zerolog.Logger
	level, err := zerolog.ParseLevel(strings.ToLower(cfg.LogLevel))
	if err != nil {
		level = zerolog.InfoLevel
	}
	if cfg.LogFormat == "console" || cfg.LogFormat == "pretty" {
		out = zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339})
	} else {
		out = zerolog.New(os.Stderr)
	}
	return out.Level(level).With().Timestamp().Logger()
}

func addTool[T any](server *mcp.Server, registry *[]toolInfo, tool *mcp.Tool, handler func(context.Context, *mcp.CallToolRequest, T) (*mcp.CallToolResult, any, error)) {
	*registry = append(*registry, toolInfo{Name: tool.Name, Description: tool.Description})
	mcp.AddTool(server, tool, handler)
}

func toolJSON(v any) (*mcp.CallToolResult, any, error) {
	b, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return toolError(err), nil, nil
	}
	return &mcp.CallToolResult{
		Content: []mcp.Content{
			&mcp.TextContent{Text: string(b)},
		},
	}, nil, nil
}

func toolError(err error) *mcp.CallToolResult {
	return &mcp.CallToolResult{
		IsError: true,
		Content: []mcp.Content{
			&mcp.TextContent{Text: "error: " + err.Error()},
		},
	}
}
