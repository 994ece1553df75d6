package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/MJKeo/game-nerd-bot/pkg/agent"
	"github.com/MJKeo/game-nerd-bot/pkg/config"
	"github.com/MJKeo/game-nerd-bot/pkg/gamedata"
	"github.com/MJKeo/game-nerd-bot/pkg/prompt"
	"github.com/MJKeo/game-nerd-bot/pkg/provider"
	"github.com/MJKeo/game-nerd-bot/pkg/provider/gemini"
	"github.com/MJKeo/game-nerd-bot/pkg/provider/openai"
	"github.com/MJKeo/game-nerd-bot/pkg/provider/openrouter"
	"github.com/MJKeo/game-nerd-bot/pkg/provider/scripted"
	"github.com/MJKeo/game-nerd-bot/pkg/server"
	"github.com/MJKeo/game-nerd-bot/pkg/tool"
	"github.com/MJKeo/game-nerd-bot/pkg/tool/games"
)

func main() {
	cfg := config.Load()

	rootCmd := &cobra.Command{
		Use:   "nerdbot",
		Short: "A video-game expert chat bot backed by the RAWG database",
	}

	chatCmd := &cobra.Command{
		Use:   "chat",
		Short: "Chat with NerdBot in the terminal",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runChat(cmd.Context(), cfg)
		},
	}

	serveCmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the HTTP chat API",
		RunE: func(cmd *cobra.Command, args []string) error {
			factory, _, err := newAgentFactory(cfg)
			if err != nil {
				return err
			}
			addr := fmt.Sprintf(":%d", cfg.ServerPort)
			return server.New(factory).ListenAndServe(cmd.Context(), addr)
		},
	}

	rootCmd.AddCommand(chatCmd, serveCmd)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		slog.Error("nerdbot failed", "err", err)
		os.Exit(1)
	}
}

func runChat(ctx context.Context, cfg *config.Config) error {
	factory, registry, err := newAgentFactory(cfg)
	if err != nil {
		return err
	}
	ag, err := factory()
	if err != nil {
		return err
	}

	fmt.Println("NerdBot ready. Ask away (or type 'exit').")
	fmt.Println("Tools at my disposal:")
	fmt.Println(tool.Format(registry.List()))
	scanner := bufio.NewScanner(os.Stdin)
	for {
		fmt.Print("You: ")
		if !scanner.Scan() {
			break
		}
		input := strings.TrimSpace(scanner.Text())
		if input == "" {
			continue
		}
		if input == "exit" || input == "quit" {
			break
		}

		reply, err := ag.Run(ctx, input)
		if err != nil && !errors.Is(err, agent.ErrLoopCeiling) {
			fmt.Printf("NerdBot: (something went wrong: %v)\n", err)
			continue
		}
		fmt.Printf("NerdBot: %s\n", reply)
	}
	return scanner.Err()
}

// newAgentFactory wires the game tools and persona into a per-session agent
// constructor. Every session gets its own memory; the shared registry is
// returned so the REPL can show what the bot can do.
func newAgentFactory(cfg *config.Config) (server.AgentFactory, *tool.Registry, error) {
	llm, err := newProvider(cfg)
	if err != nil {
		return nil, nil, err
	}

	registry := tool.NewRegistry()
	if cfg.RawgAPIKey != "" {
		client, err := gamedata.NewClient(gamedata.Config{
			APIKey:  cfg.RawgAPIKey,
			BaseURL: cfg.RawgURL,
		})
		if err != nil {
			return nil, nil, err
		}
		games.RegisterAll(registry, client)
	} else {
		slog.Warn("RAWG_API_KEY not set, game lookups disabled")
		registry.Register(games.NewCurrentDate())
	}

	factory := func() (*agent.Agent, error) {
		return agent.New(agent.Config{
			Provider:        llm,
			Registry:        registry,
			Executor:        tool.NewExecutor(cfg.ToolTimeout),
			SystemPrompt:    prompt.NewTemplate(prompt.SystemPrompt),
			PersonaReminder: prompt.PersonaReminder,
			MaxRounds:       cfg.MaxAgentRounds,
		})
	}
	return factory, registry, nil
}

// newProvider selects the configured chat model, falling back through the
// available credentials in auto mode. The scripted echo provider is the
// last resort so the CLI stays usable without any keys.
func newProvider(cfg *config.Config) (provider.ChatModel, error) {
	switch cfg.Provider {
	case "openai":
		return openai.NewChatModel(openai.Config{
			APIKey:  cfg.OpenAIAPIKey,
			BaseURL: cfg.OpenAIBaseURL,
			Model:   cfg.OpenAIModel,
		})
	case "openrouter":
		return openrouter.NewChatModel(openrouter.Config{
			APIKey:  cfg.OpenRouterAPIKey,
			Model:   cfg.OpenRouterModel,
			Referer: cfg.OpenRouterReferer,
			AppName: cfg.OpenRouterApp,
		})
	case "gemini":
		return gemini.NewChatModel(context.Background(), gemini.Config{
			APIKey: cfg.GeminiAPIKey,
			Model:  cfg.GeminiModel,
		})
	case "scripted":
		return scripted.New(), nil
	case "", "auto":
		// fall through to auto-detection below
	default:
		return nil, fmt.Errorf("unknown provider %q", cfg.Provider)
	}

	if cfg.OpenRouterAPIKey != "" {
		slog.Info("using openrouter provider")
		return openrouter.NewChatModel(openrouter.Config{
			APIKey:  cfg.OpenRouterAPIKey,
			Model:   cfg.OpenRouterModel,
			Referer: cfg.OpenRouterReferer,
			AppName: cfg.OpenRouterApp,
		})
	}
	if cfg.OpenAIAPIKey != "" {
		slog.Info("using openai provider")
		return openai.NewChatModel(openai.Config{
			APIKey:  cfg.OpenAIAPIKey,
			BaseURL: cfg.OpenAIBaseURL,
			Model:   cfg.OpenAIModel,
		})
	}
	if cfg.GeminiAPIKey != "" {
		slog.Info("using gemini provider")
		return gemini.NewChatModel(context.Background(), gemini.Config{
			APIKey: cfg.GeminiAPIKey,
			Model:  cfg.GeminiModel,
		})
	}

	slog.Warn("no model provider credentials found, using scripted echo provider")
	return scripted.New(), nil
}
