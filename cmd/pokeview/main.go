// Command pokeview is the terminal front end for the detail pipeline.
//
// Usage:
//
//	pokeview show pikachu
//	pokeview show 25 --lang id
//	pokeview show bulbasaur --json
//	pokeview list --limit 20 --offset 40
//	pokeview prefs get
//	pokeview prefs set lang id
//	pokeview prefs toggle-theme
//	pokeview browse
package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/albapepper/pokeview/internal/cache"
	"github.com/albapepper/pokeview/internal/catalog"
	"github.com/albapepper/pokeview/internal/config"
	"github.com/albapepper/pokeview/internal/detail"
	"github.com/albapepper/pokeview/internal/i18n"
	"github.com/albapepper/pokeview/internal/pokeapi"
	"github.com/albapepper/pokeview/internal/prefs"
	"github.com/albapepper/pokeview/internal/translate"
	"github.com/albapepper/pokeview/internal/tui"
)

// localClient is the preference key for the single local user.
const localClient = "local"

var logger = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelWarn}))

func main() {
	// Load .env if present
	_ = godotenv.Load(".env")

	root := &cobra.Command{
		Use:          "pokeview",
		Short:        "Browse localized Pokémon details from the terminal",
		SilenceUsage: true,
	}

	root.AddCommand(showCmd())
	root.AddCommand(listCmd())
	root.AddCommand(prefsCmd())
	root.AddCommand(browseCmd())

	if err := root.Execute(); err != nil {
		os.Exit(1)
	}
}

// app bundles everything a command needs.
type app struct {
	cfg       *config.Config
	assembler *detail.Assembler
	catalog   *catalog.Service
	prefs     *prefs.Manager
}

// runApp handles config loading, store setup, and context cancellation.
func runApp(fn func(ctx context.Context, a *app) error) error {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
	defer cancel()

	cfg, err := config.Load(config.StoreFile)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	if cfg.Debug {
		logger = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelDebug}))
	}

	store, err := prefs.Open(ctx, cfg, logger)
	if err != nil {
		return fmt.Errorf("open preference store: %w", err)
	}
	defer store.Close()

	appCache := cache.New(cfg.CacheEnabled)
	defer appCache.Close()

	client := pokeapi.NewClient(pokeapi.Options{
		BaseURL:           cfg.PokeAPIBaseURL,
		RequestsPerMinute: cfg.PokeAPIRequestsPerMinute,
		Timeout:           cfg.UpstreamTimeout,
		Cache:             appCache,
		Logger:            logger,
	})
	var translator translate.Translator = translate.Disabled{}
	if cfg.TranslateEnabled {
		translator = translate.NewClient(cfg.TranslateURL, cfg.TranslateAPIKey, cfg.TranslateTimeout, appCache, logger)
	}

	defaultLang := i18n.Resolve(os.Getenv("LC_ALL"), os.Getenv("LANG"), cfg.DefaultLanguage)
	return fn(ctx, &app{
		cfg:       cfg,
		assembler: detail.NewAssembler(client, detail.NewLocalizer(translator, cfg.TranslateTimeout, logger), cfg.FanoutLimit, logger),
		catalog:   catalog.NewService(client, cfg.FanoutLimit, logger),
		prefs:     prefs.NewManager(ctx, store, localClient, defaultLang, logger),
	})
}

func printJSON(v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	fmt.Println(string(data))
	return nil
}

// --------------------------------------------------------------------------
// show command
// --------------------------------------------------------------------------

func showCmd() *cobra.Command {
	var (
		lang   string
		asJSON bool
	)
	cmd := &cobra.Command{
		Use:   "show <name|id>",
		Short: "Show the detail view for one Pokémon",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runApp(func(ctx context.Context, a *app) error {
				current := a.prefs.Current()
				if lang == "" {
					lang = current.Language
				}
				payload := a.assembler.Assemble(ctx, args[0], lang)
				if asJSON {
					if err := printJSON(payload); err != nil {
						return err
					}
				} else {
					fmt.Println(tui.RenderDetail(payload, tui.StylesFor(current.Theme), 0))
				}
				if payload.State == detail.StateFailed {
					return fmt.Errorf("%s: %s", payload.Key, payload.Failure.Kind)
				}
				return nil
			})
		},
	}
	cmd.Flags().StringVar(&lang, "lang", "", "UI language (defaults to the saved preference)")
	cmd.Flags().BoolVar(&asJSON, "json", false, "Print the raw payload as JSON")
	return cmd
}

// --------------------------------------------------------------------------
// list command
// --------------------------------------------------------------------------

func listCmd() *cobra.Command {
	var limit, offset int
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List one page of Pokémon",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runApp(func(ctx context.Context, a *app) error {
				current := a.prefs.Current()
				styles := tui.StylesFor(current.Theme)

				page, err := a.catalog.List(ctx, limit, offset)
				if err != nil {
					return err
				}
				fmt.Println(tui.RenderSummary(a.catalog.Summary(ctx), current.Language, styles))
				fmt.Println()
				fmt.Println(tui.RenderPage(page, current.Language, styles))
				return nil
			})
		},
	}
	cmd.Flags().IntVar(&limit, "limit", catalog.DefaultLimit, "Page size")
	cmd.Flags().IntVar(&offset, "offset", 0, "Offset of the first entry")
	return cmd
}

// --------------------------------------------------------------------------
// prefs command
// --------------------------------------------------------------------------

func prefsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "prefs",
		Short: "Read or change saved preferences",
	}
	cmd.AddCommand(prefsGetCmd())
	cmd.AddCommand(prefsSetCmd())
	cmd.AddCommand(prefsToggleThemeCmd())
	return cmd
}

func prefsGetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "get",
		Short: "Print the saved preferences",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runApp(func(ctx context.Context, a *app) error {
				return printJSON(a.prefs.Current())
			})
		},
	}
}

func prefsSetCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "set",
		Short: "Change one preference",
	}
	cmd.AddCommand(&cobra.Command{
		Use:       "lang <tag>",
		Short:     "Set the UI language",
		Args:      cobra.ExactArgs(1),
		ValidArgs: i18n.Languages(),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runApp(func(ctx context.Context, a *app) error {
				if err := a.prefs.SetLanguage(ctx, args[0]); err != nil {
					return err
				}
				return printJSON(a.prefs.Current())
			})
		},
	})
	cmd.AddCommand(&cobra.Command{
		Use:       "theme <light|dark>",
		Short:     "Set the color theme",
		Args:      cobra.ExactArgs(1),
		ValidArgs: []string{prefs.ThemeLight, prefs.ThemeDark},
		RunE: func(cmd *cobra.Command, args []string) error {
			return runApp(func(ctx context.Context, a *app) error {
				if err := a.prefs.SetTheme(ctx, args[0]); err != nil {
					return err
				}
				return printJSON(a.prefs.Current())
			})
		},
	})
	return cmd
}

func prefsToggleThemeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "toggle-theme",
		Short: "Switch between light and dark",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runApp(func(ctx context.Context, a *app) error {
				if err := a.prefs.SetTheme(ctx, prefs.ToggleTheme(a.prefs.Current().Theme)); err != nil {
					return err
				}
				return printJSON(a.prefs.Current())
			})
		},
	}
}

// --------------------------------------------------------------------------
// browse command
// --------------------------------------------------------------------------

func browseCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "browse",
		Short: "Interactive detail browser",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runApp(func(ctx context.Context, a *app) error {
				presenter := &tui.Presenter{}
				session := detail.NewSession(ctx, a.assembler, a.prefs, presenter, logger)
				defer session.Close()

				program := tea.NewProgram(tui.NewModel(ctx, session, a.prefs), tea.WithAltScreen(), tea.WithContext(ctx))
				presenter.Attach(program)

				start := time.Now()
				_, err := program.Run()
				logger.Debug("browser closed", "duration", time.Since(start).Round(time.Second))
				if errors.Is(err, tea.ErrProgramKilled) {
					return nil
				}
				return err
			})
		},
	}
}
