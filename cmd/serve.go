package cmd

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	api "github.com/OvyFlash/telegram-bot-api"
	"github.com/maxBezel/formulabot/commands"
	"github.com/maxBezel/formulabot/refcycle"
	sqlite "github.com/maxBezel/formulabot/storage"

	"github.com/spf13/cobra"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the Telegram bot",
	Long:  `Connects to Telegram with the configured token and serves formula buffers stored in the SQLite database.`,
	RunE:  runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, args []string) error {
	if err := cfg.Validate(); err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := os.MkdirAll(filepath.Dir(cfg.Database), 0o755); err != nil {
		return fmt.Errorf("creating database directory: %w", err)
	}
	storage, err := sqlite.New(cfg.Database)
	if err != nil {
		return err
	}
	defer storage.Close()

	if err := storage.Init(ctx); err != nil {
		return err
	}

	bot, err := api.NewBotAPI(cfg.Token)
	if err != nil {
		return fmt.Errorf("creating bot API: %w", err)
	}

	reg := commands.Default(commands.Deps{
		Bot:     bot,
		Storage: storage,
		Anchor:  refcycle.Anchor{X: cfg.Anchor.X, Y: cfg.Anchor.Y},
	})
	if _, err := bot.Request(api.NewSetMyCommands(reg.BotCommands()...)); err != nil {
		slog.Warn("could not set command menu", "err", err)
	}

	u := api.NewUpdate(0)
	u.Timeout = cfg.PollTimeout
	updates := bot.GetUpdatesChan(u)
	slog.Info("bot started", "user", bot.Self.UserName, "database", cfg.Database)

	for {
		select {
		case <-ctx.Done():
			bot.StopReceivingUpdates()
			slog.Info("shutting down")
			return nil
		case update, ok := <-updates:
			if !ok {
				return nil
			}
			switch {
			case update.Message != nil:
				reg.Handle(ctx, update.Message)
			case update.CallbackQuery != nil:
				reg.HandleCallback(ctx, update.CallbackQuery)
			}
		}
	}
}
