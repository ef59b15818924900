package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"

	"github.com/m04kA/SMC-SpotWatcher/internal/config"
	"github.com/m04kA/SMC-SpotWatcher/internal/domain"
	studioClient "github.com/m04kA/SMC-SpotWatcher/internal/integrations/studioapi"
	telegramClient "github.com/m04kA/SMC-SpotWatcher/internal/integrations/telegram"
	notifierService "github.com/m04kA/SMC-SpotWatcher/internal/service/notifier"
	summaryService "github.com/m04kA/SMC-SpotWatcher/internal/service/summary"
	collectSpotsUC "github.com/m04kA/SMC-SpotWatcher/internal/usecase/collect_spots"
	"github.com/m04kA/SMC-SpotWatcher/pkg/logger"
	"github.com/m04kA/SMC-SpotWatcher/pkg/metrics"
)

var (
	cfgPath    string
	flagToken  string
	flagChatID string
	dryRun     bool
)

var rootCmd = &cobra.Command{
	Use:          "spotwatcher",
	Short:        "SMC-SpotWatcher - free class spot notifications for Studio Velocity",
	Long:         "Polls the studio schedule API, filters classes by instructor and day rules, and reports free bikes to a Telegram chat.",
	RunE:         runOnce,
	SilenceUsage: true,
}

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Run the pipeline periodically with a metrics endpoint",
	RunE:  runWatch,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgPath, "config", "config.toml", "path to the configuration file")
	rootCmd.PersistentFlags().StringVar(&flagToken, "token", "", "Telegram bot token (overrides TELEGRAM_BOT_TOKEN)")
	rootCmd.PersistentFlags().StringVar(&flagChatID, "chat-id", "", "Telegram chat id (overrides TELEGRAM_CHAT_ID)")
	rootCmd.Flags().BoolVar(&dryRun, "dry-run", false, "print the summary locally instead of sending it")
	rootCmd.AddCommand(watchCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

// app собранное приложение и его зависимости
type app struct {
	cfg      *config.Config
	log      *logger.Logger
	notifier *notifierService.Service
}

// buildApp загружает конфигурацию и связывает все компоненты пайплайна.
// Клиенты HTTP создаются здесь и закрываются возвращаемым cleanup на любом
// пути выхода; пайплайн сам никогда не закрывает чужие клиенты.
func buildApp(withMetrics bool) (*app, func(), error) {
	cfg, err := config.Load(cfgPath)
	if err != nil {
		return nil, nil, fmt.Errorf("load config: %w", err)
	}

	log, err := logger.New(cfg.Logs.File, cfg.Logs.Level)
	if err != nil {
		return nil, nil, fmt.Errorf("initialize logger: %w", err)
	}

	var metricsCollector *metrics.Metrics
	if withMetrics && cfg.Metrics.Enabled {
		metricsCollector = metrics.New(cfg.Metrics.ServiceName)
		log.Info("Metrics enabled at %s", cfg.Metrics.Path)
	}

	studio := studioClient.NewClient(
		cfg.Studio.BaseURL,
		cfg.Studio.UnitList,
		cfg.Studio.ActivityList,
		cfg.Studio.TimezoneFromUnit,
		time.Duration(cfg.Studio.Timeout)*time.Second,
		log,
	)

	// Флаги замещают переменные окружения
	token := flagToken
	if token == "" {
		token = os.Getenv("TELEGRAM_BOT_TOKEN")
	}
	chatID := flagChatID
	if chatID == "" {
		chatID = os.Getenv("TELEGRAM_CHAT_ID")
	}

	telegram := telegramClient.NewClient(
		cfg.Telegram.BaseURL,
		telegramClient.Config{
			Token:     token,
			ChatID:    chatID,
			ParseMode: cfg.Telegram.ParseMode,
		},
		time.Duration(cfg.Telegram.Timeout)*time.Second,
		log,
	)

	classifier := domain.NewDayClassifier(cfg.Watcher.Region)

	collector := collectSpotsUC.NewUseCase(
		studio,
		classifier,
		cfg.Watcher.InstructorID,
		cfg.Watcher.WindowDays,
		cfg.Watcher.Pages,
		log,
	)

	formatter := summaryService.NewService(log)

	notifier := notifierService.NewService(
		collector,
		formatter,
		telegram,
		metricsCollector,
		os.Getenv("GITHUB_STEP_SUMMARY"),
		log,
	)

	cleanup := func() {
		studio.Close()
		telegram.Close()
		log.Close()
	}

	return &app{cfg: cfg, log: log, notifier: notifier}, cleanup, nil
}

// runOnce одиночный прогон: собрать, отформатировать, отправить (или напечатать).
// Любая необработанная ошибка пайплайна завершает процесс ненулевым кодом.
func runOnce(cmd *cobra.Command, args []string) error {
	application, cleanup, err := buildApp(false)
	if err != nil {
		return err
	}
	defer cleanup()

	application.log.Info("Starting SMC-SpotWatcher (instructor=%d, dry_run=%v)",
		application.cfg.Watcher.InstructorID, dryRun)

	return application.notifier.Run(cmd.Context(), dryRun)
}

// runWatch периодические прогоны с метриками. Ошибки отдельных прогонов
// логируются и учитываются в метриках, но демон продолжает работать.
func runWatch(cmd *cobra.Command, args []string) error {
	application, cleanup, err := buildApp(true)
	if err != nil {
		return err
	}
	defer cleanup()

	cfg := application.cfg
	log := application.log

	interval := time.Duration(cfg.Watcher.IntervalMinutes) * time.Minute
	log.Info("Starting SMC-SpotWatcher in watch mode (instructor=%d, interval=%s)",
		cfg.Watcher.InstructorID, interval)

	var srv *http.Server
	if cfg.Metrics.Enabled {
		r := mux.NewRouter()
		r.Handle(cfg.Metrics.Path, promhttp.Handler()).Methods(http.MethodGet)
		r.HandleFunc("/healthz", func(w http.ResponseWriter, _ *http.Request) {
			w.WriteHeader(http.StatusOK)
			_, _ = w.Write([]byte("ok"))
		}).Methods(http.MethodGet)

		srv = &http.Server{
			Addr:    fmt.Sprintf(":%d", cfg.Metrics.Port),
			Handler: r,
		}

		go func() {
			log.Info("Metrics endpoint listening on %s%s", srv.Addr, cfg.Metrics.Path)
			if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
				log.Fatal("Metrics server failed: %v", err)
			}
		}()
	}

	ctx := cmd.Context()

	runPass := func() {
		if err := application.notifier.Run(ctx, false); err != nil {
			log.Error("Watch: run failed: %v", err)
		}
	}

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	runPass()

	for {
		select {
		case <-ticker.C:
			runPass()
		case <-quit:
			log.Info("Shutting down watch mode...")
			if srv != nil {
				shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
				defer cancel()
				if err := srv.Shutdown(shutdownCtx); err != nil {
					log.Error("Metrics server forced to shutdown: %v", err)
				}
			}
			log.Info("Watch mode stopped gracefully")
			return nil
		}
	}
}
