package main

import (
	"context"
	"database/sql"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/chzyer/readline"
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/gorilla/mux"
	_ "github.com/lib/pq"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/m04kA/SMC-TelegramMonitor/internal/api/handlers/health"
	"github.com/m04kA/SMC-TelegramMonitor/internal/api/handlers/monitor_start"
	"github.com/m04kA/SMC-TelegramMonitor/internal/api/handlers/monitor_status"
	"github.com/m04kA/SMC-TelegramMonitor/internal/api/handlers/monitor_stop"
	"github.com/m04kA/SMC-TelegramMonitor/internal/api/handlers/monitor_target"
	"github.com/m04kA/SMC-TelegramMonitor/internal/api/handlers/telegram_webhook"
	"github.com/m04kA/SMC-TelegramMonitor/internal/api/middleware"
	"github.com/m04kA/SMC-TelegramMonitor/internal/config"
	"github.com/m04kA/SMC-TelegramMonitor/internal/domain"
	"github.com/m04kA/SMC-TelegramMonitor/internal/infra/storage/peer"
	"github.com/m04kA/SMC-TelegramMonitor/internal/service/botapi"
	"github.com/m04kA/SMC-TelegramMonitor/internal/service/monitor"
	"github.com/m04kA/SMC-TelegramMonitor/internal/service/telegram"
	"github.com/m04kA/SMC-TelegramMonitor/internal/usecase/control_command"
	"github.com/m04kA/SMC-TelegramMonitor/internal/worker"
	"github.com/m04kA/SMC-TelegramMonitor/pkg/logger"
	"github.com/m04kA/SMC-TelegramMonitor/pkg/metrics"
	"github.com/m04kA/SMC-TelegramMonitor/pkg/txmanager"
)

func main() {
	configPath := flag.String("config", "config.toml", "path to TOML config")
	login := flag.Bool("login", false, "interactive Telegram login before start")
	flag.Parse()

	// Загружаем конфигурацию
	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Printf("Failed to load config: %v\n", err)
		os.Exit(1)
	}

	// Инициализируем логгер
	log, err := logger.New(cfg.Logs.File, cfg.Logs.Level)
	if err != nil {
		fmt.Printf("Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Close()

	log.Info("Starting SMC-TelegramMonitor...")
	log.Info("Configuration loaded from %s", *configPath)

	// Инициализируем метрики (если включены)
	var collector metrics.Collector = metrics.Nop{}
	if cfg.Metrics.Enabled {
		collector = metrics.New(cfg.Metrics.ServiceName)
		log.Info("Metrics enabled at %s", cfg.Metrics.Path)
	}

	// Снимок справочника адресатов в PostgreSQL (опционально)
	var peerStore telegram.PeerStore
	if cfg.Database.Enabled {
		db, err := sql.Open("postgres", cfg.Database.DSN())
		if err != nil {
			log.Fatal("Failed to connect to database: %v", err)
		}
		defer db.Close()

		// Настраиваем connection pool
		db.SetMaxOpenConns(cfg.Database.MaxOpenConns)
		db.SetMaxIdleConns(cfg.Database.MaxIdleConns)
		db.SetConnMaxLifetime(time.Duration(cfg.Database.ConnMaxLifetime) * time.Second)

		if err := db.Ping(); err != nil {
			log.Fatal("Failed to ping database: %v", err)
		}
		log.Info("Successfully connected to database (host=%s, port=%d, db=%s)",
			cfg.Database.Host, cfg.Database.Port, cfg.Database.DBName)

		peerStore = peer.NewRepository(db, txmanager.NewTransactionManager(db))
	}

	// Создаём контекст с возможностью отмены для управления жизненным циклом горутин
	ctx, cancelCtx := context.WithCancel(context.Background())
	defer cancelCtx()

	// Инициализируем MTProto клиент
	directory := telegram.NewDirectory()
	manager := telegram.NewManager(telegram.Options{
		APIID:       cfg.Telegram.APIID,
		APIHash:     cfg.Telegram.APIHash,
		SessionPath: cfg.Telegram.SessionPath,
		Zap:         log.Zap(),
	}, directory, peerStore, log.Named("telegram"))

	if err := manager.LoadSnapshot(ctx); err != nil {
		log.Warn("Failed to load peer snapshot: %v", err)
	}

	if err := manager.Connect(ctx); err != nil {
		log.Fatal("Failed to connect to Telegram: %v", err)
	}

	if *login {
		if err := manager.Login(ctx, cfg.Telegram.Phone, cfg.Telegram.Password, promptCode); err != nil {
			log.Fatal("Failed to log in to Telegram: %v", err)
		}
	}
	if !manager.IsLoggedIn() {
		log.Warn("Telegram session is not authorized, run with -login to sign in")
	}

	// Инициализируем Telegram Bot API (если задан токен)
	var (
		bot    *tgbotapi.BotAPI
		botSvc *botapi.Service
	)
	if cfg.Bot.BotEnabled() {
		bot, err = tgbotapi.NewBotAPI(cfg.Bot.Token)
		if err != nil {
			log.Fatal("Failed to initialize Telegram Bot API: %v", err)
		}
		botSvc = botapi.NewService(bot, directory)
		log.Info("Telegram Bot API initialized (@%s)", bot.Self.UserName)
	}

	// Выбираем канал пересылки
	var sender worker.MessageSender = manager
	if cfg.Monitor.ForwardVia == config.ForwardViaBot {
		sender = botSvc
	}
	log.Info("Forwarding via %s", cfg.Monitor.ForwardVia)

	// Инициализируем Worker компоненты
	forwardQueue := worker.NewForwardQueue(
		sender,
		log.Named("forward"),
		collector,
		cfg.Worker.ForwardQueueSize,
		time.Duration(cfg.Worker.ForwardTimeout)*time.Second,
	)
	forwardQueue.Start()

	session := domain.NewMonitorSession(cfg.Monitor.TargetChatID)
	dispatcher := worker.NewUpdateDispatcher(directory, session, forwardQueue, nil, collector, log.Named("dispatcher"))

	refresher := worker.NewDirectoryRefresher(
		manager,
		log.Named("refresher"),
		time.Duration(cfg.Worker.DirectoryRefreshInterval)*time.Minute,
	)
	refresher.Start()

	// Инициализируем контроллер мониторинга
	controller := monitor.NewController(manager, session, dispatcher, refresher, collector, log.Named("monitor"))

	if cfg.Monitor.AutoStart {
		startCtx, cancelStart := context.WithTimeout(ctx, time.Duration(cfg.Worker.StartTimeout)*time.Second)
		result := controller.Start(startCtx)
		cancelStart()
		log.Info("Auto start: %s", result)
	}

	// Настраиваем роутер
	r := mux.NewRouter()
	r.Use(middleware.Logging(log.Named("http")))

	// Добавляем metrics middleware (если метрики включены)
	if cfg.Metrics.Enabled {
		r.Use(middleware.Metrics(collector))
		log.Info("HTTP metrics middleware enabled")
	}

	// Публичные endpoints
	r.HandleFunc("/health", health.NewHandler(manager).Handle).Methods(http.MethodGet)

	// Управляющие команды бота: Webhook или Long Polling
	if botSvc != nil {
		controlUC := control_command.New(controller, botSvc, cfg.Bot)

		if cfg.Bot.WebhookURL != "" {
			log.Info("Using Webhook mode")

			if err := botSvc.SetWebhook(cfg.Bot.WebhookURL); err != nil {
				log.Fatal("Failed to set Telegram webhook: %v", err)
			}
			r.HandleFunc("/webhook/telegram", telegram_webhook.NewHandler(controlUC, log).Handle).Methods(http.MethodPost)
			log.Info("Telegram webhook set to %s", cfg.Bot.WebhookURL)
		} else {
			log.Info("Using Long Polling mode")

			if err := botSvc.DeleteWebhook(); err != nil {
				log.Warn("Failed to delete webhook (may not exist): %v", err)
			}

			pollingHandler := worker.NewPollingHandler(controlUC, log.Named("polling"))
			go pollingHandler.Start(ctx, botSvc.GetUpdatesChan(0))
			log.Info("Telegram long polling started")
		}
	}

	// Metrics endpoint (публичный)
	if cfg.Metrics.Enabled {
		r.Handle(cfg.Metrics.Path, promhttp.Handler()).Methods(http.MethodGet)
		log.Info("Prometheus metrics endpoint exposed at %s", cfg.Metrics.Path)
	}

	// API v1 endpoints
	api := r.PathPrefix("/api/v1").Subrouter()
	api.HandleFunc("/monitor", monitor_status.NewHandler(controller).Handle).Methods(http.MethodGet)
	api.HandleFunc("/monitor/start", monitor_start.NewHandler(controller, log).Handle).Methods(http.MethodPost)
	api.HandleFunc("/monitor/stop", monitor_stop.NewHandler(controller, log).Handle).Methods(http.MethodPost)
	api.HandleFunc("/monitor/target", monitor_target.NewHandler(controller, log).Handle).Methods(http.MethodPut)

	// Создаем HTTP сервер
	addr := cfg.Server.Addr()
	srv := &http.Server{
		Addr:         addr,
		Handler:      r,
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
		IdleTimeout:  time.Duration(cfg.Server.IdleTimeout) * time.Second,
	}

	// Запускаем HTTP сервер
	go func() {
		log.Info("Starting server on %s", addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("Server failed to start: %v", err)
		}
	}()

	// Ожидаем сигнал завершения
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("Shutting down...")

	// Сначала снимаем обработчик обновлений, затем останавливаем worker'ы и клиент
	controller.Stop(ctx)
	if bot != nil && cfg.Bot.WebhookURL == "" {
		bot.StopReceivingUpdates()
	}
	cancelCtx()
	refresher.Stop()
	forwardQueue.Stop()
	manager.Close()
	log.Info("Worker components stopped")

	// Graceful shutdown HTTP сервера
	shutdownCtx, cancel := context.WithTimeout(
		context.Background(),
		time.Duration(cfg.Server.ShutdownTimeout)*time.Second,
	)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("Server forced to shutdown: %v", err)
	}

	log.Info("Server stopped gracefully")
}

// promptCode читает код подтверждения из терминала
func promptCode(_ context.Context) (string, error) {
	rl, err := readline.New("Enter Telegram code: ")
	if err != nil {
		return "", err
	}
	defer rl.Close()

	line, err := rl.Readline()
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(line), nil
}
