package cli

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jackc/pgx/v4/pgxpool"
	"github.com/redis/go-redis/v9"
	"github.com/spf13/cobra"

	"quizapp/internal/app"
	"quizapp/internal/config"
	"quizapp/internal/domain"
	"quizapp/internal/infra/memory"
	pgloader "quizapp/internal/infra/postgres"
	redissession "quizapp/internal/infra/redis"
	transport "quizapp/internal/transport/http"
)

// NewServeCmd builds the CLI subcommand to start the development backend.
func NewServeCmd(configPath, port *string) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Start the development quiz backend",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServer(cmd.Context(), *configPath, *port)
		},
	}
}

func runServer(ctx context.Context, configPath, portFlag string) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}

	if cfg.Postgres.URL != "" {
		if err := runMigrationsWithConfig(ctx, cfg); err != nil {
			return err
		}
	}

	finalPort := portFlag
	if finalPort == "" {
		finalPort = cfg.Server.Port
	}
	if finalPort == "" {
		finalPort = "3000"
	}

	var redisClient *redis.Client
	if cfg.Redis.Addr != "" {
		redisClient = redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
	}
	redisTTL := config.TTLDuration(cfg.Redis.TTL, 30*time.Minute)

	var pool *pgxpool.Pool
	if cfg.Postgres.URL != "" {
		pool, err = pgxpool.Connect(ctx, cfg.Postgres.URL)
		if err != nil {
			return err
		}
	}

	var loader memory.Loader = memory.NewStaticLoader(sampleQuestions())
	if pool != nil {
		loader = pgloader.NewQuestionLoader(pool)
	}

	questionTTL := config.TTLDuration(cfg.Questions.TTL, 10*time.Minute)
	questions := memory.NewQuestionRepository(loader, questionTTL)

	var sessions app.SessionStore
	if redisClient != nil {
		sessions = redissession.NewSessionStore(redisClient, redisTTL)
	} else {
		sessions = memory.NewSessionStore()
	}

	rooms := memory.NewRoomStore()
	service := app.NewGameService(questions, sessions, rooms)

	demo := rooms.Seed("123456", domain.GameConfig{Mode: domain.ModeClassic})
	log.Printf("demo room available with PIN %s", demo.PIN)

	users := app.NewUserStore()
	if err := users.Register("Professor", "professor@quizapp.local", "professor"); err != nil {
		return err
	}

	handler := transport.NewHandler(service, users)
	wsHandler := transport.NewWSHandler(service.Boards())

	mux := http.NewServeMux()
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("ok"))
	})
	handler.Register(mux)
	wsHandler.Register(mux)

	server := &http.Server{
		Addr:         ":" + finalPort,
		Handler:      mux,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
	}

	go func() {
		log.Printf("starting quiz backend on :%s", finalPort)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Printf("failed to start server: %v", err)
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)

	select {
	case <-stop:
		log.Println("shutting down server...")
	case <-ctx.Done():
		log.Println("context canceled, shutting down server...")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return server.Shutdown(shutdownCtx)
}

// sampleQuestions seeds the static loader when no database is configured.
func sampleQuestions() []domain.QuestionRecord {
	return []domain.QuestionRecord{
		{
			ID:               "fis-001",
			Topic:            "Física",
			Difficulty:       domain.VeryEasy,
			Prompt:           "Qual é a unidade de medida da força no Sistema Internacional?",
			CorrectAnswer:    "Newton",
			IncorrectAnswers: []string{"Joule", "Watt", "Pascal"},
		},
		{
			ID:               "fis-002",
			Topic:            "Física",
			Difficulty:       domain.Easy,
			Prompt:           "Qual grandeza física é medida em quilogramas?",
			CorrectAnswer:    "Massa",
			IncorrectAnswers: []string{"Peso", "Densidade", "Volume"},
		},
		{
			ID:               "fis-003",
			Topic:            "Física",
			Difficulty:       domain.Medium,
			Prompt:           "Segundo a segunda lei de Newton, a força resultante é o produto de quais grandezas?",
			CorrectAnswer:    "Massa e aceleração",
			IncorrectAnswers: []string{"Massa e velocidade", "Peso e distância", "Energia e tempo"},
		},
		{
			ID:               "fis-004",
			Topic:            "Física",
			Difficulty:       domain.Hard,
			Prompt:           "Qual é o valor aproximado da velocidade da luz no vácuo?",
			CorrectAnswer:    "300.000 km/s",
			IncorrectAnswers: []string{"150.000 km/s", "3.000 km/s", "30.000 km/s"},
		},
		{
			ID:               "fis-005",
			Topic:            "Física",
			Difficulty:       domain.VeryHard,
			Prompt:           "Qual princípio afirma que é impossível conhecer simultaneamente a posição e o momento exatos de uma partícula?",
			CorrectAnswer:    "Princípio da incerteza de Heisenberg",
			IncorrectAnswers: []string{"Princípio de Pauli", "Princípio da relatividade", "Princípio de Arquimedes"},
		},
	}
}
