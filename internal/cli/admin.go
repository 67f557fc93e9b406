package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"quizapp/internal/admin"
	"quizapp/internal/config"
	"quizapp/internal/domain"
	"quizapp/internal/gateway"
)

// NewAdminCmd groups the dashboard operations behind one authenticated command.
func NewAdminCmd(configPath *string) *cobra.Command {
	var (
		baseURL  string
		email    string
		password string
	)
	cmd := &cobra.Command{
		Use:   "admin",
		Short: "Manage questions, configuration, and rooms",
	}
	cmd.PersistentFlags().StringVar(&baseURL, "url", "", "backend base URL (overrides config)")
	cmd.PersistentFlags().StringVar(&email, "email", "", "account email")
	cmd.PersistentFlags().StringVar(&password, "password", "", "account password")

	dial := func(ctx context.Context) (*admin.Service, error) {
		cfg, err := config.Load(*configPath)
		if err != nil {
			return nil, err
		}
		url := baseURL
		if url == "" {
			url = cfg.Client.BaseURL
		}
		if url == "" {
			url = "http://localhost:3000/api"
		}
		client := gateway.New(url, gateway.NewMemoryStore())
		if _, err := client.Login(ctx, email, password); err != nil {
			return nil, fmt.Errorf("login: %w", err)
		}
		return admin.NewService(client), nil
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "questions",
		Short: "List the question bank",
		RunE: func(cmd *cobra.Command, args []string) error {
			service, err := dial(cmd.Context())
			if err != nil {
				return err
			}
			records, err := service.Questions(cmd.Context())
			if err != nil {
				return err
			}
			for _, record := range records {
				fmt.Printf("%s\t[%s/%s]\t%s\n", record.ID, record.Topic, record.Difficulty, record.Prompt)
			}
			return nil
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "import <arquivo>",
		Short: "Bulk-import questions from a text file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			text, err := os.ReadFile(args[0])
			if err != nil {
				return err
			}
			service, err := dial(cmd.Context())
			if err != nil {
				return err
			}
			message, err := service.Import(cmd.Context(), string(text))
			if err != nil {
				return err
			}
			fmt.Println(message)
			return nil
		},
	})

	var (
		mode        string
		allowRepeat bool
		topics      []string
	)
	room := &cobra.Command{
		Use:   "room",
		Short: "Create a room and print its join PIN",
		RunE: func(cmd *cobra.Command, args []string) error {
			service, err := dial(cmd.Context())
			if err != nil {
				return err
			}
			pin, err := service.CreateRoom(cmd.Context(), domain.GameConfig{
				Mode:         domain.GameMode(mode),
				AllowRepeat:  allowRepeat,
				ActiveTopics: topics,
			})
			if err != nil {
				return err
			}
			fmt.Println(pin)
			return nil
		},
	}
	room.Flags().StringVar(&mode, "mode", string(domain.ModeClassic), "game mode (classico or alternativo)")
	room.Flags().BoolVar(&allowRepeat, "allow-repeat", false, "allow repeated questions")
	room.Flags().StringSliceVar(&topics, "topics", nil, "active topics (empty means all)")
	cmd.AddCommand(room)

	cmd.AddCommand(&cobra.Command{
		Use:   "reset",
		Short: "Clear every player's asked-question history",
		RunE: func(cmd *cobra.Command, args []string) error {
			service, err := dial(cmd.Context())
			if err != nil {
				return err
			}
			if err := service.ResetHistory(cmd.Context()); err != nil {
				return err
			}
			fmt.Println("histórico resetado")
			return nil
		},
	})

	return cmd
}
