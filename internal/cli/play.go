package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"quizapp/internal/config"
	"quizapp/internal/domain"
	"quizapp/internal/game"
	"quizapp/internal/gateway"
	"quizapp/internal/lobby"
)

// NewPlayCmd builds the terminal player client.
func NewPlayCmd(configPath *string) *cobra.Command {
	var baseURL string
	cmd := &cobra.Command{
		Use:   "play",
		Short: "Join a room and play from the terminal",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runPlay(cmd.Context(), *configPath, baseURL)
		},
	}
	cmd.Flags().StringVar(&baseURL, "url", "", "backend base URL (overrides config)")
	return cmd
}

func runPlay(ctx context.Context, configPath, urlFlag string) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}

	baseURL := urlFlag
	if baseURL == "" {
		baseURL = cfg.Client.BaseURL
	}
	if baseURL == "" {
		baseURL = "http://localhost:3000/api"
	}

	client := gateway.New(baseURL, gateway.NewMemoryStore())
	reader := bufio.NewReader(os.Stdin)

	pin := lobby.PinField{}
	pin.Set(prompt(reader, "PIN da sala: "))
	nickname := prompt(reader, "Apelido: ")

	seed, err := lobby.NewBootstrap(client).Start(ctx, pin.Value(), nickname)
	if err != nil {
		return fmt.Errorf("não foi possível entrar na sala: %w", err)
	}

	views := make(chan game.View, 8)
	controller, err := game.New(client, seed, game.WithObserver(func(v game.View) {
		views <- v
	}))
	if err != nil {
		return err
	}
	defer controller.Close()

	render(controller.Snapshot())
	go func() {
		for v := range views {
			render(v)
		}
	}()

	for {
		line, err := reader.ReadString('\n')
		if err != nil {
			return nil
		}
		input := strings.TrimSpace(line)

		view := controller.Snapshot()
		if view.Phase == game.PhaseEnded {
			fmt.Printf("Pontuação final: %d\n", view.Score)
			return nil
		}

		switch input {
		case "q", "sair":
			return nil
		case "e":
			reportHint(controller.RequestHint(ctx, domain.HintEliminate))
		case "p":
			reportHint(controller.RequestHint(ctx, domain.HintAudience))
		case "c":
			reportHint(controller.RequestHint(ctx, domain.HintAssist))
		default:
			idx, convErr := strconv.Atoi(input)
			if convErr != nil || idx < 1 || idx > len(view.Question.Options) {
				fmt.Println("Digite o número de uma alternativa, e/p/c para ajuda ou q para sair.")
				continue
			}
			if err := controller.SelectAnswer(ctx, view.Question.Options[idx-1]); err != nil {
				fmt.Printf("Resposta não enviada: %v\n", err)
			}
		}
	}
}

func prompt(reader *bufio.Reader, label string) string {
	fmt.Print(label)
	line, _ := reader.ReadString('\n')
	return strings.TrimSpace(line)
}

func reportHint(err error) {
	if err == nil {
		return
	}
	if errors.Is(err, game.ErrEliminateUsed) || errors.Is(err, game.ErrHintUnavailable) {
		fmt.Println(err)
		return
	}
	fmt.Printf("Ajuda indisponível: %v\n", err)
}

func render(v game.View) {
	switch v.Phase {
	case game.PhaseAnswering:
		fmt.Printf("\n[%s] Nível %d | Pontos: %d\n", v.Question.Topic, v.Level, v.Score)
		fmt.Println(v.Question.Prompt)
		for i, option := range v.Question.Options {
			if v.IsSuppressed(option) {
				continue
			}
			fmt.Printf("  %d) %s\n", i+1, option)
		}
		if v.AudienceMessage != "" {
			fmt.Println(v.AudienceMessage)
		}
		if v.AssistMessage != "" {
			fmt.Println(v.AssistMessage)
		}
	case game.PhaseRevealing:
		if v.Feedback != nil {
			fmt.Println(v.Feedback.Message)
		}
		fmt.Printf("Pontos: %d\n", v.Score)
	case game.PhaseEnded:
		if v.Feedback != nil {
			fmt.Println(v.Feedback.Message)
		}
		fmt.Printf("Fim de jogo, %s. Pontuação final: %d\n", v.Nickname, v.Score)
	}
}
