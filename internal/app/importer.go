package app

import (
	"bufio"
	"context"
	"fmt"
	"strings"

	"quizapp/internal/domain"
)

// ParseImport parses a bulk-import text block in the mini-format:
//
//	::Topic:: Prompt text here? {
//	=Correct answer
//	~Incorrect 1
//	~Incorrect 2
//	} [facil]
//
// The trailing difficulty tag is optional and defaults to facil. Errors carry
// the line number of the offending block.
func ParseImport(text string) ([]domain.QuestionRecord, error) {
	var (
		records []domain.QuestionRecord
		current *domain.QuestionRecord
		inBlock bool
		line    int
	)

	scanner := bufio.NewScanner(strings.NewReader(text))
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		line++
		raw := strings.TrimSpace(scanner.Text())
		if raw == "" {
			continue
		}

		switch {
		case strings.HasPrefix(raw, "::"):
			if current != nil {
				return nil, fmt.Errorf("linha %d: questão anterior não foi fechada com }", line)
			}
			rest := raw[2:]
			end := strings.Index(rest, "::")
			if end < 0 {
				return nil, fmt.Errorf("linha %d: tema sem :: de fechamento", line)
			}
			current = &domain.QuestionRecord{
				Topic:      strings.TrimSpace(rest[:end]),
				Difficulty: domain.Easy,
			}
			tail := strings.TrimSpace(rest[end+2:])
			if strings.HasSuffix(tail, "{") {
				tail = strings.TrimSpace(strings.TrimSuffix(tail, "{"))
				inBlock = true
			}
			current.Prompt = tail

		case current == nil:
			return nil, fmt.Errorf("linha %d: esperado início de questão ::Tema::", line)

		case !inBlock && raw == "{":
			inBlock = true

		case !inBlock:
			// Prompt continues until the opening brace.
			trimmed := raw
			if strings.HasSuffix(trimmed, "{") {
				trimmed = strings.TrimSpace(strings.TrimSuffix(trimmed, "{"))
				inBlock = true
			}
			if trimmed != "" {
				if current.Prompt != "" {
					current.Prompt += " "
				}
				current.Prompt += trimmed
			}

		case strings.HasPrefix(raw, "="):
			current.CorrectAnswer = strings.TrimSpace(raw[1:])

		case strings.HasPrefix(raw, "~"):
			current.IncorrectAnswers = append(current.IncorrectAnswers, strings.TrimSpace(raw[1:]))

		case strings.HasPrefix(raw, "}"):
			if tag := parseDifficultyTag(raw[1:]); tag != "" {
				if !tag.Valid() {
					return nil, fmt.Errorf("linha %d: dificuldade desconhecida %q", line, tag)
				}
				current.Difficulty = tag
			}
			if err := validateImported(*current, line); err != nil {
				return nil, err
			}
			records = append(records, *current)
			current = nil
			inBlock = false

		default:
			return nil, fmt.Errorf("linha %d: alternativa deve começar com = ou ~", line)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	if current != nil {
		return nil, fmt.Errorf("linha %d: questão não foi fechada com }", line)
	}
	if len(records) == 0 {
		return nil, fmt.Errorf("nenhuma questão encontrada no arquivo")
	}
	return records, nil
}

func parseDifficultyTag(tail string) domain.Difficulty {
	tail = strings.TrimSpace(tail)
	if !strings.HasPrefix(tail, "[") || !strings.HasSuffix(tail, "]") {
		return ""
	}
	return domain.Difficulty(strings.TrimSpace(tail[1 : len(tail)-1]))
}

func validateImported(record domain.QuestionRecord, line int) error {
	switch {
	case record.Prompt == "":
		return fmt.Errorf("linha %d: questão sem enunciado", line)
	case record.CorrectAnswer == "":
		return fmt.Errorf("linha %d: questão sem alternativa correta", line)
	case len(record.IncorrectAnswers) == 0:
		return fmt.Errorf("linha %d: questão sem alternativas incorretas", line)
	}
	return nil
}

// Import parses a mini-format block and stores every question it contains.
// Parsing is all-or-nothing: one malformed block rejects the whole file.
func (s *GameService) Import(ctx context.Context, text string) (int, error) {
	records, err := ParseImport(text)
	if err != nil {
		return 0, err
	}
	for _, record := range records {
		if _, err := s.questions.Create(ctx, record); err != nil {
			return 0, err
		}
	}
	return len(records), nil
}

// Questions exposes the admin CRUD of the underlying bank.
func (s *GameService) Questions() QuestionRepository { return s.questions }
