package domain

// Difficulty is the ordered tier ladder used for question selection.
// The wire values are the backend's Portuguese labels.
type Difficulty string

const (
	VeryEasy Difficulty = "muito_facil"
	Easy     Difficulty = "facil"
	Medium   Difficulty = "medio"
	Hard     Difficulty = "dificil"
	VeryHard Difficulty = "muito_dificil"
)

// Tiers lists all difficulties from easiest to hardest.
var Tiers = []Difficulty{VeryEasy, Easy, Medium, Hard, VeryHard}

// Level returns the 1-based position of the tier on the ladder, or 0 if unknown.
func (d Difficulty) Level() int {
	for i, tier := range Tiers {
		if tier == d {
			return i + 1
		}
	}
	return 0
}

// Valid reports whether d is one of the five known tiers.
func (d Difficulty) Valid() bool {
	return d.Level() != 0
}

// TierForLevel maps a 1-based level back to its difficulty, defaulting to VeryEasy.
func TierForLevel(level int) Difficulty {
	if level < 1 || level > len(Tiers) {
		return VeryEasy
	}
	return Tiers[level-1]
}

// Question is the playable view of a question as shipped to players.
// The correct option is never distinguished in this form.
type Question struct {
	ID         string     `json:"id"`
	Topic      string     `json:"tema"`
	Difficulty Difficulty `json:"dificuldade"`
	Prompt     string     `json:"enunciado"`
	Options    []string   `json:"alternativas"`
	Level      int        `json:"nivel,omitempty"`
}

// QuestionRecord is the full admin-side record, including the answer key.
type QuestionRecord struct {
	ID               string     `json:"id,omitempty"`
	Topic            string     `json:"tema"`
	Difficulty       Difficulty `json:"dificuldade"`
	Prompt           string     `json:"enunciado"`
	CorrectAnswer    string     `json:"alternativa_correta"`
	IncorrectAnswers []string   `json:"alternativas_incorretas"`
}

// GameMode selects how the backend walks the tier ladder.
type GameMode string

const (
	ModeClassic     GameMode = "classico"
	ModeAlternative GameMode = "alternativo"
)

// GameConfig is the teacher-controlled room configuration record.
type GameConfig struct {
	ActiveTopics []string `json:"temas_ativos"`
	Mode         GameMode `json:"modo_de_jogo"`
	AllowRepeat  bool     `json:"permitir_repeticao"`
}

// AnswerResult is the backend's verdict on a single answer submission.
// Score is authoritative; clients never compute it locally.
type AnswerResult struct {
	Correct      bool      `json:"correct"`
	Feedback     string    `json:"feedback"`
	Score        int       `json:"score"`
	GameOver     bool      `json:"gameOver"`
	NextQuestion *Question `json:"nextQuestion,omitempty"`
}

// HintKind tags the three hint variants. Wire values follow the backend contract.
type HintKind string

const (
	HintEliminate HintKind = "eliminar"
	HintAudience  HintKind = "plateia"
	HintAssist    HintKind = "chat"
)

// Valid reports whether k is a known hint kind.
func (k HintKind) Valid() bool {
	switch k {
	case HintEliminate, HintAudience, HintAssist:
		return true
	}
	return false
}

// HintEffect is the rendered consequence of a hint request. Remove is set for
// eliminate hints; Message for audience and assist hints.
type HintEffect struct {
	Kind    HintKind `json:"type"`
	Remove  []string `json:"remove,omitempty"`
	Message string   `json:"message,omitempty"`
}

// User is the minimal display info stored alongside the credential.
type User struct {
	Name  string `json:"name"`
	Email string `json:"email"`
}

// Room is a joinable game room created from a configuration.
type Room struct {
	PIN    string     `json:"pin"`
	Config GameConfig `json:"config"`
}
