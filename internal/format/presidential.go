package format

import (
	"fmt"
	"strings"
)

// Token budgets per section type in the presidential format.
const (
	openingTokens  = 300
	mainTokens     = 400
	rebuttalTokens = 400
	closingTokens  = 250
)

// minPresidentialRounds is the floor applied to the configured round count:
// opening, at least one main round, rebuttals, and closing.
const minPresidentialRounds = 4

// Presidential is a formal two-candidate debate:
// opening statements, a configurable number of main argument rounds,
// rebuttals, and closing statements.
type Presidential struct {
	rounds int
}

// NewPresidential creates a presidential format with the given round count.
// Counts below the minimum of 4 are clamped up, so NewPresidential(2) and
// NewPresidential(4) produce identical section lists.
func NewPresidential(rounds int) *Presidential {
	if rounds < minPresidentialRounds {
		rounds = minPresidentialRounds
	}
	return &Presidential{rounds: rounds}
}

func (f *Presidential) Name() string { return "presidential" }

func (f *Presidential) DisplayName() string {
	return "Presidential Debate (Michael Douglass Format)"
}

func (f *Presidential) MinParticipants() int { return 2 }

func (f *Presidential) MaxParticipants() int { return 2 }

// Sections returns the full section list. Main argument rounds alternate
// speaker order, starting with [0,1] and flipping on each subsequent round.
func (f *Presidential) Sections() []Section {
	sections := []Section{{
		Name:         "Opening Statements",
		Description:  "Each candidate presents their initial position on the topic.",
		SpeakerOrder: []int{0, 1},
		MaxTokens:    openingTokens,
	}}

	mainRounds := f.rounds - 3
	if mainRounds < 1 {
		mainRounds = 1
	}
	for i := 0; i < mainRounds; i++ {
		order := []int{0, 1}
		if i%2 == 1 {
			order = []int{1, 0}
		}
		sections = append(sections, Section{
			Name:         fmt.Sprintf("Main Arguments - Round %d", i+1),
			Description:  "Candidates elaborate on their positions with supporting arguments.",
			SpeakerOrder: order,
			MaxTokens:    mainTokens,
		})
	}

	sections = append(sections, Section{
		Name:         "Rebuttals",
		Description:  "Candidates respond to their opponent's arguments.",
		SpeakerOrder: []int{1, 0},
		MaxTokens:    rebuttalTokens,
	})

	sections = append(sections, Section{
		Name:         "Closing Statements",
		Description:  "Final remarks and summation of positions.",
		SpeakerOrder: []int{0, 1},
		MaxTokens:    closingTokens,
	})

	return sections
}

// SystemPrompt builds the default system message for a candidate. The stance
// is derived from the role label embedded in roleName.
func (f *Presidential) SystemPrompt(topic, roleName, opponentName string) string {
	stance := "AGAINST"
	if strings.Contains(roleName, "FOR") || strings.Contains(roleName, "Pro") {
		stance = "IN FAVOR OF"
	}

	return fmt.Sprintf(`You are %s participating in a formal presidential-style debate.

TOPIC: %s

Your role is to argue %s the topic. Your opponent is %s.

Guidelines:
- Be persuasive, articulate, and professional
- Use evidence and logical reasoning
- Address your opponent's points when appropriate
- Maintain a respectful but firm debating stance
- Keep responses focused and within the time constraints
- Do not break character or acknowledge being an AI

Speak directly as if you are at a podium addressing an audience.`,
		roleName, topic, stance, opponentName)
}
