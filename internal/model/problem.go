package model

// ProblemID uniquely identifies a generated problem
type ProblemID string

// Problem is a single arithmetic question. Problems are immutable once
// created and owned by exactly one game.
type Problem struct {
	ID          ProblemID `json:"id"`
	Title       string    `json:"title"` // human-readable expression, e.g. "3 x 4"
	Description string    `json:"description"`
	Difficulty  int       `json:"difficulty"` // >= 1
	Solution    int       `json:"solution"`
}

// ProblemStatement is the client-facing shape of a problem. It carries
// everything except the solution, which must never leave the server.
type ProblemStatement struct {
	ID          ProblemID `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Difficulty  int       `json:"difficulty"`
}

// Statement returns the client-facing view of the problem
func (p *Problem) Statement() *ProblemStatement {
	return &ProblemStatement{
		ID:          p.ID,
		Title:       p.Title,
		Description: p.Description,
		Difficulty:  p.Difficulty,
	}
}
