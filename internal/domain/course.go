package domain

// DefaultDifficulty applies when a course record leaves difficulty unspecified.
const DefaultDifficulty = 1

// Course is one catalog entry. Prerequisites and Corequisites hold course IDs.
type Course struct {
	ID            string
	Name          string
	Description   string
	Units         int
	Difficulty    int
	Category      Category
	Prerequisites []string
	Corequisites  []string
	OriginalOrder int
	// TakenLabel is the pre-assigned term label from data import ("Fall, Year 2").
	TakenLabel string
}

// Plannable reports whether the course takes part in automatic planning.
func (c *Course) Plannable() bool {
	return c.Category.Plannable()
}

// Load returns the difficulty contribution of the course, defaulting to 1.
func (c *Course) Load() int {
	if c.Difficulty <= 0 {
		return DefaultDifficulty
	}
	return c.Difficulty
}

// DisplayName prefers Name and falls back to ID.
func (c *Course) DisplayName() string {
	return CoalesceStr(c.Name, c.ID)
}
