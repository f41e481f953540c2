package anima

// Role identifies who a transcript turn belongs to.
type Role string

const (
	RoleUser      Role = "user"
	RoleAgent     Role = "agent"
	RoleReasoning Role = "reasoning"
	RoleSystem    Role = "system"
)
