package domain

type Priority string

const (
	PriorityLow    Priority = "LOW"
	PriorityMedium Priority = "MEDIUM"
	PriorityHigh   Priority = "HIGH"
	PriorityUrgent Priority = "URGENT"
)

// ValidPriorities is the canonical set of accepted priority strings.
var ValidPriorities = map[string]bool{
	"LOW": true, "MEDIUM": true, "HIGH": true, "URGENT": true,
}

type Frequency string

const (
	FrequencyDaily   Frequency = "DAILY"
	FrequencyWeekly  Frequency = "WEEKLY"
	FrequencyMonthly Frequency = "MONTHLY"
	FrequencyYearly  Frequency = "YEARLY"
)

// ValidFrequencies is the canonical set of accepted recurrence frequency strings.
var ValidFrequencies = map[string]bool{
	"DAILY": true, "WEEKLY": true, "MONTHLY": true, "YEARLY": true,
}

// Activity log actions recorded by the todo mutation path.
const (
	ActionCreated = "created"
	ActionDeleted = "deleted"
)
