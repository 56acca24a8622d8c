package entity

import "time"

// Estados y prioridades de una reparación. returned es terminal y solo se
// alcanza desde fixed mediante la acción explícita MarkAsReturned.
const (
	RepairStatusPending    = "pending"
	RepairStatusInProgress = "in_progress"
	RepairStatusFixed      = "fixed"
	RepairStatusReturned   = "returned"

	RepairPriorityLow    = "low"
	RepairPriorityMedium = "medium"
	RepairPriorityHigh   = "high"
)

// Repair representa un ítem en reparación.
type Repair struct {
	ID               string
	ItemName         string
	IssueDescription string
	Status           string // pending, in_progress, fixed, returned
	Priority         string // low, medium, high
	AssignedTo       string
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

// ValidRepairStatus indica si el estado pertenece a la enumeración conocida.
func ValidRepairStatus(s string) bool {
	switch s {
	case RepairStatusPending, RepairStatusInProgress, RepairStatusFixed, RepairStatusReturned:
		return true
	}
	return false
}

// ValidRepairPriority indica si la prioridad pertenece a la enumeración conocida.
func ValidRepairPriority(p string) bool {
	switch p {
	case RepairPriorityLow, RepairPriorityMedium, RepairPriorityHigh:
		return true
	}
	return false
}
