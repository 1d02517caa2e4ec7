package db

import (
	"errors"
	"time"
)

// ErrNotFound is returned when a record lookup matches nothing
var ErrNotFound = errors.New("record not found")

// Transfer event statuses
const (
	TransferStatusPending   = "pending"
	TransferStatusCompleted = "completed"
	TransferStatusCancelled = "cancelled"
)

// Kit conditions, best to worst
const (
	KitConditionExcellent = "excellent"
	KitConditionGood      = "good"
	KitConditionFair      = "fair"
	KitConditionPoor      = "poor"
	KitConditionDamaged   = "damaged"
)

// IsValidTransferStatus reports whether s is a known transfer event status
func IsValidTransferStatus(s string) bool {
	switch s {
	case TransferStatusPending, TransferStatusCompleted, TransferStatusCancelled:
		return true
	}
	return false
}

// IsValidKitCondition reports whether c is a known kit condition
func IsValidKitCondition(c string) bool {
	switch c {
	case KitConditionExcellent, KitConditionGood, KitConditionFair, KitConditionPoor, KitConditionDamaged:
		return true
	}
	return false
}

// Store represents a database store record
type Store struct {
	ID        string
	Name      string
	ShortName string
	Status    string
}

// Scenario represents a database scenario record
type Scenario struct {
	ID       string
	Title    string
	KitCount int
}

// Performance represents a scheduled, non-cancelled performance of a scenario
type Performance struct {
	ID         string
	Date       string // Format: "2006-01-02"
	StoreID    string
	ScenarioID string
}

// KitLocation represents the current store of one numbered kit
type KitLocation struct {
	ScenarioID     string
	KitNumber      int
	StoreID        string
	Condition      string
	ConditionNotes string
	UpdatedAt      time.Time
}

// KitTransferEvent represents a confirmed kit move
type KitTransferEvent struct {
	ID           string
	ScenarioID   string
	KitNumber    int
	FromStoreID  string
	ToStoreID    string
	TransferDate string // Format: "2006-01-02"
	Status       string
	Notes        string
	CreatedAt    time.Time
}
