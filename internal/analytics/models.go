// Package analytics derives KPIs, growth metrics, rankings, and activity
// feeds from the ledger, and owns the persisted task/resource/activity
// collections.
package analytics

import "time"

// KPI is one department-level aggregate for the dashboard chart.
type KPI struct {
	Name       string  `json:"name"`
	Value      float64 `json:"value"`
	Color      string  `json:"color"`
	Percentage float64 `json:"percentage"`
}

// Metrics summarizes month-over-month business performance.
//
// NewClients, OrdersFulfilled, LeadsConverted, and CustomerRetention are
// placeholder estimates derived from income transaction counts, not real
// CRM data.
type Metrics struct {
	MonthlyGrowthRate float64 `json:"monthlyGrowthRate"`
	TotalRevenue      float64 `json:"totalRevenue"`
	MonthlyRevenue    float64 `json:"monthlyRevenue"`
	GrowthPositive    bool    `json:"isGrowthPositive"`
	CustomerRetention int     `json:"customerRetention"`
	NewClients        int     `json:"newClients"`
	OrdersFulfilled   int     `json:"ordersFulfilled"`
	LeadsConverted    int     `json:"leadsConverted"`
}

// TopProduct is one entry of the revenue ranking.
type TopProduct struct {
	ID       string  `json:"id"`
	Name     string  `json:"name"`
	Category string  `json:"category"`
	Revenue  float64 `json:"revenue"`
	Quantity int     `json:"quantity"`
}

// Task statuses.
const (
	TaskPending    = "pending"
	TaskInProgress = "in_progress"
	TaskCompleted  = "completed"
	TaskOverdue    = "overdue"
)

// Task priorities.
const (
	PriorityLow    = "low"
	PriorityMedium = "medium"
	PriorityHigh   = "high"
)

// Task is a team task. Tasks are never deleted.
type Task struct {
	ID         string    `json:"id"`
	Title      string    `json:"title"`
	Assignee   string    `json:"assignee"`
	Deadline   time.Time `json:"deadline"`
	Status     string    `json:"status"`
	Priority   string    `json:"priority"`
	Department string    `json:"department"`
}

// TaskUpdate carries a partial task update; nil fields are left unchanged.
type TaskUpdate struct {
	Title      *string
	Assignee   *string
	Deadline   *time.Time
	Status     *string
	Priority   *string
	Department *string
}

// Resource types.
const (
	ResourceSoftware     = "software"
	ResourceHardware     = "hardware"
	ResourceSubscription = "subscription"
	ResourceInventory    = "inventory"
)

// Resource is a company resource. There is no update or delete operation.
type Resource struct {
	ID          string     `json:"id"`
	Name        string     `json:"name"`
	Type        string     `json:"type"`
	Cost        float64    `json:"cost"`
	Status      string     `json:"status"`
	RenewalDate *time.Time `json:"renewalDate,omitempty"`
	Quantity    *int       `json:"quantity,omitempty"`
}

// Activity types.
const (
	ActivityTask    = "task"
	ActivitySale    = "sale"
	ActivityExpense = "expense"
)

// Activity is one audit or feed entry. Persisted activities come from task
// and resource mutations; synthesized ones (ids prefixed "tx_") are derived
// from recent transactions on every read and never stored.
type Activity struct {
	ID          string    `json:"id"`
	Type        string    `json:"type"`
	Description string    `json:"description"`
	Timestamp   time.Time `json:"timestamp"`
	Amount      *float64  `json:"amount,omitempty"`
	Status      string    `json:"status"`
	Client      string    `json:"client,omitempty"`
	Department  string    `json:"department,omitempty"`
}
