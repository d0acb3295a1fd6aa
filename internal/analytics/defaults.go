package analytics

import "time"

// defaultTasks seeds a new or unreadable task snapshot.
func defaultTasks(now time.Time) []Task {
	return []Task{
		{
			ID:         "1",
			Title:      "Review Q4 Financial Reports",
			Assignee:   "Finance Team",
			Deadline:   now.AddDate(0, 0, 7),
			Status:     TaskInProgress,
			Priority:   PriorityHigh,
			Department: "Finance",
		},
		{
			ID:         "2",
			Title:      "Update Product Inventory",
			Assignee:   "Operations Team",
			Deadline:   now.AddDate(0, 0, 3),
			Status:     TaskPending,
			Priority:   PriorityMedium,
			Department: "Operations",
		},
		{
			ID:         "3",
			Title:      "Client Onboarding Process",
			Assignee:   "Sales Team",
			Deadline:   now.AddDate(0, 0, 5),
			Status:     TaskCompleted,
			Priority:   PriorityHigh,
			Department: "Sales",
		},
	}
}

// defaultResources seeds a new or unreadable resource snapshot.
func defaultResources(now time.Time) []Resource {
	monthly := now.AddDate(0, 1, 0)
	bimonthly := now.AddDate(0, 2, 0)
	qty := 50
	return []Resource{
		{
			ID:          "1",
			Name:        "Office 365 Business",
			Type:        ResourceSubscription,
			Cost:        12.50,
			Status:      "active",
			RenewalDate: &monthly,
		},
		{
			ID:          "2",
			Name:        "Accounting Software",
			Type:        ResourceSoftware,
			Cost:        29.99,
			Status:      "active",
			RenewalDate: &bimonthly,
		},
		{
			ID:       "3",
			Name:     "Office Supplies",
			Type:     ResourceInventory,
			Cost:     250.00,
			Status:   "active",
			Quantity: &qty,
		},
	}
}
