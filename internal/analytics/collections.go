package analytics

import (
	"context"
	"sort"

	"github.com/google/uuid"

	"github.com/tejasm/munim/internal/ledger"
)

const (
	recentTransactionCount = 10
	activityFeedLimit      = 20
)

// Tasks returns a copy of the task collection.
func (s *Service) Tasks() []Task {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]Task, len(s.tasks))
	copy(out, s.tasks)
	return out
}

// AddTask assigns a fresh id, appends the task, persists the whole
// collection, and logs an audit activity.
func (s *Service) AddTask(t Task) Task {
	t.ID = uuid.NewString()

	s.mu.Lock()
	s.tasks = append(s.tasks, t)
	s.persist(keyTasks, s.tasks)
	s.appendActivity(Activity{
		Type:        ActivityTask,
		Description: "New task created: " + t.Title,
		Timestamp:   s.now(),
		Status:      "completed",
		Department:  t.Department,
	})
	s.mu.Unlock()
	return t
}

// UpdateTask merges the non-nil fields of u into the task with the given
// id. An unknown id is a no-op returning nil: nothing is written and no
// activity is logged.
func (s *Service) UpdateTask(id string, u TaskUpdate) *Task {
	s.mu.Lock()
	defer s.mu.Unlock()

	idx := -1
	for i := range s.tasks {
		if s.tasks[i].ID == id {
			idx = i
			break
		}
	}
	if idx == -1 {
		return nil
	}

	t := &s.tasks[idx]
	if u.Title != nil {
		t.Title = *u.Title
	}
	if u.Assignee != nil {
		t.Assignee = *u.Assignee
	}
	if u.Deadline != nil {
		t.Deadline = *u.Deadline
	}
	if u.Status != nil {
		t.Status = *u.Status
	}
	if u.Priority != nil {
		t.Priority = *u.Priority
	}
	if u.Department != nil {
		t.Department = *u.Department
	}

	s.persist(keyTasks, s.tasks)
	s.appendActivity(Activity{
		Type:        ActivityTask,
		Description: "Task updated: " + t.Title,
		Timestamp:   s.now(),
		Status:      "completed",
		Department:  t.Department,
	})
	updated := *t
	return &updated
}

// Resources returns a copy of the resource collection.
func (s *Service) Resources() []Resource {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]Resource, len(s.resources))
	copy(out, s.resources)
	return out
}

// AddResource mirrors AddTask; the audit activity carries the resource
// cost as its amount.
func (s *Service) AddResource(r Resource) Resource {
	r.ID = uuid.NewString()

	s.mu.Lock()
	s.resources = append(s.resources, r)
	s.persist(keyResources, s.resources)
	cost := r.Cost
	s.appendActivity(Activity{
		Type:        ActivityExpense,
		Description: "New resource added: " + r.Name,
		Timestamp:   s.now(),
		Amount:      &cost,
		Status:      "completed",
	})
	s.mu.Unlock()
	return r
}

// AddActivity appends an explicit activity and persists the collection.
func (s *Service) AddActivity(a Activity) Activity {
	s.mu.Lock()
	a = s.appendActivity(a)
	s.mu.Unlock()
	return a
}

// appendActivity assigns an id, appends, and persists. Callers hold s.mu.
func (s *Service) appendActivity(a Activity) Activity {
	a.ID = uuid.NewString()
	s.activities = append(s.activities, a)
	s.persist(keyActivities, s.activities)
	return a
}

// Activities merges the persisted activities with ones synthesized from
// the most recent ledger transactions, newest first, capped to the feed
// limit. Synthesized entries are recomputed on every call and never
// persisted: transactions are ground truth, activities are a view.
func (s *Service) Activities(ctx context.Context) ([]Activity, error) {
	synthesized, err := s.activitiesFromTransactions(ctx)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	merged := make([]Activity, 0, len(s.activities)+len(synthesized))
	merged = append(merged, s.activities...)
	s.mu.Unlock()
	merged = append(merged, synthesized...)

	sort.SliceStable(merged, func(i, j int) bool {
		return merged[i].Timestamp.After(merged[j].Timestamp)
	})
	if len(merged) > activityFeedLimit {
		merged = merged[:activityFeedLimit]
	}
	return merged, nil
}

func (s *Service) activitiesFromTransactions(ctx context.Context) ([]Activity, error) {
	txs, err := s.ledger.Transactions(ctx)
	if err != nil {
		return nil, err
	}
	if len(txs) > recentTransactionCount {
		txs = txs[len(txs)-recentTransactionCount:]
	}

	out := make([]Activity, 0, len(txs))
	for _, t := range txs {
		amount := t.Amount
		a := Activity{
			ID:         "tx_" + t.ID,
			Timestamp:  t.Date,
			Amount:     &amount,
			Status:     "completed",
			Department: Department(t.Category),
		}
		if t.Type == ledger.TypeIncome {
			a.Type = ActivitySale
			a.Description = "Sale: " + t.Description
			a.Client = "Customer"
		} else {
			a.Type = ActivityExpense
			a.Description = "Expense: " + t.Description
		}
		out = append(out, a)
	}
	return out, nil
}
