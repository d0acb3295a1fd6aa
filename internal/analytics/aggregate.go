package analytics

import (
	"context"
	"math"
	"sort"
	"time"

	"github.com/tejasm/munim/internal/ledger"
)

const (
	kpiLimit        = 4
	topProductLimit = 5
)

// KPIs sums current expenses per department and returns the top entries by
// value. Ties keep the first-seen department order, so repeated calls over
// an unchanged ledger return identical slices.
func (s *Service) KPIs(ctx context.Context) ([]KPI, error) {
	txs, err := s.ledger.Transactions(ctx)
	if err != nil {
		return nil, err
	}

	totals := map[string]float64{}
	var order []string
	for _, t := range txs {
		if t.Type != ledger.TypeExpense {
			continue
		}
		dep := Department(t.Category)
		if _, seen := totals[dep]; !seen {
			order = append(order, dep)
		}
		totals[dep] += t.Amount
	}

	var total float64
	for _, v := range totals {
		total += v
	}

	kpis := make([]KPI, 0, len(order))
	for _, dep := range order {
		value := totals[dep]
		pct := 0.0
		if total > 0 {
			pct = value / total * 100
		}
		kpis = append(kpis, KPI{
			Name:       dep,
			Value:      value,
			Color:      DepartmentColor(dep),
			Percentage: pct,
		})
	}
	sort.SliceStable(kpis, func(i, j int) bool { return kpis[i].Value > kpis[j].Value })
	if len(kpis) > kpiLimit {
		kpis = kpis[:kpiLimit]
	}
	return kpis, nil
}

// Metrics computes month-over-month revenue growth in the service clock's
// calendar, with a zero-guard when the previous month had no income. The
// client and order counters are estimates derived from transaction counts;
// they stand in for CRM data that does not exist in this system.
func (s *Service) Metrics(ctx context.Context) (Metrics, error) {
	txs, err := s.ledger.Transactions(ctx)
	if err != nil {
		return Metrics{}, err
	}

	now := s.now()
	curYear, curMonth, _ := now.Date()
	// Year rollover is handled by normalizing through the first of the month.
	prev := time.Date(curYear, curMonth, 1, 0, 0, 0, 0, now.Location()).AddDate(0, -1, 0)
	prevYear, prevMonth, _ := prev.Date()

	var currRevenue, prevRevenue, totalRevenue float64
	var currCount int
	for _, t := range txs {
		if t.Type != ledger.TypeIncome {
			continue
		}
		totalRevenue += t.Amount
		y, m, _ := t.Date.In(now.Location()).Date()
		switch {
		case y == curYear && m == curMonth:
			currRevenue += t.Amount
			currCount++
		case y == prevYear && m == prevMonth:
			prevRevenue += t.Amount
		}
	}

	growth := 0.0
	if prevRevenue > 0 {
		growth = (currRevenue - prevRevenue) / prevRevenue * 100
	}

	ordersFulfilled := currCount
	return Metrics{
		MonthlyGrowthRate: growth,
		TotalRevenue:      totalRevenue,
		MonthlyRevenue:    currRevenue,
		GrowthPositive:    growth >= 0,
		CustomerRetention: 85, // placeholder: no customer data source
		NewClients:        currCount / 3,
		OrdersFulfilled:   ordersFulfilled,
		LeadsConverted:    int(math.Floor(float64(ordersFulfilled) * 0.3)),
	}, nil
}

// TopProducts ranks products by income revenue. Only income transactions
// carrying a product reference participate: ad-hoc sales without one are
// invisible to this ranking.
func (s *Service) TopProducts(ctx context.Context) ([]TopProduct, error) {
	txs, err := s.ledger.Transactions(ctx)
	if err != nil {
		return nil, err
	}
	products, err := s.ledger.Products(ctx)
	if err != nil {
		return nil, err
	}

	type stat struct {
		revenue  float64
		quantity int
	}
	stats := map[string]*stat{}
	var order []string
	for _, t := range txs {
		if t.Type != ledger.TypeIncome || t.ProductID == nil {
			continue
		}
		id := *t.ProductID
		st, ok := stats[id]
		if !ok {
			st = &stat{}
			stats[id] = st
			order = append(order, id)
		}
		st.revenue += t.Amount
		st.quantity++
	}

	byID := make(map[string]ledger.Product, len(products))
	for _, p := range products {
		byID[p.ID] = p
	}

	out := make([]TopProduct, 0, len(order))
	for _, id := range order {
		tp := TopProduct{
			ID:       id,
			Name:     "Unknown Product",
			Category: "Other",
			Revenue:  stats[id].revenue,
			Quantity: stats[id].quantity,
		}
		if p, ok := byID[id]; ok {
			tp.Name = p.Name
			tp.Category = p.Category
		}
		out = append(out, tp)
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Revenue > out[j].Revenue })
	if len(out) > topProductLimit {
		out = out[:topProductLimit]
	}
	return out, nil
}
