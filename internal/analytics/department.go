package analytics

// DepartmentOther is the fallback bucket for unmapped categories.
const DepartmentOther = "Other"

// categoryDepartments maps transaction categories to aggregation
// departments. The mapping is total: anything absent resolves to Other.
var categoryDepartments = map[string]string{
	"Sales":       "Sales",
	"Services":    "Sales",
	"Rent":        "Operations",
	"Utilities":   "Operations",
	"Supplies":    "Operations",
	"Food":        "Operations",
	"Shopping":    "Marketing",
	"Salary":      "HR",
	"Training":    "HR",
	"Marketing":   "Marketing",
	"Advertising": "Marketing",
	"Software":    "IT",
	"Hardware":    "IT",
}

var departmentColors = map[string]string{
	"Sales":      "#10b981",
	"Marketing":  "#3b82f6",
	"Operations": "#f59e0b",
	"HR":         "#8b5cf6",
	"IT":         "#06b6d4",
	"Finance":    "#ef4444",
	"Other":      "#6b7280",
}

// Department resolves a transaction category to its department.
func Department(category string) string {
	if d, ok := categoryDepartments[category]; ok {
		return d
	}
	return DepartmentOther
}

// DepartmentColor returns the chart color for a department, falling back to
// the Other color.
func DepartmentColor(department string) string {
	if c, ok := departmentColors[department]; ok {
		return c
	}
	return departmentColors[DepartmentOther]
}
