package health

import (
	"context"
	"sort"
)

// Status represents the aggregated health status.
type Status string

const (
	// Healthy indicates all components are operational.
	Healthy Status = "ok"
	// Degraded indicates an optional component is failing.
	Degraded Status = "degraded"
	// Unhealthy indicates the database is unreachable.
	Unhealthy Status = "error"
)

// CheckResult represents an individual component health check outcome.
type CheckResult string

const (
	// CheckOK indicates a passing health check.
	CheckOK CheckResult = "ok"
	// CheckError indicates a failing health check.
	CheckError CheckResult = "error"
)

const databaseCheck = "database"

// Report aggregates health check results.
type Report struct {
	Status Status
	Checks map[string]CheckResult
}

type namedCheck struct {
	name string
	fn   Checker
}

// Service coordinates health checks.
type Service struct {
	db     DBPinger
	checks []namedCheck
}

// New creates a Service that always probes the database.
func New(db DBPinger) *Service {
	return &Service{db: db}
}

// WithCheck registers an optional probe. Its failure degrades the report
// but does not make it unhealthy.
func (s *Service) WithCheck(name string, fn Checker) *Service {
	if name == "" || name == databaseCheck || fn == nil {
		return s
	}
	s.checks = append(s.checks, namedCheck{name: name, fn: fn})
	sort.Slice(s.checks, func(i, j int) bool { return s.checks[i].name < s.checks[j].name })
	return s
}

// Check runs health checks against all components.
func (s *Service) Check(ctx context.Context) Report {
	checks := make(map[string]CheckResult, len(s.checks)+1)

	status := Healthy
	if err := s.db.Ping(ctx); err != nil {
		checks[databaseCheck] = CheckError
		status = Unhealthy
	} else {
		checks[databaseCheck] = CheckOK
	}

	for _, c := range s.checks {
		if err := c.fn(ctx); err != nil {
			checks[c.name] = CheckError
			if status == Healthy {
				status = Degraded
			}
			continue
		}
		checks[c.name] = CheckOK
	}

	return Report{Status: status, Checks: checks}
}
