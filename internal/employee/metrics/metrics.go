package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics provides observability for the employee module.
type Metrics struct {
	EmployeesCreated prometheus.Counter
	EmployeesUpdated prometheus.Counter
	EmployeesDeleted prometheus.Counter
	DuplicateEmails  prometheus.Counter
}

// New creates the employee metrics and registers them on reg.
func New(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		EmployeesCreated: factory.NewCounter(prometheus.CounterOpts{
			Name: "roster_employees_created_total",
			Help: "Total number of employees created",
		}),
		EmployeesUpdated: factory.NewCounter(prometheus.CounterOpts{
			Name: "roster_employees_updated_total",
			Help: "Total number of employee updates applied",
		}),
		EmployeesDeleted: factory.NewCounter(prometheus.CounterOpts{
			Name: "roster_employees_deleted_total",
			Help: "Total number of employee delete requests served",
		}),
		DuplicateEmails: factory.NewCounter(prometheus.CounterOpts{
			Name: "roster_employee_duplicate_email_total",
			Help: "Writes rejected because the email belongs to another employee",
		}),
	}
}

func (m *Metrics) IncrementCreated() {
	if m != nil {
		m.EmployeesCreated.Inc()
	}
}

func (m *Metrics) IncrementUpdated() {
	if m != nil {
		m.EmployeesUpdated.Inc()
	}
}

func (m *Metrics) IncrementDeleted() {
	if m != nil {
		m.EmployeesDeleted.Inc()
	}
}

func (m *Metrics) IncrementDuplicateEmail() {
	if m != nil {
		m.DuplicateEmails.Inc()
	}
}
