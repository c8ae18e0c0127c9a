package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics provides observability for attendance marking.
type Metrics struct {
	Marks           *prometheus.CounterVec
	UnknownEmployee prometheus.Counter
}

// New creates the attendance metrics and registers them on reg.
func New(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		Marks: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "roster_attendance_marks_total",
			Help: "Attendance marks written, by status",
		}, []string{"status"}),
		UnknownEmployee: factory.NewCounter(prometheus.CounterOpts{
			Name: "roster_attendance_unknown_employee_total",
			Help: "Marks rejected because the employee does not exist",
		}),
	}
}

func (m *Metrics) IncrementMark(status string) {
	if m != nil {
		m.Marks.WithLabelValues(status).Inc()
	}
}

func (m *Metrics) IncrementUnknownEmployee() {
	if m != nil {
		m.UnknownEmployee.Inc()
	}
}
