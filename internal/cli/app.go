package cli

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/prometheus/client_golang/prometheus"

	attendancehandler "roster/internal/attendance/handler"
	attendancemetrics "roster/internal/attendance/metrics"
	attendanceservice "roster/internal/attendance/service"
	attendancestore "roster/internal/attendance/store"
	employeehandler "roster/internal/employee/handler"
	employeemetrics "roster/internal/employee/metrics"
	employeeservice "roster/internal/employee/service"
	employeestore "roster/internal/employee/store"
	"roster/internal/platform/config"
	"roster/internal/platform/metrics"
	"roster/internal/platform/mongo"
	"roster/internal/platform/postgres"
	reporthandler "roster/internal/report/handler"
	reportmetrics "roster/internal/report/metrics"
	reportservice "roster/internal/report/service"
	httptransport "roster/internal/transport/http"
)

// stores is the opened persistence backend. close releases its connections; tx is
// nil for backends without multi-statement transactions.
type stores struct {
	employees  employeeservice.Store
	attendance attendanceservice.Store
	tx         employeeservice.TxRunner
	close      func(ctx context.Context) error
}

// openStores connects to the configured backend and brings its schema up to date.
func openStores(ctx context.Context, cfg config.Store, logger *slog.Logger) (*stores, error) {
	switch cfg.Driver {
	case config.StorePostgres:
		db, err := postgres.Open(ctx, cfg.DatabaseURL)
		if err != nil {
			return nil, err
		}
		if err := postgres.Migrate(ctx, db); err != nil {
			_ = db.Close()
			return nil, err
		}
		logger.InfoContext(ctx, "postgres store ready")
		return &stores{
			employees:  employeestore.NewPostgres(db),
			attendance: attendancestore.NewPostgres(db),
			tx:         postgres.NewTxRunner(db),
			close:      func(context.Context) error { return db.Close() },
		}, nil

	case config.StoreMongo:
		client, err := mongo.Connect(ctx, cfg.MongoURI)
		if err != nil {
			return nil, err
		}
		db := client.Database(cfg.MongoDatabase)
		if err := mongo.EnsureIndexes(ctx, db); err != nil {
			_ = client.Disconnect(ctx)
			return nil, err
		}
		logger.InfoContext(ctx, "mongo store ready", "database", cfg.MongoDatabase)
		return &stores{
			employees:  employeestore.NewMongo(db),
			attendance: attendancestore.NewMongo(db),
			close:      client.Disconnect,
		}, nil

	case config.StoreMemory, "":
		logger.WarnContext(ctx, "using in-memory store; data is lost on exit")
		return &stores{
			employees:  employeestore.NewInMemory(),
			attendance: attendancestore.NewInMemory(),
			close:      func(context.Context) error { return nil },
		}, nil

	default:
		return nil, fmt.Errorf("unknown store driver %q", cfg.Driver)
	}
}

// newRouter wires services and handlers over st and returns the API handler.
func newRouter(cfg config.Config, st *stores, logger *slog.Logger, reg *prometheus.Registry) (http.Handler, error) {
	employeeOpts := []employeeservice.Option{
		employeeservice.WithLogger(logger),
		employeeservice.WithMetrics(employeemetrics.New(reg)),
	}
	if cfg.Attendance.CascadeOnDelete {
		employeeOpts = append(employeeOpts, employeeservice.WithAttendanceCleaner(st.attendance))
	}
	if st.tx != nil {
		employeeOpts = append(employeeOpts, employeeservice.WithTxRunner(st.tx))
	}
	employees, err := employeeservice.New(st.employees, employeeOpts...)
	if err != nil {
		return nil, fmt.Errorf("init employee service: %w", err)
	}

	attendance, err := attendanceservice.New(st.attendance, st.employees,
		attendanceservice.WithLocation(cfg.Attendance.Location),
		attendanceservice.WithLogger(logger),
		attendanceservice.WithMetrics(attendancemetrics.New(reg)),
	)
	if err != nil {
		return nil, fmt.Errorf("init attendance service: %w", err)
	}

	reports, err := reportservice.New(st.employees, st.attendance,
		reportservice.WithLogger(logger),
		reportservice.WithMetrics(reportmetrics.New(reg)),
	)
	if err != nil {
		return nil, fmt.Errorf("init report service: %w", err)
	}

	return httptransport.NewRouter(httptransport.Deps{
		Logger:         logger,
		Metrics:        metrics.New(reg),
		Gatherer:       reg,
		RequestTimeout: cfg.Server.RequestTimeout,
		Modules: []httptransport.Registrar{
			reporthandler.New(reports, logger),
			employeehandler.New(employees, logger),
			attendancehandler.New(attendance, logger),
		},
	}), nil
}
