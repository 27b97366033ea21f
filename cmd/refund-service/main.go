package main

import (
	"fmt"
	"log"
	"log/slog"
	"net/http"
	"time"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/nusakarsa/refund-service/internal/config"
	delivery "github.com/nusakarsa/refund-service/internal/delivery/http"
	"github.com/nusakarsa/refund-service/internal/infrastructure/gateway"
	publisher "github.com/nusakarsa/refund-service/internal/infrastructure/kafka"
	"github.com/nusakarsa/refund-service/internal/infrastructure/metrics"
	"github.com/nusakarsa/refund-service/internal/infrastructure/migrate"
	"github.com/nusakarsa/refund-service/internal/infrastructure/postgres"
	"github.com/nusakarsa/refund-service/internal/infrastructure/postgres/repository"
	analyticsusecase "github.com/nusakarsa/refund-service/internal/usecase/analytics"
	escalationusecase "github.com/nusakarsa/refund-service/internal/usecase/escalation"
	refundusecase "github.com/nusakarsa/refund-service/internal/usecase/refund"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("failed to load .env")
	}
	// Reading config
	cfg := config.MustLoad()
	// Init database
	db := postgres.MustInitDB(cfg)

	if cfg.RefundDB.MigrationPath != "" {
		if err := migrate.RunMigrations(db, cfg.RefundDB.MigrationPath); err != nil {
			log.Fatalf("failed to run migrations: %v", err)
		}
	}

	// Init kafka publisher
	brokers := []string{fmt.Sprintf("%s:%s", cfg.KafkaService.Host, cfg.KafkaService.Port)}
	pub := publisher.NewDefaultKafkaPublisher(brokers)
	defer pub.Close()

	// Init repositories
	refundRepo := repository.NewDefaultRefundRepository(db)
	workflowRepo := repository.NewDefaultWorkflowRepository(db)
	caseRepo := repository.NewDefaultEscalationCaseRepository(db)
	approverDir := repository.NewDefaultApproverDirectory(db)
	orderReader := repository.NewDefaultOrderReader(db)
	fundRepo := repository.NewDefaultInsuranceFundRepository(db)

	// Init payment gateway client
	paymentGateway := gateway.NewHTTPGateway(
		cfg.PaymentGateway.Address,
		cfg.PaymentGateway.APIKey,
		time.Duration(cfg.PaymentGateway.TimeoutSeconds)*time.Second,
	)

	refundMetrics := metrics.NewRefundMetrics()

	// Init usecases
	refundUc := refundusecase.NewDefaultRefundUsecase(
		refundRepo,
		workflowRepo,
		orderReader,
		approverDir,
		paymentGateway,
		fundRepo,
		pub,
		refundMetrics,
	)
	escalationUc := escalationusecase.NewDefaultEscalationUsecase(
		caseRepo,
		refundRepo,
		fundRepo,
		pub,
		refundMetrics,
	)
	analyticsUc := analyticsusecase.NewDefaultAnalyticsUsecase(
		refundRepo,
		caseRepo,
		fundRepo,
	)

	// Overdue step sweep
	go func() {
		ticker := time.NewTicker(time.Duration(cfg.Workflow.OverdueSweepSeconds) * time.Second)
		defer ticker.Stop()
		for {
			<-ticker.C
			if _, err := refundUc.ProcessOverdueSteps(); err != nil {
				slog.Error("overdue sweep failed", "error", err.Error())
			}
		}
	}()

	// Metrics endpoint
	go func() {
		mux := http.NewServeMux()
		mux.Handle("/metrics", promhttp.Handler())
		addr := fmt.Sprintf("%s:%s", cfg.MetricsServer.Host, cfg.MetricsServer.Port)
		log.Printf("metrics server started on %s\n", addr)
		if err := http.ListenAndServe(addr, mux); err != nil {
			log.Fatalf("metrics server failed: %v\n", err)
		}
	}()

	router := delivery.NewRouter(
		delivery.NewRefundHandler(refundUc),
		delivery.NewEscalationHandler(escalationUc),
		delivery.NewAnalyticsHandler(analyticsUc),
	)

	addr := fmt.Sprintf("%s:%s", cfg.HTTPServer.Host, cfg.HTTPServer.Port)
	log.Printf("http server started on %s\n", addr)
	if err := router.Run(addr); err != nil {
		log.Fatalf("failed to serve: %v\n", err)
	}
}
