package main

import (
	"context"
	"log"
	"net/http"

	"github.com/go-chi/chi/v5"

	"payclock/internal/config"
	"payclock/internal/domain/leave"
	"payclock/internal/domain/loan"
	"payclock/internal/domain/payroll"
	"payclock/internal/domain/punch"
	"payclock/internal/domain/roster"
	"payclock/internal/domain/timesheet"
	"payclock/internal/store"
	"payclock/internal/transport/http/handlers"
	"payclock/internal/transport/http/middleware"
)

func main() {
	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		log.Fatalf("config: %v", err)
	}

	ctx := context.Background()
	tab, cleanup, err := openStore(ctx, cfg)
	if err != nil {
		log.Fatalf("store: %v", err)
	}
	defer cleanup()

	rosterStore := roster.NewStore(tab)
	if cfg.StoreDriver == "memory" {
		seeded, err := roster.Seed(ctx, rosterStore)
		if err != nil {
			log.Fatalf("seed roster: %v", err)
		}
		if seeded > 0 {
			log.Printf("seeded %d roster employees for development", seeded)
		}
	}
	leaveStore := leave.NewStore(tab)
	punchStore := punch.NewPunchStore(tab)
	batchStore := punch.NewBatchStore(tab)
	sheetStore := timesheet.NewStore(tab)
	payslipStore := payroll.NewStore(tab)
	ledgerStore := loan.NewStore(tab)

	loanService := loan.NewService(ledgerStore)
	payrollService := payroll.NewService(payslipStore, rosterStore, loanService, cfg.LoanOverdraftPolicy)
	sheetService := timesheet.NewService(sheetStore, rosterStore, leaveStore, payrollService)
	importer := punch.NewImporter(punchStore, batchStore, rosterStore, sheetService, cfg.ClockSkewHours, punch.ReconcileConfig{
		LunchDeductionMinutes:   cfg.LunchDeductionMinutes,
		HalfDayThresholdMinutes: cfg.HalfDayThresholdMins,
	})
	detector := punch.NewDetector(punchStore, leaveStore)

	router := chi.NewRouter()
	router.Use(middleware.RequestID)
	router.Use(middleware.Logger)
	router.Use(middleware.Recoverer)
	router.Use(middleware.Auth(cfg.JWTSecret))

	healthHandler := handlers.NewHealthHandler(cfg.Environment, rosterStore)
	router.Get("/healthz", healthHandler.Live)
	router.Get("/readyz", healthHandler.Ready)

	router.Route("/api/v1", func(r chi.Router) {
		authHandler := handlers.NewAuthHandler(cfg.JWTSecret, cfg.OperatorEmail, cfg.OperatorPasswordHash)
		r.Post("/auth/login", authHandler.Login)

		punchHandler := handlers.NewPunchHandler(importer)
		sheetHandler := handlers.NewTimesheetHandler(sheetService, detector)
		payslipHandler := handlers.NewPayslipHandler(payrollService, cfg.PayslipDir)
		loanHandler := handlers.NewLoanHandler(loanService)

		r.Group(func(r chi.Router) {
			r.Use(middleware.RequireReviewer)

			r.Post("/punches/import", punchHandler.Import)

			r.Get("/timesheets", sheetHandler.List)
			r.Post("/timesheets", sheetHandler.CreateManual)
			r.Get("/timesheets/{id}", sheetHandler.Get)
			r.Get("/timesheets/{id}/missing-days", sheetHandler.MissingDays)
			r.Post("/timesheets/{id}/approve", sheetHandler.Approve)
			r.Post("/timesheets/{id}/approve-with-leave", sheetHandler.ApproveWithLeave)
			r.Post("/timesheets/{id}/reject", sheetHandler.Reject)
			r.Post("/timesheets/{id}/lock", sheetHandler.Lock)

			r.Get("/payslips", payslipHandler.List)
			r.Post("/payslips", payslipHandler.Create)
			r.Get("/payslips/{record}", payslipHandler.Get)
			r.Put("/payslips/{record}", payslipHandler.Update)
			r.Patch("/payslips/{record}/loan", payslipHandler.UpdateLoan)
			r.Delete("/payslips/{record}", payslipHandler.Delete)
			r.Get("/payslips/{record}/pdf", payslipHandler.DownloadPDF)

			r.Get("/loans/{employeeId}/history", loanHandler.History)
			r.Get("/loans/{employeeId}/balance", loanHandler.Balance)
		})
	})

	server := &http.Server{
		Addr:    cfg.Addr,
		Handler: http.MaxBytesHandler(router, cfg.MaxBodyBytes),
	}
	log.Printf("payclock server listening on %s", cfg.Addr)
	if err := server.ListenAndServe(); err != nil {
		log.Fatalf("server failed: %v", err)
	}
}

func openStore(ctx context.Context, cfg config.Config) (store.Tabular, func(), error) {
	if cfg.StoreDriver == "memory" {
		return store.NewMemory(), func() {}, nil
	}
	pg, err := store.Connect(ctx, cfg.DatabaseURL)
	if err != nil {
		return nil, nil, err
	}
	return pg, pg.Close, nil
}
