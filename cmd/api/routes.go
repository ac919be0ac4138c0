package main

import (
	"log"
	"net/http"

	"financeiro/internal/shared/config"
	"financeiro/internal/shared/middleware"
)

// SetupRoutes configures all HTTP routes and returns the final handler with middleware.
func SetupRoutes(deps *Dependencies, cfg *config.Config) http.Handler {
	mux := http.NewServeMux()

	// Health check
	mux.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("ok"))
	})

	// Public auth routes
	mux.HandleFunc("/auth/register", deps.AuthHandler.HandleRegister)
	mux.HandleFunc("/auth/login", deps.AuthHandler.HandleLogin)
	mux.HandleFunc("/validaremail", deps.AuthHandler.HandleValidateEmail)

	// Protected routes
	authMiddleware := middleware.Auth(deps.JWT)

	mux.Handle("/adicionarFinanceiro", authMiddleware(http.HandlerFunc(deps.FinanceHandler.HandleAddEntry)))
	mux.Handle("/adicionarReceita", authMiddleware(http.HandlerFunc(deps.FinanceHandler.HandleAddIncome)))
	mux.Handle("/BuscarParcelas", authMiddleware(http.HandlerFunc(deps.FinanceHandler.HandleInstallmentPlan)))
	mux.Handle("/PagarParcela", authMiddleware(http.HandlerFunc(deps.FinanceHandler.HandlePayInstallment)))
	mux.Handle("/ResumoDoMes", authMiddleware(http.HandlerFunc(deps.ReportHandler.HandleMonthSummary)))
	mux.Handle("/RelatorioMensal", authMiddleware(http.HandlerFunc(deps.ReportHandler.HandleYearReport)))
	mux.Handle("/RelatoriosAnos", authMiddleware(http.HandlerFunc(deps.ReportHandler.HandleYears)))
	mux.Handle("/api/notifications/register-device", authMiddleware(http.HandlerFunc(deps.NotificationHandler.HandleRegisterDevice)))

	// Apply global middleware
	var handler http.Handler = mux
	handler = middleware.Telemetry(handler)
	handler = middleware.Logging(middleware.RequestID(middleware.CORS(cfg.Server.AllowedHosts)(handler)))

	// Apply security middleware when TLS is enabled
	if cfg.TLS.Enabled {
		handler = middleware.HSTS(middleware.SecureCookies(handler))
		log.Println("TLS security middleware enabled (HSTS + SecureCookies)")
	}

	return handler
}
