package main

import (
	"context"
	"log"
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/renoxbert/leadmarket/internal/config"
	"github.com/renoxbert/leadmarket/internal/infra/database"
	"github.com/renoxbert/leadmarket/internal/infra/http/handlers"
	"github.com/renoxbert/leadmarket/internal/infra/http/middleware"
	"github.com/renoxbert/leadmarket/internal/infra/integration/stripe"
	"github.com/renoxbert/leadmarket/internal/infra/mail"
	"github.com/renoxbert/leadmarket/internal/infra/queue"
	"github.com/renoxbert/leadmarket/internal/infra/worker"
	"github.com/renoxbert/leadmarket/internal/usecase"
)

func main() {
	cfg := config.Load()

	db, err := database.NewDBConnection(cfg.DatabaseURL)
	if err != nil {
		log.Fatal(err)
	}
	defer db.Close()

	rabbitMQ, err := queue.NewRabbitMQ(cfg.RabbitUser, cfg.RabbitPass, cfg.RabbitHost, cfg.RabbitPort)
	if err != nil {
		log.Fatal(err)
	}
	defer rabbitMQ.Conn.Close()
	defer rabbitMQ.Ch.Close()

	// 1. Repositories
	leadRepo := database.NewLeadRepository(db)
	interestRepo := database.NewInterestRepository(db)
	subRepo := database.NewSubscriptionRepository(db)
	contractorRepo := database.NewContractorRepository(db)

	// 2. Gateways and adapters
	gateway := stripe.NewClient(cfg.StripeAPIKey, cfg.StripeBaseURL)
	producer := queue.NewProducer(rabbitMQ.Conn, rabbitMQ.Ch)
	mailSender := mail.NewEmailSender(cfg.MailHost, cfg.MailPort, cfg.MailUser, cfg.MailPass, cfg.MailFrom)

	// 3. Background workers
	notificationWorker := queue.NewWorker(rabbitMQ.Ch, mailSender, contractorRepo, cfg.SiteOwnerEmail)
	go notificationWorker.Start(queue.QueueName)

	expiryWorker := worker.NewSubscriptionExpiryWorker(subRepo)
	go expiryWorker.Start(context.Background())

	// 4. UseCases
	eligibility := usecase.NewEligibilityService(subRepo)
	createLeadUC := usecase.NewCreateLeadUseCase(leadRepo, usecase.KeywordClassifier{}, producer)
	listLeadsUC := usecase.NewListLeadsUseCase(leadRepo)
	claimLeadUC := usecase.NewClaimLeadUseCase(leadRepo, eligibility, producer)
	saveInterestUC := usecase.NewSaveInterestUseCase(interestRepo, leadRepo)
	checkoutUC := usecase.NewCreateCheckoutUseCase(gateway, cfg.CheckoutSuccessURL, cfg.CheckoutCancelURL)
	cancelUC := usecase.NewCancelSubscriptionUseCase(subRepo)
	activateUC := usecase.NewActivateSubscriptionUseCase(subRepo, producer)

	// 5. Handlers
	leadHandler := handlers.NewLeadHandler(createLeadUC, listLeadsUC, leadRepo)
	claimHandler := handlers.NewClaimHandler(claimLeadUC)
	interestHandler := handlers.NewInterestHandler(saveInterestUC, interestRepo)
	subHandler := handlers.NewSubscriptionHandler(subRepo, checkoutUC, cancelUC, activateUC, eligibility, cfg.StripeWebhookSecret)
	healthHandler := handlers.NewHealthHandler(db, rabbitMQ.Conn)

	// 6. Router
	r := chi.NewRouter()
	r.Use(chimiddleware.Logger)
	r.Use(middleware.Metrics)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"http://localhost:5173", "*"},
		AllowedMethods: []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Authorization", "Content-Type"},
	}))

	// Public surface: homeowner submit, browse, webhook, ops endpoints.
	r.Post("/leads", leadHandler.HandleCreate)
	r.Get("/leads", leadHandler.HandleList)
	r.Get("/leads/{leadId}", leadHandler.HandleGet)
	r.Post("/webhook", subHandler.HandleWebhook)
	r.Get("/health", healthHandler.Handle)
	r.Handle("/metrics", promhttp.Handler())

	// Contractor surface: everything that needs the authenticated principal.
	r.Group(func(r chi.Router) {
		r.Use(middleware.Authenticate(cfg.JWTSecret))

		r.Post("/leads/{leadId}/claim", claimHandler.Handle)
		r.Post("/leads/{leadId}/interest", interestHandler.HandleSave)
		r.Get("/me/interests", interestHandler.HandleListMine)
		r.Get("/me/subscriptions", subHandler.HandleListMine)
		r.Get("/me/eligibility", subHandler.HandleEligibility)
		r.Post("/checkout", subHandler.HandleCheckout)
		r.Post("/subscriptions/{subscriptionId}/cancel", subHandler.HandleCancel)
	})

	addr := ":" + cfg.Port
	log.Printf("RenoXbert lead marketplace listening on %s", addr)
	http.ListenAndServe(addr, r)
}
