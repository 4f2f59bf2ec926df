package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"time"

	"github.com/gorilla/mux"

	"github.com/Skisteve007/Clean-Check/configs"
	"github.com/Skisteve007/Clean-Check/internal/daemon"
	"github.com/Skisteve007/Clean-Check/internal/db"
	"github.com/Skisteve007/Clean-Check/internal/engine"
	"github.com/Skisteve007/Clean-Check/internal/handlers"
	"github.com/Skisteve007/Clean-Check/internal/middleware"
	"github.com/Skisteve007/Clean-Check/internal/notify"
	"github.com/Skisteve007/Clean-Check/internal/store"
	"github.com/Skisteve007/Clean-Check/internal/utils"
)

func main() {
	cfg := configs.LoadConfig()
	db.Connect(cfg.MongoURI)
	utils.InitJwtSecret(cfg.JWTSecret)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	if err := db.EnsureIndexes(ctx, cfg.DBName); err != nil {
		log.Printf("Index creation warning (may already exist): %v", err)
	}
	cancel()

	auditCol := db.GetCollection(cfg.DBName, "audit_logs")
	auditLogger := utils.Logger{Collection: auditCol}

	profileCol := db.GetCollection(cfg.DBName, "profiles")
	confirmationCol := db.GetCollection(cfg.DBName, "payment_confirmations")
	eventCol := db.GetCollection(cfg.DBName, "payment_events")
	adminCol := db.GetCollection(cfg.DBName, "admin_users")
	visitCol := db.GetCollection(cfg.DBName, "site_visits")

	lifecycle := engine.New(
		store.NewMongoStore(profileCol, confirmationCol, eventCol),
		notify.NewLogNotifier(),
		&auditLogger,
		engine.Config{
			AutoApprove:            cfg.AutoApprovePayments,
			VerifiedReferencesOnly: cfg.VerifiedReferencesOnly,
			AdminEmail:             cfg.AdminEmail,
			AdminPhone:             cfg.AdminPhone,
			MembershipFee:          cfg.MembershipFee,
		},
	)

	r := mux.NewRouter()
	r.Use(middleware.JSONMiddleware)
	r.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, "OK")
	})

	profileHandler := handlers.NewProfileHandler(lifecycle)

	r.HandleFunc("/profiles", profileHandler.CreateProfile).Methods("POST")
	r.HandleFunc("/profiles/search", profileHandler.SearchMembers).Methods("GET")
	r.HandleFunc("/profiles/{membershipId}", profileHandler.GetProfile).Methods("GET")
	r.HandleFunc("/profiles/{membershipId}", profileHandler.UpdateProfile).Methods("PUT")
	r.HandleFunc("/profiles/{membershipId}/references", profileHandler.AddReference).Methods("POST")
	r.HandleFunc("/profiles/{membershipId}/references/{refId}", profileHandler.RemoveReference).Methods("DELETE")
	r.HandleFunc("/profiles/{membershipId}/document", profileHandler.UploadDocument).Methods("POST")

	paymentHandler := &handlers.PaymentHandler{
		Engine:          lifecycle,
		ConfirmationCol: confirmationCol,
		EventCol:        eventCol,
	}

	r.HandleFunc("/payment/confirm", paymentHandler.SubmitPayment).Methods("POST")
	r.HandleFunc("/webhook/payment", paymentHandler.PaymentWebhook).Methods("POST")

	visitHandler := &handlers.VisitHandler{Collection: visitCol}
	r.HandleFunc("/track-visit", visitHandler.TrackVisit).Methods("POST")

	sponsorHandler := &handlers.SponsorHandler{
		Collection:  db.GetCollection(cfg.DBName, "sponsor_logos"),
		AuditLogger: auditLogger,
	}
	r.HandleFunc("/sponsors", sponsorHandler.GetSponsors).Methods("GET")

	adminHandler := &handlers.AdminHandler{
		Engine:         lifecycle,
		AdminCol:       adminCol,
		ProfileCol:     profileCol,
		VisitCol:       visitCol,
		SharedPassword: cfg.AdminPassword,
		AuditLogger:    auditLogger,
	}

	// Both login endpoints sit outside the admin boundary; everything else
	// under /admin requires either credential.
	r.HandleFunc("/admin/login", adminHandler.Login).Methods("POST")
	r.HandleFunc("/admin/users/login", adminHandler.AdminUserLogin).Methods("POST")

	adminAuth := &middleware.AdminAuth{SharedPassword: cfg.AdminPassword}
	adminRouter := r.PathPrefix("/admin").Subrouter()
	adminRouter.Use(adminAuth.Middleware)

	adminRouter.HandleFunc("/stats", adminHandler.GetStats).Methods("GET")
	adminRouter.HandleFunc("/profiles", adminHandler.GetAllProfiles).Methods("GET")
	adminRouter.HandleFunc("/profiles/{membershipId}", adminHandler.DeleteProfile).Methods("DELETE")
	adminRouter.HandleFunc("/users/create", adminHandler.CreateAdminUser).Methods("POST")
	adminRouter.HandleFunc("/users", adminHandler.ListAdminUsers).Methods("GET")
	adminRouter.HandleFunc("/users/{username}", adminHandler.DeleteAdminUser).Methods("DELETE")
	adminRouter.HandleFunc("/payments/pending", paymentHandler.GetPendingPayments).Methods("GET")
	adminRouter.HandleFunc("/payments/approve", paymentHandler.ApprovePayment).Methods("POST")
	adminRouter.HandleFunc("/payments/reject", paymentHandler.RejectPayment).Methods("POST")
	adminRouter.HandleFunc("/payments/events", paymentHandler.GetPaymentEvents).Methods("GET")
	adminRouter.HandleFunc("/sponsors/{slot}", sponsorHandler.UploadSponsorLogo).Methods("POST")
	adminRouter.HandleFunc("/sponsors/{slot}", sponsorHandler.DeleteSponsorLogo).Methods("DELETE")

	exporterCtx, stopExporter := context.WithCancel(context.Background())
	exporter := &daemon.LogExporter{Coll: auditCol}
	exporter.Run(exporterCtx)

	var server = http.Server{
		Addr:    ":" + cfg.Port,
		Handler: r,
	}

	go func() {
		log.Println("Server starting on port", cfg.Port)
		log.Fatal(server.ListenAndServe())
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt)
	<-stop

	log.Println("Shutting down gracefully...")
	stopExporter()
	shutdownCtx, cancelShutdown := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancelShutdown()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Fatalf("Graceful shutdown failed: %v", err)
	}
	if err := db.Disconnect(shutdownCtx); err != nil {
		log.Printf("Mongo disconnect failed: %v", err)
	}
	log.Println("Server shut down.")
}
