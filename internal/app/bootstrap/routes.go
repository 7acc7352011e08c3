// internal/app/bootstrap/routes.go
package bootstrap

import (
	"net/http"

	authgooglefeature "github.com/dalemusser/triplog/internal/app/features/authgoogle"
	dailylogsfeature "github.com/dalemusser/triplog/internal/app/features/dailylogs"
	healthfeature "github.com/dalemusser/triplog/internal/app/features/health"
	logoutfeature "github.com/dalemusser/triplog/internal/app/features/logout"
	reportsfeature "github.com/dalemusser/triplog/internal/app/features/reports"
	tripsfeature "github.com/dalemusser/triplog/internal/app/features/trips"
	"github.com/dalemusser/triplog/internal/app/store/oauthstate"
	userstore "github.com/dalemusser/triplog/internal/app/store/users"
	"github.com/dalemusser/triplog/internal/app/system/auth"
	"github.com/dalemusser/waffle/config"
	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// BuildHandler constructs the root HTTP handler (router) for this WAFFLE
// app.
//
// WAFFLE calls this after configuration, DB connections, schema setup, and
// any Startup hooks have completed. TripLog applies session middleware and
// mounts feature routers for sign-in, trips, daily logs, and reports.
func BuildHandler(coreCfg *config.CoreConfig, appCfg AppConfig, deps DBDeps, logger *zap.Logger) (http.Handler, error) {
	// Secure cookies are enabled in production mode.
	secure := coreCfg.Env == "prod"
	sessionMgr, err := auth.NewSessionManager(appCfg.SessionKey, appCfg.SessionName, appCfg.SessionDomain, secure, logger)
	if err != nil {
		logger.Error("session manager init failed", zap.Error(err))
		return nil, err
	}

	// LoadSessionUser fetches fresh user data on each request so disabled
	// accounts take effect immediately.
	sessionMgr.SetUserFetcher(userstore.NewFetcher(deps.TripLogMongoDatabase))

	db := deps.TripLogMongoDatabase

	r := chi.NewRouter()

	// Global auth middleware: loads SessionUser into context if signed in.
	r.Use(sessionMgr.LoadSessionUser)

	// Health check endpoint for load balancers and orchestrators
	healthHandler := healthfeature.NewHandler(deps.TripLogMongoClient, logger)
	r.Mount("/health", healthfeature.Routes(healthHandler))

	// Authentication
	googleHandler := authgooglefeature.NewHandler(
		userstore.New(db),
		oauthstate.New(db),
		sessionMgr,
		appCfg.GoogleClientID,
		appCfg.GoogleClientSecret,
		appCfg.BaseURL,
		logger,
	)
	r.Mount("/auth/google", authgooglefeature.Routes(googleHandler))

	logoutHandler := logoutfeature.NewHandler(sessionMgr, logger)
	r.Mount("/logout", logoutfeature.Routes(logoutHandler, sessionMgr))

	// Trips and invites
	tripsHandler := tripsfeature.NewHandler(db, logger)
	r.Mount("/trips", tripsfeature.Routes(tripsHandler, sessionMgr))

	// Daily logs: the trip-scoped collection and single-entry operations
	logsHandler := dailylogsfeature.NewHandler(db, logger)
	r.Mount("/trips/{tripID}/logs", dailylogsfeature.Routes(logsHandler, sessionMgr))
	r.Mount("/logs", dailylogsfeature.EntryRoutes(logsHandler, sessionMgr))

	// Reports and exports
	reportsHandler := reportsfeature.NewHandler(db, logger)
	r.Mount("/reports", reportsfeature.Routes(reportsHandler, sessionMgr))

	return r, nil
}
