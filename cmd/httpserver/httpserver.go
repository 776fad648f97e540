// Package httpserver manages server creation and api routing.
package httpserver

import (
	"context"
	"database/sql"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"

	"github.com/go-petr/lendbook/internal/ledgerdelivery"
	"github.com/go-petr/lendbook/internal/ledgerrepo"
	"github.com/go-petr/lendbook/internal/ledgerservice"
	"github.com/go-petr/lendbook/internal/middleware"
	"github.com/go-petr/lendbook/pkg/configpkg"
)

// Server holds db connection, handlers router and configuration.
type Server struct {
	DB     *sql.DB
	Engine *gin.Engine
	Config configpkg.Config
}

// ServeHTTP implements the http.Handler interface for the Server type.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.Engine.ServeHTTP(w, r)
}

// New creates Server type with the ledger domain instantiated and routed.
func New(conn *sql.DB, logger zerolog.Logger, config configpkg.Config) (*Server, error) {
	ctx := logger.WithContext(context.Background())

	ledgerRepo := ledgerrepo.NewRepoSQLite(conn)
	if err := ledgerRepo.Migrate(ctx); err != nil {
		return nil, errors.New("cannot migrate ledger schema")
	}

	ledgerService, err := ledgerservice.New(ctx, ledgerRepo)
	if err != nil {
		return nil, errors.New("cannot load ledger")
	}

	ledgerHandler := ledgerdelivery.NewHandler(ledgerService, config.AppURL)

	gin.SetMode(gin.ReleaseMode)
	engine := gin.New()

	engine.Use(middleware.RequestLogger(logger))
	engine.Use(gin.Recovery())

	engine.GET("/accounts", ledgerHandler.List)
	engine.POST("/transactions", ledgerHandler.CreateTransaction)
	engine.POST("/accounts/:id/payments", ledgerHandler.CreatePayment)
	engine.DELETE("/accounts/:id", ledgerHandler.DeleteAccount)
	engine.DELETE("/accounts/:id/transactions/:tid", ledgerHandler.DeleteTransaction)
	engine.GET("/ledger/export", ledgerHandler.Export)
	engine.POST("/ledger/import", ledgerHandler.Import)
	engine.GET("/accounts/:id/share", ledgerHandler.Share)
	engine.POST("/shared", ledgerHandler.ImportShared)

	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		if err := v.RegisterValidation("txtype", ledgerdelivery.ValidTransactionType); err != nil {
			return nil, errors.New("cannot register transaction type validator")
		}
	}

	server := &Server{
		DB:     conn,
		Engine: engine,
		Config: config,
	}

	return server, nil
}
