// Package server wires the HTTP surface: routing, request middleware and
// the translation from domain errors to responses.
package server

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/uns-hr/shataku/internal/apartment"
	apartmentdomain "github.com/uns-hr/shataku/internal/apartment/domain"
	"github.com/uns-hr/shataku/internal/assignment"
	assignmentdomain "github.com/uns-hr/shataku/internal/assignment/domain"
	"github.com/uns-hr/shataku/internal/config"
	"github.com/uns-hr/shataku/internal/employee"
	employeedomain "github.com/uns-hr/shataku/internal/employee/domain"
	"github.com/uns-hr/shataku/internal/factory"
	factorydomain "github.com/uns-hr/shataku/internal/factory/domain"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

var Module = fx.Module("http.server",
	fx.Provide(registerGin),
	fx.Provide(newHTTPMetrics),
	apartment.Module,
	assignment.Module,
	employee.Module,
	factory.Module,
	fx.Invoke(NewServer),
	fx.Invoke(run),
)

func NewEngine(log *zap.Logger, metrics *httpMetrics) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(RequestLogger(log))
	r.Use(MetricsMiddleware(metrics))
	r.Use(ErrorHandlingMiddleware())

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	return r
}

func registerGin(log *zap.Logger, metrics *httpMetrics) *gin.Engine {
	return NewEngine(log, metrics)
}

func run(lc fx.Lifecycle, cfg config.Config, log *zap.Logger, r *gin.Engine) {
	srv := &http.Server{
		Addr:    cfg.HTTPAddr,
		Handler: r,
	}

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			go func() {
				log.Info("http server listening", zap.String("addr", srv.Addr))
				if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
					panic(err)
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			shutdownCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
			defer cancel()
			return srv.Shutdown(shutdownCtx)
		},
	})
}

type Server struct {
	engine *gin.Engine
	cfg    config.Config

	apartmentSvc  apartmentdomain.Service
	assignmentSvc assignmentdomain.Service
	employeeSvc   employeedomain.Service
	factorySvc    factorydomain.Service
}

type ServerParams struct {
	fx.In

	Gin *gin.Engine
	Cfg config.Config

	ApartmentSvc  apartmentdomain.Service
	AssignmentSvc assignmentdomain.Service
	EmployeeSvc   employeedomain.Service
	FactorySvc    factorydomain.Service
}

func NewServer(p ServerParams) *Server {
	svc := &Server{
		engine: p.Gin,
		cfg:    p.Cfg,

		apartmentSvc:  p.ApartmentSvc,
		assignmentSvc: p.AssignmentSvc,
		employeeSvc:   p.EmployeeSvc,
		factorySvc:    p.FactorySvc,
	}

	svc.registerAPIRoutes()

	return svc
}

func (s *Server) Engine() *gin.Engine {
	return s.engine
}

func (s *Server) registerAPIRoutes() {
	api := s.engine.Group("/api")

	// -------- Factories --------
	api.GET("/factories", s.ListFactories)
	api.POST("/factories", s.CreateFactory)
	api.GET("/factories/stats", s.GetFactoryStats)
	api.GET("/factories/:id", s.GetFactoryByID)
	api.PUT("/factories/:id", s.UpdateFactory)

	// -------- Apartments --------
	api.GET("/apartments", s.ListApartments)
	api.POST("/apartments", s.CreateApartment)
	api.GET("/apartments/stats", s.GetApartmentStats)
	api.GET("/apartments/:id", s.GetApartmentByID)
	api.PUT("/apartments/:id", s.UpdateApartment)
	api.DELETE("/apartments/:id", s.DeactivateApartment)
	api.POST("/apartments/:id/unassign", s.UnassignEmployee)

	// -------- Employees --------
	api.GET("/employees", s.ListEmployees)
	api.POST("/employees", s.CreateEmployee)
	api.GET("/employees/stats", s.GetEmployeeStats)
	api.GET("/employees/:id", s.GetEmployeeByID)
	api.PUT("/employees/:id", s.UpdateEmployee)
	api.DELETE("/employees/:id", s.DeactivateEmployee)

	// -------- Assignments --------
	api.GET("/assignments", s.ListAssignments)
	api.POST("/assignments", s.CreateAssignment)
	api.POST("/assignments/preview", s.PreviewAssignmentCost)
	api.GET("/assignments/:id", s.GetAssignmentByID)
	api.PUT("/assignments/:id", s.UpdateAssignment)
	api.DELETE("/assignments/:id", s.DeleteAssignment)
}
