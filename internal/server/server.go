package server

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/ai-gateway/conversation-relay/internal/config"
	"github.com/ai-gateway/conversation-relay/internal/conversation"
	"github.com/ai-gateway/conversation-relay/internal/metrics"
)

// Relay is the conversation operation served over HTTP.
type Relay interface {
	Handle(ctx context.Context, turn conversation.Turn) (*conversation.Result, error)
}

type Server struct {
	cfg     *config.Config
	engine  *gin.Engine
	relay   Relay
	metrics *metrics.Metrics
	logger  *zap.Logger
}

// New wires routes. m counts requests rejected at the boundary and gatherer
// backs the metrics endpoint; either may be nil.
func New(cfg *config.Config, relay Relay, m *metrics.Metrics, gatherer prometheus.Gatherer, logger *zap.Logger) *Server {
	if logger == nil {
		logger = zap.NewNop()
	}
	r := gin.New()
	r.Use(gin.Recovery(), requestID(), accessLog(logger))

	srv := &Server{cfg: cfg, engine: r, relay: relay, metrics: m, logger: logger}
	srv.registerRoutes(gatherer)
	return srv
}

func (s *Server) registerRoutes(gatherer prometheus.Gatherer) {
	s.engine.GET("/health", s.health)
	if gatherer != nil {
		s.engine.GET(s.cfg.MetricsPath, gin.WrapH(promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{})))
	}

	api := s.engine.Group("/api")
	api.POST("/conversation", s.conversation)
}

// Handler exposes the routes for tests and embedding.
func (s *Server) Handler() http.Handler {
	return s.engine
}

func (s *Server) Start(ctx context.Context) error {
	srv := &http.Server{
		Addr:              s.cfg.Address,
		Handler:           s.engine,
		ReadHeaderTimeout: 10 * time.Second,
	}
	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			s.logger.Error("shutdown", zap.Error(err))
		}
	}()

	s.logger.Info("listening", zap.String("address", s.cfg.Address))
	if err := srv.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

type conversationRequest struct {
	Message             *string                `json:"message" binding:"required"`
	ConversationHistory []conversation.Message `json:"conversationHistory" binding:"dive"`
}

type conversationResponse struct {
	Success             bool                   `json:"success"`
	Response            string                 `json:"response"`
	ConversationHistory []conversation.Message `json:"conversationHistory"`
}

func (s *Server) conversation(c *gin.Context) {
	var req conversationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		if s.metrics != nil {
			s.metrics.ObserveRequest(metrics.OutcomeInvalid)
		}
		writeError(c, http.StatusBadRequest, codeValidation, bindError(err).Error())
		return
	}

	ctx := c.Request.Context()
	if s.cfg.RequestTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.cfg.RequestTimeout)
		defer cancel()
	}

	res, err := s.relay.Handle(ctx, conversation.Turn{
		Message: *req.Message,
		History: req.ConversationHistory,
	})
	if err != nil {
		s.handleRelayError(c, err)
		return
	}

	c.JSON(http.StatusOK, conversationResponse{
		Success:             true,
		Response:            res.Response,
		ConversationHistory: res.History,
	})
}

func (s *Server) health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
