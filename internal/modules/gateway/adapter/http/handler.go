package http

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/MihneaE/slot-machine-microservices/internal/modules/gateway/usecase"
	"github.com/MihneaE/slot-machine-microservices/internal/modules/gateway/ws"
	ledgerdomain "github.com/MihneaE/slot-machine-microservices/internal/modules/ledger/domain"
	slotdomain "github.com/MihneaE/slot-machine-microservices/internal/modules/slot/domain"
	"github.com/MihneaE/slot-machine-microservices/pkg/logger"
	"github.com/MihneaE/slot-machine-microservices/pkg/service"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
)

// Handler handles HTTP and WebSocket requests for the gateway module
type Handler struct {
	useCase *usecase.GatewayUseCase
	manager *ws.Manager
	userSvc service.UserService
}

// NewHandler creates a new HTTP handler
func NewHandler(useCase *usecase.GatewayUseCase, manager *ws.Manager, userSvc service.UserService) *Handler {
	return &Handler{
		useCase: useCase,
		manager: manager,
		userSvc: userSvc,
	}
}

// RegisterRoutes registers the gameplay routes on the given router group.
// All routes require a valid token.
func (h *Handler) RegisterRoutes(router *gin.RouterGroup) {
	game := router.Group("/game")
	game.Use(h.AuthMiddleware())
	{
		game.POST("/spin", h.Spin)
		game.GET("/balance", h.Balance)
		game.GET("/spins/:key", h.Settlement)
	}
}

// RegisterAdminRoutes registers the admin routes on the given router group
func (h *Handler) RegisterAdminRoutes(router *gin.RouterGroup) {
	router.POST("/rng/force", h.ForceOutcome)
}

// AuthMiddleware validates the bearer token and stores the player identity
// in the gin context.
func (h *Handler) AuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		token := c.GetHeader("Authorization")
		if token == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "missing token"})
			return
		}
		token = strings.TrimPrefix(token, "Bearer ")

		userID, username, _, err := h.userSvc.ValidateToken(c.Request.Context(), token)
		if err != nil {
			logger.Warn(c.Request.Context()).Err(err).Msg("auth: token validation failed")
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid token"})
			return
		}

		c.Set("user_id", userID)
		c.Set("player_id", username)
		c.Next()
	}
}

type spinRequest struct {
	BetAmount int64 `json:"bet_amount" binding:"required"`
}

type forceOutcomeRequest struct {
	Outcome []int `json:"outcome" binding:"required"`
}

// Spin handles a spin request
func (h *Handler) Spin(c *gin.Context) {
	playerID := c.GetString("player_id")

	var req spinRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn(c.Request.Context()).Err(err).Msg("Spin: invalid request body")
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	outcome, err := h.useCase.Spin(c.Request.Context(), playerID, req.BetAmount)
	if err != nil {
		h.writeSpinError(c, playerID, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"spin_id":       outcome.SpinID,
		"numbers":       outcome.Numbers,
		"win_amount":    outcome.WinAmount,
		"winning_lines": outcome.WinningLines,
		"new_balance":   outcome.NewBalance,
	})
}

func (h *Handler) writeSpinError(c *gin.Context, playerID string, err error) {
	ctx := c.Request.Context()
	switch {
	case errors.Is(err, slotdomain.ErrInvalidBet):
		logger.Warn(ctx).Err(err).Str("player_id", playerID).Msg("Spin: invalid bet")
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, ledgerdomain.ErrInsufficientFunds):
		logger.Warn(ctx).Err(err).Str("player_id", playerID).Msg("Spin: insufficient funds")
		c.JSON(http.StatusPaymentRequired, gin.H{"error": err.Error()})
	case errors.Is(err, ledgerdomain.ErrAccountNotFound):
		logger.Warn(ctx).Err(err).Str("player_id", playerID).Msg("Spin: account not found")
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	default:
		logger.Error(ctx).Err(err).Str("player_id", playerID).Msg("Spin: failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
	}
}

// Balance returns the player's current balance
func (h *Handler) Balance(c *gin.Context) {
	playerID := c.GetString("player_id")

	balance, err := h.useCase.Balance(c.Request.Context(), playerID)
	if err != nil {
		logger.Error(c.Request.Context()).Err(err).Str("player_id", playerID).Msg("Balance: failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"player_id": playerID,
		"balance":   balance,
	})
}

// Settlement returns the settled round for an idempotency key
func (h *Handler) Settlement(c *gin.Context) {
	key := c.Param("key")

	info, err := h.useCase.Settlement(c.Request.Context(), key)
	if err != nil {
		logger.Error(c.Request.Context()).Err(err).Str("idempotency_key", key).Msg("Settlement: lookup failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
		return
	}
	if info == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "settlement not found"})
		return
	}

	// A player may only read their own settlements
	if info.PlayerID != c.GetString("player_id") {
		c.JSON(http.StatusNotFound, gin.H{"error": "settlement not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"idempotency_key": info.IdempotencyKey,
		"player_id":       info.PlayerID,
		"bet_amount":      info.BetAmount,
		"win_amount":      info.WinAmount,
		"outcome":         info.Outcome,
		"created_at":      info.CreatedAt,
	})
}

// ForceOutcome installs a one-shot forced draw for the next spin
func (h *Handler) ForceOutcome(c *gin.Context) {
	var req forceOutcomeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn(c.Request.Context()).Err(err).Msg("ForceOutcome: invalid request body")
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := h.useCase.ForceOutcome(c.Request.Context(), req.Outcome); err != nil {
		logger.Error(c.Request.Context()).Err(err).Msg("ForceOutcome: failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
		return
	}

	logger.Info(c.Request.Context()).Ints("outcome", req.Outcome).Msg("ForceOutcome: installed")

	c.JSON(http.StatusOK, gin.H{"success": true})
}

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true // Allow all origins for now
	},
}

// HandleWebSocket handles websocket requests
func (h *Handler) HandleWebSocket(w http.ResponseWriter, r *http.Request) {
	ctx := logger.WebSocketContext(r)
	requestID := logger.GetRequestID(ctx)

	logger.Info(ctx).
		Str("remote_addr", r.RemoteAddr).
		Msg("WebSocket connection request")

	token := r.URL.Query().Get("token")
	if token == "" {
		logger.Warn(ctx).Msg("missing auth token")
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	_, username, _, err := h.userSvc.ValidateToken(r.Context(), token)
	if err != nil {
		logger.Warn(ctx).
			Err(err).
			Msg("token validation failed")
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		logger.Error(ctx).Err(err).Msg("WebSocket upgrade failed")
		return
	}

	logger.Info(ctx).
		Str("player_id", username).
		Msg("WebSocket connection established")

	client := h.manager.Register(conn, username)

	go client.WritePump()
	go client.ReadPump(func(playerID string, message []byte) {
		// Each message gets its own request ID, linked to the connection
		msgCtx := logger.WithRequestID(context.Background(), logger.GenerateRequestID())
		msgCtx = logger.WithFields(msgCtx, map[string]interface{}{
			"player_id":     playerID,
			"ws_request_id": requestID,
		})

		logger.Debug(msgCtx).
			Int("message_size", len(message)).
			Msg("WebSocket message received")

		response, err := h.useCase.HandleMessage(msgCtx, playerID, message)
		if err != nil {
			logger.Error(msgCtx).
				Err(err).
				Msg("failed to handle message")

			errorResp := map[string]interface{}{
				"type":  "error",
				"error": err.Error(),
			}
			if jsonResp, err := json.Marshal(errorResp); err == nil {
				h.manager.SendToPlayer(playerID, jsonResp)
			}
		} else if response != nil {
			h.manager.SendToPlayer(playerID, response)
		}
	})
}
