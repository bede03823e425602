package handlers

import (
	"net/http"

	"expense_ledger/internal/apperr"
	"expense_ledger/internal/logger"
	"expense_ledger/internal/service"

	"github.com/gin-gonic/gin"

	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// Config carries the handler-level policy knobs.
type Config struct {
	// DefaultUsername is the account the deprecated week-board endpoints
	// operate on. Empty leaves those routes unregistered.
	DefaultUsername string
}

// Handler wires HTTP layer to services and logging.
type Handler struct {
	services *service.Service
	log      *logger.Logger
	cfg      Config
}

// NewHandler constructs a new HTTP handler with dependencies.
func NewHandler(services *service.Service, log *logger.Logger, cfg Config) *Handler {
	return &Handler{services: services, log: log, cfg: cfg}
}

// InitRoutes builds and returns the Gin router with all routes registered.
func (h *Handler) InitRoutes() *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())
	if h.log != nil {
		router.Use(h.requestLogger())
	}

	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// Health endpoint
	router.GET("/health", h.health)

	api := router.Group("/api")
	{
		h.registerAccountRoutes(api)
		h.registerLedgerRoutes(api)
		h.registerWeeklyRoutes(api)
	}

	return router
}

func (h *Handler) registerAccountRoutes(api *gin.RouterGroup) {
	api.POST("/signup", h.signUp)
	api.POST("/login", h.logIn)
}

func (h *Handler) registerLedgerRoutes(api *gin.RouterGroup) {
	api.POST("/add_expense", h.addExpense)
	api.GET("/get_expenses/:username", h.getExpenses)
	api.PUT("/expenses/:id", h.updateExpense)
	api.DELETE("/expenses/:id", h.deleteExpense)
}

func (h *Handler) registerWeeklyRoutes(api *gin.RouterGroup) {
	api.GET("/weekly_summary/:username", h.weeklySummary)
	api.GET("/weekly_summary/:username/:week_number", h.weeklySummaryByNumber)
	api.GET("/weekly_expenses/:username/:week_number", h.weekExpenses)
	api.POST("/weekly_expenses/:username", h.saveWeekExpenses)

	// Deprecated week-board aliases over the same services, scoped to a
	// fixed account. Kept for compatibility with the old board frontend.
	if h.cfg.DefaultUsername != "" {
		board := api.Group("/Expenses/week")
		board.GET("/:week_number", h.boardWeekGet)
		board.POST("/:week_number", h.boardWeekSave)
		board.PUT("/:week_number/item/:id", h.boardItemUpdate)
		board.DELETE("/:week_number/item/:id", h.boardItemDelete)
	}
}

// @Summary      Health check
// @Tags         system
// @Produce      json
// @Success      200  {object}  map[string]string
// @Router       /health [get]
func (h *Handler) health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func statusForKind(kind apperr.Kind) int {
	switch kind {
	case apperr.KindInvalidInput:
		return http.StatusBadRequest
	case apperr.KindUnauthorized:
		return http.StatusUnauthorized
	case apperr.KindNotFound:
		return http.StatusNotFound
	case apperr.KindConflict:
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

// respondError maps a service error onto the HTTP taxonomy. Internal
// causes are logged but never leaked to the client.
func (h *Handler) respondError(c *gin.Context, logKey string, err error, kv ...interface{}) {
	kind := apperr.KindOf(err)
	status := statusForKind(kind)

	msg := err.Error()
	if kind == apperr.KindInternal {
		msg = "internal error"
		if h.log != nil {
			fields := append([]interface{}{"err", err}, kv...)
			h.log.Errorw(logKey, fields...)
		}
	}
	c.JSON(status, gin.H{"error": msg, "kind": string(kind)})
}

// bindJSONOrBadRequest tries to bind the request body into dst and writes a 400 JSON on failure.
// Returns false if the request was already handled, true otherwise.
func (h *Handler) bindJSONOrBadRequest(c *gin.Context, dst any) bool {
	if err := c.ShouldBindJSON(dst); err != nil {
		if h.log != nil {
			h.log.Infow("bad_request_body", "path", c.FullPath(), "err", err)
		}
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error(), "kind": string(apperr.KindInvalidInput)})
		return false
	}
	return true
}
