package handlers

import (
	"net/http"
	"strconv"

	"expense_ledger/internal/apperr"
	"expense_ledger/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
)

// Request DTO for the bulk week replace.
type saveWeekRequest struct {
	WeekNumber int               `json:"week_number"`
	Expenses   []weekItemRequest `json:"expenses"`
}

type weekItemRequest struct {
	Category string           `json:"category"`
	Amount   *decimal.Decimal `json:"amount"`
}

// weekNumberParam parses the :week_number path segment, writing a 400 on
// failure.
func (h *Handler) weekNumberParam(c *gin.Context) (int, bool) {
	n, err := strconv.Atoi(c.Param("week_number"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "week number must be an integer",
			"kind":  string(apperr.KindInvalidInput),
		})
		return 0, false
	}
	return n, true
}

// @Summary      Weekly summary (current week)
// @Description  Per-category totals for the current week. The week window is the configured policy: calendar (Monday-aligned, default), trailing (7 days ending today) or numbered (Jan-1 anchored bucket).
// @Tags         summary
// @Produce      json
// @Param        username  path  string  true  "Username"
// @Success      200  {object}  map[string]interface{}
// @Failure      404  {object}  map[string]string
// @Router       /api/weekly_summary/{username} [get]
func (h *Handler) weeklySummary(c *gin.Context) {
	username := c.Param("username")

	summary, err := h.services.Weekly(c.Request.Context(), username)
	if err != nil {
		h.respondError(c, "weekly_summary_failed", err, "username", username)
		return
	}
	c.JSON(http.StatusOK, summary)
}

// @Summary      Weekly summary (by week number)
// @Description  Per-category totals for a 1-based week number in the current year, using fixed 7-day buckets anchored at January 1 (not ISO weeks).
// @Tags         summary
// @Produce      json
// @Param        username     path  string  true  "Username"
// @Param        week_number  path  int     true  "1-based week number"
// @Success      200  {object}  map[string]interface{}
// @Failure      400  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Router       /api/weekly_summary/{username}/{week_number} [get]
func (h *Handler) weeklySummaryByNumber(c *gin.Context) {
	username := c.Param("username")
	week, ok := h.weekNumberParam(c)
	if !ok {
		return
	}

	summary, err := h.services.WeeklyByNumber(c.Request.Context(), username, week)
	if err != nil {
		h.respondError(c, "weekly_summary_failed", err, "username", username, "week", week)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"username":         summary.Username,
		"week_number":      week,
		"week_start":       summary.WeekStart,
		"week_end":         summary.WeekEnd,
		"category_summary": summary.CategoryTotals,
		"total_amount":     summary.TotalAmount,
		"highest_category": summary.HighestCategory,
		"expense_count":    summary.ExpenseCount,
	})
}

// @Summary      List week expenses
// @Tags         weekly
// @Produce      json
// @Param        username     path  string  true  "Username"
// @Param        week_number  path  int     true  "1-based week number"
// @Success      200  {object}  map[string]interface{}
// @Failure      400  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Router       /api/weekly_expenses/{username}/{week_number} [get]
func (h *Handler) weekExpenses(c *gin.Context) {
	username := c.Param("username")
	week, ok := h.weekNumberParam(c)
	if !ok {
		return
	}

	result, err := h.services.WeekExpenses(c.Request.Context(), username, week)
	if err != nil {
		h.respondError(c, "week_expenses_failed", err, "username", username, "week", week)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"username":       username,
		"week_number":    result.WeekNumber,
		"week_start":     result.Range.Start,
		"week_end":       result.Range.End,
		"expenses":       result.Expenses,
		"total_expenses": len(result.Expenses),
	})
}

// @Summary      Replace week expenses
// @Description  Deletes the user's expenses inside the week bucket, then inserts the provided items. All-or-nothing: one invalid item leaves the week untouched.
// @Tags         weekly
// @Accept       json
// @Produce      json
// @Param        username  path  string           true  "Username"
// @Param        body      body  saveWeekRequest  true  "Week number and items"
// @Success      201  {object}  map[string]interface{}
// @Failure      400  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Router       /api/weekly_expenses/{username} [post]
func (h *Handler) saveWeekExpenses(c *gin.Context) {
	username := c.Param("username")

	var req saveWeekRequest
	if ok := h.bindJSONOrBadRequest(c, &req); !ok {
		return
	}
	if req.WeekNumber == 0 {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "week_number is required",
			"kind":  string(apperr.KindInvalidInput),
		})
		return
	}

	rng, err := h.services.ReplaceWeek(c.Request.Context(), username, req.WeekNumber, weekItems(req.Expenses))
	if err != nil {
		h.respondError(c, "save_week_expenses_failed", err, "username", username, "week", req.WeekNumber)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message":     "Weekly expenses saved successfully",
		"week_number": req.WeekNumber,
		"week_start":  rng.Start,
		"week_end":    rng.End,
		"count":       len(req.Expenses),
	})
}

func weekItems(items []weekItemRequest) []service.WeekItem {
	out := make([]service.WeekItem, 0, len(items))
	for _, item := range items {
		out = append(out, service.WeekItem{Category: item.Category, Amount: item.Amount})
	}
	return out
}

// ---- Deprecated week-board aliases ----
//
// The old board frontend talks to /api/Expenses/week/... with {label,
// amount} items and no username; these map onto the same service calls
// with the configured default account.

type boardItem struct {
	Label  string           `json:"label"`
	Amount *decimal.Decimal `json:"amount"`
}

type boardSaveRequest struct {
	Data []boardItem `json:"data"`
}

type boardItemPatch struct {
	Label  *string          `json:"label,omitempty"`
	Amount *decimal.Decimal `json:"amount,omitempty"`
}

func (h *Handler) boardWeekGet(c *gin.Context) {
	week, ok := h.weekNumberParam(c)
	if !ok {
		return
	}

	result, err := h.services.WeekExpenses(c.Request.Context(), h.cfg.DefaultUsername, week)
	if err != nil {
		h.respondError(c, "board_week_get_failed", err, "week", week)
		return
	}

	data := make([]boardItem, 0, len(result.Expenses))
	for _, e := range result.Expenses {
		amount := e.Amount
		data = append(data, boardItem{Label: e.Category, Amount: &amount})
	}
	c.JSON(http.StatusOK, gin.H{"data": data})
}

func (h *Handler) boardWeekSave(c *gin.Context) {
	week, ok := h.weekNumberParam(c)
	if !ok {
		return
	}

	var req boardSaveRequest
	if ok := h.bindJSONOrBadRequest(c, &req); !ok {
		return
	}

	items := make([]service.WeekItem, 0, len(req.Data))
	for _, item := range req.Data {
		items = append(items, service.WeekItem{Category: item.Label, Amount: item.Amount})
	}

	if _, err := h.services.ReplaceWeek(c.Request.Context(), h.cfg.DefaultUsername, week, items); err != nil {
		h.respondError(c, "board_week_save_failed", err, "week", week)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Expenses for week " + strconv.Itoa(week) + " saved successfully",
		"count":   len(req.Data),
	})
}

func (h *Handler) boardItemUpdate(c *gin.Context) {
	id := c.Param("id")

	var req boardItemPatch
	if ok := h.bindJSONOrBadRequest(c, &req); !ok {
		return
	}

	if _, err := h.services.Update(c.Request.Context(), id, service.UpdateExpenseParams{
		Category: req.Label,
		Amount:   req.Amount,
	}); err != nil {
		h.respondError(c, "board_item_update_failed", err, "id", id)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Expense updated successfully"})
}

func (h *Handler) boardItemDelete(c *gin.Context) {
	id := c.Param("id")

	if err := h.services.Delete(c.Request.Context(), id); err != nil {
		h.respondError(c, "board_item_delete_failed", err, "id", id)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Expense deleted successfully"})
}
