package handlers

import (
	"net/http"

	"expense_ledger/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
)

// Request DTO for adding an expense. Amount is a pointer so a missing
// field is distinguishable from an explicit zero.
type addExpenseRequest struct {
	Username string           `json:"username"`
	Category string           `json:"category"`
	Amount   *decimal.Decimal `json:"amount"`
	WeekDate string           `json:"week_date,omitempty"` // YYYY-MM-DD, defaults to today
}

// Request DTO for partial updates; absent fields stay unchanged.
type updateExpenseRequest struct {
	Category *string          `json:"category,omitempty"`
	Amount   *decimal.Decimal `json:"amount,omitempty"`
	WeekDate *string          `json:"week_date,omitempty"`
}

// @Summary      Add expense
// @Tags         ledger
// @Accept       json
// @Produce      json
// @Param        body  body  addExpenseRequest  true  "Expense payload"
// @Success      201  {object}  map[string]interface{}  "message, expense"
// @Failure      400  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Router       /api/add_expense [post]
func (h *Handler) addExpense(c *gin.Context) {
	var req addExpenseRequest
	if ok := h.bindJSONOrBadRequest(c, &req); !ok {
		return
	}

	expense, err := h.services.Add(c.Request.Context(), service.AddExpenseParams{
		Username: req.Username,
		Category: req.Category,
		Amount:   req.Amount,
		WeekDate: req.WeekDate,
	})
	if err != nil {
		h.respondError(c, "add_expense_failed", err, "username", req.Username)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "Expense added successfully",
		"expense": expense,
	})
}

// @Summary      List expenses
// @Description  All expenses for a user, most recent week first.
// @Tags         ledger
// @Produce      json
// @Param        username  path  string  true  "Username"
// @Success      200  {object}  map[string]interface{}  "username, expenses, total_expenses"
// @Failure      404  {object}  map[string]string
// @Router       /api/get_expenses/{username} [get]
func (h *Handler) getExpenses(c *gin.Context) {
	username := c.Param("username")

	expenses, err := h.services.List(c.Request.Context(), username)
	if err != nil {
		h.respondError(c, "get_expenses_failed", err, "username", username)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"username":       username,
		"expenses":       expenses,
		"total_expenses": len(expenses),
	})
}

// @Summary      Update expense
// @Description  Applies only the fields present in the body.
// @Tags         ledger
// @Accept       json
// @Produce      json
// @Param        id    path  string                true  "Expense id"
// @Param        body  body  updateExpenseRequest  true  "Partial fields"
// @Success      200  {object}  map[string]interface{}  "message, expense"
// @Failure      400  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Router       /api/expenses/{id} [put]
func (h *Handler) updateExpense(c *gin.Context) {
	id := c.Param("id")

	var req updateExpenseRequest
	if ok := h.bindJSONOrBadRequest(c, &req); !ok {
		return
	}

	expense, err := h.services.Update(c.Request.Context(), id, service.UpdateExpenseParams{
		Category: req.Category,
		Amount:   req.Amount,
		WeekDate: req.WeekDate,
	})
	if err != nil {
		h.respondError(c, "update_expense_failed", err, "id", id)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Expense updated successfully",
		"expense": expense,
	})
}

// @Summary      Delete expense
// @Description  Deleting an already-deleted id yields 404, not success.
// @Tags         ledger
// @Produce      json
// @Param        id  path  string  true  "Expense id"
// @Success      200  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Router       /api/expenses/{id} [delete]
func (h *Handler) deleteExpense(c *gin.Context) {
	id := c.Param("id")

	if err := h.services.Delete(c.Request.Context(), id); err != nil {
		h.respondError(c, "delete_expense_failed", err, "id", id)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Expense deleted successfully"})
}
