package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"orderhub/internal/domain/order"

	"github.com/gin-gonic/gin"
)

// OrderHandler exposes point lookups of stored orders.
type OrderHandler struct {
	store order.Store
}

func NewOrderHandler(store order.Store) *OrderHandler {
	return &OrderHandler{store: store}
}

// Get handles GET /orders/:record_id.
func (h *OrderHandler) Get(c *gin.Context) {
	recordID, err := strconv.ParseInt(c.Param("record_id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "invalid record id"})
		return
	}

	stored, err := h.store.GetByID(c.Request.Context(), recordID)
	if err != nil {
		if errors.Is(err, order.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"message": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"message": err.Error()})
		return
	}

	c.JSON(http.StatusOK, stored)
}
