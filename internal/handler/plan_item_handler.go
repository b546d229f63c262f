package handler

import (
	"errors"
	"net/http"

	"github.com/brainless/travlyng/internal/model"

	"github.com/gin-gonic/gin"
)

// planItemRequest — тело запроса создания/обновления пункта маршрута.
// plan_id в теле отсутствует: его кодирует путь вложенного ресурса.
type planItemRequest struct {
	EntityType string  `json:"entity_type" binding:"required"`
	EntityID   int64   `json:"entity_id" binding:"required"`
	VisitDate  *string `json:"visit_date"`
	Notes      *string `json:"notes"`
}

func (r planItemRequest) toModel() *model.PlanItem {
	return &model.PlanItem{
		EntityType: r.EntityType,
		EntityID:   r.EntityID,
		VisitDate:  r.VisitDate,
		Notes:      r.Notes,
	}
}

// ListPlanItems обработчик для GET /plans/:planID/items. Общее число пунктов
// сообщается заголовком X-Total-Count.
func (h *Handler) ListPlanItems(c *gin.Context) {
	planID, ok := parseID(c, "planID")
	if !ok {
		return
	}
	items, total, err := h.PlanItemService.ListByPlan(planID, parseListOptions(c))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Не удалось получить пункты маршрута"})
		return
	}
	writeTotalCount(c, total)
	c.JSON(http.StatusOK, items)
}

// ListAllPlanItems обработчик для GET /plan_items — сквозной просмотр пунктов
// всех планов. Каждая строка содержит plan_id.
func (h *Handler) ListAllPlanItems(c *gin.Context) {
	items, total, err := h.PlanItemService.ListAll(parseListOptions(c))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Не удалось получить пункты маршрута"})
		return
	}
	writeTotalCount(c, total)
	c.JSON(http.StatusOK, items)
}

// GetPlanItem обработчик для GET /plans/:planID/items/:itemID.
func (h *Handler) GetPlanItem(c *gin.Context) {
	planID, ok := parseID(c, "planID")
	if !ok {
		return
	}
	itemID, ok := parseID(c, "itemID")
	if !ok {
		return
	}
	item, err := h.PlanItemService.Get(planID, itemID)
	if err != nil {
		failRead(c, err, "Не удалось получить пункт маршрута")
		return
	}
	c.JSON(http.StatusOK, item)
}

// CreatePlanItem обработчик для POST /plans/:planID/items.
func (h *Handler) CreatePlanItem(c *gin.Context) {
	planID, ok := parseID(c, "planID")
	if !ok {
		return
	}
	var req planItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	item, err := h.PlanItemService.Create(planID, req.toModel())
	if err != nil {
		if errors.Is(err, model.ErrInvalidEntityType) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Не удалось добавить пункт маршрута"})
		return
	}
	c.JSON(http.StatusCreated, item)
}

// UpdatePlanItem обработчик для PUT /plans/:planID/items/:itemID.
func (h *Handler) UpdatePlanItem(c *gin.Context) {
	planID, ok := parseID(c, "planID")
	if !ok {
		return
	}
	itemID, ok := parseID(c, "itemID")
	if !ok {
		return
	}
	var req planItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	item, err := h.PlanItemService.Update(planID, itemID, req.toModel())
	if err != nil {
		if errors.Is(err, model.ErrInvalidEntityType) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		failRead(c, err, "Не удалось обновить пункт маршрута")
		return
	}
	c.JSON(http.StatusOK, item)
}

// DeletePlanItem обработчик для DELETE /plans/:planID/items/:itemID.
func (h *Handler) DeletePlanItem(c *gin.Context) {
	planID, ok := parseID(c, "planID")
	if !ok {
		return
	}
	itemID, ok := parseID(c, "itemID")
	if !ok {
		return
	}
	if err := h.PlanItemService.Delete(planID, itemID); err != nil {
		failRead(c, err, "Не удалось удалить пункт маршрута")
		return
	}
	c.Status(http.StatusNoContent)
}
