package handler

import (
	"net/http"

	"github.com/brainless/travlyng/internal/model"

	"github.com/gin-gonic/gin"
)

// planRequest — тело запроса создания/обновления плана путешествия.
type planRequest struct {
	Name      string  `json:"name" binding:"required"`
	StartDate *string `json:"start_date"`
	EndDate   *string `json:"end_date"`
}

func (r planRequest) toModel() *model.TravelPlan {
	return &model.TravelPlan{Name: r.Name, StartDate: r.StartDate, EndDate: r.EndDate}
}

// ListPlans обработчик для GET /plans — планы без пунктов маршрута.
func (h *Handler) ListPlans(c *gin.Context) {
	plans, err := h.PlanService.List()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Не удалось получить планы"})
		return
	}
	c.JSON(http.StatusOK, plans)
}

// GetPlan обработчик для GET /plans/:planID — план вместе с пунктами.
func (h *Handler) GetPlan(c *gin.Context) {
	id, ok := parseID(c, "planID")
	if !ok {
		return
	}
	plan, err := h.PlanService.Get(id)
	if err != nil {
		failRead(c, err, "Не удалось получить план")
		return
	}
	c.JSON(http.StatusOK, plan)
}

// CreatePlan обработчик для POST /plans.
func (h *Handler) CreatePlan(c *gin.Context) {
	var req planRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	plan, err := h.PlanService.Create(req.toModel())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Не удалось создать план"})
		return
	}
	c.JSON(http.StatusCreated, plan)
}

// UpdatePlan обработчик для PUT /plans/:planID.
func (h *Handler) UpdatePlan(c *gin.Context) {
	id, ok := parseID(c, "planID")
	if !ok {
		return
	}
	var req planRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	plan, err := h.PlanService.Update(id, req.toModel())
	if err != nil {
		failRead(c, err, "Не удалось обновить план")
		return
	}
	c.JSON(http.StatusOK, plan)
}

// DeletePlan обработчик для DELETE /plans/:planID.
func (h *Handler) DeletePlan(c *gin.Context) {
	id, ok := parseID(c, "planID")
	if !ok {
		return
	}
	if err := h.PlanService.Delete(id); err != nil {
		failRead(c, err, "Не удалось удалить план")
		return
	}
	c.Status(http.StatusNoContent)
}
