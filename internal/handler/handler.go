package handler

import (
	"net/http"

	"github.com/brainless/travlyng/internal/service"

	"github.com/gin-gonic/gin"
)

// Handler структурирует зависимости сервисов для обработки HTTP-запросов.
type Handler struct {
	CatalogService  *service.CatalogService
	PlanService     *service.PlanService
	PlanItemService *service.PlanItemService
	SearchService   *service.SearchService
}

// NewHandler создает новый Handler с внедрением зависимостей (сервисов).
func NewHandler(cs *service.CatalogService, ps *service.PlanService,
	pis *service.PlanItemService, ss *service.SearchService) *Handler {
	return &Handler{
		CatalogService:  cs,
		PlanService:     ps,
		PlanItemService: pis,
		SearchService:   ss,
	}
}

// Health обработчик для GET /health.
func (h *Handler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// Search обработчик для GET /search?q= — сквозной поиск по каталогу.
func (h *Handler) Search(c *gin.Context) {
	results, err := h.SearchService.Search(c.Request.Context(), c.Query("q"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Не удалось выполнить поиск"})
		return
	}
	c.JSON(http.StatusOK, results)
}
