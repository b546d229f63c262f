package handler

import (
	"database/sql"
	"errors"
	"net/http"
	"strconv"

	"github.com/brainless/travlyng/internal/model"

	"github.com/gin-gonic/gin"
)

// entityRequest — тело запроса создания/обновления записи каталога.
type entityRequest struct {
	Name        string  `json:"name" binding:"required"`
	Description *string `json:"description"`
	Location    *string `json:"location"`
}

func (r entityRequest) toModel() *model.Entity {
	return &model.Entity{Name: r.Name, Description: r.Description, Location: r.Location}
}

// parseID извлекает числовой идентификатор из параметра пути; при неудаче
// отвечает 400 и возвращает false.
func parseID(c *gin.Context, name string) (int64, bool) {
	id, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Некорректный идентификатор"})
		return 0, false
	}
	return id, true
}

// failRead отвечает 404 для отсутствующей записи и 500 для прочих ошибок.
func failRead(c *gin.Context, err error, msg string) {
	if errors.Is(err, sql.ErrNoRows) {
		c.Status(http.StatusNotFound)
		return
	}
	c.JSON(http.StatusInternalServerError, gin.H{"error": msg})
}

// ListEntities обработчик для GET /{places|accommodations|restaurants}.
func (h *Handler) ListEntities(t model.EntityType) gin.HandlerFunc {
	return func(c *gin.Context) {
		entities, err := h.CatalogService.List(t)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Не удалось получить список"})
			return
		}
		c.JSON(http.StatusOK, entities)
	}
}

// GetEntity обработчик для GET /{...}/:id.
func (h *Handler) GetEntity(t model.EntityType) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := parseID(c, "id")
		if !ok {
			return
		}
		entity, err := h.CatalogService.Get(t, id)
		if err != nil {
			failRead(c, err, "Не удалось получить запись")
			return
		}
		c.JSON(http.StatusOK, entity)
	}
}

// CreateEntity обработчик для POST /{...}.
func (h *Handler) CreateEntity(t model.EntityType) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req entityRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		entity, err := h.CatalogService.Create(t, req.toModel())
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Не удалось создать запись"})
			return
		}
		c.JSON(http.StatusCreated, entity)
	}
}

// UpdateEntity обработчик для PUT /{...}/:id.
func (h *Handler) UpdateEntity(t model.EntityType) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := parseID(c, "id")
		if !ok {
			return
		}
		var req entityRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		entity, err := h.CatalogService.Update(t, id, req.toModel())
		if err != nil {
			failRead(c, err, "Не удалось обновить запись")
			return
		}
		c.JSON(http.StatusOK, entity)
	}
}

// DeleteEntity обработчик для DELETE /{...}/:id.
func (h *Handler) DeleteEntity(t model.EntityType) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := parseID(c, "id")
		if !ok {
			return
		}
		if err := h.CatalogService.Delete(t, id); err != nil {
			failRead(c, err, "Не удалось удалить запись")
			return
		}
		c.Status(http.StatusNoContent)
	}
}
