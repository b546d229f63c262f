package handler

import (
	"strconv"

	"github.com/brainless/travlyng/internal/repository"

	"github.com/gin-gonic/gin"
)

// Служебные параметры списка; все остальные параметры запроса считаются
// фильтрами по полям.
var reservedParams = map[string]bool{
	"_sort":  true,
	"_order": true,
	"_start": true,
	"_end":   true,
}

// parseListOptions извлекает сортировку, полуоткрытый диапазон [_start, _end)
// и фильтры из параметров запроса списка.
func parseListOptions(c *gin.Context) repository.ListOptions {
	opts := repository.ListOptions{
		SortField: c.Query("_sort"),
		SortOrder: c.DefaultQuery("_order", "ASC"),
		Filters:   map[string]string{},
	}
	if v, err := strconv.Atoi(c.Query("_start")); err == nil && v >= 0 {
		opts.Start = v
	}
	if v, err := strconv.Atoi(c.Query("_end")); err == nil && v >= 0 {
		opts.End = v
	}
	for key, values := range c.Request.URL.Query() {
		if reservedParams[key] || len(values) == 0 {
			continue
		}
		opts.Filters[key] = values[0]
	}
	return opts
}

// writeTotalCount выставляет сигнал общего числа записей для пагинации.
func writeTotalCount(c *gin.Context, total int) {
	c.Header("X-Total-Count", strconv.Itoa(total))
	c.Header("Access-Control-Expose-Headers", "X-Total-Count")
}
