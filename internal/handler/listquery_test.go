package handler

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
)

func contextWithQuery(t *testing.T, rawQuery string) *gin.Context {
	t.Helper()
	gin.SetMode(gin.TestMode)
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	req, err := http.NewRequest(http.MethodGet, "/plan_items?"+rawQuery, nil)
	if err != nil {
		t.Fatalf("не удалось создать запрос: %v", err)
	}
	c.Request = req
	return c
}

func TestParseListOptionsFull(t *testing.T) {
	c := contextWithQuery(t, "_sort=visit_date&_order=DESC&_start=20&_end=30&entity_type=place")
	opts := parseListOptions(c)

	if opts.SortField != "visit_date" || opts.SortOrder != "DESC" {
		t.Fatalf("сортировка разобрана неверно: %+v", opts)
	}
	if opts.Start != 20 || opts.End != 30 {
		t.Fatalf("диапазон разобран неверно: %+v", opts)
	}
	if !opts.Limited() {
		t.Fatal("диапазон [20, 30) должен включать пагинацию")
	}
	if len(opts.Filters) != 1 || opts.Filters["entity_type"] != "place" {
		t.Fatalf("фильтры разобраны неверно: %v", opts.Filters)
	}
}

func TestParseListOptionsDefaults(t *testing.T) {
	c := contextWithQuery(t, "")
	opts := parseListOptions(c)

	if opts.SortField != "" {
		t.Fatalf("поле сортировки должно быть пустым: %q", opts.SortField)
	}
	if opts.SortOrder != "ASC" {
		t.Fatalf("порядок по умолчанию ASC, получен %q", opts.SortOrder)
	}
	if opts.Limited() {
		t.Fatal("без _start и _end пагинации быть не должно")
	}
	if len(opts.Filters) != 0 {
		t.Fatalf("фильтров быть не должно: %v", opts.Filters)
	}
}

func TestParseListOptionsReservedNotFilters(t *testing.T) {
	c := contextWithQuery(t, "_sort=name&_order=ASC&_start=0&_end=10&name=Киото")
	opts := parseListOptions(c)

	for _, key := range []string{"_sort", "_order", "_start", "_end"} {
		if _, ok := opts.Filters[key]; ok {
			t.Fatalf("служебный параметр %s не должен попадать в фильтры", key)
		}
	}
	if opts.Filters["name"] != "Киото" {
		t.Fatalf("обычный параметр должен стать фильтром: %v", opts.Filters)
	}
}

func TestParseListOptionsBadRange(t *testing.T) {
	c := contextWithQuery(t, "_start=abc&_end=-5")
	opts := parseListOptions(c)

	if opts.Start != 0 || opts.End != 0 {
		t.Fatalf("некорректный диапазон должен игнорироваться: %+v", opts)
	}
	if opts.Limited() {
		t.Fatal("некорректный диапазон не должен включать пагинацию")
	}
}

func TestWriteTotalCount(t *testing.T) {
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	writeTotalCount(c, 42)
	if got := w.Header().Get("X-Total-Count"); got != "42" {
		t.Fatalf("X-Total-Count: ожидалось 42, получено %q", got)
	}
	if got := w.Header().Get("Access-Control-Expose-Headers"); got != "X-Total-Count" {
		t.Fatalf("заголовок X-Total-Count должен быть открыт для браузера: %q", got)
	}
}
