package dataprovider

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
)

func decodeBody(t *testing.T, r *http.Request) Record {
	t.Helper()
	body := Record{}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		t.Fatalf("не удалось разобрать тело запроса: %v", err)
	}
	return body
}

func TestCreatePlanItemBuildsNestedPath(t *testing.T) {
	var gotPath, gotMethod string
	var gotBody Record
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotMethod = r.Method
		gotBody = decodeBody(t, r)
		w.WriteHeader(http.StatusCreated)
		json.NewEncoder(w).Encode(map[string]interface{}{
			"id": 13, "plan_id": 7, "entity_type": "place", "entity_id": 42,
			"visit_date": "2025-04-01", "notes": "прийти пораньше",
		})
	}))
	defer server.Close()

	p := New(server.URL)
	record, err := p.Create("plan_items", Record{
		"plan_id":     7,
		"entity_type": "place",
		"entity_id":   42,
		"visit_date":  "2025-04-01",
		"notes":       "прийти пораньше",
	})
	if err != nil {
		t.Fatalf("Create вернул ошибку: %v", err)
	}
	if gotMethod != http.MethodPost || gotPath != "/plans/7/items" {
		t.Fatalf("ожидался POST /plans/7/items, получен %s %s", gotMethod, gotPath)
	}
	if _, ok := gotBody["plan_id"]; ok {
		t.Fatalf("plan_id не должен попадать в тело запроса: %v", gotBody)
	}
	if record["id"] != float64(13) {
		t.Fatalf("id из ответа не присоединен к записи: %v", record["id"])
	}
	if record["plan_id"] != float64(7) {
		t.Fatalf("plan_id должен сохраняться на записи: %v", record["plan_id"])
	}
}

func TestCreatePlanItemWithoutParentFailsBeforeNetwork(t *testing.T) {
	requests := 0
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requests++
	}))
	defer server.Close()

	p := New(server.URL)
	_, err := p.Create("plan_items", Record{"entity_type": "place", "entity_id": 42})
	if !errors.Is(err, ErrMissingParentReference) {
		t.Fatalf("ожидался ErrMissingParentReference, получено: %v", err)
	}
	if requests != 0 {
		t.Fatalf("записи без plan_id не должны доходить до сети, запросов: %d", requests)
	}
}

func TestUpdatePlanItemStripsParentFromBody(t *testing.T) {
	var gotPath, gotMethod string
	var gotBody Record
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotMethod = r.Method
		gotBody = decodeBody(t, r)
		json.NewEncoder(w).Encode(map[string]interface{}{
			"id": 13, "plan_id": 7, "entity_type": "restaurant", "entity_id": 5,
			"visit_date": nil, "notes": nil,
		})
	}))
	defer server.Close()

	p := New(server.URL)
	record, err := p.Update("plan_items", 13, Record{
		"plan_id":     7,
		"entity_type": "restaurant",
		"entity_id":   5,
	})
	if err != nil {
		t.Fatalf("Update вернул ошибку: %v", err)
	}
	if gotMethod != http.MethodPut || gotPath != "/plans/7/items/13" {
		t.Fatalf("ожидался PUT /plans/7/items/13, получен %s %s", gotMethod, gotPath)
	}
	if _, ok := gotBody["plan_id"]; ok {
		t.Fatalf("plan_id не должен попадать в тело запроса: %v", gotBody)
	}
	if record["id"] != float64(13) || record["plan_id"] != float64(7) {
		t.Fatalf("запись должна содержать id и plan_id: %v", record)
	}
}

func TestUpdatePlanItemWithoutParent(t *testing.T) {
	p := New("http://127.0.0.1:0")
	_, err := p.Update("plan_items", 13, Record{"entity_type": "place", "entity_id": 1})
	if !errors.Is(err, ErrMissingParentReference) {
		t.Fatalf("ожидался ErrMissingParentReference, получено: %v", err)
	}
}

func TestDeletePlanItemUsesPreviousRecord(t *testing.T) {
	var gotPath, gotMethod string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotMethod = r.Method
		w.WriteHeader(http.StatusNoContent)
	}))
	defer server.Close()

	previous := Record{"id": float64(13), "plan_id": float64(7), "entity_type": "place"}
	p := New(server.URL)
	record, err := p.Delete("plan_items", 13, previous)
	if err != nil {
		t.Fatalf("Delete вернул ошибку: %v", err)
	}
	if gotMethod != http.MethodDelete || gotPath != "/plans/7/items/13" {
		t.Fatalf("ожидался DELETE /plans/7/items/13, получен %s %s", gotMethod, gotPath)
	}
	if record["id"] != float64(13) {
		t.Fatalf("Delete должен возвращать прежнюю запись: %v", record)
	}
}

func TestDeletePlanItemWithoutParentInPrevious(t *testing.T) {
	requests := 0
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requests++
	}))
	defer server.Close()

	p := New(server.URL)
	_, err := p.Delete("plan_items", 13, Record{"id": float64(13)})
	if !errors.Is(err, ErrMissingParentReference) {
		t.Fatalf("ожидался ErrMissingParentReference, получено: %v", err)
	}
	if requests != 0 {
		t.Fatalf("удаление без plan_id не должно доходить до сети, запросов: %d", requests)
	}
}

func TestListByParentBuildsRangeAndSort(t *testing.T) {
	var gotPath string
	var gotQuery map[string][]string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotQuery = r.URL.Query()
		w.Header().Set("X-Total-Count", "42")
		json.NewEncoder(w).Encode([]map[string]interface{}{
			{"id": 1, "plan_id": 7, "entity_type": "place", "entity_id": 42},
		})
	}))
	defer server.Close()

	p := New(server.URL)
	result, err := p.ListByParent("plan_items", 7, ListParams{
		Sort:       Sort{Field: "visit_date", Order: "DESC"},
		Pagination: Pagination{Page: 3, PerPage: 10},
		Filter:     map[string]interface{}{"entity_type": "place"},
	})
	if err != nil {
		t.Fatalf("ListByParent вернул ошибку: %v", err)
	}
	if gotPath != "/plans/7/items" {
		t.Fatalf("ожидался путь /plans/7/items, получен %s", gotPath)
	}
	expect := map[string]string{
		"_sort": "visit_date", "_order": "DESC",
		"_start": "20", "_end": "30",
		"entity_type": "place",
	}
	for key, want := range expect {
		values := gotQuery[key]
		if len(values) != 1 || values[0] != want {
			t.Fatalf("параметр %s: ожидалось %q, получено %v", key, want, values)
		}
	}
	if result.Total != 42 {
		t.Fatalf("ожидался Total 42, получен %d", result.Total)
	}
	if len(result.Records) != 1 {
		t.Fatalf("ожидалась одна запись, получено %d", len(result.Records))
	}
}

func TestListByParentReadsContentRange(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Range", "items 0-1/5")
		json.NewEncoder(w).Encode([]map[string]interface{}{})
	}))
	defer server.Close()

	p := New(server.URL)
	result, err := p.ListByParent("plan_items", 7, ListParams{})
	if err != nil {
		t.Fatalf("ListByParent вернул ошибку: %v", err)
	}
	if result.Total != 5 {
		t.Fatalf("ожидался Total 5 из Content-Range, получен %d", result.Total)
	}
}

func TestListByParentDegradesWithoutCountSignal(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode([]map[string]interface{}{
			{"id": 1, "plan_id": 7}, {"id": 2, "plan_id": 7},
		})
	}))
	defer server.Close()

	p := New(server.URL)
	result, err := p.ListByParent("plan_items", 7, ListParams{})
	if err != nil {
		t.Fatalf("отсутствие сигнала счетчика не должно ронять вызов: %v", err)
	}
	if result.Total != 0 {
		t.Fatalf("без сигнала счетчика ожидался Total 0, получен %d", result.Total)
	}
	if len(result.Records) != 2 {
		t.Fatalf("записи должны вернуться несмотря на деградацию счетчика: %d", len(result.Records))
	}
}

func TestListByParentRequiresParent(t *testing.T) {
	p := New("http://127.0.0.1:0")
	if _, err := p.ListByParent("plan_items", 0, ListParams{}); !errors.Is(err, ErrMissingParentReference) {
		t.Fatalf("ожидался ErrMissingParentReference, получено: %v", err)
	}
}

func TestListStripsPlanIDFilterOnFlatEndpoint(t *testing.T) {
	var gotPath string
	var gotQuery map[string][]string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotQuery = r.URL.Query()
		w.Header().Set("X-Total-Count", "0")
		json.NewEncoder(w).Encode([]map[string]interface{}{})
	}))
	defer server.Close()

	p := New(server.URL)
	_, err := p.List("plan_items", ListParams{
		Filter: map[string]interface{}{"plan_id": 7, "entity_type": "place"},
	})
	if err != nil {
		t.Fatalf("List вернул ошибку: %v", err)
	}
	if gotPath != "/plan_items" {
		t.Fatalf("ожидался путь /plan_items, получен %s", gotPath)
	}
	if _, ok := gotQuery["plan_id"]; ok {
		t.Fatalf("plan_id не должен пробрасываться на плоскую конечную точку: %v", gotQuery)
	}
	if values := gotQuery["entity_type"]; len(values) != 1 || values[0] != "place" {
		t.Fatalf("остальные фильтры должны передаваться как есть: %v", gotQuery)
	}
}

func TestFlatResourcesPassThrough(t *testing.T) {
	var paths []string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		paths = append(paths, r.Method+" "+r.URL.Path)
		switch r.Method {
		case http.MethodGet:
			if r.URL.Path == "/places" {
				json.NewEncoder(w).Encode([]map[string]interface{}{{"id": 1, "name": "Киото"}})
				return
			}
			json.NewEncoder(w).Encode(map[string]interface{}{"id": 5, "name": "Киото"})
		case http.MethodPost:
			w.WriteHeader(http.StatusCreated)
			json.NewEncoder(w).Encode(map[string]interface{}{"id": 9, "name": "Фусими Инари"})
		case http.MethodDelete:
			w.WriteHeader(http.StatusNoContent)
		}
	}))
	defer server.Close()

	p := New(server.URL)
	if _, err := p.List("places", ListParams{}); err != nil {
		t.Fatalf("List places: %v", err)
	}
	if _, err := p.GetOne("places", 5); err != nil {
		t.Fatalf("GetOne places: %v", err)
	}
	created, err := p.Create("places", Record{"name": "Фусими Инари"})
	if err != nil {
		t.Fatalf("Create places: %v", err)
	}
	if created["id"] != float64(9) {
		t.Fatalf("id из ответа не присоединен: %v", created)
	}
	if _, err := p.Delete("places", 9, Record{"id": float64(9)}); err != nil {
		t.Fatalf("Delete places: %v", err)
	}

	want := []string{"GET /places", "GET /places/5", "POST /places", "DELETE /places/9"}
	if len(paths) != len(want) {
		t.Fatalf("ожидались запросы %v, получены %v", want, paths)
	}
	for i := range want {
		if paths[i] != want[i] {
			t.Fatalf("запрос %d: ожидался %s, получен %s", i, want[i], paths[i])
		}
	}
}

func TestGetOnePlanItemRequiresParent(t *testing.T) {
	p := New("http://127.0.0.1:0")
	if _, err := p.GetOne("plan_items", 3); !errors.Is(err, ErrMissingParentReference) {
		t.Fatalf("ожидался ErrMissingParentReference, получено: %v", err)
	}
}

func TestGetOneByParentBuildsNestedPath(t *testing.T) {
	var gotPath string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		json.NewEncoder(w).Encode(map[string]interface{}{"id": 3, "plan_id": 7})
	}))
	defer server.Close()

	p := New(server.URL)
	record, err := p.GetOneByParent("plan_items", 7, 3)
	if err != nil {
		t.Fatalf("GetOneByParent вернул ошибку: %v", err)
	}
	if gotPath != "/plans/7/items/3" {
		t.Fatalf("ожидался путь /plans/7/items/3, получен %s", gotPath)
	}
	if record["plan_id"] != float64(7) {
		t.Fatalf("запись должна содержать plan_id: %v", record)
	}
}

func TestNotFoundSurfaces(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer server.Close()

	p := New(server.URL)
	if _, err := p.GetOne("places", 9999); !errors.Is(err, ErrNotFound) {
		t.Fatalf("ожидался ErrNotFound, получено: %v", err)
	}
	if _, err := p.Update("places", 9999, Record{"name": "нет"}); !errors.Is(err, ErrNotFound) {
		t.Fatalf("ожидался ErrNotFound при обновлении, получено: %v", err)
	}
}

func TestSearchPassesQuery(t *testing.T) {
	var gotQuery string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.Query().Get("q")
		json.NewEncoder(w).Encode([]map[string]interface{}{
			{"id": 1, "entity_type": "place", "name": "Киото"},
		})
	}))
	defer server.Close()

	p := New(server.URL)
	results, err := p.Search("киото")
	if err != nil {
		t.Fatalf("Search вернул ошибку: %v", err)
	}
	if gotQuery != "киото" {
		t.Fatalf("параметр q передан неверно: %q", gotQuery)
	}
	if len(results) != 1 || results[0]["entity_type"] != "place" {
		t.Fatalf("неожиданные результаты поиска: %v", results)
	}
}

func TestUnknownResource(t *testing.T) {
	p := New("http://127.0.0.1:0")
	if _, err := p.List("bookings", ListParams{}); err == nil {
		t.Fatal("ожидалась ошибка для неизвестного ресурса")
	}
}
