// Package dataprovider реализует единообразный CRUD-доступ к ресурсам API
// по имени ресурса. Большинство ресурсов — плоские коллекции, но пункты
// маршрута адресуются только через родительский план
// (/plans/{plan_id}/items/...), поэтому адаптер распознает этот ресурс и
// переписывает обобщенные вызовы на вложенные пути и обратно.
package dataprovider

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"
)

// Record — обобщенная запись ресурса в том виде, в котором ее ожидает
// слой представления.
type Record map[string]interface{}

// Sort задает поле и направление сортировки списка.
type Sort struct {
	Field string
	Order string // "ASC" или "DESC"
}

// Pagination задает страницу списка; пересчитывается в полуоткрытый
// диапазон записей [_start, _end).
type Pagination struct {
	Page    int
	PerPage int
}

// ListParams — параметры выборки списка.
type ListParams struct {
	Sort       Sort
	Pagination Pagination
	Filter     map[string]interface{}
}

// ListResult — страница записей и общее число записей без учета диапазона.
type ListResult struct {
	Records []Record
	Total   int
}

var (
	// ErrNotFound — запрошенной записи нет в целевой таблице или области.
	ErrNotFound = errors.New("запись не найдена")
	// ErrMissingParentReference — операция над пунктом маршрута запрошена
	// без разрешимого plan_id. Это ошибка вызывающей стороны: без
	// родительского плана вложенный путь построить нельзя, и молчаливый
	// выбор плана по умолчанию исказил бы маршрут.
	ErrMissingParentReference = errors.New("не определен plan_id родительского плана")
)

// planItemResource — единственный ресурс с вложенной адресацией.
const (
	planItemResource = "plan_items"
	parentField      = "plan_id"
)

// Плоские адреса ресурсов. Для plan_items плоским является только чтение.
var flatPaths = map[string]string{
	"places":         "/places",
	"accommodations": "/accommodations",
	"restaurants":    "/restaurants",
	"plans":          "/plans",
	"plan_items":     "/plan_items",
}

// isPlanScoped — явный предикат маршрутизации: обычная проверка имени
// ресурса вместо диспетчеризации по типам.
func isPlanScoped(resource string) bool {
	return resource == planItemResource
}

func nestedItemsPath(planID int64) string {
	return fmt.Sprintf("/plans/%d/items", planID)
}

// Provider — клиент API с единообразным CRUD-контрактом. Состояния между
// вызовами нет: каждый вызов — независимый сетевой запрос.
type Provider struct {
	baseURL string
	client  *http.Client
	logger  *log.Logger
}

// New создает Provider для API по указанному базовому адресу.
func New(baseURL string) *Provider {
	return &Provider{
		baseURL: strings.TrimRight(baseURL, "/"),
		client:  &http.Client{Timeout: 10 * time.Second},
		logger:  log.Default(),
	}
}

// NewWithClient создает Provider с собственным http.Client (для тестов и
// нестандартных транспортных настроек).
func NewWithClient(baseURL string, client *http.Client) *Provider {
	p := New(baseURL)
	p.client = client
	return p
}

func flatPath(resource string) (string, error) {
	path, ok := flatPaths[resource]
	if !ok {
		return "", fmt.Errorf("неизвестный ресурс: %s", resource)
	}
	return path, nil
}

// List возвращает страницу плоского списка ресурса. Для пунктов маршрута
// фильтр по plan_id не пробрасывается на плоскую конечную точку: она не
// умеет фильтровать по плану на сервере, и прозрачная передача вернула бы
// список неверной мощности. Отбор по плану идет через ListByParent.
func (p *Provider) List(resource string, params ListParams) (ListResult, error) {
	path, err := flatPath(resource)
	if err != nil {
		return ListResult{}, err
	}
	if isPlanScoped(resource) {
		if _, ok := params.Filter[parentField]; ok {
			p.logger.Printf("dataprovider: фильтр %s для %s отброшен, используйте ListByParent", parentField, resource)
			filtered := make(map[string]interface{}, len(params.Filter))
			for k, v := range params.Filter {
				if k != parentField {
					filtered[k] = v
				}
			}
			params.Filter = filtered
		}
	}
	return p.list(path, params)
}

// ListByParent возвращает страницу пунктов указанного плана через вложенный
// путь /plans/{plan_id}/items.
func (p *Provider) ListByParent(resource string, parentID int64, params ListParams) (ListResult, error) {
	if !isPlanScoped(resource) {
		return ListResult{}, fmt.Errorf("ресурс %s не адресуется через родителя", resource)
	}
	if parentID <= 0 {
		p.logger.Printf("dataprovider: ListByParent %s без plan_id", resource)
		return ListResult{}, ErrMissingParentReference
	}
	return p.list(nestedItemsPath(parentID), params)
}

func (p *Provider) list(path string, params ListParams) (ListResult, error) {
	query := url.Values{}
	if params.Sort.Field != "" {
		query.Set("_sort", params.Sort.Field)
		order := params.Sort.Order
		if order == "" {
			order = "ASC"
		}
		query.Set("_order", order)
	}
	if params.Pagination.PerPage > 0 {
		page := params.Pagination.Page
		if page < 1 {
			page = 1
		}
		query.Set("_start", strconv.Itoa((page-1)*params.Pagination.PerPage))
		query.Set("_end", strconv.Itoa(page*params.Pagination.PerPage))
	}
	for key, value := range params.Filter {
		query.Set(key, fmt.Sprintf("%v", value))
	}

	resp, err := p.do(http.MethodGet, path, query, nil)
	if err != nil {
		return ListResult{}, err
	}
	defer resp.Body.Close()
	if err := checkStatus(resp); err != nil {
		return ListResult{}, err
	}

	records := []Record{}
	if err := json.NewDecoder(resp.Body).Decode(&records); err != nil {
		return ListResult{}, fmt.Errorf("не удалось разобрать список: %w", err)
	}
	total, ok := totalFrom(resp.Header)
	if !ok {
		// Сервер не сообщил общее число записей: пагинация деградирует,
		// но сам вызов не считается ошибкой.
		p.logger.Printf("dataprovider: в ответе %s нет сигнала общего числа записей", path)
		total = 0
	}
	return ListResult{Records: records, Total: total}, nil
}

// GetOne возвращает одну запись плоского ресурса. Пункт маршрута так
// получить нельзя: без plan_id не построить вложенный путь.
func (p *Provider) GetOne(resource string, id int64) (Record, error) {
	if isPlanScoped(resource) {
		p.logger.Printf("dataprovider: GetOne %s без plan_id, используйте GetOneByParent", resource)
		return nil, ErrMissingParentReference
	}
	path, err := flatPath(resource)
	if err != nil {
		return nil, err
	}
	return p.fetch(fmt.Sprintf("%s/%d", path, id))
}

// GetOneByParent возвращает пункт маршрута в пределах родительского плана.
func (p *Provider) GetOneByParent(resource string, parentID, id int64) (Record, error) {
	if !isPlanScoped(resource) {
		return nil, fmt.Errorf("ресурс %s не адресуется через родителя", resource)
	}
	if parentID <= 0 {
		return nil, ErrMissingParentReference
	}
	return p.fetch(fmt.Sprintf("%s/%d", nestedItemsPath(parentID), id))
}

func (p *Provider) fetch(path string) (Record, error) {
	resp, err := p.do(http.MethodGet, path, nil, nil)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	if err := checkStatus(resp); err != nil {
		return nil, err
	}
	return decodeRecord(resp)
}

// Create создает запись ресурса. Для пункта маршрута plan_id обязан
// присутствовать в payload (его заранее подставляет слой представления из
// контекста родителя); адаптер выделяет его из тела, строит вложенный путь
// и возвращает запись с id из ответа и сохраненным plan_id.
func (p *Provider) Create(resource string, payload Record) (Record, error) {
	path, err := flatPath(resource)
	if err != nil {
		return nil, err
	}
	body := payload
	if isPlanScoped(resource) {
		planID, ok := parentID(payload)
		if !ok {
			p.logger.Printf("dataprovider: Create %s без %s", resource, parentField)
			return nil, ErrMissingParentReference
		}
		path = nestedItemsPath(planID)
		body = withoutParent(payload)
	}

	resp, err := p.do(http.MethodPost, path, nil, body)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	if err := checkStatus(resp); err != nil {
		return nil, err
	}
	created, err := decodeRecord(resp)
	if err != nil {
		return nil, err
	}
	return merge(payload, created), nil
}

// Update обновляет запись ресурса. Для пункта маршрута plan_id берется из
// payload и вырезается из исходящего тела: его уже кодирует путь.
func (p *Provider) Update(resource string, id int64, payload Record) (Record, error) {
	path, err := flatPath(resource)
	if err != nil {
		return nil, err
	}
	body := payload
	if isPlanScoped(resource) {
		planID, ok := parentID(payload)
		if !ok {
			p.logger.Printf("dataprovider: Update %s без %s", resource, parentField)
			return nil, ErrMissingParentReference
		}
		path = nestedItemsPath(planID)
		body = withoutParent(payload)
	}

	resp, err := p.do(http.MethodPut, fmt.Sprintf("%s/%d", path, id), nil, body)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	if err := checkStatus(resp); err != nil {
		return nil, err
	}
	updated, err := decodeRecord(resp)
	if err != nil {
		return nil, err
	}
	return merge(payload, updated), nil
}

// Delete удаляет запись ресурса и возвращает прежнюю запись как
// подтверждение удаленного. Для пункта маршрута plan_id берется из прежней
// записи: тело у удаления отсутствует, поэтому plan_id обязан сохраняться
// на каждой записи, отданной слою представления.
func (p *Provider) Delete(resource string, id int64, previous Record) (Record, error) {
	path, err := flatPath(resource)
	if err != nil {
		return nil, err
	}
	if isPlanScoped(resource) {
		planID, ok := parentID(previous)
		if !ok {
			p.logger.Printf("dataprovider: Delete %s без %s в прежней записи", resource, parentField)
			return nil, ErrMissingParentReference
		}
		path = nestedItemsPath(planID)
	}

	resp, err := p.do(http.MethodDelete, fmt.Sprintf("%s/%d", path, id), nil, nil)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	if err := checkStatus(resp); err != nil {
		return nil, err
	}
	return previous, nil
}

// Search выполняет поиск по каталогу через GET /search. Результаты не
// относятся к CRUD-ресурсам: у каждой записи есть entity_type.
func (p *Provider) Search(q string) ([]Record, error) {
	query := url.Values{}
	query.Set("q", q)
	resp, err := p.do(http.MethodGet, "/search", query, nil)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	if err := checkStatus(resp); err != nil {
		return nil, err
	}
	results := []Record{}
	if err := json.NewDecoder(resp.Body).Decode(&results); err != nil {
		return nil, fmt.Errorf("не удалось разобрать результаты поиска: %w", err)
	}
	return results, nil
}

func (p *Provider) do(method, path string, query url.Values, body interface{}) (*http.Response, error) {
	u := p.baseURL + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}
	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("не удалось сериализовать тело запроса: %w", err)
		}
		reader = bytes.NewReader(raw)
	}
	req, err := http.NewRequest(method, u, reader)
	if err != nil {
		return nil, err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	return p.client.Do(req)
}

func checkStatus(resp *http.Response) error {
	switch {
	case resp.StatusCode == http.StatusNotFound:
		return ErrNotFound
	case resp.StatusCode >= 400:
		raw, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return fmt.Errorf("сервер ответил %d: %s", resp.StatusCode, strings.TrimSpace(string(raw)))
	}
	return nil
}

func decodeRecord(resp *http.Response) (Record, error) {
	record := Record{}
	if err := json.NewDecoder(resp.Body).Decode(&record); err != nil {
		return nil, fmt.Errorf("не удалось разобрать запись: %w", err)
	}
	return record, nil
}

// parentID извлекает plan_id из записи. Числа приходят из JSON как float64,
// из кода — как int/int64; нулевое или отрицательное значение считается
// отсутствующим, чтобы «план 0» не превратился в адрес.
func parentID(record Record) (int64, bool) {
	value, ok := record[parentField]
	if !ok {
		return 0, false
	}
	var id int64
	switch v := value.(type) {
	case int64:
		id = v
	case int:
		id = int64(v)
	case float64:
		id = int64(v)
	case json.Number:
		parsed, err := v.Int64()
		if err != nil {
			return 0, false
		}
		id = parsed
	default:
		return 0, false
	}
	if id <= 0 {
		return 0, false
	}
	return id, true
}

// withoutParent возвращает копию записи без plan_id.
func withoutParent(record Record) Record {
	out := make(Record, len(record))
	for k, v := range record {
		if k != parentField {
			out[k] = v
		}
	}
	return out
}

// merge накладывает ответ сервера на исходный payload: поля, которые сервер
// не вернул (например, plan_id вне тела), сохраняются из payload.
func merge(payload, response Record) Record {
	out := make(Record, len(payload)+len(response))
	for k, v := range payload {
		out[k] = v
	}
	for k, v := range response {
		out[k] = v
	}
	return out
}

// totalFrom извлекает сигнал общего числа записей: заголовок X-Total-Count
// в виде <count> либо Content-Range в виде <range>/<count>.
func totalFrom(header http.Header) (int, bool) {
	if raw := header.Get("X-Total-Count"); raw != "" {
		if n, err := strconv.Atoi(strings.TrimSpace(raw)); err == nil {
			return n, true
		}
	}
	if raw := header.Get("Content-Range"); raw != "" {
		if idx := strings.LastIndex(raw, "/"); idx >= 0 {
			if n, err := strconv.Atoi(strings.TrimSpace(raw[idx+1:])); err == nil {
				return n, true
			}
		}
	}
	return 0, false
}
