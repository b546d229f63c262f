package repository

import "database/sql"

// ListOptions описывает параметры выборки списка: сортировку, полуоткрытый
// диапазон записей [Start, End) и дополнительные фильтры по полям.
type ListOptions struct {
	SortField string
	SortOrder string // "ASC" или "DESC"
	Start     int
	End       int // 0 означает отсутствие ограничения диапазона
	Filters   map[string]string
}

// Limited сообщает, задан ли диапазон записей.
func (o ListOptions) Limited() bool {
	return o.End > o.Start
}

// requireAffected превращает запрос, не затронувший ни одной строки,
// в sql.ErrNoRows — обработчики отдают это как 404.
func requireAffected(res sql.Result) error {
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return sql.ErrNoRows
	}
	return nil
}
