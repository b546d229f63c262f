package model

import "errors"

// ErrInvalidEntityType возвращается при попытке записать пункт маршрута с
// тегом, не относящимся ни к одной из таблиц каталога.
var ErrInvalidEntityType = errors.New("недопустимый тип сущности")
