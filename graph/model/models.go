package model

import (
	"fmt"
	"io"
	"strconv"
)

// Модели GraphQL-уровня. Привязаны к схеме через gqlgen.yml.
// Хэш пароля сюда никогда не попадает.

type Link struct {
	ID          string
	CreatedAt   string
	Description string
	URL         string
	PostedByID  *string // nil для ссылок без владельца
}

type User struct {
	ID    string
	Name  string
	Email string
}

type Vote struct {
	ID     string
	LinkID string
	UserID string
}

type AuthPayload struct {
	Token *string
	User  *User
}

type Feed struct {
	Links []*Link
	Count int
}

type LinkOrderByInput struct {
	Description *Sort
	URL         *Sort
	CreatedAt   *Sort
}

type Sort string

const (
	SortAsc  Sort = "asc"
	SortDesc Sort = "desc"
)

var AllSort = []Sort{
	SortAsc,
	SortDesc,
}

func (e Sort) IsValid() bool {
	switch e {
	case SortAsc, SortDesc:
		return true
	}
	return false
}

func (e Sort) String() string {
	return string(e)
}

func (e *Sort) UnmarshalGQL(v interface{}) error {
	str, ok := v.(string)
	if !ok {
		return fmt.Errorf("enums must be strings")
	}

	*e = Sort(str)
	if !e.IsValid() {
		return fmt.Errorf("%s is not a valid Sort", str)
	}
	return nil
}

func (e Sort) MarshalGQL(w io.Writer) {
	fmt.Fprint(w, strconv.Quote(e.String()))
}
