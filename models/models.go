package models

import "github.com/jinzhu/gorm"

type User struct {
	gorm.Model
	Name     string
	Email    string `gorm:"unique"`
	Password string
	Links    []Link `gorm:"foreignkey:UserID"`
	Votes    []Vote `gorm:"foreignkey:UserID"`
}

type Link struct {
	gorm.Model
	Description string
	URL         string
	UserID      *uint // может быть nil для ссылок, созданных до появления владельцев
	Votes       []Vote `gorm:"foreignkey:LinkID"`
}

// Vote - отдельная запись-факт: голос пользователя за ссылку.
// Уникальность пары (UserID, LinkID) проверяется на уровне приложения (HasVote),
// а не уникальным индексом в БД
type Vote struct {
	gorm.Model
	LinkID uint
	UserID uint
}
