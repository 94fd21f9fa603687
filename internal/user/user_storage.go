package user

import (
	"github.com/VitaminP8/linkery/graph/model"
)

type UserStorage interface {
	RegisterUser(name, email, password string) (*model.User, error)
	LoginUser(email, password string) (*model.User, string, error) // user + JWT
	GetUserByID(id string) (*model.User, error)
}
