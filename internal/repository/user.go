package repository

import (
	"context"

	"github.com/jaekwang-park/todo-chat-api/internal/model"
)

type UserRepository interface {
	GetOrCreate(ctx context.Context, id, email string) (model.User, error)
	GetByID(ctx context.Context, id string) (model.User, error)
}
