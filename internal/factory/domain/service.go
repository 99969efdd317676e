package domain

import (
	"context"
	"errors"

	"github.com/uns-hr/shataku/pkg/db/pagination"
)

var (
	ErrInvalidID        = errors.New("invalid_id")
	ErrInvalidCode      = errors.New("invalid_factory_code")
	ErrInvalidName      = errors.New("invalid_name")
	ErrNotFound         = errors.New("factory_not_found")
	ErrDuplicateFactory = errors.New("duplicate_factory_code")
)

type CreateFactoryRequest struct {
	FactoryCode   string
	Name          string
	NameJapanese  string
	Address       string
	City          string
	Prefecture    string
	PostalCode    string
	Phone         string
	ContactPerson string
	ContactEmail  string
	Notes         string
}

type UpdateFactoryRequest struct {
	ID            string
	Name          *string
	NameJapanese  *string
	Address       *string
	City          *string
	Prefecture    *string
	PostalCode    *string
	Phone         *string
	ContactPerson *string
	ContactEmail  *string
	Notes         *string
	IsActive      *bool
}

type ListFactoryRequest struct {
	pagination.Pagination
	Search   string
	City     string
	IsActive *bool
}

type ListFactoryResponse struct {
	pagination.PageInfo
	Factories []*Factory `json:"factories"`
}

type FactoryStats struct {
	Total    int64 `json:"total"`
	Active   int64 `json:"active"`
	Inactive int64 `json:"inactive"`
}

type Service interface {
	Create(ctx context.Context, req CreateFactoryRequest) (Factory, error)
	GetByID(ctx context.Context, id string) (Factory, error)
	List(ctx context.Context, req ListFactoryRequest) (ListFactoryResponse, error)
	Update(ctx context.Context, req UpdateFactoryRequest) (Factory, error)
	Stats(ctx context.Context) (FactoryStats, error)
}
