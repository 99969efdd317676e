package service

import (
	"context"
	"strings"

	"github.com/bwmarrin/snowflake"
	"github.com/uns-hr/shataku/internal/clock"
	"github.com/uns-hr/shataku/internal/factory/domain"
	pkgdb "github.com/uns-hr/shataku/pkg/db"
	"github.com/uns-hr/shataku/pkg/db/pagination"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type Service struct {
	db  *gorm.DB
	log *zap.Logger

	genID *snowflake.Node
	clock clock.Clock
	repo  domain.Repository
}

type ServiceParam struct {
	fx.In

	DB    *gorm.DB
	Log   *zap.Logger
	GenID *snowflake.Node
	Clock clock.Clock
	Repo  domain.Repository
}

func NewService(p ServiceParam) domain.Service {
	return &Service{
		db:  p.DB,
		log: p.Log.Named("factory.service"),

		genID: p.GenID,
		clock: p.Clock,
		repo:  p.Repo,
	}
}

func (s *Service) Create(ctx context.Context, req domain.CreateFactoryRequest) (domain.Factory, error) {
	code := strings.TrimSpace(req.FactoryCode)
	if code == "" {
		return domain.Factory{}, domain.ErrInvalidCode
	}
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return domain.Factory{}, domain.ErrInvalidName
	}

	now := s.clock.Now()
	factory := domain.Factory{
		ID:            s.genID.Generate(),
		FactoryCode:   code,
		Name:          name,
		NameJapanese:  strings.TrimSpace(req.NameJapanese),
		Address:       strings.TrimSpace(req.Address),
		City:          strings.TrimSpace(req.City),
		Prefecture:    strings.TrimSpace(req.Prefecture),
		PostalCode:    strings.TrimSpace(req.PostalCode),
		Phone:         strings.TrimSpace(req.Phone),
		ContactPerson: strings.TrimSpace(req.ContactPerson),
		ContactEmail:  strings.TrimSpace(req.ContactEmail),
		Notes:         req.Notes,
		IsActive:      true,
		CreatedAt:     now,
		UpdatedAt:     now,
	}

	if err := s.repo.Insert(ctx, s.db, &factory); err != nil {
		if pkgdb.IsDuplicateKeyErr(err) {
			return domain.Factory{}, domain.ErrDuplicateFactory
		}
		return domain.Factory{}, err
	}

	return factory, nil
}

func (s *Service) GetByID(ctx context.Context, id string) (domain.Factory, error) {
	factoryID, err := parseID(id)
	if err != nil {
		return domain.Factory{}, domain.ErrInvalidID
	}

	factory, err := s.repo.FindByID(ctx, s.db, factoryID)
	if err != nil {
		return domain.Factory{}, err
	}
	if factory == nil {
		return domain.Factory{}, domain.ErrNotFound
	}
	return *factory, nil
}

func (s *Service) List(ctx context.Context, req domain.ListFactoryRequest) (domain.ListFactoryResponse, error) {
	filter := domain.ListFactoryFilter{
		Search:   strings.TrimSpace(req.Search),
		City:     strings.TrimSpace(req.City),
		IsActive: req.IsActive,
	}

	factories, total, err := s.repo.List(ctx, s.db, filter, req.Pagination)
	if err != nil {
		return domain.ListFactoryResponse{}, err
	}

	return domain.ListFactoryResponse{
		PageInfo:  pagination.BuildPageInfo(total, req.Pagination),
		Factories: factories,
	}, nil
}

func (s *Service) Update(ctx context.Context, req domain.UpdateFactoryRequest) (domain.Factory, error) {
	factoryID, err := parseID(req.ID)
	if err != nil {
		return domain.Factory{}, domain.ErrInvalidID
	}

	factory, err := s.repo.FindByID(ctx, s.db, factoryID)
	if err != nil {
		return domain.Factory{}, err
	}
	if factory == nil {
		return domain.Factory{}, domain.ErrNotFound
	}

	applyString(&factory.Name, req.Name)
	applyString(&factory.NameJapanese, req.NameJapanese)
	applyString(&factory.Address, req.Address)
	applyString(&factory.City, req.City)
	applyString(&factory.Prefecture, req.Prefecture)
	applyString(&factory.PostalCode, req.PostalCode)
	applyString(&factory.Phone, req.Phone)
	applyString(&factory.ContactPerson, req.ContactPerson)
	applyString(&factory.ContactEmail, req.ContactEmail)
	applyString(&factory.Notes, req.Notes)
	if req.IsActive != nil {
		factory.IsActive = *req.IsActive
	}
	factory.UpdatedAt = s.clock.Now()

	if err := s.repo.Save(ctx, s.db, factory); err != nil {
		return domain.Factory{}, err
	}
	return *factory, nil
}

func (s *Service) Stats(ctx context.Context) (domain.FactoryStats, error) {
	var stats domain.FactoryStats
	err := s.db.WithContext(ctx).Raw(
		`SELECT COUNT(*) AS total,
		        COALESCE(SUM(CASE WHEN is_active THEN 1 ELSE 0 END), 0) AS active,
		        COALESCE(SUM(CASE WHEN is_active THEN 0 ELSE 1 END), 0) AS inactive
		 FROM factories`,
	).Scan(&stats).Error
	if err != nil {
		return domain.FactoryStats{}, err
	}
	return stats, nil
}

func applyString(dst *string, src *string) {
	if src != nil {
		*dst = strings.TrimSpace(*src)
	}
}

func parseID(value string) (snowflake.ID, error) {
	return snowflake.ParseString(strings.TrimSpace(value))
}
