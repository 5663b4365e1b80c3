package directory

import (
	"context"

	directoryerrors "karma-manager/internal/directory/errors"
	"karma-manager/internal/tenant"

	"gorm.io/gorm"
)

//go:generate mockgen -source=directory_repo.go -destination=mock/directory_repo_mock.go -package=mock
type Repository interface {
	FindByIDAndCompany(ctx context.Context, companyID, kind, id string) (*Person, error)
	FindAllByCompany(ctx context.Context, companyID, kind string) ([]Person, error)
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) FindByIDAndCompany(ctx context.Context, companyID, kind, id string) (*Person, error) {
	switch kind {
	case KindStaff:
		var e Employee
		if err := r.db.WithContext(ctx).
			Scopes(tenant.Scope(companyID)).
			First(&e, "id = ?", id).Error; err != nil {
			return nil, err
		}
		p := e.toPerson()
		return &p, nil
	case KindStudent:
		var s Student
		if err := r.db.WithContext(ctx).
			Scopes(tenant.Scope(companyID)).
			First(&s, "id = ?", id).Error; err != nil {
			return nil, err
		}
		p := s.toPerson()
		return &p, nil
	default:
		return nil, directoryerrors.ErrInvalidKind
	}
}

func (r *repository) FindAllByCompany(ctx context.Context, companyID, kind string) ([]Person, error) {
	switch kind {
	case KindStaff:
		var rows []Employee
		if err := r.db.WithContext(ctx).
			Scopes(tenant.Scope(companyID)).
			Order("full_name ASC").
			Find(&rows).Error; err != nil {
			return nil, err
		}
		people := make([]Person, len(rows))
		for i, e := range rows {
			people[i] = e.toPerson()
		}
		return people, nil
	case KindStudent:
		var rows []Student
		if err := r.db.WithContext(ctx).
			Scopes(tenant.Scope(companyID)).
			Order("full_name ASC").
			Find(&rows).Error; err != nil {
			return nil, err
		}
		people := make([]Person, len(rows))
		for i, s := range rows {
			people[i] = s.toPerson()
		}
		return people, nil
	default:
		return nil, directoryerrors.ErrInvalidKind
	}
}
