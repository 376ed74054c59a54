package usecase

import (
	"github.com/hrops-lab/exitclear/pkg/domain/interfaces"
)

type UseCases struct {
	repo interfaces.Repository

	Catalog   *CatalogUseCase
	Case      *CaseUseCase
	Checklist *ChecklistUseCase
	Status    *StatusUseCase
	Auth      AuthUseCaseInterface
}

type Option func(*UseCases)

func WithAuth(auth AuthUseCaseInterface) Option {
	return func(uc *UseCases) {
		uc.Auth = auth
	}
}

func New(repo interfaces.Repository, opts ...Option) *UseCases {
	uc := &UseCases{
		repo: repo,
	}

	for _, opt := range opts {
		opt(uc)
	}

	uc.Catalog = NewCatalogUseCase(repo)
	uc.Status = NewStatusUseCase(repo)
	uc.Case = NewCaseUseCase(repo, uc.Status)
	uc.Checklist = NewChecklistUseCase(repo, uc.Status)

	return uc
}
