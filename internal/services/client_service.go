package services

import (
	"context"
	"strings"

	"probuild/internal/apperr"
	"probuild/internal/models"
	"probuild/internal/repositories"
)

// UnknownClient is shown wherever a referenced client cannot be resolved.
const UnknownClient = "Unknown"

type ClientService struct {
	Repo repositories.ClientRepository
}

func NewClientService(repo repositories.ClientRepository) *ClientService {
	return &ClientService{Repo: repo}
}

func validateClient(c *models.Client) error {
	c.Name = strings.TrimSpace(c.Name)
	c.Email = strings.TrimSpace(c.Email)
	if c.Name == "" {
		return apperr.Invalid("name", "is required")
	}
	if c.Email != "" && !strings.Contains(c.Email, "@") {
		return apperr.Invalid("email", "is not a valid address")
	}
	return nil
}

func (s *ClientService) Create(ctx context.Context, c *models.Client) error {
	if err := validateClient(c); err != nil {
		return err
	}
	return s.Repo.Create(ctx, c)
}

func (s *ClientService) Update(ctx context.Context, c *models.Client) error {
	if err := validateClient(c); err != nil {
		return err
	}
	return notFound(s.Repo.Update(ctx, c), "client", c.ID)
}

func (s *ClientService) GetByID(ctx context.Context, id int64) (*models.Client, error) {
	c, err := s.Repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if c == nil {
		return nil, apperr.NotFound("client", id)
	}
	return c, nil
}

func (s *ClientService) List(ctx context.Context, search string, limit, offset int) ([]*models.Client, error) {
	return s.Repo.List(ctx, search, limit, offset)
}

func (s *ClientService) Delete(ctx context.Context, id int64) error {
	return notFound(s.Repo.Delete(ctx, id), "client", id)
}

// loadClients resolves the referenced clients in one query.
func loadClients(ctx context.Context, repo repositories.ClientRepository, refs []*int64) (map[int64]*models.Client, error) {
	var want []int64
	seen := map[int64]bool{}
	for _, id := range refs {
		if id != nil && !seen[*id] {
			seen[*id] = true
			want = append(want, *id)
		}
	}
	if len(want) == 0 {
		return map[int64]*models.Client{}, nil
	}
	return repo.GetMany(ctx, want)
}

func displayName(clients map[int64]*models.Client, id *int64) string {
	if id == nil {
		return UnknownClient
	}
	if c, ok := clients[*id]; ok && c != nil {
		return c.Name
	}
	return UnknownClient
}
