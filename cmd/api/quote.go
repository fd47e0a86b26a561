package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"obra_presupuestos/internal/adapter/http/dto/request"
	"obra_presupuestos/internal/config"
	"obra_presupuestos/internal/domain/document"
	"obra_presupuestos/internal/domain/entities"
	"obra_presupuestos/internal/domain/pricing"
	"obra_presupuestos/internal/usecase"

	"go.uber.org/zap"
)

var errReadOnlyCatalog = errors.New("catalog is read-only")

type quoteFile struct {
	Catalog []entities.Service    `json:"catalog"`
	Budget  request.BudgetRequest `json:"budget"`
}

// runQuote prices the budget in r against the catalog in r and writes the
// subject and email text, or the full preview when asJSON is set.
func runQuote(ctx context.Context, cfg *config.Config, r io.Reader, w io.Writer, asJSON bool) error {
	var in quoteFile
	if err := json.NewDecoder(r).Decode(&in); err != nil {
		return fmt.Errorf("decode quote file: %w", err)
	}

	uc := usecase.NewBudgetUseCase(usecase.BudgetDependencies{
		Services:     catalogRepository{catalog: pricing.NewCatalog(in.Catalog), services: in.Catalog},
		Engine:       pricing.NewEngine(cfg.PricingConfig()),
		Builder:      document.NewBuilder(cfg.DocumentSettings()),
		NumberOffset: cfg.Numbering.BudgetOffset,
		Logger:       zap.NewNop(),
	})

	preview, err := uc.Preview(ctx, in.Budget.ToCommand())
	if err != nil {
		return err
	}

	if asJSON {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(preview)
	}
	_, err = fmt.Fprintf(w, "%s\n\n%s\n", preview.Content.Subject, preview.Content.EmailText)
	return err
}

// catalogRepository serves services from a fixed list.
type catalogRepository struct {
	catalog  pricing.Catalog
	services []entities.Service
}

func (c catalogRepository) GetByID(_ context.Context, id string) (entities.Service, error) {
	s, _ := c.catalog.Lookup(id)
	return s, nil
}

func (c catalogRepository) GetByIDs(_ context.Context, ids []string) ([]entities.Service, error) {
	out := make([]entities.Service, 0, len(ids))
	for _, id := range ids {
		if s, ok := c.catalog.Lookup(id); ok {
			out = append(out, s)
		}
	}
	return out, nil
}

func (c catalogRepository) List(context.Context) ([]entities.Service, error) {
	return c.services, nil
}

func (catalogRepository) Create(context.Context, entities.Service) (entities.Service, error) {
	return entities.Service{}, errReadOnlyCatalog
}

func (catalogRepository) Update(context.Context, entities.Service) (entities.Service, error) {
	return entities.Service{}, errReadOnlyCatalog
}

func (catalogRepository) Delete(context.Context, string) (bool, error) {
	return false, errReadOnlyCatalog
}
