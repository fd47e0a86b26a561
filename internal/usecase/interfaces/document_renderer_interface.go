package interfaces

import (
	"context"

	"obra_presupuestos/internal/domain/document"
)

//go:generate mockgen -source=document_renderer_interface.go -destination=mocks/mock_document_renderer.go -package=mock_interfaces

// IDocumentRenderer turns printable content into a PDF.
type IDocumentRenderer interface {
	Render(ctx context.Context, doc document.Document) ([]byte, error)
}
