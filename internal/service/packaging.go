package service

import (
	"fmt"

	"github.com/vortex/wordcore/internal/packaging"
)

// PackagingService defines the stateless document packaging operations: the
// open/roundtrip/validate operations that don't need a live editing session.
type PackagingService interface {
	// Open parses a .docx from raw bytes and returns its structural summary.
	Open(data []byte) (*packaging.Summary, error)

	// RoundTrip opens a .docx, then immediately exports it back, returning
	// the re-packaged bytes. This is the primary packaging test: if the
	// output is a valid .docx openable by Word, packaging is correct.
	RoundTrip(data []byte) ([]byte, error)

	// Validate opens a .docx, exports it, and returns both its summary and
	// a comparison of original size vs output size.
	Validate(data []byte) (*ValidationResult, error)
}

// ValidationResult holds the result of a validate operation.
type ValidationResult struct {
	Info         *packaging.Summary `json:"info"`
	OriginalSize int                `json:"original_size_bytes"`
	OutputSize   int                `json:"output_size_bytes"`
	Success      bool               `json:"success"`
}

// packagingService is the concrete implementation of PackagingService.
type packagingService struct{}

// NewPackagingService creates a new PackagingService instance.
func NewPackagingService() PackagingService {
	return &packagingService{}
}

func (s *packagingService) Open(data []byte) (*packaging.Summary, error) {
	doc, err := packaging.Open(data)
	if err != nil {
		return nil, fmt.Errorf("service: open document: %w", err)
	}
	summary := packaging.Summarize(doc)
	return &summary, nil
}

func (s *packagingService) RoundTrip(data []byte) ([]byte, error) {
	doc, err := packaging.Open(data)
	if err != nil {
		return nil, fmt.Errorf("service: open document: %w", err)
	}
	out, err := packaging.Export(doc)
	if err != nil {
		return nil, fmt.Errorf("service: export document: %w", err)
	}
	return out, nil
}

func (s *packagingService) Validate(data []byte) (*ValidationResult, error) {
	info, err := s.Open(data)
	if err != nil {
		return nil, err
	}

	output, err := s.RoundTrip(data)
	if err != nil {
		return nil, err
	}

	// Verify the output can be re-opened (double round-trip).
	if _, err := packaging.Open(output); err != nil {
		return &ValidationResult{
			Info:         info,
			OriginalSize: len(data),
			OutputSize:   len(output),
			Success:      false,
		}, fmt.Errorf("service: re-open after export failed: %w", err)
	}

	return &ValidationResult{
		Info:         info,
		OriginalSize: len(data),
		OutputSize:   len(output),
		Success:      true,
	}, nil
}
