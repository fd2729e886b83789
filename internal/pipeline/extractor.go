package pipeline

import (
	"context"
	"fmt"

	"foliogate/internal/domain"
	"foliogate/internal/port"
)

// NewAPIExtractor returns an Extractor that posts files to the portfolio
// API's extraction endpoint with the caller's token.
func NewAPIExtractor(api port.PortfolioAPI, token string) Extractor {
	return ExtractorFunc(func(ctx context.Context, file domain.UploadedFile) (*domain.ExtractResult, error) {
		contentType, data, err := DecodeDataURL(file.DataURL)
		if err != nil {
			return nil, fmt.Errorf("%w: %s: %v", domain.ErrFileUnreadable, file.Name, err)
		}
		return api.ExtractTransactions(ctx, token, port.ExtractInput{
			FileName:    file.Name,
			ContentType: contentType,
			Data:        data,
		})
	})
}
