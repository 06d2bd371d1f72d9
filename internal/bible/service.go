package bible

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/dvega-dev/bibliago/internal/cache"
	"github.com/dvega-dev/bibliago/internal/domain"
	"github.com/dvega-dev/bibliago/internal/utils"
)

// Ensure Service implements domain.TextService
var _ domain.TextService = (*Service)(nil)

// versionAliases maps catalog identifiers to the identifiers the text
// service expects on the wire.
var versionAliases = map[string]string{
	"RVR1960": "RV1960",
}

// Service is the client for the remote chapter-text service
type Service struct {
	baseURL string
	fetcher domain.Fetcher
	logger  *utils.Logger
}

// NewService creates a text service client
func NewService(baseURL string, fetcher domain.Fetcher, logger *utils.Logger) *Service {
	return &Service{
		baseURL: baseURL,
		fetcher: fetcher,
		logger:  logger.WithComponent("bible"),
	}
}

// chapterEnvelope is the response shape of the text service. The decode is
// strict: any deviation from this shape fails closed to an empty chapter.
type chapterEnvelope struct {
	Chapter []struct {
		Data []domain.VerseRecord `json:"data"`
	} `json:"chapter"`
}

// GetChapter fetches one chapter. A non-2xx response or unreadable body is
// a *domain.FetchError; a well-formed response with a missing or empty
// verse array is a valid empty chapter.
func (s *Service) GetChapter(ctx context.Context, version, book string, chapter int) (domain.Chapter, error) {
	url := s.chapterURL(version, book, chapter)

	resp, err := s.fetcher.Get(ctx, url)
	if err != nil {
		return nil, err
	}

	var envelope chapterEnvelope
	if err := json.Unmarshal(resp.Body, &envelope); err != nil {
		return nil, domain.NewFetchError(url, resp.StatusCode, fmt.Errorf("malformed response body: %w", err))
	}

	if len(envelope.Chapter) == 0 || envelope.Chapter[0].Data == nil {
		s.logger.Warn().
			Str("url", url).
			Msg("Response envelope missing verse data, treating as empty chapter")
		return domain.Chapter{}, nil
	}

	return domain.Chapter(envelope.Chapter[0].Data), nil
}

// chapterURL builds the request URL. The book slug is the display name
// lower-cased with spaces removed.
func (s *Service) chapterURL(version, book string, chapter int) string {
	slug := cache.NormalizeBook(book)
	if alias, ok := versionAliases[version]; ok {
		version = alias
	}
	return fmt.Sprintf("%s/api/bible/%s/%d?version=%s", s.baseURL, slug, chapter, version)
}
