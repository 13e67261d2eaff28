package service

import (
	"context"
	"errors"
	"strings"

	"nyaya-backend/aiclient"
	"nyaya-backend/logger"
	"nyaya-backend/models"
	"nyaya-backend/repository"
	"nyaya-backend/search"
)

// SectionStore is the read-only statute store used by LawService
type SectionStore interface {
	FindCandidates(ctx context.Context, cq search.CandidateQuery) ([]models.LegalSection, error)
	ListActs(ctx context.Context) ([]string, error)
	ListByAct(ctx context.Context, act string) ([]models.LegalSection, error)
	GetByID(ctx context.Context, id string) (*models.LegalSection, error)
}

// SemanticSearcher is the external semantic-search collaborator
type SemanticSearcher interface {
	SearchSections(ctx context.Context, req aiclient.SearchSectionsRequest) (*aiclient.SearchSectionsResponse, error)
}

// Source tags where a search response came from
type Source string

const (
	SourceSQL      Source = "sql"
	SourceSemantic Source = "semantic"
)

// MaxSemanticResults caps the fallback result set
const MaxSemanticResults = aiclient.DefaultTopK

var (
	ErrSectionNotFound = errors.New("section not found")
	ErrQueryRequired   = errors.New("query is required")
	ErrInvalidTopK     = errors.New("top_k must be between 1 and 50")
	ErrStoreNotSet     = errors.New("section store not set")
	ErrSemanticNotSet  = errors.New("semantic searcher not set")
)

// LawService implements statute search and browsing
type LawService struct {
	store    SectionStore
	semantic SemanticSearcher
	log      *logger.Logger
}

// LawServiceOption is a functional option for LawService
type LawServiceOption func(*LawService)

// WithSectionStore sets the statute store
func WithSectionStore(store SectionStore) LawServiceOption {
	return func(s *LawService) {
		s.store = store
	}
}

// WithSemanticSearcher sets the semantic-search collaborator. Without one the
// fallback is skipped.
func WithSemanticSearcher(semantic SemanticSearcher) LawServiceOption {
	return func(s *LawService) {
		s.semantic = semantic
	}
}

// WithLogger sets the service logger
func WithLogger(l *logger.Logger) LawServiceOption {
	return func(s *LawService) {
		if l != nil {
			s.log = l
		}
	}
}

// NewLawService creates a new law service
func NewLawService(opts ...LawServiceOption) *LawService {
	s := &LawService{log: logger.Named("law_service")}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// SearchResult is the outcome of one search. Exactly one of Ranked or
// SemanticHits is populated, according to Source.
type SearchResult struct {
	Source       Source
	Query        search.Query
	Ranked       []models.ScoredCandidate
	SemanticHits []aiclient.SectionHit
}

// Count is the number of results returned to the caller
func (r *SearchResult) Count() int {
	if r.Source == SourceSemantic {
		return len(r.SemanticHits)
	}
	return len(r.Ranked)
}

// Sections returns the ranked sections without scores
func (r *SearchResult) Sections() []models.LegalSection {
	out := make([]models.LegalSection, len(r.Ranked))
	for i, c := range r.Ranked {
		out[i] = c.Section
	}
	return out
}

func (s *LawService) logFor(ctx context.Context) *logger.Logger {
	id := logger.RequestID(ctx)
	if id == "" {
		return s.log
	}
	l := s.log.With().Str("request_id", id).Logger()
	return &l
}

// Search runs Normalize, Fetch, Score and, when nothing ranks for a
// non-empty query, the semantic fallback. Only store failures are returned
// as errors.
func (s *LawService) Search(ctx context.Context, f search.Filters) (*SearchResult, error) {
	if s.store == nil {
		return nil, ErrStoreNotSet
	}

	q := search.Normalize(f.Query)
	cq := search.BuildCandidateQuery(f, q)

	rows, err := s.store.FindCandidates(ctx, cq)
	if err != nil {
		return nil, err
	}

	result := &SearchResult{
		Source: SourceSQL,
		Query:  q,
		Ranked: search.Rank(rows, q),
	}

	s.logFor(ctx).Debug().
		Str("query", q.Lower).
		Int("candidates", len(rows)).
		Int("ranked", len(result.Ranked)).
		Msg("law search scored")

	if len(result.Ranked) > 0 || q.Empty() {
		return result, nil
	}

	hits, err := s.fallback(ctx, q.Raw)
	if err != nil {
		s.logFor(ctx).Warn().
			Err(err).
			Str("kind", string(aiclient.KindOf(err))).
			Str("query", q.Lower).
			Msg("semantic fallback failed, returning sql results")
		return result, nil
	}

	result.Source = SourceSemantic
	result.SemanticHits = hits
	return result, nil
}

// fallback asks the semantic collaborator once, with no retries
func (s *LawService) fallback(ctx context.Context, raw string) ([]aiclient.SectionHit, error) {
	if s.semantic == nil {
		return nil, ErrSemanticNotSet
	}
	resp, err := s.semantic.SearchSections(ctx, aiclient.SearchSectionsRequest{
		QueryText: strings.TrimSpace(raw),
		TopK:      MaxSemanticResults,
	})
	if err != nil {
		return nil, err
	}
	hits := resp.Results
	if hits == nil {
		hits = make([]aiclient.SectionHit, 0)
	}
	if len(hits) > MaxSemanticResults {
		hits = hits[:MaxSemanticResults]
	}
	return hits, nil
}

// SemanticSearchRequest is a direct semantic search
type SemanticSearchRequest struct {
	Query    string
	State    string
	Language string
	TopK     *int
}

// SemanticSearch forwards a query to the semantic collaborator as-is
func (s *LawService) SemanticSearch(ctx context.Context, req SemanticSearchRequest) (*aiclient.SearchSectionsResponse, error) {
	query := strings.TrimSpace(req.Query)
	if query == "" {
		return nil, ErrQueryRequired
	}
	topK := aiclient.DefaultTopK
	if req.TopK != nil {
		if *req.TopK < 1 || *req.TopK > 50 {
			return nil, ErrInvalidTopK
		}
		topK = *req.TopK
	}
	if s.semantic == nil {
		return nil, ErrSemanticNotSet
	}

	return s.semantic.SearchSections(ctx, aiclient.SearchSectionsRequest{
		QueryText:    query,
		UserState:    strings.TrimSpace(req.State),
		UserLanguage: strings.TrimSpace(req.Language),
		TopK:         topK,
	})
}

// ListActs returns the distinct act names
func (s *LawService) ListActs(ctx context.Context) ([]string, error) {
	if s.store == nil {
		return nil, ErrStoreNotSet
	}
	return s.store.ListActs(ctx)
}

// GetActSections returns the sections of one act
func (s *LawService) GetActSections(ctx context.Context, act string) ([]models.LegalSection, error) {
	if s.store == nil {
		return nil, ErrStoreNotSet
	}
	return s.store.ListByAct(ctx, act)
}

// GetSection returns one section by id
func (s *LawService) GetSection(ctx context.Context, id string) (*models.LegalSection, error) {
	if s.store == nil {
		return nil, ErrStoreNotSet
	}
	section, err := s.store.GetByID(ctx, id)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, ErrSectionNotFound
	}
	if err != nil {
		return nil, err
	}
	return section, nil
}
