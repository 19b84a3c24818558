// Package lookup is the query resolution engine: it turns a classified chat
// message into a formatted stock answer using the cached dataset.
package lookup

import (
	"context"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/ladenbot/laden/internal/domain/models"
	"github.com/ladenbot/laden/internal/repository/mongodb"
	"github.com/ladenbot/laden/internal/service/intent"
	"github.com/ladenbot/laden/internal/service/lexicon"
	"github.com/ladenbot/laden/internal/service/session"
	"github.com/ladenbot/laden/pkg/clients/fonnte"
)

// Resolver describes what the HTTP layer needs from the pipeline.
type Resolver interface {
	HandleInbound(ctx context.Context, payload models.WebhookPayload) error
}

// Options tune the search behavior.
type Options struct {
	PageSize       int
	FuzzyThreshold float64
}

// Service orchestrates the pipeline: classify, normalize, match, aggregate,
// paginate, format, deliver.
type Service struct {
	cache      *Cache
	sessions   *session.Store
	classifier *intent.Classifier
	deliverer  fonnte.Client
	audit      mongodb.Repository
	logger     *zap.Logger
	opts       Options
	now        func() time.Time
}

// NewService wires the pipeline. audit may be nil; query logging is then
// skipped entirely.
func NewService(cache *Cache, sessions *session.Store, deliverer fonnte.Client, audit mongodb.Repository, opts Options, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{
		cache:      cache,
		sessions:   sessions,
		classifier: intent.NewClassifier(sessions),
		deliverer:  deliverer,
		audit:      audit,
		logger:     logger,
		opts:       opts,
		now:        time.Now,
	}
}

// HandleInbound resolves one webhook payload and delivers the answer.
// Messages classified as noise produce no outbound message at all.
func (s *Service) HandleInbound(ctx context.Context, payload models.WebhookPayload) error {
	text := payload.Text()
	recipient := payload.ReplyTo()
	if text == "" || recipient == "" {
		return nil
	}

	reply, ok := s.Resolve(ctx, text, recipient)
	if !ok {
		return nil
	}

	sendCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	if err := s.deliverer.Send(sendCtx, recipient, reply); err != nil {
		s.logger.Error("failed to deliver reply", zap.Error(err), zap.String("recipient", recipient))
		return err
	}
	return nil
}

// Resolve classifies the message and produces the reply text. The second
// return is false when the message should be answered with silence.
func (s *Service) Resolve(ctx context.Context, text, sender string) (string, bool) {
	classified := s.classifier.Classify(text, sender)

	switch classified.Kind {
	case intent.KindIntroduction:
		return FormatIntro(), true

	case intent.KindPagination:
		sess, ok := s.sessions.Get(sender)
		if !ok {
			return "", false
		}
		return s.lookup(ctx, sender, text, sess.LastKeyword, sess.Page+1), true

	case intent.KindLookup:
		if len(classified.Batch) > 0 {
			return s.lookupBatch(ctx, sender, text, classified.Batch), true
		}
		return s.lookup(ctx, sender, text, classified.Keyword, 0), true

	default:
		return "", false
	}
}

// lookup runs the full pipeline for one keyword and page. Pagination re-runs
// the pipeline from the stored keyword rather than caching results, so it
// stays correct across a dataset refresh.
func (s *Service) lookup(ctx context.Context, sender, raw, keyword string, page int) string {
	// A fresh search always overwrites the sender's session, found or not,
	// so a later "lagi" never pages a previous keyword.
	if page == 0 {
		s.sessions.Put(sender, keyword, 0)
	}

	phrase := lexicon.Normalize(keyword)
	if phrase == "" {
		return FormatNotFound(keyword)
	}

	records := s.cache.Records(ctx)
	if len(records) == 0 {
		return FormatUnavailable()
	}

	result := Match(records, phrase, s.opts.FuzzyThreshold)
	if len(result.Records) == 0 {
		s.recordQuery(ctx, sender, raw, phrase, 0, page, "")
		return FormatNotFound(keyword)
	}

	groups := Aggregate(result.Records)
	pageGroups, totalPages, lastPage := Paginate(groups, page, s.opts.PageSize)
	if lastPage {
		return FormatLastPage(phrase)
	}

	if page > 0 {
		s.sessions.Put(sender, keyword, page)
	}
	s.recordQuery(ctx, sender, raw, phrase, len(groups), page, result.Suggestion)

	return FormatResult(ResultView{
		Keyword:     phrase,
		Suggestion:  result.Suggestion,
		Groups:      pageGroups,
		TotalGroups: len(groups),
		Page:        page,
		TotalPages:  totalPages,
		LastUpdate:  freshnessLabel(result.Records),
	})
}

// lookupBatch answers a multi-item request with one compact block per
// phrase. Batch answers are never paginated and leave sessions untouched.
func (s *Service) lookupBatch(ctx context.Context, sender, raw string, phrases []string) string {
	records := s.cache.Records(ctx)
	if len(records) == 0 {
		return FormatUnavailable()
	}

	items := make([]BatchItem, 0, len(phrases))
	total := 0
	for _, phrase := range phrases {
		result := Match(records, phrase, s.opts.FuzzyThreshold)
		groups := Aggregate(result.Records)
		total += len(groups)
		items = append(items, BatchItem{Phrase: phrase, Groups: groups})
	}

	s.recordQuery(ctx, sender, raw, strings.Join(phrases, "; "), total, 0, "")
	return FormatBatch(items)
}

// recordQuery writes the audit entry. Best effort: failures are logged at
// debug and never affect the reply.
func (s *Service) recordQuery(ctx context.Context, sender, raw, keyword string, matches, page int, suggested string) {
	if s.audit == nil {
		return
	}

	logCtx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	entry := models.QueryLog{
		Sender:     sender,
		RawMessage: raw,
		Keyword:    keyword,
		Matches:    matches,
		Page:       page,
		Suggested:  suggested,
		CreatedAt:  s.now().UTC(),
	}
	if err := s.audit.SaveQueryLog(logCtx, entry); err != nil {
		s.logger.Debug("query audit write failed", zap.Error(err))
	}
}
