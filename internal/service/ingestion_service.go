package service

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"os"
	"sync"
	"time"

	"insurance-advisor-be/internal/entity"
	"insurance-advisor-be/internal/pkg/logger"
	"insurance-advisor-be/internal/repository/unitofwork"
	"insurance-advisor-be/pkg/embedding"
	"insurance-advisor-be/pkg/events"
	pktNats "insurance-advisor-be/pkg/nats"
	"insurance-advisor-be/pkg/normalizer"

	"github.com/google/uuid"
)

// ErrAllEmbeddingsFailed means no record of a non-empty load could be
// embedded; the existing catalog is left untouched.
var ErrAllEmbeddingsFailed = errors.New("all embeddings failed")

// IngestResult summarizes one catalog reload.
type IngestResult struct {
	Loaded   int // records read from the source
	Embedded int // records embedded and written
	Skipped  int // records dropped after an embedding failure
}

type IIngestionService interface {
	// ReloadFromCSV reads the scraped catalog export and replaces the
	// entire policy set.
	ReloadFromCSV(ctx context.Context, csvPath string) (*IngestResult, error)

	// ReloadRecords replaces the entire policy set from raw records.
	ReloadRecords(ctx context.Context, records []normalizer.RawPolicyRecord) (*IngestResult, error)
}

type ingestionService struct {
	uowFactory        unitofwork.RepositoryFactory
	embeddingProvider embedding.EmbeddingProvider
	eventPublisher    *pktNats.Publisher
	logger            logger.ILogger
	workers           int
	embedTimeout      time.Duration
}

func NewIngestionService(
	uowFactory unitofwork.RepositoryFactory,
	embeddingProvider embedding.EmbeddingProvider,
	eventPublisher *pktNats.Publisher,
	sysLogger logger.ILogger,
	workers int,
	embedTimeout time.Duration,
) IIngestionService {
	if workers < 1 {
		workers = 1
	}
	return &ingestionService{
		uowFactory:        uowFactory,
		embeddingProvider: embeddingProvider,
		eventPublisher:    eventPublisher,
		logger:            sysLogger,
		workers:           workers,
		embedTimeout:      embedTimeout,
	}
}

func (s *ingestionService) ReloadFromCSV(ctx context.Context, csvPath string) (*IngestResult, error) {
	records, err := s.readCSV(csvPath)
	if err != nil {
		return nil, err
	}
	return s.ReloadRecords(ctx, records)
}

// embeddedPolicy pairs a normalized policy with its embedding row. The
// slot stays nil when embedding failed and the record is skipped.
type embeddedPolicy struct {
	policy *entity.Policy
	embed  *entity.PolicyEmbedding
}

func (s *ingestionService) ReloadRecords(ctx context.Context, records []normalizer.RawPolicyRecord) (*IngestResult, error) {
	result := &IngestResult{Loaded: len(records)}

	// Batch normalization keeps ids unique when the scraper produced the
	// same category and plan number twice; a colliding row falls back to
	// its per-row token instead of aborting the bulk insert.
	policies := normalizer.NormalizeBatch(records)

	// Embedding is independent per record; a bounded pool keeps us within
	// the provider's throughput limits. Failures skip the record, never
	// the batch.
	slots := make([]embeddedPolicy, len(policies))
	jobs := make(chan int)
	var wg sync.WaitGroup

	for w := 0; w < s.workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range jobs {
				s.embedOne(ctx, policies[i], &slots[i])
			}
		}()
	}

	for i := range policies {
		// Interruptible at per-record granularity; nothing has been
		// written yet so the existing catalog stays intact.
		if err := ctx.Err(); err != nil {
			close(jobs)
			wg.Wait()
			return nil, err
		}
		jobs <- i
	}
	close(jobs)
	wg.Wait()

	kept := make([]embeddedPolicy, 0, len(slots))
	for _, slot := range slots {
		if slot.policy == nil || slot.embed == nil {
			result.Skipped++
			continue
		}
		kept = append(kept, slot)
	}
	result.Embedded = len(kept)

	// A provider outage skips every record; swapping in an empty catalog
	// would wipe the index over a transient failure, so keep the old one.
	if result.Embedded == 0 && result.Loaded > 0 {
		s.logger.Error("ingestion", "every embedding failed, keeping existing catalog", map[string]interface{}{
			"loaded": result.Loaded,
		})
		return nil, ErrAllEmbeddingsFailed
	}

	if err := s.replaceAll(ctx, kept); err != nil {
		return nil, err
	}

	s.logger.Info("ingestion", "catalog reloaded", map[string]interface{}{
		"loaded":   result.Loaded,
		"embedded": result.Embedded,
		"skipped":  result.Skipped,
	})

	if s.eventPublisher != nil {
		evt := events.NewCatalogReloaded(result.Loaded, result.Embedded, result.Skipped)
		if err := s.eventPublisher.Publish(ctx, evt); err != nil {
			s.logger.Warn("ingestion", "failed to publish reload event", map[string]interface{}{
				"error": err.Error(),
			})
		}
	}

	return result, nil
}

func (s *ingestionService) embedOne(ctx context.Context, policy *entity.Policy, slot *embeddedPolicy) {
	document := normalizer.BuildDocument(policy)

	embedCtx, cancel := context.WithTimeout(ctx, s.embedTimeout)
	defer cancel()

	res, err := s.embeddingProvider.Generate(embedCtx, document, embedding.TaskRetrievalDocument)
	if err != nil {
		s.logger.Warn("ingestion", "embedding failed, skipping record", map[string]interface{}{
			"policy_id": policy.Id,
			"error":     err.Error(),
		})
		return
	}

	now := time.Now()
	slot.policy = policy
	slot.embed = &entity.PolicyEmbedding{
		Id:             uuid.New(),
		PolicyId:       policy.Id,
		Document:       document,
		EmbeddingValue: res.Embedding.Values,
		CreatedAt:      now,
	}
}

// replaceAll swaps the whole catalog in one transaction so concurrent
// readers never observe a half-replaced index.
func (s *ingestionService) replaceAll(ctx context.Context, kept []embeddedPolicy) error {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	if err := uow.Begin(ctx); err != nil {
		return err
	}
	defer uow.Rollback()

	if err := uow.PolicyEmbeddingRepository().DeleteAll(ctx); err != nil {
		return err
	}
	if err := uow.PolicyRepository().DeleteAll(ctx); err != nil {
		return err
	}

	policies := make([]*entity.Policy, len(kept))
	embeds := make([]*entity.PolicyEmbedding, len(kept))
	for i, k := range kept {
		policies[i] = k.policy
		embeds[i] = k.embed
	}

	if err := uow.PolicyRepository().CreateBulk(ctx, policies); err != nil {
		return err
	}
	if err := uow.PolicyEmbeddingRepository().CreateBulk(ctx, embeds); err != nil {
		return err
	}

	return uow.Commit()
}

func (s *ingestionService) readCSV(csvPath string) ([]normalizer.RawPolicyRecord, error) {
	f, err := os.Open(csvPath)
	if err != nil {
		return nil, fmt.Errorf("open catalog csv: %w", err)
	}
	defer f.Close()

	reader := csv.NewReader(f)
	reader.FieldsPerRecord = -1

	rows, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("read catalog csv: %w", err)
	}
	if len(rows) < 1 {
		return nil, fmt.Errorf("catalog csv is empty")
	}

	header := map[string]int{}
	for i, name := range rows[0] {
		header[name] = i
	}
	field := func(row []string, name string) string {
		idx, ok := header[name]
		if !ok || idx >= len(row) {
			return ""
		}
		return row[idx]
	}

	records := make([]normalizer.RawPolicyRecord, 0, len(rows)-1)
	for i, row := range rows[1:] {
		records = append(records, normalizer.RawPolicyRecord{
			RowIndex:          i,
			PolicyName:        field(row, "policy_name"),
			Category:          field(row, "category"),
			Subcategory:       field(row, "subcategory"),
			PlanNumber:        field(row, "plan_number"),
			UinNumber:         field(row, "uin_number"),
			EligibilityAge:    field(row, "eligibility_age"),
			AgeLimit:          field(row, "age_limit"),
			IncomeRequirement: field(row, "income_requirement"),
			FeaturesBenefits:  field(row, "features_benefits"),
			MaturityBenefits:  field(row, "maturity_benefits"),
			TaxBenefits:       field(row, "tax_benefits"),
			TermsConditions:   field(row, "terms_conditions"),
			RidersAvailable:   field(row, "riders_available"),
			PremiumOptions:    field(row, "premium_options"),
			SurrenderClause:   field(row, "surrender_clause"),
			SourceURL:         field(row, "source_url"),
		})
	}

	return records, nil
}
