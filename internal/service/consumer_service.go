package service

import (
	"context"
	"encoding/json"
	"log"
	"time"

	"insurance-advisor-be/internal/dto"
	"insurance-advisor-be/internal/entity"
	"insurance-advisor-be/internal/repository/specification"
	"insurance-advisor-be/internal/repository/unitofwork"
	"insurance-advisor-be/pkg/embedding"
	"insurance-advisor-be/pkg/normalizer"

	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/google/uuid"
)

// IConsumerService drains the re-embed queue: every message names one
// policy whose document must be rebuilt and re-embedded.
type IConsumerService interface {
	Consume(ctx context.Context) error
}

type consumerService struct {
	pubSub            *gochannel.GoChannel
	topicName         string
	uowFactory        unitofwork.RepositoryFactory
	embeddingProvider embedding.EmbeddingProvider
	embedTimeout      time.Duration
}

func NewConsumerService(
	pubSub *gochannel.GoChannel,
	topicName string,
	uowFactory unitofwork.RepositoryFactory,
	embeddingProvider embedding.EmbeddingProvider,
	embedTimeout time.Duration,
) IConsumerService {
	return &consumerService{
		pubSub:            pubSub,
		topicName:         topicName,
		uowFactory:        uowFactory,
		embeddingProvider: embeddingProvider,
		embedTimeout:      embedTimeout,
	}
}

func (cs *consumerService) Consume(ctx context.Context) error {
	messages, err := cs.pubSub.Subscribe(ctx, cs.topicName)
	if err != nil {
		return err
	}

	go func() {
		for msg := range messages {
			cs.processMessage(ctx, msg)
		}
	}()

	return nil
}

func (cs *consumerService) processMessage(ctx context.Context, msg *message.Message) {
	var payload dto.PublishEmbedPolicyMessage
	err := json.Unmarshal(msg.Payload, &payload)
	if err != nil {
		log.Printf("[ERROR] Failed to unmarshal message: %v", err)
		msg.Ack() // Ack invalid messages to prevent infinite retry
		return
	}

	log.Printf("[INFO] Processing embedding for PolicyId: %s", payload.PolicyId)

	uow := cs.uowFactory.NewUnitOfWork(ctx)

	policy, err := uow.PolicyRepository().FindOne(ctx, specification.ByPolicyID{ID: payload.PolicyId})
	if err != nil {
		log.Printf("[ERROR] Failed to get policy %s: %v", payload.PolicyId, err)
		msg.Nack() // Nack for retriable errors
		return
	}
	if policy == nil {
		log.Printf("[WARN] Policy not found: %s", payload.PolicyId)
		msg.Ack() // Policy deleted, nothing to embed.
		return
	}

	document := normalizer.BuildDocument(policy)

	embedCtx, cancel := context.WithTimeout(ctx, cs.embedTimeout)
	defer cancel()

	res, err := cs.embeddingProvider.Generate(embedCtx, document, embedding.TaskRetrievalDocument)
	if err != nil {
		log.Printf("[ERROR] Failed to generate embedding for policy %s: %v", payload.PolicyId, err)
		msg.Nack()
		return
	}

	now := time.Now()
	newEmbedding := &entity.PolicyEmbedding{
		Id:             uuid.New(),
		PolicyId:       policy.Id,
		Document:       document,
		EmbeddingValue: res.Embedding.Values,
		CreatedAt:      now,
		UpdatedAt:      &now,
	}

	if err := uow.Begin(ctx); err != nil {
		log.Printf("[ERROR] Failed to begin transaction: %v", err)
		msg.Nack()
		return
	}
	defer uow.Rollback()

	if err := uow.PolicyEmbeddingRepository().Upsert(ctx, newEmbedding); err != nil {
		log.Printf("[ERROR] Failed to upsert embedding for policy %s: %v", payload.PolicyId, err)
		msg.Nack()
		return
	}

	if err := uow.Commit(); err != nil {
		log.Printf("[ERROR] Failed to commit transaction: %v", err)
		msg.Nack()
		return
	}

	log.Printf("[SUCCESS] Re-embedded policy %s (document length: %d)", payload.PolicyId, len(document))
	msg.Ack()
}
