package batchgen

import (
	"context"
	"errors"
	"fmt"
	"time"

	"flowz-server/internal/domain"
	"flowz-server/internal/imagefetch"
	"flowz-server/internal/infra"
	"flowz-server/internal/providers/genai"
)

// TextGenerator is the slice of the Gemini client the orchestrator needs.
type TextGenerator interface {
	GenerateText(ctx context.Context, req genai.TextRequest) (string, error)
	GenerateVision(ctx context.Context, req genai.VisionRequest) (string, error)
}

// ImageFetcher retrieves product image bytes for vision prompts. A nil image
// with a nil error means the image was unusable and the caller should fall
// back to a text-only prompt.
type ImageFetcher interface {
	Fetch(ctx context.Context, url string) (*imagefetch.Image, error)
}

// Orchestrator drives one batch generation run: strictly sequential over
// products, and within a product over enabled fields. Results persist
// product-by-product so a failure never discards earlier work.
type Orchestrator struct {
	generator TextGenerator
	jobs      domain.BatchJobRepository
	products  domain.ProductRepository
	fetcher   ImageFetcher
	logger    infra.Logger
	sleep     func(time.Duration)
}

func New(generator TextGenerator, jobs domain.BatchJobRepository, products domain.ProductRepository, fetcher ImageFetcher, logger infra.Logger) *Orchestrator {
	return &Orchestrator{
		generator: generator,
		jobs:      jobs,
		products:  products,
		fetcher:   fetcher,
		logger:    logger,
		sleep:     time.Sleep,
	}
}

// Run executes the batch. The job and its items must already be persisted in
// pending state. Run never returns an error: per-product failures are
// recorded and streamed, and the loop always advances. It stops early, with
// no further API calls or store writes, once the stream closes or ctx is
// cancelled.
func (o *Orchestrator) Run(ctx context.Context, job *domain.BatchJob, items []domain.BatchJobItem, emit Emitter) {
	total := len(items)
	o.send(emit, ConnectedEvent{Type: EventConnected, JobID: job.ID, Total: total})

	if err := o.jobs.MarkJobRunning(ctx, job.ID); err != nil {
		o.logger.Error().Err(err).Str("job_id", job.ID).Msg("batchgen: mark running failed")
	}

	successful, failed := 0, 0
	for i, item := range items {
		if o.stopped(ctx, emit) {
			return
		}

		o.send(emit, ProductStartEvent{Type: EventProductStart, ProductID: item.ProductID, Current: i + 1, Total: total})
		o.updateItem(ctx, item.ID, domain.BatchItemProcessing, "")

		err := o.processProduct(ctx, job, item, emit)
		switch {
		case errors.Is(err, ErrStreamClosed):
			return
		case err != nil:
			failed++
			msg := domain.TruncateItemError(err.Error())
			o.updateItem(ctx, item.ID, domain.BatchItemFailed, msg)
			o.send(emit, ProductErrorEvent{Type: EventProductError, ProductID: item.ProductID, Error: msg})
			o.logger.Warn().Err(err).
				Str("job_id", job.ID).
				Str("product_id", item.ProductID).
				Msg("batchgen: product failed")
		default:
			successful++
			o.updateItem(ctx, item.ID, domain.BatchItemCompleted, "")
			o.send(emit, ProductCompleteEvent{Type: EventProductComplete, ProductID: item.ProductID})
		}

		if err := o.jobs.UpdateJobProgress(ctx, job.ID, successful+failed, successful, failed); err != nil {
			o.logger.Error().Err(err).Str("job_id", job.ID).Msg("batchgen: progress update failed")
		}
	}

	status := domain.BatchJobCompleted
	if failed == total {
		status = domain.BatchJobFailed
	}
	if err := o.jobs.FinishJob(ctx, job.ID, status, ""); err != nil {
		o.logger.Error().Err(err).Str("job_id", job.ID).Msg("batchgen: finish job failed")
	}
	o.send(emit, BatchCompleteEvent{
		Type:       EventBatchComplete,
		JobID:      job.ID,
		Total:      total,
		Successful: successful,
		Failed:     failed,
		Status:     string(status),
	})
}

// Fail marks the job failed after an error outside the product loop (stream
// setup, item creation) and emits the fatal error event.
func (o *Orchestrator) Fail(ctx context.Context, job *domain.BatchJob, emit Emitter, cause error) {
	msg := domain.TruncateItemError(cause.Error())
	if err := o.jobs.FinishJob(ctx, job.ID, domain.BatchJobFailed, msg); err != nil {
		o.logger.Error().Err(err).Str("job_id", job.ID).Msg("batchgen: finish failed job failed")
	}
	o.send(emit, ErrorEvent{Type: EventError, JobID: job.ID, Error: msg})
}

func (o *Orchestrator) processProduct(ctx context.Context, job *domain.BatchJob, item domain.BatchJobItem, emit Emitter) error {
	product, err := o.products.GetForStore(ctx, item.ProductID, job.StoreID)
	if err != nil {
		return fmt.Errorf("fetch product %s: %w", item.ProductID, err)
	}
	pc := domain.BuildProductContext(product)

	draft := &FieldDraft{}
	for _, field := range domain.EnabledFields(job.ContentTypes) {
		o.send(emit, FieldStartEvent{Type: EventFieldStart, ProductID: item.ProductID, Field: field})

		if field == domain.FieldAltText {
			count, err := o.generateAltText(ctx, job, pc, draft, emit)
			if err != nil {
				return err
			}
			o.send(emit, FieldCompleteEvent{Type: EventFieldComplete, ProductID: item.ProductID, Field: field, AltCount: &count})
			continue
		}

		prompt := buildFieldPrompt(field, pc, job.Settings)
		raw, err := o.generateWithRetry(ctx, job.ID, func(ctx context.Context) (string, error) {
			return o.generator.GenerateText(ctx, genai.TextRequest{Prompt: prompt, RequestID: job.ID})
		})
		if err != nil {
			return fmt.Errorf("generate %s: %w", field, err)
		}
		value := sanitizeResult(raw)
		draft.setField(field, value)
		o.send(emit, FieldCompleteEvent{Type: EventFieldComplete, ProductID: item.ProductID, Field: field, Preview: preview(value)})
	}

	merged := MergeDraft(product.DraftContent, draft)
	if err := o.products.UpdateDraft(ctx, product.ID, merged); err != nil {
		return fmt.Errorf("persist draft: %w", err)
	}
	return nil
}

// generateAltText produces alt text for every image attached to the
// product, or for the single catalog image when the draft lists none.
// Within the sub-loop the closed signal is re-checked before each image.
func (o *Orchestrator) generateAltText(ctx context.Context, job *domain.BatchJob, pc domain.ProductContext, draft *FieldDraft, emit Emitter) (int, error) {
	images := pc.Images
	if len(images) == 0 && pc.ImageURL != "" {
		images = []domain.ProductImage{{URL: pc.ImageURL}}
	}
	if len(images) == 0 {
		return 0, nil
	}

	generated := make([]domain.ProductImage, 0, len(images))
	for _, img := range images {
		if o.stopped(ctx, emit) {
			return 0, ErrStreamClosed
		}

		var fetched *imagefetch.Image
		if job.Settings.ImageAnalysis && o.fetcher != nil {
			fetched, _ = o.fetcher.Fetch(ctx, img.URL)
		}

		prompt := buildAltTextPrompt(pc, job.Settings, img.URL, fetched != nil)
		raw, err := o.generateWithRetry(ctx, job.ID, func(ctx context.Context) (string, error) {
			if fetched != nil {
				return o.generator.GenerateVision(ctx, genai.VisionRequest{
					Prompt:    prompt,
					ImageData: fetched.Data,
					MimeType:  fetched.MimeType,
					RequestID: job.ID,
				})
			}
			return o.generator.GenerateText(ctx, genai.TextRequest{Prompt: prompt, RequestID: job.ID})
		})
		if err != nil {
			return 0, fmt.Errorf("generate alt text: %w", err)
		}
		generated = append(generated, domain.ProductImage{URL: img.URL, Alt: sanitizeResult(raw)})
	}

	draft.Images = generated
	return len(generated), nil
}

// send forwards an event best-effort. A closed stream is not an error here:
// the loop notices closure at its own checkpoints.
func (o *Orchestrator) send(emit Emitter, event any) {
	if err := emit.Emit(event); err != nil && !errors.Is(err, ErrStreamClosed) {
		o.logger.Debug().Err(err).Msg("batchgen: emit failed")
	}
}

func (o *Orchestrator) stopped(ctx context.Context, emit Emitter) bool {
	return emit.Closed() || ctx.Err() != nil
}

func (o *Orchestrator) updateItem(ctx context.Context, itemID string, status domain.BatchItemStatus, msg string) {
	if err := o.jobs.UpdateItemStatus(ctx, itemID, status, msg); err != nil {
		o.logger.Error().Err(err).Str("item_id", itemID).Msg("batchgen: item update failed")
	}
}
