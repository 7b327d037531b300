package review

import (
	"context"

	"bookify/internal/app/commands"
	"bookify/internal/app/outbox"
	domainbooking "bookify/internal/domain/booking"
	domainreview "bookify/internal/domain/review"
	"bookify/internal/domain/shared/clock"
	"bookify/internal/domain/shared/result"
)

const submitReviewKey = "review.submit"

type SubmitReviewCommand struct {
	BookingID       string
	Rating          int
	Comment         string
	IdempotencyKeyV string
}

func (c SubmitReviewCommand) Key() string { return submitReviewKey }

func (c SubmitReviewCommand) IdempotencyKey() string { return c.IdempotencyKeyV }

type SubmitReviewResult struct {
	ReviewID string `json:"review_id"`
}

// SubmitReviewHandler records a guest review against a completed booking.
type SubmitReviewHandler struct {
	Bookings domainbooking.Repository
	Reviews  domainreview.Repository
	Clock    clock.Clock
	Outbox   outbox.Outbox
	Encoder  outbox.EventEncoder
}

func (h *SubmitReviewHandler) Handle(ctx context.Context, cmd commands.Command) (any, error) {
	c, ok := cmd.(SubmitReviewCommand)
	if !ok {
		return nil, commands.ErrUnexpectedCommand
	}
	return h.submit(ctx, c)
}

func (h *SubmitReviewHandler) submit(ctx context.Context, cmd SubmitReviewCommand) (result.Result[SubmitReviewResult], error) {
	rating, err := domainreview.NewRating(cmd.Rating)
	if err != nil {
		return result.Result[SubmitReviewResult]{}, err
	}
	comment, err := domainreview.NewComment(cmd.Comment)
	if err != nil {
		return result.Result[SubmitReviewResult]{}, err
	}

	loaded := h.Bookings.GetByID(ctx, domainbooking.ID(cmd.BookingID))
	if loaded.IsFailure() {
		return result.Failure[SubmitReviewResult](loaded.Err()), nil
	}

	submitted := domainreview.Submit(loaded.Value(), rating, comment, h.Clock.Now())
	if submitted.IsFailure() {
		return result.Failure[SubmitReviewResult](submitted.Err()), nil
	}
	r := submitted.Value()

	if added := h.Reviews.Add(ctx, r); added.IsFailure() {
		return result.Failure[SubmitReviewResult](added.Err()), nil
	}

	if err := outbox.RecordDomainEvents(ctx, h.Outbox, h.Encoder, r.DomainEvents()); err != nil {
		return result.Result[SubmitReviewResult]{}, err
	}
	r.ClearDomainEvents()

	return result.Success(SubmitReviewResult{ReviewID: string(r.ID)}), nil
}
