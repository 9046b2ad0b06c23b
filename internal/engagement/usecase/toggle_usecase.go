package usecase

import (
	"context"

	"vidtube-backend/internal/engagement/domain"
	"vidtube-backend/internal/engagement/repository"
	"vidtube-backend/pkg/apperr"
)

// ToggleState is the relationship state after a toggle.
type ToggleState string

const (
	StateOn  ToggleState = "on"
	StateOff ToggleState = "off"
)

// ToggleResult reports the state a toggle landed on and, while on, the edge
// that encodes it.
type ToggleResult struct {
	State ToggleState  `json:"state"`
	Edge  *domain.Edge `json:"edge,omitempty"`
}

// ToggleUsecase is the idempotent presence-toggle engine shared by
// subscriptions and likes.
type ToggleUsecase interface {
	Toggle(ctx context.Context, subjectID string, kind domain.TargetKind, targetID string) (*ToggleResult, error)
	Count(ctx context.Context, kind domain.TargetKind, targetID string) (int64, error)
	IsPresent(ctx context.Context, subjectID string, kind domain.TargetKind, targetID string) (bool, error)
	ListSubjects(ctx context.Context, kind domain.TargetKind, targetID string) ([]string, error)
	ListTargets(ctx context.Context, subjectID string, kind domain.TargetKind) ([]string, error)
	// ClearTarget drops every edge pointing at a target; used when the
	// target itself is deleted.
	ClearTarget(ctx context.Context, kind domain.TargetKind, targetID string) error
	CountForTargets(ctx context.Context, kind domain.TargetKind, targetIDs []string) (int64, error)

	// SubscriptionFacts for the auth feature's channel profiles.
	SubscriberCount(ctx context.Context, channelID string) (int64, error)
	SubscribedChannelCount(ctx context.Context, userID string) (int64, error)
	IsSubscribed(ctx context.Context, subscriberID, channelID string) (bool, error)
}

// toggleUsecase implements ToggleUsecase.
type toggleUsecase struct {
	edgeRepo repository.EdgeRepository
}

func NewToggleUsecase(edgeRepo repository.EdgeRepository) ToggleUsecase {
	return &toggleUsecase{edgeRepo: edgeRepo}
}

// Toggle flips the presence of the (subject, kind, target) edge. The find /
// create-or-delete sequence alone would race with itself across requests;
// the storage uniqueness constraint closes that gap. A duplicate-create
// conflict means another request created the edge between our find and
// create, so the edge exists and the honest answer is the current state,
// not an error. Same for a delete that removed nothing.
func (u *toggleUsecase) Toggle(ctx context.Context, subjectID string, kind domain.TargetKind, targetID string) (*ToggleResult, error) {
	if targetID == "" {
		return nil, apperr.Validation("target id is required")
	}
	if !kind.Valid() {
		return nil, apperr.Validation("unknown target kind")
	}

	existing, err := u.edgeRepo.Find(ctx, subjectID, kind, targetID)
	if err != nil {
		return nil, apperr.Storage(err)
	}

	if existing == nil {
		edge := &domain.Edge{
			SubjectID:  subjectID,
			TargetKind: kind,
			TargetID:   targetID,
		}
		err := u.edgeRepo.Create(ctx, edge)
		if err == nil {
			return &ToggleResult{State: StateOn, Edge: edge}, nil
		}
		if apperr.IsCode(err, apperr.CodeConflict) {
			// Lost the create race: an identical edge landed first.
			current, findErr := u.edgeRepo.Find(ctx, subjectID, kind, targetID)
			if findErr != nil {
				return nil, apperr.Storage(findErr)
			}
			return &ToggleResult{State: StateOn, Edge: current}, nil
		}
		return nil, apperr.Storage(err)
	}

	deleted, err := u.edgeRepo.Delete(ctx, subjectID, kind, targetID)
	if err != nil {
		return nil, apperr.Storage(err)
	}
	_ = deleted // 0 rows means a concurrent toggle removed it; either way the edge is gone
	return &ToggleResult{State: StateOff}, nil
}

func (u *toggleUsecase) Count(ctx context.Context, kind domain.TargetKind, targetID string) (int64, error) {
	if targetID == "" {
		return 0, apperr.Validation("target id is required")
	}
	count, err := u.edgeRepo.CountByTarget(ctx, kind, targetID)
	if err != nil {
		return 0, apperr.Storage(err)
	}
	return count, nil
}

func (u *toggleUsecase) IsPresent(ctx context.Context, subjectID string, kind domain.TargetKind, targetID string) (bool, error) {
	edge, err := u.edgeRepo.Find(ctx, subjectID, kind, targetID)
	if err != nil {
		return false, apperr.Storage(err)
	}
	return edge != nil, nil
}

func (u *toggleUsecase) ListSubjects(ctx context.Context, kind domain.TargetKind, targetID string) ([]string, error) {
	if targetID == "" {
		return nil, apperr.Validation("target id is required")
	}
	ids, err := u.edgeRepo.ListSubjects(ctx, kind, targetID)
	if err != nil {
		return nil, apperr.Storage(err)
	}
	return ids, nil
}

func (u *toggleUsecase) ListTargets(ctx context.Context, subjectID string, kind domain.TargetKind) ([]string, error) {
	ids, err := u.edgeRepo.ListTargets(ctx, subjectID, kind)
	if err != nil {
		return nil, apperr.Storage(err)
	}
	return ids, nil
}

func (u *toggleUsecase) ClearTarget(ctx context.Context, kind domain.TargetKind, targetID string) error {
	if err := u.edgeRepo.DeleteByTarget(ctx, kind, targetID); err != nil {
		return apperr.Storage(err)
	}
	return nil
}

func (u *toggleUsecase) CountForTargets(ctx context.Context, kind domain.TargetKind, targetIDs []string) (int64, error) {
	count, err := u.edgeRepo.CountByTargets(ctx, kind, targetIDs)
	if err != nil {
		return 0, apperr.Storage(err)
	}
	return count, nil
}

func (u *toggleUsecase) SubscriberCount(ctx context.Context, channelID string) (int64, error) {
	return u.Count(ctx, domain.KindChannel, channelID)
}

func (u *toggleUsecase) SubscribedChannelCount(ctx context.Context, userID string) (int64, error) {
	count, err := u.edgeRepo.CountBySubject(ctx, userID, domain.KindChannel)
	if err != nil {
		return 0, apperr.Storage(err)
	}
	return count, nil
}

func (u *toggleUsecase) IsSubscribed(ctx context.Context, subscriberID, channelID string) (bool, error) {
	return u.IsPresent(ctx, subscriberID, domain.KindChannel, channelID)
}
