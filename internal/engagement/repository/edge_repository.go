package repository

import (
	"context"
	"errors"
	"time"

	"vidtube-backend/internal/engagement/domain"
	"vidtube-backend/pkg/apperr"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

// EdgeRepository is the relationship store adapter. Create must fail with a
// CONFLICT error when the (subject, kind, target) uniqueness constraint is
// violated; that failure is the toggle engine's race-resolution signal, not
// a fault.
type EdgeRepository interface {
	Find(ctx context.Context, subjectID string, kind domain.TargetKind, targetID string) (*domain.Edge, error)
	Create(ctx context.Context, edge *domain.Edge) error
	// Delete removes the edge and reports whether a row was actually
	// deleted (false when a concurrent toggle got there first).
	Delete(ctx context.Context, subjectID string, kind domain.TargetKind, targetID string) (bool, error)
	CountByTarget(ctx context.Context, kind domain.TargetKind, targetID string) (int64, error)
	CountBySubject(ctx context.Context, subjectID string, kind domain.TargetKind) (int64, error)
	ListSubjects(ctx context.Context, kind domain.TargetKind, targetID string) ([]string, error)
	ListTargets(ctx context.Context, subjectID string, kind domain.TargetKind) ([]string, error)
	CountByTargets(ctx context.Context, kind domain.TargetKind, targetIDs []string) (int64, error)
	DeleteByTarget(ctx context.Context, kind domain.TargetKind, targetID string) error
}

// edgeRepository implements EdgeRepository using GORM.
type edgeRepository struct {
	db *gorm.DB
}

func NewEdgeRepository(db *gorm.DB) EdgeRepository {
	return &edgeRepository{db: db}
}

func (r *edgeRepository) Find(ctx context.Context, subjectID string, kind domain.TargetKind, targetID string) (*domain.Edge, error) {
	var edge domain.Edge
	err := r.db.WithContext(ctx).
		Where("subject_id = ? AND target_kind = ? AND target_id = ?", subjectID, kind, targetID).
		First(&edge).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &edge, nil
}

func (r *edgeRepository) Create(ctx context.Context, edge *domain.Edge) error {
	if edge.ID == "" {
		edge.ID = uuid.New().String()
	}
	edge.CreatedAt = time.Now()

	if err := r.db.WithContext(ctx).Create(edge).Error; err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return apperr.Conflict("edge already exists")
		}
		return err
	}
	return nil
}

func (r *edgeRepository) Delete(ctx context.Context, subjectID string, kind domain.TargetKind, targetID string) (bool, error) {
	res := r.db.WithContext(ctx).
		Where("subject_id = ? AND target_kind = ? AND target_id = ?", subjectID, kind, targetID).
		Delete(&domain.Edge{})
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

func (r *edgeRepository) CountByTarget(ctx context.Context, kind domain.TargetKind, targetID string) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&domain.Edge{}).
		Where("target_kind = ? AND target_id = ?", kind, targetID).
		Count(&count).Error
	return count, err
}

func (r *edgeRepository) CountBySubject(ctx context.Context, subjectID string, kind domain.TargetKind) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&domain.Edge{}).
		Where("subject_id = ? AND target_kind = ?", subjectID, kind).
		Count(&count).Error
	return count, err
}

func (r *edgeRepository) ListSubjects(ctx context.Context, kind domain.TargetKind, targetID string) ([]string, error) {
	var ids []string
	err := r.db.WithContext(ctx).
		Model(&domain.Edge{}).
		Where("target_kind = ? AND target_id = ?", kind, targetID).
		Order("created_at ASC").
		Pluck("subject_id", &ids).Error
	return ids, err
}

func (r *edgeRepository) ListTargets(ctx context.Context, subjectID string, kind domain.TargetKind) ([]string, error) {
	var ids []string
	err := r.db.WithContext(ctx).
		Model(&domain.Edge{}).
		Where("subject_id = ? AND target_kind = ?", subjectID, kind).
		Order("created_at ASC").
		Pluck("target_id", &ids).Error
	return ids, err
}

func (r *edgeRepository) CountByTargets(ctx context.Context, kind domain.TargetKind, targetIDs []string) (int64, error) {
	if len(targetIDs) == 0 {
		return 0, nil
	}
	var count int64
	err := r.db.WithContext(ctx).
		Model(&domain.Edge{}).
		Where("target_kind = ? AND target_id IN ?", kind, targetIDs).
		Count(&count).Error
	return count, err
}

func (r *edgeRepository) DeleteByTarget(ctx context.Context, kind domain.TargetKind, targetID string) error {
	return r.db.WithContext(ctx).
		Where("target_kind = ? AND target_id = ?", kind, targetID).
		Delete(&domain.Edge{}).Error
}
