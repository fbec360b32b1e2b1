package document

import (
	"context"
	"fmt"

	"github.com/SAP-F-2025/nova-scholar-service/internal/models"
	"github.com/SAP-F-2025/nova-scholar-service/internal/repositories"
	"github.com/SAP-F-2025/nova-scholar-service/internal/store"
)

type ResumeReviewDocument struct {
	store store.Store
}

func NewResumeReviewDocument(s store.Store) repositories.ResumeReviewRepository {
	return &ResumeReviewDocument{store: s}
}

// Save merge-upserts the latest review; the previous one is overwritten
func (r *ResumeReviewDocument) Save(ctx context.Context, studentID, fileName string, analysis *models.ResumeAnalysis) error {
	feedback := make([]interface{}, len(analysis.Feedback))
	for i, f := range analysis.Feedback {
		feedback[i] = f
	}
	data := map[string]interface{}{
		"student_id":     studentID,
		"file_name":      fileName,
		"score":          analysis.Score,
		"feedback":       feedback,
		"candidate_name": analysis.Details.CandidateName,
		"role":           analysis.Details.Role,
		"recommendation": analysis.Details.Recommendation,
		"source":         analysis.Source,
		"reviewed_at":    store.ServerTimestamp,
	}
	path := store.Join(models.CollectionResumeReviews, studentID)
	if err := r.store.Merge(ctx, path, data); err != nil {
		return fmt.Errorf("failed to save resume review for %s: %w", studentID, err)
	}
	return nil
}

type PlacementDocument struct {
	store store.Store
}

func NewPlacementDocument(s store.Store) repositories.PlacementRepository {
	return &PlacementDocument{store: s}
}

func (p *PlacementDocument) SaveProgress(ctx context.Context, progress *models.PlacementProgress) error {
	data := map[string]interface{}{
		"student_id": progress.StudentID,
		"streak":     progress.Streak,
		"updated_at": store.ServerTimestamp,
	}
	if progress.Topics != nil {
		data["topics"] = boolMap(progress.Topics)
	}
	if progress.Goals != nil {
		data["goals"] = boolMap(progress.Goals)
	}
	if progress.CompanyChecks != nil {
		data["company_checks"] = boolMap(progress.CompanyChecks)
	}
	path := store.Join(models.CollectionPlacementProgress, progress.StudentID)
	if err := p.store.Merge(ctx, path, data); err != nil {
		return fmt.Errorf("failed to save placement progress for %s: %w", progress.StudentID, err)
	}
	return nil
}

func (p *PlacementDocument) GetProgress(ctx context.Context, studentID string) (*models.PlacementProgress, error) {
	var progress models.PlacementProgress
	path := store.Join(models.CollectionPlacementProgress, studentID)
	if err := p.store.Get(ctx, path, &progress); err != nil {
		if repositories.IsNotFoundError(err) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to get placement progress for %s: %w", studentID, err)
	}
	progress.StudentID = studentID
	return &progress, nil
}

func boolMap(in map[string]bool) map[string]interface{} {
	out := make(map[string]interface{}, len(in))
	for k, v := range in {
		out[k] = v
	}
	return out
}
