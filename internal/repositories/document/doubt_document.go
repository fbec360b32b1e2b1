package document

import (
	"context"
	"fmt"

	"github.com/SAP-F-2025/nova-scholar-service/internal/models"
	"github.com/SAP-F-2025/nova-scholar-service/internal/repositories"
	"github.com/SAP-F-2025/nova-scholar-service/internal/store"
)

type DoubtDocument struct {
	store store.Store
}

func NewDoubtDocument(s store.Store) repositories.DoubtRepository {
	return &DoubtDocument{store: s}
}

func (d *DoubtDocument) Create(ctx context.Context, doubt *models.Doubt) (string, error) {
	status := doubt.Status
	if status == "" {
		status = models.DoubtOpen
	}
	id, err := d.store.Add(ctx, models.CollectionDoubts, map[string]interface{}{
		"course_id":  doubt.CourseID,
		"student_id": doubt.StudentID,
		"question":   doubt.Question,
		"status":     string(status),
		"created_at": store.ServerTimestamp,
	})
	if err != nil {
		return "", fmt.Errorf("failed to create doubt: %w", err)
	}
	doubt.ID = id
	doubt.Status = status
	return id, nil
}

func (d *DoubtDocument) StreamByStatus(ctx context.Context, status models.DoubtStatus, fn func(*models.Doubt) error) error {
	filters := []store.Filter{store.Where("status", string(status))}
	err := d.store.Stream(ctx, models.CollectionDoubts, filters, func(doc store.Document) error {
		var doubt models.Doubt
		if err := doc.DataTo(&doubt); err != nil {
			return fmt.Errorf("failed to decode doubt %s: %w", doc.ID(), err)
		}
		doubt.ID = doc.ID()
		return fn(&doubt)
	})
	if err != nil {
		return fmt.Errorf("failed to stream %s doubts: %w", status, err)
	}
	return nil
}
