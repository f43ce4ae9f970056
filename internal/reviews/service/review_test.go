package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"rhr/pkg/config"
	apperrors "rhr/pkg/errors"
	"rhr/pkg/logger"
	"rhr/pkg/model"
)

type mockReviewRepository struct {
	insertFunc    func(ctx context.Context, review *model.Review) error
	findByNumFunc func(ctx context.Context, num int) ([]*model.Review, error)
}

func (m *mockReviewRepository) Insert(ctx context.Context, review *model.Review) error {
	if m.insertFunc != nil {
		return m.insertFunc(ctx, review)
	}
	return nil
}

func (m *mockReviewRepository) FindByNum(ctx context.Context, num int) ([]*model.Review, error) {
	if m.findByNumFunc != nil {
		return m.findByNumFunc(ctx, num)
	}
	return []*model.Review{}, nil
}

func testConfig() *config.Config {
	return &config.Config{
		Log: logger.New(logger.Config{Level: "error", Service: "test"}),
	}
}

func TestSubmit(t *testing.T) {
	var stored *model.Review
	repo := &mockReviewRepository{
		insertFunc: func(_ context.Context, review *model.Review) error {
			stored = review
			review.ID = "generated-id"
			return nil
		},
	}
	svc := NewReviewService(repo, testConfig())

	review := &model.Review{
		ID:      "client-supplied-id",
		Num:     203,
		Rating:  4.5,
		Comment: "great view",
	}
	before := time.Now().UTC()
	if err := svc.Submit(context.Background(), review); err != nil {
		t.Fatalf("Submit() unexpected error: %v", err)
	}

	if stored == nil {
		t.Fatal("Insert was not called")
	}
	if review.ID != "generated-id" {
		t.Errorf("id = %q, want store-assigned 'generated-id'", review.ID)
	}
	if review.CreatedAt.Before(before.Truncate(time.Millisecond)) || review.CreatedAt.After(time.Now().UTC()) {
		t.Errorf("CreatedAt = %v, want server-assigned timestamp near now", review.CreatedAt)
	}
	if review.Num != 203 || review.Rating != 4.5 || review.Comment != "great view" {
		t.Errorf("review content was altered: %+v", review)
	}
}

func TestSubmit_StoreFailure(t *testing.T) {
	repo := &mockReviewRepository{
		insertFunc: func(_ context.Context, _ *model.Review) error {
			return errors.New("write concern failed")
		},
	}
	svc := NewReviewService(repo, testConfig())

	err := svc.Submit(context.Background(), &model.Review{Num: 101})
	if err == nil {
		t.Fatal("Submit() expected error, got nil")
	}
	if apperrors.AsAppError(err).Code != apperrors.CodeInternal {
		t.Errorf("code = %s, want %s", apperrors.AsAppError(err).Code, apperrors.CodeInternal)
	}
}

func TestListFor(t *testing.T) {
	tests := []struct {
		name      string
		ref       string
		stored    map[int][]*model.Review
		wantCount int
		wantQuery bool
	}{
		{
			name:      "numeric reference with reviews",
			ref:       "203",
			stored:    map[int][]*model.Review{203: {{Num: 203, Rating: 5}, {Num: 203, Rating: 3}}},
			wantCount: 2,
			wantQuery: true,
		},
		{
			name:      "numeric reference without reviews",
			ref:       "999",
			stored:    map[int][]*model.Review{},
			wantCount: 0,
			wantQuery: true,
		},
		{
			name:      "non-numeric reference yields empty set",
			ref:       "abc",
			wantCount: 0,
			wantQuery: false,
		},
		{
			name:      "empty reference yields empty set",
			ref:       "",
			wantCount: 0,
			wantQuery: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			queried := false
			repo := &mockReviewRepository{
				findByNumFunc: func(_ context.Context, num int) ([]*model.Review, error) {
					queried = true
					return tt.stored[num], nil
				},
			}
			svc := NewReviewService(repo, testConfig())

			reviews, err := svc.ListFor(context.Background(), tt.ref)
			if err != nil {
				t.Fatalf("ListFor() unexpected error: %v", err)
			}
			if len(reviews) != tt.wantCount {
				t.Errorf("got %d reviews, want %d", len(reviews), tt.wantCount)
			}
			if queried != tt.wantQuery {
				t.Errorf("store queried = %v, want %v", queried, tt.wantQuery)
			}
		})
	}
}
