package model

import (
	"context"
	"fmt"
	"time"

	"github.com/thep200/github-harvester/cfg"
	"github.com/thep200/github-harvester/pkg/db"
	"github.com/thep200/github-harvester/pkg/log"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type Repo struct {
	Model
	ID             string    `json:"id" gorm:"column:id;type:varchar(255);primaryKey"`
	Name           *string   `json:"name" gorm:"column:name;type:varchar(512)"`
	StargazerCount *int      `json:"stargazer_count" gorm:"column:stargazer_count"`
	CrawledAt      time.Time `json:"crawled_at" gorm:"column:crawled_at;not null"`
}

func NewRepo(config *cfg.Config, logger log.Logger, pg *db.Postgres) (*Repo, error) {
	repo := &Repo{
		Model: Model{
			Config:   config,
			Logger:   logger,
			Postgres: pg,
		},
	}
	return repo, nil
}

func (r *Repo) TableName() string {
	return "repositories"
}

// UpsertBatch ghi toàn bộ danh sách record vào database bằng một transaction
// duy nhất: hoặc tất cả các sub-batch được commit, hoặc không gì cả. Khi trùng
// id thì name, stargazer_count và crawled_at được làm mới, id giữ nguyên.
// Gọi lại với cùng input không tạo thêm dòng nào.
func (r *Repo) UpsertBatch(ctx context.Context, messages []RepoMessage) error {
	if len(messages) == 0 {
		r.Logger.Info(ctx, "No repositories to store")
		return nil
	}

	db, err := r.Postgres.Db()
	if err != nil {
		return fmt.Errorf("failed to get database connection: %w", err)
	}

	now := time.Now()
	repos := make([]Repo, 0, len(messages))
	for _, msg := range messages {
		repos = append(repos, Repo{
			ID:             msg.ID,
			Name:           msg.Name,
			StargazerCount: msg.StargazerCount,
			CrawledAt:      now,
		})
	}

	batchSize := r.Config.Harvester.BatchSize
	if batchSize <= 0 {
		batchSize = 500
	}

	err = db.Transaction(func(tx *gorm.DB) error {
		result := tx.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "id"}},
			DoUpdates: clause.AssignmentColumns([]string{"name", "stargazer_count", "crawled_at"}),
		}).CreateInBatches(repos, batchSize)

		if result.Error != nil {
			return fmt.Errorf("failed to batch upsert repositories: %w", result.Error)
		}

		return nil
	})
	if err != nil {
		return err
	}

	r.Logger.Info(ctx, "Successfully inserted/updated %d records in the database", len(repos))
	return nil
}
