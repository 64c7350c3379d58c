// internal/repository/word_click_repository_test.go
package repository

import (
	"context"
	"fmt"
	"strings"
	"testing"
	"time"

	"readsmart/internal/model"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// setupRepoDB はテストごとに独立したインメモリsqliteを用意します。
// 外部キー制約 (カスケード削除) を検証するため _foreign_keys=1 を付ける。
func setupRepoDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared&_foreign_keys=1",
		strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	// インメモリDBはコネクションごとに分かれるので1本に固定する
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.AutoMigrate(&model.User{}, &model.Document{}, &model.Page{}, &model.WordClick{}))
	return db
}

func createTestUserAndDocument(t *testing.T, db *gorm.DB) (uuid.UUID, uuid.UUID) {
	t.Helper()
	userID := uuid.New()
	documentID := uuid.New()
	require.NoError(t, db.Create(&model.User{
		UserID:       userID,
		Email:        fmt.Sprintf("%s@example.com", userID),
		PasswordHash: "hash",
	}).Error)
	require.NoError(t, db.Create(&model.Document{
		DocumentID: documentID,
		UserID:     userID,
		Title:      "test",
		Filename:   "test.txt",
		Content:    "body",
		TotalPages: 1,
	}).Error)
	return userID, documentID
}

func Test_gormWordClickRepository_Upsert(t *testing.T) {
	ctx := context.Background()
	db := setupRepoDB(t)
	repo := NewGormWordClickRepository()

	userID, documentID := createTestUserAndDocument(t, db)

	t1 := time.Date(2026, 8, 1, 10, 0, 0, 0, time.UTC)
	t2 := t1.Add(time.Hour)
	t3 := t1.Add(2 * time.Hour)

	// 同じ (user, document, word) を3回記録
	require.NoError(t, repo.Upsert(ctx, db, userID, documentID, "ember", t1))
	require.NoError(t, repo.Upsert(ctx, db, userID, documentID, "ember", t2))
	require.NoError(t, repo.Upsert(ctx, db, userID, documentID, "ember", t3))

	var clicks []model.WordClick
	require.NoError(t, db.Find(&clicks).Error)
	require.Len(t, clicks, 1, "同じ組は1行に集約される")

	click := clicks[0]
	assert.Equal(t, 3, click.ClickCount)
	assert.Equal(t, t1.Unix(), click.FirstClickedAt.Unix(), "初回クリック時刻は維持される")
	assert.Equal(t, t3.Unix(), click.LastClickedAt.Unix(), "最終クリック時刻は更新される")
	assert.Equal(t, model.MasteryNew, click.MasteryStatus)

	// 別の単語は別の行になる
	require.NoError(t, repo.Upsert(ctx, db, userID, documentID, "glow", t3))
	var count int64
	require.NoError(t, db.Model(&model.WordClick{}).Count(&count).Error)
	assert.Equal(t, int64(2), count)
}

func Test_gormWordClickRepository_UpdateMasteryByWord(t *testing.T) {
	ctx := context.Background()
	db := setupRepoDB(t)
	repo := NewGormWordClickRepository()

	userID, docID1 := createTestUserAndDocument(t, db)
	docID2 := uuid.New()
	require.NoError(t, db.Create(&model.Document{
		DocumentID: docID2, UserID: userID, Title: "second", Filename: "second.txt",
	}).Error)

	now := time.Now()
	require.NoError(t, repo.Upsert(ctx, db, userID, docID1, "ember", now))
	require.NoError(t, repo.Upsert(ctx, db, userID, docID2, "ember", now))
	require.NoError(t, repo.Upsert(ctx, db, userID, docID1, "other", now))

	// ドキュメント横断で一括更新される
	rows, err := repo.UpdateMasteryByWord(ctx, db, userID, "ember", model.MasteryMastered)
	require.NoError(t, err)
	assert.Equal(t, int64(2), rows)

	var mastered int64
	require.NoError(t, db.Model(&model.WordClick{}).
		Where("word = ? AND mastery_status = ?", "ember", model.MasteryMastered).
		Count(&mastered).Error)
	assert.Equal(t, int64(2), mastered)

	// 他の単語は影響を受けない
	var other model.WordClick
	require.NoError(t, db.Where("word = ?", "other").First(&other).Error)
	assert.Equal(t, model.MasteryNew, other.MasteryStatus)

	// 履歴のない単語は0行
	rows, err = repo.UpdateMasteryByWord(ctx, db, userID, "ghost", model.MasteryFamiliar)
	require.NoError(t, err)
	assert.Equal(t, int64(0), rows)
}

func Test_gormWordClickRepository_CascadeDelete(t *testing.T) {
	ctx := context.Background()
	db := setupRepoDB(t)
	clickRepo := NewGormWordClickRepository()
	docRepo := NewGormDocumentRepository()

	userID, documentID := createTestUserAndDocument(t, db)
	require.NoError(t, db.Create(&model.Page{
		PageID: uuid.New(), DocumentID: documentID, PageNumber: 1, Content: "the ember glows",
	}).Error)

	now := time.Now()
	require.NoError(t, clickRepo.Upsert(ctx, db, userID, documentID, "ember", now))
	require.NoError(t, clickRepo.Upsert(ctx, db, userID, documentID, "ember", now.Add(time.Minute)))

	// ドキュメント削除でページとクリック履歴が一緒に消える
	require.NoError(t, docRepo.Delete(ctx, db, userID, documentID))

	var pageCount, clickCount int64
	require.NoError(t, db.Model(&model.Page{}).Count(&pageCount).Error)
	require.NoError(t, db.Model(&model.WordClick{}).Count(&clickCount).Error)
	assert.Equal(t, int64(0), pageCount)
	assert.Equal(t, int64(0), clickCount)

	// 同じドキュメントIDを再作成して同じ単語をクリックすると履歴は1から
	require.NoError(t, db.Create(&model.Document{
		DocumentID: documentID, UserID: userID, Title: "test", Filename: "test.txt",
	}).Error)
	require.NoError(t, clickRepo.Upsert(ctx, db, userID, documentID, "ember", now))

	var click model.WordClick
	require.NoError(t, db.First(&click).Error)
	assert.Equal(t, 1, click.ClickCount)
}

func Test_gormWordClickRepository_FindByUser(t *testing.T) {
	ctx := context.Background()
	db := setupRepoDB(t)
	repo := NewGormWordClickRepository()

	userID, documentID := createTestUserAndDocument(t, db)

	base := time.Date(2026, 8, 1, 10, 0, 0, 0, time.UTC)
	require.NoError(t, repo.Upsert(ctx, db, userID, documentID, "alpha", base))
	require.NoError(t, repo.Upsert(ctx, db, userID, documentID, "beta", base.Add(time.Hour)))
	require.NoError(t, repo.Upsert(ctx, db, userID, documentID, "beta", base.Add(2*time.Hour)))

	t.Run("正常系: デフォルトは最終クリックの新しい順", func(t *testing.T) {
		clicks, total, err := repo.FindByUser(ctx, db, userID, model.WordListQuery{Limit: 10})
		require.NoError(t, err)
		assert.Equal(t, int64(2), total)
		require.Len(t, clicks, 2)
		assert.Equal(t, "beta", clicks[0].Word)
		assert.Equal(t, "alpha", clicks[1].Word)
	})

	t.Run("正常系: クリック回数の昇順ソート", func(t *testing.T) {
		clicks, _, err := repo.FindByUser(ctx, db, userID, model.WordListQuery{
			Limit: 10, SortBy: "click_count", Order: "asc",
		})
		require.NoError(t, err)
		require.Len(t, clicks, 2)
		assert.Equal(t, "alpha", clicks[0].Word)
	})

	t.Run("正常系: 未知のソートキーはデフォルトにフォールバック", func(t *testing.T) {
		_, _, err := repo.FindByUser(ctx, db, userID, model.WordListQuery{
			Limit: 10, SortBy: "drop table word_clicks",
		})
		require.NoError(t, err)
	})

	t.Run("正常系: 習熟ステータスで絞り込み", func(t *testing.T) {
		_, err := repo.UpdateMasteryByWord(ctx, db, userID, "alpha", model.MasteryMastered)
		require.NoError(t, err)

		clicks, total, err := repo.FindByUser(ctx, db, userID, model.WordListQuery{
			Limit: 10, MasteryStatus: model.MasteryMastered,
		})
		require.NoError(t, err)
		assert.Equal(t, int64(1), total)
		require.Len(t, clicks, 1)
		assert.Equal(t, "alpha", clicks[0].Word)
	})

	t.Run("正常系: 他のユーザーの履歴は見えない", func(t *testing.T) {
		clicks, total, err := repo.FindByUser(ctx, db, uuid.New(), model.WordListQuery{Limit: 10})
		require.NoError(t, err)
		assert.Equal(t, int64(0), total)
		assert.Empty(t, clicks)
	})
}
