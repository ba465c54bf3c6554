package db

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"

	"github.com/GogaGogich123/cadet-corps-api/internal/models"
)

// Картинки храним в jsonb, поэтому скан через []byte.
func scanNews(row interface{ Scan(...any) error }) (models.News, error) {
	var n models.News
	var images []byte
	err := row.Scan(&n.ID, &n.Title, &n.Content, &n.Author, &n.IsMain, &n.BackgroundImageURL,
		&images, &n.CreatedBy, &n.CreatedAt, &n.UpdatedAt, &n.LikesCount, &n.CommentsCount)
	if err != nil {
		return n, err
	}
	if err := json.Unmarshal(images, &n.Images); err != nil {
		return n, err
	}
	if n.Images == nil {
		n.Images = []string{}
	}
	return n, nil
}

const newsSelect = `
SELECT n.id, n.title, n.content, n.author, n.is_main, n.background_image_url,
       n.images, n.created_by, n.created_at, n.updated_at,
       (SELECT COUNT(*) FROM news_likes l WHERE l.news_id = n.id),
       (SELECT COUNT(*) FROM news_comments c WHERE c.news_id = n.id)
FROM news n`

func ListNews(ctx context.Context, database *sql.DB) ([]models.News, error) {
	rows, err := database.QueryContext(ctx, newsSelect+` ORDER BY n.created_at DESC`)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	var out []models.News
	for rows.Next() {
		n, err := scanNews(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, n)
	}
	return out, rows.Err()
}

// GetMainNews — главная новость; nil, если флаг нигде не стоит.
func GetMainNews(ctx context.Context, database *sql.DB) (*models.News, error) {
	row := database.QueryRowContext(ctx, newsSelect+`
WHERE n.is_main ORDER BY n.created_at DESC LIMIT 1`)
	n, err := scanNews(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &n, nil
}

func GetNewsByID(ctx context.Context, database *sql.DB, id string) (*models.News, error) {
	row := database.QueryRowContext(ctx, newsSelect+` WHERE n.id = $1`, id)
	n, err := scanNews(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &n, nil
}

// CreateNews — вставка; если is_main, в той же транзакции снимаем флаг
// с остальных: главная новость всегда одна.
func CreateNews(ctx context.Context, database *sql.DB, n models.News) (string, error) {
	images, err := json.Marshal(n.Images)
	if err != nil {
		return "", err
	}
	if n.Images == nil {
		images = []byte(`[]`)
	}

	tx, err := database.BeginTx(ctx, nil)
	if err != nil {
		return "", err
	}
	defer func() { _ = tx.Rollback() }()

	if n.IsMain {
		if _, err := tx.ExecContext(ctx, `UPDATE news SET is_main = FALSE, updated_at = now() WHERE is_main`); err != nil {
			return "", err
		}
	}

	var id string
	if err := tx.QueryRowContext(ctx, `
INSERT INTO news (title, content, author, is_main, background_image_url, images, created_by)
VALUES ($1, $2, $3, $4, $5, $6, $7)
RETURNING id`, n.Title, n.Content, n.Author, n.IsMain, n.BackgroundImageURL, images, n.CreatedBy).Scan(&id); err != nil {
		return "", err
	}

	return id, tx.Commit()
}

// UpdateNews — частичное редактирование, nil-поля не трогаем.
// is_main=true выполняется в той же транзакции со снятием флага
// с остальных новостей.
func UpdateNews(ctx context.Context, database *sql.DB, id string, upd models.NewsUpdate) error {
	var images *string
	if upd.Images != nil {
		b, err := json.Marshal(upd.Images)
		if err != nil {
			return err
		}
		s := string(b)
		images = &s
	}

	tx, err := database.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	if upd.IsMain != nil && *upd.IsMain {
		if _, err := tx.ExecContext(ctx, `UPDATE news SET is_main = FALSE, updated_at = now() WHERE is_main AND id <> $1`, id); err != nil {
			return err
		}
	}

	res, err := tx.ExecContext(ctx, `
UPDATE news SET
    title = COALESCE($2, title),
    content = COALESCE($3, content),
    author = COALESCE($4, author),
    background_image_url = COALESCE($5, background_image_url),
    images = COALESCE($6, images),
    is_main = COALESCE($7, is_main),
    updated_at = now()
WHERE id = $1`, id, upd.Title, upd.Content, upd.Author, upd.BackgroundImageURL, images, upd.IsMain)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound
	}
	return tx.Commit()
}

func ListComments(ctx context.Context, database *sql.DB, newsID string) ([]models.NewsComment, error) {
	rows, err := database.QueryContext(ctx, `
SELECT id, news_id, author_name, content, created_at
FROM news_comments WHERE news_id = $1 ORDER BY created_at`, newsID)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	var out []models.NewsComment
	for rows.Next() {
		var c models.NewsComment
		if err := rows.Scan(&c.ID, &c.NewsID, &c.AuthorName, &c.Content, &c.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

func AddComment(ctx context.Context, database *sql.DB, newsID, author, content string) (*models.NewsComment, error) {
	row := database.QueryRowContext(ctx, `
INSERT INTO news_comments (news_id, author_name, content)
VALUES ($1, $2, $3)
RETURNING id, news_id, author_name, content, created_at`, newsID, author, content)

	var c models.NewsComment
	if err := row.Scan(&c.ID, &c.NewsID, &c.AuthorName, &c.Content, &c.CreatedAt); err != nil {
		return nil, err
	}
	return &c, nil
}

// ToggleLike — повторный лайк того же актора снимает отметку.
// Возвращает итоговое состояние и счётчик.
func ToggleLike(ctx context.Context, database *sql.DB, newsID, actor string) (liked bool, count int, err error) {
	tx, err := database.BeginTx(ctx, nil)
	if err != nil {
		return false, 0, err
	}
	defer func() { _ = tx.Rollback() }()

	res, err := tx.ExecContext(ctx, `
DELETE FROM news_likes WHERE news_id = $1 AND actor_name = $2`, newsID, actor)
	if err != nil {
		return false, 0, err
	}
	deleted, err := res.RowsAffected()
	if err != nil {
		return false, 0, err
	}
	if deleted == 0 {
		if _, err := tx.ExecContext(ctx, `
INSERT INTO news_likes (news_id, actor_name) VALUES ($1, $2)`, newsID, actor); err != nil {
			return false, 0, err
		}
		liked = true
	}

	if err := tx.QueryRowContext(ctx, `
SELECT COUNT(*) FROM news_likes WHERE news_id = $1`, newsID).Scan(&count); err != nil {
		return false, 0, err
	}
	return liked, count, tx.Commit()
}
