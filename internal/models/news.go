package models

import "time"

type News struct {
	ID                 string    `db:"id" json:"id"`
	Title              string    `db:"title" json:"title"`
	Content            string    `db:"content" json:"content"`
	Author             string    `db:"author" json:"author"`
	IsMain             bool      `db:"is_main" json:"is_main"`
	BackgroundImageURL *string   `db:"background_image_url" json:"background_image_url,omitempty"`
	Images             []string  `db:"images" json:"images"`
	CreatedBy          *string   `db:"created_by" json:"created_by,omitempty"`
	CreatedAt          time.Time `db:"created_at" json:"created_at"`
	UpdatedAt          time.Time `db:"updated_at" json:"updated_at"`

	// Счётчики для ленты, заполняются запросом.
	LikesCount    int `db:"likes_count" json:"likes_count"`
	CommentsCount int `db:"comments_count" json:"comments_count"`
}

// NewsUpdate — частичное редактирование, nil-поля не трогаем.
// is_main=true переносит флаг главной, is_main=false здесь не
// поддерживается: главная снимается назначением другой новости.
type NewsUpdate struct {
	Title              *string  `json:"title,omitempty"`
	Content            *string  `json:"content,omitempty"`
	Author             *string  `json:"author,omitempty"`
	BackgroundImageURL *string  `json:"background_image_url,omitempty"`
	Images             []string `json:"images,omitempty"`
	IsMain             *bool    `json:"is_main,omitempty"`
}

type NewsComment struct {
	ID         string    `db:"id" json:"id"`
	NewsID     string    `db:"news_id" json:"news_id"`
	AuthorName string    `db:"author_name" json:"author_name"`
	Content    string    `db:"content" json:"content"`
	CreatedAt  time.Time `db:"created_at" json:"created_at"`
}
