package db

import (
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
)

var (
	ErrNotFound = errors.New("запись не найдена")

	// ErrActiveSubmissionExists — у пары (задание, кадет) уже есть живая
	// сдача; отдаёт частичный уникальный индекс task_submissions_active_uniq.
	ErrActiveSubmissionExists = errors.New("задание уже взято")

	// ErrWrongState — переход жизненного цикла из недопустимого статуса.
	ErrWrongState = errors.New("недопустимый статус сдачи")
)

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}
