package export

import (
	"strings"
	"testing"
	"time"
)

func TestNewWorkbook_SheetsAndCells(t *testing.T) {
	w, err := NewWorkbook([]SheetSpec{
		{
			Title:  "Рейтинг",
			Header: []string{"Место", "ФИО"},
			Rows:   [][]string{{"1", "Иванов"}, {"2", "Петров"}},
		},
		{
			Title:  "Журнал баллов",
			Header: []string{"Дата", "Баллы"},
			Rows:   nil,
		},
	})
	if err != nil {
		t.Fatal(err)
	}

	sheets := w.File.GetSheetList()
	if len(sheets) != 2 || sheets[0] != "Рейтинг" || sheets[1] != "Журнал баллов" {
		t.Fatalf("листы: %v", sheets)
	}

	v, err := w.File.GetCellValue("Рейтинг", "B3")
	if err != nil {
		t.Fatal(err)
	}
	if v != "Петров" {
		t.Fatalf("B3 = %q", v)
	}

	b, err := w.Bytes()
	if err != nil {
		t.Fatal(err)
	}
	if len(b) == 0 {
		t.Fatal("пустая книга")
	}
}

func TestRatingFilename(t *testing.T) {
	loc, _ := time.LoadLocation("Europe/Moscow")
	now := time.Date(2026, 8, 30, 12, 0, 0, 0, time.UTC)
	name := RatingFilename(now, loc)
	if !strings.HasSuffix(name, ".xlsx") || !strings.Contains(name, "30.08.2026") {
		t.Fatalf("имя файла: %q", name)
	}
	if strings.ContainsAny(name, `\/:*?"<>|`) {
		t.Fatalf("в имени запрещённые символы: %q", name)
	}
}

func TestSanitizeFileName(t *testing.T) {
	got := sanitizeFileName(`  Отчёт /  за * неделю?  `)
	if got != "Отчёт _ за _ неделю_" {
		t.Fatalf("sanitize: %q", got)
	}
}
