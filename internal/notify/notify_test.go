package notify

import (
	"testing"
	"time"
)

func TestCenter_AddAndExpire(t *testing.T) {
	c := NewCenter(50 * time.Millisecond)
	defer c.Shutdown()

	n := c.Add("u1", KindSuccess, "Задание взято", "", 0)
	if got := c.Active("u1"); len(got) != 1 || got[0].ID != n.ID {
		t.Fatalf("сразу после Add уведомление должно висеть: %+v", got)
	}

	time.Sleep(120 * time.Millisecond)
	if got := c.Active("u1"); len(got) != 0 {
		t.Fatalf("после истечения срока уведомление должно исчезнуть: %+v", got)
	}
}

func TestCenter_PerNotificationDuration(t *testing.T) {
	c := NewCenter(time.Hour)
	defer c.Shutdown()

	short := c.Add("u1", KindWarning, "Срок сдачи близко", "Осталось меньше суток", 50*time.Millisecond)
	long := c.Add("u1", KindInfo, "Новость опубликована", "", 0) // срок центра

	time.Sleep(120 * time.Millisecond)
	got := c.Active("u1")
	if len(got) != 1 || got[0].ID != long.ID {
		t.Fatalf("короткое уведомление должно истечь, длинное — остаться: %+v", got)
	}
	if got[0].ID == short.ID {
		t.Fatal("короткое уведомление пережило свой срок")
	}
}

func TestCenter_DefaultTTL(t *testing.T) {
	if DefaultTTL != 5*time.Second {
		t.Fatalf("срок по умолчанию должен быть 5 секунд, а не %v", DefaultTTL)
	}
	c := NewCenter(0)
	defer c.Shutdown()
	if c.ttl != DefaultTTL {
		t.Fatalf("NewCenter(0) должен давать срок по умолчанию, получили %v", c.ttl)
	}
}

func TestCenter_TitleAndMessage(t *testing.T) {
	c := NewCenter(time.Hour)
	defer c.Shutdown()

	c.Add("u1", KindSuccess, "Баллы начислены", "Смотр строя: +20", 0)
	got := c.Active("u1")
	if len(got) != 1 || got[0].Title != "Баллы начислены" || got[0].Message != "Смотр строя: +20" {
		t.Fatalf("заголовок и текст должны сохраняться: %+v", got)
	}
	if got[0].Kind != KindSuccess {
		t.Fatalf("тип: %s", got[0].Kind)
	}
}

func TestCenter_RemoveEarly(t *testing.T) {
	c := NewCenter(time.Hour)
	defer c.Shutdown()

	n := c.Add("u1", KindInfo, "Новость опубликована", "", 0)
	c.Remove(n.ID)
	if got := c.Active("u1"); len(got) != 0 {
		t.Fatalf("после Remove уведомление должно исчезнуть: %+v", got)
	}
	// повторный Remove безвреден
	c.Remove(n.ID)
}

func TestCenter_PerUserIsolation(t *testing.T) {
	c := NewCenter(time.Hour)
	defer c.Shutdown()

	c.Add("u1", KindError, "Отказ", "", 0)
	c.Add("u2", KindSuccess, "Принято", "", 0)

	if got := c.Active("u1"); len(got) != 1 || got[0].Title != "Отказ" {
		t.Fatalf("u1: %+v", got)
	}
	if got := c.Active("u2"); len(got) != 1 || got[0].Title != "Принято" {
		t.Fatalf("u2: %+v", got)
	}
}

func TestCenter_ActiveOrdered(t *testing.T) {
	c := NewCenter(time.Hour)
	defer c.Shutdown()

	c.Add("u1", KindInfo, "первое", "", 0)
	time.Sleep(2 * time.Millisecond)
	c.Add("u1", KindInfo, "второе", "", 0)

	got := c.Active("u1")
	if len(got) != 2 || got[0].Title != "первое" || got[1].Title != "второе" {
		t.Fatalf("порядок нарушен: %+v", got)
	}
}
