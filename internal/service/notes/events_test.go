package notes

import (
	"testing"

	"notes-service/internal/model"
)

func TestEventService_SubscribePublish(t *testing.T) {
	events := NewEventService()

	ch1 := events.Subscribe()
	ch2 := events.Subscribe()
	defer events.Unsubscribe(ch2)

	note := model.Note{ID: "id-1", Title: "Event"}
	events.Publish(note)

	// Оба подписчика получают событие
	for i, ch := range []chan model.Note{ch1, ch2} {
		select {
		case got := <-ch:
			if got.ID != note.ID {
				t.Errorf("Subscriber %d: expected note %s, got %s", i, note.ID, got.ID)
			}
		default:
			t.Errorf("Subscriber %d: expected buffered event, got none", i)
		}
	}

	// После отписки канал закрыт и события не приходят
	events.Unsubscribe(ch1)
	if _, ok := <-ch1; ok {
		t.Error("Expected closed channel after Unsubscribe")
	}
}

func TestEventService_PublishDoesNotBlockOnFullChannel(t *testing.T) {
	events := NewEventService()

	ch := events.Subscribe()
	defer events.Unsubscribe(ch)

	// Переполняем буфер канала: лишние события должны отбрасываться без блокировки
	for i := 0; i < 25; i++ {
		events.Publish(model.Note{ID: "id", Title: "Flood"})
	}

	if len(ch) != cap(ch) {
		t.Errorf("Expected channel to be full (%d), got %d", cap(ch), len(ch))
	}
}

func TestEventService_UnsubscribeTwice(t *testing.T) {
	events := NewEventService()

	ch := events.Subscribe()
	events.Unsubscribe(ch)
	// Повторная отписка не должна паниковать
	events.Unsubscribe(ch)
}
