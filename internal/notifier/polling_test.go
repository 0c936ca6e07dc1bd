package notifier

import (
	"reflect"
	"testing"
)

func TestDispatchUpdates_RoutesOnlyConfiguredChat(t *testing.T) {
	n := &Notifier{ChatID: "42"}

	var seen []string
	handler := func(cmd string) string {
		seen = append(seen, cmd)
		return ""
	}

	updates := []telegramUpdate{
		{UpdateID: 10, Message: &telegramMessage{Text: "/status", Chat: telegramChat{ID: 42}}},
		{UpdateID: 11, Message: &telegramMessage{Text: "/analyze TCS", Chat: telegramChat{ID: 999}}},
		{UpdateID: 12}, // channel post or edit, no message
		{UpdateID: 13, Message: &telegramMessage{Text: "  /watchlist  ", Chat: telegramChat{ID: 42}}},
	}

	offset := n.dispatchUpdates(updates, 0, handler)
	if offset != 14 {
		t.Errorf("expected offset to advance past every update, got %d", offset)
	}
	want := []string{"/status", "/watchlist"}
	if !reflect.DeepEqual(seen, want) {
		t.Errorf("expected commands %v from the configured chat only, got %v", want, seen)
	}
}
