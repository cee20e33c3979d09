package parse

import (
	"reflect"
	"testing"
)

func TestIsChatExport(t *testing.T) {
	chat := []string{
		"[12/08/2025, 18:04:11] Al: liverpool 2 v 1 everton",
		"[12/08/2025, 18:05:42] Millsy: arsenal 0-0 tottenham",
	}
	if !IsChatExport(chat) {
		t.Fatalf("expected chat export to be detected")
	}

	plain := []string{
		"Alan Shaw",
		"liverpool 2 v 1 everton",
		"arsenal 0-0 tottenham",
	}
	if IsChatExport(plain) {
		t.Fatalf("plain list misdetected as chat export")
	}

	single := []string{"[12/08/2025, 18:04:11] Al: liverpool 2 v 1 everton"}
	if !IsChatExport(single) {
		t.Fatalf("single-line chat export not detected")
	}
}

func TestFlattenChatExport(t *testing.T) {
	ctx := testContext(t)

	lines := []string{
		"[12/08/2025, 18:04:11] Al: liverpool 2 v 1 everton",
		"[12/08/2025, 18:04:30] Al: arsenal 0-0 tottenham",
		"[12/08/2025, 18:05:42] Millsy: liverpool 3-1 everton",
	}

	got, skipped := ctx.FlattenChatExport(lines)
	if len(skipped) != 0 {
		t.Fatalf("unexpected skips: %+v", skipped)
	}

	want := []string{
		"Alan Shaw",
		"liverpool 2 v 1 everton",
		"arsenal 0-0 tottenham",
		"Ben Mills",
		"liverpool 3-1 everton",
	}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("unexpected flatten result:\nwant: %v\ngot:  %v", want, got)
	}
}

func TestFlattenChatExport_UnknownSenderSkipped(t *testing.T) {
	ctx := testContext(t)

	lines := []string{
		"[12/08/2025, 18:04:11] Stranger: liverpool 2 v 1 everton",
		"[12/08/2025, 18:05:42] Al: arsenal 1-0 tottenham",
	}

	got, skipped := ctx.FlattenChatExport(lines)
	if len(skipped) != 1 {
		t.Fatalf("expected 1 skipped line, got %+v", skipped)
	}
	want := []string{"Alan Shaw", "arsenal 1-0 tottenham"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("unexpected flatten result: %v", got)
	}
}

func TestFlattenChatExport_RosterNameAsSender(t *testing.T) {
	ctx := testContext(t)

	lines := []string{
		"[12/08/2025, 18:04:11] Carl Royce: liverpool 1-1 everton",
	}

	got, skipped := ctx.FlattenChatExport(lines)
	if len(skipped) != 0 {
		t.Fatalf("unexpected skips: %+v", skipped)
	}
	want := []string{"Carl Royce", "liverpool 1-1 everton"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("unexpected flatten result: %v", got)
	}
}
