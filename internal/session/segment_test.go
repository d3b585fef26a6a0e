package session

import (
	"reflect"
	"testing"
)

func photoEvent(fileID string) CollectedEvent {
	return CollectedEvent{Photo: &PhotoRef{FileID: fileID, Kind: PhotoKindPhoto}}
}

func textEvent(text string) CollectedEvent {
	return CollectedEvent{Text: text}
}

func TestSegmentPhotoOpensPosition(t *testing.T) {
	events := []CollectedEvent{
		photoEvent("a"),
		textEvent("Плов"),
		textEvent("Цена: 60000"),
		photoEvent("b"),
		textEvent("Лагман"),
	}

	positions := Segment(events)
	if len(positions) != 2 {
		t.Fatalf("positions = %d, want 2", len(positions))
	}
	if positions[0].Photo.FileID != "a" {
		t.Errorf("first photo = %q, want %q", positions[0].Photo.FileID, "a")
	}
	if want := []string{"Плов", "Цена: 60000"}; !reflect.DeepEqual(positions[0].Texts, want) {
		t.Errorf("first texts = %v, want %v", positions[0].Texts, want)
	}
	if want := []string{"Лагман"}; !reflect.DeepEqual(positions[1].Texts, want) {
		t.Errorf("second texts = %v, want %v", positions[1].Texts, want)
	}
}

func TestSegmentDropsTextBeforeFirstPhoto(t *testing.T) {
	events := []CollectedEvent{
		textEvent("бесхозный текст"),
		photoEvent("a"),
		textEvent("Плов"),
	}

	positions := Segment(events)
	if len(positions) != 1 {
		t.Fatalf("positions = %d, want 1", len(positions))
	}
	if want := []string{"Плов"}; !reflect.DeepEqual(positions[0].Texts, want) {
		t.Errorf("texts = %v, want %v", positions[0].Texts, want)
	}
}

func TestSegmentPhotoOnlyPositions(t *testing.T) {
	positions := Segment([]CollectedEvent{photoEvent("a"), photoEvent("b")})
	if len(positions) != 2 {
		t.Fatalf("positions = %d, want 2", len(positions))
	}
	for i, pos := range positions {
		if len(pos.Texts) != 0 {
			t.Errorf("position %d texts = %v, want empty", i, pos.Texts)
		}
	}
}

func TestSegmentEmptyBuffer(t *testing.T) {
	if positions := Segment(nil); len(positions) != 0 {
		t.Fatalf("positions = %d, want 0", len(positions))
	}
}

func TestSegmentIdempotent(t *testing.T) {
	events := []CollectedEvent{photoEvent("a"), textEvent("Плов"), photoEvent("b")}

	first := Segment(events)
	second := Segment(events)
	if !reflect.DeepEqual(first, second) {
		t.Fatal("segmenting the same buffer twice gave different positions")
	}
}
