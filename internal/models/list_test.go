package models

import "testing"

func TestIsReservedListTitle(t *testing.T) {
	reserved := []string{"Visited", "visited", " VISITED ", "Saved", "Want To Go"}
	for _, title := range reserved {
		if !IsReservedListTitle(title) {
			t.Errorf("expected %q to be reserved", title)
		}
	}

	free := []string{"Date night", "Visited twice", ""}
	for _, title := range free {
		if IsReservedListTitle(title) {
			t.Errorf("expected %q not to be reserved", title)
		}
	}
}
