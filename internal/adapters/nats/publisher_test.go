package natsadapter

import "testing"

func TestSubject(t *testing.T) {
	tests := map[string]string{
		"created": "patitas.animales.created",
		"updated": "patitas.animales.updated",
		"deleted": "patitas.animales.deleted",
	}
	for eventType, want := range tests {
		if got := Subject(eventType); got != want {
			t.Errorf("Subject(%q) = %q, want %q", eventType, got, want)
		}
	}
	if SubjectAll != "patitas.animales.>" {
		t.Errorf("unexpected wildcard subject %q", SubjectAll)
	}
}
