package enums

import "testing"

func TestNormalizePhotoStatusCanonicalPassThrough(t *testing.T) {
	for _, status := range validPhotoStatuses {
		if got := NormalizePhotoStatus(string(status)); got != status {
			t.Fatalf("canonical %q changed to %q", status, got)
		}
	}
}

func TestNormalizePhotoStatusLegacyValues(t *testing.T) {
	cases := map[string]PhotoStatus{
		"editing_in_progress": PhotoStatusEditing,
		"completed":           PhotoStatusDelivered,
	}
	for raw, want := range cases {
		if got := NormalizePhotoStatus(raw); got != want {
			t.Fatalf("normalize %q: expected %q got %q", raw, want, got)
		}
	}
}

func TestNormalizePhotoStatusUnknownDefaultsToPending(t *testing.T) {
	for _, raw := range []string{"", "garbage", "DELIVERED", "Editing", "selection ready"} {
		if got := NormalizePhotoStatus(raw); got != PhotoStatusPending {
			t.Fatalf("normalize %q: expected pending got %q", raw, got)
		}
	}
}

func TestNormalizeVideoStatusCanonicalPassThrough(t *testing.T) {
	for _, status := range validVideoStatuses {
		if got := NormalizeVideoStatus(string(status)); got != status {
			t.Fatalf("canonical %q changed to %q", status, got)
		}
	}
}

func TestNormalizeVideoStatusLegacyValues(t *testing.T) {
	cases := map[string]VideoStatus{
		"in_progress":        VideoStatusEditing,
		"in_review":          VideoStatusReview,
		"revision_requested": VideoStatusReview,
		"approved":           VideoStatusFinal,
		"delivered":          VideoStatusFinal,
	}
	for raw, want := range cases {
		if got := NormalizeVideoStatus(raw); got != want {
			t.Fatalf("normalize %q: expected %q got %q", raw, want, got)
		}
	}
}

func TestNormalizeVideoStatusUnknownDefaultsToPending(t *testing.T) {
	for _, raw := range []string{"", "garbage", "FINAL", "done"} {
		if got := NormalizeVideoStatus(raw); got != VideoStatusPending {
			t.Fatalf("normalize %q: expected pending got %q", raw, got)
		}
	}
}

func TestParsePhotoStatusRejectsLegacy(t *testing.T) {
	if _, err := ParsePhotoStatus("editing_in_progress"); err == nil {
		t.Fatal("expected parse error for legacy value")
	}
}

func TestProjectTypeTracks(t *testing.T) {
	cases := []struct {
		pt    ProjectType
		photo bool
		video bool
	}{
		{ProjectTypePhotoShoot, true, false},
		{ProjectTypeVideoProject, false, true},
		{ProjectTypeHybrid, true, true},
	}
	for _, tc := range cases {
		if tc.pt.HasPhoto() != tc.photo || tc.pt.HasVideo() != tc.video {
			t.Fatalf("%s: unexpected track flags", tc.pt)
		}
	}
}

func TestShootStatusParse(t *testing.T) {
	status, err := ParseShootStatus("in_progress")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if status != ShootStatusInProgress {
		t.Fatalf("unexpected status %q", status)
	}
	if _, err := ParseShootStatus("archived"); err == nil {
		t.Fatal("expected parse error")
	}
}
