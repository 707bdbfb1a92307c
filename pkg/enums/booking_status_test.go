package enums

import "testing"

func TestBookingStatusIsValid(t *testing.T) {
	for _, status := range []BookingStatus{BookingStatusPending, BookingStatusConfirmed, BookingStatusCompleted, BookingStatusCancelled} {
		if !status.IsValid() {
			t.Fatalf("expected %s to be valid", status)
		}
	}
	if BookingStatus("rejected").IsValid() {
		t.Fatal("unknown status must not validate")
	}
}

func TestParseBookingStatus(t *testing.T) {
	status, err := ParseBookingStatus("confirmed")
	if err != nil {
		t.Fatalf("parse confirmed: %v", err)
	}
	if status != BookingStatusConfirmed {
		t.Fatalf("expected confirmed, got %s", status)
	}
	if _, err := ParseBookingStatus("nope"); err == nil {
		t.Fatal("expected error for unknown status")
	}
}
