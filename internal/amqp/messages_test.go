package amqp

import "testing"

func TestRowEventJSONRoundTrip(t *testing.T) {
	e := NewRowEvent("Sales", OpAppend, "sale-7", "ae@corp.kr",
		[]string{"2024-03-01", "영업부", "홍길동"})

	if e.Timestamp.IsZero() {
		t.Fatal("NewRowEvent did not stamp a timestamp")
	}

	data, err := e.ToJSON()
	if err != nil {
		t.Fatalf("ToJSON: %v", err)
	}
	back, err := RowEventFromJSON(data)
	if err != nil {
		t.Fatalf("RowEventFromJSON: %v", err)
	}
	if back.Sheet != "Sales" || back.Op != OpAppend || back.RowRef != "sale-7" || back.Actor != "ae@corp.kr" {
		t.Fatalf("round trip = %+v", back)
	}
	if len(back.Cells) != 3 || back.Cells[2] != "홍길동" {
		t.Fatalf("cells = %v", back.Cells)
	}
	if !back.Timestamp.Equal(e.Timestamp) {
		t.Fatalf("timestamp drifted: %v vs %v", back.Timestamp, e.Timestamp)
	}
}

func TestRowEventFromJSONMalformed(t *testing.T) {
	if _, err := RowEventFromJSON([]byte("{not json")); err == nil {
		t.Fatal("expected error for malformed payload")
	}
}
