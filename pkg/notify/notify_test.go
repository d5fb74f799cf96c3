package notify

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/rs/zerolog"
)

func TestLogNotifier(t *testing.T) {
	var buf bytes.Buffer
	n := NewLogNotifier(zerolog.New(&buf))

	n.Notify("default-channel-id", "FETCHING DATA")

	var entry map[string]any
	if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
		t.Fatalf("log output is not JSON: %v (%s)", err, buf.String())
	}
	if entry["channel_id"] != "default-channel-id" {
		t.Errorf("channel_id = %v", entry["channel_id"])
	}
	if entry["message"] != "FETCHING DATA" {
		t.Errorf("message = %v", entry["message"])
	}
}

func TestRecorder(t *testing.T) {
	var r Recorder

	if _, ok := r.Last(); ok {
		t.Error("Last() on empty recorder should report false")
	}

	r.Notify("a", "one")
	r.Notify("b", "two")

	msgs := r.Messages()
	if len(msgs) != 2 {
		t.Fatalf("len(Messages()) = %d, want 2", len(msgs))
	}
	last, ok := r.Last()
	if !ok || last != (Message{ChannelID: "b", Text: "two"}) {
		t.Errorf("Last() = %+v, %v", last, ok)
	}
}

func TestMulti(t *testing.T) {
	var first, second Recorder
	var calls int
	m := Multi{&first, nil, &second, Func(func(string, string) { calls++ })}

	m.Notify("ch", "hello")

	if len(first.Messages()) != 1 || len(second.Messages()) != 1 {
		t.Error("every recorder should receive the message")
	}
	if calls != 1 {
		t.Errorf("func sink calls = %d, want 1", calls)
	}
}
