package events_test

import (
	"os"
	"testing"
	"time"

	"github.com/nats-io/nats.go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"lascala/internal/events"
)

func TestRecorder(t *testing.T) {
	var r events.Recorder
	require.NoError(t, r.Publish(events.ListingSubmitted, events.ListingEvent{ListingID: "l1"}))
	require.NoError(t, r.Publish(events.ListingReviewed, events.ListingEvent{ListingID: "l1"}))
	assert.Equal(t, []string{"listing.submitted", "listing.reviewed"}, r.Subjects())
}

func TestNATS_Publish(t *testing.T) {
	url := os.Getenv("NATS_URL")
	if url == "" {
		t.Skip("NATS_URL not set")
	}
	sub, err := nats.Connect(url)
	require.NoError(t, err)
	defer sub.Close()
	ch := make(chan *nats.Msg, 1)
	s, err := sub.ChanSubscribe(events.ListingSubmitted, ch)
	require.NoError(t, err)
	defer s.Unsubscribe()
	require.NoError(t, sub.Flush())

	pub, err := events.Connect(url)
	require.NoError(t, err)
	defer pub.Close()
	require.NoError(t, pub.Publish(events.ListingSubmitted, events.ListingEvent{ListingID: "l1"}))

	select {
	case m := <-ch:
		assert.Contains(t, string(m.Data), `"listing_id":"l1"`)
	case <-time.After(2 * time.Second):
		t.Fatal("no message")
	}
}
