package events

import (
	"context"
	"errors"
	"os"
	"testing"
	"time"

	"github.com/nats-io/nats.go"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type failingPublisher struct{}

func (failingPublisher) Publish(context.Context, string, string, interface{}) error {
	return errors.New("boom")
}

func TestInstrumented(t *testing.T) {
	reg := prometheus.NewRegistry()
	ok := NewInstrumented(Nop{}, reg)

	require.NoError(t, ok.Publish(context.Background(), PostLiked, "u1", nil))
	require.NoError(t, ok.Publish(context.Background(), PostLiked, "u2", nil))
	assert.Equal(t, 2.0, testutil.ToFloat64(ok.published.WithLabelValues(PostLiked)))

	bad := NewInstrumented(failingPublisher{}, prometheus.NewRegistry())
	assert.Error(t, bad.Publish(context.Background(), PostCreated, "u1", nil))
	assert.Equal(t, 1.0, testutil.ToFloat64(bad.failed.WithLabelValues(PostCreated)))
	assert.Equal(t, 0.0, testutil.ToFloat64(bad.published.WithLabelValues(PostCreated)))
}

func TestNATSPublisher_Subject(t *testing.T) {
	assert.Equal(t, "smapp.post.created", (&NATSPublisher{prefix: "smapp"}).Subject(PostCreated))
	assert.Equal(t, "post.created", (&NATSPublisher{}).Subject(PostCreated))
}

func TestNATSPublisher_Publish(t *testing.T) {
	url := os.Getenv("SMAPP_TEST_NATS_URL")
	if url == "" {
		t.Skip("SMAPP_TEST_NATS_URL not set")
	}

	pub, err := Connect(url, "smapp_test")
	require.NoError(t, err)
	defer pub.Close()

	sub, err := pub.conn.SubscribeSync("smapp_test.>")
	require.NoError(t, err)

	require.NoError(t, pub.Publish(context.Background(), PostCreated, "u1", map[string]string{"post_id": "p1"}))

	var msg *nats.Msg
	msg, err = sub.NextMsg(2 * time.Second)
	require.NoError(t, err)
	assert.Equal(t, "smapp_test.post.created", msg.Subject)
	assert.Contains(t, string(msg.Data), `"actor_id":"u1"`)
}

func TestNATSPublisher_CancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	err := (&NATSPublisher{}).Publish(ctx, PostCreated, "u1", nil)
	assert.ErrorIs(t, err, context.Canceled)
}
