package events

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeWriter struct {
	msgs   []kafka.Message
	err    error
	closed bool
}

func (f *fakeWriter) WriteMessages(_ context.Context, msgs ...kafka.Message) error {
	if f.err != nil {
		return f.err
	}
	f.msgs = append(f.msgs, msgs...)
	return nil
}

func (f *fakeWriter) Close() error {
	f.closed = true
	return nil
}

func TestProducer_PublishEvent(t *testing.T) {
	fw := &fakeWriter{}
	p := &Producer{w: fw, timeout: time.Second}

	err := p.PublishEvent(context.Background(), TopicOrders, "alice", NewEnvelope("order_created", map[string]string{"orderNumber": "ORD-1-ABCDE"}))
	require.NoError(t, err)
	require.Len(t, fw.msgs, 1)

	msg := fw.msgs[0]
	assert.Equal(t, TopicOrders, msg.Topic)
	assert.Equal(t, "alice", string(msg.Key))

	var env struct {
		Type string            `json:"type"`
		Data map[string]string `json:"data"`
	}
	require.NoError(t, json.Unmarshal(msg.Value, &env))
	assert.Equal(t, "order_created", env.Type)
	assert.Equal(t, "ORD-1-ABCDE", env.Data["orderNumber"])

	require.NoError(t, p.Close())
	assert.True(t, fw.closed)
}

func TestProducer_Errors(t *testing.T) {
	p := &Producer{w: &fakeWriter{err: errors.New("broker down")}, timeout: time.Second}
	assert.ErrorContains(t, p.PublishEvent(context.Background(), TopicCart, "k", 1), "broker down")

	assert.ErrorContains(t, p.PublishEvent(context.Background(), TopicCart, "k", func() {}), "json.Marshal")
}

func TestNew_NoBrokers(t *testing.T) {
	pub := New(nil)
	assert.IsType(t, Nop{}, pub)
	assert.NoError(t, pub.PublishEvent(context.Background(), TopicUsers, "k", nil))
}
