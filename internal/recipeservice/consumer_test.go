package recipeservice

import (
	"context"
	"encoding/json"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/stretchr/testify/assert"
	"github.com/sushihentaime/recipehub/internal/common"
)

type ackResult struct {
	acked   bool
	nacked  bool
	requeue bool
}

type fakeAcknowledger struct {
	mu     sync.Mutex
	result ackResult
}

func (a *fakeAcknowledger) Ack(tag uint64, multiple bool) error {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.result.acked = true
	return nil
}

func (a *fakeAcknowledger) Nack(tag uint64, multiple, requeue bool) error {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.result.nacked = true
	a.result.requeue = requeue
	return nil
}

func (a *fakeAcknowledger) get() ackResult {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.result
}

func (a *fakeAcknowledger) Reject(tag uint64, requeue bool) error {
	return a.Nack(tag, false, requeue)
}

func newEventID(t *testing.T) string {
	t.Helper()
	return uuid.NewString()
}

func delivery(t *testing.T, body any, redelivered bool) (amqp.Delivery, *fakeAcknowledger) {
	t.Helper()

	var data []byte
	switch b := body.(type) {
	case string:
		data = []byte(b)
	default:
		var err error
		data, err = json.Marshal(b)
		assert.NoError(t, err)
	}

	ack := &fakeAcknowledger{}
	return amqp.Delivery{Acknowledger: ack, Body: data, Redelivered: redelivered}, ack
}

func TestHandleGenerated(t *testing.T) {
	db := common.TestDB("file://../../migrations", t)
	user := common.TestUser(t, db, "Anna", "anna@example.com")
	s := newTestService(db, nil, nil)
	ctx := context.Background()

	record := Record{
		EventID:         newEventID(t),
		UserID:          user,
		Ingredients:     []string{"eggs"},
		GeneratedRecipe: GeneratedRecipe{Title: "Omelette"},
		CreatedAt:       time.Now().UTC().Truncate(time.Second),
	}

	countRows := func() int {
		var n int
		assert.NoError(t, db.QueryRow("SELECT COUNT(*) FROM ai_recipes WHERE user_id = $1", user).Scan(&n))
		return n
	}

	testCases := []struct {
		name        string
		body        any
		redelivered bool
		want        ackResult
		wantRows    int
	}{
		{name: "stored", body: record, want: ackResult{acked: true}, wantRows: 1},
		{name: "redelivered duplicate", body: record, redelivered: true, want: ackResult{acked: true}, wantRows: 1},
		{name: "malformed", body: "{not json", want: ackResult{nacked: true}, wantRows: 1},
		{
			name:     "unknown user requeued once",
			body:     Record{EventID: newEventID(t), UserID: user + 1000, CreatedAt: record.CreatedAt},
			want:     ackResult{nacked: true, requeue: true},
			wantRows: 1,
		},
		{
			name:        "unknown user dropped on redelivery",
			body:        Record{EventID: newEventID(t), UserID: user + 1000, CreatedAt: record.CreatedAt},
			redelivered: true,
			want:        ackResult{nacked: true},
			wantRows:    1,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			msg, ack := delivery(t, tc.body, tc.redelivered)
			s.handleGenerated(ctx, msg)

			assert.Equal(t, tc.want, ack.get())
			assert.Equal(t, tc.wantRows, countRows())
		})
	}
}

type stubConsumer struct {
	msgs chan amqp.Delivery
}

func (c *stubConsumer) Consume(key common.BindingKey, exchange common.Exchange, queue common.Queue) (<-chan amqp.Delivery, error) {
	return c.msgs, nil
}

func TestConsumeGenerated(t *testing.T) {
	db := common.TestDB("file://../../migrations", t)
	user := common.TestUser(t, db, "Anna", "anna@example.com")
	s := newTestService(db, nil, nil)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	mc := &stubConsumer{msgs: make(chan amqp.Delivery, 1)}
	assert.NoError(t, s.ConsumeGenerated(ctx, mc))

	msg, ack := delivery(t, Record{
		EventID:         newEventID(t),
		UserID:          user,
		GeneratedRecipe: GeneratedRecipe{Title: "Toast"},
		CreatedAt:       time.Now().UTC(),
	}, false)
	mc.msgs <- msg

	assert.Eventually(t, func() bool {
		var n int
		err := db.QueryRow("SELECT COUNT(*) FROM ai_recipes WHERE user_id = $1", user).Scan(&n)
		return err == nil && n == 1
	}, 5*time.Second, 50*time.Millisecond)

	assert.Eventually(t, func() bool { return ack.get().acked }, time.Second, 10*time.Millisecond)
}
