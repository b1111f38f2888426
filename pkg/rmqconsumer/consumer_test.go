package rmqconsumer

import (
	"encoding/json"
	"testing"

	"github.com/rabbitmq/amqp091-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"excel-analytics-api/internal/infrastructure/mq"
)

func Test_delivery_Table(t *testing.T) {
	encode := func(e mq.Event) []byte {
		b, err := json.Marshal(e)
		require.NoError(t, err)
		return b
	}

	type tc struct {
		name       string
		routingKey string
		body       []byte
		wantErr    bool
		wantAction string
	}
	cases := []tc{
		{
			name:       "user registered",
			routingKey: mq.UserRegistered,
			body:       encode(mq.NewEvent(mq.UserRegistered, "u1", map[string]any{"email": "a@b.co"})),
			wantAction: mq.UserRegistered,
		},
		{
			name:       "file uploaded",
			routingKey: mq.FileUploaded,
			body:       encode(mq.NewEvent(mq.FileUploaded, "u1", map[string]any{"filename": "q1.csv"})),
			wantAction: mq.FileUploaded,
		},
		{
			name:       "garbage body",
			routingKey: mq.FileDeleted,
			body:       []byte("{not json"),
			wantErr:    true,
		},
	}

	for _, tt := range cases {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			core, logs := observer.New(zapcore.InfoLevel)
			c := &Consumer{log: zap.New(core)}

			err := c.delivery(amqp091.Delivery{RoutingKey: tt.routingKey, Body: tt.body})
			if tt.wantErr {
				require.Error(t, err)
				assert.Equal(t, 0, logs.Len())
				return
			}
			require.NoError(t, err)

			entries := logs.FilterMessage("lifecycle event").All()
			require.Len(t, entries, 1)
			fields := entries[0].ContextMap()
			assert.Equal(t, tt.routingKey, fields["routing_key"])
			assert.Equal(t, tt.wantAction, fields["action"])
			assert.Equal(t, "u1", fields["user_id"])
		})
	}
}
