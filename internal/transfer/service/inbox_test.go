package service

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	transferDomain "github.com/allisson/securetransfer/internal/transfer/domain"
)

func TestInbox(t *testing.T) {
	ctx := context.Background()
	inbox := NewInbox(3)

	for i := 0; i < 5; i++ {
		inbox.Deliver(ctx, transferDomain.NewSecureMessage(uuid.Must(uuid.NewV7()), []byte(fmt.Sprint(i)), time.Now()))
	}

	assert.Equal(t, 3, inbox.Len())
	assert.Equal(t, 3, inbox.Capacity())

	all := inbox.List(0, 10)
	contents := make([]string, len(all))
	for i, m := range all {
		contents[i] = m.Content
	}
	assert.Equal(t, []string{"4", "3", "2"}, contents)

	page := inbox.List(1, 1)
	assert.Len(t, page, 1)
	assert.Equal(t, "3", page[0].Content)

	assert.Empty(t, inbox.List(5, 10))
}

func TestInbox_MinimumCapacity(t *testing.T) {
	inbox := NewInbox(0)
	inbox.Deliver(context.Background(), transferDomain.SecureMessage{Content: "a"})
	inbox.Deliver(context.Background(), transferDomain.SecureMessage{Content: "b"})
	assert.Equal(t, 1, inbox.Len())
	assert.Equal(t, "b", inbox.List(0, 1)[0].Content)
}
