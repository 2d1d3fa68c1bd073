package chat

import (
	"testing"

	"github.com/google/uuid"

	"github.com/yungbote/scrapbook-backend/internal/logger"
)

func newTestHub(t *testing.T) *Hub {
	t.Helper()
	log, err := logger.New("development")
	if err != nil {
		t.Fatalf("logger init: %v", err)
	}
	return NewHub(log)
}

func TestHubDeliversToAllUserConnections(t *testing.T) {
	hub := newTestHub(t)
	userID := uuid.New()

	first := hub.NewClient(userID)
	second := hub.NewClient(userID)
	hub.AddClient(first)
	hub.AddClient(second)

	hub.SendToUser(userID, WireMessage{Event: EventPrivateMessage, Text: "hi"})

	for _, c := range []*Client{first, second} {
		select {
		case msg := <-c.Outbound:
			if msg.Text != "hi" {
				t.Fatalf("unexpected text: %q", msg.Text)
			}
		default:
			t.Fatalf("client %s received nothing", c.ID)
		}
	}
}

func TestHubDoesNotDeliverToOtherUsers(t *testing.T) {
	hub := newTestHub(t)

	receiver := hub.NewClient(uuid.New())
	bystander := hub.NewClient(uuid.New())
	hub.AddClient(receiver)
	hub.AddClient(bystander)

	hub.SendToUser(receiver.UserID, WireMessage{Event: EventPrivateMessage, Text: "private"})

	select {
	case <-bystander.Outbound:
		t.Fatalf("bystander should not receive a private message")
	default:
	}
	select {
	case <-receiver.Outbound:
	default:
		t.Fatalf("receiver should have gotten the message")
	}
}

func TestHubRemoveClientStopsDelivery(t *testing.T) {
	hub := newTestHub(t)
	client := hub.NewClient(uuid.New())
	hub.AddClient(client)
	hub.RemoveClient(client)

	hub.SendToUser(client.UserID, WireMessage{Event: EventPrivateMessage, Text: "late"})

	select {
	case <-client.Outbound:
		t.Fatalf("removed client should not receive messages")
	default:
	}

	select {
	case <-client.Done():
	default:
		t.Fatalf("removed client should be marked done")
	}
}

func TestHubBroadcastReachesEveryone(t *testing.T) {
	hub := newTestHub(t)
	a := hub.NewClient(uuid.New())
	b := hub.NewClient(uuid.New())
	hub.AddClient(a)
	hub.AddClient(b)

	hub.Broadcast(WireMessage{Event: EventMessage, Text: "hello all"})

	for _, c := range []*Client{a, b} {
		select {
		case msg := <-c.Outbound:
			if msg.Event != EventMessage {
				t.Fatalf("unexpected event: %q", msg.Event)
			}
		default:
			t.Fatalf("client %s received nothing", c.ID)
		}
	}
}
