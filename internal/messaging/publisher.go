package messaging

import (
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
)

const (
	SubjectWorldChange = "buildsystem.world.change"
	SubjectCommand     = "buildsystem.command"
	SubjectPresence    = "buildsystem.player.presence"
)

// PlayerSubject is the subject a player's client listens on.
func PlayerSubject(id uuid.UUID) string {
	return fmt.Sprintf("player-%s", id)
}

// WorldChange reports that a player has arrived in a world.
type WorldChange struct {
	PlayerID uuid.UUID `json:"player_id"`
	World    string    `json:"world"`
}

// CommandRequest is a command line typed by a player.
type CommandRequest struct {
	PlayerID uuid.UUID `json:"player_id"`
	Line     string    `json:"line"`
}

// Presence reports a player joining or leaving the server.
type Presence struct {
	PlayerID uuid.UUID `json:"player_id"`
	Name     string    `json:"name"`
	Online   bool      `json:"online"`
}

// NatsPublisher publishes events and per-player messages.
type NatsPublisher struct {
	server *NatsServer
}

// NewNatsPublisher wraps a NatsServer for per-player message delivery.
func NewNatsPublisher(server *NatsServer) *NatsPublisher {
	return &NatsPublisher{server: server}
}

// Notify sends msg to the player's channel.
func (p *NatsPublisher) Notify(id uuid.UUID, msg string) error {
	return p.server.Publish(PlayerSubject(id), []byte(msg))
}

// PublishWorldChange announces that a player changed world.
func (p *NatsPublisher) PublishWorldChange(ev WorldChange) error {
	data, err := json.Marshal(ev)
	if err != nil {
		return fmt.Errorf("marshalling world change: %w", err)
	}
	return p.server.Publish(SubjectWorldChange, data)
}

// PublishCommand forwards a typed command line to the command listener.
func (p *NatsPublisher) PublishCommand(req CommandRequest) error {
	data, err := json.Marshal(req)
	if err != nil {
		return fmt.Errorf("marshalling command: %w", err)
	}
	return p.server.Publish(SubjectCommand, data)
}

func (p *NatsPublisher) PublishPresence(ev Presence) error {
	data, err := json.Marshal(ev)
	if err != nil {
		return fmt.Errorf("marshalling presence: %w", err)
	}
	return p.server.Publish(SubjectPresence, data)
}
