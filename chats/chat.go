// Package chats is the per-hostel chat preview. Clients poll; there is no
// push transport.
package chats

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"sync"
	"time"

	"hostelhub/models"
)

const (
	maxHistory    = 200
	SenderStudent = "student"
	SenderOwner   = "owner"
)

var (
	ErrEmptyMessage = errors.New("message text is empty")
	ErrUnknownRoom  = errors.New("hostel not found")
)

// Hostels resolves a room id to the hostel it belongs to.
type Hostels interface {
	Get(id string) (models.Hostel, error)
}

var preview = []models.ChatMessage{
	{ID: "1", Text: "Hello! Is this hostel available?", Sender: SenderStudent},
	{ID: "2", Text: "Yes, it is available. How can I help you?", Sender: SenderOwner},
	{ID: "3", Text: "I want to know about the facilities.", Sender: SenderStudent},
	{ID: "4", Text: "We have WiFi, laundry, and meals included.", Sender: SenderOwner},
	{ID: "5", Text: "That sounds great! What is the monthly rent?", Sender: SenderStudent},
	{ID: "6", Text: "It is 5000 PKR per month.", Sender: SenderOwner},
}

type room struct {
	messages []models.ChatMessage
	nextID   int
}

type Store struct {
	mu      sync.Mutex
	rooms   map[string]*room
	hostels Hostels
	now     func() time.Time
}

// NewStore builds a chat store whose rooms are the hostels h knows about.
// A nil h accepts any room id.
func NewStore(h Hostels) *Store {
	return &Store{rooms: make(map[string]*room), hostels: h, now: time.Now}
}

func (s *Store) check(roomID string) error {
	if s.hostels == nil {
		return nil
	}
	if _, err := s.hostels.Get(roomID); err != nil {
		return fmt.Errorf("%w: %s", ErrUnknownRoom, roomID)
	}
	return nil
}

// Messages returns the room history. A room nobody has written to yet
// reads as the seeded preview without being stored.
func (s *Store) Messages(roomID string) ([]models.ChatMessage, error) {
	if err := s.check(roomID); err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if r, ok := s.rooms[roomID]; ok {
		return append([]models.ChatMessage(nil), r.messages...), nil
	}
	return append([]models.ChatMessage(nil), preview...), nil
}

// Send appends a student message and trims the oldest past the cap.
func (s *Store) Send(roomID, text string) (models.ChatMessage, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return models.ChatMessage{}, ErrEmptyMessage
	}
	if err := s.check(roomID); err != nil {
		return models.ChatMessage{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	r, ok := s.rooms[roomID]
	if !ok {
		r = &room{messages: append([]models.ChatMessage(nil), preview...), nextID: len(preview) + 1}
		s.rooms[roomID] = r
	}
	msg := models.ChatMessage{
		ID:        strconv.Itoa(r.nextID),
		Text:      text,
		Sender:    SenderStudent,
		Timestamp: s.now().Unix(),
	}
	r.nextID++
	r.messages = append(r.messages, msg)
	if over := len(r.messages) - maxHistory; over > 0 {
		r.messages = append([]models.ChatMessage(nil), r.messages[over:]...)
	}
	return msg, nil
}
