package helpers

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/joshua-takyi/eventhub/internal/policy"
)

// Session is the record a client keeps locally after signing in.
type Session struct {
	LoggedIn    bool        `json:"isLoggedIn"`
	UserID      uint        `json:"currentUserId"`
	DisplayName string      `json:"currentUser"`
	Role        policy.Role `json:"userRole"`
}

func NewSession(userID uint, displayName string, role policy.Role) Session {
	return Session{
		LoggedIn:    true,
		UserID:      userID,
		DisplayName: displayName,
		Role:        role,
	}
}

func (s Session) Encode() ([]byte, error) {
	return json.Marshal(s)
}

// DecodeSession reads a stored session. An empty record is a logged-out
// session. A logged-in record without a user id predates numeric ids and
// cannot perform mutations, so it is downgraded to logged out.
func DecodeSession(raw []byte) (Session, error) {
	if len(strings.TrimSpace(string(raw))) == 0 {
		return Session{}, nil
	}
	var s Session
	if err := json.Unmarshal(raw, &s); err != nil {
		return Session{}, fmt.Errorf("invalid session record: %w", err)
	}
	if !s.LoggedIn || s.UserID == 0 {
		return Session{}, nil
	}
	s.Role = policy.ParseRole(string(s.Role))
	return s, nil
}
