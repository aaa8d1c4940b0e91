// internal/workers/chat/answer-question/session.go
package answerquestion

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"rural-assist/internal/models"
)

const sessionKeyPrefix = "rural:session:"

// sessionLocationKeys are carried from one turn to the next.
var sessionLocationKeys = []string{
	models.EntityPincode,
	models.EntityVillage,
	models.EntityDistrict,
	models.EntityState,
	models.EntityLocation,
	models.EntityLatitude,
	models.EntityLongitude,
	"lat",
	"long",
}

// SessionStore keeps conversation context in redis.
type SessionStore struct {
	client *redis.Client
	ttl    time.Duration
}

func NewSessionStore(client *redis.Client, ttl time.Duration) *SessionStore {
	return &SessionStore{client: client, ttl: ttl}
}

func sessionKey(id string) string {
	return sessionKeyPrefix + id
}

// Load returns nil without error when the session does not exist.
func (s *SessionStore) Load(ctx context.Context, id string) (*models.Session, error) {
	raw, err := s.client.Get(ctx, sessionKey(id)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("load session %s: %w", id, err)
	}

	var sess models.Session
	if err := json.Unmarshal(raw, &sess); err != nil {
		return nil, fmt.Errorf("decode session %s: %w", id, err)
	}
	return &sess, nil
}

// Save writes the session and refreshes its TTL.
func (s *SessionStore) Save(ctx context.Context, sess *models.Session) error {
	raw, err := json.Marshal(sess)
	if err != nil {
		return fmt.Errorf("encode session %s: %w", sess.ID, err)
	}
	if err := s.client.Set(ctx, sessionKey(sess.ID), raw, s.ttl).Err(); err != nil {
		return fmt.Errorf("save session %s: %w", sess.ID, err)
	}
	return nil
}

// mergeContext overlays the request context on the stored session context.
func mergeContext(sess *models.Session, reqCtx map[string]interface{}) map[string]interface{} {
	merged := map[string]interface{}{}
	if sess != nil {
		for k, v := range sess.Context() {
			merged[k] = v
		}
	}
	for k, v := range reqCtx {
		merged[k] = v
	}
	return merged
}

// sessionLocation collects location fields from the merged context and the
// classified entities. Entities win.
func sessionLocation(merged map[string]interface{}, entities models.Entities) map[string]interface{} {
	loc := map[string]interface{}{}
	for _, k := range sessionLocationKeys {
		if v, ok := merged[k]; ok && v != nil && v != "" {
			loc[k] = v
		}
		if v, ok := entities[k]; ok && v != nil && v != "" {
			loc[k] = v
		}
	}
	return loc
}
