package repository

import (
	"context"
	"errors"
	"log"
	"time"

	"merchstore/models"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

const sessionKeyPrefix = "session:"

const SessionTTL = 30 * time.Minute

type SessionRepository interface {
	CreateSession(username, role string) (sessionId string, err error)
	CheckSession(sessionId string) (bool, error)
	DeleteSession(sessionId string) (err error)
	RefreshSession(sessionId string, expirationTime time.Duration) (err error)
	GetSessionInfo(sessionId string) (username, role string, exists bool, err error)
}

type SessionRepo struct {
	rdb *redis.Client
	ctx context.Context
}

func NewSessionRepository(redis_conn *redis.Client, _ctx context.Context) (SessionRepository, error) {
	if redis_conn == nil {
		return nil, errors.New("conn must be non-nil")
	}
	err := redis_conn.Ping(_ctx).Err()
	if err != nil {
		return nil, err
	}
	return &SessionRepo{
		rdb: redis_conn,
		ctx: _ctx,
	}, nil
}

func (s *SessionRepo) CreateSession(username, role string) (sessionId string, err error) {
	sessionId = uuid.NewString()
	err = s.rdb.HSet(s.ctx, sessionKeyPrefix+sessionId, "username", username, "role", role).Err()
	if err != nil {
		log.Printf("CreateSession: %v", err)
		err = models.ErrServerError
		return
	}
	s.rdb.Expire(s.ctx, sessionKeyPrefix+sessionId, SessionTTL)
	return
}

func (s *SessionRepo) CheckSession(sessionId string) (bool, error) {
	exists, err := s.rdb.Exists(s.ctx, sessionKeyPrefix+sessionId).Result()
	if err != nil {
		log.Printf("CheckSession: %v", err)
		return false, models.ErrServerError
	}
	return exists > 0, nil
}

func (s *SessionRepo) DeleteSession(sessionId string) (err error) {
	err = s.rdb.Del(s.ctx, sessionKeyPrefix+sessionId).Err()
	if err != nil {
		log.Printf("DeleteSession: %v", err)
		err = models.ErrServerError
	}
	return
}

func (s *SessionRepo) RefreshSession(sessionId string, expirationTime time.Duration) (err error) {
	err = s.rdb.Expire(s.ctx, sessionKeyPrefix+sessionId, expirationTime).Err()
	if err != nil {
		log.Printf("RefreshSession: %v", err)
		err = models.ErrServerError
	}
	return
}

func (s *SessionRepo) GetSessionInfo(sessionId string) (username, role string, exists bool, err error) {
	exists, err = s.CheckSession(sessionId)
	if err != nil || !exists {
		return
	}
	val, e := s.rdb.HGetAll(s.ctx, sessionKeyPrefix+sessionId).Result()
	if e != nil {
		log.Printf("GetSessionInfo: %v", e)
		err = models.ErrServerError
		return
	}
	username = val["username"]
	role = val["role"]
	exists = true
	return
}
