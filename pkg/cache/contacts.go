package cache

import (
	"errors"
	"fmt"
	"sync"

	"github.com/gocql/gocql"
	log "github.com/sirupsen/logrus"

	"aptchat/config"
	"aptchat/pkg/consts"
	"aptchat/pkg/repo/driver/db"
)

type UserContactsCacheModel struct {
	sync.RWMutex
	cache map[string]map[string]bool
}

var UserContactsCache *UserContactsCacheModel

func NewUserContactsCache() *UserContactsCacheModel {
	return &UserContactsCacheModel{cache: make(map[string]map[string]bool)}
}

func InitUserContactsCache() *UserContactsCacheModel {
	UserContactsCache = NewUserContactsCache()

	query := fmt.Sprintf(
		`SELECT user_id, contact_id FROM %s.%s`,
		config.GetConfig().DB.Keyspace, consts.UserContactsTable,
	)

	var userID, contactID string

	iter := db.GetCassandraSession().Query(query).Iter()
	for iter.Scan(&userID, &contactID) {
		UserContactsCache.AddUserContactsCache(userID, contactID)
	}

	if err := iter.Close(); err != nil {
		if !errors.Is(err, gocql.ErrNotFound) {
			log.WithError(err).Error("failed to retrieve user contacts in init cache")
		}
	}

	log.Info("Successfully loaded users contacts cache")
	return UserContactsCache
}

func (c *UserContactsCacheModel) AddUserContactsCache(user, contact string) {
	c.Lock()
	defer c.Unlock()

	log.Debugf("Adding user %s as contact to user %s", contact, user)

	if _, ok := c.cache[user]; !ok {
		c.cache[user] = make(map[string]bool)
	}

	c.cache[user][contact] = true
}

func (c *UserContactsCacheModel) RemoveUserContactsCache(user, contact string) {
	c.Lock()
	defer c.Unlock()

	if _, ok := c.cache[user]; !ok {
		return
	}

	delete(c.cache[user], contact)
}

func (c *UserContactsCacheModel) IsUserInContactsCache(user, contact string) bool {
	c.RLock()
	defer c.RUnlock()

	if _, ok := c.cache[user]; !ok {
		return false
	}

	return c.cache[user][contact]
}
