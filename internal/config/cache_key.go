package config

type CacheKeyStruct struct{}

func NewCacheKeyStruct() *CacheKeyStruct {
	return &CacheKeyStruct{}
}

// ActivityListKey returns the cache key for the public activity catalog.
func (r *CacheKeyStruct) ActivityListKey() string {
	return "activities:list"
}

// ActiveAnnouncementsKey returns the cache key for the public announcement list.
func (r *CacheKeyStruct) ActiveAnnouncementsKey() string {
	return "announcements:active"
}

// AnnouncementEventsChannel returns the Redis PubSub channel name on which
// announcement create/update/delete events are broadcast.
func (r *CacheKeyStruct) AnnouncementEventsChannel() string {
	return "announcements:events"
}

var CacheKey = NewCacheKeyStruct()
