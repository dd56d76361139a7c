package cache

import (
	"sync"
	"time"

	gocache "github.com/Code-Hex/go-generics-cache"
)

const ttl = time.Minute * 5

var lock = sync.Mutex{}
var store = gocache.New[string, any]()

func Get[T any](key string) *T {
	v, ok := store.Get(key)
	if !ok {
		return nil
	}
	return v.(*T)
}

func Set[T any](key string, value *T) {
	lock.Lock()
	defer lock.Unlock()
	store.Set(key, value, gocache.WithExpiration(ttl))
}

func GetOrSet[T any](key string, factory func() (*T, error)) (*T, error) {
	v := Get[T](key)
	if v != nil {
		return v, nil
	}
	v, err := factory()
	if err != nil {
		return nil, err
	}
	Set(key, v)
	return v, nil
}
