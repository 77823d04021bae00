package storage

import (
	"context"
	"path"
	"sort"
	"strconv"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tidwall/redcon"
)

type memoryEntry struct {
	value     []byte
	expiresAt time.Time
}

// memoryRedis serves the handful of commands the storage backend sends.
type memoryRedis struct {
	mu   sync.Mutex
	data map[string]memoryEntry
}

func (m *memoryRedis) live(key string) (memoryEntry, bool) {
	e, ok := m.data[key]
	if ok && !e.expiresAt.IsZero() && time.Now().After(e.expiresAt) {
		delete(m.data, key)
		return memoryEntry{}, false
	}
	return e, ok
}

func (m *memoryRedis) handle(conn redcon.Conn, cmd redcon.Command) {
	m.mu.Lock()
	defer m.mu.Unlock()

	args := cmd.Args
	switch strings.ToLower(string(args[0])) {
	case "ping":
		conn.WriteString("PONG")
	case "set":
		e := memoryEntry{value: append([]byte(nil), args[2]...)}
		for i := 3; i+1 < len(args); i += 2 {
			n, _ := strconv.Atoi(string(args[i+1]))
			switch strings.ToLower(string(args[i])) {
			case "ex":
				e.expiresAt = time.Now().Add(time.Duration(n) * time.Second)
			case "px":
				e.expiresAt = time.Now().Add(time.Duration(n) * time.Millisecond)
			}
		}
		m.data[string(args[1])] = e
		conn.WriteString("OK")
	case "get":
		e, ok := m.live(string(args[1]))
		if !ok {
			conn.WriteNull()
			return
		}
		conn.WriteBulk(e.value)
	case "del":
		removed := 0
		for _, k := range args[1:] {
			if _, ok := m.live(string(k)); ok {
				delete(m.data, string(k))
				removed++
			}
		}
		conn.WriteInt(removed)
	case "pttl":
		e, ok := m.live(string(args[1]))
		switch {
		case !ok:
			conn.WriteInt(-2)
		case e.expiresAt.IsZero():
			conn.WriteInt(-1)
		default:
			conn.WriteInt64(time.Until(e.expiresAt).Milliseconds())
		}
	case "scan":
		pattern := "*"
		for i := 2; i+1 < len(args); i += 2 {
			if strings.ToLower(string(args[i])) == "match" {
				pattern = string(args[i+1])
			}
		}
		var keys []string
		for k := range m.data {
			if matched, _ := path.Match(pattern, k); matched {
				if _, ok := m.live(k); ok {
					keys = append(keys, k)
				}
			}
		}
		sort.Strings(keys)
		conn.WriteArray(2)
		conn.WriteBulkString("0")
		conn.WriteArray(len(keys))
		for _, k := range keys {
			conn.WriteBulkString(k)
		}
	default:
		conn.WriteError("ERR unknown command '" + string(args[0]) + "'")
	}
}

func startMemoryRedis(t *testing.T) *redis.Client {
	t.Helper()
	m := &memoryRedis{data: map[string]memoryEntry{}}
	srv := redcon.NewServer("127.0.0.1:0", m.handle, nil, nil)

	started := make(chan error, 1)
	go func() {
		_ = srv.ListenServeAndSignal(started)
	}()
	require.NoError(t, <-started)
	t.Cleanup(func() { _ = srv.Close() })

	client := redis.NewClient(&redis.Options{
		Addr:             srv.Addr().String(),
		Protocol:         2,
		DisableIndentity: true,
	})
	t.Cleanup(func() { _ = client.Close() })
	return client
}

func TestRedisStorageService(t *testing.T) {
	client := startMemoryRedis(t)
	exerciseStorage(t, NewRedisStorageService(client, "mailpdf/", time.Hour))
}

func TestRedisStorageService_TTL(t *testing.T) {
	client := startMemoryRedis(t)
	s := NewRedisStorageService(client, "mailpdf/", time.Hour)
	ctx := context.Background()

	require.NoError(t, s.Upload(ctx, "abc.pdf", []byte("pdf"), "application/pdf"))
	require.NoError(t, client.Set(ctx, "other/key", "x", 0).Err())

	remaining, err := client.PTTL(ctx, "mailpdf/abc.pdf").Result()
	require.NoError(t, err)
	assert.InDelta(t, time.Hour.Seconds(), remaining.Seconds(), 5)

	objects, err := s.List(ctx)
	require.NoError(t, err)
	require.Len(t, objects, 1)
	assert.Equal(t, "abc.pdf", objects[0].Key)
	assert.WithinDuration(t, time.Now(), objects[0].ModifiedAt, 5*time.Second)
}
