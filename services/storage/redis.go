package storage

import (
	"context"
	"time"

	"github.com/opentracing/opentracing-go"
	"github.com/pkg/errors"
	"github.com/redis/go-redis/v9"

	"github.com/customeros/mailpdf/interfaces"
	mperrors "github.com/customeros/mailpdf/internal/errors"
	"github.com/customeros/mailpdf/internal/tracing"
)

// RedisStorageService keeps outputs as redis strings that expire after the
// configured TTL, so it needs no sweeping.
type RedisStorageService struct {
	client    *redis.Client
	keyPrefix string
	ttl       time.Duration
}

func NewRedisStorageService(client *redis.Client, keyPrefix string, ttl time.Duration) *RedisStorageService {
	return &RedisStorageService{client: client, keyPrefix: keyPrefix, ttl: ttl}
}

// NewRedisClient connects to the redis server at url and checks it answers.
func NewRedisClient(ctx context.Context, url string) (*redis.Client, error) {
	opts, err := redis.ParseURL(url)
	if err != nil {
		return nil, errors.Wrap(err, "parse redis url")
	}
	client := redis.NewClient(opts)
	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, errors.Wrap(err, "ping redis")
	}
	return client, nil
}

func (s *RedisStorageService) Upload(ctx context.Context, key string, data []byte, _ string) error {
	span, ctx := opentracing.StartSpanFromContext(ctx, "RedisStorageService.Upload")
	defer span.Finish()
	tracing.SetDefaultStorageSpanTags(ctx, span)
	tracing.TagEntity(span, key)

	if err := validateKey(key); err != nil {
		tracing.TraceErr(span, err)
		return err
	}
	if err := s.client.Set(ctx, s.keyPrefix+key, data, s.ttl).Err(); err != nil {
		tracing.TraceErr(span, err)
		return errors.Wrap(err, "redis set")
	}
	return nil
}

func (s *RedisStorageService) Download(ctx context.Context, key string) ([]byte, error) {
	span, ctx := opentracing.StartSpanFromContext(ctx, "RedisStorageService.Download")
	defer span.Finish()
	tracing.SetDefaultStorageSpanTags(ctx, span)
	tracing.TagEntity(span, key)

	if err := validateKey(key); err != nil {
		return nil, err
	}
	data, err := s.client.Get(ctx, s.keyPrefix+key).Bytes()
	if err == redis.Nil {
		return nil, errors.Wrap(mperrors.ErrOutputNotFound, key)
	}
	if err != nil {
		tracing.TraceErr(span, err)
		return nil, errors.Wrap(err, "redis get")
	}
	return data, nil
}

func (s *RedisStorageService) Delete(ctx context.Context, key string) error {
	span, ctx := opentracing.StartSpanFromContext(ctx, "RedisStorageService.Delete")
	defer span.Finish()
	tracing.SetDefaultStorageSpanTags(ctx, span)
	tracing.TagEntity(span, key)

	if err := validateKey(key); err != nil {
		return err
	}
	if err := s.client.Del(ctx, s.keyPrefix+key).Err(); err != nil {
		tracing.TraceErr(span, err)
		return errors.Wrap(err, "redis del")
	}
	return nil
}

// List reports stored outputs. The modification time is derived from the
// remaining TTL.
func (s *RedisStorageService) List(ctx context.Context) ([]interfaces.StoredObject, error) {
	span, ctx := opentracing.StartSpanFromContext(ctx, "RedisStorageService.List")
	defer span.Finish()
	tracing.SetDefaultStorageSpanTags(ctx, span)

	now := time.Now()
	var objects []interfaces.StoredObject
	iter := s.client.Scan(ctx, 0, s.keyPrefix+"*", 100).Iterator()
	for iter.Next(ctx) {
		fullKey := iter.Val()
		remaining, err := s.client.PTTL(ctx, fullKey).Result()
		if err != nil {
			tracing.TraceErr(span, err)
			return nil, errors.Wrap(err, "redis pttl")
		}
		obj := interfaces.StoredObject{Key: fullKey[len(s.keyPrefix):]}
		if remaining > 0 && s.ttl > 0 {
			obj.ModifiedAt = now.Add(remaining - s.ttl)
		}
		objects = append(objects, obj)
	}
	if err := iter.Err(); err != nil {
		tracing.TraceErr(span, err)
		return nil, errors.Wrap(err, "redis scan")
	}
	return objects, nil
}
