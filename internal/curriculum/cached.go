package curriculum

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"go.uber.org/zap"
)

// Cache 缓存读写接口，pkg/redis.Client 是其生产实现
type Cache interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key, value string, ttl time.Duration) error
}

// CachedProvider 带缓存的培养方案提供方装饰器
// 缓存未命中时透传到内层提供方，命中结果按 TTL 回写；
// 缓存读写失败只记日志，不影响查询结果
type CachedProvider struct {
	inner  Provider
	cache  Cache
	ttl    time.Duration
	logger *zap.Logger
}

// NewCachedProvider 创建缓存装饰提供方
func NewCachedProvider(inner Provider, cache Cache, ttl time.Duration, logger *zap.Logger) *CachedProvider {
	return &CachedProvider{inner: inner, cache: cache, ttl: ttl, logger: logger}
}

func cacheKey(major string) string {
	return "curriculum:" + major
}

// Requirements 先查缓存，未命中时回源并回写
func (p *CachedProvider) Requirements(ctx context.Context, major string) (*Degree, error) {
	key := cacheKey(major)

	if cached, err := p.cache.Get(ctx, key); err != nil {
		p.logger.Warn("培养方案缓存读取失败", zap.String("major", major), zap.Error(err))
	} else if cached != "" {
		var degree Degree
		if err := json.Unmarshal([]byte(cached), &degree); err == nil {
			return &degree, nil
		}
		p.logger.Warn("培养方案缓存内容损坏，回源查询", zap.String("major", major))
	}

	degree, err := p.inner.Requirements(ctx, major)
	if err != nil {
		// 专业不存在属正常业务结果，不缓存负向结果
		if errors.Is(err, ErrMajorNotFound) {
			return nil, err
		}
		return nil, err
	}

	if data, err := json.Marshal(degree); err == nil {
		if err := p.cache.Set(ctx, key, string(data), p.ttl); err != nil {
			p.logger.Warn("培养方案缓存写入失败", zap.String("major", major), zap.Error(err))
		}
	}

	return degree, nil
}

// FallbackProvider 回退提供方：主提供方失败时切换到备用提供方
// 典型组合为 HTTPProvider 主 + StaticProvider 备
type FallbackProvider struct {
	primary  Provider
	fallback Provider
	logger   *zap.Logger
}

// NewFallbackProvider 创建回退提供方
func NewFallbackProvider(primary, fallback Provider, logger *zap.Logger) *FallbackProvider {
	return &FallbackProvider{primary: primary, fallback: fallback, logger: logger}
}

// Requirements 主提供方查询失败（非"专业不存在"）时回退到备用提供方
func (p *FallbackProvider) Requirements(ctx context.Context, major string) (*Degree, error) {
	degree, err := p.primary.Requirements(ctx, major)
	if err == nil {
		return degree, nil
	}
	if errors.Is(err, ErrMajorNotFound) {
		return nil, err
	}

	p.logger.Warn("主培养方案提供方不可用，切换到内置目录",
		zap.String("major", major), zap.Error(err))
	return p.fallback.Requirements(ctx, major)
}
