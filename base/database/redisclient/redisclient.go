package redisclient

import (
	"math/rand"
	"runtime"
	"time"

	"github.com/gomodule/redigo/redis"

	"github.com/x-xyz/dustsweep/base/log"
)

const (
	dialTimeout  = 2 * time.Second
	readTimeout  = 1500 * time.Millisecond
	writeTimeout = 1500 * time.Millisecond
	idleTimeout  = 240 * time.Second
	dialRetries  = 3
)

// RedisParam is the optional param for redis connection
type RedisParam struct {
	Password       string
	PoolMultiplier float64
	// Retry dials up to three more times with jitter, tests leave it off
	Retry bool
}

// MustConnectRedis connects to one redis uri
// NOTE This function panics if the connection fails.
func MustConnectRedis(uri string, param RedisParam) *redis.Pool {
	p, err := ConnectRedis(uri, param)
	if err != nil {
		log.Log().WithFields(log.Fields{"redisURI": uri, "err": err}).Panic("fail to dial Redis")
	}
	return p
}

// NewPool builds a pool without dialing
func NewPool(uri string, param RedisParam) *redis.Pool {
	maxIdle, maxActive := 200, 1024
	if param.PoolMultiplier > 0 {
		cpu := float64(runtime.NumCPU())
		// allowing 25% idle connection
		maxIdle = int(cpu * param.PoolMultiplier / 4)
		maxActive = int(cpu * param.PoolMultiplier)
	}

	opts := []redis.DialOption{
		redis.DialConnectTimeout(dialTimeout),
		redis.DialReadTimeout(readTimeout),
		redis.DialWriteTimeout(writeTimeout),
	}
	if param.Password != "" {
		opts = append(opts, redis.DialPassword(param.Password))
	}
	return &redis.Pool{
		MaxIdle:     maxIdle,
		MaxActive:   maxActive,
		Wait:        true,
		IdleTimeout: idleTimeout,
		Dial: func() (redis.Conn, error) {
			return redis.Dial("tcp", uri, opts...)
		},
		TestOnBorrow: func(c redis.Conn, t time.Time) error {
			// No need to test if it's been recycled less than 1 sec.
			if time.Since(t) < time.Second {
				return nil
			}
			_, err := c.Do("PING")
			return err
		},
	}
}

// ConnectRedis builds a pool and checks one connection
func ConnectRedis(uri string, param RedisParam) (*redis.Pool, error) {
	p := NewPool(uri, param)

	r := rand.New(rand.NewSource(time.Now().UnixNano()))
	var dialErr error
	for i := 0; i <= dialRetries; i++ {
		if i > 0 {
			if !param.Retry {
				break
			}
			time.Sleep(time.Second + time.Duration(r.Intn(1000))*time.Millisecond)
		}
		if dialErr = ping(p); dialErr == nil {
			break
		}
		log.Log().WithFields(log.Fields{
			"redisURI": uri,
			"err":      dialErr,
			"attempt":  i,
		}).Error("fail to dial Redis")
	}
	if dialErr != nil {
		return nil, dialErr
	}

	log.Log().WithField("redisURI", uri).Info("redis connected")
	return p, nil
}

func ping(p *redis.Pool) error {
	c := p.Get()
	defer c.Close()
	_, err := c.Do("PING")
	return err
}
