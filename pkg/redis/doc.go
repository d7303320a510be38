// Package redis connects to the Redis server that backs the registered-email index.
//
// Config is populated from the environment (REDIS_URL and friends). Connect parses
// the URL and pings the server, retrying RetryAttempts times with RetryInterval
// between attempts, all bounded by ConnectTimeout:
//
//	client, err := redis.Connect(ctx, cfg)
//	if err != nil {
//	    return err
//	}
//	defer client.Close()
//
// Healthcheck returns a readiness probe suitable for httpserver.HealthCheckHandler.
// Errors wrap the go-redis cause with errors.Join so callers can match the sentinels
// in errors.go with errors.Is.
package redis
