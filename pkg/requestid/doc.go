// Package requestid tags every request with a correlation id.
//
// Middleware reuses a well-formed X-Request-ID header sent by the client or a
// proxy, generates a UUID otherwise, echoes the id in the response and stores it
// in the request context. LogExtractor adds it to every log record written with
// the request context, so the validation logs of one submission can be grouped:
//
//	log := logger.New(logger.WithContextExtractors(requestid.LogExtractor()))
//	r.Use(requestid.Middleware())
package requestid
