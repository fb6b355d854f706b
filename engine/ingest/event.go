package ingest

import (
	"net/url"
	"strings"

	"github.com/aws/aws-lambda-go/events"
)

// Record names a single object that was created in the blob store.
// Key is the raw key as delivered by the notifier, possibly percent-encoded.
type Record struct {
	Bucket string `json:"bucket"`
	Key    string `json:"key"`
}

// Event is a storage notification carrying one or more records.
type Event struct {
	Records []Record `json:"records"`
}

// FromS3Event adapts a Lambda S3 notification.
func FromS3Event(e events.S3Event) Event {
	out := Event{Records: make([]Record, 0, len(e.Records))}
	for i := range e.Records {
		s3 := e.Records[i].S3
		out.Records = append(out.Records, Record{
			Bucket: s3.Bucket.Name,
			Key:    s3.Object.Key,
		})
	}
	return out
}

// FromPath builds an event for local triggers from literal keys. Keys are
// escaped the way storage notifications encode them.
func FromPath(bucket string, keys ...string) Event {
	out := Event{Records: make([]Record, 0, len(keys))}
	for _, key := range keys {
		out.Records = append(out.Records, Record{Bucket: bucket, Key: escapeKey(key)})
	}
	return out
}

func escapeKey(key string) string {
	segments := strings.Split(key, "/")
	for i, s := range segments {
		segments[i] = url.QueryEscape(s)
	}
	return strings.Join(segments, "/")
}
