package forwarder

import "time"

const (
	DefaultUserAgent      = "WebhookForwarder/1.0"
	DefaultTimeout        = 30 * time.Second
	DefaultConnectTimeout = 10 * time.Second
	DefaultMaxRedirects   = 3

	maxResponseBody = 1 << 20
)

type Config struct {
	URL                string
	Token              string
	UserAgent          string
	Timeout            time.Duration
	ConnectTimeout     time.Duration
	InsecureSkipVerify bool
	FollowRedirects    bool
	MaxRedirects       int
}

// Response is what the destination answered. A non-2xx status is still a
// Response, not an error: only transport failures come back as errors.
type Response struct {
	StatusCode int
	Body       []byte
}

func (r Response) Accepted() bool {
	return r.StatusCode >= 200 && r.StatusCode < 300
}
