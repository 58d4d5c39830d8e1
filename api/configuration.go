package api

import "time"

type Configuration struct {
	Env            string
	AppName        string
	Port           string
	ApiVersion     string
	AppUrl         string
	MaxFileSize    int64
	DefaultTimeout time.Duration
	// ExecuteTimeout bounds one execution run. It must stay under the infra
	// request timeout so the summary can still be written.
	ExecuteTimeout time.Duration
}
