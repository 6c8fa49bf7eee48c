// Package sentry wraps sentry-go with a small chainable helper, so call
// sites can attach request context and metadata without touching hubs and
// scopes directly.
package sentry

import (
	"fmt"
	"time"

	sentrygo "github.com/getsentry/sentry-go"
	sentryecho "github.com/getsentry/sentry-go/echo"
	"github.com/labstack/echo/v4"
)

// FlushTime bounds how long mains wait for buffered events on shutdown.
const FlushTime = 2 * time.Second

type Sentry struct {
	context echo.Context
	err     error
	message string
	level   sentrygo.Level
	extras  map[string]interface{}
	tags    map[string]string
}

func New() *Sentry {
	return &Sentry{level: sentrygo.LevelError}
}

func WithContext(c echo.Context) *Sentry {
	return New().WithContext(c)
}

func (s *Sentry) WithContext(c echo.Context) *Sentry {
	s.context = c
	return s
}

func (s *Sentry) WithError(err error) *Sentry {
	s.err = err
	return s
}

func (s *Sentry) WithMessage(message string) *Sentry {
	s.message = message
	return s
}

func (s *Sentry) WithLevel(level sentrygo.Level) *Sentry {
	s.level = level
	return s
}

func (s *Sentry) WithExtras(extras map[string]interface{}) *Sentry {
	s.extras = extras
	return s
}

func (s *Sentry) WithTags(tags map[string]string) *Sentry {
	s.tags = tags
	return s
}

func (s *Sentry) Error(err error) {
	s.WithError(err).WithLevel(sentrygo.LevelError).sendError()
}

func (s *Sentry) Errorf(format string, args ...interface{}) {
	s.WithMessage(fmt.Sprintf(format, args...)).WithLevel(sentrygo.LevelError).sendMessage()
}

func (s *Sentry) Infof(format string, args ...interface{}) {
	s.WithMessage(fmt.Sprintf(format, args...)).WithLevel(sentrygo.LevelInfo).sendMessage()
}

func (s *Sentry) Warningf(format string, args ...interface{}) {
	s.WithMessage(fmt.Sprintf(format, args...)).WithLevel(sentrygo.LevelWarning).sendMessage()
}

func (s *Sentry) sendError() {
	if s.err == nil {
		return
	}
	hub := s.getHub()
	hub.WithScope(func(scope *sentrygo.Scope) {
		s.configScope(scope)
		hub.CaptureException(s.err)
	})
}

func (s *Sentry) sendMessage() {
	if s.message == "" {
		return
	}
	hub := s.getHub()
	hub.WithScope(func(scope *sentrygo.Scope) {
		s.configScope(scope)
		hub.CaptureMessage(s.message)
	})
}

// getHub prefers the request-scoped hub installed by the echo middleware, so
// events carry request data.
func (s *Sentry) getHub() *sentrygo.Hub {
	if s.context != nil {
		if hub := sentryecho.GetHubFromContext(s.context); hub != nil {
			return hub
		}
	}
	return sentrygo.CurrentHub()
}

func (s *Sentry) configScope(scope *sentrygo.Scope) {
	scope.SetLevel(s.level)
	for k, v := range s.extras {
		scope.SetExtra(k, v)
	}
	for k, v := range s.tags {
		scope.SetTag(k, v)
	}
}
