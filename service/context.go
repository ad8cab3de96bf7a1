// Package service exposes on-demand metadata parsing and the product catalog over HTTP.
package service

import (
	"github.com/venicegeo/bf-satmeta/util"
)

// Context is the logging context of one handler
type Context struct {
	sessionID string
}

// AppName returns the application name
func (c *Context) AppName() string {
	return util.AppName
}

// SessionID returns a Session ID, creating one if needed
func (c *Context) SessionID() string {
	if c.sessionID == "" {
		c.sessionID, _ = util.PsuUUID()
	}
	return c.sessionID
}

// LogRootDir returns an empty string
func (c *Context) LogRootDir() string {
	return ""
}
