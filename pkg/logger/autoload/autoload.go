// Package autoload initializes the process logger from LOG_* environment
// variables as a side effect of being imported.
package autoload

import (
	configx "github.com/jirapat-a/careertalk/pkg/config"
	logx "github.com/jirapat-a/careertalk/pkg/logger"
)

func init() {
	logx.Init(*configx.MustLoad[logx.Config]("LOG"))
}
