package xgappup

import "embed"

//go:embed topics
var embeddedTopics embed.FS
