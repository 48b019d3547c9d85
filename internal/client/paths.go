package client

import "github.com/fivetwenty-io/console-client/pkg/console"

// appPath builds "/{appId}{collection}/{segments...}" with every dynamic part
// encoded on its own.
func appPath(appID, collection string, segments ...string) string {
	return console.BuildPath(console.BuildPath("", appID)+collection, segments...)
}
