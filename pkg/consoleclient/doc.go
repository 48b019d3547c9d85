// Package consoleclient is the entry point for constructing a console API
// client that implements the console.Client interface.
//
// It wires configuration, the HTTP dispatcher, session and billing
// credentials, and the status cache on top of the types and interfaces defined
// in the console package.
//
// Quick start
//
//	ctx := context.Background()
//
//	// Anonymous client; log in later.
//	cli, err := consoleclient.NewWithEndpoint(ctx, "develop.example.com")
//	if err != nil { log.Fatal(err) }
//
//	_, err = cli.Session().Login(ctx, "dev@example.com", "secret")
//	if err != nil { log.Fatal(err) }
//
//	status, err := cli.Status().Get(ctx, false)
//	tables, err := cli.Tables().List(ctx, appID)
//
// # Configuration files
//
// NewFromConfigFile reads a yml file such as
//
//	console_url: https://develop.example.com
//	billing_url: https://billing.example.com
//	billing_token: c2VjcmV0
//	timeout: 30s
//
// Every key can be overridden from the environment with the CONSOLE_ prefix,
// for example CONSOLE_AUTH_KEY. A successful login stores the new session key
// in the file.
//
// # Status mirror
//
// Processes that share a NATS server can share the cached system status:
//
//	mirror, err := consoleclient.ConnectStatusMirror(nats.DefaultURL, "")
//	defer mirror.Close()
//	cli, err := consoleclient.New(ctx, &console.Config{
//	  ConsoleURL:   "https://develop.example.com",
//	  StatusMirror: mirror,
//	})
package consoleclient
