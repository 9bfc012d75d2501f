// Package server wires configuration into a running automation API.
//
// Build assembles the collaborators shared by the HTTP server and the
// command line: logger, metrics, tracer, the hwp provider and its
// controller, the system provider, the service registry and the script
// runner. New mounts them on a gin router.
//
// Example Usage:
//
//	cfg := config.LoadOrDefault()
//	app, err := server.Build(cfg, com.NewAttacher(logger), logger)
//	defer app.Close()
//	err = server.New(app).Run(ctx)
package server
