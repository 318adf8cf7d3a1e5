// Package omlflow describes machine learning pipelines as flows, serialises them to and from
// the registry XML format and keeps them in sync with the registry.
//
// End-users typically interact through the Service façade exposed by the root package:
//
//	srv, _ := omlflow.New(ctx, omlflow.WithConfig(cfg))
//	aFlow, id, _ := srv.Sync(ctx, "pipeline.yaml")
//
// Flows can also be built directly with flow.New and published with Service.Registry().
package omlflow
