// Package esdex is a client-side analytics pipeline for Elasticsearch:
// idempotent index provisioning, failure-tolerant bulk ingestion, and typed
// search and aggregation results.
//
// Basic usage:
//
//	client, err := esdex.New(ctx, esdex.WithAddresses("http://localhost:9200"))
//	if err != nil {
//		...
//	}
//	defer client.Close()
//
//	created, err := client.Indices().Ensure(ctx, schema)
//	outcome, err := client.Documents("user_activity_logs").BulkInsert(ctx, docs)
//	result, err := client.Search("user_activity_logs").NewQuery().
//		Where("action", "login").
//		Limit(10).
//		Do(ctx)
package esdex
