// Package jobs provides scheduled background tasks for the shipment ledger.
//
// This package implements cron-based jobs using github.com/robfig/cron/v3
// to handle periodic operations.
//
// # Available Jobs
//
// 1. WebhookRetryJob - Runs every five minutes to re-attempt failed webhook
// deliveries still under the retry ceiling.
//
// # Usage
//
// Jobs are managed through JobManager which provides a unified interface:
//
//	jobManager := jobs.NewJobManager(retryHandler, logger)
//
//	if err := jobManager.StartAll(); err != nil {
//		log.Fatal("Failed to start jobs:", err)
//	}
//
//	defer jobManager.StopAll()
//
// # Error Handling
//
// The retry job logs failures and keeps running; a sweep that errors out
// leaves its records queued for the next sweep.
package jobs
