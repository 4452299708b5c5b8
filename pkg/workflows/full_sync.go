package workflows

import (
	"context"
	"time"

	"go.temporal.io/sdk/temporal"
	"go.temporal.io/sdk/workflow"
)

// FullSyncTaskQueue is the Temporal task queue for reconciliation workflows.
const FullSyncTaskQueue = "orderflow-sync"

// FullSyncWorkflowName identifies the workflow for external starters and schedules.
const FullSyncWorkflowName = "FullSyncWorkflow"

// Syncer mirrors the full local order set into the remote database.
type Syncer interface {
	FullSync(ctx context.Context) error
}

// SyncActivities holds activity implementations for the sync workflows.
// Registered on the worker with a concrete Syncer.
type SyncActivities struct {
	Syncer Syncer
}

// FullSyncActivity pushes every local order to the remote store, catching up
// on any mirror writes the best-effort queue dropped.
func (a *SyncActivities) FullSyncActivity(ctx context.Context) error {
	return a.Syncer.FullSync(ctx)
}

// FullSyncWorkflow reconciles local storage against the remote database.
// Retries are left to Temporal's activity retry policy rather than the
// in-process sync queue, since a scheduled full sync has no user waiting on it.
func FullSyncWorkflow(ctx workflow.Context) error {
	ao := workflow.ActivityOptions{
		StartToCloseTimeout: 2 * time.Minute,
		RetryPolicy: &temporal.RetryPolicy{
			InitialInterval:    5 * time.Second,
			BackoffCoefficient: 2.0,
			MaximumAttempts:    5,
		},
	}
	ctx = workflow.WithActivityOptions(ctx, ao)

	var a *SyncActivities
	return workflow.ExecuteActivity(ctx, a.FullSyncActivity).Get(ctx, nil)
}
