package store

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/multitrace/sieve/internal/explore"
)

// RunSink records an analysis run as it executes. It implements
// explore.Sink; the run row is created by BeginRun and completed by Done.
type RunSink struct {
	store *Store
	ctx   context.Context
	runID string
}

// BeginRun creates a run row and returns the sink that will populate it.
// Run ids are UUIDv7, so listing by id is listing by creation time.
func (s *Store) BeginRun(ctx context.Context, spec, kind, strategy string) (*RunSink, error) {
	runID := uuid.Must(uuid.NewV7()).String()
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO runs (id, spec, kind, strategy)
		VALUES (?, ?, ?, ?)
	`, runID, spec, kind, strategy)
	if err != nil {
		return nil, fmt.Errorf("begin run: %w", err)
	}
	return &RunSink{store: s, ctx: ctx, runID: runID}, nil
}

// RunID returns the id of the run being recorded.
func (rs *RunSink) RunID() string {
	return rs.runID
}

// Node writes one search node. Idempotent: a node id already recorded for
// this run is silently ignored, so a retried run segment cannot duplicate
// rows.
func (rs *RunSink) Node(n *explore.Node) error {
	var step any
	if n.Step != nil {
		encoded, err := marshalStep(*n.Step)
		if err != nil {
			return fmt.Errorf("record node %d: %w", n.ID, err)
		}
		step = encoded
	}
	_, err := rs.store.db.ExecContext(rs.ctx, `
		INSERT INTO nodes (run_id, node_id, parent_id, depth, loop_depth, term, step)
		VALUES (?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(run_id, node_id) DO NOTHING
	`, rs.runID, n.ID, n.ParentID, n.Depth, n.LoopDepth, n.Term.String(), step)
	if err != nil {
		return fmt.Errorf("record node %d: %w", n.ID, err)
	}
	return nil
}

// Done completes the run row with the verdict and counters.
func (rs *RunSink) Done(r *explore.Report) error {
	_, err := rs.store.db.ExecContext(rs.ctx, `
		UPDATE runs
		SET verdict = ?, nodes_created = ?, nodes_explored = ?, steps_emitted = ?,
		    finished_at = strftime('%Y-%m-%dT%H:%M:%fZ', 'now')
		WHERE id = ?
	`, r.Verdict.String(), r.NodesCreated, r.NodesExplored, r.StepsEmitted, rs.runID)
	if err != nil {
		return fmt.Errorf("finish run: %w", err)
	}
	return nil
}
