package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
)

// Run is a stored run row.
type Run struct {
	ID            string
	Spec          string
	Kind          string
	Strategy      string
	Verdict       string
	NodesCreated  int
	NodesExplored int
	StepsEmitted  int
	CreatedAt     string
	FinishedAt    string
}

// NodeRecord is a stored search node row. Step is empty for the root.
type NodeRecord struct {
	RunID     string
	NodeID    int
	ParentID  int
	Depth     int
	LoopDepth int
	Term      string
	Step      string
}

// ErrRunNotFound is returned by GetRun for unknown run ids.
var ErrRunNotFound = errors.New("run not found")

// GetRun fetches one run by id.
func (s *Store) GetRun(ctx context.Context, runID string) (*Run, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT id, spec, kind, strategy,
		       COALESCE(verdict, ''), nodes_created, nodes_explored, steps_emitted,
		       created_at, COALESCE(finished_at, '')
		FROM runs WHERE id = ?
	`, runID)
	var r Run
	err := row.Scan(&r.ID, &r.Spec, &r.Kind, &r.Strategy,
		&r.Verdict, &r.NodesCreated, &r.NodesExplored, &r.StepsEmitted,
		&r.CreatedAt, &r.FinishedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: %s", ErrRunNotFound, runID)
	}
	if err != nil {
		return nil, fmt.Errorf("get run: %w", err)
	}
	return &r, nil
}

// ListRuns returns every run, newest first.
func (s *Store) ListRuns(ctx context.Context) ([]Run, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, spec, kind, strategy,
		       COALESCE(verdict, ''), nodes_created, nodes_explored, steps_emitted,
		       created_at, COALESCE(finished_at, '')
		FROM runs ORDER BY id DESC
	`)
	if err != nil {
		return nil, fmt.Errorf("list runs: %w", err)
	}
	defer rows.Close()

	var out []Run
	for rows.Next() {
		var r Run
		if err := rows.Scan(&r.ID, &r.Spec, &r.Kind, &r.Strategy,
			&r.Verdict, &r.NodesCreated, &r.NodesExplored, &r.StepsEmitted,
			&r.CreatedAt, &r.FinishedAt); err != nil {
			return nil, fmt.Errorf("list runs: %w", err)
		}
		out = append(out, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list runs: %w", err)
	}
	return out, nil
}

// ListNodes returns a run's search nodes in creation order.
func (s *Store) ListNodes(ctx context.Context, runID string) ([]NodeRecord, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT run_id, node_id, parent_id, depth, loop_depth, term, COALESCE(step, '')
		FROM nodes WHERE run_id = ? ORDER BY node_id
	`, runID)
	if err != nil {
		return nil, fmt.Errorf("list nodes: %w", err)
	}
	defer rows.Close()

	var out []NodeRecord
	for rows.Next() {
		var n NodeRecord
		if err := rows.Scan(&n.RunID, &n.NodeID, &n.ParentID,
			&n.Depth, &n.LoopDepth, &n.Term, &n.Step); err != nil {
			return nil, fmt.Errorf("list nodes: %w", err)
		}
		out = append(out, n)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list nodes: %w", err)
	}
	return out, nil
}
