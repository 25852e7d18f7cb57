package ops

import (
	"context"

	"github.com/museboxapp/musebox/internal/reconcile"
	"github.com/museboxapp/musebox/internal/store"
)

// VerifyIntegrityOutput contains the result of the VerifyIntegrity operation.
type VerifyIntegrityOutput struct {
	Integrity *reconcile.IntegrityReport `json:"integrity"`
	Themes    int                        `json:"themes"`
	Notes     int                        `json:"notes"`
}

// VerifyIntegrity runs the read-only store health check: cached theme
// counters are recounted and every note's theme reference is checked.
func VerifyIntegrity(ctx context.Context, st *store.Store) (*VerifyIntegrityOutput, error) {
	integrity, err := reconcile.Verify(ctx, st, st)
	if err != nil {
		return nil, err
	}

	themes, err := st.ListThemes(ctx)
	if err != nil {
		return nil, err
	}
	notes, err := st.CountNotes(ctx)
	if err != nil {
		return nil, err
	}

	return &VerifyIntegrityOutput{
		Integrity: integrity,
		Themes:    len(themes),
		Notes:     notes,
	}, nil
}
