package renderer_test

import (
	"testing"
	"time"

	"fulfillment/internal/adapters/out/renderer"
	"fulfillment/internal/core/domain/model/document"
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testSnapshot(t *testing.T) document.Snapshot {
	t.Helper()

	snapshot, err := document.NewSnapshot("Acme Builders", time.Now().UTC(), []document.SnapshotLine{
		{
			OrderItemID: kernel.NewUUID().String(),
			ProductCode: "P-100",
			ProductName: "Cement",
			Unit:        "bag",
			Quantity:    10,
		},
	})
	require.NoError(t, err)
	return snapshot
}

func TestNewArtifactRenderer(t *testing.T) {
	t.Run("valid prefix", func(t *testing.T) {
		r, err := renderer.NewArtifactRenderer("artifacts")
		require.NoError(t, err)
		assert.NotNil(t, r)
	})

	t.Run("empty prefix", func(t *testing.T) {
		_, err := renderer.NewArtifactRenderer("")
		assert.ErrorIs(t, err, errs.ErrValueIsRequired)
	})
}

func TestArtifactRenderer_RenderDraft(t *testing.T) {
	r, err := renderer.NewArtifactRenderer("artifacts")
	require.NoError(t, err)

	t.Run("deterministic reference", func(t *testing.T) {
		first, err := r.RenderDraft(t.Context(), "SO-2024-001-01", testSnapshot(t))
		require.NoError(t, err)
		assert.Equal(t, "artifacts/draft-SO-2024-001-01.pdf", first)

		second, err := r.RenderDraft(t.Context(), "SO-2024-001-01", testSnapshot(t))
		require.NoError(t, err)
		assert.Equal(t, first, second)
	})

	t.Run("empty external id", func(t *testing.T) {
		_, err := r.RenderDraft(t.Context(), "", testSnapshot(t))
		assert.ErrorIs(t, err, errs.ErrValueIsRequired)
	})

	t.Run("empty snapshot", func(t *testing.T) {
		_, err := r.RenderDraft(t.Context(), "SO-2024-001-01", document.Snapshot{})
		assert.ErrorIs(t, err, errs.ErrValueIsRequired)
	})
}

func TestArtifactRenderer_RenderSigned(t *testing.T) {
	r, err := renderer.NewArtifactRenderer("artifacts")
	require.NoError(t, err)

	t.Run("binds signature", func(t *testing.T) {
		ref, err := r.RenderSigned(t.Context(), "SO-2024-001-01", testSnapshot(t), "sig-abc")
		require.NoError(t, err)
		assert.Equal(t, "artifacts/signed-SO-2024-001-01.pdf", ref)
	})

	t.Run("missing signature", func(t *testing.T) {
		_, err := r.RenderSigned(t.Context(), "SO-2024-001-01", testSnapshot(t), "")
		assert.ErrorIs(t, err, errs.ErrValueIsRequired)
	})
}
