package services

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"caption-studio-server/models"
	"caption-studio-server/pkg/compositor"
	"caption-studio-server/pkg/styles"
	"caption-studio-server/pkg/timeline"
)

func raw(t *testing.T, v interface{}) json.RawMessage {
	t.Helper()
	data, err := json.Marshal(v)
	require.NoError(t, err)
	return data
}

func TestSessionsAreIsolated(t *testing.T) {
	svc := NewEditorService()
	a := svc.CreateSession()
	b := svc.CreateSession()
	require.NotEqual(t, a.ID, b.ID)

	_, err := svc.AddCaption(a.ID, "hello")
	require.NoError(t, err)
	_, err = svc.UpdateStyle(a.ID, models.StylePop, []StyleFieldChange{{Field: "font_size", Value: raw(t, 90)}})
	require.NoError(t, err)

	caps, err := svc.ListCaptions(b.ID)
	require.NoError(t, err)
	assert.Empty(t, caps)

	cfg, err := svc.GetStyle(b.ID, models.StylePop)
	require.NoError(t, err)
	def, _ := styles.DefaultConfig(models.StylePop)
	assert.Equal(t, def, cfg)
}

func TestUnknownSession(t *testing.T) {
	svc := NewEditorService()
	_, err := svc.AddCaption("missing", "x")
	assert.ErrorIs(t, err, ErrSessionNotFound)
	assert.ErrorIs(t, svc.DeleteSession("missing"), ErrSessionNotFound)
}

func TestRetimeThroughService(t *testing.T) {
	svc := NewEditorService()
	sess := svc.CreateSession()
	seg, err := svc.AddCaption(sess.ID, "one")
	require.NoError(t, err)

	b, err := svc.Retime(sess.ID, seg.ID, timeline.BoundEnd, 3.14)
	require.NoError(t, err)
	assert.Equal(t, 0.0, b.Start)
	assert.Equal(t, 3.1, b.End)
	assert.Equal(t, 3.1, b.Playhead)

	b, err = svc.Adjust(sess.ID, seg.ID, timeline.BoundStart, 0.5)
	require.NoError(t, err)
	assert.Equal(t, 0.5, b.Start)

	_, err = svc.Seek(sess.ID, 2)
	require.NoError(t, err)
	b, err = svc.Sync(sess.ID, seg.ID, timeline.BoundEnd)
	require.NoError(t, err)
	assert.Equal(t, 2.0, b.End)

	_, err = svc.Retime(sess.ID, "nope", timeline.BoundEnd, 1)
	assert.ErrorIs(t, err, timeline.ErrUnknownSegment)
}

func TestUpdateStyleIsAtomic(t *testing.T) {
	svc := NewEditorService()
	sess := svc.CreateSession()

	_, err := svc.UpdateStyle(sess.ID, models.StyleNeon, []StyleFieldChange{
		{Field: "font_size", Value: raw(t, 120)},
		{Field: "bogus", Value: raw(t, 1)},
	})
	assert.ErrorIs(t, err, styles.ErrUnknownField)

	cfg, err := svc.GetStyle(sess.ID, models.StyleNeon)
	require.NoError(t, err)
	def, _ := styles.DefaultConfig(models.StyleNeon)
	assert.Equal(t, def.FontSize, cfg.FontSize)

	_, err = svc.UpdateStyle(sess.ID, models.StyleNeon, nil)
	assert.ErrorIs(t, err, ErrEmptyStyleUpdate)
}

func TestUpdateAssetAndDrag(t *testing.T) {
	svc := NewEditorService()
	sess := svc.CreateSession()
	a := sess.Engine.AddAsset(models.AssetSegment{URL: "data:image/png;base64,", Start: 0, End: 5, X: 50, Y: 50, Scale: 1})

	got, err := svc.UpdateAsset(sess.ID, a.ID, []AssetFieldChange{
		{Field: "scale", Value: raw(t, 9)},
		{Field: "halo_effect", Value: raw(t, true)},
	})
	require.NoError(t, err)
	assert.Equal(t, models.MaxScale, got.Scale)
	assert.True(t, got.HaloEffect)

	got, err = svc.DragAsset(sess.ID, a.ID, 150, 50, StageRect{Left: 100, Top: 0, Width: 200, Height: 100})
	require.NoError(t, err)
	assert.Equal(t, 25.0, got.X)
	assert.Equal(t, 50.0, got.Y)

	got, err = svc.DragAsset(sess.ID, a.ID, 900, -40, StageRect{Left: 100, Top: 0, Width: 200, Height: 100})
	require.NoError(t, err)
	assert.Equal(t, 100.0, got.X)
	assert.Equal(t, 0.0, got.Y)

	_, err = svc.DragAsset(sess.ID, a.ID, 1, 1, StageRect{})
	assert.ErrorIs(t, err, ErrInvalidStageRect)
}

func TestFrameMarksReplayOnce(t *testing.T) {
	svc := NewEditorService()
	sess := svc.CreateSession()
	_, err := svc.AddCaption(sess.ID, "first")
	require.NoError(t, err)

	at := 0.5
	f, err := svc.Frame(sess.ID, &at)
	require.NoError(t, err)
	require.NotNil(t, f.Caption)
	assert.True(t, f.Caption.Animation.Replay)

	f, err = svc.Frame(sess.ID, nil)
	require.NoError(t, err)
	require.NotNil(t, f.Caption)
	assert.Equal(t, 0.5, f.Time)
	assert.False(t, f.Caption.Animation.Replay)
}

func TestRenderAt(t *testing.T) {
	svc := NewEditorService()
	sess := svc.CreateSession()
	_, err := svc.AddCaption(sess.ID, "shown")
	require.NoError(t, err)

	var got compositor.Frame
	r := compositor.RendererFunc(func(_ context.Context, f compositor.Frame) error {
		got = f
		return nil
	})
	at := 1.0
	require.NoError(t, svc.RenderAt(context.Background(), sess.ID, &at, r))
	require.NotNil(t, got.Caption)
	assert.Equal(t, "shown", got.Caption.Text)
}

func TestDocumentRoundTrip(t *testing.T) {
	for _, format := range []string{"json", "yaml"} {
		t.Run(format, func(t *testing.T) {
			svc := NewEditorService()
			src := svc.CreateSession()
			_, err := svc.ImportScript(src.ID, "one\ntwo")
			require.NoError(t, err)
			src.Engine.AddAsset(models.AssetSegment{URL: "u", Start: 1, End: 3, X: 10, Y: 20, Scale: 2, Animation: models.AnimationPulse})
			_, err = svc.UpdateStyle(src.ID, models.StyleCyber, []StyleFieldChange{{Field: "rotate_y", Value: raw(t, 25)}})
			require.NoError(t, err)
			_, err = svc.SetActiveStyle(src.ID, models.StyleCyber)
			require.NoError(t, err)

			data, _, err := svc.EncodeDocument(src.ID, format)
			require.NoError(t, err)

			dst := svc.CreateSession()
			doc, err := svc.LoadDocument(dst.ID, format, data)
			require.NoError(t, err)

			want, err := svc.Document(src.ID)
			require.NoError(t, err)
			assert.Equal(t, want, doc)
			assert.Equal(t, models.StyleCyber, dst.Styles.Active())
		})
	}
}

func TestLoadDocumentRejects(t *testing.T) {
	svc := NewEditorService()
	sess := svc.CreateSession()
	sess.Engine.AddCaption("keep")

	_, err := svc.LoadDocument(sess.ID, "xml", []byte("<x/>"))
	assert.ErrorIs(t, err, ErrUnsupportedFormat)

	_, err = svc.LoadDocument(sess.ID, "json", []byte("{"))
	assert.ErrorIs(t, err, ErrInvalidDocument)

	_, err = svc.LoadDocument(sess.ID, "json", []byte(`{"version":99}`))
	assert.ErrorIs(t, err, ErrInvalidDocument)

	_, err = svc.LoadDocument(sess.ID, "json", []byte(`{"version":1,"active_style":"nope"}`))
	assert.ErrorIs(t, err, styles.ErrUnknownStyle)

	_, err = svc.LoadDocument(sess.ID, "json", []byte(`{"version":1,"assets":[{"id":"a1","end":2,"animation":"not-a-preset"}]}`))
	assert.ErrorIs(t, err, timeline.ErrInvalidValue)

	_, err = svc.LoadDocument(sess.ID, "json", []byte(`{"version":1,"styles":{"pop":{"font_family":"Comic Sans"}}}`))
	assert.ErrorIs(t, err, styles.ErrInvalidValue)

	assert.Len(t, sess.Engine.Captions(), 1, "a rejected document leaves the session untouched")
	assert.Empty(t, sess.Engine.Assets())
}

func TestLoadDocumentClampsStyles(t *testing.T) {
	svc := NewEditorService()
	sess := svc.CreateSession()

	body := `{"version":1,"styles":{"pop":{"font_size":-50,"y_pos":400,"perspective":0,"rotate_x":9999}}}`
	_, err := svc.LoadDocument(sess.ID, "json", []byte(body))
	require.NoError(t, err)

	got, err := svc.GetStyle(sess.ID, models.StylePop)
	require.NoError(t, err)
	def, _ := styles.DefaultConfig(models.StylePop)
	assert.Equal(t, models.MinFontSize, got.FontSize)
	assert.Equal(t, 100.0, got.YPos)
	assert.Equal(t, 180.0, got.RotateX)
	assert.Equal(t, def.Perspective, got.Perspective, "zero perspective takes the default")
	assert.Equal(t, def.FontFamily, got.FontFamily)
	assert.Equal(t, def.Animation, got.Animation)
	assert.True(t, got.IsVisible, "a missing is_visible keeps the style visible")
}
