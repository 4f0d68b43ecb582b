package compositor

import (
	"context"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"caption-studio-server/models"
	"caption-studio-server/pkg/styles"
	"caption-studio-server/pkg/timeline"
)

func popScene(captions []models.CaptionSegment, assets []models.AssetSegment) Scene {
	cfg, _ := styles.DefaultConfig(models.StylePop)
	return Scene{
		Snapshot:    timeline.Snapshot{Captions: captions, Assets: assets},
		Style:       models.StylePop,
		StyleConfig: cfg,
	}
}

func TestCaptionChainOrder(t *testing.T) {
	cfg, err := styles.DefaultConfig(models.StyleComic)
	require.NoError(t, err)

	state := ResolveCaption(models.CaptionSegment{ID: "c1", Text: "hi"}, models.StyleComic, cfg)
	require.NotNil(t, state)
	assert.Equal(t, []TransformKind{TranslateX, RotateX, RotateY, RotateZ, Skew}, state.Transform.Kinds())
	assert.Equal(t, "translateX(-50%) rotateX(15deg) rotateY(0deg) rotateZ(5deg) skew(0deg, 0deg)", state.TransformCSS)
	assert.Equal(t, Anchor{Left: 50, Top: 50}, state.Anchor)
	assert.Equal(t, 1000.0, state.Perspective)
	assert.Equal(t, models.AnimationStamp, state.Animation.Preset)
	assert.True(t, state.Decoration.Uppercase)
}

func TestHiddenStyleResolvesNothing(t *testing.T) {
	scene := popScene([]models.CaptionSegment{{ID: "c1", Start: 0, End: 2, Text: "hi"}}, nil)
	scene.StyleConfig.IsVisible = false

	frame := Resolve(1, scene)
	assert.Nil(t, frame.Caption)
}

func TestAssetChainOrder(t *testing.T) {
	a := models.AssetSegment{
		ID: "a1", X: 25, Y: 75, Scale: 1.5, Rotation: 10,
		Transform3D: models.Transform3D{RotateX: 20, RotateY: 30, RotateZ: 40, SkewX: 5, SkewY: 6},
		Animation:   models.AnimationPopElastic,
	}
	state := ResolveAsset(a)

	assert.Equal(t, []TransformKind{Translate, RotateX, RotateY, RotateZ, Skew, Scale}, state.Transform.Kinds())
	assert.Equal(t,
		"translate(-50%, -50%) rotateX(20deg) rotateY(30deg) rotateZ(50deg) skew(5deg, 6deg) scale(1.5)",
		state.TransformCSS)
	assert.Equal(t, Anchor{Left: 25, Top: 75}, state.Anchor)
	assert.Equal(t, models.DefaultPerspective, state.Perspective)
	assert.Nil(t, state.Glow)
	assert.Nil(t, state.Halo)
}

func TestAssetGlowAndHalo(t *testing.T) {
	state := ResolveAsset(models.AssetSegment{ID: "a1", GlowIntensity: 12, HaloEffect: true})
	require.NotNil(t, state.Glow)
	assert.Equal(t, "drop-shadow(0 0 12px #0066ff)", state.Glow.Filter)
	require.NotNil(t, state.Halo)
	assert.Equal(t, HaloScale, state.Halo.Scale)
	assert.True(t, state.Halo.Pulsing)
	assert.Equal(t, "radial-gradient(circle, #0066ff 0%, transparent 70%)", state.Halo.Gradient)

	state = ResolveAsset(models.AssetSegment{ID: "a2", GlowColor: "#ff0000", GlowIntensity: 0, HaloEffect: true})
	assert.Nil(t, state.Glow, "zero intensity draws no glow")
	require.NotNil(t, state.Halo)
	assert.Equal(t, "#ff0000", state.Halo.Color)
}

func TestRotationOrderIsObservable(t *testing.T) {
	xz := Chain{deg(RotateX, 90), deg(RotateZ, 90)}.Linear()
	zx := Chain{deg(RotateZ, 90), deg(RotateX, 90)}.Linear()

	differs := false
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			if math.Abs(xz[i][j]-zx[i][j]) > 1e-9 {
				differs = true
			}
		}
	}
	assert.True(t, differs)
}

func TestResolveFrame(t *testing.T) {
	scene := popScene(
		[]models.CaptionSegment{
			{ID: "c1", Start: 0, End: 2, Text: "one"},
			{ID: "c2", Start: 1, End: 3, Text: "two"},
		},
		[]models.AssetSegment{
			{ID: "a1", Start: 0, End: 10},
			{ID: "a2", Start: 1.5, End: 2},
		},
	)

	frame := Resolve(1.5, scene)
	require.NotNil(t, frame.Caption)
	assert.Equal(t, "c1", frame.Caption.SegmentID)
	assert.Len(t, frame.Assets, 2)

	frame = Resolve(2.5, scene)
	require.NotNil(t, frame.Caption)
	assert.Equal(t, "c2", frame.Caption.SegmentID)
	assert.Len(t, frame.Assets, 1)

	frame = Resolve(11, scene)
	assert.Nil(t, frame.Caption)
	assert.Empty(t, frame.Assets)
}

func TestTrackerReplaysOnKeyChange(t *testing.T) {
	scene := popScene([]models.CaptionSegment{{ID: "c1", Start: 0, End: 5, Text: "hello"}}, nil)
	tr := NewTracker()

	f := Resolve(1, scene)
	tr.Mark(&f)
	assert.True(t, f.Caption.Animation.Replay, "first appearance plays")

	f = Resolve(2, scene)
	tr.Mark(&f)
	assert.False(t, f.Caption.Animation.Replay, "same key does not restart")

	scene.Snapshot.Captions[0].Text = "hello!"
	f = Resolve(3, scene)
	tr.Mark(&f)
	assert.True(t, f.Caption.Animation.Replay, "text change restarts")

	scene.Style = models.StyleNeon
	scene.StyleConfig, _ = styles.DefaultConfig(models.StyleNeon)
	f = Resolve(3, scene)
	tr.Mark(&f)
	assert.True(t, f.Caption.Animation.Replay, "style change restarts")
	assert.True(t, f.Caption.Animation.Looping, "neon pulses")
}

func TestPlanFrames(t *testing.T) {
	scene := popScene(
		[]models.CaptionSegment{{ID: "c1", Start: 0, End: 1, Text: "one"}},
		[]models.AssetSegment{{ID: "a1", Start: 0.5, End: 20, Animation: models.AnimationFade}},
	)

	frames, err := PlanFrames(context.Background(), scene, 0, 20, 30, 4)
	require.NoError(t, err)
	require.Len(t, frames, FrameCount(0, 20, 30))
	assert.Len(t, frames, 601)

	assert.Equal(t, 0.0, frames[0].Time)
	assert.InDelta(t, 20.0, frames[600].Time, 1e-9)
	require.NotNil(t, frames[0].Caption)
	assert.True(t, frames[0].Caption.Animation.Replay)
	assert.False(t, frames[1].Caption.Animation.Replay)
	assert.Nil(t, frames[31].Caption)

	require.Len(t, frames[15].Assets, 1)
	assert.True(t, frames[15].Assets[0].Animation.Replay)
	assert.False(t, frames[16].Assets[0].Animation.Replay)

	_, err = PlanFrames(context.Background(), scene, 5, 1, 30, 1)
	assert.ErrorIs(t, err, ErrEmptyRange)
}

func TestFrameCountSaturates(t *testing.T) {
	assert.Equal(t, MaxPlanFrames+1, FrameCount(0, 1e300, 30))
	assert.Equal(t, MaxPlanFrames+1, FrameCount(0, math.Inf(1), 60))
	assert.Equal(t, 0, FrameCount(0, math.NaN(), 30))

	_, err := PlanFrames(context.Background(), popScene(nil, nil), 0, 1e300, 30, 2)
	assert.ErrorIs(t, err, ErrTooManyFrames)
}

func TestPlanFramesCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := PlanFrames(ctx, popScene(nil, nil), 0, 60, 60, 2)
	assert.ErrorIs(t, err, context.Canceled)
}
